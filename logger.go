package main

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// initLogger sends logs to w, which is stderr so reports on stdout stay clean
func initLogger(w io.Writer, debug bool) {
	log.SetOutput(w)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}
