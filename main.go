package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/handlers"
	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/rally-pacer/api"
	"github.com/a-bouts/rally-pacer/metrics"
	"github.com/a-bouts/rally-pacer/report"
	"github.com/a-bouts/rally-pacer/watch"
	"github.com/a-bouts/rally-pacer/xmpp"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("rally-pacer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		calibration  = fs.Float64("calibration", 1.0, "car odometer over roadmap distance")
		format       = fs.String("format", "text", "report format: text, json or yaml")
		debug        = fs.Bool("debug", false, "debug logs")
		serve        = fs.String("serve", "", "listen address of the HTTP API, e.g. :8888")
		every        = fs.Uint64("watch", 0, "re-run every N seconds when FILE changes")
		cpuprofile   = fs.Bool("cpuprofile", false, "profile HTTP requests")
		xmppHost     = fs.String("xmpp-host", "", "")
		xmppJid      = fs.String("xmpp-jid", "", "")
		xmppPassword = fs.String("xmpp-password", "", "")
		xmppTo       = fs.String("xmpp-to", "", "")
	)
	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix("PACER")); err != nil {
		return 1
	}

	initLogger(stderr, *debug)

	f, err := report.ParseFormat(*format)
	if err != nil {
		log.WithError(err).Error("Bad format")
		return 1
	}
	if *calibration <= 0 {
		log.Error("Calibration must be positive")
		return 1
	}

	if *serve != "" {
		return listen(*serve, *cpuprofile, *calibration)
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: rally-pacer [flags] FILE|-")
		fs.PrintDefaults()
		return 1
	}
	path := fs.Arg(0)

	if *every > 0 {
		if path == "-" {
			log.Error("Cannot watch stdin")
			return 1
		}
		x := xmpp.Xmpp{Config: xmpp.Config{Host: *xmppHost, Jid: *xmppJid, Password: *xmppPassword, To: *xmppTo}}
		var notifier watch.Notifier
		if x.Enabled() {
			notifier = x
		}
		return watchFile(path, *every, *calibration, f, stdout, notifier)
	}

	return once(path, stdin, stdout, *calibration, f)
}

func once(path string, stdin io.Reader, stdout io.Writer, calibration float64, f report.Format) int {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		log.WithError(err).Error("Error reading roadmap")
		return 1
	}

	res, err := report.Run(string(data), calibration)
	if err != nil {
		log.WithError(err).Error("Error parsing roadmap")
		return 1
	}

	if err := report.Write(stdout, res.Report, f); err != nil {
		log.WithError(err).Error("Error writing report")
		return 1
	}
	if res.Report.Failed() {
		return 1
	}
	return 0
}

func watchFile(path string, every uint64, calibration float64, f report.Format, stdout io.Writer, notifier watch.Notifier) int {
	w := watch.New(path, calibration, f, stdout, metrics.NewCollector(), notifier)
	if _, err := w.Check(); err != nil {
		log.WithError(err).Error("Error checking roadmap")
	}

	stop := w.Start(every)
	log.WithField("path", path).Infof("Watching every %ds", every)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	close(stop)

	return 0
}

func listen(addr string, cpuprofile bool, calibration float64) int {
	router := api.InitServer(cpuprofile, calibration, metrics.NewCollector())

	cors := handlers.CORS(
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	log.Infof("Start server on %s", addr)
	err := http.ListenAndServe(addr, handlers.CompressHandler(cors(router)))
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("Server stopped")
		return 1
	}
	return 0
}
