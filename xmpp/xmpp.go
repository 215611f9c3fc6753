package xmpp

import (
	"crypto/tls"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-xmpp"
	log "github.com/sirupsen/logrus"
)

type (
	// Config for the notifier.
	Config struct {
		Host     string
		Jid      string
		Password string
		To       string
	}

	Xmpp struct {
		Config Config
	}
)

var errMissingConfig = errors.New("missing xmpp config")

func serverName(jid string) string {
	if _, domain, ok := strings.Cut(jid, "@"); ok {
		return domain
	}
	return jid
}

// Enabled tells whether enough is configured to send messages
func (x Xmpp) Enabled() bool {
	return len(x.Config.Jid) > 0 && len(x.Config.Password) > 0 && len(x.Config.To) > 0
}

func (x Xmpp) Send(message string) error {

	if !x.Enabled() {
		log.Warn("Missing xmpp config")
		return errMissingConfig
	}

	if len(x.Config.Host) == 0 {
		x.Config.Host = serverName(x.Config.Jid)
	}

	xmpp.DefaultConfig = tls.Config{
		InsecureSkipVerify: true,
	}

	options := xmpp.Options{
		Host:          x.Config.Host,
		User:          x.Config.Jid,
		Password:      x.Config.Password,
		NoTLS:         true,
		StartTLS:      true,
		Debug:         false,
		Session:       false,
		Status:        "xa",
		StatusMessage: "Watching the roadmap",
	}

	log.WithField("host", options.Host).Debug("Create xmpp client")
	talk, err := options.NewClient()
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", options.Host, err)
	}
	defer talk.Close()

	log.WithField("to", x.Config.To).Debug("Send xmpp message")
	if _, err := talk.Send(xmpp.Chat{Remote: x.Config.To, Type: "chat", Text: message}); err != nil {
		return fmt.Errorf("sending to %s: %w", x.Config.To, err)
	}

	return nil
}
