package watch

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/jasonlvhit/gocron"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/rally-pacer/metrics"
	"github.com/a-bouts/rally-pacer/report"
)

// Notifier receives a message each time the roadmap becomes unschedulable, gets
// fixed, or starts warning
type Notifier interface {
	Send(message string) error
}

type Watcher struct {
	path        string
	calibration float64
	format      report.Format
	out         io.Writer
	m           *metrics.Collector
	notifier    Notifier

	lock     sync.Mutex
	sum      [sha256.Size]byte
	seen     bool
	failed   bool
	warnings int
}

// New watches the roadmap file at path. m and notifier may be nil.
func New(path string, calibration float64, format report.Format, out io.Writer, m *metrics.Collector, notifier Notifier) *Watcher {
	return &Watcher{
		path:        path,
		calibration: calibration,
		format:      format,
		out:         out,
		m:           m,
		notifier:    notifier,
	}
}

// Start checks the file every interval seconds until the returned channel is closed
// or sent to
func (w *Watcher) Start(every uint64) chan bool {
	s := gocron.NewScheduler()
	job := s.Every(every).Seconds()
	job.Do(w.tick)

	return s.Start()
}

func (w *Watcher) tick() {
	if _, err := w.Check(); err != nil {
		log.WithError(err).WithField("path", w.path).Error("Error checking roadmap")
	}
}

// Check recomputes the roadmap when its content changed since the last check. It
// tells whether a new report was written.
func (w *Watcher) Check() (bool, error) {
	w.lock.Lock()
	defer w.lock.Unlock()

	data, err := os.ReadFile(w.path)
	if err != nil {
		return false, fmt.Errorf("reading roadmap: %w", err)
	}

	sum := sha256.Sum256(data)
	if w.seen && sum == w.sum {
		return false, nil
	}
	w.sum, w.seen = sum, true

	logger := log.WithField("path", w.path)

	start := time.Now()
	res, err := report.Run(string(data), w.calibration)
	if err != nil {
		if w.m != nil {
			w.m.ParseErrors.Inc()
		}
		w.notify(fmt.Sprintf("%s: %v", w.path, err))
		w.failed = true
		return false, err
	}
	delta := time.Since(start)

	if w.m != nil {
		w.m.ObserveRun("watch", delta, res.Waypoints(), res.Warnings(), res.Reasons())
	}
	logger.Infof("Schedule took %s (%d waypoints)", delta.String(), res.Waypoints())

	if err := report.Write(w.out, res.Report, w.format); err != nil {
		return false, fmt.Errorf("writing report: %w", err)
	}

	switch {
	case res.Report.Failed():
		w.notify(fmt.Sprintf("%s: %d failures: %v", w.path, len(res.Fails), res.Fails))
	case w.failed:
		w.notify(fmt.Sprintf("%s: schedule computed again", w.path))
	}
	if n := res.Warnings(); n > w.warnings {
		w.notify(fmt.Sprintf("%s: %s", w.path, res.Schedule.Warnings[0]))
	}
	w.failed = res.Report.Failed()
	w.warnings = res.Warnings()

	return true, nil
}

func (w *Watcher) notify(message string) {
	if w.notifier == nil {
		return
	}
	if err := w.notifier.Send(message); err != nil {
		log.WithError(err).Warn("Error sending notification")
	}
}
