package watch

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/a-bouts/rally-pacer/metrics"
	"github.com/a-bouts/rally-pacer/report"
)

type recorder struct {
	messages []string
}

func (r *recorder) Send(message string) error {
	r.messages = append(r.messages, message)
	return nil
}

func write(t *testing.T, path, text string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roadmap.txt")
	write(t, path, "0.0 setavg 60\n90.0")

	var out bytes.Buffer
	rec := &recorder{}
	w := New(path, 1.0, report.Text, &out, metrics.NewCollector(), rec)

	if changed, err := w.Check(); err != nil || !changed {
		t.Fatalf("Check() = (%t, %v); want (true, nil)", changed, err)
	}
	if !strings.Contains(out.String(), "90:00") {
		t.Errorf("report = %q; want 90:00", out.String())
	}

	out.Reset()
	if changed, err := w.Check(); err != nil || changed {
		t.Errorf("Check() on an unchanged file = (%t, %v); want (false, nil)", changed, err)
	}
	if out.Len() != 0 {
		t.Errorf("Check() on an unchanged file wrote %q", out.String())
	}

	write(t, path, "0.0\n1.0 endavg")
	if changed, err := w.Check(); err != nil || !changed {
		t.Fatalf("Check() = (%t, %v); want (true, nil)", changed, err)
	}
	if len(rec.messages) != 1 || !strings.Contains(rec.messages[0], "UnexpectedAverageEnd") {
		t.Errorf("messages = (%v); want one failure message", rec.messages)
	}

	write(t, path, "0.0 setavg 60\n1.0 endavg")
	if _, err := w.Check(); err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(rec.messages) != 2 || !strings.Contains(rec.messages[1], "computed again") {
		t.Errorf("messages = (%v); want a recovery message", rec.messages)
	}
}

func TestCheckParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roadmap.txt")
	write(t, path, "abc")

	rec := &recorder{}
	w := New(path, 1.0, report.Text, &bytes.Buffer{}, nil, rec)

	if _, err := w.Check(); err == nil {
		t.Errorf("Check() = nil error; want a parse error")
	}
	if len(rec.messages) != 1 {
		t.Errorf("messages = (%v); want one", rec.messages)
	}
}

func TestCheckMissingFile(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing.txt"), 1.0, report.Text, &bytes.Buffer{}, nil, nil)
	if _, err := w.Check(); err == nil {
		t.Errorf("Check() = nil error; want a read error")
	}
}
