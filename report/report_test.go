package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	yaml "go.yaml.in/yaml/v3"

	"github.com/a-bouts/rally-pacer/interval"
	"github.com/a-bouts/rally-pacer/roadmap"
	"github.com/a-bouts/rally-pacer/schedule"
)

func build(t *testing.T, text string) *Report {
	t.Helper()
	lines, err := roadmap.Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", text, err)
	}
	lines = roadmap.Preprocess(lines)
	s, fails := schedule.Compute(roadmap.Positions(lines))
	if len(fails) != 0 {
		t.Fatalf("Compute() failures = %v", fails)
	}
	return Build(lines, s, 1.0)
}

func TestBuild(t *testing.T) {
	r := build(t, "// start\n0.0 setavg 60 atime 10:00:00 odo 100\n30.0\n90.0")

	if len(r.Rows) != 4 {
		t.Fatalf("Build() = %d rows; want 4", len(r.Rows))
	}
	if r.Rows[0].Comment != "start" || r.Rows[0].Distance != nil {
		t.Errorf("row 0 = (%+v); want the comment", r.Rows[0])
	}

	row := r.Rows[3]
	if row.Line != "4" || row.Time != "90:00" || row.Astro != "11:30:00" {
		t.Errorf("row 3 = (%+v); want line 4 at 90:00, 11:30:00", row)
	}
	if row.Odo == nil || *row.Odo != 190 {
		t.Errorf("row 3 odo = (%v); want (190)", row.Odo)
	}
	if r.Rows[1].Zone == nil || r.Rows[1].Zone.Opens != 1 {
		t.Errorf("row 1 zone = (%+v); want zone 1 opened", r.Rows[1].Zone)
	}
}

func TestFailed(t *testing.T) {
	r := Failed(interval.Failures{{Line: roadmap.LineNumber{Number: 2}, Reason: interval.UnexpectedAverageEnd}})
	if !r.Failed() {
		t.Fatalf("Failed() = false; want true")
	}

	var b bytes.Buffer
	if err := WriteText(&b, r); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	if !strings.Contains(b.String(), interval.UnexpectedAverageEnd.String()) {
		t.Errorf("WriteText() = %q; want the failure reason", b.String())
	}
}

func TestWriteText(t *testing.T) {
	r := build(t, "0.0 setavg 60\n10 setavg 10\n18 endavg\n20 calc\n30 endcalc\n40 endavg")

	var b bytes.Buffer
	if err := WriteText(&b, r); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	out := b.String()
	for _, want := range []string{"LINE", "setavg 60", "warning: line 1", "average 4..5"} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteText() = %q; want it to contain %q", out, want)
		}
	}
}

func TestWriteJSONInfinite(t *testing.T) {
	r := build(t, "0 setavg 0\n10 endavg")

	var b bytes.Buffer
	if err := WriteJSON(&b, r); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var back Report
	if err := json.Unmarshal(b.Bytes(), &back); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if back.Rows[1].Time != "∞" {
		t.Errorf("time at line 2 = (%s); want (∞)", back.Rows[1].Time)
	}
}

func TestWriteYAML(t *testing.T) {
	r := build(t, "0.0 setavg 60\n90.0")

	var b bytes.Buffer
	if err := WriteYAML(&b, r); err != nil {
		t.Fatalf("WriteYAML() error = %v", err)
	}

	var back Report
	if err := yaml.Unmarshal(b.Bytes(), &back); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if len(back.Rows) != 2 || back.Rows[1].Time != "90:00" {
		t.Errorf("WriteYAML() = %q; want 2 rows ending at 90:00", b.String())
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "JSON", "yaml"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q) error = %v", s, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Errorf("ParseFormat(xml) = nil error; want an error")
	}
}
