package calc

import (
	"math"
	"reflect"
	"testing"

	"github.com/a-bouts/rally-pacer/roadmap"
	"github.com/a-bouts/rally-pacer/schedule"
	"github.com/a-bouts/rally-pacer/units"
)

func positions(t *testing.T, text string) []*roadmap.PositionLine {
	t.Helper()
	lines, err := roadmap.Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", text, err)
	}
	return roadmap.Positions(roadmap.Preprocess(lines))
}

func vectors(t *testing.T, lines []*roadmap.PositionLine) map[roadmap.LineNumber]units.TimeHrVector {
	t.Helper()
	s, fails := schedule.Compute(lines)
	if len(fails) != 0 {
		t.Fatalf("Compute() failures = %v", fails)
	}
	return s.TimeVectors
}

func line(n int) roadmap.LineNumber {
	return roadmap.LineNumber{Number: n}
}

func TestAstroTimes(t *testing.T) {
	lines := positions(t, "0.0 setavg 60 atime 10:00:00\n30.0\n90.0")
	got := AstroTimes(lines, vectors(t, lines))

	want := map[roadmap.LineNumber]string{
		line(2): "10:30:00",
		line(3): "11:30:00",
	}
	if len(got) != len(want) {
		t.Errorf("AstroTimes() = (%v); want (%v)", got, want)
	}
	for n, w := range want {
		if got[n].String() != w {
			t.Errorf("AstroTimes()[%s] = (%s); want (%s)", n, got[n], w)
		}
	}
}

func TestAstroTimesPastMidnight(t *testing.T) {
	lines := positions(t, "0.0 setavg 60 atime 23:30:00\n60.0")
	got := AstroTimes(lines, vectors(t, lines))

	if want := (units.TimeDayHrMinSec{Day: 1, Hr: 0, Min: 30}); got[line(2)] != want {
		t.Errorf("AstroTimes()[2] = (%+v); want (%+v)", got[line(2)], want)
	}
}

func TestAstroTimesAnchorCount(t *testing.T) {
	tests := []string{
		"0.0 setavg 60\n30.0",
		"0.0 setavg 60 atime 10:00:00\n30.0 atime 11:00:00\n60.0",
	}
	for _, text := range tests {
		lines := positions(t, text)
		if got := AstroTimes(lines, vectors(t, lines)); len(got) != 0 {
			t.Errorf("AstroTimes(%q) = (%v); want nothing", text, got)
		}
	}
}

func TestAstroTimesBeforeAnchor(t *testing.T) {
	lines := positions(t, "0.0 setavg 60\n30.0 atime 10:00:00\n60.0")
	got := AstroTimes(lines, vectors(t, lines))

	if _, ok := got[line(1)]; ok {
		t.Errorf("AstroTimes() projected a waypoint before the anchor")
	}
	if got[line(3)].String() != "10:30:00" {
		t.Errorf("AstroTimes()[3] = (%s); want (10:30:00)", got[line(3)])
	}
}

func TestOdometer(t *testing.T) {
	lines := positions(t, "0.0 setavg 60\n10.0 odo 1000\n20.0\n30.0 odo 2000\n40.0")

	got := Odometer(lines, 1.1)
	want := map[roadmap.LineNumber]units.Distance{
		line(2): 1000,
		line(3): 1011,
		line(4): 2000,
		line(5): 2011,
	}
	if len(got) != len(want) {
		t.Errorf("Odometer() = (%v); want (%v)", got, want)
	}
	for n, w := range want {
		if math.Abs(float64(got[n]-w)) > 1e-9 {
			t.Errorf("Odometer()[%s] = (%s); want (%s)", n, got[n], w)
		}
	}
}

func TestMatchSubZones(t *testing.T) {
	text := `0 setavg 60
5 setavg 40
10 thenavg 50
15 endavg
20 endavg
25 endavg
30 setavg 30
40`
	got := MatchSubZones(positions(t, text))

	want := map[roadmap.LineNumber]ZoneMatch{
		line(1): {Opens: 1},
		line(2): {Opens: 2},
		line(3): {Opens: 3, Closes: []int{2}},
		line(4): {Closes: []int{3}},
		line(5): {Closes: []int{1}},
		line(7): {Opens: 4},
		line(8): {Closes: []int{4}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MatchSubZones() = (%v); want (%v)", got, want)
	}
}

func TestAverages(t *testing.T) {
	text := `0 setavg 60
10 calc
40 endcalc
50 calc
70`
	lines := positions(t, text)
	got := Averages(lines, vectors(t, lines))

	if len(got) != 2 {
		t.Fatalf("Averages() = (%v); want 2 ranges", got)
	}
	if got[0].From != line(2) || got[0].To != line(3) || got[0].Distance != 30 || math.Abs(float64(got[0].Speed-60)) > 1e-9 {
		t.Errorf("Averages()[0] = (%+v); want 2..3, 30 km at 60", got[0])
	}
	if got[1].From != line(4) || got[1].To != line(5) || math.Abs(float64(got[1].Time-1.0/3)) > 1e-9 {
		t.Errorf("Averages()[1] = (%+v); want 4..5 in 1/3 h", got[1])
	}
}
