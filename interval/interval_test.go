package interval

import (
	"testing"

	"github.com/a-bouts/rally-pacer/roadmap"
)

func positions(t *testing.T, text string) []*roadmap.PositionLine {
	t.Helper()
	lines, err := roadmap.Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", text, err)
	}
	return roadmap.Positions(lines)
}

func line(n int) roadmap.LineNumber {
	return roadmap.LineNumber{Number: n}
}

func TestBuildSingleZone(t *testing.T) {
	root, fails := Build(positions(t, "0.0 setavg 60\n90.0"))
	if len(fails) != 0 {
		t.Fatalf("Build() failures = %v", fails)
	}
	if root.Synthetic || root.Start != 0 || root.End != 1 || root.Speed != 60 {
		t.Errorf("Build() = (%+v); want the setavg 60 zone over both lines", root)
	}
	if root.TargetTime() != 1.5 {
		t.Errorf("TargetTime() = (%f); want (1.5)", root.TargetTime())
	}
}

func TestBuildNested(t *testing.T) {
	root, fails := Build(positions(t, "0.0 setavg 60\n2.0 setavg 120\n3.0 endavg\n10.0 endavg"))
	if len(fails) != 0 {
		t.Fatalf("Build() failures = %v", fails)
	}
	if len(root.Subs) != 1 || len(root.Fragments) != 2 {
		t.Fatalf("Build() = %d subs, %d fragments; want 1 sub, 2 fragments", len(root.Subs), len(root.Fragments))
	}

	sub := root.Subs[0]
	if sub.Start != 1 || sub.End != 2 || sub.Speed != 120 {
		t.Errorf("sub = (%+v); want lines 2..3 at 120", sub)
	}
	if root.PureDistance() != 9 {
		t.Errorf("PureDistance() = (%f); want (9)", root.PureDistance())
	}
	if got, want := root.ExemptTime(), sub.TargetTime(); got != want {
		t.Errorf("ExemptTime() = (%f); want (%f)", got, want)
	}

	events := root.Events()
	if len(events) != 3 || events[0].Fragment == nil || events[1].Sub != sub || events[2].Fragment == nil {
		t.Errorf("Events() = (%+v); want fragment, sub, fragment", events)
	}
}

func TestBuildChained(t *testing.T) {
	root, fails := Build(positions(t, "0 setavg 60\n30 thenavg 90\n120 endavg"))
	if len(fails) != 0 {
		t.Fatalf("Build() failures = %v", fails)
	}
	if !root.Synthetic || len(root.Subs) != 2 {
		t.Fatalf("Build() = (%+v); want a synthetic outer with 2 zones", root)
	}
	if root.Subs[0].Chained || !root.Subs[1].Chained {
		t.Errorf("Chained = (%t, %t); want (false, true)", root.Subs[0].Chained, root.Subs[1].Chained)
	}
	if root.Subs[0].End != 1 || root.Subs[1].Start != 1 {
		t.Errorf("chained zones meet at (%d, %d); want (1, 1)", root.Subs[0].End, root.Subs[1].Start)
	}
}

func TestBuildDeepInterleaving(t *testing.T) {
	text := `0 setavg 50
1 setavg 40
2 setavg 30
3 setavg 20
4 endavg
5 thenavg 25
6 endavg
7 setavg 45
8 endavg
9 endavg
12 endavg`
	root, fails := Build(positions(t, text))
	if len(fails) != 0 {
		t.Fatalf("Build() failures = %v", fails)
	}

	depths := map[int]int{}
	root.Walk(func(iv *Interval, depth int) {
		depths[iv.Start] = depth
	})

	want := map[int]int{0: 0, 1: 1, 2: 2, 3: 3, 5: 2, 7: 2}
	for start, d := range want {
		if depths[start] != d {
			t.Errorf("zone at index %d depth = (%d); want (%d)", start, depths[start], d)
		}
	}
	if len(depths) != len(want) {
		t.Errorf("Walk() visited %d zones; want %d", len(depths), len(want))
	}

	if root.End != 10 || root.Subs[0].End != 9 {
		t.Errorf("root ends at (%d), its sub at (%d); want (10, 9)", root.End, root.Subs[0].End)
	}
}

func TestBuildGap(t *testing.T) {
	_, fails := Build(positions(t, "0 setavg 60\n10 endavg\n20 setavg 50\n30 endavg"))
	if !fails.Has(line(3), OuterIntervalNotCovered) {
		t.Errorf("Build() failures = (%v); want OuterIntervalNotCovered at line 3", fails)
	}
}

func TestBuildUnknownSpeed(t *testing.T) {
	_, fails := Build(positions(t, "0\n5 setavg 60\n10 endavg\n12"))
	if !fails.Has(line(2), AverageSpeedUnknown) || !fails.Has(line(4), AverageSpeedUnknown) {
		t.Errorf("Build() failures = (%v); want AverageSpeedUnknown at lines 2 and 4", fails)
	}
}

func TestBuildZeroDistanceLead(t *testing.T) {
	root, fails := Build(positions(t, "0\n0 setavg 60\n10"))
	if len(fails) != 0 {
		t.Fatalf("Build() failures = %v", fails)
	}
	if !root.Synthetic || len(root.Subs) != 1 {
		t.Errorf("Build() = (%+v); want a synthetic outer around one zone", root)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		text   string
		line   int
		reason FailureReason
	}{
		{"0.0\n1.0 endavg", 2, UnexpectedAverageEnd},
		{"0 thenavg 50\n1 endavg", 1, UnexpectedAverageEnd},
		{"0 setavg 60\n5\n4.5\n10", 3, DistanceIsNotIncreasing},
		{"0 setavg 60\n10 endavg 50", 2, AverageEndSpeedMismatch},
	}
	for _, tt := range tests {
		fails := Validate(positions(t, tt.text))
		if !fails.Has(line(tt.line), tt.reason) {
			t.Errorf("Validate(%q) = (%v); want %s at line %d", tt.text, fails, tt.reason, tt.line)
		}
	}

	if fails := Validate(positions(t, "0 setavg 60\n5\n4.9999995\n10 endavg 60")); len(fails) != 0 {
		t.Errorf("Validate() = (%v); want no failure within 1 mm", fails)
	}
}

func TestNormalize(t *testing.T) {
	fs := Failures{
		{Line: line(3), Reason: AverageSpeedUnknown},
		{Line: line(1), Reason: UnexpectedAverageEnd},
		{Line: line(3), Reason: AverageSpeedUnknown},
	}
	got := fs.Normalize()
	if len(got) != 2 || got[0].Line != line(1) || got[1].Line != line(3) {
		t.Errorf("Normalize() = (%v); want lines 1 and 3 once each", got)
	}
}
