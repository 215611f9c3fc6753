package schedule

import (
	"fmt"

	"github.com/a-bouts/rally-pacer/interval"
	"github.com/a-bouts/rally-pacer/roadmap"
	"github.com/a-bouts/rally-pacer/units"
)

// CoveredThreshold is the pure distance under which a zone counts as fully covered by
// its nested zones
const CoveredThreshold units.Distance = 0.001

// pure times at or under this are treated as exhausted
const timeEpsilon units.TimeHr = 1e-9

// Warning marks a zone, or the part of a zone before a here anchor, whose nested
// zones already use up its time budget
type Warning struct {
	Line       roadmap.LineNumber `json:"line" yaml:"line"`
	ExemptTime units.TimeHr       `json:"exemptTime" yaml:"exemptTime"`
	TargetTime units.TimeHr       `json:"targetTime" yaml:"targetTime"`
	// Anchored is set when here anchors bound the budget
	Anchored bool `json:"anchored" yaml:"anchored"`
}

func (w Warning) String() string {
	if w.Anchored {
		if w.ExemptTime == 0 {
			return fmt.Sprintf("line %s: here anchors leave a budget of %s", w.Line, w.TargetTime)
		}
		return fmt.Sprintf("line %s: nested zones take %s, budget between here anchors is %s", w.Line, w.ExemptTime, w.TargetTime)
	}
	return fmt.Sprintf("line %s: nested zones take %s, zone budget is %s", w.Line, w.ExemptTime, w.TargetTime)
}

// Segment is a step between two consecutive waypoints outside any nested zone
type Segment struct {
	From      int
	To        int
	Speed     units.Speed
	ZoneSpeed units.Speed
}

type Schedule struct {
	Lines         []*roadmap.PositionLine
	Root          *interval.Interval
	TimeVectors   map[roadmap.LineNumber]units.TimeHrVector
	ImpliedSpeeds map[roadmap.LineNumber]units.Speed
	Warnings      []Warning
	Segments      []Segment
}

// Outer returns the time since the start of the roadmap at a waypoint
func (s *Schedule) Outer(n roadmap.LineNumber) (units.TimeHr, bool) {
	v, ok := s.TimeVectors[n]
	if !ok {
		return 0, false
	}
	return v.Outer(), true
}

func (s *Schedule) Line(n roadmap.LineNumber) (*roadmap.PositionLine, bool) {
	for _, p := range s.Lines {
		if p.Number == n {
			return p, true
		}
	}
	return nil, false
}
