package schedule

import (
	"github.com/a-bouts/rally-pacer/roadmap"
	"github.com/a-bouts/rally-pacer/units"
)

type span struct {
	from      units.Distance
	to        units.Distance
	speed     units.Speed
	zoneSpeed units.Speed
}

// Interpolator gives the expected elapsed time between arbitrary distances, used
// while racing between two waypoints
type Interpolator struct {
	schedule *Schedule
	spans    []span
}

func NewInterpolator(s *Schedule) *Interpolator {
	in := &Interpolator{schedule: s}
	for _, seg := range s.Segments {
		in.spans = append(in.spans, span{
			from:      s.Lines[seg.From].Distance,
			to:        s.Lines[seg.To].Distance,
			speed:     seg.Speed,
			zoneSpeed: seg.ZoneSpeed,
		})
	}
	return in
}

// TimeBetween is the expected time to go from base to target. It is negative when
// target precedes base.
func (in *Interpolator) TimeBetween(base, target units.Distance) units.TimeHr {
	if target < base {
		return in.TimeBetween(target, base).Neg()
	}
	if len(in.spans) == 0 || target == base {
		return 0
	}

	var t units.TimeHr

	// past the ends of the roadmap the nearest zone target speed applies
	first, last := in.spans[0], in.spans[len(in.spans)-1]
	if base < first.from {
		end := minDistance(target, first.from)
		t = t.Add(pureTime(end.Sub(base), first.zoneSpeed))
	}
	if target > last.to {
		start := maxDistance(base, last.to)
		t = t.Add(pureTime(target.Sub(start), last.zoneSpeed))
	}

	for _, sp := range in.spans {
		if sp.to <= base {
			continue
		}
		if sp.from >= target {
			break
		}
		from := maxDistance(sp.from, base)
		to := minDistance(sp.to, target)
		t = t.Add(pureTime(to.Sub(from), sp.speed))
	}

	return t
}

// TimeFrom is the expected time from the waypoint base to the distance target
func (in *Interpolator) TimeFrom(base roadmap.LineNumber, target units.Distance) (units.TimeHr, bool) {
	p, ok := in.schedule.Line(base)
	if !ok {
		return 0, false
	}
	return in.TimeBetween(p.Distance, target), true
}

func minDistance(a, b units.Distance) units.Distance {
	if a < b {
		return a
	}
	return b
}

func maxDistance(a, b units.Distance) units.Distance {
	if a > b {
		return a
	}
	return b
}
