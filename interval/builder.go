package interval

import (
	"github.com/a-bouts/rally-pacer/roadmap"
	"github.com/a-bouts/rally-pacer/units"
)

type builder struct {
	lines []*roadmap.PositionLine
	fails Failures
}

// Build rebuilds the nesting of average speed zones. When the waypoints are not covered
// by a single zone, the top-level zones are stitched into a synthetic outer interval.
// Zones left open close on the last waypoint.
func Build(lines []*roadmap.PositionLine) (*Interval, Failures) {
	if len(lines) == 0 {
		return nil, nil
	}

	b := &builder{lines: lines}
	root := b.outer()
	return root, b.fails
}

func (b *builder) fragment(iv *Interval, from, to int) {
	if from >= to {
		return
	}
	iv.Fragments = append(iv.Fragments, Fragment{
		From:         from,
		To:           to,
		FromDistance: b.lines[from].Distance,
		ToDistance:   b.lines[to].Distance,
	})
}

// nested opens the zone at index open, then follows its thenavg chain. It returns the
// index where the last zone of the chain ends.
func (b *builder) nested(iv *Interval, open int) int {
	sub, end := b.zone(open, false)
	iv.Subs = append(iv.Subs, sub)
	for end < len(b.lines) && end != sub.Start {
		if _, ok := b.lines[end].ThenAvg(); !ok {
			break
		}
		sub, end = b.zone(end, true)
		iv.Subs = append(iv.Subs, sub)
	}
	return end
}

func (b *builder) zone(open int, chained bool) (*Interval, int) {
	n := len(b.lines)
	speed, _ := b.lines[open].OpensZone()

	iv := &Interval{
		Start:         open,
		StartDistance: b.lines[open].Distance,
		Speed:         speed,
		Chained:       chained,
	}

	fragStart := open
	i := open + 1
	for i < n {
		p := b.lines[i]
		if p.ClosesZone() {
			b.fragment(iv, fragStart, i)
			b.close(iv, i)
			return iv, i
		}
		if _, ok := p.SetAvg(); ok {
			b.fragment(iv, fragStart, i)
			end := b.nested(iv, i)
			fragStart = end
			i = end + 1
			continue
		}
		i++
	}

	b.fragment(iv, fragStart, n-1)
	b.close(iv, n-1)
	return iv, n - 1
}

func (b *builder) close(iv *Interval, end int) {
	iv.End = end
	iv.EndDistance = b.lines[end].Distance
}

func (b *builder) outer() *Interval {
	n := len(b.lines)
	iv := &Interval{
		Start:         0,
		StartDistance: b.lines[0].Distance,
		Synthetic:     true,
	}

	fragStart := 0
	i := 0
	for i < n {
		if _, ok := b.lines[i].OpensZone(); ok {
			b.fragment(iv, fragStart, i)
			end := b.nested(iv, i)
			fragStart = end
			i = end + 1
			continue
		}
		i++
	}
	b.fragment(iv, fragStart, n-1)
	b.close(iv, n-1)

	b.checkCoverage(iv)

	if len(iv.Subs) == 1 && len(iv.Fragments) == 0 {
		return iv.Subs[0]
	}

	if e := iv.ExemptTime(); e > 0 {
		iv.Speed = iv.TotalDistance().Per(e)
	}
	return iv
}

// checkCoverage reports top-level spans with no zone: a gap between two zones, or
// waypoints before the first or after the last zone
func (b *builder) checkCoverage(iv *Interval) {
	for _, f := range iv.Fragments {
		before, after := false, false
		for _, s := range iv.Subs {
			if s.End <= f.From {
				before = true
			}
			if s.Start >= f.To {
				after = true
			}
		}
		reason := AverageSpeedUnknown
		if before && after {
			reason = OuterIntervalNotCovered
		}
		for k := f.From + 1; k <= f.To; k++ {
			if b.lines[k].Distance-b.lines[k-1].Distance > units.Millimeter {
				b.fails = append(b.fails, Failure{Line: b.lines[k].Number, Reason: reason})
			}
		}
	}
}
