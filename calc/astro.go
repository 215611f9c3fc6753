package calc

import (
	"github.com/a-bouts/rally-pacer/roadmap"
	"github.com/a-bouts/rally-pacer/units"
)

// AstroTimes projects clock times from the single atime anchor of the roadmap. With no
// anchor, or more than one, nothing is projected.
func AstroTimes(lines []*roadmap.PositionLine, vectors map[roadmap.LineNumber]units.TimeHrVector) map[roadmap.LineNumber]units.TimeDayHrMinSec {
	res := make(map[roadmap.LineNumber]units.TimeDayHrMinSec)

	var anchor *roadmap.PositionLine
	var clock units.TimeDayHrMinSec
	for _, p := range lines {
		if c, ok := p.AstroTime(); ok {
			if anchor != nil {
				return res
			}
			anchor, clock = p, c
		}
	}
	if anchor == nil {
		return res
	}

	base, ok := vectors[anchor.Number]
	if !ok {
		return res
	}

	for _, p := range lines {
		if p == anchor {
			continue
		}
		v, ok := vectors[p.Number]
		if !ok {
			continue
		}
		delta := v.Outer().Sub(base.Outer())
		if !delta.IsFinite() || delta <= 0 {
			continue
		}
		res[p.Number] = clock.Add(delta)
	}

	return res
}
