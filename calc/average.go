package calc

import (
	"github.com/a-bouts/rally-pacer/roadmap"
	"github.com/a-bouts/rally-pacer/units"
)

// AverageRange is the average speed between a calc and the following endcalc
type AverageRange struct {
	From     roadmap.LineNumber `json:"from" yaml:"from"`
	To       roadmap.LineNumber `json:"to" yaml:"to"`
	Distance units.Distance     `json:"distance" yaml:"distance"`
	Time     units.TimeHr       `json:"time" yaml:"time"`
	Speed    units.Speed        `json:"speed" yaml:"speed"`
}

// Averages reports the calc..endcalc ranges. A calc left open ends on the last
// waypoint, a second calc restarts the range.
func Averages(lines []*roadmap.PositionLine, vectors map[roadmap.LineNumber]units.TimeHrVector) []AverageRange {
	var res []AverageRange
	var from *roadmap.PositionLine

	add := func(to *roadmap.PositionLine) {
		d := to.Distance.Sub(from.Distance)
		t := vectors[to.Number].Outer().Sub(vectors[from.Number].Outer())
		r := AverageRange{From: from.Number, To: to.Number, Distance: d, Time: t}
		if t > 0 {
			r.Speed = d.Per(t)
		}
		res = append(res, r)
	}

	for _, p := range lines {
		if p.Has(roadmap.KindEndCalc) && from != nil {
			add(p)
			from = nil
		}
		if p.Has(roadmap.KindCalc) {
			from = p
		}
	}
	if from != nil && len(lines) > 0 && lines[len(lines)-1] != from {
		add(lines[len(lines)-1])
	}

	return res
}
