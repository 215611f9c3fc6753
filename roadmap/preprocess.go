package roadmap

import (
	"math"
	"sort"

	"github.com/a-bouts/rally-pacer/units"
)

// distances are matched at metre resolution
func distanceKey(d units.Distance) int64 {
	return int64(math.Round(float64(d) / float64(units.Meter)))
}

// Preprocess expands the "s D N" directives into synthetic waypoints merged by
// distance. Points landing on an existing distance, or at or past the last waypoint,
// are dropped, so running it twice changes nothing.
func Preprocess(lines []Line) []Line {
	positions := Positions(lines)
	if len(positions) == 0 {
		return lines
	}

	max := positions[0].Distance
	existing := make(map[int64]bool, len(positions))
	for _, p := range positions {
		existing[distanceKey(p.Distance)] = true
		if p.Distance > max {
			max = p.Distance
		}
	}

	var synthetics []*PositionLine
	for _, p := range positions {
		// numbered across every directive of the line so that sub numbers stay unique
		sub := 0
		for _, m := range p.Modifiers {
			add, ok := m.(AddSynthetic)
			if !ok {
				continue
			}
			for k := 1; k <= add.Count; k++ {
				sub++
				d := p.Distance + add.Interval.Scale(float64(k))
				if d >= max || existing[distanceKey(d)] {
					continue
				}
				existing[distanceKey(d)] = true
				synthetics = append(synthetics, &PositionLine{
					Number:    LineNumber{Number: p.Number.Number, SubNumber: sub},
					Distance:  d,
					Modifiers: []Modifier{IsSynthetic{}},
				})
			}
		}
	}
	if len(synthetics) == 0 {
		return lines
	}

	sort.SliceStable(synthetics, func(i, j int) bool {
		return synthetics[i].Distance < synthetics[j].Distance
	})

	// after each ordinary waypoint, flush the synthetic points lying before the next one
	res := make([]Line, 0, len(lines)+len(synthetics))
	next := 0
	for i, l := range lines {
		res = append(res, l)
		p, ok := l.(*PositionLine)
		if !ok {
			continue
		}
		limit := units.Distance(math.Inf(1))
		for _, following := range lines[i+1:] {
			if q, ok := following.(*PositionLine); ok {
				limit = q.Distance
				break
			}
		}
		for next < len(synthetics) && synthetics[next].Distance >= p.Distance && synthetics[next].Distance < limit {
			res = append(res, synthetics[next])
			next++
		}
	}
	for ; next < len(synthetics); next++ {
		res = append(res, synthetics[next])
	}

	return res
}
