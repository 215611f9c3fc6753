package calc

import (
	"github.com/a-bouts/rally-pacer/roadmap"
)

// ZoneMatch pairs zone openers and closers for display. Opens is the ordinal of the
// zone opened on the line, 0 if none. Closes lists the ordinals of the zones closed on
// the line.
type ZoneMatch struct {
	Opens  int   `json:"opens,omitempty" yaml:"opens,omitempty"`
	Closes []int `json:"closes,omitempty" yaml:"closes,omitempty"`
}

// MatchSubZones numbers the zone openers in encounter order and matches closers LIFO.
// A thenavg closes the current zone and opens a fresh one. Zones still open at the end
// close on the last waypoint. Closers with nothing to close stay unmatched.
func MatchSubZones(lines []*roadmap.PositionLine) map[roadmap.LineNumber]ZoneMatch {
	res := make(map[roadmap.LineNumber]ZoneMatch)
	var stack []int
	next := 1

	pop := func(m *ZoneMatch) {
		if len(stack) == 0 {
			return
		}
		m.Closes = append(m.Closes, stack[len(stack)-1])
		stack = stack[:len(stack)-1]
	}

	for _, p := range lines {
		var m ZoneMatch
		if _, ok := p.EndAvg(); ok {
			pop(&m)
		} else if _, ok := p.ThenAvg(); ok {
			pop(&m)
			m.Opens = next
			stack = append(stack, next)
			next++
		} else if _, ok := p.SetAvg(); ok {
			m.Opens = next
			stack = append(stack, next)
			next++
		}
		if m.Opens != 0 || len(m.Closes) > 0 {
			res[p.Number] = m
		}
	}

	if len(lines) > 0 && len(stack) > 0 {
		last := lines[len(lines)-1].Number
		m := res[last]
		for len(stack) > 0 {
			pop(&m)
		}
		res[last] = m
	}

	return res
}
