package interval

import (
	"github.com/a-bouts/rally-pacer/units"
)

// Fragment is a zone-local span of consecutive waypoints outside any nested zone.
// From and To index the waypoint slice the tree was built from.
type Fragment struct {
	From         int
	To           int
	FromDistance units.Distance
	ToDistance   units.Distance
}

func (f Fragment) Distance() units.Distance {
	return f.ToDistance.Sub(f.FromDistance)
}

// Interval is an average speed zone. Sub-intervals and fragments are ordered and
// contiguous: together they cover Start..End.
type Interval struct {
	Start         int
	End           int
	StartDistance units.Distance
	EndDistance   units.Distance
	Speed         units.Speed
	Fragments     []Fragment
	Subs          []*Interval
	// Chained is set on a zone opened by thenavg right where its previous sibling ends
	Chained bool
	// Synthetic marks the outer interval stitching several top-level zones
	Synthetic bool
}

func (iv *Interval) TotalDistance() units.Distance {
	return iv.EndDistance.Sub(iv.StartDistance)
}

func (iv *Interval) NestedDistance() units.Distance {
	var d units.Distance
	for _, s := range iv.Subs {
		d += s.TotalDistance()
	}
	return d
}

func (iv *Interval) PureDistance() units.Distance {
	return iv.TotalDistance().Sub(iv.NestedDistance())
}

func (iv *Interval) TargetTime() units.TimeHr {
	d := iv.TotalDistance()
	if d == 0 {
		return 0
	}
	return d.Div(iv.Speed)
}

func (iv *Interval) ExemptTime() units.TimeHr {
	var t units.TimeHr
	for _, s := range iv.Subs {
		t += s.TargetTime()
	}
	return t
}

func (iv *Interval) PureTime() units.TimeHr {
	return iv.TargetTime().Sub(iv.ExemptTime()).Max0()
}

func (iv *Interval) PureSpeed() units.Speed {
	return iv.PureDistance().Per(iv.PureTime())
}

// Event is either a pure fragment or a sub-interval
type Event struct {
	Fragment *Fragment
	Sub      *Interval
}

func (e Event) start() int {
	if e.Sub != nil {
		return e.Sub.Start
	}
	return e.Fragment.From
}

// Events interleaves fragments and sub-intervals in distance order
func (iv *Interval) Events() []Event {
	res := make([]Event, 0, len(iv.Fragments)+len(iv.Subs))
	i, j := 0, 0
	for i < len(iv.Fragments) || j < len(iv.Subs) {
		if j >= len(iv.Subs) || (i < len(iv.Fragments) && iv.Fragments[i].From < iv.Subs[j].Start) {
			res = append(res, Event{Fragment: &iv.Fragments[i]})
			i++
		} else {
			res = append(res, Event{Sub: iv.Subs[j]})
			j++
		}
	}
	return res
}

// Walk visits the interval and its descendants depth first, parents before children
func (iv *Interval) Walk(f func(iv *Interval, depth int)) {
	iv.walk(f, 0)
}

func (iv *Interval) walk(f func(iv *Interval, depth int), depth int) {
	f(iv, depth)
	for _, s := range iv.Subs {
		s.walk(f, depth+1)
	}
}
