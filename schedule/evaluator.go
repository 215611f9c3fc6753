package schedule

import (
	"math"
	"sort"

	"github.com/a-bouts/rally-pacer/interval"
	"github.com/a-bouts/rally-pacer/roadmap"
	"github.com/a-bouts/rally-pacer/units"
)

// Compute builds the zone tree of a preprocessed roadmap and derives, for every
// waypoint, the elapsed time since the start of each enclosing zone. When the roadmap
// cannot be scheduled every offending line is returned instead.
func Compute(lines []*roadmap.PositionLine) (*Schedule, interval.Failures) {
	fails := interval.Validate(lines)
	root, bf := interval.Build(lines)
	fails = append(fails, bf...)
	if len(fails) > 0 {
		return nil, fails.Normalize()
	}

	s := &Schedule{
		Lines:         lines,
		Root:          root,
		TimeVectors:   make(map[roadmap.LineNumber]units.TimeHrVector, len(lines)),
		ImpliedSpeeds: make(map[roadmap.LineNumber]units.Speed),
	}
	if root == nil {
		return s, nil
	}

	e := &evaluator{lines: lines, schedule: s}
	_, vectors := e.eval(root, 0)
	for k, v := range vectors {
		s.TimeVectors[lines[k].Number] = v
	}

	sort.SliceStable(s.Segments, func(i, j int) bool {
		return s.Segments[i].From < s.Segments[j].From
	})

	return s, nil
}

type evaluator struct {
	lines    []*roadmap.PositionLine
	schedule *Schedule
}

type subResult struct {
	offset  units.TimeHr
	end     units.TimeHr
	vectors map[int]units.TimeHrVector
}

func (r subResult) duration() units.TimeHr {
	return r.end.Sub(r.offset)
}

type anchor struct {
	index int
	time  units.TimeHr
}

type piece struct {
	from  anchor
	to    anchor
	speed units.Speed
}

func (e *evaluator) distance(from, to int) units.Distance {
	return e.lines[to].Distance.Sub(e.lines[from].Distance)
}

// eval returns the local time at the end of iv and the local time vectors of every
// waypoint inside it. offset is the local time at the start, non zero for a zone
// chained to its previous sibling.
func (e *evaluator) eval(iv *interval.Interval, offset units.TimeHr) (units.TimeHr, map[int]units.TimeHrVector) {
	subs := make([]subResult, len(iv.Subs))
	for j, sub := range iv.Subs {
		var off units.TimeHr
		if sub.Chained && j > 0 && iv.Subs[j-1].End == sub.Start {
			off = subs[j-1].end
		}
		end, vectors := e.eval(sub, off)
		subs[j] = subResult{offset: off, end: end, vectors: vectors}
	}

	pieces := e.pieces(iv, offset, subs)

	vectors := map[int]units.TimeHrVector{iv.Start: {offset}}
	t := offset
	p, j := 0, 0
	for _, ev := range iv.Events() {
		if ev.Sub != nil {
			r := subs[j]
			j++
			base := t.Sub(r.offset)
			for k, v := range r.vectors {
				vectors[k] = v.Rebase(base)
			}
			t = t.Add(r.duration())
			continue
		}

		f := ev.Fragment
		for k := f.From + 1; k <= f.To; k++ {
			for p < len(pieces)-1 && k-1 >= pieces[p].to.index {
				p++
			}
			speed := units.Speed(math.Inf(1))
			if len(pieces) > 0 {
				speed = pieces[p].speed
			}
			d := e.distance(k-1, k)
			if d > 0 {
				t = t.Add(pureTime(d, speed))
				e.schedule.Segments = append(e.schedule.Segments, Segment{From: k - 1, To: k, Speed: speed, ZoneSpeed: iv.Speed})
			}
			vectors[k] = units.TimeHrVector{t}
		}
	}

	return t, vectors
}

func pureTime(d units.Distance, s units.Speed) units.TimeHr {
	if d == 0 || s.IsInf() {
		return 0
	}
	return d.Div(s)
}

// pieces splits iv at its here anchors and derives the pure speed of each piece from
// its time budget minus the time spent in its nested zones
func (e *evaluator) pieces(iv *interval.Interval, offset units.TimeHr, subs []subResult) []piece {
	if iv.Synthetic {
		return nil
	}

	anchors := []anchor{{index: iv.Start, time: offset}}
	endSet := false
	for _, f := range iv.Fragments {
		for k := f.From + 1; k <= f.To; k++ {
			if h, ok := e.lines[k].Here(); ok {
				anchors = append(anchors, anchor{index: k, time: h})
				if k == iv.End {
					endSet = true
				}
			}
		}
	}
	if !endSet {
		anchors = append(anchors, anchor{index: iv.End, time: offset.Add(iv.TargetTime())})
	}
	hasHere := len(anchors) > 2 || endSet

	var res []piece
	for a := 0; a+1 < len(anchors); a++ {
		from, to := anchors[a], anchors[a+1]
		if to.index <= from.index {
			continue
		}

		budget := to.time.Sub(from.time)
		var exempt units.TimeHr
		var nested units.Distance
		mixed := false
		for j, sub := range iv.Subs {
			if sub.Start >= from.index && sub.End <= to.index {
				exempt = exempt.Add(subs[j].duration())
				nested += sub.TotalDistance()
				mixed = true
			}
		}

		pc := piece{from: from, to: to, speed: units.Speed(math.Inf(1))}
		pure := e.distance(from.index, to.index).Sub(nested)
		pureTime := budget.Sub(exempt)
		switch {
		case pure > CoveredThreshold && pureTime > timeEpsilon:
			pc.speed = pure.Per(pureTime)
			if mixed || hasHere {
				e.schedule.ImpliedSpeeds[e.lines[from.index].Number] = pc.speed
			}
		case pure > CoveredThreshold || pureTime < -timeEpsilon:
			// covered pieces only warn when their nested zones overrun the budget
			e.schedule.Warnings = append(e.schedule.Warnings, Warning{
				Line:       e.lines[from.index].Number,
				ExemptTime: exempt,
				TargetTime: budget,
				Anchored:   hasHere,
			})
		}
		res = append(res, pc)
	}

	return res
}
