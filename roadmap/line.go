package roadmap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/a-bouts/rally-pacer/units"
)

// LineNumber identifies a waypoint. SubNumber distinguishes synthetic points inserted
// after the original line Number.
type LineNumber struct {
	Number    int `json:"number"`
	SubNumber int `json:"subNumber"`
}

func (n LineNumber) Less(o LineNumber) bool {
	if n.Number != o.Number {
		return n.Number < o.Number
	}
	return n.SubNumber < o.SubNumber
}

func (n LineNumber) String() string {
	if n.SubNumber == 0 {
		return fmt.Sprintf("%d", n.Number)
	}
	return fmt.Sprintf("%d.%d", n.Number, n.SubNumber)
}

func (n LineNumber) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// ParseLineNumber reads the "3" or "3.1" form written by String
func ParseLineNumber(s string) (LineNumber, error) {
	num, sub, found := strings.Cut(s, ".")
	n, err := strconv.Atoi(num)
	if err != nil || n < 1 {
		return LineNumber{}, fmt.Errorf("invalid line number %q", s)
	}
	res := LineNumber{Number: n}
	if found {
		res.SubNumber, err = strconv.Atoi(sub)
		if err != nil || res.SubNumber < 0 {
			return LineNumber{}, fmt.Errorf("invalid line number %q", s)
		}
	}
	return res, nil
}

// Line is either a *CommentLine or a *PositionLine
type Line interface {
	LineNumber() LineNumber
	isLine()
}

type CommentLine struct {
	Number LineNumber
	Text   string
}

func (c *CommentLine) LineNumber() LineNumber {
	return c.Number
}

func (c *CommentLine) isLine() {}

type PositionLine struct {
	Number    LineNumber
	Distance  units.Distance
	Modifiers []Modifier
}

func (p *PositionLine) LineNumber() LineNumber {
	return p.Number
}

func (p *PositionLine) isLine() {}

// Positions keeps the position lines, in order
func Positions(lines []Line) []*PositionLine {
	var res []*PositionLine
	for _, l := range lines {
		if p, ok := l.(*PositionLine); ok {
			res = append(res, p)
		}
	}
	return res
}

func (p *PositionLine) SetAvg() (units.Speed, bool) {
	for _, m := range p.Modifiers {
		if s, ok := m.(SetAvgSpeed); ok {
			return s.Speed, true
		}
	}
	return 0, false
}

func (p *PositionLine) ThenAvg() (units.Speed, bool) {
	for _, m := range p.Modifiers {
		if s, ok := m.(ThenAvgSpeed); ok {
			return s.Speed, true
		}
	}
	return 0, false
}

func (p *PositionLine) EndAvg() (EndAvgSpeed, bool) {
	for _, m := range p.Modifiers {
		if e, ok := m.(EndAvgSpeed); ok {
			return e, true
		}
	}
	return EndAvgSpeed{}, false
}

// OpensZone reports the speed of the zone opened on this line by setavg or thenavg
func (p *PositionLine) OpensZone() (units.Speed, bool) {
	if s, ok := p.SetAvg(); ok {
		return s, true
	}
	return p.ThenAvg()
}

// ClosesZone is true for endavg and thenavg
func (p *PositionLine) ClosesZone() bool {
	if _, ok := p.EndAvg(); ok {
		return true
	}
	_, ok := p.ThenAvg()
	return ok
}

func (p *PositionLine) Here() (units.TimeHr, bool) {
	for _, m := range p.Modifiers {
		if h, ok := m.(Here); ok {
			return h.Elapsed.TimeHr(), true
		}
	}
	return 0, false
}

func (p *PositionLine) Odo() (units.Distance, bool) {
	for _, m := range p.Modifiers {
		if o, ok := m.(OdoDistance); ok {
			return o.Distance, true
		}
	}
	return 0, false
}

func (p *PositionLine) AstroTime() (units.TimeDayHrMinSec, bool) {
	for _, m := range p.Modifiers {
		if a, ok := m.(AstroTime); ok {
			return a.Time, true
		}
	}
	return units.TimeDayHrMinSec{}, false
}

func (p *PositionLine) Has(kind ModifierKind) bool {
	for _, m := range p.Modifiers {
		if m.Kind() == kind {
			return true
		}
	}
	return false
}
