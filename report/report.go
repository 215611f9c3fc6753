package report

import (
	"strings"

	"github.com/a-bouts/rally-pacer/calc"
	"github.com/a-bouts/rally-pacer/interval"
	"github.com/a-bouts/rally-pacer/roadmap"
	"github.com/a-bouts/rally-pacer/schedule"
	"github.com/a-bouts/rally-pacer/units"
)

// Row is one roadmap line of the report. Times are rendered as minute:second so
// infinite zones survive json and yaml.
type Row struct {
	Line      string          `json:"line" yaml:"line"`
	Comment   string          `json:"comment,omitempty" yaml:"comment,omitempty"`
	Distance  *units.Distance `json:"distance,omitempty" yaml:"distance,omitempty"`
	Modifiers string          `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Times     []string        `json:"times,omitempty" yaml:"times,omitempty"`
	Time      string          `json:"time,omitempty" yaml:"time,omitempty"`
	Odo       *units.Distance `json:"odo,omitempty" yaml:"odo,omitempty"`
	Astro     string          `json:"astro,omitempty" yaml:"astro,omitempty"`
	GoAt      *units.Speed    `json:"goAt,omitempty" yaml:"goAt,omitempty"`
	Zone      *calc.ZoneMatch `json:"zone,omitempty" yaml:"zone,omitempty"`
	Synthetic bool            `json:"synthetic,omitempty" yaml:"synthetic,omitempty"`
}

type Warning struct {
	Line       string `json:"line" yaml:"line"`
	ExemptTime string `json:"exemptTime" yaml:"exemptTime"`
	TargetTime string `json:"targetTime" yaml:"targetTime"`
	Message    string `json:"message" yaml:"message"`
}

type Average struct {
	From     string         `json:"from" yaml:"from"`
	To       string         `json:"to" yaml:"to"`
	Distance units.Distance `json:"distance" yaml:"distance"`
	Time     string         `json:"time" yaml:"time"`
	Speed    units.Speed    `json:"speed" yaml:"speed"`
}

type Failure struct {
	Line   string `json:"line" yaml:"line"`
	Reason string `json:"reason" yaml:"reason"`
}

type Report struct {
	Rows     []Row     `json:"rows,omitempty" yaml:"rows,omitempty"`
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Averages []Average `json:"averages,omitempty" yaml:"averages,omitempty"`
	Failures []Failure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

func (r *Report) Failed() bool {
	return len(r.Failures) > 0
}

// Build gathers every projection of a computed schedule. lines is the preprocessed
// roadmap, comments included.
func Build(lines []roadmap.Line, s *schedule.Schedule, calibration float64) *Report {
	odo := calc.Odometer(s.Lines, calibration)
	astro := calc.AstroTimes(s.Lines, s.TimeVectors)
	zones := calc.MatchSubZones(s.Lines)

	r := &Report{}
	for _, l := range lines {
		switch l := l.(type) {
		case *roadmap.CommentLine:
			r.Rows = append(r.Rows, Row{Line: l.Number.String(), Comment: l.Text})
		case *roadmap.PositionLine:
			row := Row{
				Line:      l.Number.String(),
				Modifiers: modifiers(l),
				Synthetic: l.Has(roadmap.KindSynthetic),
			}
			d := l.Distance
			row.Distance = &d

			if v, ok := s.TimeVectors[l.Number]; ok {
				for _, t := range v[:len(v)-1] {
					row.Times = append(row.Times, t.String())
				}
				row.Time = v.Outer().String()
			}
			if o, ok := odo[l.Number]; ok {
				row.Odo = &o
			}
			if c, ok := astro[l.Number]; ok {
				row.Astro = c.String()
			}
			if sp, ok := s.ImpliedSpeeds[l.Number]; ok && sp.IsFinite() {
				row.GoAt = &sp
			}
			if z, ok := zones[l.Number]; ok {
				row.Zone = &z
			}
			r.Rows = append(r.Rows, row)
		}
	}

	for _, w := range s.Warnings {
		r.Warnings = append(r.Warnings, Warning{
			Line:       w.Line.String(),
			ExemptTime: w.ExemptTime.String(),
			TargetTime: w.TargetTime.String(),
			Message:    w.String(),
		})
	}

	for _, a := range calc.Averages(s.Lines, s.TimeVectors) {
		avg := Average{
			From:     a.From.String(),
			To:       a.To.String(),
			Distance: a.Distance,
			Time:     a.Time.String(),
		}
		if a.Speed.IsFinite() {
			avg.Speed = a.Speed
		}
		r.Averages = append(r.Averages, avg)
	}

	return r
}

// Failed reports the validation failures of a roadmap that could not be scheduled
func Failed(fails interval.Failures) *Report {
	r := &Report{}
	for _, f := range fails {
		r.Failures = append(r.Failures, Failure{Line: f.Line.String(), Reason: f.Reason.String()})
	}
	return r
}

func modifiers(p *roadmap.PositionLine) string {
	var tokens []string
	for _, m := range p.Modifiers {
		tokens = append(tokens, m.Tokens()...)
	}
	return strings.Join(tokens, " ")
}
