package roadmap

import (
	"fmt"

	"github.com/a-bouts/rally-pacer/units"
)

type ModifierKind int

const (
	KindSetAvg ModifierKind = iota
	KindThenAvg
	KindEndAvg
	KindAstroTime
	KindOdo
	KindHere
	KindAddSynthetic
	KindSynthetic
	KindCalc
	KindEndCalc
)

// Modifier is one of the closed set of annotations a position line can carry
type Modifier interface {
	Kind() ModifierKind
	// Tokens renders the modifier back to its text notation
	Tokens() []string
}

type SetAvgSpeed struct {
	Speed units.Speed
}

type ThenAvgSpeed struct {
	Speed units.Speed
}

// EndAvgSpeed closes a zone. When HasSpeed is set the speed must match the opener.
type EndAvgSpeed struct {
	Speed    units.Speed
	HasSpeed bool
}

type AstroTime struct {
	Time units.TimeDayHrMinSec
}

type OdoDistance struct {
	Distance units.Distance
}

// Here declares the elapsed time in the enclosing zone at this waypoint
type Here struct {
	Elapsed units.TimeMinSec
}

// AddSynthetic asks the preprocessor for Count points every Interval past the line
type AddSynthetic struct {
	Interval units.Distance
	Count    int
}

type IsSynthetic struct{}

type CalculateAverage struct{}

type EndCalculateAverage struct{}

func (SetAvgSpeed) Kind() ModifierKind         { return KindSetAvg }
func (ThenAvgSpeed) Kind() ModifierKind        { return KindThenAvg }
func (EndAvgSpeed) Kind() ModifierKind         { return KindEndAvg }
func (AstroTime) Kind() ModifierKind           { return KindAstroTime }
func (OdoDistance) Kind() ModifierKind         { return KindOdo }
func (Here) Kind() ModifierKind                { return KindHere }
func (AddSynthetic) Kind() ModifierKind        { return KindAddSynthetic }
func (IsSynthetic) Kind() ModifierKind         { return KindSynthetic }
func (CalculateAverage) Kind() ModifierKind    { return KindCalc }
func (EndCalculateAverage) Kind() ModifierKind { return KindEndCalc }

func (m SetAvgSpeed) Tokens() []string {
	return []string{"setavg", m.Speed.String()}
}

func (m ThenAvgSpeed) Tokens() []string {
	return []string{"thenavg", m.Speed.String()}
}

func (m EndAvgSpeed) Tokens() []string {
	if m.HasSpeed {
		return []string{"endavg", m.Speed.String()}
	}
	return []string{"endavg"}
}

func (m AstroTime) Tokens() []string {
	t := m.Time
	return []string{"atime", fmt.Sprintf("%02d:%02d:%02d", t.Day*24+t.Hr, t.Min, t.Sec)}
}

func (m OdoDistance) Tokens() []string {
	return []string{"odo", m.Distance.String()}
}

func (m Here) Tokens() []string {
	return []string{"here", m.Elapsed.String()}
}

func (m AddSynthetic) Tokens() []string {
	return []string{"s", m.Interval.String(), fmt.Sprintf("%d", m.Count)}
}

// IsSynthetic has no text form: synthetic points are regenerated by the preprocessor
func (IsSynthetic) Tokens() []string {
	return nil
}

func (CalculateAverage) Tokens() []string {
	return []string{"calc"}
}

func (EndCalculateAverage) Tokens() []string {
	return []string{"endcalc"}
}
