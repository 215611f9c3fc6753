package model

import (
	"github.com/a-bouts/rally-pacer/units"
)

// Roadmap is the json form of a schedule request. A plain text body is read as Text
// with the default calibration.
type Roadmap struct {
	Text        string  `json:"text"`
	Calibration float64 `json:"calibration"`
}

type Interpolation struct {
	Base   string         `json:"base"`
	Target units.Distance `json:"target"`
	Time   string         `json:"time"`
	Hours  *float64       `json:"hours,omitempty"`
}

type Serialized struct {
	Text string `json:"text"`
}

type Error struct {
	Error string `json:"error"`
	Line  int    `json:"line,omitempty"`
}
