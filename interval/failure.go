package interval

import (
	"fmt"
	"sort"

	"github.com/a-bouts/rally-pacer/roadmap"
)

type FailureReason int

const (
	AverageSpeedUnknown FailureReason = iota
	UnexpectedAverageEnd
	AverageEndSpeedMismatch
	DistanceIsNotIncreasing
	OuterIntervalNotCovered
)

var reasonNames = map[FailureReason]string{
	AverageSpeedUnknown:     "AverageSpeedUnknown",
	UnexpectedAverageEnd:    "UnexpectedAverageEnd",
	AverageEndSpeedMismatch: "AverageEndSpeedMismatch",
	DistanceIsNotIncreasing: "DistanceIsNotIncreasing",
	OuterIntervalNotCovered: "OuterIntervalNotCovered",
}

func (r FailureReason) String() string {
	if s, ok := reasonNames[r]; ok {
		return s
	}
	return fmt.Sprintf("FailureReason(%d)", int(r))
}

func (r FailureReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Failure makes the schedule uncomputable
type Failure struct {
	Line   roadmap.LineNumber `json:"line" yaml:"line"`
	Reason FailureReason      `json:"reason" yaml:"reason"`
}

func (f Failure) String() string {
	return fmt.Sprintf("line %s: %s", f.Line, f.Reason)
}

type Failures []Failure

// Normalize sorts by line then reason and drops duplicates
func (fs Failures) Normalize() Failures {
	if len(fs) == 0 {
		return nil
	}
	res := make(Failures, len(fs))
	copy(res, fs)
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Line != res[j].Line {
			return res[i].Line.Less(res[j].Line)
		}
		return res[i].Reason < res[j].Reason
	})
	out := res[:1]
	for _, f := range res[1:] {
		if f != out[len(out)-1] {
			out = append(out, f)
		}
	}
	return out
}

func (fs Failures) Has(line roadmap.LineNumber, reason FailureReason) bool {
	for _, f := range fs {
		if f.Line == line && f.Reason == reason {
			return true
		}
	}
	return false
}
