package report

import (
	"fmt"

	"github.com/a-bouts/rally-pacer/interval"
	"github.com/a-bouts/rally-pacer/roadmap"
	"github.com/a-bouts/rally-pacer/schedule"
)

// Result is one run of the whole pipeline. Schedule is nil when the roadmap failed
// validation, Fails then holds the failures and Report renders them.
type Result struct {
	Lines    []roadmap.Line
	Schedule *schedule.Schedule
	Fails    interval.Failures
	Report   *Report
}

// Run parses, preprocesses and schedules a roadmap text. Only parse errors are
// returned as errors.
func Run(text string, calibration float64) (*Result, error) {
	lines, err := roadmap.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing roadmap: %w", err)
	}
	lines = roadmap.Preprocess(lines)

	res := &Result{Lines: lines}
	res.Schedule, res.Fails = schedule.Compute(roadmap.Positions(lines))
	if len(res.Fails) > 0 {
		res.Report = Failed(res.Fails)
		return res, nil
	}
	res.Report = Build(lines, res.Schedule, calibration)
	return res, nil
}

func (r *Result) Waypoints() int {
	return len(roadmap.Positions(r.Lines))
}

func (r *Result) Reasons() []string {
	var res []string
	for _, f := range r.Fails {
		res = append(res, f.Reason.String())
	}
	return res
}

func (r *Result) Warnings() int {
	if r.Schedule == nil {
		return 0
	}
	return len(r.Schedule.Warnings)
}
