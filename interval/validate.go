package interval

import (
	"math"

	"github.com/a-bouts/rally-pacer/roadmap"
	"github.com/a-bouts/rally-pacer/units"
)

const speedTolerance = 0.0005

// Validate reports every line breaking distance ordering or zone nesting
func Validate(lines []*roadmap.PositionLine) Failures {
	var fails Failures
	var stack []units.Speed

	for k, p := range lines {
		if k > 0 && p.Distance < lines[k-1].Distance-units.Millimeter {
			fails = append(fails, Failure{Line: p.Number, Reason: DistanceIsNotIncreasing})
		}

		if e, ok := p.EndAvg(); ok {
			if len(stack) == 0 {
				fails = append(fails, Failure{Line: p.Number, Reason: UnexpectedAverageEnd})
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if e.HasSpeed && math.Abs(float64(e.Speed-top)) > speedTolerance {
				fails = append(fails, Failure{Line: p.Number, Reason: AverageEndSpeedMismatch})
			}
			continue
		}

		if s, ok := p.ThenAvg(); ok {
			if len(stack) == 0 {
				fails = append(fails, Failure{Line: p.Number, Reason: UnexpectedAverageEnd})
			} else {
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, s)
			continue
		}

		if s, ok := p.SetAvg(); ok {
			stack = append(stack, s)
		}
	}

	return fails
}
