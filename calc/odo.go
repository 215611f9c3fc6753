package calc

import (
	"github.com/a-bouts/rally-pacer/roadmap"
	"github.com/a-bouts/rally-pacer/units"
)

// Odometer projects the reading of the car odometer at each waypoint from the latest
// odo anchor. calibration is the ratio between the car odometer and the roadmap
// distances, 1.0 when they agree. Waypoints before the first anchor get no reading.
func Odometer(lines []*roadmap.PositionLine, calibration float64) map[roadmap.LineNumber]units.Distance {
	res := make(map[roadmap.LineNumber]units.Distance)

	var anchorOdo, anchorDistance units.Distance
	anchored := false
	for _, p := range lines {
		if odo, ok := p.Odo(); ok {
			anchorOdo = odo
			anchorDistance = p.Distance
			anchored = true
		}
		if !anchored {
			continue
		}
		res[p.Number] = anchorOdo + p.Distance.Sub(anchorDistance).Scale(calibration)
	}

	return res
}
