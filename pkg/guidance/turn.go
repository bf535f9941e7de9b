package guidance

import (
	"math"

	"github.com/lintang-b-s/igo/pkg/geo"
)

// initial bearing of the edge (a, b), in degree
func computeInitialBearing(aLat, aLon, bLat, bLon float64) float64 {
	return geo.BearingTo(aLat, aLon, bLat, bLon)
}

/*
getTurnDirection. turn sign between two adjacent edges from the change of their initial bearings.

	prev ---prevEdge---> tail
	                      |
	                   currEdge
	                      |
	                      v
	                     head

|delta| < 12° continue, < 40° slight, < 105° turn, < 155° sharp, otherwise a U-turn.
*/
func getTurnDirection(prevInitialBearing, initialBearing float64) Sign {
	delta := geo.DeltaBearing(prevInitialBearing, initialBearing)
	absDelta := math.Abs(delta)
	left := delta < 0

	switch {
	case absDelta < 12:
		return CONTINUE
	case absDelta < 40:
		if left {
			return TURN_SLIGHT_LEFT
		}
		return TURN_SLIGHT_RIGHT
	case absDelta < 105:
		if left {
			return TURN_LEFT
		}
		return TURN_RIGHT
	case absDelta < 155:
		if left {
			return TURN_SHARP_LEFT
		}
		return TURN_SHARP_RIGHT
	default:
		if left {
			return U_TURN_LEFT
		}
		return U_TURN_RIGHT
	}
}

func isSignificant(sign Sign) bool {
	return sign != CONTINUE && sign != TURN_SLIGHT_LEFT && sign != TURN_SLIGHT_RIGHT
}
