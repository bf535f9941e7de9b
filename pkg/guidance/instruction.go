package guidance

import (
	"fmt"

	"github.com/lintang-b-s/igo/pkg"
	da "github.com/lintang-b-s/igo/pkg/datastructure"
)

type Sign int

const (
	U_TURN_LEFT       Sign = -8
	TURN_SHARP_LEFT   Sign = -3
	TURN_LEFT         Sign = -2
	TURN_SLIGHT_LEFT  Sign = -1
	CONTINUE          Sign = 0
	TURN_SLIGHT_RIGHT Sign = 1
	TURN_RIGHT        Sign = 2
	TURN_SHARP_RIGHT  Sign = 3
	FINISH            Sign = 4
	START             Sign = 5
	U_TURN_RIGHT      Sign = 8
)

func (s Sign) String() string {
	switch s {
	case U_TURN_LEFT, U_TURN_RIGHT:
		return "make a U-turn"
	case TURN_SHARP_LEFT:
		return "turn sharp left"
	case TURN_LEFT:
		return "turn left"
	case TURN_SLIGHT_LEFT:
		return "turn slight left"
	case CONTINUE:
		return "continue"
	case TURN_SLIGHT_RIGHT:
		return "turn slight right"
	case TURN_RIGHT:
		return "turn right"
	case TURN_SHARP_RIGHT:
		return "turn sharp right"
	case FINISH:
		return "arrive at destination"
	case START:
		return "head"
	default:
		return "unknown"
	}
}

// DrivingDirection. one maneuver of a route and the stretch driven after it.
type DrivingDirection struct {
	Sign        Sign          `json:"sign"`
	Instruction string        `json:"instruction"`
	Point       da.Coordinate `json:"point"`
	Bearing     float64       `json:"bearing"`
	Distance    float64       `json:"distance"`    // meter
	TravelTime  float64       `json:"travel_time"` // second
	EdgeIds     []da.Index    `json:"-"`
}

func compassDirection(bearing float64) string {
	dirs := [8]string{"north", "northeast", "east", "southeast", "south", "southwest", "west", "northwest"}
	return dirs[int((bearing+22.5)/45)%8]
}

func roadName(hw pkg.OsmHighwayType) string {
	name := hw.String()
	if name == "" {
		return "road"
	}
	return name + " road"
}

func describe(sign Sign, bearing float64, hw pkg.OsmHighwayType) string {
	switch sign {
	case START:
		return fmt.Sprintf("head %s on %s", compassDirection(bearing), roadName(hw))
	case FINISH:
		return sign.String()
	case CONTINUE:
		return fmt.Sprintf("continue onto %s", roadName(hw))
	default:
		return fmt.Sprintf("%s onto %s", sign, roadName(hw))
	}
}
