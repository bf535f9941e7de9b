package costfunction

import (
	"strconv"
	"strings"

	"github.com/lintang-b-s/igo/pkg"
)

type TimeFunction struct {
}

func NewTimeCostFunction() *TimeFunction {
	return &TimeFunction{}
}

const (
	kmhToMs    = 3.6
	mphToKmh   = 1.60934
	knotsToKmh = 1.852
)

// congestion level -> multiplier, monotonically increasing. level 0 (no data) never reaches the builder.
var congestionFactors = [...]float64{
	pkg.NO_DATA:    1,
	pkg.VERY_FLUID: 1.25,
	pkg.FLUID:      1.5,
	pkg.DENSE:      2,
	pkg.VERY_DENSE: 3,
	pkg.CONGESTED:  4,
	pkg.CLOSED:     pkg.INF_WEIGHT,
}

// BaseTravelTime. length in meter, result in second.
func (tf *TimeFunction) BaseTravelTime(length, speedKmh float64) float64 {
	if speedKmh <= 0 {
		speedKmh = bucketSpeed(length)
	}
	return length / speedKmh * kmhToMs
}

func bucketSpeed(length float64) float64 {
	switch {
	case length < pkg.SHORT_EDGE_MAX_LENGTH:
		return pkg.SHORT_EDGE_SPEED_KMH
	case length < pkg.MEDIUM_EDGE_MAX_LENGTH:
		return pkg.MEDIUM_EDGE_SPEED_KMH
	default:
		return pkg.LONG_EDGE_SPEED_KMH
	}
}

func (tf *TimeFunction) CongestionFactor(level pkg.CongestionLevel) float64 {
	if !level.Valid() {
		return 1
	}
	return congestionFactors[level]
}

// ParseMaxSpeed. osm maxspeed tag to km/h: "50", "50 km/h", "30 mph", "10 knots".
// returns false for symbolic values like "walk", "none" or "ES:urban".
func ParseMaxSpeed(tag string) (float64, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return 0, false
	}

	factor := 1.0
	switch {
	case strings.HasSuffix(tag, "mph"):
		factor = mphToKmh
		tag = strings.TrimSuffix(tag, "mph")
	case strings.HasSuffix(tag, "knots"):
		factor = knotsToKmh
		tag = strings.TrimSuffix(tag, "knots")
	case strings.HasSuffix(tag, "km/h"):
		tag = strings.TrimSuffix(tag, "km/h")
	case strings.HasSuffix(tag, "kmh"):
		tag = strings.TrimSuffix(tag, "kmh")
	}

	speed, err := strconv.ParseFloat(strings.TrimSpace(tag), 64)
	if err != nil || speed <= 0 {
		return 0, false
	}
	return speed * factor, true
}
