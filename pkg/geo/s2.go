package geo

import (
	"github.com/golang/geo/s2"
)

const earthRadiusMeter = earthRadiusKm * 1000

// StraightLineDistance. great-circle distance between a and b in meter
func StraightLineDistance(a, b Coordinate) float64 {
	aLL := s2.LatLngFromDegrees(a.Lat, a.Lon)
	bLL := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return aLL.Distance(bLL).Radians() * earthRadiusMeter
}
