package geo

import (
	"math"

	"github.com/lintang-b-s/igo/pkg/util"
)

/*
BearingTo. initial bearing of the great circle from p1 to p2, in degree [0, 360).
https://www.movable-type.co.uk/scripts/latlong.html
*/
func BearingTo(p1Lat, p1Lon, p2Lat, p2Lon float64) float64 {
	dLon := util.DegreeToRadians(p2Lon - p1Lon)

	lat1 := util.DegreeToRadians(p1Lat)
	lat2 := util.DegreeToRadians(p2Lat)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) -
		math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	return math.Mod(util.RadiansToDegree(math.Atan2(y, x))+360, 360.0)
}

// DeltaBearing. signed change of heading from bearing `from` to bearing `to`, in degree (-180, 180].
// negative is a left turn.
func DeltaBearing(from, to float64) float64 {
	d := math.Mod(to-from, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}
