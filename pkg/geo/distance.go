package geo

import (
	"math"

	"github.com/lintang-b-s/igo/pkg/util"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{Lat: lat, Lon: lon}
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

const earthRadiusKm = 6371.0

// CalculateHaversineDistance. great circle distance in km
func CalculateHaversineDistance(latOne, lonOne, latTwo, lonTwo float64) float64 {
	phiOne, phiTwo := util.DegreeToRadians(latOne), util.DegreeToRadians(latTwo)
	sinDPhi := math.Sin((phiTwo - phiOne) / 2)
	sinDLambda := math.Sin(util.DegreeToRadians(lonTwo-lonOne) / 2)

	a := sinDPhi*sinDPhi + math.Cos(phiOne)*math.Cos(phiTwo)*sinDLambda*sinDLambda
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(a)))
}
