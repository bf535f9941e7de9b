package datastructure

import "math"

// lower bound of the length of one degree of latitude (meter), keeps the grown box a superset
const minMetersPerDegree = 110000.0

type BoundingBox struct {
	minLat, minLon float64
	maxLat, maxLon float64
}

func NewBoundingBox(minLat, minLon, maxLat, maxLon float64) *BoundingBox {
	return &BoundingBox{minLat: minLat,
		minLon: minLon,
		maxLat: maxLat,
		maxLon: maxLon}
}

// Contains. whether (lat, lon) lies in the box grown by margin meters on every side.
func (b *BoundingBox) Contains(lat, lon, margin float64) bool {
	dLat := margin / minMetersPerDegree
	maxAbsLat := math.Min(math.Max(math.Abs(b.minLat), math.Abs(b.maxLat)), 90)
	cosLat := math.Max(math.Cos(maxAbsLat*math.Pi/180), 1e-6)
	dLon := dLat / cosLat

	return lat >= b.minLat-dLat && lat <= b.maxLat+dLat && lon >= b.minLon-dLon && lon <= b.maxLon+dLon
}
