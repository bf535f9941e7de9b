package spatialindex

import (
	"math"

	"github.com/lintang-b-s/igo/pkg/datastructure"
	"github.com/lintang-b-s/igo/pkg/geo"
	"github.com/lintang-b-s/igo/pkg/util"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// number of nearest candidates (by equirectangular distance) re-ranked with the haversine distance
const nearestCandidates = 8

// Rtree. point r-tree over the vertices of a road network, used to snap coordinates to nodes.
// read-only after Build, safe for concurrent queries.
type Rtree struct {
	tr      *rtree.RTreeG[datastructure.Index]
	network *datastructure.RoadNetwork
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[datastructure.Index]
	return &Rtree{
		tr: &tr,
	}
}

func (rt *Rtree) Build(network *datastructure.RoadNetwork, log *zap.Logger) {
	log.Info("Building R-tree spatial index...")
	rt.network = network
	network.ForVertices(func(v *datastructure.Vertex) {
		p := [2]float64{v.GetLon(), v.GetLat()}
		rt.tr.Insert(p, p, v.GetID())
	})
	log.Info("R-tree spatial index built.", zap.Int("nodes", rt.tr.Len()))
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// equirectangularDist. squared planar distance with longitude scaled by cos(lat) of the query point,
// a lower bound friendly metric for boxes & points alike.
func equirectangularDist(qLat, qLon float64) func(min, max [2]float64, data datastructure.Index, item bool) float64 {
	cosLat := math.Cos(util.DegreeToRadians(qLat))
	return func(min, max [2]float64, data datastructure.Index, item bool) float64 {
		dx := math.Max(0, math.Max(min[0]-qLon, qLon-max[0])) * cosLat
		dy := math.Max(0, math.Max(min[1]-qLat, qLat-max[1]))
		return dx*dx + dy*dy
	}
}

// Nearest. closest node to (qLat, qLon) and its distance in meter. false when the index is empty.
func (rt *Rtree) Nearest(qLat, qLon float64) (datastructure.Index, float64, bool) {
	best := datastructure.INVALID_INDEX
	bestDist := math.Inf(1)
	q := geo.NewCoordinate(qLat, qLon)

	seen := 0
	rt.tr.Nearby(equirectangularDist(qLat, qLon),
		func(min, max [2]float64, data datastructure.Index, dist float64) bool {
			d := geo.StraightLineDistance(q, geo.NewCoordinate(min[1], min[0]))
			if d < bestDist {
				best, bestDist = data, d
			}
			seen++
			return seen < nearestCandidates
		})

	if best == datastructure.INVALID_INDEX {
		return best, 0, false
	}
	return best, bestDist, true
}

// NearestWithin. like Nearest but fails when the closest node is farther than maxDistance meter.
func (rt *Rtree) NearestWithin(qLat, qLon, maxDistance float64) (datastructure.Index, float64, bool) {
	v, dist, ok := rt.Nearest(qLat, qLon)
	if !ok || dist > maxDistance {
		return datastructure.INVALID_INDEX, dist, false
	}
	return v, dist, true
}
