package routing

import (
	da "github.com/lintang-b-s/igo/pkg/datastructure"
)

// Graph. weighted adjacency the searches run on, implemented by *datastructure.WeightedGraph
type Graph interface {
	NumberOfVertices() int
	ForOutEdgesOf(u da.Index, handle func(e *da.Edge, weight float64))
}

// SpatialIndex. node snapping, implemented by *spatialindex.Rtree
type SpatialIndex interface {
	NearestWithin(qLat, qLon, maxDistance float64) (da.Index, float64, bool)
}
