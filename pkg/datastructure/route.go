package datastructure

import "slices"

// Route. result of a shortest route query, not persisted. routes are shared through the route cache,
// slice getters hand out copies.
type Route struct {
	nodeIds       []int64 // osm node ids, origin first
	coordinates   []Coordinate
	edgeIds       []Index
	totalTime     float64 // second
	totalDistance float64 // meter
	generation    uint64  // generation of the weighted graph the route was computed on
}

func NewRoute(nodeIds []int64, coordinates []Coordinate, edgeIds []Index, totalTime, totalDistance float64,
	generation uint64) *Route {
	return &Route{
		nodeIds:       nodeIds,
		coordinates:   coordinates,
		edgeIds:       edgeIds,
		totalTime:     totalTime,
		totalDistance: totalDistance,
		generation:    generation,
	}
}

func (r *Route) GetNodeIds() []int64 {
	return slices.Clone(r.nodeIds)
}

func (r *Route) GetCoordinates() []Coordinate {
	return slices.Clone(r.coordinates)
}

func (r *Route) GetEdgeIds() []Index {
	return slices.Clone(r.edgeIds)
}

func (r *Route) GetTotalTime() float64 {
	return r.totalTime
}

func (r *Route) GetTotalDistance() float64 {
	return r.totalDistance
}

func (r *Route) GetGeneration() uint64 {
	return r.generation
}
