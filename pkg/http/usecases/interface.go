package usecases

import (
	da "github.com/lintang-b-s/igo/pkg/datastructure"
	"github.com/lintang-b-s/igo/pkg/scheduler"
)

// RoutingEngine. implemented by *engine.Engine
type RoutingEngine interface {
	ShortestRoute(origin, destination da.Coordinate) (*da.Route, *da.WeightedGraph, error)
	Congestions() []da.CongestionSegment
	Status() scheduler.Status
}
