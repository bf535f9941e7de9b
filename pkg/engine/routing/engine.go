package routing

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	da "github.com/lintang-b-s/igo/pkg/datastructure"
	"go.uber.org/zap"
)

var (
	ErrNoRouteFound        = errors.New("no route found")
	ErrUnreachableLocation = errors.New("location is not reachable from the road network")
)

type routeCacheKey struct {
	generation uint64
	s, t       da.Index
}

// RoutingEngine answers shortest route queries on whatever weighted graph the caller passes in.
// it holds no graph itself, so queries on an old snapshot stay consistent while a newer one is published.
type RoutingEngine struct {
	index           SpatialIndex
	maxSnapDistance float64 // meter
	routeCache      *lru.Cache[routeCacheKey, *da.Route]
	logger          *zap.Logger
}

// NewRoutingEngine. routeCacheSize <= 0 disables route memoization.
func NewRoutingEngine(index SpatialIndex, maxSnapDistance float64, routeCacheSize int,
	logger *zap.Logger) (*RoutingEngine, error) {
	re := &RoutingEngine{
		index:           index,
		maxSnapDistance: maxSnapDistance,
		logger:          logger,
	}
	if routeCacheSize > 0 {
		cache, err := lru.New[routeCacheKey, *da.Route](routeCacheSize)
		if err != nil {
			return nil, err
		}
		re.routeCache = cache
	}
	return re, nil
}

// Snap. nearest node within the max snap distance. coordinates outside the network bounding box grown by
// that distance are rejected without an r-tree lookup.
func (re *RoutingEngine) Snap(network *da.RoadNetwork, c da.Coordinate) (da.Index, error) {
	if !network.GetBoundingBox().Contains(c.GetLat(), c.GetLon(), re.maxSnapDistance) {
		return da.INVALID_INDEX, fmt.Errorf("%w: (%v, %v) is outside of the road network coverage",
			ErrUnreachableLocation, c.GetLat(), c.GetLon())
	}
	v, dist, ok := re.index.NearestWithin(c.GetLat(), c.GetLon(), re.maxSnapDistance)
	if !ok {
		return da.INVALID_INDEX, fmt.Errorf("%w: (%v, %v) is %.0f m away from the nearest road node",
			ErrUnreachableLocation, c.GetLat(), c.GetLon(), dist)
	}
	return v, nil
}

// ShortestRoute. minimum weighted time route between two coordinates on graph.
func (re *RoutingEngine) ShortestRoute(graph *da.WeightedGraph, origin, destination da.Coordinate) (*da.Route, error) {
	s, err := re.Snap(graph.GetNetwork(), origin)
	if err != nil {
		return nil, err
	}
	t, err := re.Snap(graph.GetNetwork(), destination)
	if err != nil {
		return nil, err
	}
	return re.ShortestRouteBetween(graph, s, t)
}

// ShortestRouteBetween. like ShortestRoute for already snapped nodes.
func (re *RoutingEngine) ShortestRouteBetween(graph *da.WeightedGraph, s, t da.Index) (*da.Route, error) {
	key := routeCacheKey{generation: graph.GetGeneration(), s: s, t: t}
	cacheable := re.routeCache != nil && key.generation > 0
	if cacheable {
		if route, ok := re.routeCache.Get(key); ok {
			return route, nil
		}
	}

	network := graph.GetNetwork()
	if s != t {
		if !graph.HasTraversableOutEdge(s) {
			return nil, fmt.Errorf("%w: origin node %d has no usable outgoing road", ErrUnreachableLocation,
				network.GetVertex(s).GetOsmID())
		}
		if !graph.HasTraversableInEdge(t) {
			return nil, fmt.Errorf("%w: destination node %d has no usable incoming road", ErrUnreachableLocation,
				network.GetVertex(t).GetOsmID())
		}
	}

	dijkstra := NewDijkstra(graph)
	res := dijkstra.ShortestPath(s, t)
	if !res.Found {
		re.logger.Debug("no route found", zap.Uint32("s", uint32(s)), zap.Uint32("t", uint32(t)),
			zap.Int("settled", dijkstra.GetNumSettledNodes()))
		return nil, fmt.Errorf("%w: from node %d to node %d", ErrNoRouteFound,
			network.GetVertex(s).GetOsmID(), network.GetVertex(t).GetOsmID())
	}

	route := buildRoute(graph, res)
	if cacheable {
		re.routeCache.Add(key, route)
	}
	return route, nil
}

func buildRoute(graph *da.WeightedGraph, res PathResult) *da.Route {
	network := graph.GetNetwork()

	nodeIds := make([]int64, len(res.Nodes))
	coords := make([]da.Coordinate, len(res.Nodes))
	for i, v := range res.Nodes {
		vertex := network.GetVertex(v)
		nodeIds[i] = vertex.GetOsmID()
		coords[i] = vertex.GetCoordinate()
	}

	totalTime, totalDistance := 0.0, 0.0
	for _, e := range res.Edges {
		totalTime += graph.GetWeight(e)
		totalDistance += network.GetEdge(e).GetLength()
	}

	return da.NewRoute(nodeIds, coords, res.Edges, totalTime, totalDistance, graph.GetGeneration())
}
