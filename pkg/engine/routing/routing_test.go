package routing

import (
	"testing"

	"github.com/LdDl/ch"
	"github.com/lintang-b-s/igo/pkg"
	da "github.com/lintang-b-s/igo/pkg/datastructure"
	"github.com/lintang-b-s/igo/pkg/geo"
	"github.com/lintang-b-s/igo/pkg/spatialindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

// A(0) -> B(1) -> C(2), D(3) isolated
func buildABC() *da.RoadNetwork {
	vertices := []*da.Vertex{
		da.NewVertex(41.3800, 2.1700, 0, 1),
		da.NewVertex(41.3800, 2.1712, 1, 2),
		da.NewVertex(41.3800, 2.1736, 2, 3),
		da.NewVertex(41.3900, 2.1800, 3, 4),
	}
	edges := []da.Edge{
		da.NewEdge(0, 1, 100, 10, pkg.RESIDENTIAL),
		da.NewEdge(1, 2, 200, 20, pkg.RESIDENTIAL),
	}
	return da.NewRoadNetwork(vertices, edges)
}

func newTestEngine(t *testing.T, network *da.RoadNetwork, cacheSize int) *RoutingEngine {
	t.Helper()
	rt := spatialindex.NewRtree()
	rt.Build(network, zap.NewNop())
	re, err := NewRoutingEngine(rt, 50, cacheSize, zap.NewNop())
	require.NoError(t, err)
	return re
}

func coordOf(network *da.RoadNetwork, v da.Index) da.Coordinate {
	return network.GetVertex(v).GetCoordinate()
}

func TestShortestRouteCongestedScenario(t *testing.T) {
	network := buildABC()
	graph := da.NewWeightedGraph(network)
	ab, ok := network.FindEdge(0, 1)
	require.True(t, ok)
	graph.MultiplyWeight(ab, 2)

	re := newTestEngine(t, network, 0)
	route, err := re.ShortestRoute(graph, coordOf(network, 0), coordOf(network, 2))
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2, 3}, route.GetNodeIds())
	assert.InDelta(t, 40.0, route.GetTotalTime(), 1e-9)
	assert.InDelta(t, 300.0, route.GetTotalDistance(), 1e-9)
	assert.Len(t, route.GetEdgeIds(), 2)
	assert.Len(t, route.GetCoordinates(), 3)
}

func TestShortestRouteErrors(t *testing.T) {
	network := buildABC()
	re := newTestEngine(t, network, 0)

	closed := da.NewWeightedGraph(network)
	ab, _ := network.FindEdge(0, 1)
	closed.MultiplyWeight(ab, pkg.INF_WEIGHT)

	testCases := []struct {
		name        string
		graph       *da.WeightedGraph
		origin      da.Coordinate
		destination da.Coordinate
		wantErr     error
	}{
		{
			name:        "disconnected nodes",
			graph:       da.NewWeightedGraph(network),
			origin:      coordOf(network, 0),
			destination: coordOf(network, 3),
			wantErr:     ErrUnreachableLocation, // D has no incoming road at all
		},
		{
			name:        "no path against edge direction",
			graph:       da.NewWeightedGraph(network),
			origin:      coordOf(network, 1),
			destination: coordOf(network, 0),
			wantErr:     ErrUnreachableLocation,
		},
		{
			name:        "origin outside coverage",
			graph:       da.NewWeightedGraph(network),
			origin:      da.NewCoordinate(40.0, 2.17),
			destination: coordOf(network, 2),
			wantErr:     ErrUnreachableLocation,
		},
		{
			name:        "origin only leaves through a closed road",
			graph:       closed,
			origin:      coordOf(network, 0),
			destination: coordOf(network, 2),
			wantErr:     ErrUnreachableLocation,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			route, err := re.ShortestRoute(tt.graph, tt.origin, tt.destination)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, route)
		})
	}
}

//	0 -> 1    3 -> 4
//	^    |
//	+----2
func TestShortestRouteNoRouteFound(t *testing.T) {
	vertices := []*da.Vertex{
		da.NewVertex(41.3800, 2.1700, 0, 10),
		da.NewVertex(41.3800, 2.1710, 1, 11),
		da.NewVertex(41.3790, 2.1710, 2, 12),
		da.NewVertex(41.3850, 2.1800, 3, 13),
		da.NewVertex(41.3850, 2.1810, 4, 14),
	}
	edges := []da.Edge{
		da.NewEdge(0, 1, 84, 10, pkg.RESIDENTIAL),
		da.NewEdge(1, 2, 111, 12, pkg.RESIDENTIAL),
		da.NewEdge(2, 0, 140, 15, pkg.RESIDENTIAL),
		da.NewEdge(3, 4, 84, 10, pkg.RESIDENTIAL),
	}
	network := da.NewRoadNetwork(vertices, edges)
	re := newTestEngine(t, network, 0)

	route, err := re.ShortestRoute(da.NewWeightedGraph(network), coordOf(network, 0), coordOf(network, 4))
	assert.ErrorIs(t, err, ErrNoRouteFound)
	assert.Nil(t, route)
}

func TestShortestRouteSnapsJustOutsideCoverage(t *testing.T) {
	network := buildABC()
	re := newTestEngine(t, network, 0)

	// ~33 m south of A, below the bounding box but within the snap distance
	route, err := re.ShortestRoute(da.NewWeightedGraph(network), da.NewCoordinate(41.3797, 2.1700),
		coordOf(network, 2))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, route.GetNodeIds())

	_, err = re.Snap(network, da.NewCoordinate(41.3700, 2.1700))
	assert.ErrorIs(t, err, ErrUnreachableLocation)
}

func TestShortestRouteSameNode(t *testing.T) {
	network := buildABC()
	re := newTestEngine(t, network, 0)

	route, err := re.ShortestRoute(da.NewWeightedGraph(network), coordOf(network, 1),
		da.NewCoordinate(41.38001, 2.17121))
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, route.GetNodeIds())
	assert.Equal(t, 0.0, route.GetTotalTime())
	assert.Equal(t, 0.0, route.GetTotalDistance())
	assert.Empty(t, route.GetEdgeIds())
}

func TestShortestRouteCache(t *testing.T) {
	network := buildABC()
	re := newTestEngine(t, network, 16)

	graph := da.NewWeightedGraph(network)
	graph.SetGeneration(1)
	first, err := re.ShortestRoute(graph, coordOf(network, 0), coordOf(network, 2))
	require.NoError(t, err)
	second, err := re.ShortestRoute(graph, coordOf(network, 0), coordOf(network, 2))
	require.NoError(t, err)
	assert.Same(t, first, second)

	// a caller writing into a cached route must not change later answers
	nodes := first.GetNodeIds()
	nodes[0] = 999
	first.GetEdgeIds()[0] = 42
	first.GetCoordinates()[0] = da.NewCoordinate(0, 0)
	again, err := re.ShortestRoute(graph, coordOf(network, 0), coordOf(network, 2))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, again.GetNodeIds())
	assert.Equal(t, coordOf(network, 0), again.GetCoordinates()[0])
	ab, _ := network.FindEdge(0, 1)
	assert.Equal(t, ab, again.GetEdgeIds()[0])

	next := da.NewWeightedGraph(network)
	next.MultiplyWeight(ab, 3)
	next.SetGeneration(2)
	third, err := re.ShortestRoute(next, coordOf(network, 0), coordOf(network, 2))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), third.GetGeneration())
	assert.InDelta(t, 50.0, third.GetTotalTime(), 1e-9)
}

// buildRandomGrid. n x n grid, every neighbour pair connected in both directions, edge length is
// the straight-line distance & base time a random speed between 10 and 60 km/h.
func buildRandomGrid(n int, rd *rand.Rand) *da.RoadNetwork {
	vertices := make([]*da.Vertex, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			id := da.Index(i*n + j)
			lat := 41.38 + float64(i)*0.001 + (rd.Float64()-0.5)*0.0004
			lon := 2.17 + float64(j)*0.001 + (rd.Float64()-0.5)*0.0004
			vertices = append(vertices, da.NewVertex(lat, lon, id, int64(id)+1))
		}
	}

	edges := make([]da.Edge, 0)
	connect := func(u, v da.Index) {
		length := geo.StraightLineDistance(vertices[u].GetCoordinate().ToGeoCoordinate(),
			vertices[v].GetCoordinate().ToGeoCoordinate())
		speed := 10 + rd.Float64()*50
		edges = append(edges, da.NewEdge(u, v, length, length/speed*3.6, pkg.RESIDENTIAL))
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			id := da.Index(i*n + j)
			if j+1 < n {
				connect(id, id+1)
				connect(id+1, id)
			}
			if i+1 < n {
				connect(id, id+da.Index(n))
				connect(id+da.Index(n), id)
			}
		}
	}
	return da.NewRoadNetwork(vertices, edges)
}

func TestDijkstraMatchesContractionHierarchies(t *testing.T) {
	rd := rand.New(rand.NewSource(42))
	network := buildRandomGrid(12, rd)
	graph := da.NewWeightedGraph(network)

	oracle := ch.Graph{}
	network.ForVertices(func(v *da.Vertex) {
		require.NoError(t, oracle.CreateVertex(int64(v.GetID())))
	})
	network.ForEdges(func(e *da.Edge) {
		require.NoError(t, oracle.AddEdge(int64(e.GetTail()), int64(e.GetHead()), e.GetBaseTime()))
	})
	oracle.PrepareContractionHierarchies()

	n := network.NumberOfVertices()
	for i := 0; i < 100; i++ {
		s := da.Index(rd.Intn(n))
		d := da.Index(rd.Intn(n))
		if s == d {
			continue
		}

		res := NewDijkstra(graph).ShortestPath(s, d)
		require.True(t, res.Found)

		wantCost, wantPath := oracle.ShortestPath(int64(s), int64(d))
		assert.InDelta(t, wantCost, res.TravelTime, 1e-6)

		gotPath := make([]int64, len(res.Nodes))
		for k, v := range res.Nodes {
			gotPath[k] = int64(v)
		}
		assert.Equal(t, wantPath, gotPath)
	}
}

func TestRouteDistanceAtLeastStraightLine(t *testing.T) {
	rd := rand.New(rand.NewSource(3))
	network := buildRandomGrid(8, rd)
	graph := da.NewWeightedGraph(network)
	re := newTestEngine(t, network, 0)

	n := network.NumberOfVertices()
	for i := 0; i < 50; i++ {
		s := da.Index(rd.Intn(n))
		d := da.Index(rd.Intn(n))

		route, err := re.ShortestRouteBetween(graph, s, d)
		require.NoError(t, err)

		sumLength, sumWeight := 0.0, 0.0
		for _, e := range route.GetEdgeIds() {
			sumLength += network.GetEdge(e).GetLength()
			sumWeight += graph.GetWeight(e)
		}
		assert.InDelta(t, sumLength, route.GetTotalDistance(), 1e-9)
		assert.InDelta(t, sumWeight, route.GetTotalTime(), 1e-9)

		straight := geo.StraightLineDistance(coordOf(network, s).ToGeoCoordinate(), coordOf(network, d).ToGeoCoordinate())
		assert.GreaterOrEqual(t, route.GetTotalDistance()+1e-6, straight)
	}
}

func TestDijkstraSkipsClosedEdges(t *testing.T) {
	//	0 -> 1 -> 3   (fast)
	//	0 -> 2 -> 3   (slow)
	vertices := []*da.Vertex{
		da.NewVertex(41.3800, 2.1700, 0, 1),
		da.NewVertex(41.3810, 2.1710, 1, 2),
		da.NewVertex(41.3790, 2.1710, 2, 3),
		da.NewVertex(41.3800, 2.1720, 3, 4),
	}
	edges := []da.Edge{
		da.NewEdge(0, 1, 100, 10, pkg.PRIMARY),
		da.NewEdge(1, 3, 100, 10, pkg.PRIMARY),
		da.NewEdge(0, 2, 100, 30, pkg.RESIDENTIAL),
		da.NewEdge(2, 3, 100, 30, pkg.RESIDENTIAL),
	}
	network := da.NewRoadNetwork(vertices, edges)
	graph := da.NewWeightedGraph(network)

	res := NewDijkstra(graph).ShortestPath(0, 3)
	require.True(t, res.Found)
	assert.Equal(t, []da.Index{0, 1, 3}, res.Nodes)

	e13, _ := network.FindEdge(1, 3)
	graph.MultiplyWeight(e13, pkg.INF_WEIGHT)
	res = NewDijkstra(graph).ShortestPath(0, 3)
	require.True(t, res.Found)
	assert.Equal(t, []da.Index{0, 2, 3}, res.Nodes)
	assert.InDelta(t, 60.0, res.TravelTime, 1e-9)
}
