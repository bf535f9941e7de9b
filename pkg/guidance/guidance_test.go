package guidance

import (
	"testing"

	"github.com/lintang-b-s/igo/pkg"
	da "github.com/lintang-b-s/igo/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	testCases := []struct {
		name       string
		travelTime float64
		distance   float64
		want       string
	}{
		{name: "minutes & km", travelTime: 720, distance: 3400, want: "12 min, 3.4 km"},
		{name: "hours & meters", travelTime: 3900, distance: 850, want: "1 h 5 min, 850 m"},
		{name: "short trip rounds up to a minute", travelTime: 20, distance: 120, want: "1 min, 120 m"},
		{name: "empty route", travelTime: 0, distance: 0, want: "0 min, 0 m"},
		{name: "whole hours", travelTime: 7200, distance: 100000, want: "2 h, 100.0 km"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summary(tt.travelTime, tt.distance))
		})
	}
}

//	      2
//	      |
//	0 --- 1 --- 3
func buildJunction(withBranch bool) *da.RoadNetwork {
	vertices := []*da.Vertex{
		da.NewVertex(41.380, 2.170, 0, 10),
		da.NewVertex(41.380, 2.171, 1, 11),
		da.NewVertex(41.381, 2.171, 2, 12),
		da.NewVertex(41.380, 2.172, 3, 13),
	}
	edges := []da.Edge{
		da.NewEdge(0, 1, 84, 10, pkg.RESIDENTIAL),
		da.NewEdge(1, 2, 111, 12, pkg.RESIDENTIAL),
	}
	if withBranch {
		edges = append(edges, da.NewEdge(1, 3, 84, 10, pkg.RESIDENTIAL))
	}
	return da.NewRoadNetwork(vertices, edges)
}

func routeOf(t *testing.T, network *da.RoadNetwork, nodes ...da.Index) *da.Route {
	t.Helper()
	edges := make([]da.Index, 0, len(nodes)-1)
	for i := 0; i+1 < len(nodes); i++ {
		e, ok := network.FindEdge(nodes[i], nodes[i+1])
		require.True(t, ok)
		edges = append(edges, e)
	}
	return da.NewRoute(nil, nil, edges, 0, 0, 1)
}

func TestDrivingDirections(t *testing.T) {
	t.Run("left turn at junction", func(t *testing.T) {
		network := buildJunction(true)
		db := NewDirectionBuilder(da.NewWeightedGraph(network))
		dirs := db.GetDrivingDirections(routeOf(t, network, 0, 1, 2))

		require.Len(t, dirs, 3)
		assert.Equal(t, START, dirs[0].Sign)
		assert.Equal(t, "head east on residential road", dirs[0].Instruction)
		assert.Equal(t, 84.0, dirs[0].Distance)
		assert.Equal(t, 10.0, dirs[0].TravelTime)

		assert.Equal(t, TURN_LEFT, dirs[1].Sign)
		assert.Equal(t, "turn left onto residential road", dirs[1].Instruction)
		assert.Equal(t, 111.0, dirs[1].Distance)
		assert.Equal(t, network.GetVertex(1).GetCoordinate(), dirs[1].Point)

		assert.Equal(t, FINISH, dirs[2].Sign)
		assert.Equal(t, network.GetVertex(2).GetCoordinate(), dirs[2].Point)
	})

	t.Run("bend without junction is merged", func(t *testing.T) {
		network := buildJunction(false)
		db := NewDirectionBuilder(da.NewWeightedGraph(network))
		dirs := db.GetDrivingDirections(routeOf(t, network, 0, 1, 2))

		require.Len(t, dirs, 2)
		assert.Equal(t, START, dirs[0].Sign)
		assert.Equal(t, 195.0, dirs[0].Distance)
		assert.Equal(t, 22.0, dirs[0].TravelTime)
		assert.Len(t, dirs[0].EdgeIds, 2)
		assert.Equal(t, FINISH, dirs[1].Sign)
	})

	t.Run("empty route", func(t *testing.T) {
		network := buildJunction(false)
		db := NewDirectionBuilder(da.NewWeightedGraph(network))
		assert.Empty(t, db.GetDrivingDirections(da.NewRoute([]int64{10}, nil, nil, 0, 0, 1)))
	})
}

func TestTurnDirection(t *testing.T) {
	testCases := []struct {
		name      string
		prev, cur float64
		want      Sign
	}{
		{name: "straight", prev: 90, cur: 95, want: CONTINUE},
		{name: "slight right", prev: 90, cur: 120, want: TURN_SLIGHT_RIGHT},
		{name: "left across north", prev: 10, cur: 280, want: TURN_LEFT},
		{name: "sharp right", prev: 0, cur: 130, want: TURN_SHARP_RIGHT},
		{name: "u-turn", prev: 0, cur: 179, want: U_TURN_RIGHT},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, getTurnDirection(tt.prev, tt.cur))
		})
	}
}
