package guidance

import (
	da "github.com/lintang-b-s/igo/pkg/datastructure"
)

// DirectionBuilder. turn-by-turn directions for a route computed on a weighted graph.
// a new direction starts where the route turns at a junction (a node with more than one way out)
// or where the road class changes, straight stretches are merged into one direction.
type DirectionBuilder struct {
	graph Graph

	directions []DrivingDirection
	current    *DrivingDirection

	prevEdge           *da.Edge
	prevInitialBearing float64
}

func NewDirectionBuilder(graph Graph) *DirectionBuilder {
	return &DirectionBuilder{
		graph:      graph,
		directions: make([]DrivingDirection, 0),
	}
}

func (db *DirectionBuilder) GetDrivingDirections(route *da.Route) []DrivingDirection {
	db.directions = make([]DrivingDirection, 0)
	db.current = nil
	db.prevEdge = nil

	edgeIds := route.GetEdgeIds()
	if len(edgeIds) == 0 {
		return db.directions
	}

	for _, eId := range edgeIds {
		db.buildInstruction(eId)
	}
	db.buildFinalInstruction()
	return db.directions
}

func (db *DirectionBuilder) buildInstruction(eId da.Index) {
	network := db.graph.GetNetwork()
	edge := network.GetEdge(eId)
	tail := network.GetVertex(edge.GetTail())
	head := network.GetVertex(edge.GetHead())
	initialBearing := computeInitialBearing(tail.GetLat(), tail.GetLon(), head.GetLat(), head.GetLon())

	if db.prevEdge == nil {
		// start point of the route
		db.startDirection(START, tail.GetCoordinate(), initialBearing, edge)
	} else {
		sign := getTurnDirection(db.prevInitialBearing, initialBearing)
		atJunction := db.alternativeTurns(edge.GetTail(), db.prevEdge.GetTail()) > 0
		roadChanged := db.prevEdge.GetHighwayType() != edge.GetHighwayType()

		if (isSignificant(sign) && atJunction) || (roadChanged && sign != CONTINUE) || sign == U_TURN_LEFT ||
			sign == U_TURN_RIGHT {
			db.closeDirection()
			db.startDirection(sign, tail.GetCoordinate(), initialBearing, edge)
		} else if roadChanged {
			db.closeDirection()
			db.startDirection(CONTINUE, tail.GetCoordinate(), initialBearing, edge)
		}
	}

	db.current.Distance += edge.GetLength()
	db.current.TravelTime += db.graph.GetWeight(eId)
	db.current.EdgeIds = append(db.current.EdgeIds, eId)

	db.prevEdge = edge
	db.prevInitialBearing = initialBearing
}

// alternativeTurns. number of ways out of tail other than going back to prevNode
func (db *DirectionBuilder) alternativeTurns(tail, prevNode da.Index) int {
	count := 0
	db.graph.GetNetwork().ForOutEdgesOf(tail, func(e *da.Edge) {
		if e.GetHead() != prevNode {
			count++
		}
	})
	return count - 1
}

func (db *DirectionBuilder) startDirection(sign Sign, point da.Coordinate, bearing float64, edge *da.Edge) {
	db.current = &DrivingDirection{
		Sign:        sign,
		Instruction: describe(sign, bearing, edge.GetHighwayType()),
		Point:       point,
		Bearing:     bearing,
		EdgeIds:     make([]da.Index, 0),
	}
}

func (db *DirectionBuilder) closeDirection() {
	if db.current != nil {
		db.directions = append(db.directions, *db.current)
	}
}

func (db *DirectionBuilder) buildFinalInstruction() {
	db.closeDirection()

	head := db.graph.GetNetwork().GetVertex(db.prevEdge.GetHead())
	db.directions = append(db.directions, DrivingDirection{
		Sign:        FINISH,
		Instruction: describe(FINISH, db.prevInitialBearing, db.prevEdge.GetHighwayType()),
		Point:       head.GetCoordinate(),
		Bearing:     db.prevInitialBearing,
		EdgeIds:     []da.Index{},
	})
	db.current = nil
}
