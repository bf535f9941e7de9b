package routing

import (
	"github.com/lintang-b-s/igo/pkg"
	da "github.com/lintang-b-s/igo/pkg/datastructure"
	"github.com/lintang-b-s/igo/pkg/util"
)

// PathResult. nodes[0] == s, nodes[len-1] == t, edges[i] connects nodes[i] -> nodes[i+1]
type PathResult struct {
	Nodes      []da.Index
	Edges      []da.Index
	TravelTime float64
	Found      bool
}

// Dijkstra. point to point dijkstra on the current weights of a graph. edges with weight >= pkg.INF_WEIGHT
// are never relaxed. not safe for concurrent use, create one per query.
type Dijkstra struct {
	graph Graph

	info labels
	pq   *da.MinHeap[da.Index]

	numSettledNodes int
}

func NewDijkstra(graph Graph) *Dijkstra {
	return &Dijkstra{
		graph: graph,
		info:  make(labels),
		pq:    da.NewFourAryHeap[da.Index](),
	}
}

func (us *Dijkstra) GetNumSettledNodes() int {
	return us.numSettledNodes
}

// ShortestPath. minimum travel time path from s to t, search stops as soon as t is settled.
func (us *Dijkstra) ShortestPath(s, t da.Index) PathResult {
	us.info = make(labels)
	us.pq.Clear()
	us.numSettledNodes = 0

	if s == t {
		return PathResult{Nodes: []da.Index{s}, Edges: []da.Index{}, Found: true}
	}

	us.info[s] = NewVertexInfo(0, newVertexEdgePair(da.INVALID_INDEX, da.INVALID_INDEX))
	us.pq.Insert(s, 0)

	for !us.pq.IsEmpty() {
		uId, _, _ := us.pq.ExtractMin()
		uInfo := us.info[uId]
		uInfo.settled = true
		us.numSettledNodes++

		if uId == t {
			return us.retrievePath(s, t)
		}

		us.graphSearchUni(uId, uInfo.travelTime)
	}

	return PathResult{TravelTime: pkg.INF_WEIGHT}
}

func (us *Dijkstra) graphSearchUni(uId da.Index, uTravelTime float64) {
	us.graph.ForOutEdgesOf(uId, func(e *da.Edge, weight float64) {
		if weight >= pkg.INF_WEIGHT {
			return
		}
		vId := e.GetHead()

		newTravelTime := uTravelTime + weight
		if newTravelTime >= pkg.INF_WEIGHT {
			return
		}

		vInfo, vAlreadyLabelled := us.info[vId]
		if vAlreadyLabelled && (vInfo.settled || newTravelTime >= vInfo.travelTime) {
			// newTravelTime is not better
			return
		}

		// a labelled but unsettled vertex is always queued
		if vAlreadyLabelled {
			vInfo.update(newTravelTime, newVertexEdgePair(uId, e.GetEdgeId()))
			_ = us.pq.DecreaseKey(vId, newTravelTime)
			return
		}
		us.info[vId] = NewVertexInfo(newTravelTime, newVertexEdgePair(uId, e.GetEdgeId()))
		us.pq.Insert(vId, newTravelTime)
	})
}

func (us *Dijkstra) retrievePath(s, t da.Index) PathResult {
	nodes := []da.Index{t}
	edges := []da.Index{}

	cur := t
	for cur != s {
		parent := us.info[cur].GetParent()
		edges = append(edges, parent.getEdge())
		nodes = append(nodes, parent.getVertex())
		cur = parent.getVertex()
	}

	return PathResult{
		Nodes:      util.ReverseG(nodes),
		Edges:      util.ReverseG(edges),
		TravelTime: us.info[t].GetTravelTime(),
		Found:      true,
	}
}
