package datastructure

import (
	"time"

	"github.com/lintang-b-s/igo/pkg"
)

// WeightedGraph. congestion-adjusted travel times over a shared RoadNetwork. the topology is never copied,
// only the weight slice (indexed by edge id) is owned by this graph.
type WeightedGraph struct {
	network    *RoadNetwork
	weights    []float64 // second
	generation uint64
	builtAt    time.Time
}

// NewWeightedGraph. every weight starts at the edge base time.
func NewWeightedGraph(network *RoadNetwork) *WeightedGraph {
	weights := make([]float64, network.NumberOfEdges())
	for i := range weights {
		weights[i] = network.edges[i].baseTime
	}
	return &WeightedGraph{
		network: network,
		weights: weights,
		builtAt: time.Now(),
	}
}

func (wg *WeightedGraph) GetNetwork() *RoadNetwork {
	return wg.network
}

func (wg *WeightedGraph) NumberOfVertices() int {
	return wg.network.NumberOfVertices()
}

func (wg *WeightedGraph) NumberOfEdges() int {
	return len(wg.weights)
}

func (wg *WeightedGraph) GetWeight(e Index) float64 {
	return wg.weights[e]
}

// Weights returns a copy of the weight vector.
func (wg *WeightedGraph) Weights() []float64 {
	out := make([]float64, len(wg.weights))
	copy(out, wg.weights)
	return out
}

func (wg *WeightedGraph) IsTraversable(e Index) bool {
	return wg.weights[e] < pkg.INF_WEIGHT
}

// MultiplyWeight. scales the weight of e by factor, capped at pkg.INF_WEIGHT.
func (wg *WeightedGraph) MultiplyWeight(e Index, factor float64) float64 {
	w := wg.weights[e] * factor
	if w >= pkg.INF_WEIGHT || factor >= pkg.INF_WEIGHT {
		w = pkg.INF_WEIGHT
	}
	wg.weights[e] = w
	return w
}

func (wg *WeightedGraph) GetGeneration() uint64 {
	return wg.generation
}

// SetGeneration. only called by the publisher before the graph becomes visible to readers.
func (wg *WeightedGraph) SetGeneration(gen uint64) {
	wg.generation = gen
}

func (wg *WeightedGraph) GetBuiltAt() time.Time {
	return wg.builtAt
}

func (wg *WeightedGraph) SetBuiltAt(t time.Time) {
	wg.builtAt = t
}

// HasTraversableOutEdge. u has at least one outgoing edge with a finite weight
func (wg *WeightedGraph) HasTraversableOutEdge(u Index) bool {
	n := wg.network
	for e := n.vertices[u].firstOut; e < n.vertices[u+1].firstOut; e++ {
		if wg.weights[e] < pkg.INF_WEIGHT {
			return true
		}
	}
	return false
}

func (wg *WeightedGraph) HasTraversableInEdge(v Index) bool {
	n := wg.network
	for i := n.vertices[v].firstIn; i < n.vertices[v+1].firstIn; i++ {
		if wg.weights[n.inEdges[i]] < pkg.INF_WEIGHT {
			return true
		}
	}
	return false
}

// ForOutEdgesOf. calls handle with every outgoing edge of u and its current weight.
func (wg *WeightedGraph) ForOutEdgesOf(u Index, handle func(e *Edge, weight float64)) {
	n := wg.network
	for e := n.vertices[u].firstOut; e < n.vertices[u+1].firstOut; e++ {
		handle(&n.edges[e], wg.weights[e])
	}
}
