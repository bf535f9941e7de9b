package guidance

import da "github.com/lintang-b-s/igo/pkg/datastructure"

// Graph. implemented by *datastructure.WeightedGraph
type Graph interface {
	GetNetwork() *da.RoadNetwork
	GetWeight(e da.Index) float64
}
