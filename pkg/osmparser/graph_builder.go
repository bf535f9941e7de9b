package osmparser

import (
	"github.com/lintang-b-s/igo/pkg/datastructure"
)

// BuildNetwork. turns scanned edges into a RoadNetwork. every vertex referenced by an edge gets the coordinate
// of its osm node.
func (p *OsmParser) BuildNetwork(scannedEdges []Edge) *datastructure.RoadNetwork {
	numV := len(p.nodeToOsmId)
	vertices := make([]*datastructure.Vertex, numV)
	for v := 0; v < numV; v++ {
		osmID := p.nodeToOsmId[datastructure.Index(v)]
		coord := p.acceptedNodeMap[osmID]
		vertices[v] = datastructure.NewVertex(coord.lat, coord.lon, datastructure.Index(v), osmID)
	}

	edges := make([]datastructure.Edge, 0, len(scannedEdges))
	for _, e := range scannedEdges {
		if int(e.from) >= numV || int(e.to) >= numV {
			continue
		}
		edges = append(edges, datastructure.NewEdge(datastructure.Index(e.from), datastructure.Index(e.to),
			e.length, e.baseTime, e.hwType))
	}

	return datastructure.NewRoadNetwork(vertices, edges)
}
