package routing

import (
	da "github.com/lintang-b-s/igo/pkg/datastructure"
)

// vertexEdgePair. predecessor of a labelled vertex: the vertex we came from and the edge we used
type vertexEdgePair struct {
	vertex da.Index
	edge   da.Index
}

func newVertexEdgePair(vertex, edge da.Index) vertexEdgePair {
	return vertexEdgePair{
		vertex: vertex,
		edge:   edge,
	}
}

func (ve vertexEdgePair) getVertex() da.Index {
	return ve.vertex
}

func (ve vertexEdgePair) getEdge() da.Index {
	return ve.edge
}

type VertexInfo struct {
	travelTime float64
	parent     vertexEdgePair
	settled    bool
}

func NewVertexInfo(travelTime float64, parent vertexEdgePair) *VertexInfo {
	return &VertexInfo{
		travelTime: travelTime,
		parent:     parent,
	}
}

func (vi *VertexInfo) GetTravelTime() float64 {
	return vi.travelTime
}

func (vi *VertexInfo) GetParent() vertexEdgePair {
	return vi.parent
}

func (vi *VertexInfo) update(travelTime float64, parent vertexEdgePair) {
	vi.travelTime = travelTime
	vi.parent = parent
}

// labels. sparse distance labels, a point to point query only touches a small part of a city graph
type labels map[da.Index]*VertexInfo
