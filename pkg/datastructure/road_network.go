package datastructure

import (
	"sort"

	"github.com/lintang-b-s/igo/pkg"
)

type Index uint32

const INVALID_INDEX Index = ^Index(0)

type Vertex struct {
	lat      float64
	lon      float64
	osmId    int64 // stable node id, survives cache round trips & rebuilds
	firstOut Index // index of the first outEdge of this vertex in RoadNetwork.edges
	firstIn  Index // index of the first entry of this vertex in RoadNetwork.inEdges
	id       Index
}

func NewVertex(lat, lon float64, id Index, osmId int64) *Vertex {
	return &Vertex{
		lat:   lat,
		lon:   lon,
		id:    id,
		osmId: osmId,
	}
}

func (v *Vertex) GetID() Index {
	return v.id
}

func (v *Vertex) GetOsmID() int64 {
	return v.osmId
}

func (v *Vertex) GetLat() float64 {
	return v.lat
}

func (v *Vertex) GetLon() float64 {
	return v.lon
}

func (v *Vertex) GetCoordinate() Coordinate {
	return NewCoordinate(v.lat, v.lon)
}

// Edge. directed road segment tail -> head
type Edge struct {
	length   float64 // meter
	baseTime float64 // second, free-flow travel time
	edgeId   Index
	tail     Index
	head     Index
	hwType   pkg.OsmHighwayType
}

func NewEdge(tail, head Index, length, baseTime float64, hwType pkg.OsmHighwayType) Edge {
	return Edge{
		tail:     tail,
		head:     head,
		length:   length,
		baseTime: baseTime,
		hwType:   hwType,
	}
}

func (e *Edge) GetEdgeId() Index {
	return e.edgeId
}

func (e *Edge) GetTail() Index {
	return e.tail
}

func (e *Edge) GetHead() Index {
	return e.head
}

func (e *Edge) GetLength() float64 {
	return e.length
}

func (e *Edge) GetBaseTime() float64 {
	return e.baseTime
}

func (e *Edge) GetHighwayType() pkg.OsmHighwayType {
	return e.hwType
}

// RoadNetwork. static directed road graph in forward-star layout. immutable after NewRoadNetwork,
// every accessor is read-only so a single instance is shared by all weighted graphs.
type RoadNetwork struct {
	vertices []*Vertex // len = numVertices + 1, last one is a dummy sentinel for firstOut/firstIn
	edges    []Edge    // sorted by (tail, head), edgeId == position
	inEdges  []Index   // edge ids grouped by head

	osmIdToIndex map[int64]Index
	boundingBox  *BoundingBox
}

// NewRoadNetwork. vertices must have ids 0..n-1. multi-edges (same tail & head) are collapsed keeping
// the shortest one, self loops are dropped and base times are raised to at least pkg.MIN_BASE_TIME.
func NewRoadNetwork(vertices []*Vertex, edges []Edge) *RoadNetwork {
	n := len(vertices)

	collapsed := make(map[[2]Index]Edge, len(edges))
	for _, e := range edges {
		if e.tail == e.head {
			continue
		}
		e.baseTime = max(e.baseTime, pkg.MIN_BASE_TIME)
		key := [2]Index{e.tail, e.head}
		old, ok := collapsed[key]
		if !ok || e.length < old.length || (e.length == old.length && e.baseTime < old.baseTime) {
			collapsed[key] = e
		}
	}

	sortedEdges := make([]Edge, 0, len(collapsed))
	for _, e := range collapsed {
		sortedEdges = append(sortedEdges, e)
	}
	sort.Slice(sortedEdges, func(i, j int) bool {
		if sortedEdges[i].tail != sortedEdges[j].tail {
			return sortedEdges[i].tail < sortedEdges[j].tail
		}
		return sortedEdges[i].head < sortedEdges[j].head
	})

	vs := make([]*Vertex, n+1)
	copy(vs, vertices)
	vs[n] = NewVertex(0, 0, Index(n), 0)

	outDegree := make([]Index, n+1)
	inDegree := make([]Index, n+1)
	for i := range sortedEdges {
		sortedEdges[i].edgeId = Index(i)
		outDegree[sortedEdges[i].tail]++
		inDegree[sortedEdges[i].head]++
	}

	firstOut, firstIn := Index(0), Index(0)
	for v := 0; v <= n; v++ {
		vs[v].firstOut = firstOut
		vs[v].firstIn = firstIn
		firstOut += outDegree[v]
		firstIn += inDegree[v]
	}

	inEdges := make([]Index, len(sortedEdges))
	inPos := make([]Index, n)
	for v := 0; v < n; v++ {
		inPos[v] = vs[v].firstIn
	}
	for i := range sortedEdges {
		h := sortedEdges[i].head
		inEdges[inPos[h]] = sortedEdges[i].edgeId
		inPos[h]++
	}

	osmIdToIndex := make(map[int64]Index, n)
	minLat, minLon, maxLat, maxLon := 90.0, 180.0, -90.0, -180.0
	for _, v := range vertices {
		osmIdToIndex[v.osmId] = v.id
		minLat = min(minLat, v.lat)
		minLon = min(minLon, v.lon)
		maxLat = max(maxLat, v.lat)
		maxLon = max(maxLon, v.lon)
	}

	return &RoadNetwork{
		vertices:     vs,
		edges:        sortedEdges,
		inEdges:      inEdges,
		osmIdToIndex: osmIdToIndex,
		boundingBox:  NewBoundingBox(minLat, minLon, maxLat, maxLon),
	}
}

func (g *RoadNetwork) NumberOfVertices() int {
	return len(g.vertices) - 1
}

func (g *RoadNetwork) NumberOfEdges() int {
	return len(g.edges)
}

func (g *RoadNetwork) GetVertex(u Index) *Vertex {
	return g.vertices[u]
}

func (g *RoadNetwork) GetEdge(e Index) *Edge {
	return &g.edges[e]
}

func (g *RoadNetwork) GetOutDegree(u Index) Index {
	return g.vertices[u+1].firstOut - g.vertices[u].firstOut
}

func (g *RoadNetwork) GetInDegree(u Index) Index {
	return g.vertices[u+1].firstIn - g.vertices[u].firstIn
}

func (g *RoadNetwork) GetBoundingBox() *BoundingBox {
	return g.boundingBox
}

func (g *RoadNetwork) GetIndexOfOsmID(osmId int64) (Index, bool) {
	idx, ok := g.osmIdToIndex[osmId]
	return idx, ok
}

// FindEdge. edge id of u->v
func (g *RoadNetwork) FindEdge(u, v Index) (Index, bool) {
	lo, hi := g.vertices[u].firstOut, g.vertices[u+1].firstOut
	i := sort.Search(int(hi-lo), func(i int) bool {
		return g.edges[lo+Index(i)].head >= v
	})
	e := lo + Index(i)
	if e < hi && g.edges[e].head == v {
		return e, true
	}
	return INVALID_INDEX, false
}

func (g *RoadNetwork) ForOutEdgesOf(u Index, handle func(e *Edge)) {
	for e := g.vertices[u].firstOut; e < g.vertices[u+1].firstOut; e++ {
		handle(&g.edges[e])
	}
}

func (g *RoadNetwork) ForInEdgesOf(v Index, handle func(e *Edge)) {
	for i := g.vertices[v].firstIn; i < g.vertices[v+1].firstIn; i++ {
		handle(&g.edges[g.inEdges[i]])
	}
}

func (g *RoadNetwork) ForVertices(handle func(v *Vertex)) {
	for i := 0; i < g.NumberOfVertices(); i++ {
		handle(g.vertices[i])
	}
}

func (g *RoadNetwork) ForEdges(handle func(e *Edge)) {
	for i := range g.edges {
		handle(&g.edges[i])
	}
}
