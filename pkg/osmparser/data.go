package osmparser

import "github.com/lintang-b-s/igo/pkg"

type NodeType uint8

const (
	END_NODE NodeType = iota
	BETWEEN_NODE
	JUNCTION_NODE
)

type node struct {
	id    int64
	coord NodeCoord
}

type NodeCoord struct {
	lat float64
	lon float64
}

func NewNodeCoord(lat, lon float64) NodeCoord {
	return NodeCoord{lat, lon}
}

// Edge. one direction of a way segment between two graph nodes, before it is added to the network
type Edge struct {
	from     uint32
	to       uint32
	length   float64 // meter
	baseTime float64 // second
	hwType   pkg.OsmHighwayType
}

func NewEdge(from, to uint32, length, baseTime float64, hwType pkg.OsmHighwayType) Edge {
	return Edge{
		from:     from,
		to:       to,
		length:   length,
		baseTime: baseTime,
		hwType:   hwType,
	}
}

func (e *Edge) GetFrom() uint32 {
	return e.from
}

func (e *Edge) GetTo() uint32 {
	return e.to
}

var (
	// drive network, https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
	acceptedHighway = map[string]struct{}{
		"motorway":       struct{}{},
		"motorway_link":  struct{}{},
		"trunk":          struct{}{},
		"trunk_link":     struct{}{},
		"primary":        struct{}{},
		"primary_link":   struct{}{},
		"secondary":      struct{}{},
		"secondary_link": struct{}{},
		"tertiary":       struct{}{},
		"tertiary_link":  struct{}{},
		"residential":    struct{}{},
		"service":        struct{}{},
		"road":           struct{}{},
		"unclassified":   struct{}{},
		"living_street":  struct{}{},
		"motorroad":      struct{}{},
	}

	// service ways that are not part of the drive network
	skipService = map[string]struct{}{
		"parking_aisle":    struct{}{},
		"driveway":         struct{}{},
		"emergency_access": struct{}{},
	}
)
