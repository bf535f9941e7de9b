package pkg

const (
	INF_WEIGHT float64 = 1e15

	// length-bucketed free-flow speeds (km/h) for ways without maxspeed
	SHORT_EDGE_SPEED_KMH  = 10.0
	MEDIUM_EDGE_SPEED_KMH = 30.0
	LONG_EDGE_SPEED_KMH   = 50.0

	SHORT_EDGE_MAX_LENGTH  = 500.0  // meter
	MEDIUM_EDGE_MAX_LENGTH = 1000.0 // meter
)

const (
	// floor of an edge base time (second), keeps zero length edges sensitive to congestion factors
	MIN_BASE_TIME = 0.01
)

// enum of congestion level reported by the congestion feed
type CongestionLevel uint8

const (
	NO_DATA CongestionLevel = iota
	VERY_FLUID
	FLUID
	DENSE
	VERY_DENSE
	CONGESTED
	CLOSED
)

const MAX_CONGESTION_LEVEL = CLOSED

func (l CongestionLevel) String() string {
	switch l {
	case NO_DATA:
		return "no_data"
	case VERY_FLUID:
		return "very_fluid"
	case FLUID:
		return "fluid"
	case DENSE:
		return "dense"
	case VERY_DENSE:
		return "very_dense"
	case CONGESTED:
		return "congested"
	case CLOSED:
		return "closed"
	default:
		return "unknown"
	}
}

func (l CongestionLevel) Valid() bool {
	return l <= MAX_CONGESTION_LEVEL
}

type OsmHighwayType uint8

// enum buat osm highway buat routing: https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
const (
	MOTORWAY       OsmHighwayType = 0
	TRUNK          OsmHighwayType = 1
	PRIMARY        OsmHighwayType = 2
	SECONDARY      OsmHighwayType = 3
	TERTIARY       OsmHighwayType = 4
	RESIDENTIAL    OsmHighwayType = 5
	SERVICE        OsmHighwayType = 6
	UNCLASSIFIED   OsmHighwayType = 7
	MOTORWAY_LINK  OsmHighwayType = 8
	TRUNK_LINK     OsmHighwayType = 9
	PRIMARY_LINK   OsmHighwayType = 10
	SECONDARY_LINK OsmHighwayType = 11
	TERTIARY_LINK  OsmHighwayType = 12
	LIVING_STREET  OsmHighwayType = 13
	ROAD           OsmHighwayType = 14
	TRACK          OsmHighwayType = 15
	MOTORROAD      OsmHighwayType = 16
	UNKNOWN        OsmHighwayType = 17
)

func GetHighwayType(roadType string) OsmHighwayType {
	switch roadType {
	case "motorway":
		return MOTORWAY
	case "trunk":
		return TRUNK
	case "primary":
		return PRIMARY
	case "secondary":
		return SECONDARY
	case "tertiary":
		return TERTIARY
	case "unclassified":
		return UNCLASSIFIED
	case "residential":
		return RESIDENTIAL
	case "service":
		return SERVICE
	case "motorway_link":
		return MOTORWAY_LINK
	case "trunk_link":
		return TRUNK_LINK
	case "primary_link":
		return PRIMARY_LINK
	case "secondary_link":
		return SECONDARY_LINK
	case "tertiary_link":
		return TERTIARY_LINK
	case "living_street":
		return LIVING_STREET
	case "road":
		return ROAD
	case "track":
		return TRACK
	case "motorroad":
		return MOTORROAD
	default:
		return UNKNOWN
	}
}

var highwayTypeNames = [...]string{
	MOTORWAY:       "motorway",
	TRUNK:          "trunk",
	PRIMARY:        "primary",
	SECONDARY:      "secondary",
	TERTIARY:       "tertiary",
	RESIDENTIAL:    "residential",
	SERVICE:        "service",
	UNCLASSIFIED:   "unclassified",
	MOTORWAY_LINK:  "motorway_link",
	TRUNK_LINK:     "trunk_link",
	PRIMARY_LINK:   "primary_link",
	SECONDARY_LINK: "secondary_link",
	TERTIARY_LINK:  "tertiary_link",
	LIVING_STREET:  "living_street",
	ROAD:           "road",
	TRACK:          "track",
	MOTORROAD:      "motorroad",
	UNKNOWN:        "",
}

func (hw OsmHighwayType) String() string {
	if int(hw) >= len(highwayTypeNames) {
		return ""
	}
	return highwayTypeNames[hw]
}
