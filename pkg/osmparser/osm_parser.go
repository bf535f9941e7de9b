package osmparser

import (
	"context"
	"io"
	"os"
	"runtime"

	"github.com/lintang-b-s/igo/pkg"
	"github.com/lintang-b-s/igo/pkg/costfunction"
	"github.com/lintang-b-s/igo/pkg/datastructure"
	"github.com/lintang-b-s/igo/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ScannerFactory opens a fresh scanner over the same extract. Parse scans the extract twice.
type ScannerFactory func() (osm.Scanner, error)

type OsmParser struct {
	wayNodeMap      map[int64]NodeType
	acceptedNodeMap map[int64]NodeCoord
	nodeIDMap       map[int64]datastructure.Index
	nodeToOsmId     map[datastructure.Index]int64
	costFunction    costfunction.CostFunction
	logger          *zap.Logger
}

func NewOsmParser(cf costfunction.CostFunction, logger *zap.Logger) *OsmParser {
	return &OsmParser{
		wayNodeMap:      make(map[int64]NodeType),
		acceptedNodeMap: make(map[int64]NodeCoord),
		nodeIDMap:       make(map[int64]datastructure.Index),
		nodeToOsmId:     make(map[datastructure.Index]int64),
		costFunction:    cf,
		logger:          logger,
	}
}

// SetAcceptedNodeMap & SetNodeToOsmId let tests build a network from hand made edges with BuildNetwork.
func (p *OsmParser) SetAcceptedNodeMap(acceptedNodeMap map[int64]NodeCoord) {
	p.acceptedNodeMap = acceptedNodeMap
}

func (p *OsmParser) SetNodeToOsmId(nodeToOsmId map[datastructure.Index]int64) {
	p.nodeToOsmId = nodeToOsmId
}

type pbfFileScanner struct {
	*osmpbf.Scanner
	rc io.ReadCloser
}

func (s *pbfFileScanner) Close() error {
	err := s.Scanner.Close()
	if ferr := s.rc.Close(); err == nil {
		err = ferr
	}
	return err
}

// PbfReader. ScannerFactory decoding the .osm.pbf stream returned by every call of open
func PbfReader(ctx context.Context, open func() (io.ReadCloser, error)) ScannerFactory {
	return func() (osm.Scanner, error) {
		rc, err := open()
		if err != nil {
			return nil, err
		}
		return &pbfFileScanner{
			Scanner: osmpbf.New(ctx, rc, runtime.GOMAXPROCS(-1)),
			rc:      rc,
		}, nil
	}
}

// PbfFile. ScannerFactory over an .osm.pbf file on disk
func PbfFile(ctx context.Context, path string) ScannerFactory {
	return PbfReader(ctx, func() (io.ReadCloser, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "open osm extract %s", path)
		}
		return f, nil
	})
}

// Parse builds the drive network of an osm extract.
// first pass marks way nodes shared by more than one way (junctions), second pass reads node coordinates
// and splits every accepted way at its junctions into graph edges.
func (p *OsmParser) Parse(open ScannerFactory) (*datastructure.RoadNetwork, error) {
	scanner, err := open()
	if err != nil {
		return nil, err
	}

	countWays := 0
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok || len(way.Nodes) < 2 || !acceptOsmWay(way) {
			continue
		}
		if (countWays+1)%50000 == 0 {
			p.logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
		}
		countWays++

		for i, wayNode := range way.Nodes {
			nodeID := int64(wayNode.ID)
			if _, ok := p.wayNodeMap[nodeID]; !ok {
				if i == 0 || i == len(way.Nodes)-1 {
					p.wayNodeMap[nodeID] = END_NODE
				} else {
					p.wayNodeMap[nodeID] = BETWEEN_NODE
				}
			} else {
				p.wayNodeMap[nodeID] = JUNCTION_NODE
			}
		}
	}
	err = scanner.Err()
	scanner.Close()
	if err != nil {
		return nil, errors.Wrap(err, "scan osm ways")
	}

	scanner, err = open()
	if err != nil {
		return nil, err
	}
	defer scanner.Close()

	// pbf extracts store nodes before ways, ways are buffered only for non sorted inputs
	pendingWays := make([]*osm.Way, 0)
	scannedEdges := make([]Edge, 0)

	countNodes := 0
	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			if (countNodes+1)%500000 == 0 {
				p.logger.Sugar().Infof("processing openstreetmap nodes: %d...", countNodes+1)
			}
			countNodes++
			if _, ok := p.wayNodeMap[int64(o.ID)]; ok {
				p.acceptedNodeMap[int64(o.ID)] = NewNodeCoord(o.Lat, o.Lon)
			}
		case *osm.Way:
			if len(o.Nodes) < 2 || !acceptOsmWay(o) {
				continue
			}
			pendingWays = append(pendingWays, o)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scan osm nodes")
	}

	for i, way := range pendingWays {
		if (i+1)%100000 == 0 {
			p.logger.Sugar().Infof("processing openstreetmap ways: %d...", i+1)
		}
		p.processWay(way, &scannedEdges)
	}

	network := p.BuildNetwork(scannedEdges)

	p.logger.Sugar().Infof("number of vertices: %v", network.NumberOfVertices())
	p.logger.Sugar().Infof("number of edges: %v", network.NumberOfEdges())
	return network, nil
}

type wayDirection struct {
	oneWay  bool
	forward bool
}

func (p *OsmParser) processWay(way *osm.Way, scannedEdges *[]Edge) {
	hwType := pkg.GetHighwayType(way.Tags.Find("highway"))
	speed, ok := costfunction.ParseMaxSpeed(way.Tags.Find("maxspeed"))
	if !ok {
		speed = 0
	}
	dir := getWayDirection(way)

	waySegment := []node{}
	for i, wayNode := range way.Nodes {
		coord, ok := p.acceptedNodeMap[int64(wayNode.ID)]
		if !ok {
			// node outside of the extract. close the current segment there.
			if len(waySegment) > 1 {
				p.addEdge(waySegment, speed, hwType, dir, scannedEdges)
			}
			waySegment = []node{}
			continue
		}
		nodeData := node{id: int64(wayNode.ID), coord: coord}
		waySegment = append(waySegment, nodeData)

		if i > 0 && p.isJunctionNode(nodeData.id) && len(waySegment) > 1 {
			p.addEdge(waySegment, speed, hwType, dir, scannedEdges)
			waySegment = []node{nodeData}
		}
	}
	if len(waySegment) > 1 {
		p.addEdge(waySegment, speed, hwType, dir, scannedEdges)
	}
}

func isRestricted(value string) bool {
	return value == "no" || value == "restricted"
}

func getWayDirection(way *osm.Way) wayDirection {
	forwardRestricted := isRestricted(way.Tags.Find("vehicle:forward")) ||
		isRestricted(way.Tags.Find("motor_vehicle:forward"))
	backwardRestricted := isRestricted(way.Tags.Find("vehicle:backward")) ||
		isRestricted(way.Tags.Find("motor_vehicle:backward"))

	switch way.Tags.Find("oneway") {
	case "yes", "true", "1":
		return wayDirection{oneWay: true, forward: true}
	case "-1", "reverse":
		return wayDirection{oneWay: true, forward: false}
	case "no", "false", "0":
		return wayDirection{oneWay: false, forward: true}
	}

	switch {
	case forwardRestricted:
		return wayDirection{oneWay: true, forward: false}
	case backwardRestricted:
		return wayDirection{oneWay: true, forward: true}
	}

	junction := way.Tags.Find("junction")
	if junction == "roundabout" || junction == "circular" {
		return wayDirection{oneWay: true, forward: true}
	}
	return wayDirection{oneWay: false, forward: true}
}

func (p *OsmParser) nodeIndex(osmID int64) datastructure.Index {
	if idx, ok := p.nodeIDMap[osmID]; ok {
		return idx
	}
	idx := datastructure.Index(len(p.nodeIDMap))
	p.nodeIDMap[osmID] = idx
	p.nodeToOsmId[idx] = osmID
	return idx
}

func (p *OsmParser) addEdge(segment []node, speed float64, hwType pkg.OsmHighwayType, dir wayDirection,
	scannedEdges *[]Edge) {
	from := segment[0]
	to := segment[len(segment)-1]
	if from.id == to.id {
		if len(segment) > 2 {
			// closed way without junction in between
			p.addEdge(segment[:len(segment)-1], speed, hwType, dir, scannedEdges)
			p.addEdge(segment[len(segment)-2:], speed, hwType, dir, scannedEdges)
		}
		return
	}

	distance := 0.0
	for i := 1; i < len(segment); i++ {
		distance += geo.CalculateHaversineDistance(segment[i-1].coord.lat, segment[i-1].coord.lon,
			segment[i].coord.lat, segment[i].coord.lon)
	}
	distanceInMeter := distance * 1000
	baseTime := p.costFunction.BaseTravelTime(distanceInMeter, speed)

	u := uint32(p.nodeIndex(from.id))
	v := uint32(p.nodeIndex(to.id))

	if !dir.oneWay || dir.forward {
		*scannedEdges = append(*scannedEdges, NewEdge(u, v, distanceInMeter, baseTime, hwType))
	}
	if !dir.oneWay || !dir.forward {
		*scannedEdges = append(*scannedEdges, NewEdge(v, u, distanceInMeter, baseTime, hwType))
	}
}

func (p *OsmParser) isJunctionNode(nodeID int64) bool {
	return p.wayNodeMap[nodeID] == JUNCTION_NODE
}

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	if _, ok := acceptedHighway[highway]; !ok {
		return false
	}
	if highway == "service" {
		if _, skip := skipService[way.Tags.Find("service")]; skip {
			return false
		}
	}
	if way.Tags.Find("area") == "yes" {
		return false
	}
	access := way.Tags.Find("access")
	motorVehicle := way.Tags.Find("motor_vehicle")
	return access != "no" && access != "private" && motorVehicle != "no"
}
