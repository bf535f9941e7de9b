package datastructure

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/igo/pkg"
	"github.com/lintang-b-s/igo/pkg/util"
	"github.com/pkg/errors"
)

const networkFormatVersion = "igo-network-v1"

// upper bound of the slice capacity reserved from the sizes line, the rest grows while reading
const maxPreallocated = 1 << 20

// WriteNetwork. bzip2 compressed text format:
//
//	igo-network-v1
//	<numVertices> <numEdges>
//	<osmId> <lat> <lon>                          (numVertices lines)
//	<tail> <head> <length> <baseTime> <hwType>  (numEdges lines)
func WriteNetwork(out io.Writer, g *RoadNetwork) error {
	bz, err := bzip2.NewWriter(out, &bzip2.WriterConfig{Level: bzip2.DefaultCompression})
	if err != nil {
		return errors.Wrap(err, "create bzip2 writer")
	}

	w := bufio.NewWriter(bz)

	fmt.Fprintf(w, "%s\n", networkFormatVersion)
	fmt.Fprintf(w, "%d %d\n", g.NumberOfVertices(), g.NumberOfEdges())

	for vId := 0; vId < g.NumberOfVertices(); vId++ {
		v := g.vertices[vId]
		latF := strconv.FormatFloat(v.lat, 'f', -1, 64)
		lonF := strconv.FormatFloat(v.lon, 'f', -1, 64)
		fmt.Fprintf(w, "%d %s %s\n", v.osmId, latF, lonF)
	}

	for _, e := range g.edges {
		lengthF := strconv.FormatFloat(e.length, 'f', -1, 64)
		baseTimeF := strconv.FormatFloat(e.baseTime, 'f', -1, 64)
		fmt.Fprintf(w, "%d %d %s %s %d\n", e.tail, e.head, lengthF, baseTimeF, e.hwType)
	}

	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "flush network")
	}
	return errors.Wrap(bz.Close(), "close bzip2 writer")
}

func fields(s string) []string {
	return strings.Fields(s)
}

func ParseIndex(s string) (Index, error) {
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if u > math.MaxUint32 {
		return 0, fmt.Errorf("value %s overflows uint32", s)
	}
	return Index(u), nil
}

func ReadNetwork(in io.Reader) (*RoadNetwork, error) {
	bz, err := bzip2.NewReader(in, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create bzip2 reader")
	}
	defer bz.Close()

	br := bufio.NewReader(bz)

	line, err := util.ReadLine(br)
	if err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	if line != networkFormatVersion {
		return nil, fmt.Errorf("unsupported network format %q", line)
	}

	line, err = util.ReadLine(br)
	if err != nil {
		return nil, errors.Wrap(err, "read sizes")
	}
	tokens := fields(line)
	if len(tokens) != 2 {
		return nil, fmt.Errorf("invalid sizes line %q", line)
	}
	numVertices, err := ParseIndex(tokens[0])
	if err != nil {
		return nil, errors.Wrap(err, "parse number of vertices")
	}
	numEdges, err := ParseIndex(tokens[1])
	if err != nil {
		return nil, errors.Wrap(err, "parse number of edges")
	}

	vertices := make([]*Vertex, 0, min(int(numVertices), maxPreallocated))
	for i := 0; i < int(numVertices); i++ {
		line, err = util.ReadLine(br)
		if err != nil {
			return nil, errors.Wrapf(err, "read vertex %d", i)
		}
		v, err := parseVertex(line, Index(i))
		if err != nil {
			return nil, err
		}
		vertices = append(vertices, v)
	}

	edges := make([]Edge, 0, min(int(numEdges), maxPreallocated))
	for i := 0; i < int(numEdges); i++ {
		line, err = util.ReadLine(br)
		if err != nil {
			return nil, errors.Wrapf(err, "read edge %d", i)
		}
		e, err := parseEdge(line, numVertices)
		if err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}

	return NewRoadNetwork(vertices, edges), nil
}

func parseVertex(line string, id Index) (*Vertex, error) {
	tokens := fields(line)
	if len(tokens) != 3 {
		return nil, fmt.Errorf("invalid vertex line %q", line)
	}
	osmId, err := strconv.ParseInt(tokens[0], 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "parse osm id of vertex %d", id)
	}
	lat, err := strconv.ParseFloat(tokens[1], 64)
	if err != nil {
		return nil, errors.Wrapf(err, "parse lat of vertex %d", id)
	}
	lon, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return nil, errors.Wrapf(err, "parse lon of vertex %d", id)
	}
	return NewVertex(lat, lon, id, osmId), nil
}

func parseEdge(line string, numVertices Index) (Edge, error) {
	tokens := fields(line)
	if len(tokens) != 5 {
		return Edge{}, fmt.Errorf("invalid edge line %q", line)
	}
	tail, err := ParseIndex(tokens[0])
	if err != nil {
		return Edge{}, errors.Wrap(err, "parse edge tail")
	}
	head, err := ParseIndex(tokens[1])
	if err != nil {
		return Edge{}, errors.Wrap(err, "parse edge head")
	}
	if tail >= numVertices || head >= numVertices {
		return Edge{}, fmt.Errorf("edge %d->%d out of range", tail, head)
	}
	length, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return Edge{}, errors.Wrap(err, "parse edge length")
	}
	baseTime, err := strconv.ParseFloat(tokens[3], 64)
	if err != nil {
		return Edge{}, errors.Wrap(err, "parse edge base time")
	}
	hwType, err := strconv.ParseUint(tokens[4], 10, 8)
	if err != nil {
		return Edge{}, errors.Wrap(err, "parse edge highway type")
	}
	return NewEdge(tail, head, length, baseTime, pkg.OsmHighwayType(hwType)), nil
}
