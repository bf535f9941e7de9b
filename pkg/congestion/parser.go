package congestion

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lintang-b-s/igo/pkg"
	da "github.com/lintang-b-s/igo/pkg/datastructure"
	"github.com/lintang-b-s/igo/pkg/util"
)

// rawSegment. one row of the segment geometry feed
type rawSegment struct {
	id          int64
	description string
	polyline    []da.Coordinate
}

// parseSegments reads the segment feed: a header row, then `id,description,"lon,lat,lon,lat,..."`.
func parseSegments(r io.Reader) ([]rawSegment, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3
	reader.ReuseRecord = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty segment feed", ErrFeedMalformed)
		}
		return nil, classifyReadError("segment feed header", err)
	}

	segments := make([]rawSegment, 0, 512)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, classifyReadError("segment feed", err)
		}

		line, _ := reader.FieldPos(0)
		id, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: segment feed line %d: invalid id %q", ErrFeedMalformed, line, record[0])
		}
		polyline, err := parseCoordinates(record[2])
		if err != nil {
			return nil, fmt.Errorf("%w: segment feed line %d: %w", ErrFeedMalformed, line, err)
		}
		segments = append(segments, rawSegment{
			id:          id,
			description: strings.TrimSpace(record[1]),
			polyline:    polyline,
		})
	}
	return segments, nil
}

// parseCoordinates. "lon,lat,lon,lat,..." with at least two points
func parseCoordinates(s string) ([]da.Coordinate, error) {
	tokens := strings.Split(s, ",")
	if len(tokens)%2 != 0 {
		return nil, fmt.Errorf("odd number of coordinate values (%d)", len(tokens))
	}
	if len(tokens) < 4 {
		return nil, fmt.Errorf("segment needs at least two points, got %d values", len(tokens))
	}

	coords := make([]da.Coordinate, 0, len(tokens)/2)
	for i := 0; i < len(tokens); i += 2 {
		lon, err := strconv.ParseFloat(strings.TrimSpace(tokens[i]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude %q", tokens[i])
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(tokens[i+1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude %q", tokens[i+1])
		}
		if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			return nil, fmt.Errorf("coordinate (%v, %v) out of range", lat, lon)
		}
		coords = append(coords, da.NewCoordinate(lat, lon))
	}
	return coords, nil
}

// parseCongestions reads the congestion feed: rows `id#timestamp#current#predicted`.
// the level of a segment is `current`. a repeated id keeps its last row.
func parseCongestions(r io.Reader) (map[int64]pkg.CongestionLevel, error) {
	br := bufio.NewReader(r)
	levels := make(map[int64]pkg.CongestionLevel)

	lineNo := 0
	for {
		line, err := util.ReadLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: congestion feed: %w", ErrFeedUnavailable, err)
		}
		lineNo++

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		tokens := strings.Split(line, "#")
		if len(tokens) != 4 {
			return nil, fmt.Errorf("%w: congestion feed line %d: expected 4 fields, got %d", ErrFeedMalformed,
				lineNo, len(tokens))
		}
		id, err := strconv.ParseInt(tokens[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: congestion feed line %d: invalid id %q", ErrFeedMalformed, lineNo, tokens[0])
		}
		current, err := strconv.Atoi(tokens[2])
		if err != nil || current < 0 || current > int(pkg.MAX_CONGESTION_LEVEL) {
			return nil, fmt.Errorf("%w: congestion feed line %d: invalid level %q", ErrFeedMalformed, lineNo,
				tokens[2])
		}
		levels[id] = pkg.CongestionLevel(current)
	}
	return levels, nil
}

// classifyReadError. csv syntax errors are malformed input, anything else failed while reading the body.
func classifyReadError(what string, err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Errorf("%w: %s: %w", ErrFeedMalformed, what, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrFeedUnavailable, what, err)
}
