package datastructure

import "github.com/lintang-b-s/igo/pkg"

// CongestionSegment. a monitored road stretch joined with its current congestion level
type CongestionSegment struct {
	ID          int64               `json:"id"`
	Description string              `json:"description"`
	Polyline    []Coordinate        `json:"polyline"`
	Level       pkg.CongestionLevel `json:"level"`
}

func NewCongestionSegment(id int64, description string, polyline []Coordinate,
	level pkg.CongestionLevel) CongestionSegment {
	return CongestionSegment{
		ID:          id,
		Description: description,
		Polyline:    polyline,
		Level:       level,
	}
}
