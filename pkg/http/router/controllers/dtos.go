package controllers

import (
	da "github.com/lintang-b-s/igo/pkg/datastructure"
	"github.com/lintang-b-s/igo/pkg/guidance"
	"github.com/lintang-b-s/igo/pkg/http/usecases"
)

type shortestPathRequest struct {
	OriginLat      float64 `json:"origin_lat" validate:"min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"min=-180,max=180"`
}

type shortestPathResponse struct {
	Eta        float64                     `json:"eta"`
	Dist       float64                     `json:"distance"`
	Path       string                      `json:"path"`
	Nodes      []int64                     `json:"nodes"`
	Summary    string                      `json:"summary"`
	Generation uint64                      `json:"generation"`
	Directions []guidance.DrivingDirection `json:"driving_directions"`
	Coords     []da.Coordinate             `json:"coordinates,omitempty"`
}

func NewShortestPathResponse(res *usecases.RouteResult, withCoords bool) shortestPathResponse {
	resp := shortestPathResponse{
		Eta:        res.Route.GetTotalTime(),
		Dist:       res.Route.GetTotalDistance(),
		Path:       res.Polyline,
		Nodes:      res.Route.GetNodeIds(),
		Summary:    res.Summary,
		Generation: res.Route.GetGeneration(),
		Directions: res.Directions,
	}
	if withCoords {
		resp.Coords = res.Route.GetCoordinates()
	}
	return resp
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
