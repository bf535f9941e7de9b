package controllers

import (
	"github.com/lintang-b-s/igo/pkg/http/usecases"
	"github.com/lintang-b-s/igo/pkg/scheduler"
	geojson "github.com/paulmach/go.geojson"
)

type RoutingService interface {
	ShortestPath(origLat, origLon, dstLat, dstLon float64) (*usecases.RouteResult, error)
	ShortestPathGeoJSON(origLat, origLon, dstLat, dstLon float64) (*geojson.FeatureCollection, error)
	CongestionsGeoJSON() *geojson.FeatureCollection
	TrafficStatus() scheduler.Status
}
