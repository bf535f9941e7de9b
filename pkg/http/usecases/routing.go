package usecases

import (
	"errors"

	da "github.com/lintang-b-s/igo/pkg/datastructure"
	"github.com/lintang-b-s/igo/pkg/engine/routing"
	"github.com/lintang-b-s/igo/pkg/geo"
	"github.com/lintang-b-s/igo/pkg/guidance"
	"github.com/lintang-b-s/igo/pkg/scheduler"
	"github.com/lintang-b-s/igo/pkg/util"
	geojson "github.com/paulmach/go.geojson"
	"go.uber.org/zap"
)

type RouteResult struct {
	Route      *da.Route
	Polyline   string
	Summary    string
	Directions []guidance.DrivingDirection
}

type RoutingService struct {
	log    *zap.Logger
	engine RoutingEngine
}

func NewRoutingService(log *zap.Logger, engine RoutingEngine) *RoutingService {
	return &RoutingService{
		log:    log,
		engine: engine,
	}
}

func (rs *RoutingService) ShortestPath(origLat, origLon, dstLat, dstLon float64) (*RouteResult, error) {
	route, graph, err := rs.engine.ShortestRoute(da.NewCoordinate(origLat, origLon), da.NewCoordinate(dstLat, dstLon))
	if err != nil {
		return nil, wrapRoutingError(err, origLat, origLon, dstLat, dstLon)
	}

	directions := guidance.NewDirectionBuilder(graph).GetDrivingDirections(route)
	return &RouteResult{
		Route:      route,
		Polyline:   geo.PolylineFromCoords(da.NewGeoCoordinates(route.GetCoordinates())),
		Summary:    guidance.Summary(route.GetTotalTime(), route.GetTotalDistance()),
		Directions: directions,
	}, nil
}

// ShortestPathGeoJSON. route as a FeatureCollection: the path LineString plus origin & destination points.
func (rs *RoutingService) ShortestPathGeoJSON(origLat, origLon, dstLat, dstLon float64) (*geojson.FeatureCollection, error) {
	res, err := rs.ShortestPath(origLat, origLon, dstLat, dstLon)
	if err != nil {
		return nil, err
	}
	route := res.Route

	coords := route.GetCoordinates()
	line := make([][]float64, len(coords))
	for i, c := range coords {
		line[i] = []float64{c.GetLon(), c.GetLat()}
	}

	fc := geojson.NewFeatureCollection()
	path := geojson.NewLineStringFeature(line)
	path.SetProperty("eta", route.GetTotalTime())
	path.SetProperty("distance", route.GetTotalDistance())
	path.SetProperty("summary", res.Summary)
	path.SetProperty("generation", route.GetGeneration())
	fc.AddFeature(path)

	origin := geojson.NewPointFeature([]float64{origLon, origLat})
	origin.SetProperty("role", "origin")
	fc.AddFeature(origin)

	destination := geojson.NewPointFeature([]float64{dstLon, dstLat})
	destination.SetProperty("role", "destination")
	fc.AddFeature(destination)
	return fc, nil
}

// CongestionsGeoJSON. congestion map of the current graph: one LineString per monitored segment.
func (rs *RoutingService) CongestionsGeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, segment := range rs.engine.Congestions() {
		line := make([][]float64, len(segment.Polyline))
		for i, c := range segment.Polyline {
			line[i] = []float64{c.GetLon(), c.GetLat()}
		}

		feature := geojson.NewLineStringFeature(line)
		feature.ID = segment.ID
		feature.SetProperty("id", segment.ID)
		feature.SetProperty("description", segment.Description)
		feature.SetProperty("level", int(segment.Level))
		feature.SetProperty("state", segment.Level.String())
		fc.AddFeature(feature)
	}
	return fc
}

func (rs *RoutingService) TrafficStatus() scheduler.Status {
	return rs.engine.Status()
}

func wrapRoutingError(err error, origLat, origLon, dstLat, dstLon float64) error {
	switch {
	case errors.Is(err, routing.ErrNoRouteFound):
		return util.WrapErrorf(err, util.ErrNotFound, "no route found from %f,%f to %f,%f",
			origLat, origLon, dstLat, dstLon)
	case errors.Is(err, routing.ErrUnreachableLocation):
		return util.WrapErrorf(err, util.ErrUnprocessable, "%s", err.Error())
	default:
		return util.WrapErrorf(err, util.ErrInternalServerError, "%s", util.MessageInternalServerError)
	}
}
