package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	da "github.com/lintang-b-s/igo/pkg/datastructure"
	"github.com/lintang-b-s/igo/pkg/engine/routing"
	helper "github.com/lintang-b-s/igo/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/igo/pkg/http/usecases"
	"github.com/lintang-b-s/igo/pkg/scheduler"
	"github.com/lintang-b-s/igo/pkg/util"
	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRoutingService struct {
	err error
}

func (f *fakeRoutingService) ShortestPath(origLat, origLon, dstLat, dstLon float64) (*usecases.RouteResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	coords := []da.Coordinate{da.NewCoordinate(origLat, origLon), da.NewCoordinate(dstLat, dstLon)}
	return &usecases.RouteResult{
		Route:    da.NewRoute([]int64{1, 2}, coords, []da.Index{0}, 40, 300, 3),
		Polyline: "_p~iF~ps|U_ulLnnqC",
		Summary:  "1 min, 300 m",
	}, nil
}

func (f *fakeRoutingService) ShortestPathGeoJSON(origLat, origLon, dstLat, dstLon float64) (*geojson.FeatureCollection, error) {
	if f.err != nil {
		return nil, f.err
	}
	fc := geojson.NewFeatureCollection()
	fc.AddFeature(geojson.NewLineStringFeature([][]float64{{origLon, origLat}, {dstLon, dstLat}}))
	fc.AddFeature(geojson.NewPointFeature([]float64{origLon, origLat}))
	fc.AddFeature(geojson.NewPointFeature([]float64{dstLon, dstLat}))
	return fc, nil
}

func (f *fakeRoutingService) CongestionsGeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	feature := geojson.NewLineStringFeature([][]float64{{2.1700, 41.3800}, {2.1712, 41.3800}})
	feature.SetProperty("description", "A-B")
	feature.SetProperty("level", 3)
	fc.AddFeature(feature)
	return fc
}

func (f *fakeRoutingService) TrafficStatus() scheduler.Status {
	return scheduler.Status{State: "idle", Generation: 3}
}

func newTestRouter(svc RoutingService) http.Handler {
	router := httprouter.New()
	New(svc, zap.NewNop()).Routes(helper.NewRouteGroup(router, "/api"))
	return router
}

const validQuery = "?origin_lat=41.38&origin_lon=2.17&destination_lat=41.39&destination_lon=2.18"

func TestShortestPathHandler(t *testing.T) {
	testCases := []struct {
		name       string
		query      string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "ok",
			query:      validQuery,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing destination",
			query:      "?origin_lat=41.38&origin_lon=2.17",
			wantStatus: http.StatusBadRequest,
			wantCode:   "bad_request",
		},
		{
			name:       "latitude out of range",
			query:      "?origin_lat=95&origin_lon=2.17&destination_lat=41.39&destination_lon=2.18",
			wantStatus: http.StatusBadRequest,
			wantCode:   "bad_request",
		},
		{
			name:  "no route",
			query: validQuery,
			serviceErr: util.WrapErrorf(routing.ErrNoRouteFound, util.ErrNotFound,
				"no route found"),
			wantStatus: http.StatusNotFound,
			wantCode:   "no_route_found",
		},
		{
			name:  "unreachable location",
			query: validQuery,
			serviceErr: util.WrapErrorf(routing.ErrUnreachableLocation, util.ErrUnprocessable,
				"origin is outside the road network"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "unreachable_location",
		},
		{
			name:       "unexpected error",
			query:      validQuery,
			serviceErr: errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(&fakeRoutingService{err: tt.serviceErr})
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/computeRoutes"+tt.query, nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			if tt.wantStatus != http.StatusOK {
				var body errorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantCode, body.Error.Code)
				assert.NotEmpty(t, body.Error.Message)
				return
			}

			var body struct {
				Data shortestPathResponse `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, 40.0, body.Data.Eta)
			assert.Equal(t, 300.0, body.Data.Dist)
			assert.Equal(t, []int64{1, 2}, body.Data.Nodes)
			assert.Equal(t, uint64(3), body.Data.Generation)
			assert.Empty(t, body.Data.Coords)
		})
	}
}

func TestShortestPathGeoJSONHandler(t *testing.T) {
	h := newTestRouter(&fakeRoutingService{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/computeRoutes/geojson"+validQuery, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))

	fc, err := geojson.UnmarshalFeatureCollection(rec.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 3)
	assert.True(t, fc.Features[0].Geometry.IsLineString())
}

func TestTrafficStatusHandler(t *testing.T) {
	h := newTestRouter(&fakeRoutingService{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/trafficStatus", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data scheduler.Status `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, uint64(3), body.Data.Generation)
	assert.Equal(t, "idle", body.Data.State)
}

func TestCongestionsHandler(t *testing.T) {
	h := newTestRouter(&fakeRoutingService{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/congestions", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))

	fc, err := geojson.UnmarshalFeatureCollection(rec.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.True(t, fc.Features[0].Geometry.IsLineString())
	assert.Equal(t, "A-B", fc.Features[0].Properties["description"])
	assert.Equal(t, 3.0, fc.Features[0].Properties["level"])
}
