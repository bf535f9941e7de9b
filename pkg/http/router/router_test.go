package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lintang-b-s/igo/pkg/http/usecases"
	"github.com/lintang-b-s/igo/pkg/scheduler"
	geojson "github.com/paulmach/go.geojson"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type panickingService struct{}

func (panickingService) ShortestPath(origLat, origLon, dstLat, dstLon float64) (*usecases.RouteResult, error) {
	panic("boom")
}

func (panickingService) ShortestPathGeoJSON(origLat, origLon, dstLat, dstLon float64) (*geojson.FeatureCollection, error) {
	panic("boom")
}

func (panickingService) CongestionsGeoJSON() *geojson.FeatureCollection {
	return geojson.NewFeatureCollection()
}

func (panickingService) TrafficStatus() scheduler.Status {
	return scheduler.Status{Generation: 7}
}

const routeQuery = "/api/computeRoutes?origin_lat=41.38&origin_lon=2.17&destination_lat=41.39&destination_lon=2.18"

func TestHandler(t *testing.T) {
	h := NewAPI(zap.NewNop()).Handler(false, panickingService{})

	testCases := []struct {
		name       string
		method     string
		target     string
		header     map[string]string
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "heartbeat",
			method:     http.MethodGet,
			target:     "/healthz",
			wantStatus: http.StatusOK,
			wantBody:   ".",
		},
		{
			name:       "traffic status",
			method:     http.MethodGet,
			target:     "/api/trafficStatus",
			wantStatus: http.StatusOK,
			wantBody:   `"generation":7`,
		},
		{
			name:       "panic is recovered",
			method:     http.MethodGet,
			target:     routeQuery,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `"internal_error"`,
		},
		{
			name:       "non json body rejected",
			method:     http.MethodPost,
			target:     "/api/trafficStatus",
			header:     map[string]string{"Content-Type": "text/plain"},
			body:       "hello",
			wantStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			target:     "/api/nope",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestLimit(t *testing.T) {
	viper.Set("rate_limit_rps", 1)
	t.Cleanup(func() { viper.Set("rate_limit_rps", 50) })

	h := NewAPI(zap.NewNop()).Handler(true, panickingService{})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/trafficStatus", nil))
		codes = append(codes, rec.Code)
	}
	require.Len(t, codes, 3)
	// burst of 2
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRealIP(t *testing.T) {
	var got string
	h := RealIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = clientIP(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "10.0.0.1", got)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.4:5555"
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "192.168.1.4", got)
}
