package usecases

import (
	"testing"

	"github.com/lintang-b-s/igo/pkg"
	da "github.com/lintang-b-s/igo/pkg/datastructure"
	"github.com/lintang-b-s/igo/pkg/engine/routing"
	"github.com/lintang-b-s/igo/pkg/scheduler"
	"github.com/lintang-b-s/igo/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeEngine struct {
	segments []da.CongestionSegment
	err      error
}

func (f *fakeEngine) ShortestRoute(origin, destination da.Coordinate) (*da.Route, *da.WeightedGraph, error) {
	return nil, nil, f.err
}

func (f *fakeEngine) Congestions() []da.CongestionSegment {
	return f.segments
}

func (f *fakeEngine) Status() scheduler.Status {
	return scheduler.Status{State: "idle"}
}

func TestCongestionsGeoJSON(t *testing.T) {
	segments := []da.CongestionSegment{
		da.NewCongestionSegment(7, "Gran Via", []da.Coordinate{
			da.NewCoordinate(41.3800, 2.1700),
			da.NewCoordinate(41.3800, 2.1712),
		}, pkg.DENSE),
		da.NewCongestionSegment(9, "Diagonal", []da.Coordinate{
			da.NewCoordinate(41.3900, 2.1500),
			da.NewCoordinate(41.3910, 2.1520),
			da.NewCoordinate(41.3920, 2.1540),
		}, pkg.CLOSED),
	}

	rs := NewRoutingService(zap.NewNop(), &fakeEngine{segments: segments})
	fc := rs.CongestionsGeoJSON()
	require.Len(t, fc.Features, 2)

	first := fc.Features[0]
	assert.True(t, first.Geometry.IsLineString())
	assert.Equal(t, [][]float64{{2.1700, 41.3800}, {2.1712, 41.3800}}, first.Geometry.LineString)
	assert.Equal(t, int64(7), first.ID)
	assert.Equal(t, "Gran Via", first.Properties["description"])
	assert.Equal(t, int(pkg.DENSE), first.Properties["level"])
	assert.Equal(t, "dense", first.Properties["state"])

	second := fc.Features[1]
	assert.Len(t, second.Geometry.LineString, 3)
	assert.Equal(t, "closed", second.Properties["state"])

	empty := NewRoutingService(zap.NewNop(), &fakeEngine{}).CongestionsGeoJSON()
	assert.Empty(t, empty.Features)
}

func TestShortestPathErrorCodes(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		wantCode error
	}{
		{name: "no route", err: routing.ErrNoRouteFound, wantCode: util.ErrNotFound},
		{name: "unreachable", err: routing.ErrUnreachableLocation, wantCode: util.ErrUnprocessable},
		{name: "not initialized", err: scheduler.ErrNotInitialized, wantCode: util.ErrInternalServerError},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			rs := NewRoutingService(zap.NewNop(), &fakeEngine{err: tt.err})
			_, err := rs.ShortestPath(41.38, 2.17, 41.39, 2.18)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)

			var wrapped *util.Error
			require.ErrorAs(t, err, &wrapped)
			assert.Equal(t, tt.wantCode, wrapped.Code())
		})
	}
}
