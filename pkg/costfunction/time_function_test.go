package costfunction

import (
	"testing"

	"github.com/lintang-b-s/igo/pkg"
	"github.com/stretchr/testify/assert"
)

func TestBaseTravelTime(t *testing.T) {
	tf := NewTimeCostFunction()

	testCases := []struct {
		name     string
		length   float64
		speedKmh float64
		want     float64
	}{
		{
			name:   "short edge 10 km/h",
			length: 100,
			want:   36,
		},
		{
			name:   "500 m falls in the 30 km/h bucket",
			length: 500,
			want:   60,
		},
		{
			name:   "999 m still 30 km/h",
			length: 999,
			want:   119.88,
		},
		{
			name:   "long edge 50 km/h",
			length: 1000,
			want:   72,
		},
		{
			name:     "speed limit overrides bucket",
			length:   1000,
			speedKmh: 100,
			want:     36,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tf.BaseTravelTime(tt.length, tt.speedKmh), 1e-9)
		})
	}
}

func TestCongestionFactor(t *testing.T) {
	tf := NewTimeCostFunction()

	prev := 0.0
	for level := pkg.NO_DATA; level <= pkg.MAX_CONGESTION_LEVEL; level++ {
		f := tf.CongestionFactor(level)
		assert.Greater(t, f, prev, "factor of %s must increase", level)
		prev = f
	}

	assert.Equal(t, 1.0, tf.CongestionFactor(pkg.NO_DATA))
	assert.Equal(t, 2.0, tf.CongestionFactor(pkg.DENSE))
	assert.Equal(t, pkg.INF_WEIGHT, tf.CongestionFactor(pkg.CLOSED))
	assert.Equal(t, 1.0, tf.CongestionFactor(pkg.CongestionLevel(42)))
}

func TestParseMaxSpeed(t *testing.T) {
	testCases := []struct {
		tag    string
		want   float64
		wantOk bool
	}{
		{tag: "50", want: 50, wantOk: true},
		{tag: "50 km/h", want: 50, wantOk: true},
		{tag: "30 mph", want: 30 * 1.60934, wantOk: true},
		{tag: "10 knots", want: 18.52, wantOk: true},
		{tag: "walk", wantOk: false},
		{tag: "", wantOk: false},
		{tag: "-5", wantOk: false},
	}

	for _, tt := range testCases {
		t.Run(tt.tag, func(t *testing.T) {
			got, ok := ParseMaxSpeed(tt.tag)
			assert.Equal(t, tt.wantOk, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
