package costfunction

import (
	"github.com/lintang-b-s/igo/pkg"
)

type CostFunction interface {
	// BaseTravelTime. free-flow seconds for an edge of length meters. speedKmh <= 0 means no speed limit is known.
	BaseTravelTime(length, speedKmh float64) float64
	// CongestionFactor. multiplier applied to weighted time for a congestion level
	CongestionFactor(level pkg.CongestionLevel) float64
}
