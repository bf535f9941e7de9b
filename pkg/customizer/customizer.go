package customizer

import (
	"time"

	"github.com/lintang-b-s/igo/pkg"
	"github.com/lintang-b-s/igo/pkg/concurrent"
	"github.com/lintang-b-s/igo/pkg/costfunction"
	da "github.com/lintang-b-s/igo/pkg/datastructure"
	"github.com/lintang-b-s/igo/pkg/engine/routing"
	"go.uber.org/zap"
)

// Snapper. unbounded nearest node lookup, implemented by *spatialindex.Rtree
type Snapper interface {
	Nearest(qLat, qLon float64) (da.Index, float64, bool)
}

type BuildStats struct {
	SegmentsApplied int           `json:"segments_applied"`
	SegmentsSkipped int           `json:"segments_skipped"`
	PairsSkipped    int           `json:"pairs_skipped"`
	EdgesTouched    int           `json:"edges_touched"`
	Duration        time.Duration `json:"duration"`
}

// Customizer. builds a congestion weighted graph from the base road network and one congestion snapshot.
// safe for concurrent use, every Customize call works on its own WeightedGraph.
type Customizer struct {
	costFunction costfunction.CostFunction
	snapper      Snapper
	snapWorkers  int
	logger       *zap.Logger
}

func NewCustomizer(cf costfunction.CostFunction, snapper Snapper, snapWorkers int, logger *zap.Logger) *Customizer {
	return &Customizer{
		costFunction: cf,
		snapper:      snapper,
		snapWorkers:  snapWorkers,
		logger:       logger,
	}
}

type snappedSegment struct {
	nodes []da.Index
}

// snapSegment. nearest node of every polyline point, consecutive duplicates removed.
func (c *Customizer) snapSegment(seg da.CongestionSegment) snappedSegment {
	nodes := make([]da.Index, 0, len(seg.Polyline))
	for _, p := range seg.Polyline {
		v, _, ok := c.snapper.Nearest(p.GetLat(), p.GetLon())
		if !ok {
			continue
		}
		if len(nodes) > 0 && nodes[len(nodes)-1] == v {
			continue
		}
		nodes = append(nodes, v)
	}
	return snappedSegment{nodes: nodes}
}

/*
Customize. maps every congestion segment onto the road network and multiplies the weighted time of the
edges it covers by the congestion factor of the segment level.

segments are applied in input order: consecutive snapped polyline nodes (n_i, n_i+1) are connected by the
minimum weighted time path of the graph being built, so factors of earlier segments are already visible.
a pair without path is retried in reverse (n_i+1, n_i), then skipped.

overlapping segments compound multiplicatively, every weight is capped at pkg.INF_WEIGHT.
the network itself is never modified.
*/
func (c *Customizer) Customize(network *da.RoadNetwork, segments []da.CongestionSegment) (*da.WeightedGraph, BuildStats) {
	start := time.Now()
	graph := da.NewWeightedGraph(network)
	stats := BuildStats{}

	// snapping is read-only, run it for all segments concurrently. results keep input order.
	snapped := concurrent.Map(c.snapWorkers, segments, c.snapSegment)

	touched := make(map[da.Index]struct{})
	for i, seg := range segments {
		factor := c.costFunction.CongestionFactor(seg.Level)
		if seg.Level == pkg.NO_DATA || factor == 1 {
			stats.SegmentsSkipped++
			continue
		}

		nodes := snapped[i].nodes
		if len(nodes) < 2 {
			c.logger.Debug("congestion segment snaps to a single node", zap.Int64("segment", seg.ID))
			stats.SegmentsSkipped++
			continue
		}

		for k := 0; k+1 < len(nodes); k++ {
			edges, ok := c.subPath(graph, nodes[k], nodes[k+1])
			if !ok {
				c.logger.Debug("no path between snapped segment nodes, skipping pair",
					zap.Int64("segment", seg.ID),
					zap.Int64("from", network.GetVertex(nodes[k]).GetOsmID()),
					zap.Int64("to", network.GetVertex(nodes[k+1]).GetOsmID()))
				stats.PairsSkipped++
				continue
			}
			for _, e := range edges {
				graph.MultiplyWeight(e, factor)
				touched[e] = struct{}{}
			}
		}
		stats.SegmentsApplied++
	}

	stats.EdgesTouched = len(touched)
	stats.Duration = time.Since(start)
	graph.SetBuiltAt(time.Now())

	c.logger.Info("weighted graph built",
		zap.Int("segments_applied", stats.SegmentsApplied),
		zap.Int("segments_skipped", stats.SegmentsSkipped),
		zap.Int("pairs_skipped", stats.PairsSkipped),
		zap.Int("edges_touched", stats.EdgesTouched),
		zap.Duration("duration", stats.Duration))
	return graph, stats
}

// subPath. edges of the minimum weighted time path u -> v, or v -> u when u cannot reach v.
func (c *Customizer) subPath(graph *da.WeightedGraph, u, v da.Index) ([]da.Index, bool) {
	dijkstra := routing.NewDijkstra(graph)
	if res := dijkstra.ShortestPath(u, v); res.Found {
		return res.Edges, true
	}
	if res := dijkstra.ShortestPath(v, u); res.Found {
		return res.Edges, true
	}
	return nil, false
}
