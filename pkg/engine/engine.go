package engine

import (
	"context"
	"time"

	"github.com/lintang-b-s/igo/pkg/congestion"
	"github.com/lintang-b-s/igo/pkg/costfunction"
	"github.com/lintang-b-s/igo/pkg/customizer"
	da "github.com/lintang-b-s/igo/pkg/datastructure"
	"github.com/lintang-b-s/igo/pkg/engine/routing"
	"github.com/lintang-b-s/igo/pkg/osmparser"
	"github.com/lintang-b-s/igo/pkg/scheduler"
	"github.com/lintang-b-s/igo/pkg/spatialindex"
	"github.com/lintang-b-s/igo/pkg/storage"
	"github.com/lintang-b-s/igo/pkg/util"
	"go.uber.org/zap"
)

// Engine. the running routing service: base network, spatial index, refresh scheduler and routing engine.
type Engine struct {
	network       *da.RoadNetwork
	spatialIndex  *spatialindex.Rtree
	scheduler     *scheduler.Scheduler
	routingEngine *routing.RoutingEngine
	logger        *zap.Logger
}

func (e *Engine) GetNetwork() *da.RoadNetwork {
	return e.network
}

// OsmNetworkSource. storage.NetworkSource parsing the configured osm extract, the place only names the cache entry.
func OsmNetworkSource(osmFile string, logger *zap.Logger) storage.NetworkSource {
	return func(ctx context.Context, place string) (*da.RoadNetwork, error) {
		logger.Info("building road network from openstreetmap extract", zap.String("place", place),
			zap.String("osm_file", osmFile))
		p := osmparser.NewOsmParser(costfunction.NewTimeCostFunction(), logger)
		return p.Parse(osmparser.PbfFile(ctx, osmFile))
	}
}

// NewBlobStore. network cache backend selected by cache.backend
func NewBlobStore(ctx context.Context, cfg util.Config) (storage.BlobStore, error) {
	if cfg.Cache.Backend == "s3" {
		return storage.NewS3BlobStore(ctx, cfg.Cache.S3Region, cfg.Cache.S3Bucket, "igo/")
	}
	return storage.NewFileBlobStore(cfg.Network.CacheDir), nil
}

// NewEngine. loads (or builds & caches) the base network of the configured place, publishes the first
// weighted graph and returns. the refresh loop is started with Run.
func NewEngine(ctx context.Context, cfg util.Config, logger *zap.Logger) (*Engine, error) {
	logger.Info("Starting igo routing engine...")

	blobs, err := NewBlobStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	store := storage.NewNetworkStore(blobs, OsmNetworkSource(cfg.Network.OsmFile, logger), logger)
	network, err := store.Load(ctx, cfg.Network.Place)
	if err != nil {
		return nil, err
	}

	adapter := congestion.NewAdapter(
		congestion.NewSource(cfg.Feed.SegmentsURL, cfg.Feed.Timeout),
		congestion.NewSource(cfg.Feed.CongestionsURL, cfg.Feed.Timeout),
		cfg.Feed.Timeout, cfg.Feed.SegmentsTTL, logger)

	return NewEngineFromNetwork(ctx, network, adapter, cfg, logger)
}

// NewEngineFromNetwork. like NewEngine for an already loaded network and any congestion fetcher.
func NewEngineFromNetwork(ctx context.Context, network *da.RoadNetwork, fetcher scheduler.Fetcher, cfg util.Config,
	logger *zap.Logger) (*Engine, error) {
	rt := spatialindex.NewRtree()
	rt.Build(network, logger)

	routingEngine, err := routing.NewRoutingEngine(rt, cfg.Routing.MaxSnapDistance, cfg.Routing.RouteCacheSize, logger)
	if err != nil {
		return nil, err
	}

	c := customizer.NewCustomizer(costfunction.NewTimeCostFunction(), rt, cfg.SnapWorkers, logger)
	s := scheduler.NewScheduler(network, fetcher, c, cfg.Refresh.Interval, logger)

	start := time.Now()
	s.Init(ctx)
	logger.Info("initial weighted graph ready", zap.Duration("took", time.Since(start)),
		zap.Uint64("generation", s.Generation()))

	return &Engine{
		network:       network,
		spatialIndex:  rt,
		scheduler:     s,
		routingEngine: routingEngine,
		logger:        logger,
	}, nil
}

// Run. blocks running the refresh loop until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) {
	e.scheduler.Run(ctx)
}

// ShortestRoute. route on the current weighted graph, the graph is returned so callers derive directions
// from the same snapshot the route was computed on.
func (e *Engine) ShortestRoute(origin, destination da.Coordinate) (*da.Route, *da.WeightedGraph, error) {
	graph, err := e.scheduler.Snapshot()
	if err != nil {
		return nil, nil, err
	}
	route, err := e.routingEngine.ShortestRoute(graph, origin, destination)
	if err != nil {
		return nil, nil, err
	}
	return route, graph, nil
}

func (e *Engine) Congestions() []da.CongestionSegment {
	return e.scheduler.Congestions()
}

func (e *Engine) Status() scheduler.Status {
	return e.scheduler.Status()
}
