package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lintang-b-s/igo/pkg/congestion"
	"github.com/lintang-b-s/igo/pkg/customizer"
	da "github.com/lintang-b-s/igo/pkg/datastructure"
	"go.uber.org/zap"
)

type State int32

const (
	IDLE State = iota
	BUILDING
	PUBLISHED
)

func (s State) String() string {
	switch s {
	case IDLE:
		return "idle"
	case BUILDING:
		return "building"
	case PUBLISHED:
		return "published"
	default:
		return "unknown"
	}
}

var ErrNotInitialized = errors.New("scheduler has not published a weighted graph yet")

// Fetcher. implemented by *congestion.Adapter
type Fetcher interface {
	Fetch(ctx context.Context) ([]da.CongestionSegment, congestion.FetchStats, error)
}

// Builder. implemented by *customizer.Customizer
type Builder interface {
	Customize(network *da.RoadNetwork, segments []da.CongestionSegment) (*da.WeightedGraph, customizer.BuildStats)
}

type Status struct {
	State       string                `json:"state"`
	Generation  uint64                `json:"generation"`
	BuiltAt     time.Time             `json:"built_at"`
	LastSuccess time.Time             `json:"last_success"`
	LastAttempt time.Time             `json:"last_attempt"`
	LastError   string                `json:"last_error,omitempty"`
	FetchStats  congestion.FetchStats `json:"fetch_stats"`
	BuildStats  customizer.BuildStats `json:"build_stats"`
}

// Scheduler. periodically rebuilds the weighted graph and publishes it with one atomic pointer swap.
// readers call Current and never block, a refresh never mutates a published graph.
type Scheduler struct {
	network  *da.RoadNetwork
	fetcher  Fetcher
	builder  Builder
	interval time.Duration
	logger   *zap.Logger

	current    atomic.Pointer[da.WeightedGraph]
	segments   atomic.Pointer[[]da.CongestionSegment] // joined feed the current graph was built from
	state      atomic.Int32
	buildMu    sync.Mutex
	generation uint64 // guarded by buildMu

	statusMu sync.Mutex
	status   Status
}

func NewScheduler(network *da.RoadNetwork, fetcher Fetcher, builder Builder, interval time.Duration,
	logger *zap.Logger) *Scheduler {
	return &Scheduler{
		network:  network,
		fetcher:  fetcher,
		builder:  builder,
		interval: interval,
		logger:   logger,
	}
}

// Init. first build, must return before any query. when the congestion feed is not available the free-flow
// graph (weights = base times) is published instead.
func (s *Scheduler) Init(ctx context.Context) {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	if err := s.refresh(ctx); err != nil {
		s.logger.Warn("initial congestion refresh failed, publishing free-flow graph", zap.Error(err))
		graph, stats := s.builder.Customize(s.network, nil)
		s.publish(graph, nil, congestion.FetchStats{}, stats)

		s.statusMu.Lock()
		s.status.LastError = err.Error()
		s.statusMu.Unlock()
	}
}

// Run. refresh loop, the timer is re-armed only after a cycle finished so builds never overlap.
// returns when ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	s.logger.Info("refresh scheduler started", zap.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("refresh scheduler stopped")
			return
		case <-timer.C:
			if err := s.RefreshOnce(ctx); err != nil {
				s.logger.Error("congestion refresh failed, keeping current weighted graph",
					zap.Uint64("generation", s.Generation()), zap.Error(err))
			}
			timer.Reset(s.interval)
		}
	}
}

// RefreshOnce. Idle -> Building -> Published -> Idle. on failure the current graph stays published.
func (s *Scheduler) RefreshOnce(ctx context.Context) error {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()
	return s.refresh(ctx)
}

func (s *Scheduler) refresh(ctx context.Context) error {
	s.state.Store(int32(BUILDING))
	defer s.state.Store(int32(IDLE))

	attempt := time.Now()
	s.statusMu.Lock()
	s.status.LastAttempt = attempt
	s.statusMu.Unlock()

	segments, fetchStats, err := s.fetcher.Fetch(ctx)
	if err != nil {
		s.statusMu.Lock()
		s.status.LastError = err.Error()
		s.status.FetchStats = fetchStats
		s.statusMu.Unlock()
		return err
	}

	graph, buildStats := s.builder.Customize(s.network, segments)
	s.publish(graph, segments, fetchStats, buildStats)
	return nil
}

func (s *Scheduler) publish(graph *da.WeightedGraph, segments []da.CongestionSegment,
	fetchStats congestion.FetchStats, buildStats customizer.BuildStats) {
	s.generation++
	graph.SetGeneration(s.generation)

	s.segments.Store(&segments)
	s.current.Store(graph)
	s.state.Store(int32(PUBLISHED))

	now := time.Now()
	s.statusMu.Lock()
	s.status.Generation = s.generation
	s.status.BuiltAt = graph.GetBuiltAt()
	s.status.LastSuccess = now
	s.status.LastError = ""
	s.status.FetchStats = fetchStats
	s.status.BuildStats = buildStats
	s.statusMu.Unlock()

	s.logger.Info("weighted graph published",
		zap.Uint64("generation", s.generation),
		zap.Int("segments", fetchStats.Joined),
		zap.Int("edges_touched", buildStats.EdgesTouched))
}

// Current. the published weighted graph, nil before Init.
func (s *Scheduler) Current() *da.WeightedGraph {
	return s.current.Load()
}

// Snapshot. like Current but returns ErrNotInitialized instead of nil.
func (s *Scheduler) Snapshot() (*da.WeightedGraph, error) {
	g := s.current.Load()
	if g == nil {
		return nil, ErrNotInitialized
	}
	return g, nil
}

// Congestions. congestion segments the current graph was built from, empty for a free-flow graph.
// the slice is shared, callers must not modify it.
func (s *Scheduler) Congestions() []da.CongestionSegment {
	if segments := s.segments.Load(); segments != nil {
		return *segments
	}
	return nil
}

func (s *Scheduler) Generation() uint64 {
	if g := s.current.Load(); g != nil {
		return g.GetGeneration()
	}
	return 0
}

func (s *Scheduler) State() State {
	return State(s.state.Load())
}

func (s *Scheduler) Status() Status {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	st := s.status
	st.State = s.State().String()
	return st
}
