package congestion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/lintang-b-s/igo/pkg"
	da "github.com/lintang-b-s/igo/pkg/datastructure"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrFeedUnavailable = errors.New("congestion feed unavailable")
	ErrFeedMalformed   = errors.New("congestion feed malformed")
)

const segmentsCacheKey = "segments"

// FetchStats. what a single Fetch saw. unmatched rows are dropped, never an error.
type FetchStats struct {
	Segments             int  `json:"segments"`
	CongestionRows       int  `json:"congestion_rows"`
	Joined               int  `json:"joined"`
	UnmatchedSegments    int  `json:"unmatched_segments"`
	UnmatchedCongestions int  `json:"unmatched_congestions"`
	SegmentsFromCache    bool `json:"segments_from_cache"`
}

// Adapter. fetches the segment geometry & congestion level feeds and joins them by segment id.
type Adapter struct {
	segments    Source
	congestions Source
	timeout     time.Duration
	cache       *ttlcache.Cache[string, []rawSegment]
	logger      *zap.Logger
}

// NewAdapter. segmentsTTL <= 0 disables segment caching.
func NewAdapter(segments, congestions Source, timeout, segmentsTTL time.Duration, logger *zap.Logger) *Adapter {
	a := &Adapter{
		segments:    segments,
		congestions: congestions,
		timeout:     timeout,
		logger:      logger,
	}
	if segmentsTTL > 0 {
		a.cache = ttlcache.New[string, []rawSegment](
			ttlcache.WithTTL[string, []rawSegment](segmentsTTL),
			ttlcache.WithDisableTouchOnHit[string, []rawSegment](),
		)
	}
	return a
}

// Fetch returns the joined segments in segment feed order.
func (a *Adapter) Fetch(ctx context.Context) ([]da.CongestionSegment, FetchStats, error) {
	stats := FetchStats{}
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	var (
		segments []rawSegment
		levels   map[int64]pkg.CongestionLevel
	)

	if a.cache != nil {
		if item := a.cache.Get(segmentsCacheKey); item != nil {
			segments = item.Value()
			stats.SegmentsFromCache = true
		}
	}

	g, gCtx := errgroup.WithContext(ctx)
	if segments == nil {
		g.Go(func() error {
			var err error
			segments, err = a.fetchSegments(gCtx)
			return err
		})
	}
	g.Go(func() error {
		var err error
		levels, err = a.fetchCongestions(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, stats, err
	}

	if a.cache != nil && !stats.SegmentsFromCache {
		a.cache.Set(segmentsCacheKey, segments, ttlcache.DefaultTTL)
	}

	joined := join(segments, levels, &stats)
	a.logger.Debug("fetched congestion feeds",
		zap.Int("segments", stats.Segments),
		zap.Int("congestion_rows", stats.CongestionRows),
		zap.Int("joined", stats.Joined),
		zap.Int("unmatched_segments", stats.UnmatchedSegments),
		zap.Int("unmatched_congestions", stats.UnmatchedCongestions),
		zap.Bool("segments_from_cache", stats.SegmentsFromCache))
	return joined, stats, nil
}

func (a *Adapter) fetchSegments(ctx context.Context) ([]rawSegment, error) {
	rc, err := a.segments.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: segments %s: %w", ErrFeedUnavailable, a.segments, err)
	}
	defer rc.Close()

	return parseSegments(rc)
}

func (a *Adapter) fetchCongestions(ctx context.Context) (map[int64]pkg.CongestionLevel, error) {
	rc, err := a.congestions.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: congestions %s: %w", ErrFeedUnavailable, a.congestions, err)
	}
	defer rc.Close()

	return parseCongestions(rc)
}

func join(segments []rawSegment, levels map[int64]pkg.CongestionLevel, stats *FetchStats) []da.CongestionSegment {
	stats.Segments = len(segments)
	stats.CongestionRows = len(levels)

	joined := make([]da.CongestionSegment, 0, len(segments))
	matched := make(map[int64]struct{}, len(levels))
	for _, s := range segments {
		level, ok := levels[s.id]
		if !ok {
			stats.UnmatchedSegments++
			continue
		}
		matched[s.id] = struct{}{}
		joined = append(joined, da.NewCongestionSegment(s.id, s.description, s.polyline, level))
	}
	stats.Joined = len(joined)
	stats.UnmatchedCongestions = len(levels) - len(matched)
	return joined
}
