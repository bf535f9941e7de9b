package storage

import (
	"bufio"
	"bytes"
	"context"
	"errors"

	da "github.com/lintang-b-s/igo/pkg/datastructure"
	"github.com/lintang-b-s/igo/pkg/util"
	"go.uber.org/zap"
)

// NetworkSource builds the road network of a place from scratch (e.g. by parsing its osm extract).
type NetworkSource func(ctx context.Context, place string) (*da.RoadNetwork, error)

// NetworkStore. cache-first loader of base road networks. the cache is advisory: a missing or
// unreadable blob falls back to the source, a failing save is only logged.
type NetworkStore struct {
	blobs  BlobStore
	source NetworkSource
	logger *zap.Logger
}

func NewNetworkStore(blobs BlobStore, source NetworkSource, logger *zap.Logger) *NetworkStore {
	return &NetworkStore{
		blobs:  blobs,
		source: source,
		logger: logger,
	}
}

// CacheKey. "Barcelona, Catalonia" -> "barcelona-catalonia.network.bz2"
func CacheKey(place string) string {
	return util.Slugify(place) + ".network.bz2"
}

func (ns *NetworkStore) Load(ctx context.Context, place string) (*da.RoadNetwork, error) {
	key := CacheKey(place)

	network, err := ns.LoadCached(ctx, key)
	if err == nil {
		ns.logger.Info("loaded road network from cache", zap.String("place", place), zap.String("key", key),
			zap.Int("vertices", network.NumberOfVertices()), zap.Int("edges", network.NumberOfEdges()))
		return network, nil
	}
	if errors.Is(err, ErrBlobNotFound) {
		ns.logger.Info("road network cache miss", zap.String("place", place), zap.String("key", key))
	} else {
		ns.logger.Warn("unreadable road network cache, rebuilding", zap.String("key", key), zap.Error(err))
	}

	network, err = ns.source(ctx, place)
	if err != nil {
		return nil, err
	}

	if err := ns.Save(ctx, network, key); err != nil {
		ns.logger.Warn("failed to save road network cache", zap.String("key", key), zap.Error(err))
	}
	return network, nil
}

func (ns *NetworkStore) Save(ctx context.Context, network *da.RoadNetwork, key string) error {
	var buf bytes.Buffer
	if err := da.WriteNetwork(&buf, network); err != nil {
		return err
	}
	return ns.blobs.Put(ctx, key, bytes.NewReader(buf.Bytes()))
}

func (ns *NetworkStore) LoadCached(ctx context.Context, key string) (*da.RoadNetwork, error) {
	rc, err := ns.blobs.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return da.ReadNetwork(bufio.NewReader(rc))
}
