package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/lintang-b-s/igo/pkg/costfunction"
	"github.com/lintang-b-s/igo/pkg/engine"
	"github.com/lintang-b-s/igo/pkg/logger"
	"github.com/lintang-b-s/igo/pkg/osmparser"
	"github.com/lintang-b-s/igo/pkg/storage"
	"github.com/lintang-b-s/igo/pkg/util"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var preprocessCmd = &cobra.Command{
	Use:   "preprocess",
	Short: "Parse the osm extract of the place and store its road network in the network cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		return preprocess(cmd.Context())
	},
}

type readCloser struct {
	io.Reader
	io.Closer
}

// openWithProgress. the extract is read twice by the parser, every pass gets its own bar.
func openWithProgress(path string, pass *int) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "open osm extract %s", path)
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, err
		}
		*pass++
		bar := progressbar.DefaultBytes(info.Size(), fmt.Sprintf("reading osm extract, pass %d", *pass))
		return readCloser{Reader: io.TeeReader(f, bar), Closer: f}, nil
	}
}

func preprocess(ctx context.Context) error {
	log, err := logger.New()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck // ignore

	cfg, err := util.LoadConfig()
	if err != nil {
		return err
	}

	pass := 0
	p := osmparser.NewOsmParser(costfunction.NewTimeCostFunction(), log)
	network, err := p.Parse(osmparser.PbfReader(ctx, openWithProgress(cfg.Network.OsmFile, &pass)))
	if err != nil {
		return err
	}

	blobs, err := engine.NewBlobStore(ctx, cfg)
	if err != nil {
		return err
	}
	key := storage.CacheKey(cfg.Network.Place)
	if err := storage.NewNetworkStore(blobs, nil, log).Save(ctx, network, key); err != nil {
		return err
	}

	log.Info("road network stored", zap.String("place", cfg.Network.Place), zap.String("key", key),
		zap.Int("vertices", network.NumberOfVertices()), zap.Int("edges", network.NumberOfEdges()))
	return nil
}
