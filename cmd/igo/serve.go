package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lintang-b-s/igo/pkg/engine"
	"github.com/lintang-b-s/igo/pkg/http"
	"github.com/lintang-b-s/igo/pkg/http/usecases"
	"github.com/lintang-b-s/igo/pkg/logger"
	"github.com/lintang-b-s/igo/pkg/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the road network, start the congestion refresh loop and the routing api",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().Bool("rate-limit", false, "enable the per server request rate limiter")
	serveCmd.Flags().Int("port", 6060, "api port")

	cobra.CheckErr(viper.BindPFlag("RATE_LIMIT", serveCmd.Flags().Lookup("rate-limit")))
	cobra.CheckErr(viper.BindPFlag("API_PORT", serveCmd.Flags().Lookup("port")))
}

func serve(parent context.Context) error {
	log, err := logger.New()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck // ignore

	cfg, err := util.LoadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	routingEngine, err := engine.NewEngine(ctx, cfg, log)
	if err != nil {
		return err
	}
	go routingEngine.Run(ctx)

	routingService := usecases.NewRoutingService(log, routingEngine)

	api, err := http.NewServer(log).Use(ctx, log, viper.GetBool("RATE_LIMIT"), routingService)
	if err != nil {
		return err
	}
	err = api.Wait()

	log.Info("igo routing engine server stopped", zap.Error(err))
	if ctx.Err() != nil {
		return nil
	}
	return err
}
