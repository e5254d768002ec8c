package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/graphcut/pkg/http"
	"github.com/lintang-b-s/graphcut/pkg/http/usecases"
	"github.com/lintang-b-s/graphcut/pkg/logger"
	"github.com/lintang-b-s/graphcut/pkg/metrics"
	"github.com/lintang-b-s/graphcut/pkg/util"
	"go.uber.org/zap"
)

var (
	useRateLimit = flag.Bool("rate_limit", false, "limit requests per second (RATE_LIMIT_RPS, RATE_LIMIT_BURST)")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	config := http.Config()
	met := metrics.NewMetric()
	segmentationService := usecases.NewSegmentationService(logger, met, config.MaxNodes, config.BatchWorkers)

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}

	api := http.NewServer(logger)
	api.Use(ctx, logger, config, *useRateLimit, segmentationService, met)

	signal := http.GracefulShutdown()

	logger.Info("graphcut segmentation server stopping", zap.String("signal", signal.String()))
	cleanup()
	if err := api.Wait(); err != nil && err != context.Canceled {
		logger.Error("server stopped with error", zap.Error(err))
	}
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
