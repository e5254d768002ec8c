package http

import (
	"context"

	"github.com/lintang-b-s/graphcut/pkg"
	http_router "github.com/lintang-b-s/graphcut/pkg/http/router"
	"github.com/lintang-b-s/graphcut/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/graphcut/pkg/http/server"
	"github.com/lintang-b-s/graphcut/pkg/metrics"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
	g   errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Config reads the http settings from viper, with defaults.
func Config() http_server.Config {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "60s")
	viper.SetDefault("RATE_LIMIT_RPS", 20)
	viper.SetDefault("RATE_LIMIT_BURST", 40)
	viper.SetDefault("MAX_NODES", pkg.DEFAULT_MAX_NODES)
	viper.SetDefault("BATCH_WORKERS", pkg.DEFAULT_BATCH_WORKERS)

	return http_server.Config{
		Port:           viper.GetInt("API_PORT"),
		Timeout:        viper.GetDuration("API_TIMEOUT"),
		RateLimitRPS:   viper.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: viper.GetInt("RATE_LIMIT_BURST"),
		MaxNodes:       viper.GetInt("MAX_NODES"),
		BatchWorkers:   viper.GetInt("BATCH_WORKERS"),
	}
}

// Use starts the api in the background; Wait returns its error once it stops.
func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,
	config http_server.Config,

	useRateLimit bool,
	segmentationService controllers.SegmentationService,
	met *metrics.Metric,
) (*Server, error) {
	server := http_router.NewAPI(log)

	s.g.Go(func() error {
		return server.Run(
			ctx, config, log,
			useRateLimit, segmentationService, met,
		)
	})

	return s, nil
}

func (s *Server) Wait() error {
	return s.g.Wait()
}
