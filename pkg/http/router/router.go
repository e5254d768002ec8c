package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	_ "github.com/lintang-b-s/graphcut/docs"
	"github.com/lintang-b-s/graphcut/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/graphcut/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/graphcut/pkg/http/server"
	"github.com/lintang-b-s/graphcut/pkg/logger"
	"github.com/lintang-b-s/graphcut/pkg/metrics"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "net/http/pprof"
)

type API struct {
	log *zap.Logger
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: logger.OrNop(log)}
}

// Handler builds the router and the middleware chain in front of it.
//
//	@title			graphcut API
//	@version		1.0
//	@description	binary labeling by s-t min-cut (Boykov-Kolmogorov max-flow).
//
//	@license.name	BSD License
//	@license.url	https://opensource.org/license/bsd-2-clause
//
//	@host		localhost
//	@BasePath	/api
func (api *API) Handler(
	config http_server.Config,
	useRateLimit bool,
	segmentationService controllers.SegmentationService,
	met *metrics.Metric,
) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	router.GET("/doc/*any", swaggerHandler)

	router.Handler(http.MethodGet, "/debug/pprof/*item", http.DefaultServeMux)
	router.Handler(http.MethodGet, "/metrics", met.Handler())

	group := router_helper.NewRouteGroup(router, "/api")

	segmentationRoutes := controllers.New(segmentationService, api.log, config.Timeout)
	segmentationRoutes.Routes(group)

	mwChain := []alice.Constructor{corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Logger(api.log), Metrics(met)}
	if useRateLimit {
		mwChain = append(mwChain, Limit(config.RateLimitRPS, config.RateLimitBurst))
	}
	return alice.New(mwChain...).Then(router)
}

func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	log *zap.Logger,

	useRateLimit bool,
	segmentationService controllers.SegmentationService,
	met *metrics.Metric,
) error {
	log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(config, useRateLimit, segmentationService, met), config)
	log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		log.Info("HTTP server stopped", zap.Error(err))
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		log.Info("Context canceled, shutting down server")
		_ = srv.Shutdown(context.Background())
		return ctx.Err()
	}
}

func swaggerHandler(res http.ResponseWriter, req *http.Request, p httprouter.Params) {
	httpSwagger.WrapHandler(res, req)
}
