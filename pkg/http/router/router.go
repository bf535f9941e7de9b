package router

import (
	"context"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/lintang-b-s/igo/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/igo/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/igo/pkg/http/server"
	"github.com/rs/cors"
	"go.uber.org/zap"

	_ "net/http/pprof"

	httpSwagger "github.com/swaggo/http-swagger"
)

type API struct {
	log *zap.Logger
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

// Handler. the full middleware chain around the api routes
func (api *API) Handler(useRateLimit bool, routingService controllers.RoutingService) http.Handler {
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

	group := router_helper.NewRouteGroup(router, "/api")
	controllers.New(routingService, api.log).Routes(group)

	mwChain := []alice.Constructor{corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Logger(api.log)}
	if useRateLimit {
		mwChain = append(mwChain, Limit)
	}
	return alice.New(mwChain...).Then(router)
}

//	@title			igo API
//	@version		1.0
//	@description	congestion aware routing engine for openstreetmap road networks.

//	@license.name	BSD License
//	@license.url	https://opensource.org/license/bsd-2-clause

// @host		localhost
// @BasePath	/api
func (api *API) Run(
	ctx context.Context,
	config http_server.Config,

	useRateLimit bool,
	routingService controllers.RoutingService,
) error {
	api.log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(useRateLimit, routingService), config)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		api.log.Info("HTTP server stopped", zap.Error(err))
		return err
	case <-ctx.Done():
		api.log.Info("Context canceled, shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func swaggerHandler(res http.ResponseWriter, req *http.Request, p httprouter.Params) {
	httpSwagger.WrapHandler(res, req)
}
