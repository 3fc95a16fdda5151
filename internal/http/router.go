package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/geocoder89/inscricoes/internal/config"
	"github.com/geocoder89/inscricoes/internal/http/handlers"
	"github.com/geocoder89/inscricoes/internal/http/middlewares"
	"github.com/geocoder89/inscricoes/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "inscricoes-api"

// Deps are the collaborators the router wires into handlers. Ping and Prom
// are optional.
type Deps struct {
	Log      *slog.Logger
	Service  handlers.RegistrationService
	Ping     func(ctx context.Context) error
	Prom     *observability.Prom
	Gatherer prometheus.Gatherer
}

func NewRouter(cfg config.Config, deps Deps) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(deps.Log))
	r.Use(middlewares.SecurityHeaders())
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))

	r.NoRoute(func(ctx *gin.Context) {
		handlers.RespondError(ctx, http.StatusNotFound, "Recurso não encontrado")
	})

	// health
	h := handlers.NewHealthHandler(deps.Ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	r.GET("/docs", handlers.DocsUI)
	r.GET("/docs/openapi.yaml", handlers.OpenAPISpec)

	// registrations
	registrationHandler := handlers.NewRegistrationHandler(deps.Service)

	r.POST("/inscricoes", middlewares.RequireJSON(handlers.MsgMalformedBody), registrationHandler.Create)
	r.OPTIONS("/inscricoes", registrationHandler.Preflight)
	r.GET("/lista", registrationHandler.List)

	return r
}
