// Package server exposes probes, Prometheus metrics and a small admin API
// for inspecting and reloading the bonus tables.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/GatherBonus_Go/internal/bonus"
	"github.com/osse101/GatherBonus_Go/internal/logger"
	"github.com/osse101/GatherBonus_Go/internal/metrics"
)

// Server is the admin HTTP server
type Server struct {
	httpServer *http.Server
}

// NewRouter builds the admin routes. An empty apiKey leaves /admin open.
func NewRouter(apiKey, version string, registry *bonus.Registry, reloader Reloader) http.Handler {
	r := chi.NewRouter()

	r.Use(SecurityHeadersMiddleware())
	if apiKey != "" {
		r.Use(AuthMiddleware(apiKey))
	}
	r.Use(RequestSizeLimitMiddleware(MaxRequestBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", HandleHealthz())
	r.Get("/readyz", HandleReadyz(registry))
	r.Get("/version", HandleVersion(version))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/admin", func(r chi.Router) {
		r.Get("/rules", HandleGetRules(registry))
		r.Get("/rules/{resource}", HandleGetRule(registry))
		r.Post("/reload", HandleReload(reloader))
	})

	return r
}

// NewServer creates a Server listening on port
func NewServer(port int, apiKey, version string, registry *bonus.Registry, reloader Reloader) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(apiKey, version, registry, reloader),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// Start blocks serving requests until Stop is called
func (s *Server) Start() error {
	logger.Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
