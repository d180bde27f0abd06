// Package shareserver serves published pathways over HTTP so shared links
// can be opened by anyone.
package shareserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/abhisek/skillnav/internal/share"
	"github.com/abhisek/skillnav/internal/store"
)

// Config holds share server settings.
type Config struct {
	Listen         string
	AllowedOrigins []string
	// RatePerMinute and Burst bound requests per client IP. A zero
	// RatePerMinute disables limiting.
	RatePerMinute int
	Burst         int
	ShutdownGrace time.Duration
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Listen:         ":8080",
		AllowedOrigins: []string{"*"},
		RatePerMinute:  120,
		Burst:          20,
		ShutdownGrace:  5 * time.Second,
	}
}

// Server is the share HTTP server.
type Server struct {
	cfg      Config
	pathways *share.StoreResolver
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *metrics
	handler  http.Handler
}

// New builds a server over repo. Each server owns its own metrics
// registry.
func New(cfg Config, repo store.SharedPathwayRepo, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:      cfg,
		pathways: share.NewStoreResolver(repo),
		logger:   logger.Named("share"),
		registry: prometheus.NewRegistry(),
	}
	s.metrics = newMetrics(s.registry)

	router := gin.New()
	router.Use(gin.Recovery(), s.accessLog(), s.metrics.middleware())
	if cfg.RatePerMinute > 0 {
		router.Use(newIPLimiter(cfg.RatePerMinute, cfg.Burst).middleware())
	}
	s.registerRoutes(router)

	s.handler = cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", "Accept"},
	}).Handler(router)
	return s
}

func (s *Server) registerRoutes(router *gin.Engine) {
	router.GET("/healthz", s.health)
	router.GET("/metrics", s.metrics.handler(s.registry))

	api := router.Group(share.APIPrefix)
	api.GET("/:id", s.getPathway)
	api.POST("", s.publishPathway)
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured address until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Listen, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("share server listening", zap.String("addr", ln.Addr().String()))
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down share server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
