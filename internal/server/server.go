package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ramp/cost-calculator/internal/calculation"
	"github.com/ramp/cost-calculator/internal/config"
	rlog "github.com/ramp/cost-calculator/pkg/log"
	"github.com/ramp/cost-calculator/pkg/metrics"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
	serviceName             = "rampcalc"
)

// Server is the HTTP presentation layer over the calculation engine.
type Server struct {
	cfg      *config.ServerConfig
	engine   *calculation.CalculationEngine
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *metrics.CalculationMetrics
	validate *requestValidator
	router   chi.Router
}

// New builds the router. cfg is required; a nil engine or logger gets a default.
func New(cfg *config.ServerConfig, engine *calculation.CalculationEngine, logger *zap.Logger) *Server {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:      cfg,
		engine:   engine,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		metrics:  metrics.NewCalculationMetrics(),
		validate: newRequestValidator(),
	}

	metricMiddleware := metrics.NewMiddleware(serviceName)
	s.registry.MustRegister(metricMiddleware.Collectors()...)
	s.registry.MustRegister(s.metrics.Collectors()...)

	router := chi.NewRouter()
	router.Use(
		chiMiddleware.RequestID,
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			MaxAge:         300,
		}),
		rlog.Logger(logger, "http"),
		chiMiddleware.Recoverer,
	)

	router.Get("/healthz", s.handleHealth)
	router.Get("/", s.handleCalculatorPage)
	router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/fee-schedule", s.handleFeeSchedule)
		r.Post("/calculate", s.handleCalculate)
		r.Post("/compare", s.handleCompare)
		r.Post("/report/{format}", s.handleReport)
		r.Post("/sensitivity", s.handleSensitivity)
		r.Get("/spending", s.handleSpending)
	})
	s.router = router
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on cfg.Address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Address, err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		s.logger.Sugar().Named("server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		s.logger.Sugar().Named("server").Info("server terminated")
	}()

	s.logger.Sugar().Named("server").Infof("listening on %s", listener.Addr())
	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
