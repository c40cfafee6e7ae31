// Package server wires configuration, providers, storage, reconciliation,
// and the HTTP surface into a runnable service.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"

	"homerun-fantasy/internal/config"
	httpapi "homerun-fantasy/internal/http"
	"homerun-fantasy/internal/logging"
	"homerun-fantasy/internal/metrics"
	"homerun-fantasy/internal/providers"
	"homerun-fantasy/internal/reconcile"
	"homerun-fantasy/internal/store"
	"homerun-fantasy/internal/teams"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         store.TeamStore
	storeClose    func() error
	teamsService  *teams.Service
	runner        *reconcile.Runner
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New constructs a server with default provider wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithProvider(cfg, logger, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.StatsProvider) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger)
	clock := clockwork.NewRealClock()

	if provider == nil {
		provider = newProviderFactory(logger, recorder, clock).build(cfg)
	}

	teamStore, storeClose := buildStore(cfg.Store, logger)
	teamSvc := teams.NewService(teamStore, provider, logger, clock, cfg.Season)
	reconciler := reconcile.New(provider, teamStore, logger, recorder, clock, cfg.Season)
	runner := reconcile.NewRunner(reconciler, logger, clock, cfg.ReconcileInterval)

	httpSrv := buildHTTPServer(cfg, teamStore, teamSvc, provider, reconciler, runner, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         teamStore,
		storeClose:    storeClose,
		teamsService:  teamSvc,
		runner:        runner,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}
}

func buildHTTPServer(cfg config.Config, teamStore store.TeamStore, teamSvc *teams.Service, provider providers.StatsProvider, reconciler *reconcile.Reconciler, runner *reconcile.Runner, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	var statusFn func() reconcile.Status
	if runner != nil {
		statusFn = runner.Status
	}

	handler := httpapi.NewHandler(teamSvc, teamStore, provider, cfg.Tiers, logger, statusFn, cfg.Season)
	admin := httpapi.NewAdminHandler(runner, reconciler, teamStore, cfg.AdminToken, logger)
	router := httpapi.NewRouter(handler, admin)

	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := httpapi.LoggingMiddleware(logger, recorder, router)
	// The draft and leaderboard pages are a separate browser app.
	wrapped = cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}).Handler(wrapped)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	return netHTTPServer{srv: srv}
}

// Run starts the reconcile loop and HTTP server, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.runner.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if err := s.runner.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop reconcile runner", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.storeClose != nil {
		if err := s.storeClose(); err != nil {
			logging.Warn(s.logger, "store close failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}
	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
