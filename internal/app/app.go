package app

import (
	"context"
	"fmt"
	"time"

	"github.com/newthinker/natal/internal/api"
	"github.com/newthinker/natal/internal/chart"
	"github.com/newthinker/natal/internal/config"
	"github.com/newthinker/natal/internal/core"
	"github.com/newthinker/natal/internal/ephemeris/factory"
	"github.com/newthinker/natal/internal/metrics"
	"go.uber.org/zap"
)

// App is the main application orchestrator
type App struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Registry
	charts  *chart.Service
}

// New wires the configured ephemeris provider, metrics and chart service.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = config.Defaults()
	}

	provider, err := factory.New(cfg.Ephemeris)
	if err != nil {
		return nil, fmt.Errorf("creating ephemeris provider: %w", err)
	}

	a := &App{
		cfg:    cfg,
		logger: logger,
	}

	opts := []chart.Option{
		chart.WithCallTimeout(cfg.Ephemeris.CallTimeout),
		chart.WithSiderealHouses(cfg.Ephemeris.SiderealHouses),
		chart.WithLogger(logger.Named("chart")),
	}
	if cfg.Metrics.Enabled {
		a.metrics = metrics.NewRegistry()
		opts = append(opts, chart.WithRecorder(a.metrics))
	}
	a.charts = chart.NewService(provider, opts...)

	logger.Info("ephemeris provider ready",
		zap.String("provider", provider.Name()),
		zap.Duration("call_timeout", cfg.Ephemeris.CallTimeout),
		zap.Bool("sidereal_houses", cfg.Ephemeris.SiderealHouses),
	)

	return a, nil
}

// Calculate computes a single chart.
func (a *App) Calculate(ctx context.Context, req chart.Request) (*core.Chart, error) {
	return a.charts.Calculate(ctx, req)
}

// Charts returns the chart service.
func (a *App) Charts() *chart.Service {
	return a.charts
}

// Metrics returns the metrics registry, nil when metrics are disabled.
func (a *App) Metrics() *metrics.Registry {
	return a.metrics
}

// NewServer builds the HTTP server for the configured address.
func (a *App) NewServer() (*api.Server, error) {
	srvCfg := api.Config{
		Host:         a.cfg.Server.Host,
		Port:         a.cfg.Server.Port,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}
	if a.metrics != nil {
		srvCfg.MetricsPath = a.cfg.Metrics.Path
	}

	return api.NewServer(srvCfg, api.Dependencies{
		Charts:  a.charts,
		Metrics: a.metrics,
	}, a.logger)
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// within the configured shutdown timeout.
func (a *App) Serve(ctx context.Context) error {
	server, err := a.NewServer()
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := a.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return <-errCh
}
