package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/monkeydluthy/prophitline/internal/scan"
	"github.com/monkeydluthy/prophitline/internal/server"
	"github.com/monkeydluthy/prophitline/internal/server/handler"
	"github.com/monkeydluthy/prophitline/internal/server/ws"
)

// ScanMode runs the periodic detection loop without the HTTP API. Results
// still fan out to whatever cache, store, bus, and notifiers are wired.
func (a *App) ScanMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting scan mode",
		slog.Duration("interval", a.cfg.Scan.Interval.Duration),
	)

	err := deps.Scanner.Run(ctx)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// ServeMode runs the HTTP API only. Opportunity data comes from the shared
// cache and store, populated by scanner processes; POST /api/scan/trigger can still
// run an on-demand cycle.
func (a *App) ServeMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting serve mode", slog.Int("port", a.cfg.Server.Port))

	g, ctx := errgroup.WithContext(ctx)
	a.startHTTPServer(ctx, g, deps)
	return g.Wait()
}

// FullMode runs the scan loop and the HTTP API in one process.
func (a *App) FullMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting full mode",
		slog.Duration("interval", a.cfg.Scan.Interval.Duration),
		slog.Int("port", a.cfg.Server.Port),
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := deps.Scanner.Run(ctx)
		if ctx.Err() != nil {
			return nil
		}
		return err
	})

	if a.cfg.Server.Enabled {
		a.startHTTPServer(ctx, g, deps)
	}

	return g.Wait()
}

// OneOffMode runs a single detection cycle, writes the ranked opportunity
// list to stdout as JSON, and exits.
func (a *App) OneOffMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "running single scan")

	opps, err := deps.Scanner.Scan(ctx)
	if err != nil {
		return fmt.Errorf("one-off scan: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(opps); err != nil {
		return fmt.Errorf("one-off scan: encode result: %w", err)
	}

	a.logger.InfoContext(ctx, "scan complete", slog.Int("opportunities", len(opps)))
	return nil
}

// startHTTPServer adds the API server (and, when a signal bus is available,
// the WebSocket hub) to the given errgroup. The server shuts down gracefully
// when the context is cancelled.
func (a *App) startHTTPServer(ctx context.Context, g *errgroup.Group, deps *Dependencies) {
	var hub *ws.Hub
	if deps.Bus != nil {
		hub = ws.NewHub(deps.Bus, ws.Config{
			Channels: []string{scan.Channel},
			Mode:     a.cfg.Mode,
		}, a.logger)
		g.Go(func() error {
			return hub.Run(ctx)
		})
	} else {
		a.logger.InfoContext(ctx, "redis disabled, /ws endpoint not registered")
	}

	handlers := server.Handlers{
		Health:        handler.NewHealthHandler(deps.Health),
		Opportunities: handler.NewOpportunityHandler(deps.OppCache, deps.Store, a.logger),
		Scan:          handler.NewScanHandler(deps.Scanner, a.logger),
	}

	srv := server.NewServer(server.Config{
		Port:        a.cfg.Server.Port,
		CORSOrigins: a.cfg.Server.CORSOrigins,
		APIKey:      a.cfg.Server.APIKey,
		RateRPS:     a.cfg.Server.RateRPS,
		RateBurst:   a.cfg.Server.RateBurst,
	}, handlers, hub, deps.Metrics.Registry, a.logger)

	g.Go(func() error {
		if err := srv.Start(); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})
}
