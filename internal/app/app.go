package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lcalzada-xor/wsurvey/internal/adapters/oui"
	"github.com/lcalzada-xor/wsurvey/internal/adapters/scan"
	"github.com/lcalzada-xor/wsurvey/internal/adapters/storage"
	"github.com/lcalzada-xor/wsurvey/internal/adapters/web"
	"github.com/lcalzada-xor/wsurvey/internal/config"
	"github.com/lcalzada-xor/wsurvey/internal/core/ports"
	"github.com/lcalzada-xor/wsurvey/internal/core/services/survey"
	"github.com/lcalzada-xor/wsurvey/internal/telemetry"
)

// mockSeed keeps mock scans comparable between runs.
const mockSeed = 42

// Application wires the scan provider, survey loop, storage and web server.
// It acts as the facade for the whole system.
type Application struct {
	Config    *config.Config
	Provider  ports.ScanProvider
	Vendors   *oui.Resolver
	Store     ports.NetworkStore
	Survey    *survey.Service
	WebServer *web.Server
}

// New creates a new Application instance and bootstraps its components.
func New(cfg *config.Config) (*Application, error) {
	app := &Application{Config: cfg}

	if err := app.bootstrap(); err != nil {
		return nil, fmt.Errorf("application bootstrap failed: %w", err)
	}
	return app, nil
}

func (app *Application) bootstrap() error {
	telemetry.InitMetrics()

	if err := app.initVendors(); err != nil {
		return err
	}
	if err := app.initStorage(); err != nil {
		return err
	}
	if err := app.initProvider(); err != nil {
		return err
	}

	app.Survey = survey.New(app.Provider, app.Vendors, app.Store, app.Config.ScanInterval)
	app.WebServer = web.NewServer(app.Config.Addr, app.Survey)
	return nil
}

func (app *Application) initVendors() error {
	if app.Config.OUIDBPath != "" {
		resolver, err := oui.NewResolverWithDB(app.Config.OUIDBPath)
		if err != nil {
			slog.Warn("Failed to open OUI registry, using built-in table", "error", err)
			app.Vendors = oui.NewResolver()
		} else {
			app.Vendors = resolver
		}
	} else {
		app.Vendors = oui.NewResolver()
	}

	if app.Config.OUIFilePath != "" {
		if err := app.Vendors.LoadFile(app.Config.OUIFilePath); err != nil {
			slog.Warn("Failed to load OUI file", "path", app.Config.OUIFilePath, "error", err)
		}
	}
	return nil
}

func (app *Application) initStorage() error {
	if !app.Config.Persist {
		slog.Info("Snapshot persistence disabled")
		return nil
	}

	if dir := filepath.Dir(app.Config.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create DB directory: %w", err)
		}
	}

	store, err := storage.NewSQLiteAdapter(app.Config.DBPath)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	app.Store = store
	return nil
}

// initProvider picks the scan source: mock mode wins, then capture replay,
// then live nl80211.
func (app *Application) initProvider() error {
	switch {
	case app.Config.MockMode:
		slog.Info("Mock mode active, virtualizing networks", "count", app.Config.MockNetworks)
		app.Provider = scan.NewMockProvider(app.Config.MockNetworks, mockSeed)
	case app.Config.PcapPath != "":
		provider, err := scan.NewPcapProvider(app.Config.PcapPath)
		if err != nil {
			return fmt.Errorf("capture replay setup failed: %w", err)
		}
		slog.Info("Replaying scans from capture", "path", app.Config.PcapPath)
		app.Provider = provider
	default:
		provider, err := scan.NewNL80211Provider(app.Config.Interface)
		if err != nil {
			return fmt.Errorf("nl80211 setup failed: %w", err)
		}
		app.Provider = provider
	}
	return nil
}

// Run starts the survey loop and the web server and blocks until ctx is
// cancelled or a component fails.
func (app *Application) Run(ctx context.Context) error {
	slog.Info("Starting wsurvey components")

	errChan := make(chan error, 2)

	go func() {
		if err := app.Survey.Run(ctx); err != nil && err != context.Canceled {
			errChan <- fmt.Errorf("survey loop error: %w", err)
		}
	}()

	go func() {
		if err := app.WebServer.Run(ctx); err != nil {
			errChan <- fmt.Errorf("web server error: %w", err)
		}
	}()

	slog.Info("wsurvey ready", "addr", app.Config.Addr, "interval", app.Config.ScanInterval)

	select {
	case <-ctx.Done():
		slog.Info("Termination signal received")
	case err := <-errChan:
		app.cleanup()
		return err
	}

	// Give the web server a moment to drain before releasing resources.
	time.Sleep(100 * time.Millisecond)
	return app.cleanup()
}

func (app *Application) cleanup() error {
	slog.Info("Cleaning up resources")

	if app.Provider != nil {
		if err := app.Provider.Close(); err != nil {
			slog.Warn("Provider close error", "error", err)
		}
	}
	if app.Vendors != nil {
		if err := app.Vendors.Close(); err != nil {
			slog.Warn("Vendor resolver close error", "error", err)
		}
	}
	if app.Store != nil {
		if err := app.Store.Close(); err != nil {
			slog.Warn("Store close error", "error", err)
		}
	}
	return nil
}
