// Package app provides the main application bootstrap and runtime orchestration.
//
// The App type wires the dataset store, the dashboard and the exporters together
// and exposes one method per operational mode:
//
//   - Serve mode: HTTP dashboard with chart images, JSON view and XLSX download
//   - Report mode: one rendered view printed as plain-text tables
//   - Export mode: one rendered view written as an XLSX workbook
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/lueurxax/coverage-dashboard/internal/dashboard"
	"github.com/lueurxax/coverage-dashboard/internal/dataset"
	"github.com/lueurxax/coverage-dashboard/internal/export"
	"github.com/lueurxax/coverage-dashboard/internal/platform/config"
	"github.com/lueurxax/coverage-dashboard/internal/platform/observability"
)

const logFieldPath = "path"

var errNotLoaded = errors.New("dataset not loaded")

// App holds the application dependencies and provides methods to run different modes.
type App struct {
	cfg    *config.Config
	store  *dataset.Store
	logger *zerolog.Logger
}

func New(cfg *config.Config, store *dataset.Store, logger *zerolog.Logger) *App {
	return &App{
		cfg:    cfg,
		store:  store,
		logger: logger,
	}
}

// Table returns the configured dataset, loading it on first use.
func (a *App) Table() (*dataset.Table, error) {
	t, err := a.store.Get(a.cfg.Dataset.Path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	return t, nil
}

// Ready reports whether the configured dataset has been loaded.
func (a *App) Ready() error {
	if !a.store.Loaded(a.cfg.Dataset.Path) {
		return errNotLoaded
	}

	return nil
}

// StartHealthServer starts the health check and metrics server.
func (a *App) StartHealthServer(ctx context.Context) error {
	return observability.NewServer(a.cfg.HTTP.HealthPort, a.Ready, a.logger).Start(ctx)
}

// RunServe loads the dataset and serves the dashboard until ctx is cancelled.
func (a *App) RunServe(ctx context.Context) error {
	a.logger.Info().Str(logFieldPath, a.cfg.Dataset.Path).Msg("Starting serve mode")

	t, err := a.Table()
	if err != nil {
		return err
	}

	handler, err := dashboard.NewHandler(a.cfg, t, export.WriteWorkbook, a.logger)
	if err != nil {
		return fmt.Errorf("dashboard handler init: %w", err)
	}

	return observability.Serve(ctx, "Dashboard server", a.cfg.HTTP.Port, handler, a.logger)
}

// RunReport renders sel and writes it to w as plain-text tables.
func (a *App) RunReport(ctx context.Context, sel dashboard.Selection, w io.Writer) error {
	vm, err := a.render(ctx, sel)
	if err != nil {
		return err
	}

	return export.WriteReport(w, vm)
}

// RunExport renders sel and writes it as an XLSX workbook to out.
func (a *App) RunExport(ctx context.Context, sel dashboard.Selection, out string) error {
	vm, err := a.render(ctx, sel)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}

	if err := export.WriteWorkbook(f, vm); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", out, err)
	}

	a.logger.Info().Str(logFieldPath, out).Str("page", string(vm.Selection.Page)).Int("rows", vm.Rows).Msg("Workbook written")

	return nil
}

func (a *App) render(ctx context.Context, sel dashboard.Selection) (*dashboard.ViewModel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := a.Table()
	if err != nil {
		return nil, err
	}

	vm, err := dashboard.Render(t, sel)
	if err != nil {
		return nil, err
	}

	vm.Title = a.cfg.DashboardTitle

	for _, w := range vm.Warnings {
		a.logger.Warn().Str("page", string(vm.Selection.Page)).Msg(w)
	}

	return vm, nil
}
