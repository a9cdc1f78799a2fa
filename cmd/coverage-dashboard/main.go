package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/lueurxax/coverage-dashboard/internal/app"
	apperrors "github.com/lueurxax/coverage-dashboard/internal/core/errors"
	"github.com/lueurxax/coverage-dashboard/internal/dashboard"
	"github.com/lueurxax/coverage-dashboard/internal/dataset"
	"github.com/lueurxax/coverage-dashboard/internal/filters"
	"github.com/lueurxax/coverage-dashboard/internal/platform/config"
)

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, "; ") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

func main() {
	var departments, municipalities, centers multiFlag

	mode := flag.String("mode", "serve", "Run mode (serve, report, export)")
	page := flag.String("page", "", "Page for report/export (providers, coverage, socioeconomic)")
	mapVariable := flag.String("map", "", "Map variable for the coverage page")
	out := flag.String("out", "coverage.xlsx", "Workbook path for export mode")

	flag.Var(&departments, "department", "Department filter (repeatable)")
	flag.Var(&municipalities, "municipality", "Municipality filter (repeatable)")
	flag.Var(&centers, "populated-center", "Populated center filter (repeatable)")

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	schema := dataset.DefaultSchema()
	if cfg.Dataset.SchemaPath != "" {
		if schema, err = dataset.LoadSchema(cfg.Dataset.SchemaPath); err != nil {
			logger.Fatal().Err(err).Msg("failed to load dataset schema")
		}
	}

	application := app.New(cfg, dataset.NewStore(schema, &logger), &logger)

	sel, err := dashboard.SelectionFromQuery(url.Values{
		dashboard.ParamPage:          {*page},
		dashboard.ParamMapVariable:   {*mapVariable},
		filters.ParamDepartment:      departments,
		filters.ParamMunicipality:    municipalities,
		filters.ParamPopulatedCenter: centers,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid selection")
	}

	if *mode == "serve" {
		// Start health server in background
		go func() {
			if err := application.StartHealthServer(ctx); err != nil {
				logger.Error().Err(err).Msg("health check server error")
			}
		}()
	}

	if err := runMode(ctx, application, *mode, sel, *out); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info().Msg("application stopped")
			return
		}

		logger.Fatal().Err(err).Msg("application error")
	}
}

func newLogger(appEnv, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if appEnv == "local" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(lvl).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}

func runMode(ctx context.Context, application *app.App, mode string, sel dashboard.Selection, out string) error {
	switch mode {
	case "serve":
		return application.RunServe(ctx)
	case "report":
		return application.RunReport(ctx, sel, os.Stdout)
	case "export":
		return application.RunExport(ctx, sel, out)
	default:
		return fmt.Errorf("%w: mode %q, usage: %s --mode=[serve|report|export]", apperrors.ErrInvalidInput, mode, os.Args[0])
	}
}
