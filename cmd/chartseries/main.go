package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/rxtech-lab/chartseries/internal/chart"
	"github.com/rxtech-lab/chartseries/internal/chart/export"
	"github.com/rxtech-lab/chartseries/internal/config"
	"github.com/rxtech-lab/chartseries/internal/logger"
	"github.com/rxtech-lab/chartseries/internal/server"
	"github.com/rxtech-lab/chartseries/pkg/marketdata"
)

// buildAction fetches the daily series for the configured ticker and writes
// one CSV per requested chart dataset for the rendering side to pick up.
func buildAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	appLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer appLogger.Sync()

	source, err := marketdata.NewSource(marketdata.Config{
		SourceType:    cfg.Source,
		PolygonAPIKey: os.Getenv("POLYGON_API_KEY"),
		DataPath:      cfg.DataPath,
	}, appLogger, nil)
	if err != nil {
		return fmt.Errorf("failed to create market data source: %w", err)
	}

	start, err := cfg.StartTime()
	if err != nil {
		return err
	}

	end, err := cfg.EndTime()
	if err != nil {
		return err
	}

	appLogger.Info("fetching daily series",
		zap.String("ticker", cfg.Ticker),
		zap.String("source", string(cfg.Source)),
		zap.Time("start", start),
		zap.Time("end", end))

	series, err := source.Daily(ctx, cfg.Ticker, start, end)
	if err != nil {
		return fmt.Errorf("failed to fetch daily series: %w", err)
	}

	runName := time.Now().Format("2006-01-02_15-04-05")

	exporter, err := export.NewCSVExporter(cfg.OutputDir, runName)
	if err != nil {
		return fmt.Errorf("failed to create exporter: %w", err)
	}

	for _, chartCfg := range cfg.Charts {
		dataset, err := chart.Build(chartCfg.Kind, cfg.Ticker, series)
		if err != nil {
			return fmt.Errorf("failed to build %s dataset: %w", chartCfg.Kind, err)
		}

		if chartCfg.Title != "" {
			dataset.Title = chartCfg.Title
		}

		path, err := exporter.WriteDataset(dataset)
		if err != nil {
			return fmt.Errorf("failed to write %s dataset: %w", chartCfg.Kind, err)
		}

		appLogger.Info("wrote chart dataset", zap.String("kind", string(chartCfg.Kind)), zap.String("path", path))
	}

	summary, err := chart.Summarize(cfg.Ticker, series)
	if err != nil {
		return fmt.Errorf("failed to summarize series: %w", err)
	}

	appLogger.Info("chart job finished",
		zap.String("ticker", summary.Ticker),
		zap.Int("days", summary.Days),
		zap.String("period_return_pct", summary.PeriodReturnPct.String()),
		zap.Uint64("total_volume", summary.TotalVolume),
		zap.String("output", exporter.RunDir()))

	return nil
}

// serveAction runs the read-only JSON API over the configured source.
func serveAction(_ context.Context, cmd *cli.Command) error {
	appLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer appLogger.Sync()

	source, err := marketdata.NewSource(marketdata.Config{
		SourceType:    marketdata.SourceType(cmd.String("source")),
		PolygonAPIKey: os.Getenv("POLYGON_API_KEY"),
		DataPath:      cmd.String("data"),
	}, appLogger, nil)
	if err != nil {
		return fmt.Errorf("failed to create market data source: %w", err)
	}

	return server.NewServer(source, appLogger).ListenAndServe(cmd.String("addr"))
}

func main() {
	cmd := &cli.Command{
		Name:  "chartseries",
		Usage: "Build chart-ready datasets from daily stock data",
		Commands: []*cli.Command{
			{
				Name:  "build",
				Usage: "Fetch daily data and export chart datasets as CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the chart job YAML config",
						Required: true,
					},
				},
				Action: buildAction,
			},
			{
				Name:  "serve",
				Usage: "Serve chart datasets over a JSON API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address",
						Value: ":8080",
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Market data source (polygon, binance, duckdb)",
						Value: "binance",
					},
					&cli.StringFlag{
						Name:  "data",
						Usage: "Path to the daily bar file for the duckdb source",
					},
				},
				Action: serveAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
