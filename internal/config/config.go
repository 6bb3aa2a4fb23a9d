// Package config loads the chart job configuration from YAML.
package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/rxtech-lab/chartseries/internal/chart"
	"github.com/rxtech-lab/chartseries/pkg/errors"
	"github.com/rxtech-lab/chartseries/pkg/marketdata"
)

const dateLayout = "2006-01-02"

// ChartConfig selects one dataset kind and its display hints. The display
// hints are passed through to the rendering side untouched.
type ChartConfig struct {
	Kind  chart.Kind `yaml:"kind" validate:"required"`
	Title string     `yaml:"title"`
	Color string     `yaml:"color"`
}

// Config is a full chart job: which ticker, which date range, which source,
// and which datasets to build.
type Config struct {
	Ticker    string                `yaml:"ticker" validate:"required"`
	Start     string                `yaml:"start" validate:"required,datetime=2006-01-02"`
	End       string                `yaml:"end" validate:"required,datetime=2006-01-02"`
	Source    marketdata.SourceType `yaml:"source" validate:"required,oneof=polygon binance duckdb"`
	DataPath  string                `yaml:"data_path" validate:"required_if=Source duckdb"`
	OutputDir string                `yaml:"output_dir" validate:"required"`
	Charts    []ChartConfig         `yaml:"charts" validate:"required,min=1,dive"`
}

// Load reads and validates a job configuration from the YAML file at path.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	return Parse(raw)
}

// Parse parses and validates a job configuration from raw YAML.
func Parse(raw []byte) (Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config yaml", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	for _, c := range cfg.Charts {
		if !validKind(c.Kind) {
			return Config{}, errors.Newf(errors.ErrCodeUnknownChartKind, "unknown chart kind %q in config", c.Kind)
		}
	}

	start, err := cfg.StartTime()
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid start date", err)
	}

	end, err := cfg.EndTime()
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid end date", err)
	}

	if !end.After(start) {
		return Config{}, errors.New(errors.ErrCodeInvalidConfiguration, "end date must be after start date")
	}

	return cfg, nil
}

// StartTime returns the parsed start date.
func (c Config) StartTime() (time.Time, error) {
	return time.Parse(dateLayout, c.Start)
}

// EndTime returns the parsed end date.
func (c Config) EndTime() (time.Time, error) {
	return time.Parse(dateLayout, c.End)
}

func validKind(kind chart.Kind) bool {
	for _, k := range chart.Kinds() {
		if k == kind {
			return true
		}
	}

	return false
}
