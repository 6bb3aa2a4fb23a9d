package marketdata

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/rxtech-lab/chartseries/internal/logger"
	"github.com/rxtech-lab/chartseries/internal/types"
	"github.com/rxtech-lab/chartseries/pkg/errors"
)

// DuckDBSource reads daily bars from a previously downloaded parquet or CSV
// file through an in-memory DuckDB instance. Files hold one ticker each,
// following the one-file-per-ticker download convention; the ticker argument
// is used for error reporting only.
type DuckDBSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDuckDBSource creates a source over the bar file at path.
func NewDuckDBSource(path string, log *logger.Logger) (Source, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, "failed to open duckdb", err)
	}

	var readFn string

	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		readFn = "read_parquet"
	case ".csv":
		readFn = "read_csv_auto"
	default:
		db.Close()

		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "unsupported bar file extension: %s", path)
	}

	log.Debug("Initializing DuckDB source", zap.String("path", path))

	// Raw SQL as squirrel doesn't support CREATE VIEW.
	query := fmt.Sprintf(`CREATE VIEW daily_bars AS SELECT * FROM %s('%s');`, readFn, path)
	if _, err := db.Exec(query); err != nil {
		db.Close()

		return nil, errors.Wrapf(errors.ErrCodeSourceUnavailable, err, "failed to create view over %s", path)
	}

	return &DuckDBSource{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Daily implements Source.
func (s *DuckDBSource) Daily(ctx context.Context, ticker string, start, end time.Time) (types.Series, error) {
	query, args, err := s.sq.
		Select("time", "open", "high", "low", "close", "volume").
		From("daily_bars").
		Where(squirrel.GtOrEq{"time": start}).
		Where(squirrel.LtOrEq{"time": end}).
		OrderBy("time ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to query daily bars for %s", ticker)
	}
	defer rows.Close()

	var result types.Series

	for rows.Next() {
		var (
			barTime time.Time
			open    sql.NullFloat64
			high    sql.NullFloat64
			low     sql.NullFloat64
			closeP  float64
			volume  sql.NullFloat64
		)

		if err := rows.Scan(&barTime, &open, &high, &low, &closeP, &volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeParseFailed, "failed to scan daily bar", err)
		}

		obs := types.Observation{
			Time:  barTime.UTC(),
			Close: closeP,
		}

		if open.Valid {
			obs.Open = optional.Some(open.Float64)
		}

		if high.Valid {
			obs.High = optional.Some(high.Float64)
		}

		if low.Valid {
			obs.Low = optional.Some(low.Float64)
		}

		if volume.Valid {
			obs.Volume = optional.Some(uint64(volume.Float64))
		}

		result = append(result, obs)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating daily bars", err)
	}

	if err := validateSeries(result, ticker); err != nil {
		return nil, err
	}

	return result, nil
}

// Close releases the underlying database handle.
func (s *DuckDBSource) Close() error {
	return s.db.Close()
}
