// Package export writes chart datasets to files for a rendering front-end to
// pick up. It is a hand-off, not a charting engine.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rxtech-lab/chartseries/internal/chart"
	"github.com/rxtech-lab/chartseries/pkg/errors"
)

// CSVExporter writes one CSV file per dataset into a per-run directory.
type CSVExporter struct {
	baseDir string
	runDir  string
}

// NewCSVExporter creates an exporter rooted at baseDir. Each exporter instance
// gets its own run directory named after the run timestamp.
func NewCSVExporter(baseDir string, runName string) (*CSVExporter, error) {
	runDir := filepath.Join(baseDir, runName)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailed, "failed to create run directory", err)
	}

	return &CSVExporter{
		baseDir: baseDir,
		runDir:  runDir,
	}, nil
}

// RunDir returns the directory this exporter writes into.
func (e *CSVExporter) RunDir() string {
	return e.runDir
}

// WriteDataset writes a dataset as <ticker>_<kind>.csv. A missing value is an
// empty cell; rows are never dropped.
func (e *CSVExporter) WriteDataset(ds chart.Dataset) (string, error) {
	path := filepath.Join(e.runDir, fmt.Sprintf("%s_%s.csv", ds.Ticker, ds.Kind))

	file, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeExportFailed, err, "failed to create %s", path)
	}
	defer file.Close()

	w := csv.NewWriter(file)

	header := make([]string, 0, len(ds.Columns)+1)
	header = append(header, "time")

	for _, col := range ds.Columns {
		header = append(header, col.Name)
	}

	if err := w.Write(header); err != nil {
		return "", errors.Wrap(errors.ErrCodeExportFailed, "failed to write header", err)
	}

	record := make([]string, len(header))

	for _, row := range ds.Rows {
		record[0] = row.Time.Format("2006-01-02")

		for i, value := range row.Values {
			if value.IsSome() {
				record[i+1] = strconv.FormatFloat(value.Unwrap(), 'f', -1, 64)
			} else {
				record[i+1] = ""
			}
		}

		if err := w.Write(record); err != nil {
			return "", errors.Wrap(errors.ErrCodeExportFailed, "failed to write row", err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return "", errors.Wrap(errors.ErrCodeExportFailed, "failed to flush csv", err)
	}

	return path, nil
}
