// Package server exposes chart datasets over a small read-only JSON API for a
// rendering front-end.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/rxtech-lab/chartseries/internal/chart"
	"github.com/rxtech-lab/chartseries/internal/logger"
	"github.com/rxtech-lab/chartseries/internal/types"
	"github.com/rxtech-lab/chartseries/pkg/errors"
	"github.com/rxtech-lab/chartseries/pkg/marketdata"
)

const dateLayout = "2006-01-02"

// Server serves chart datasets built from a market data source.
type Server struct {
	source marketdata.Source
	logger *logger.Logger
	router *mux.Router
}

// NewServer creates a server over the given market data source.
func NewServer(source marketdata.Source, log *logger.Logger) *Server {
	s := &Server{
		source: source,
		logger: log,
		router: mux.NewRouter(),
	}

	s.router.HandleFunc("/api/kinds", s.handleKinds).Methods(http.MethodGet)
	s.router.HandleFunc("/api/charts/{ticker}/summary", s.handleSummary).Methods(http.MethodGet)
	s.router.HandleFunc("/api/charts/{ticker}/{kind}", s.handleChart).Methods(http.MethodGet)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the server on addr and blocks.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("chart data API listening", zap.String("addr", addr))

	return http.ListenAndServe(addr, s)
}

func (s *Server) handleKinds(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, chart.Kinds())
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ticker := vars["ticker"]
	kind := chart.Kind(vars["kind"])

	series, ok := s.fetchSeries(w, r, ticker)
	if !ok {
		return
	}

	dataset, err := chart.Build(kind, ticker, series)
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, dataset)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	ticker := mux.Vars(r)["ticker"]

	series, ok := s.fetchSeries(w, r, ticker)
	if !ok {
		return
	}

	summary, err := chart.Summarize(ticker, series)
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, summary)
}

// fetchSeries resolves the requested date range and fetches the daily series.
// On failure it writes the error response and returns false.
func (s *Server) fetchSeries(w http.ResponseWriter, r *http.Request, ticker string) (types.Series, bool) {
	start, end, err := parseRange(r)
	if err != nil {
		s.writeError(w, err)

		return nil, false
	}

	series, err := s.source.Daily(r.Context(), ticker, start, end)
	if err != nil {
		s.writeError(w, err)

		return nil, false
	}

	return series, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch errors.GetCode(err) {
	case errors.ErrCodeEmptyInput, errors.ErrCodeIndexOutOfRange, errors.ErrCodeInvalidParameter, errors.ErrCodeUnknownChartKind:
		status = http.StatusBadRequest
	case errors.ErrCodeNoDataFound:
		status = http.StatusNotFound
	}

	s.logger.Warn("request failed", zap.Error(err))
	s.writeJSON(w, status, map[string]any{
		"code":    errors.GetCode(err),
		"message": err.Error(),
	})
}

func parseRange(r *http.Request) (start, end time.Time, err error) {
	query := r.URL.Query()

	end = time.Now().UTC().Truncate(24 * time.Hour)
	start = end.AddDate(-1, 0, 0)

	if raw := query.Get("start"); raw != "" {
		start, err = time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.Wrapf(errors.ErrCodeInvalidParameter, err, "invalid start date %q", raw)
		}
	}

	if raw := query.Get("end"); raw != "" {
		end, err = time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.Wrapf(errors.ErrCodeInvalidParameter, err, "invalid end date %q", raw)
		}
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, errors.New(errors.ErrCodeInvalidParameter, "end date must be after start date")
	}

	return start, end, nil
}
