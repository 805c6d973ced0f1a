package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"findata/internal/query"
)

const (
	defaultPeriod       = "1M"
	defaultCompanyLimit = 10
)

type errorBody struct {
	Detail string `json:"detail"`
}

type identity struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, identity{Message: serviceName, Version: serviceVersion})
}

func (s *Server) handleIndicators(w http.ResponseWriter, r *http.Request) {
	q, ok := queryParam(r, "q")
	if !ok {
		writeError(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}
	writeJSON(w, http.StatusOK, s.engine.SearchIndicators(q))
}

func (s *Server) handleFinancial(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(strings.TrimSpace(r.PathValue("symbol")))
	quote, err := s.engine.Quote(symbol)
	if err != nil {
		writeMarketError(w, err, symbol)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(strings.TrimSpace(r.PathValue("symbol")))
	period := r.URL.Query().Get("period")
	if period == "" {
		period = defaultPeriod
	}
	points, err := s.engine.Chart(symbol, period)
	if err != nil {
		writeMarketError(w, err, symbol)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) handleCompanies(w http.ResponseWriter, r *http.Request) {
	limit := defaultCompanyLimit
	if raw, ok := queryParam(r, "limit"); ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	companies, err := s.engine.Companies(limit)
	if err != nil {
		writeCompanyError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, companies)
}

func (s *Server) handleCompany(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(strings.TrimSpace(r.PathValue("ticker")))
	company, err := s.engine.Company(ticker)
	if err != nil {
		writeCompanyError(w, err, ticker)
		return
	}
	writeJSON(w, http.StatusOK, company)
}

func (s *Server) handleEconomic(w http.ResponseWriter, r *http.Request) {
	detail, err := s.engine.IndicatorByID(r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, query.ErrInvalidID):
			writeError(w, http.StatusBadRequest, "Invalid indicator id")
		case errors.Is(err, query.ErrNotFound):
			writeError(w, http.StatusNotFound, "Indicator not found")
		default:
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q, ok := queryParam(r, "q")
	if !ok {
		writeError(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Search(q))
}

func writeMarketError(w http.ResponseWriter, err error, symbol string) {
	switch {
	case errors.Is(err, query.ErrUnavailable):
		writeError(w, http.StatusNotFound, "Market data not available")
	case errors.Is(err, query.ErrNotFound):
		writeError(w, http.StatusNotFound, fmt.Sprintf("Symbol %s not found", symbol))
	default:
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func writeCompanyError(w http.ResponseWriter, err error, ticker string) {
	switch {
	case errors.Is(err, query.ErrUnavailable):
		writeError(w, http.StatusNotFound, "Company data not available")
	case errors.Is(err, query.ErrNotFound):
		writeError(w, http.StatusNotFound, fmt.Sprintf("Company %s not found", ticker))
	default:
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// queryParam reports whether the parameter was present at all, so a
// supplied-but-empty value can be told apart from a missing one.
func queryParam(r *http.Request, key string) (string, bool) {
	values, ok := r.URL.Query()[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		log.Error().Err(err).Msg("write response")
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorBody{Detail: detail})
}
