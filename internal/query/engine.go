package query

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"findata/internal/dataset"
	"findata/internal/model"
)

var (
	ErrUnavailable = errors.New("query: dataset not available")
	ErrNotFound    = errors.New("query: not found")
	ErrInvalidID   = errors.New("query: invalid indicator id")
)

const (
	perSourceLimit    = 10
	combinedLimit     = 20
	searchBranchLimit = 5
)

var periodLookback = map[string]int{
	"1W": 7,
	"1M": 30,
	"3M": 90,
	"1Y": 365,
}

// Engine answers every query from one immutable snapshot. All methods
// are read-only and tolerate absent tables.
type Engine struct {
	snap *dataset.Snapshot
}

func New(snap *dataset.Snapshot) *Engine {
	if snap == nil {
		snap = &dataset.Snapshot{}
	}
	return &Engine{snap: snap}
}

// SearchIndicators matches q case-insensitively against indicator names
// and countries: the first 10 IMF rows, then the first 10 World Bank
// rows, capped at 20 combined. An empty q matches every row.
func (e *Engine) SearchIndicators(q string) []model.Indicator {
	needle := strings.ToLower(q)

	results := make([]model.Indicator, 0, combinedLimit)
	if t := e.snap.IMF; t != nil {
		for _, row := range matchRows(t, needle, perSourceLimit, "indicator_name_fr", "country") {
			results = append(results, indicatorFromIMF(t, row))
		}
	}
	if t := e.snap.WorldBank; t != nil {
		for _, row := range matchRows(t, needle, perSourceLimit, "indicator_name_fr", "country_name") {
			results = append(results, indicatorFromWorldBank(t, row))
		}
	}
	if len(results) > combinedLimit {
		results = results[:combinedLimit]
	}
	return results
}

func (e *Engine) Quote(symbol string) (model.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	t := e.snap.Market
	if t == nil {
		return model.Quote{}, ErrUnavailable
	}
	rows := tickerRows(t, symbol)
	if len(rows) == 0 {
		return model.Quote{}, ErrNotFound
	}
	latest := rows[len(rows)-1]
	return quoteFromRow(t, latest, symbol, e.companyName(symbol)), nil
}

func (e *Engine) Chart(symbol, period string) ([]model.ChartPoint, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	t := e.snap.Market
	if t == nil {
		return nil, ErrUnavailable
	}
	rows := tickerRows(t, symbol)
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	if lookback, ok := periodLookback[period]; ok && len(rows) > lookback {
		rows = rows[len(rows)-lookback:]
	}

	points := make([]model.ChartPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, chartPointFromRow(t, row))
	}
	return points, nil
}

func (e *Engine) Companies(limit int) ([]model.Company, error) {
	t := e.snap.Companies
	if t == nil {
		return nil, ErrUnavailable
	}
	if limit < 0 {
		limit = 0
	}
	if limit > t.Len() {
		limit = t.Len()
	}

	companies := make([]model.Company, 0, limit)
	for row := 0; row < limit; row++ {
		companies = append(companies, companyFromRow(t, row))
	}
	return companies, nil
}

func (e *Engine) Company(ticker string) (model.Company, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	t := e.snap.Companies
	if t == nil {
		return model.Company{}, ErrUnavailable
	}
	for row := 0; row < t.Len(); row++ {
		if t.Field(row, "ticker") == ticker {
			return companyFromRow(t, row), nil
		}
	}
	return model.Company{}, ErrNotFound
}

// IndicatorByID resolves a numeric indicator id, IMF first so an id
// present in both tables answers from IMF.
func (e *Engine) IndicatorByID(id string) (model.IndicatorDetail, error) {
	want, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return model.IndicatorDetail{}, ErrInvalidID
	}
	if t := e.snap.IMF; t != nil {
		if row, ok := findID(t, want); ok {
			return detailFromIMF(t, row), nil
		}
	}
	if t := e.snap.WorldBank; t != nil {
		if row, ok := findID(t, want); ok {
			return detailFromWorldBank(t, row), nil
		}
	}
	return model.IndicatorDetail{}, ErrNotFound
}

// Search runs three independent branches. A branch whose table is
// absent contributes an empty slice; the result is always well formed.
func (e *Engine) Search(q string) model.SearchResult {
	return model.SearchResult{
		Indicators: e.searchIndicatorsBranch(q),
		Companies:  e.searchCompaniesBranch(q),
		Symbols:    e.searchSymbolsBranch(q),
	}
}

func (e *Engine) searchIndicatorsBranch(q string) []model.Indicator {
	indicators := e.SearchIndicators(q)
	if len(indicators) > searchBranchLimit {
		indicators = indicators[:searchBranchLimit]
	}
	return indicators
}

func (e *Engine) searchCompaniesBranch(q string) []model.CompanyHit {
	hits := make([]model.CompanyHit, 0, searchBranchLimit)
	t := e.snap.Companies
	if t == nil {
		log.Debug().Str("q", q).Msg("search: company table unavailable")
		return hits
	}

	needle := strings.ToLower(q)
	for row := 0; row < t.Len() && len(hits) < searchBranchLimit; row++ {
		name := t.Field(row, "company_name")
		ticker := t.Field(row, "ticker")
		if !strings.Contains(strings.ToLower(name), needle) && !strings.Contains(strings.ToLower(ticker), needle) {
			continue
		}
		hits = append(hits, model.CompanyHit{
			Ticker:   ticker,
			Name:     name,
			Sector:   t.Field(row, "sector"),
			Industry: t.Field(row, "industry"),
		})
	}
	return hits
}

func (e *Engine) searchSymbolsBranch(q string) []model.SymbolHit {
	hits := make([]model.SymbolHit, 0, searchBranchLimit)
	t := e.snap.Market
	if t == nil {
		log.Debug().Str("q", q).Msg("search: market table unavailable")
		return hits
	}

	needle := strings.ToLower(q)
	seen := make(map[string]struct{})
	for row := 0; row < t.Len() && len(hits) < searchBranchLimit; row++ {
		ticker := t.Field(row, "ticker")
		if ticker == "" {
			continue
		}
		if _, ok := seen[ticker]; ok {
			continue
		}
		if !strings.Contains(strings.ToLower(ticker), needle) {
			continue
		}
		seen[ticker] = struct{}{}
		hits = append(hits, model.SymbolHit{Symbol: ticker, Name: e.companyName(ticker)})
	}
	return hits
}

// companyName echoes the ticker back when no display name is known.
func (e *Engine) companyName(ticker string) string {
	t := e.snap.Companies
	if t == nil {
		return ticker
	}
	for row := 0; row < t.Len(); row++ {
		if t.Field(row, "ticker") == ticker {
			if name := t.Field(row, "company_name"); name != "" {
				return name
			}
			break
		}
	}
	return ticker
}

// findID returns the first row whose id column parses to want.
func findID(t *dataset.Table, want int) (int, bool) {
	for row := 0; row < t.Len(); row++ {
		if got, err := strconv.Atoi(strings.TrimSpace(t.Field(row, "id"))); err == nil && got == want {
			return row, true
		}
	}
	return 0, false
}

// matchRows returns the first limit row indices whose named columns
// contain needle, in storage order. needle must be lower-cased.
func matchRows(t *dataset.Table, needle string, limit int, columns ...string) []int {
	rows := make([]int, 0, limit)
	for row := 0; row < t.Len() && len(rows) < limit; row++ {
		for _, column := range columns {
			if strings.Contains(strings.ToLower(t.Field(row, column)), needle) {
				rows = append(rows, row)
				break
			}
		}
	}
	return rows
}

func tickerRows(t *dataset.Table, symbol string) []int {
	rows := make([]int, 0)
	for row := 0; row < t.Len(); row++ {
		if t.Field(row, "ticker") == symbol {
			rows = append(rows, row)
		}
	}
	sortByTimestamp(t, rows)
	return rows
}

// sortByTimestamp orders row indices chronologically. The stored
// timestamps are ISO formatted, so string order is date order.
func sortByTimestamp(t *dataset.Table, rows []int) {
	sort.SliceStable(rows, func(i, j int) bool {
		return t.Field(rows[i], "timestamp") < t.Field(rows[j], "timestamp")
	})
}
