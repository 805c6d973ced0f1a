package query

import (
	"math"
	"strconv"

	"github.com/guregu/null/v6"

	"findata/internal/dataset"
	"findata/internal/model"
)

var (
	imfCategories       = []string{"macro", "economic"}
	worldBankCategories = []string{"economic", "development"}
)

func indicatorFromIMF(t *dataset.Table, row int) model.Indicator {
	return model.Indicator{
		ID:          t.Field(row, "id"),
		Title:       t.Field(row, "indicator_name_fr"),
		Description: t.Field(row, "description"),
		Source:      model.SourceIMF,
		Category:    imfCategories,
		Country:     t.Field(row, "country"),
		Value:       valueOrNA(t.Field(row, "value")),
		LastUpdate:  t.Field(row, "last_updated"),
		Frequency:   model.FrequencyAnnual,
		Year:        t.Field(row, "year"),
		Unit:        "",
	}
}

func indicatorFromWorldBank(t *dataset.Table, row int) model.Indicator {
	return model.Indicator{
		ID:          t.Field(row, "id"),
		Title:       t.Field(row, "indicator_name_fr"),
		Description: t.Field(row, "indicator_name"),
		Source:      model.SourceWorldBank,
		Category:    worldBankCategories,
		Country:     t.Field(row, "country_name"),
		Value:       valueOrNA(t.Field(row, "value")),
		LastUpdate:  t.Field(row, "last_updated"),
		Frequency:   model.FrequencyAnnual,
		Year:        t.Field(row, "year"),
		Unit:        t.Field(row, "unit"),
	}
}

func detailFromIMF(t *dataset.Table, row int) model.IndicatorDetail {
	return model.IndicatorDetail{
		ID:          t.Field(row, "id"),
		Title:       t.Field(row, "indicator_name_fr"),
		Description: t.Field(row, "description"),
		Source:      model.SourceIMF,
		Value:       valueOrNA(t.Field(row, "value")),
		Country:     t.Field(row, "country"),
		Year:        t.Field(row, "year"),
		LastUpdate:  t.Field(row, "last_updated"),
	}
}

func detailFromWorldBank(t *dataset.Table, row int) model.IndicatorDetail {
	return model.IndicatorDetail{
		ID:          t.Field(row, "id"),
		Title:       t.Field(row, "indicator_name_fr"),
		Description: t.Field(row, "indicator_name"),
		Source:      model.SourceWorldBank,
		Value:       valueOrNA(t.Field(row, "value")),
		Country:     t.Field(row, "country_name"),
		Year:        t.Field(row, "year"),
		LastUpdate:  t.Field(row, "last_updated"),
	}
}

func quoteFromRow(t *dataset.Table, row int, symbol, name string) model.Quote {
	quote := model.Quote{
		Symbol:        symbol,
		Name:          name,
		Price:         floatField(t, row, "close_price"),
		Change:        floatField(t, row, "rendement"),
		ChangePercent: floatField(t, row, "rendement"),
		Volume:        floatField(t, row, "volume"),
	}
	if value, ok := parseFloat(t.Field(row, "market_cap")); ok {
		quote.MarketCap = null.FloatFrom(value)
	}
	return quote
}

func chartPointFromRow(t *dataset.Table, row int) model.ChartPoint {
	return model.ChartPoint{
		Timestamp: t.Field(row, "timestamp"),
		Open:      floatField(t, row, "open_price"),
		High:      floatField(t, row, "high_price"),
		Low:       floatField(t, row, "low_price"),
		Close:     floatField(t, row, "close_price"),
		Volume:    floatField(t, row, "volume"),
	}
}

func companyFromRow(t *dataset.Table, row int) model.Company {
	company := model.Company{
		Ticker:          t.Field(row, "ticker"),
		CompanyName:     t.Field(row, "company_name"),
		BusinessSummary: t.Field(row, "long_business_summary"),
		Website:         t.Field(row, "website"),
		Industry:        t.Field(row, "industry"),
		Sector:          t.Field(row, "sector"),
		Country:         t.Field(row, "country"),
		City:            t.Field(row, "city"),
	}
	if value, ok := parseFloat(t.Field(row, "full_time_employees")); ok {
		company.Employees = null.IntFrom(int64(value))
	}
	return company
}

func floatField(t *dataset.Table, row int, column string) float64 {
	value, ok := parseFloat(t.Field(row, column))
	if !ok {
		return 0
	}
	return value
}

// parseFloat rejects NaN and Inf cells: they are not representable in
// JSON and must fall back like any other missing value.
func parseFloat(value string) (float64, bool) {
	if value == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, false
	}
	return parsed, true
}

func valueOrNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
