package model

import "github.com/guregu/null/v6"

const (
	SourceIMF       = "IMF"
	SourceWorldBank = "World Bank"

	FrequencyAnnual = "Annual"
)

type Indicator struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Source      string   `json:"source"`
	Category    []string `json:"category"`
	Country     string   `json:"country"`
	Value       string   `json:"value"`
	LastUpdate  string   `json:"lastUpdate"`
	Frequency   string   `json:"frequency"`
	Year        string   `json:"year"`
	Unit        string   `json:"unit"`
}

type IndicatorDetail struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Value       string `json:"value"`
	Country     string `json:"country"`
	Year        string `json:"year"`
	LastUpdate  string `json:"lastUpdate"`
}

type Quote struct {
	Symbol        string     `json:"symbol"`
	Name          string     `json:"name"`
	Price         float64    `json:"price"`
	Change        float64    `json:"change"`
	ChangePercent float64    `json:"changePercent"`
	Volume        float64    `json:"volume"`
	MarketCap     null.Float `json:"marketCap"`
	PE            null.Float `json:"pe"`
	EPS           null.Float `json:"eps"`
}

type ChartPoint struct {
	Timestamp string  `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

type Company struct {
	Ticker          string   `json:"ticker"`
	CompanyName     string   `json:"company_name"`
	BusinessSummary string   `json:"long_business_summary"`
	Website         string   `json:"website"`
	Industry        string   `json:"industry"`
	Sector          string   `json:"sector"`
	Country         string   `json:"country"`
	City            string   `json:"city"`
	Employees       null.Int `json:"employees"`
}

type CompanyHit struct {
	Ticker   string `json:"ticker"`
	Name     string `json:"name"`
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
}

type SymbolHit struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

type SearchResult struct {
	Indicators []Indicator  `json:"indicators"`
	Companies  []CompanyHit `json:"companies"`
	Symbols    []SymbolHit  `json:"symbols"`
}
