package domain

import (
	"github.com/shopspring/decimal"
)

// SpendingPoint is one fiscal year of sector spending, in $B.
type SpendingPoint struct {
	Year      int             `yaml:"year" json:"year"`
	Amount    decimal.Decimal `yaml:"amount" json:"amount"`
	Projected bool            `yaml:"projected" json:"projected"`
}

// SpendingProjection is the historical series extended at a compound growth rate.
type SpendingProjection struct {
	Points         []SpendingPoint `json:"points"`
	GrowthRate     decimal.Decimal `json:"growth_rate"`
	HistoricCAGR   decimal.Decimal `json:"historic_cagr"`
	LegacyShare    decimal.Decimal `json:"legacy_share"`
	LegacyAmount   decimal.Decimal `json:"legacy_amount"` // LegacyShare of the latest actual year
	LatestActual   SpendingPoint   `json:"latest_actual"`
	FinalProjected SpendingPoint   `json:"final_projected"`
}
