// Package troas scores business health and recommends a target ROAS for
// search-engine advertising spend.
package troas

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidMetrics is returned by BusinessMetrics.Validate
var ErrInvalidMetrics = errors.New("invalid business metrics")

// Season describes where the business is in its sales cycle
type Season string

const (
	SeasonHigh   Season = "high"
	SeasonNormal Season = "normal"
	SeasonLow    Season = "low"
)

// Valid reports whether the season is one of the known values
func (s Season) Valid() bool {
	return s == SeasonHigh || s == SeasonNormal || s == SeasonLow
}

// UnmarshalText accepts known seasons only, ignoring case
func (s *Season) UnmarshalText(text []byte) error {
	v := Season(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("unknown season %q (must be high, normal or low)", text)
	}
	*s = v
	return nil
}

// Competition describes the intensity of competition in the market
type Competition string

const (
	CompetitionHigh   Competition = "high"
	CompetitionMedium Competition = "medium"
	CompetitionLow    Competition = "low"
)

// Valid reports whether the competition level is one of the known values
func (c Competition) Valid() bool {
	return c == CompetitionHigh || c == CompetitionMedium || c == CompetitionLow
}

// UnmarshalText accepts known competition levels only, ignoring case
func (c *Competition) UnmarshalText(text []byte) error {
	v := Competition(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("unknown competition level %q (must be high, medium or low)", text)
	}
	*c = v
	return nil
}

// Stage describes the business lifecycle stage
type Stage string

const (
	StageGrowth   Stage = "growth"
	StageStable   Stage = "stable"
	StageOptimize Stage = "optimize"
)

// Valid reports whether the stage is one of the known values
func (s Stage) Valid() bool {
	return s == StageGrowth || s == StageStable || s == StageOptimize
}

// UnmarshalText accepts known stages only, ignoring case
func (s *Stage) UnmarshalText(text []byte) error {
	v := Stage(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("unknown business stage %q (must be growth, stable or optimize)", text)
	}
	*s = v
	return nil
}

// BusinessMetrics is the business context the recommendation is built from.
// Percentages are expressed as 0-100 values.
type BusinessMetrics struct {
	TotalRevenue          float64     `json:"total_revenue" yaml:"total_revenue"`
	RevenueGrowth         float64     `json:"revenue_growth" yaml:"revenue_growth"` // % month over month
	GrossMargin           float64     `json:"gross_margin" yaml:"gross_margin"`
	OperatingExpenseRatio float64     `json:"operating_expense_ratio" yaml:"operating_expense_ratio"`
	CashReserveRatio      float64     `json:"cash_reserve_ratio" yaml:"cash_reserve_ratio"` // months of runway
	InventoryTurnoverRate float64     `json:"inventory_turnover_rate" yaml:"inventory_turnover_rate"`
	SeaSpend              float64     `json:"sea_spend" yaml:"sea_spend"`
	SeaROAS               float64     `json:"sea_roas" yaml:"sea_roas"`
	CurrentTROAS          float64     `json:"current_troas" yaml:"current_troas"`
	SeaRevenuePercentage  float64     `json:"sea_revenue_percentage" yaml:"sea_revenue_percentage"`
	Season                Season      `json:"season" yaml:"season"`
	MarketCompetition     Competition `json:"market_competition" yaml:"market_competition"`
	BusinessStage         Stage       `json:"business_stage" yaml:"business_stage"`
}

// Validate checks enumerations and rejects non-finite numbers.
// Recommend itself accepts anything; this is for loaders and CLIs.
func (m BusinessMetrics) Validate() error {
	numbers := map[string]float64{
		"total_revenue":           m.TotalRevenue,
		"revenue_growth":          m.RevenueGrowth,
		"gross_margin":            m.GrossMargin,
		"operating_expense_ratio": m.OperatingExpenseRatio,
		"cash_reserve_ratio":      m.CashReserveRatio,
		"inventory_turnover_rate": m.InventoryTurnoverRate,
		"sea_spend":               m.SeaSpend,
		"sea_roas":                m.SeaROAS,
		"current_troas":           m.CurrentTROAS,
		"sea_revenue_percentage":  m.SeaRevenuePercentage,
	}
	for name, v := range numbers {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidMetrics, name)
		}
	}

	if !m.Season.Valid() {
		return fmt.Errorf("%w: season %q", ErrInvalidMetrics, m.Season)
	}
	if !m.MarketCompetition.Valid() {
		return fmt.Errorf("%w: market competition %q", ErrInvalidMetrics, m.MarketCompetition)
	}
	if !m.BusinessStage.Valid() {
		return fmt.Errorf("%w: business stage %q", ErrInvalidMetrics, m.BusinessStage)
	}
	return nil
}

// DefaultBusinessMetrics returns a mid-size, moderately healthy business
func DefaultBusinessMetrics() BusinessMetrics {
	return BusinessMetrics{
		TotalRevenue:          4000000,
		RevenueGrowth:         10,
		GrossMargin:           30,
		OperatingExpenseRatio: 15,
		CashReserveRatio:      6,
		InventoryTurnoverRate: 6,
		SeaSpend:              1000000,
		SeaROAS:               4,
		CurrentTROAS:          4,
		SeaRevenuePercentage:  50,
		Season:                SeasonNormal,
		MarketCompetition:     CompetitionMedium,
		BusinessStage:         StageStable,
	}
}

// HealthStatus is the tier of the business health score
type HealthStatus string

const (
	HealthStrong   HealthStatus = "STRONG"
	HealthModerate HealthStatus = "MODERATE"
	HealthWeak     HealthStatus = "WEAK"
)

// HealthBreakdown holds the four clamped sub-scores and their weighted total
type HealthBreakdown struct {
	RevenueGrowth     float64 `json:"revenue_growth" yaml:"revenue_growth"`
	ProfitMargin      float64 `json:"profit_margin" yaml:"profit_margin"`
	CashReserve       float64 `json:"cash_reserve" yaml:"cash_reserve"`
	InventoryTurnover float64 `json:"inventory_turnover" yaml:"inventory_turnover"`
	Total             float64 `json:"total" yaml:"total"`
}

// Recommendation is the output of Recommend
type Recommendation struct {
	RecommendedTROAS float64 `json:"recommended_troas" yaml:"recommended_troas"`
	CurrentTROAS     float64 `json:"current_troas" yaml:"current_troas"`
	SuggestedChange  float64 `json:"suggested_change" yaml:"suggested_change"`
	BaseTROAS        float64 `json:"base_troas" yaml:"base_troas"`
	TROASAdjustment  float64 `json:"troas_adjustment" yaml:"troas_adjustment"`

	BusinessHealthScore  float64         `json:"business_health_score" yaml:"business_health_score"`
	BusinessHealthStatus HealthStatus    `json:"business_health_status" yaml:"business_health_status"`
	Health               HealthBreakdown `json:"health" yaml:"health"`
	Reasoning            []string        `json:"reasoning" yaml:"reasoning"`

	CurrentSeaRevenue     float64 `json:"current_sea_revenue" yaml:"current_sea_revenue"`
	ProjectedSeaRevenue   float64 `json:"projected_sea_revenue" yaml:"projected_sea_revenue"`
	ProjectedSpendChange  float64 `json:"projected_spend_change" yaml:"projected_spend_change"`
	ExpectedRevenueImpact float64 `json:"expected_revenue_impact" yaml:"expected_revenue_impact"`
	ProfitImpact          float64 `json:"profit_impact" yaml:"profit_impact"`
	MarketShareGain       float64 `json:"market_share_gain" yaml:"market_share_gain"`

	AffordabilityIndex     float64 `json:"affordability_index" yaml:"affordability_index"`
	TROASFlexibility       string  `json:"troas_flexibility" yaml:"troas_flexibility"`
	MarketOpportunityScore float64 `json:"market_opportunity_score" yaml:"market_opportunity_score"`
	OverrideMessage        string  `json:"override_message,omitempty" yaml:"override_message,omitempty"`
}
