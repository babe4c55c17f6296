package troas

import "github.com/aristath/scenario-planner/pkg/formulas"

// =============================================================================
// BUSINESS HEALTH
// =============================================================================
// Health is a 0-100 blend of four sub-scores, each clamped to 0-100 before
// weighting. Growth and margin dominate; cash runway and inventory turnover
// act as stabilisers.

const (
	// Sub-score weights (sum to 1.0)
	WeightRevenueGrowth     = 0.3
	WeightProfitMargin      = 0.3
	WeightCashReserve       = 0.2
	WeightInventoryTurnover = 0.2

	// Sub-score scales
	GrowthFloor          = -20.0 // growth % that scores 0
	GrowthRange          = 70.0  // -20% .. +50% maps to 0..100
	MarginForFullScore   = 40.0  // gross margin % that scores 100
	CashMonthsFullScore  = 12.0  // months of runway that score 100
	TurnoverForFullScore = 8.0   // inventory turns that score 100

	// Status thresholds
	StrongHealthThreshold   = 70.0
	ModerateHealthThreshold = 40.0
)

// HealthScore computes the weighted business health score and its parts
func HealthScore(m BusinessMetrics) HealthBreakdown {
	b := HealthBreakdown{
		RevenueGrowth:     formulas.Clamp0100(((m.RevenueGrowth - GrowthFloor) / GrowthRange) * 100),
		ProfitMargin:      formulas.Clamp0100((m.GrossMargin / MarginForFullScore) * 100),
		CashReserve:       formulas.Clamp0100((m.CashReserveRatio / CashMonthsFullScore) * 100),
		InventoryTurnover: formulas.Clamp0100((m.InventoryTurnoverRate / TurnoverForFullScore) * 100),
	}

	b.Total = b.RevenueGrowth*WeightRevenueGrowth +
		b.ProfitMargin*WeightProfitMargin +
		b.CashReserve*WeightCashReserve +
		b.InventoryTurnover*WeightInventoryTurnover

	return b
}

// StatusFor maps a health score to its tier
func StatusFor(health float64) HealthStatus {
	switch {
	case health > StrongHealthThreshold:
		return HealthStrong
	case health > ModerateHealthThreshold:
		return HealthModerate
	default:
		return HealthWeak
	}
}

// BaseTROAS maps health to a tROAS tier. Healthier businesses get a LOWER
// target, i.e. they can afford to spend more aggressively.
func BaseTROAS(health float64) float64 {
	switch {
	case health > 80:
		return 2.0 // Aggressive
	case health > 60:
		return 3.0 // Balanced
	case health > 40:
		return 4.0 // Conservative
	default:
		return 5.0 // Defensive
	}
}
