package troas

import (
	"fmt"
	"math"

	"github.com/aristath/scenario-planner/pkg/formulas"
)

const (
	MinTROAS = 1.5
	MaxTROAS = 6.0

	// Contextual deltas applied on top of the base tier
	PeakSeasonDelta        = -0.5
	OffSeasonDelta         = 0.5
	HighCompetitionDelta   = -0.3
	HighCompetitionMinimum = 70.0 // only fight for share above this health
	GrowthStageDelta       = -0.4
	GrowthStageCashMonths  = 6.0 // only invest in growth above this runway

	MinimumAcceptableMargin = 15.0 // gross margin %
	MarginTarget            = 25.0

	OverrideOpportunity = 80.0
	OverrideHealth      = 50.0
)

// Flexibility advice by affordability tier
const (
	FlexibilityHigh   = "High - can reduce tROAS by 1-2 points"
	FlexibilityMedium = "Medium - can reduce tROAS by 0.5-1 point"
	FlexibilityLow    = "Low - maintain or increase tROAS"

	OverrideMessageHighOpportunity = "High market opportunity - consider aggressive tROAS despite moderate health"
)

// ContextAdjustment sums the season, competition and growth-stage deltas
func ContextAdjustment(m BusinessMetrics, health float64) float64 {
	adjustment := 0.0

	switch m.Season {
	case SeasonHigh:
		adjustment += PeakSeasonDelta
	case SeasonLow:
		adjustment += OffSeasonDelta
	}

	if m.MarketCompetition == CompetitionHigh && health > HighCompetitionMinimum {
		adjustment += HighCompetitionDelta
	}

	if m.BusinessStage == StageGrowth && m.CashReserveRatio > GrowthStageCashMonths {
		adjustment += GrowthStageDelta
	}

	return adjustment
}

// AffordabilityIndex measures how far gross margin sits above the minimum
// acceptable margin, as a percentage of the margin. Never negative.
func AffordabilityIndex(grossMargin float64) float64 {
	return math.Max(0, formulas.SafeDivide(grossMargin-MinimumAcceptableMargin, grossMargin, 0)*100)
}

// Flexibility maps an affordability index to advice
func Flexibility(affordability float64) string {
	switch {
	case affordability > 20:
		return FlexibilityHigh
	case affordability > 10:
		return FlexibilityMedium
	default:
		return FlexibilityLow
	}
}

// MarketOpportunityScore blends seasonality (40%), competitor weakness (30%)
// and market growth (30%) into a 0-100 score.
func MarketOpportunityScore(m BusinessMetrics) float64 {
	var seasonality float64
	switch m.Season {
	case SeasonHigh:
		seasonality = 100
	case SeasonNormal:
		seasonality = 50
	}

	var competitorWeakness float64
	switch m.MarketCompetition {
	case CompetitionLow:
		competitorWeakness = 100
	case CompetitionMedium:
		competitorWeakness = 50
	}

	var marketGrowth float64
	if m.RevenueGrowth > 0 {
		marketGrowth = math.Min(100, m.RevenueGrowth*2)
	}

	return seasonality*0.4 + competitorWeakness*0.3 + marketGrowth*0.3
}

// OpportunityTier labels a market opportunity score
func OpportunityTier(score float64) string {
	switch {
	case score > 70:
		return "High"
	case score > 40:
		return "Medium"
	default:
		return "Low"
	}
}

// Recommend scores business health and derives the recommended tROAS with
// its projections. Total and pure: the same metrics always give the same
// recommendation, and the result is always within [MinTROAS, MaxTROAS].
func Recommend(m BusinessMetrics) Recommendation {
	health := HealthScore(m)
	base := BaseTROAS(health.Total)
	adjustment := ContextAdjustment(m, health.Total)
	recommended := formulas.Clamp(base+adjustment, MinTROAS, MaxTROAS)

	affordability := AffordabilityIndex(m.GrossMargin)
	opportunity := MarketOpportunityScore(m)

	var override string
	if opportunity > OverrideOpportunity && health.Total > OverrideHealth {
		override = OverrideMessageHighOpportunity
	}

	currentSeaRevenue := m.SeaSpend * m.SeaROAS
	projectedSeaRevenue := m.SeaSpend * recommended
	// Spend is derived back from the projected revenue at the same tROAS, so
	// this is always zero.
	projectedSpendChange := formulas.SafeDivide(projectedSeaRevenue, recommended, m.SeaSpend) - m.SeaSpend
	revenueImpact := projectedSeaRevenue - currentSeaRevenue
	profitImpact := revenueImpact*(m.GrossMargin/100) - projectedSpendChange

	return Recommendation{
		RecommendedTROAS: recommended,
		CurrentTROAS:     m.CurrentTROAS,
		SuggestedChange:  recommended - m.CurrentTROAS,
		BaseTROAS:        base,
		TROASAdjustment:  adjustment,

		BusinessHealthScore:  health.Total,
		BusinessHealthStatus: StatusFor(health.Total),
		Health:               health,
		Reasoning:            reasoning(m, opportunity),

		CurrentSeaRevenue:     currentSeaRevenue,
		ProjectedSeaRevenue:   projectedSeaRevenue,
		ProjectedSpendChange:  projectedSpendChange,
		ExpectedRevenueImpact: revenueImpact,
		ProfitImpact:          profitImpact,
		MarketShareGain:       formulas.SafeDivide(revenueImpact, m.TotalRevenue, 0) * 100,

		AffordabilityIndex:     affordability,
		TROASFlexibility:       Flexibility(affordability),
		MarketOpportunityScore: opportunity,
		OverrideMessage:        override,
	}
}

// reasoning lists, in display order: revenue trend, margin against target,
// cash runway and market opportunity.
func reasoning(m BusinessMetrics, opportunity float64) []string {
	lines := make([]string, 0, 4)

	if m.RevenueGrowth > 0 {
		lines = append(lines, fmt.Sprintf("Revenue trend: +%.1f%% MoM ✓", m.RevenueGrowth))
	} else {
		lines = append(lines, fmt.Sprintf("Revenue trend: %.1f%% MoM ⚠", m.RevenueGrowth))
	}

	position := "Below"
	if m.GrossMargin > MarginTarget {
		position = "Above"
	}
	lines = append(lines, fmt.Sprintf("Margin health: %.1f%% %s target", m.GrossMargin, position))
	lines = append(lines, fmt.Sprintf("Cash position: %.1f months runway", m.CashReserveRatio))
	lines = append(lines, fmt.Sprintf("Market opportunity: %s", OpportunityTier(opportunity)))

	return lines
}
