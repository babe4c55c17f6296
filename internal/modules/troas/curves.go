package troas

import (
	"fmt"

	"github.com/aristath/scenario-planner/pkg/formulas"
)

// CurveVariant selects the business outlook a profit curve is drawn for
type CurveVariant string

const (
	CurveCurrent  CurveVariant = "current"
	CurveImproved CurveVariant = "improved"
	CurveDeclined CurveVariant = "declined"
)

// ParseCurveVariant validates a variant name
func ParseCurveVariant(name string) (CurveVariant, error) {
	switch v := CurveVariant(name); v {
	case CurveCurrent, CurveImproved, CurveDeclined:
		return v, nil
	}
	return "", fmt.Errorf("unknown curve variant %q (must be current, improved or declined)", name)
}

// Curve ranges. Points are evenly spaced 0.1 apart.
const (
	ProfitCurveMin     = 1.0
	ProfitCurveMax     = 8.0
	ProfitCurvePoints  = 71
	EfficiencyCurveMin = 1.0
	EfficiencyCurveMax = 6.0
	EfficiencyPoints   = 51
)

// ProfitCurvePoint is the profit at one tROAS target
type ProfitCurvePoint struct {
	TROAS   float64 `json:"troas" yaml:"troas"`
	Profit  float64 `json:"profit" yaml:"profit"`
	Revenue float64 `json:"revenue" yaml:"revenue"`
	Spend   float64 `json:"spend" yaml:"spend"`
}

// EfficiencyPoint is the revenue per unit of spend at one tROAS target
type EfficiencyPoint struct {
	TROAS      float64 `json:"troas" yaml:"troas"`
	Revenue    float64 `json:"revenue" yaml:"revenue"`
	Efficiency float64 `json:"efficiency" yaml:"efficiency"`
}

// ProfitCurve projects operating profit across tROAS targets 1.0..8.0.
//
// The improved variant assumes +10% revenue, +10% margin and -10% opex; the
// declined variant the mirror image. SEA revenue at each target replaces the
// SEA spend inside total revenue.
func ProfitCurve(m BusinessMetrics, variant CurveVariant) []ProfitCurvePoint {
	revenue := m.TotalRevenue
	margin := m.GrossMargin
	opex := m.OperatingExpenseRatio

	switch variant {
	case CurveImproved:
		revenue *= 1.1
		margin *= 1.1
		opex *= 0.9
	case CurveDeclined:
		revenue *= 0.9
		margin *= 0.9
		opex *= 1.1
	}

	targets := formulas.Span(ProfitCurveMin, ProfitCurveMax, ProfitCurvePoints)
	points := make([]ProfitCurvePoint, 0, len(targets))
	for _, troas := range targets {
		seaRevenue := m.SeaSpend * troas
		totalRevenue := revenue + seaRevenue - m.SeaSpend
		grossProfit := totalRevenue * (margin / 100)
		operatingExpenses := totalRevenue * (opex / 100)

		points = append(points, ProfitCurvePoint{
			TROAS:   formulas.Round(troas, 1),
			Profit:  formulas.Round(grossProfit-operatingExpenses, 2),
			Revenue: formulas.Round(totalRevenue, 2),
			Spend:   formulas.Round(m.SeaSpend, 2),
		})
	}

	return points
}

// ProfitAt returns the first curve point at or above the target tROAS
func ProfitAt(curve []ProfitCurvePoint, troas float64) (ProfitCurvePoint, bool) {
	for _, p := range curve {
		if p.TROAS >= troas {
			return p, true
		}
	}
	return ProfitCurvePoint{}, false
}

// EfficiencyCurve returns SEA revenue and revenue per spent unit for tROAS
// targets 1.0..6.0
func EfficiencyCurve(m BusinessMetrics) []EfficiencyPoint {
	targets := formulas.Span(EfficiencyCurveMin, EfficiencyCurveMax, EfficiencyPoints)
	points := make([]EfficiencyPoint, 0, len(targets))
	for _, troas := range targets {
		revenue := m.SeaSpend * troas
		points = append(points, EfficiencyPoint{
			TROAS:      formulas.Round(troas, 1),
			Revenue:    formulas.Round(revenue, 2),
			Efficiency: formulas.Round(formulas.SafeDivide(revenue, m.SeaSpend*troas, 0), 3),
		})
	}
	return points
}

// Band groups tROAS targets for display
type Band string

const (
	BandAggressive   Band = "aggressive"
	BandBalanced     Band = "balanced"
	BandConservative Band = "conservative"
)

// BandFor classifies a tROAS target
func BandFor(troas float64) Band {
	switch {
	case troas <= 2.5:
		return BandAggressive
	case troas <= 4.0:
		return BandBalanced
	default:
		return BandConservative
	}
}

// MatrixCell is one cell of the margin x growth tROAS matrix
type MatrixCell struct {
	GrossMargin   float64 `json:"gross_margin" yaml:"gross_margin"`
	RevenueGrowth float64 `json:"revenue_growth" yaml:"revenue_growth"`
	Health        float64 `json:"health" yaml:"health"`
	TROAS         float64 `json:"troas" yaml:"troas"`
	Band          Band    `json:"band" yaml:"band"`
}

// Matrix ranges (inclusive, step 2)
const (
	MatrixMarginMin = 0
	MatrixMarginMax = 40
	MatrixGrowthMin = -20
	MatrixGrowthMax = 50
	MatrixStep      = 2
)

// Matrix tabulates the base tROAS tier over gross margin 0..40% and revenue
// growth -20..50%, using a margin/growth-only health estimate (50/50 blend).
// Cells are ordered by margin, then growth.
func Matrix() []MatrixCell {
	cells := make([]MatrixCell, 0, 21*36)
	for margin := MatrixMarginMin; margin <= MatrixMarginMax; margin += MatrixStep {
		for growth := MatrixGrowthMin; growth <= MatrixGrowthMax; growth += MatrixStep {
			health := formulas.Clamp0100(
				(float64(margin)/MarginForFullScore)*50 +
					((float64(growth)-GrowthFloor)/GrowthRange)*50,
			)
			troas := BaseTROAS(health)

			cells = append(cells, MatrixCell{
				GrossMargin:   float64(margin),
				RevenueGrowth: float64(growth),
				Health:        health,
				TROAS:         troas,
				Band:          BandFor(troas),
			})
		}
	}
	return cells
}
