package report

import (
	"fmt"

	"github.com/aristath/scenario-planner/internal/modules/troas"
	"github.com/charmbracelet/lipgloss"
)

const healthBarWidth = 20

// Recommendation renders the recommended tROAS with the health breakdown,
// reasoning and projected impact.
func (r *Renderer) Recommendation(rec troas.Recommendation) error {
	health := r.style().Foreground(r.theme.HealthColor(rec.BusinessHealthScore))

	headline := fmt.Sprintf("Recommended tROAS %s  (current %s, change %s)",
		r.style().Bold(true).Render(r.Number(rec.RecommendedTROAS, 2)),
		r.Number(rec.CurrentTROAS, 2),
		signed(r.Number(rec.SuggestedChange, 2), rec.SuggestedChange),
	)
	healthLine := fmt.Sprintf("Business health %s/100 %s %s",
		r.Number(rec.BusinessHealthScore, 1),
		health.Render(scoreBar(rec.BusinessHealthScore, healthBarWidth)),
		health.Bold(true).Render(string(rec.BusinessHealthStatus)),
	)

	breakdown := r.newTable("Factor", "Score")
	breakdown.Rows(
		[]string{"Revenue growth", r.Number(rec.Health.RevenueGrowth, 1)},
		[]string{"Profit margin", r.Number(rec.Health.ProfitMargin, 1)},
		[]string{"Cash reserve", r.Number(rec.Health.CashReserve, 1)},
		[]string{"Inventory turnover", r.Number(rec.Health.InventoryTurnover, 1)},
		[]string{"Base tROAS", r.Number(rec.BaseTROAS, 1)},
		[]string{"Context adjustment", signed(r.Number(rec.TROASAdjustment, 1), rec.TROASAdjustment)},
	)

	projection := r.newTable("Projection", "Value")
	projection.Rows(
		[]string{"Current SEA revenue", r.Money(rec.CurrentSeaRevenue)},
		[]string{"Projected SEA revenue", r.Money(rec.ProjectedSeaRevenue)},
		[]string{"Spend change", signed(r.Money(rec.ProjectedSpendChange), rec.ProjectedSpendChange)},
		[]string{"Revenue impact", signed(r.Money(rec.ExpectedRevenueImpact), rec.ExpectedRevenueImpact)},
		[]string{"Profit impact", signed(r.Money(rec.ProfitImpact), rec.ProfitImpact)},
		[]string{"Market share gain", signed(r.Percent(rec.MarketShareGain), rec.MarketShareGain)},
		[]string{"Affordability index", r.Number(rec.AffordabilityIndex, 1)},
		[]string{"Market opportunity", r.Number(rec.MarketOpportunityScore, 1)},
	)

	blocks := []string{r.title("tROAS recommendation"), headline, healthLine, breakdown.Render()}
	for _, line := range rec.Reasoning {
		blocks = append(blocks, "  • "+line)
	}
	blocks = append(blocks, projection.Render(), "Flexibility: "+rec.TROASFlexibility)
	if rec.OverrideMessage != "" {
		blocks = append(blocks, r.style().Foreground(r.theme.Info).Render("Note: "+rec.OverrideMessage))
	}

	return r.write(blocks...)
}

// Alerts renders smart alerts, or a single line when there are none
func (r *Renderer) Alerts(alerts []troas.Alert) error {
	if len(alerts) == 0 {
		return r.write(r.title("Alerts"), r.style().Foreground(r.theme.Muted).Render("No alerts"))
	}

	blocks := []string{r.title("Alerts")}
	for _, a := range alerts {
		color := r.theme.Info
		switch a.Type {
		case troas.AlertOpportunity:
			color = r.theme.Positive
		case troas.AlertWarning:
			color = r.theme.Warning
		}

		tag := fmt.Sprintf("[%s] %s", a.Priority, a.Type)
		blocks = append(blocks,
			r.style().Foreground(color).Bold(true).Render(tag)+" "+a.Title,
			"    "+a.Message,
			"    → "+a.Action,
		)
	}
	return r.write(blocks...)
}

// ProfitCurve renders a profit curve, marking the first points at or above
// the current and recommended targets.
func (r *Renderer) ProfitCurve(variant troas.CurveVariant, points []troas.ProfitCurvePoint, current, recommended float64) error {
	currentPoint, hasCurrent := troas.ProfitAt(points, current)
	recommendedPoint, hasRecommended := troas.ProfitAt(points, recommended)

	t := r.newTable("tROAS", "Revenue", "Profit", "")
	for _, p := range points {
		var marker string
		switch {
		case hasRecommended && p == recommendedPoint:
			marker = r.style().Foreground(r.theme.Positive).Render("◀ recommended")
		case hasCurrent && p == currentPoint:
			marker = r.style().Foreground(r.theme.Muted).Render("◀ current")
		}
		t.Row(r.Number(p.TROAS, 1), r.Money(p.Revenue), r.Money(p.Profit), marker)
	}

	return r.write(r.title(fmt.Sprintf("Profit curve (%s)", variant)), t.Render())
}

// Matrix renders the tROAS matrix with margin rows and growth columns
func (r *Renderer) Matrix(cells []troas.MatrixCell) error {
	var growths, margins []float64
	rows := map[float64][]troas.MatrixCell{}
	for _, c := range cells {
		if _, ok := rows[c.GrossMargin]; !ok {
			margins = append(margins, c.GrossMargin)
		}
		rows[c.GrossMargin] = append(rows[c.GrossMargin], c)
		if c.GrossMargin == cells[0].GrossMargin {
			growths = append(growths, c.RevenueGrowth)
		}
	}

	headers := []string{"Margin \\ Growth"}
	for _, g := range growths {
		headers = append(headers, r.Number(g, 0))
	}
	t := r.newTable(headers...)

	bandColors := map[troas.Band]lipgloss.Color{
		troas.BandAggressive:   r.theme.Positive,
		troas.BandBalanced:     r.theme.Warning,
		troas.BandConservative: r.theme.Negative,
	}
	for _, m := range margins {
		row := []string{r.Percent(m)}
		for _, c := range rows[m] {
			style := r.style().Foreground(bandColors[c.Band])
			row = append(row, style.Render(r.Number(c.TROAS, 1)))
		}
		t.Row(row...)
	}

	return r.write(r.title("tROAS matrix"), t.Render())
}

// EfficiencyCurve renders SEA revenue and revenue per spent unit by target
func (r *Renderer) EfficiencyCurve(points []troas.EfficiencyPoint) error {
	t := r.newTable("tROAS", "SEA revenue", "Efficiency")
	for _, p := range points {
		t.Row(r.Number(p.TROAS, 1), r.Money(p.Revenue), r.p.Sprintf("%.3f", p.Efficiency))
	}
	return r.write(r.title("Efficiency curve"), t.Render())
}
