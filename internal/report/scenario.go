package report

import (
	"github.com/aristath/scenario-planner/internal/modules/scenario"
)

type valueKind int

const (
	kindMoney valueKind = iota
	kindCount
	kindPercent
	kindRatio
)

var metricKinds = map[string]valueKind{
	scenario.MetricOrders:               kindCount,
	scenario.MetricCOGSPercent:          kindPercent,
	scenario.MetricGrossMargin:          kindPercent,
	scenario.MetricNetProfitMargin:      kindPercent,
	scenario.MetricMarketingCostPercent: kindPercent,
	scenario.MetricROAS:                 kindRatio,
}

func (r *Renderer) format(kind valueKind, v float64) string {
	switch kind {
	case kindCount:
		return r.Number(v, 0)
	case kindPercent:
		return r.Percent(v)
	case kindRatio:
		return r.Ratio(v)
	default:
		return r.Money(v)
	}
}

// Comparison renders the headline metrics of a scenario against its baseline.
// Percentage metrics show their change in points.
func (r *Renderer) Comparison(c scenario.Comparison) error {
	t := r.newTable("Metric", "Baseline", "Scenario", "Change", "Change %")

	for _, d := range c.Deltas {
		kind := metricKinds[d.Metric]
		change := signed(r.format(kind, d.Change), d.Change)
		if kind == kindPercent {
			change = signed(r.Number(d.Change, 1), d.Change) + " pts"
		}
		t.Row(
			d.Metric,
			r.format(kind, d.Baseline),
			r.format(kind, d.Adjusted),
			r.style().Foreground(r.theme.ChangeColor(d.Change)).Render(change),
			signed(r.Percent(d.PercentChange), d.PercentChange),
		)
	}

	impact := r.style().Bold(true).Foreground(r.theme.ChangeColor(c.ProfitImpact)).
		Render(signed(r.Money(c.ProfitImpact), c.ProfitImpact))

	return r.write(r.title("Scenario"), t.Render(), "Profit impact: "+impact)
}

// Channels renders the per-channel figures of a snapshot
func (r *Renderer) Channels(d scenario.DerivedSnapshot) error {
	t := r.newTable("Channel", "Revenue", "Spend", "Orders", "AOV", "ROAS", "CPA")

	for _, c := range scenario.AllChannels {
		t.Row(
			c.Label(),
			r.Money(d.Revenue.Get(c)),
			r.Money(d.Spend.Get(c)),
			r.Number(d.Orders.Get(c), 0),
			r.Money(d.AOV.Get(c)),
			r.Ratio(d.ROAS.Get(c)),
			r.Money(d.CPA.Get(c)),
		)
	}

	agg := scenario.Aggregate(d)
	t.Row(
		"Total",
		r.Money(agg.Revenue),
		r.Money(agg.Spend),
		r.Number(agg.Orders, 0),
		r.Money(agg.AverageAOV),
		r.Ratio(agg.ROAS),
		r.Money(agg.CPA),
	)

	return r.write(r.title("Channels"), t.Render())
}

// Snapshot renders a snapshot's profit chain
func (r *Renderer) Snapshot(d scenario.DerivedSnapshot) error {
	t := r.newTable("Metric", "Value")
	t.Rows(
		[]string{scenario.MetricRevenue, r.Money(d.TotalRevenue)},
		[]string{scenario.MetricCOGS, r.Money(d.COGS)},
		[]string{scenario.MetricGrossProfit, r.Money(d.GrossProfit)},
		[]string{scenario.MetricGrossMargin, r.Percent(d.GrossMargin)},
		[]string{scenario.MetricShippingCost, r.Money(d.ShippingCost)},
		[]string{scenario.MetricContributionProfit, r.Money(d.ContributionProfit)},
		[]string{scenario.MetricMarketingSpend, r.Money(d.TotalSpend)},
		[]string{scenario.MetricNetProfit, r.Money(d.NetProfit)},
		[]string{scenario.MetricNetProfitMargin, r.Percent(d.NetProfitMargin)},
		[]string{scenario.MetricMarketingCostPercent, r.Percent(d.MarketingCostPercent)},
		[]string{scenario.MetricROAS, r.Ratio(d.TotalROAS)},
	)
	return r.write(r.title("Profit"), t.Render())
}

// Presets lists the scenario presets
func (r *Renderer) Presets(presets []scenario.Preset) error {
	t := r.textTable("Preset", "Slug", "Description")
	for _, p := range presets {
		t.Row(p.Name, p.Slug, p.Description)
	}
	return r.write(r.title("Presets"), t.Render())
}
