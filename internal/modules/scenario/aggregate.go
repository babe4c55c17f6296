package scenario

import (
	"math"

	"github.com/aristath/scenario-planner/pkg/formulas"
)

// AggregateView is the single-number view of a snapshot. It is always a
// projection of the channel vectors, never computed separately.
type AggregateView struct {
	Revenue      float64 `json:"revenue" yaml:"revenue"`
	Spend        float64 `json:"spend" yaml:"spend"`
	Orders       float64 `json:"orders" yaml:"orders"`
	AverageAOV   float64 `json:"average_aov" yaml:"average_aov"` // unweighted mean across channels
	ROAS         float64 `json:"roas" yaml:"roas"`
	CPA          float64 `json:"cpa" yaml:"cpa"`
	ShippingCost float64 `json:"shipping_cost" yaml:"shipping_cost"`
	COGSPercent  float64 `json:"cogs_percent" yaml:"cogs_percent"`
	NetProfit    float64 `json:"net_profit" yaml:"net_profit"`
}

// Aggregate projects a derived snapshot onto channel totals
func Aggregate(d DerivedSnapshot) AggregateView {
	return AggregateView{
		Revenue:      d.TotalRevenue,
		Spend:        d.TotalSpend,
		Orders:       d.TotalOrders,
		AverageAOV:   d.AOV.Sum() / ChannelCount,
		ROAS:         d.TotalROAS,
		CPA:          formulas.SafeDivide(d.TotalSpend, d.TotalOrders, 0),
		ShippingCost: d.ShippingCost,
		COGSPercent:  d.COGSPercent,
		NetProfit:    d.NetProfit,
	}
}

// Metric names used in comparisons and exports
const (
	MetricRevenue              = "Revenue"
	MetricMarketingSpend       = "Marketing Spend"
	MetricOrders               = "Orders"
	MetricAverageAOV           = "Average Order Value"
	MetricShippingCost         = "Shipping Cost"
	MetricCOGSPercent          = "COGS %"
	MetricCOGS                 = "COGS"
	MetricGrossProfit          = "Gross Profit"
	MetricGrossMargin          = "Gross Margin %"
	MetricContributionProfit   = "Contribution Profit"
	MetricNetProfit            = "Net Profit"
	MetricNetProfitMargin      = "Net Profit Margin %"
	MetricMarketingCostPercent = "Marketing Cost %"
	MetricROAS                 = "ROAS"
	MetricCPA                  = "CPA"
)

// MetricDelta compares one metric between the baseline and the scenario.
// Values are raw; colour or threshold decisions belong to the caller.
type MetricDelta struct {
	Metric        string  `json:"metric" yaml:"metric"`
	Baseline      float64 `json:"baseline" yaml:"baseline"`
	Adjusted      float64 `json:"adjusted" yaml:"adjusted"`
	Change        float64 `json:"change" yaml:"change"`
	PercentChange float64 `json:"percent_change" yaml:"percent_change"`
}

// Comparison holds the baseline and adjusted snapshots side by side
type Comparison struct {
	Baseline     DerivedSnapshot `json:"baseline" yaml:"baseline"`
	Adjusted     DerivedSnapshot `json:"adjusted" yaml:"adjusted"`
	Adjustments  AdjustmentSet   `json:"adjustments" yaml:"adjustments"`
	ProfitImpact float64         `json:"profit_impact" yaml:"profit_impact"`
	Deltas       []MetricDelta   `json:"deltas" yaml:"deltas"`
}

// Compare derives the baseline as-is and under adjustments, and lists the
// change of every headline metric.
func Compare(baseline BaselineSnapshot, adjustments AdjustmentSet) Comparison {
	before := Derive(baseline)
	after := Calculate(baseline, adjustments)

	b, a := Aggregate(before), Aggregate(after)
	pairs := []struct {
		metric          string
		baseline, value float64
	}{
		{MetricRevenue, b.Revenue, a.Revenue},
		{MetricMarketingSpend, b.Spend, a.Spend},
		{MetricOrders, b.Orders, a.Orders},
		{MetricAverageAOV, b.AverageAOV, a.AverageAOV},
		{MetricShippingCost, before.ShippingCost, after.ShippingCost},
		{MetricCOGSPercent, before.COGSPercent, after.COGSPercent},
		{MetricCOGS, before.COGS, after.COGS},
		{MetricGrossProfit, before.GrossProfit, after.GrossProfit},
		{MetricGrossMargin, before.GrossMargin, after.GrossMargin},
		{MetricContributionProfit, before.ContributionProfit, after.ContributionProfit},
		{MetricNetProfit, before.NetProfit, after.NetProfit},
		{MetricNetProfitMargin, before.NetProfitMargin, after.NetProfitMargin},
		{MetricMarketingCostPercent, before.MarketingCostPercent, after.MarketingCostPercent},
		{MetricROAS, b.ROAS, a.ROAS},
		{MetricCPA, b.CPA, a.CPA},
	}

	deltas := make([]MetricDelta, 0, len(pairs))
	for _, p := range pairs {
		change := p.value - p.baseline
		deltas = append(deltas, MetricDelta{
			Metric:        p.metric,
			Baseline:      p.baseline,
			Adjusted:      p.value,
			Change:        change,
			PercentChange: formulas.SafeDivide(change, math.Abs(p.baseline), 0) * 100,
		})
	}

	return Comparison{
		Baseline:     before,
		Adjusted:     after,
		Adjustments:  adjustments,
		ProfitImpact: after.NetProfit - before.NetProfit,
		Deltas:       deltas,
	}
}

// Delta looks up a metric in the comparison
func (c Comparison) Delta(metric string) (MetricDelta, bool) {
	for _, d := range c.Deltas {
		if d.Metric == metric {
			return d, true
		}
	}
	return MetricDelta{}, false
}
