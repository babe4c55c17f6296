package scenario

import "github.com/aristath/scenario-planner/pkg/formulas"

// Calculate applies adjustments to baseline and derives every KPI.
//
// It is a total, pure function: no state, no I/O, and every division whose
// denominator may be zero goes through formulas.SafeDivide, so finite input
// never yields NaN or Inf.
//
// Steps:
//  1. orders and AOV are adjusted per channel
//  2. revenue is adjusted per channel, then scaled by the aggregate
//     orders x AOV change (channel totals, not per-channel ratios)
//  3. spend is adjusted per channel
//  4. shipping = volume-linked cost + manual delta
//  5. COGS percent is adjusted as a percentage of itself
//  6. KPIs are derived from the channel totals
func Calculate(baseline BaselineSnapshot, adjustments AdjustmentSet) DerivedSnapshot {
	orders := baseline.Orders.Adjust(adjustments.Orders)
	aov := baseline.AOV.Adjust(adjustments.AOV)

	totalOriginalOrders := baseline.Orders.Sum()
	totalAdjustedOrders := orders.Sum()

	// Without a baseline order/AOV volume there is nothing to correlate with,
	// so the multiplier falls back to 1 instead of wiping revenue.
	revenueMultiplier := formulas.SafeDivide(
		totalAdjustedOrders*aov.Sum(),
		totalOriginalOrders*baseline.AOV.Sum(),
		1,
	)
	revenue := baseline.Revenue.Adjust(adjustments.Revenue).Scale(revenueMultiplier)
	spend := baseline.Spend.Adjust(adjustments.MarketingSpend)

	// The manual delta is added on top of the volume-linked cost.
	// TODO: confirm with finance whether a manual shipping change should replace the volume-linked cost.
	orderBasedShipping := baseline.ShippingCost * formulas.SafeDivide(totalAdjustedOrders, totalOriginalOrders, 1)
	manualShipping := baseline.ShippingCost * (adjustments.ShippingCost / 100)
	shippingCost := orderBasedShipping + manualShipping

	cogsPercent := baseline.COGSPercent * (1 + adjustments.COGSPercent/100)

	totalRevenue := revenue.Sum()
	totalSpend := spend.Sum()

	cogs := totalRevenue * (cogsPercent / 100)
	grossProfit := totalRevenue - cogs
	contributionProfit := grossProfit - shippingCost
	netProfit := contributionProfit - totalSpend

	return DerivedSnapshot{
		Revenue:      revenue,
		Spend:        spend,
		Orders:       orders,
		AOV:          aov,
		ShippingCost: shippingCost,
		COGSPercent:  cogsPercent,

		ROAS: revenue.DivideBy(spend),
		CPA: spend.Map(func(_ Channel, value float64) float64 {
			return formulas.SafeDivide(value, totalAdjustedOrders, 0)
		}),

		COGS:                 cogs,
		GrossProfit:          grossProfit,
		GrossMargin:          formulas.SafeDivide(grossProfit, totalRevenue, 0) * 100,
		ContributionProfit:   contributionProfit,
		NetProfit:            netProfit,
		NetProfitMargin:      formulas.SafeDivide(netProfit, totalRevenue, 0) * 100,
		MarketingCostPercent: formulas.SafeDivide(totalSpend, totalRevenue, 0) * 100,

		TotalRevenue:      totalRevenue,
		TotalSpend:        totalSpend,
		TotalOrders:       totalAdjustedOrders,
		TotalROAS:         formulas.SafeDivide(totalRevenue, totalSpend, 0),
		RevenueMultiplier: revenueMultiplier,
	}
}

// Derive computes the KPIs of a baseline as-is
func Derive(baseline BaselineSnapshot) DerivedSnapshot {
	return Calculate(baseline, ZeroAdjustments())
}
