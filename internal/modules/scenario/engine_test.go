package scenario

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_ZeroAdjustmentsReproduceBaseline(t *testing.T) {
	baseline := DefaultBaseline()

	derived := Calculate(baseline, ZeroAdjustments())

	assert.Equal(t, baseline.Revenue, derived.Revenue)
	assert.Equal(t, baseline.Spend, derived.Spend)
	assert.Equal(t, baseline.Orders, derived.Orders)
	assert.Equal(t, baseline.AOV, derived.AOV)
	assert.Equal(t, baseline.ShippingCost, derived.ShippingCost)
	assert.Equal(t, baseline.COGSPercent, derived.COGSPercent)
	assert.Equal(t, 1.0, derived.RevenueMultiplier)

	assert.InDelta(t, 4000000.0, derived.TotalRevenue, 1e-6)
	assert.InDelta(t, 2000000.0, derived.TotalSpend, 1e-6)
	assert.InDelta(t, 100000.0, derived.TotalOrders, 1e-6)
	assert.InDelta(t, 480000.0, derived.COGS, 1e-6)
	assert.InDelta(t, 3520000.0, derived.GrossProfit, 1e-6)
	assert.InDelta(t, 88.0, derived.GrossMargin, 1e-9)
	assert.InDelta(t, 3420000.0, derived.ContributionProfit, 1e-6)
	assert.InDelta(t, 1420000.0, derived.NetProfit, 1e-6)
	assert.InDelta(t, 35.5, derived.NetProfitMargin, 1e-9)
	assert.InDelta(t, 50.0, derived.MarketingCostPercent, 1e-9)
	assert.InDelta(t, 2.0, derived.TotalROAS, 1e-9)
}

func TestCalculate_ChannelROASAndCPA(t *testing.T) {
	derived := Calculate(DefaultBaseline(), ZeroAdjustments())

	wantROAS := map[Channel]float64{
		ChannelPaid:       2.0,
		ChannelOrganic:    4.0,
		ChannelCRM:        4.0,
		ChannelSocialPaid: 1.5,
		ChannelTikTok:     200000.0 / 150000.0,
		ChannelAffiliate:  300000.0 / 350000.0,
	}
	for c, want := range wantROAS {
		assert.InDelta(t, want, derived.ROAS.Get(c), 1e-9, "ROAS for %s", c)
	}

	// CPA divides each channel's spend by the total order count
	assert.InDelta(t, 10.0, derived.CPA.Get(ChannelPaid), 1e-9)
	assert.InDelta(t, 2.0, derived.CPA.Get(ChannelOrganic), 1e-9)
	assert.InDelta(t, 3.5, derived.CPA.Get(ChannelAffiliate), 1e-9)
	assert.InDelta(t, derived.TotalSpend/derived.TotalOrders, derived.CPA.Sum(), 1e-9)
}

func TestCalculate_LiteralScenario(t *testing.T) {
	baseline := BaselineSnapshot{
		Revenue:      ChannelVector{1500000, 1000000, 500000, 400000, 300000, 300000},
		Spend:        ChannelVector{750000, 500000, 250000, 200000, 150000, 150000},
		Orders:       ChannelVector{37500, 25000, 12500, 10000, 7500, 7500},
		AOV:          Uniform(40),
		ShippingCost: 100000,
		COGSPercent:  12,
	}

	derived := Calculate(baseline, ZeroAdjustments())

	assert.InDelta(t, 4000000.0, derived.TotalRevenue, 1e-6)
	assert.InDelta(t, 2.0, derived.TotalROAS, 1e-12)
	for _, c := range AllChannels {
		assert.InDelta(t, 2.0, derived.ROAS.Get(c), 1e-12, "ROAS for %s", c)
	}
	assert.InDelta(t, 100-baseline.COGSPercent, derived.GrossMargin, 1e-9)
	assert.InDelta(t, derived.GrossProfit-baseline.ShippingCost, derived.ContributionProfit, 1e-6)
	assert.InDelta(t, derived.ContributionProfit-derived.TotalSpend, derived.NetProfit, 1e-6)
}

func TestCalculate_OrdersDriveRevenueAndShipping(t *testing.T) {
	adjustments := ZeroAdjustments()
	adjustments.Orders = Uniform(10)

	derived := Calculate(DefaultBaseline(), adjustments)

	assert.InDelta(t, 1.1, derived.RevenueMultiplier, 1e-12)
	assert.InDelta(t, 4400000.0, derived.TotalRevenue, 1e-6)
	assert.InDelta(t, 2200000.0, derived.Revenue.Get(ChannelPaid), 1e-6)
	assert.InDelta(t, 110000.0, derived.TotalOrders, 1e-6)
	assert.InDelta(t, 110000.0, derived.ShippingCost, 1e-6)
	// Spend does not follow orders
	assert.InDelta(t, 2000000.0, derived.TotalSpend, 1e-6)
}

func TestCalculate_AOVUsesAggregateMultiplier(t *testing.T) {
	baseline := DefaultBaseline()
	adjustments := ZeroAdjustments()
	adjustments.AOV = adjustments.AOV.Set(ChannelPaid, 10)

	derived := Calculate(baseline, adjustments)

	// Only paid AOV moves, but every channel's revenue is scaled by the
	// aggregate orders x AOV change
	expected := (baseline.AOV.Sum() + 4) / baseline.AOV.Sum()
	assert.InDelta(t, expected, derived.RevenueMultiplier, 1e-12)
	assert.InDelta(t, 44.0, derived.AOV.Get(ChannelPaid), 1e-12)
	for _, c := range AllChannels {
		assert.InDelta(t, baseline.Revenue.Get(c)*expected, derived.Revenue.Get(c), 1e-6, "revenue for %s", c)
	}
}

func TestCalculate_RevenueAdjustmentStacksWithMultiplier(t *testing.T) {
	adjustments := ZeroAdjustments()
	adjustments.Revenue = adjustments.Revenue.Set(ChannelOrganic, 50)
	adjustments.Orders = Uniform(-10)

	derived := Calculate(DefaultBaseline(), adjustments)

	assert.InDelta(t, 0.9, derived.RevenueMultiplier, 1e-12)
	assert.InDelta(t, 800000*1.5*0.9, derived.Revenue.Get(ChannelOrganic), 1e-6)
	assert.InDelta(t, 2000000*0.9, derived.Revenue.Get(ChannelPaid), 1e-6)
}

func TestCalculate_ShippingComponentsAreAdded(t *testing.T) {
	adjustments := ZeroAdjustments()
	adjustments.ShippingCost = 10

	derived := Calculate(DefaultBaseline(), adjustments)
	assert.InDelta(t, 110000.0, derived.ShippingCost, 1e-6)

	// Both components apply together: 100k * 1.2 (orders) + 100k * 0.1 (manual)
	adjustments.Orders = Uniform(20)
	derived = Calculate(DefaultBaseline(), adjustments)
	assert.InDelta(t, 130000.0, derived.ShippingCost, 1e-6)
}

func TestCalculate_COGSPercentIsRelative(t *testing.T) {
	adjustments := ZeroAdjustments()
	adjustments.COGSPercent = 50

	derived := Calculate(DefaultBaseline(), adjustments)

	assert.InDelta(t, 18.0, derived.COGSPercent, 1e-12)
	assert.InDelta(t, 720000.0, derived.COGS, 1e-6)
	assert.InDelta(t, 82.0, derived.GrossMargin, 1e-9)
}

func TestCalculate_SpendAdjustmentPerChannel(t *testing.T) {
	adjustments := ZeroAdjustments()
	adjustments.MarketingSpend = adjustments.MarketingSpend.Set(ChannelPaid, -50)

	derived := Calculate(DefaultBaseline(), adjustments)

	assert.InDelta(t, 500000.0, derived.Spend.Get(ChannelPaid), 1e-6)
	assert.InDelta(t, 4.0, derived.ROAS.Get(ChannelPaid), 1e-9)
	assert.InDelta(t, 1500000.0, derived.TotalSpend, 1e-6)
	assert.InDelta(t, 1920000.0, derived.NetProfit, 1e-6)
}

func TestCalculate_ZeroBaselineIsSafe(t *testing.T) {
	tests := []struct {
		name        string
		baseline    BaselineSnapshot
		adjustments AdjustmentSet
	}{
		{"all zero", BaselineSnapshot{}, ZeroAdjustments()},
		{"zero with adjustments", BaselineSnapshot{ShippingCost: 5000, COGSPercent: 20}, presets[0].Adjustments},
		{"zero revenue with spend", BaselineSnapshot{Spend: Uniform(1000), ShippingCost: 100}, ZeroAdjustments()},
		{"orders wiped out", DefaultBaseline(), AdjustmentSet{Orders: Uniform(-100)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			derived := Calculate(tt.baseline, tt.adjustments)
			requireFinite(t, derived)

			if derived.TotalRevenue == 0 {
				assert.Equal(t, 0.0, derived.GrossMargin)
				assert.Equal(t, 0.0, derived.NetProfitMargin)
				assert.Equal(t, 0.0, derived.MarketingCostPercent)
			}
		})
	}
}

func TestCalculate_ZeroSpendChannelHasZeroROAS(t *testing.T) {
	baseline := DefaultBaseline()
	baseline.Spend = baseline.Spend.Set(ChannelOrganic, 0)

	derived := Calculate(baseline, ZeroAdjustments())

	assert.Equal(t, 0.0, derived.ROAS.Get(ChannelOrganic))
	assert.InDelta(t, 2.0, derived.ROAS.Get(ChannelPaid), 1e-9)
}

func TestCalculate_ZeroOrdersKeepRevenueAdjustments(t *testing.T) {
	baseline := DefaultBaseline()
	baseline.Orders = ChannelVector{}
	adjustments := AdjustmentSet{Revenue: Uniform(10)}

	derived := Calculate(baseline, adjustments)

	assert.Equal(t, 1.0, derived.RevenueMultiplier)
	assert.InDelta(t, 4400000.0, derived.TotalRevenue, 1e-6)
	assert.Equal(t, baseline.ShippingCost, derived.ShippingCost)
	assert.Equal(t, ChannelVector{}, derived.CPA)
}

func TestCalculate_DoesNotMutateInputs(t *testing.T) {
	baseline := DefaultBaseline()
	adjustments := presets[2].Adjustments
	baselineCopy, adjustmentsCopy := baseline, adjustments

	_ = Calculate(baseline, adjustments)

	assert.Equal(t, baselineCopy, baseline)
	assert.Equal(t, adjustmentsCopy, adjustments)
}

func TestDerive(t *testing.T) {
	baseline := DefaultBaseline()
	assert.Equal(t, Calculate(baseline, ZeroAdjustments()), Derive(baseline))
}

func requireFinite(t *testing.T, d DerivedSnapshot) {
	t.Helper()

	scalars := map[string]float64{
		"shipping_cost":          d.ShippingCost,
		"cogs_percent":           d.COGSPercent,
		"cogs":                   d.COGS,
		"gross_profit":           d.GrossProfit,
		"gross_margin":           d.GrossMargin,
		"contribution_profit":    d.ContributionProfit,
		"net_profit":             d.NetProfit,
		"net_profit_margin":      d.NetProfitMargin,
		"marketing_cost_percent": d.MarketingCostPercent,
		"total_revenue":          d.TotalRevenue,
		"total_spend":            d.TotalSpend,
		"total_orders":           d.TotalOrders,
		"total_roas":             d.TotalROAS,
		"revenue_multiplier":     d.RevenueMultiplier,
	}
	for name, v := range scalars {
		require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "%s is not finite: %v", name, v)
	}

	vectors := map[string]ChannelVector{
		"revenue": d.Revenue, "spend": d.Spend, "orders": d.Orders,
		"aov": d.AOV, "roas": d.ROAS, "cpa": d.CPA,
	}
	for name, vec := range vectors {
		for _, c := range AllChannels {
			v := vec.Get(c)
			require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "%s[%s] is not finite: %v", name, c, v)
		}
	}
}
