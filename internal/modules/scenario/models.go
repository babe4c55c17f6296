// Package scenario derives an adjusted financial state from a per-channel
// baseline and a set of percentage adjustments.
package scenario

// BaselineSnapshot is the current/actual state of the business, per channel.
// The engine only reads it.
type BaselineSnapshot struct {
	Revenue      ChannelVector `json:"revenue" yaml:"revenue"`
	Spend        ChannelVector `json:"spend" yaml:"spend"`
	Orders       ChannelVector `json:"orders" yaml:"orders"`
	AOV          ChannelVector `json:"aov" yaml:"aov"`
	ShippingCost float64       `json:"shipping_cost" yaml:"shipping_cost"`
	COGSPercent  float64       `json:"cogs_percent" yaml:"cogs_percent"` // 0-100
}

// AdjustmentSet holds what-if deltas. Every value is a signed percentage
// (e.g. -20 means "20% less").
type AdjustmentSet struct {
	Revenue        ChannelVector `json:"revenue" yaml:"revenue"`
	Orders         ChannelVector `json:"orders" yaml:"orders"`
	AOV            ChannelVector `json:"aov" yaml:"aov"`
	MarketingSpend ChannelVector `json:"marketing_spend" yaml:"marketing_spend"`
	ShippingCost   float64       `json:"shipping_cost" yaml:"shipping_cost"`
	COGSPercent    float64       `json:"cogs_percent" yaml:"cogs_percent"`
}

// IsZero reports whether the set leaves the baseline untouched
func (a AdjustmentSet) IsZero() bool {
	return a == AdjustmentSet{}
}

// DerivedSnapshot is the adjusted state plus its KPIs. It is recomputed on
// every call and never mutated.
type DerivedSnapshot struct {
	Revenue      ChannelVector `json:"revenue" yaml:"revenue"`
	Spend        ChannelVector `json:"spend" yaml:"spend"`
	Orders       ChannelVector `json:"orders" yaml:"orders"`
	AOV          ChannelVector `json:"aov" yaml:"aov"`
	ShippingCost float64       `json:"shipping_cost" yaml:"shipping_cost"`
	COGSPercent  float64       `json:"cogs_percent" yaml:"cogs_percent"`

	ROAS ChannelVector `json:"roas" yaml:"roas"`
	CPA  ChannelVector `json:"cpa" yaml:"cpa"` // channel spend / total orders

	COGS                 float64 `json:"cogs" yaml:"cogs"`
	GrossProfit          float64 `json:"gross_profit" yaml:"gross_profit"`
	GrossMargin          float64 `json:"gross_margin" yaml:"gross_margin"` // %
	ContributionProfit   float64 `json:"contribution_profit" yaml:"contribution_profit"`
	NetProfit            float64 `json:"net_profit" yaml:"net_profit"`
	NetProfitMargin      float64 `json:"net_profit_margin" yaml:"net_profit_margin"`           // %
	MarketingCostPercent float64 `json:"marketing_cost_percent" yaml:"marketing_cost_percent"` // %

	// Channel-summed totals, the aggregate view of the snapshot
	TotalRevenue      float64 `json:"total_revenue" yaml:"total_revenue"`
	TotalSpend        float64 `json:"total_spend" yaml:"total_spend"`
	TotalOrders       float64 `json:"total_orders" yaml:"total_orders"`
	TotalROAS         float64 `json:"total_roas" yaml:"total_roas"`
	RevenueMultiplier float64 `json:"revenue_multiplier" yaml:"revenue_multiplier"`
}

// ZeroAdjustments returns the reset state: every slider at 0%
func ZeroAdjustments() AdjustmentSet {
	return AdjustmentSet{}
}

// DefaultBaseline returns the sample business used when no data is supplied
func DefaultBaseline() BaselineSnapshot {
	return BaselineSnapshot{
		Revenue:      ChannelVector{2000000, 800000, 400000, 300000, 200000, 300000},
		Spend:        ChannelVector{1000000, 200000, 100000, 200000, 150000, 350000},
		Orders:       ChannelVector{50000, 20000, 10000, 8000, 6000, 6000},
		AOV:          ChannelVector{40, 40, 40, 37.5, 33.33, 50},
		ShippingCost: 100000,
		COGSPercent:  12,
	}
}
