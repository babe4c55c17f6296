package troas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfitCurve_Current(t *testing.T) {
	curve := ProfitCurve(DefaultBusinessMetrics(), CurveCurrent)
	require.Len(t, curve, ProfitCurvePoints)

	first, last := curve[0], curve[len(curve)-1]
	assert.Equal(t, 1.0, first.TROAS)
	assert.Equal(t, 8.0, last.TROAS)

	// 4M revenue, SEA revenue replaces SEA spend, 30% margin less 15% opex
	assert.InDelta(t, 600000.0, first.Profit, 0.01)
	assert.InDelta(t, 4000000.0, first.Revenue, 0.01)
	assert.InDelta(t, 1650000.0, last.Profit, 0.01)
	assert.InDelta(t, 11000000.0, last.Revenue, 0.01)
	assert.Equal(t, 1000000.0, first.Spend)

	for i := 1; i < len(curve); i++ {
		assert.InDelta(t, 0.1, curve[i].TROAS-curve[i-1].TROAS, 1e-9, "uneven step at %d", i)
	}
}

func TestProfitCurve_Variants(t *testing.T) {
	m := DefaultBusinessMetrics()
	current := ProfitCurve(m, CurveCurrent)
	improved := ProfitCurve(m, CurveImproved)
	declined := ProfitCurve(m, CurveDeclined)

	require.Len(t, improved, ProfitCurvePoints)
	require.Len(t, declined, ProfitCurvePoints)

	assert.InDelta(t, 858000.0, improved[0].Profit, 0.01)
	assert.InDelta(t, 2223000.0, improved[len(improved)-1].Profit, 0.01)
	assert.InDelta(t, 1113000.0, declined[len(declined)-1].Profit, 0.01)

	for i := range current {
		assert.Greater(t, improved[i].Profit, current[i].Profit)
		assert.Less(t, declined[i].Profit, current[i].Profit)
	}
}

func TestParseCurveVariant(t *testing.T) {
	for _, name := range []string{"current", "improved", "declined"} {
		v, err := ParseCurveVariant(name)
		require.NoError(t, err)
		assert.Equal(t, CurveVariant(name), v)
	}

	_, err := ParseCurveVariant("optimistic")
	assert.Error(t, err)
}

func TestProfitAt(t *testing.T) {
	curve := ProfitCurve(DefaultBusinessMetrics(), CurveCurrent)

	p, ok := ProfitAt(curve, 4.0)
	require.True(t, ok)
	assert.Equal(t, 4.0, p.TROAS)
	assert.InDelta(t, 1050000.0, p.Profit, 0.01)

	p, ok = ProfitAt(curve, 2.95)
	require.True(t, ok)
	assert.Equal(t, 3.0, p.TROAS)
	assert.InDelta(t, 900000.0, p.Profit, 0.01)

	_, ok = ProfitAt(curve, 9)
	assert.False(t, ok)

	_, ok = ProfitAt(nil, 1)
	assert.False(t, ok)
}

func TestEfficiencyCurve(t *testing.T) {
	curve := EfficiencyCurve(DefaultBusinessMetrics())
	require.Len(t, curve, EfficiencyPoints)

	assert.Equal(t, 1.0, curve[0].TROAS)
	assert.Equal(t, 6.0, curve[len(curve)-1].TROAS)
	assert.InDelta(t, 1000000.0, curve[0].Revenue, 0.01)
	assert.InDelta(t, 6000000.0, curve[len(curve)-1].Revenue, 0.01)

	for _, p := range curve {
		assert.Equal(t, 1.0, p.Efficiency)
	}
}

func TestEfficiencyCurve_ZeroSpend(t *testing.T) {
	m := DefaultBusinessMetrics()
	m.SeaSpend = 0

	for _, p := range EfficiencyCurve(m) {
		assert.Equal(t, 0.0, p.Revenue)
		assert.Equal(t, 0.0, p.Efficiency)
	}
}

func TestBandFor(t *testing.T) {
	assert.Equal(t, BandAggressive, BandFor(1.5))
	assert.Equal(t, BandAggressive, BandFor(2.5))
	assert.Equal(t, BandBalanced, BandFor(3.0))
	assert.Equal(t, BandBalanced, BandFor(4.0))
	assert.Equal(t, BandConservative, BandFor(5.0))
}

func TestMatrix(t *testing.T) {
	cells := Matrix()
	require.Len(t, cells, 21*36)

	first, last := cells[0], cells[len(cells)-1]
	assert.Equal(t, 0.0, first.GrossMargin)
	assert.Equal(t, -20.0, first.RevenueGrowth)
	assert.Equal(t, 0.0, first.Health)
	assert.Equal(t, 5.0, first.TROAS)
	assert.Equal(t, BandConservative, first.Band)

	assert.Equal(t, 40.0, last.GrossMargin)
	assert.Equal(t, 50.0, last.RevenueGrowth)
	assert.InDelta(t, 100.0, last.Health, 1e-9)
	assert.Equal(t, 2.0, last.TROAS)
	assert.Equal(t, BandAggressive, last.Band)

	// ordered by margin, then growth
	assert.Equal(t, 0.0, cells[35].GrossMargin)
	assert.Equal(t, 50.0, cells[35].RevenueGrowth)
	assert.Equal(t, 2.0, cells[36].GrossMargin)
	assert.Equal(t, -20.0, cells[36].RevenueGrowth)

	for _, c := range cells {
		assert.Equal(t, BaseTROAS(c.Health), c.TROAS)
		assert.Equal(t, BandFor(c.TROAS), c.Band)
		if c.GrossMargin == 20 && c.RevenueGrowth == 16 {
			assert.Equal(t, 4.0, c.TROAS)
		}
	}
}
