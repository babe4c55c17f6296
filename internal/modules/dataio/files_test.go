package dataio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aristath/scenario-planner/internal/modules/scenario"
	"github.com/aristath/scenario-planner/internal/modules/troas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadBaseline_YAML(t *testing.T) {
	path := writeFile(t, "baseline.yaml", `
revenue:
  paid: 1000
  organic: 500
spend:
  paid: 250
orders:
  paid: 20
  other: 4
aov:
  paid: 50
shipping_cost: 120
cogs_percent: 15
`)

	b, err := LoadBaseline(path)
	require.NoError(t, err)

	assert.Equal(t, scenario.ChannelVector{1000, 500, 0, 0, 0, 0}, b.Revenue)
	assert.Equal(t, 250.0, b.Spend.Get(scenario.ChannelPaid))
	assert.Equal(t, 4.0, b.Orders.Get(scenario.ChannelTikTok))
	assert.Equal(t, 120.0, b.ShippingCost)
	assert.Equal(t, 15.0, b.COGSPercent)
}

func TestLoadAdjustments_JSON(t *testing.T) {
	path := writeFile(t, "adjust.json", `{"revenue": {"crm": 20}, "marketing_spend": {"paid": -10}, "cogs_percent": -5}`)

	a, err := LoadAdjustments(path)
	require.NoError(t, err)

	assert.Equal(t, 20.0, a.Revenue.Get(scenario.ChannelCRM))
	assert.Equal(t, -10.0, a.MarketingSpend.Get(scenario.ChannelPaid))
	assert.Equal(t, -5.0, a.COGSPercent)
	assert.Equal(t, scenario.ChannelVector{}, a.Orders)
}

func TestLoadBusinessMetrics_OverlaysDefaults(t *testing.T) {
	path := writeFile(t, "metrics.yml", "gross_margin: 42\nseason: high\n")

	m, err := LoadBusinessMetrics(path)
	require.NoError(t, err)

	want := troas.DefaultBusinessMetrics()
	want.GrossMargin = 42
	want.Season = troas.SeasonHigh
	assert.Equal(t, want, m)
}

func TestLoadBusinessMetrics_Errors(t *testing.T) {
	_, err := LoadBusinessMetrics(writeFile(t, "metrics.yaml", "season: monsoon\n"))
	assert.ErrorContains(t, err, "unknown season")

	_, err = LoadBusinessMetrics(writeFile(t, "metrics.json", `{"business_stage": ""}`))
	assert.Error(t, err)

	_, err = LoadBusinessMetrics(writeFile(t, "metrics.txt", "season: high\n"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = LoadBusinessMetrics(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadBaseline_UnknownChannel(t *testing.T) {
	_, err := LoadBaseline(writeFile(t, "baseline.json", `{"revenue": {"radio": 1}}`))
	assert.ErrorIs(t, err, scenario.ErrUnknownChannel)
}

func TestLoadBaseline_Msgpack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baseline.msgpack")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, Encode(f, FormatMsgpack, scenario.DefaultBaseline()))
	require.NoError(t, f.Close())

	b, err := LoadBaseline(path)
	require.NoError(t, err)
	assert.Equal(t, scenario.DefaultBaseline(), b)
}
