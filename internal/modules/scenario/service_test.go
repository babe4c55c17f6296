package scenario

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_CalculateMatchesEngine(t *testing.T) {
	service := NewService(zerolog.Nop())
	baseline := DefaultBaseline()
	preset, err := PresetByName("conservative")
	require.NoError(t, err)

	assert.Equal(t, Calculate(baseline, preset.Adjustments), service.Calculate(baseline, preset.Adjustments))
	assert.Equal(t, Compare(baseline, preset.Adjustments), service.Compare(baseline, preset.Adjustments))
}

func TestService_Preset(t *testing.T) {
	var buf bytes.Buffer
	service := NewService(zerolog.New(&buf))

	preset, err := service.Preset("scale-up")
	require.NoError(t, err)
	assert.Equal(t, "Scale Up", preset.Name)
	comparison := service.Compare(DefaultBaseline(), preset.Adjustments)
	assert.Greater(t, comparison.Adjusted.TotalRevenue, comparison.Baseline.TotalRevenue)
	assert.Contains(t, buf.String(), `"preset":"Scale Up"`)
	assert.Contains(t, buf.String(), `"service":"scenario"`)

	_, err = service.Preset("nope")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestService_NoStateBetweenCalls(t *testing.T) {
	service := NewService(zerolog.Nop())
	baseline := DefaultBaseline()

	first := service.Calculate(baseline, AdjustmentSet{Orders: Uniform(30)})
	_ = service.Calculate(baseline, AdjustmentSet{Orders: Uniform(-30)})
	again := service.Calculate(baseline, AdjustmentSet{Orders: Uniform(30)})

	assert.Equal(t, first, again)
}
