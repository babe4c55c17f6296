package dataio

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/aristath/scenario-planner/internal/modules/scenario"
	"github.com/aristath/scenario-planner/internal/modules/troas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"json", FormatJSON},
		{"YAML", FormatYAML},
		{"yml", FormatYAML},
		{" msgpack ", FormatMsgpack},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseFormat("toml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFormatForPath(t *testing.T) {
	got, err := FormatForPath("/tmp/baseline.yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, got)

	_, err = FormatForPath("/tmp/baseline")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = FormatForPath("metrics.csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestEncodeDecode_AllFormats(t *testing.T) {
	original := scenario.DefaultBaseline()

	for _, format := range []Format{FormatJSON, FormatYAML, FormatMsgpack} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, format, original))

			var decoded scenario.BaselineSnapshot
			require.NoError(t, Decode(&buf, format, &decoded))
			assert.Equal(t, original, decoded)
		})
	}
}

func TestEncodeDecode_BusinessMetricsMsgpack(t *testing.T) {
	original := troas.DefaultBusinessMetrics()
	original.Season = troas.SeasonHigh

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatMsgpack, original))

	var decoded troas.BusinessMetrics
	require.NoError(t, Decode(&buf, FormatMsgpack, &decoded))
	assert.Equal(t, original, decoded)
}

func TestEncode_JSONUsesChannelKeys(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJSON, scenario.AdjustmentSet{Revenue: scenario.Uniform(10)}))

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fields))
	assert.JSONEq(t, "0", string(fields["shipping_cost"]))

	vectors := map[string]map[string]float64{}
	for _, key := range []string{"revenue", "orders", "aov", "marketing_spend"} {
		var v map[string]float64
		require.NoError(t, json.Unmarshal(fields[key], &v), key)
		vectors[key] = v
	}
	assert.Equal(t, 10.0, vectors["revenue"]["social_paid"])
	assert.Equal(t, 0.0, vectors["marketing_spend"]["tiktok"])
	assert.Len(t, vectors["orders"], scenario.ChannelCount)
}

func TestEncode_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatYAML, troas.Recommend(troas.DefaultBusinessMetrics())))

	assert.Contains(t, buf.String(), "recommended_troas: 3\n")
	assert.Contains(t, buf.String(), "business_health_status: MODERATE\n")
}

func TestDecode_RejectsUnknownFields(t *testing.T) {
	var a scenario.AdjustmentSet

	err := Decode(bytes.NewBufferString(`{"revenue":{"paid":5},"opex":3}`), FormatJSON, &a)
	assert.Error(t, err)

	err = Decode(bytes.NewBufferString("revenue:\n  fax: 5\n"), FormatYAML, &a)
	assert.ErrorIs(t, err, scenario.ErrUnknownChannel)

	err = Decode(bytes.NewBufferString("cogs_percent: 1\nopex: 3\n"), FormatYAML, &a)
	assert.Error(t, err)
}

func TestUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Encode(&buf, Format("xml"), 1), ErrUnknownFormat)
	assert.ErrorIs(t, Decode(&buf, Format("xml"), new(int)), ErrUnknownFormat)
}
