// Package dataio moves planner data in and out of files: the Metric,Value
// CSV interchange, YAML/JSON/msgpack records and the XLSX scenario workbook.
package dataio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/aristath/scenario-planner/internal/modules/scenario"
	"github.com/aristath/scenario-planner/pkg/formulas"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSV metric names beyond the per-channel rows
const (
	csvHeaderMetric = "Metric"
	csvHeaderValue  = "Value"

	MetricTotalRevenue        = "Total Revenue"
	MetricTotalMarketingSpend = "Total Marketing Spend"
	MetricAOVShort            = "AOV"
)

// Warning describes a CSV row that was skipped during import
type Warning struct {
	Line   int    `json:"line" yaml:"line"`
	Metric string `json:"metric" yaml:"metric"`
	Reason string `json:"reason" yaml:"reason"`
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %q %s", w.Line, w.Metric, w.Reason)
}

// vectorField selects one of the four per-channel vectors of a baseline
type vectorField int

const (
	fieldRevenue vectorField = iota
	fieldSpend
	fieldOrders
	fieldAOV
)

// Longest names first so "average order value" never matches a shorter prefix
var vectorPrefixes = []struct {
	name  string
	field vectorField
}{
	{"average order value", fieldAOV},
	{"marketing spend", fieldSpend},
	{"revenue", fieldRevenue},
	{"orders", fieldOrders},
	{"aov", fieldAOV},
}

var exportVectors = []struct {
	metric string
	field  vectorField
}{
	{scenario.MetricRevenue, fieldRevenue},
	{scenario.MetricMarketingSpend, fieldSpend},
	{scenario.MetricOrders, fieldOrders},
	{scenario.MetricAverageAOV, fieldAOV},
}

func vectorOf(b *scenario.BaselineSnapshot, field vectorField) *scenario.ChannelVector {
	switch field {
	case fieldSpend:
		return &b.Spend
	case fieldOrders:
		return &b.Orders
	case fieldAOV:
		return &b.AOV
	default:
		return &b.Revenue
	}
}

// ExportCSV writes a baseline as Metric,Value rows: every channel of every
// vector, shipping, COGS %, the two totals and an informational ROAS row.
func ExportCSV(w io.Writer, b scenario.BaselineSnapshot) error {
	cw := csv.NewWriter(w)

	rows := [][]string{{csvHeaderMetric, csvHeaderValue}}
	for _, v := range exportVectors {
		vector := *vectorOf(&b, v.field)
		for _, c := range scenario.AllChannels {
			rows = append(rows, []string{v.metric + " " + c.Label(), formatValue(vector.Get(c))})
		}
	}

	revenue, spend := b.Revenue.Sum(), b.Spend.Sum()
	rows = append(rows,
		[]string{scenario.MetricShippingCost, formatValue(b.ShippingCost)},
		[]string{scenario.MetricCOGSPercent, formatValue(b.COGSPercent)},
		[]string{MetricTotalRevenue, formatValue(revenue)},
		[]string{MetricTotalMarketingSpend, formatValue(spend)},
		[]string{scenario.MetricROAS, strconv.FormatFloat(formulas.SafeDivide(revenue, spend, 0), 'f', 2, 64)},
	)

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// ImportCSV applies Metric,Value rows on top of base and returns the result.
// base is not modified. Rows that cannot be applied are skipped and
// reported as warnings; only unreadable CSV is an error. A leading byte
// order mark, as written by spreadsheet tools, is stripped.
func ImportCSV(r io.Reader, base scenario.BaselineSnapshot) (scenario.BaselineSnapshot, []Warning, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	result := base
	warnings := []Warning{}

	for first := true; ; first = false {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return base, nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)

		metric := strings.TrimSpace(record[0])
		if first && strings.EqualFold(metric, csvHeaderMetric) {
			continue
		}
		if metric == "" {
			continue
		}
		if len(record) < 2 || strings.TrimSpace(record[1]) == "" {
			warnings = append(warnings, Warning{Line: line, Metric: metric, Reason: "has no value"})
			continue
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			warnings = append(warnings, Warning{Line: line, Metric: metric, Reason: fmt.Sprintf("has non-numeric value %q", record[1])})
			continue
		}

		if reason := applyMetric(&result, metric, value); reason != "" {
			warnings = append(warnings, Warning{Line: line, Metric: metric, Reason: reason})
		}
	}

	return result, warnings, nil
}

// applyMetric sets one metric on b, returning a skip reason if the metric
// is not recognised.
func applyMetric(b *scenario.BaselineSnapshot, metric string, value float64) string {
	name := strings.Join(strings.Fields(strings.ToLower(metric)), " ")

	switch name {
	case "revenue", "total revenue":
		b.Revenue = redistribute(b.Revenue, value)
		return ""
	case "marketing spend", "total marketing spend":
		b.Spend = redistribute(b.Spend, value)
		return ""
	case "orders", "total orders":
		b.Orders = scenario.Uniform(value / scenario.ChannelCount)
		return ""
	case "average order value", "aov":
		b.AOV = scenario.Uniform(value)
		return ""
	case "shipping cost":
		b.ShippingCost = value
		return ""
	case "cogs %", "cogs", "cogs percent":
		b.COGSPercent = value
		return ""
	case "roas":
		// derived from the totals; exported for reading only
		return ""
	}

	for _, p := range vectorPrefixes {
		rest, ok := strings.CutPrefix(name, p.name+" ")
		if !ok {
			continue
		}
		channel, err := scenario.ParseChannel(rest)
		if err != nil {
			return fmt.Sprintf("has %v", err)
		}
		vector := vectorOf(b, p.field)
		*vector = vector.Set(channel, value)
		return ""
	}

	return "is not a recognised metric"
}

// redistribute scales v to a new total keeping each channel's share.
// A zero current total has no shares to keep, so v is returned as is.
func redistribute(v scenario.ChannelVector, total float64) scenario.ChannelVector {
	current := v.Sum()
	if current == 0 || current == total {
		return v
	}
	return v.Scale(total / current)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
