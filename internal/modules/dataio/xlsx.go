package dataio

import (
	"fmt"
	"io"

	"github.com/aristath/scenario-planner/internal/modules/scenario"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names
const (
	SheetScenario = "Scenario"
	SheetChannels = "Channels"
)

var scenarioHeader = []interface{}{"Metric", "Baseline", "Adjusted", "Change", "Change %"}

var channelsHeader = []interface{}{
	"Channel",
	"Revenue", "Adjusted Revenue",
	"Marketing Spend", "Adjusted Marketing Spend",
	"Orders", "Adjusted Orders",
	"AOV", "Adjusted AOV",
	"ROAS", "Adjusted ROAS",
}

// WriteScenarioWorkbook writes a comparison as an XLSX workbook: the headline
// metric deltas on the Scenario sheet and the per-channel figures on the
// Channels sheet.
func WriteScenarioWorkbook(w io.Writer, c scenario.Comparison) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", cerr)
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetScenario); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetChannels); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", SheetChannels, err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	rows := make([][]interface{}, 0, len(c.Deltas)+1)
	rows = append(rows, scenarioHeader)
	for _, d := range c.Deltas {
		rows = append(rows, []interface{}{d.Metric, d.Baseline, d.Adjusted, d.Change, d.PercentChange})
	}
	if err := writeSheet(f, SheetScenario, rows, bold); err != nil {
		return err
	}

	before, after := c.Baseline, c.Adjusted
	rows = rows[:0]
	rows = append(rows, channelsHeader)
	for _, ch := range scenario.AllChannels {
		rows = append(rows, []interface{}{
			ch.Label(),
			before.Revenue.Get(ch), after.Revenue.Get(ch),
			before.Spend.Get(ch), after.Spend.Get(ch),
			before.Orders.Get(ch), after.Orders.Get(ch),
			before.AOV.Get(ch), after.AOV.Get(ch),
			before.ROAS.Get(ch), after.ROAS.Get(ch),
		})
	}
	if err := writeSheet(f, SheetChannels, rows, bold); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// writeSheet writes rows from A1 down and bolds the first one
func writeSheet(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
		}
	}

	if len(rows) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(rows[0]))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 18)
}
