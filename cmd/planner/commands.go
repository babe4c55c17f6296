package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aristath/scenario-planner/internal/modules/dataio"
	"github.com/aristath/scenario-planner/internal/modules/scenario"
	"github.com/aristath/scenario-planner/internal/modules/troas"
	"github.com/aristath/scenario-planner/internal/report"
)

func (a *app) cmdScenario(args []string) error {
	fs, out := a.newFlagSet("scenario")
	sf := a.addScenarioFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	baseline, adjustments, err := a.loadScenario(sf)
	if err != nil {
		return err
	}
	derived := a.scenarios.Calculate(baseline, adjustments)

	return a.emit(out, derived, func(r *report.Renderer) error {
		if err := r.Snapshot(derived); err != nil {
			return err
		}
		return r.Channels(derived)
	})
}

func (a *app) cmdCompare(args []string) error {
	fs, out := a.newFlagSet("compare")
	sf := a.addScenarioFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	baseline, adjustments, err := a.loadScenario(sf)
	if err != nil {
		return err
	}
	comparison := a.scenarios.Compare(baseline, adjustments)

	return a.emit(out, comparison, func(r *report.Renderer) error {
		if err := r.Comparison(comparison); err != nil {
			return err
		}
		return r.Channels(comparison.Adjusted)
	})
}

func (a *app) cmdPresets(args []string) error {
	fs, out := a.newFlagSet("presets")
	if err := fs.Parse(args); err != nil {
		return err
	}

	presets := scenario.Presets()
	return a.emit(out, presets, func(r *report.Renderer) error {
		return r.Presets(presets)
	})
}

func (a *app) cmdRecommend(args []string) error {
	fs, out := a.newFlagSet("recommend")
	metricsPath := fs.String("metrics", "", "business metrics file (.yaml, .json, .msgpack); defaults to PLANNER_METRICS or the sample business")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m, err := a.loadMetrics(*metricsPath)
	if err != nil {
		return err
	}
	analysis := a.troas.Analyze(m)

	return a.emit(out, analysis, func(r *report.Renderer) error {
		if err := r.Recommendation(analysis.Recommendation); err != nil {
			return err
		}
		return r.Alerts(analysis.Alerts)
	})
}

func (a *app) cmdCurve(args []string) error {
	fs, out := a.newFlagSet("curve")
	metricsPath := fs.String("metrics", "", "business metrics file")
	variantName := fs.String("variant", string(troas.CurveCurrent), "profit curve variant: current, improved or declined")
	efficiency := fs.Bool("efficiency", false, "print the efficiency curve instead of the profit curve")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m, err := a.loadMetrics(*metricsPath)
	if err != nil {
		return err
	}

	if *efficiency {
		points := troas.EfficiencyCurve(m)
		return a.emit(out, points, func(r *report.Renderer) error {
			return r.EfficiencyCurve(points)
		})
	}

	variant, err := troas.ParseCurveVariant(*variantName)
	if err != nil {
		return err
	}
	rec := a.troas.Recommend(m)
	points := troas.ProfitCurve(m, variant)

	return a.emit(out, points, func(r *report.Renderer) error {
		return r.ProfitCurve(variant, points, m.CurrentTROAS, rec.RecommendedTROAS)
	})
}

func (a *app) cmdMatrix(args []string) error {
	fs, out := a.newFlagSet("matrix")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cells := troas.Matrix()
	return a.emit(out, cells, func(r *report.Renderer) error {
		return r.Matrix(cells)
	})
}

func (a *app) cmdAlerts(args []string) error {
	fs, out := a.newFlagSet("alerts")
	metricsPath := fs.String("metrics", "", "business metrics file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m, err := a.loadMetrics(*metricsPath)
	if err != nil {
		return err
	}
	alerts := troas.Alerts(a.troas.Recommend(m), m)

	return a.emit(out, alerts, func(r *report.Renderer) error {
		return r.Alerts(alerts)
	})
}

// export formats beyond the record encodings
const (
	exportCSV  = "csv"
	exportXLSX = "xlsx"
)

func (a *app) cmdExport(args []string) (err error) {
	fs := a.baseFlagSet("export")
	sf := a.addScenarioFlags(fs)
	formatName := fs.String("format", exportCSV, "csv, xlsx (scenario workbook), json, yaml or msgpack")
	outPath := fs.String("o", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	baseline, adjustments, err := a.loadScenario(sf)
	if err != nil {
		return err
	}

	// Everything is checked before the output file is created
	kind := strings.ToLower(*formatName)
	var format dataio.Format
	switch kind {
	case exportCSV:
		if !adjustments.IsZero() {
			return errors.New("CSV export writes the baseline only; drop -adjust/-preset or use -format xlsx")
		}
	case exportXLSX:
	default:
		if format, err = dataio.ParseFormat(*formatName); err != nil {
			return err
		}
	}

	w, err := a.create(*outPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", *outPath, cerr)
		}
	}()

	switch kind {
	case exportCSV:
		err = dataio.ExportCSV(w, baseline)
	case exportXLSX:
		err = dataio.WriteScenarioWorkbook(w, a.scenarios.Compare(baseline, adjustments))
	default:
		err = dataio.Encode(w, format, baseline)
	}
	if err != nil {
		return err
	}

	a.log.Info().Str("format", *formatName).Str("path", *outPath).Msg("Export written")
	return nil
}

func (a *app) cmdImport(args []string) error {
	fs, out := a.newFlagSet("import")
	baselinePath := fs.String("baseline", "", "baseline the CSV is applied to; defaults to PLANNER_BASELINE or the sample business")
	strict := fs.Bool("strict", false, "fail when any row is skipped")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("import needs exactly one CSV file")
	}

	base, err := a.loadBaseline(*baselinePath)
	if err != nil {
		return err
	}

	path := fs.Arg(0)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	imported, warnings, err := dataio.ImportCSV(f, base)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		a.log.Warn().Int("line", w.Line).Str("metric", w.Metric).Msg("Skipped CSV row: " + w.Reason)
	}
	if *strict && len(warnings) > 0 {
		return fmt.Errorf("%d CSV rows skipped in %s", len(warnings), path)
	}

	derived := scenario.Derive(imported)
	return a.emit(out, imported, func(r *report.Renderer) error {
		return r.Channels(derived)
	})
}
