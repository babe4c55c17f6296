package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aristath/scenario-planner/internal/config"
	"github.com/aristath/scenario-planner/internal/modules/dataio"
	"github.com/aristath/scenario-planner/internal/modules/scenario"
	"github.com/aristath/scenario-planner/internal/modules/troas"
	"github.com/aristath/scenario-planner/internal/report"
	"github.com/aristath/scenario-planner/internal/utils"
	"github.com/rs/zerolog"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

var (
	errNoCommand      = errors.New("no command given")
	errUnknownCommand = errors.New("unknown command")
)

const textOutput = "text"

// app carries what every command needs
type app struct {
	cfg       *config.Config
	log       zerolog.Logger
	out       io.Writer
	scenarios *scenario.Service
	troas     *troas.Service
}

type command struct {
	name    string
	summary string
	run     func(a *app, args []string) error
}

func commandList() []command {
	return []command{
		{"scenario", "derive the snapshot of a baseline under adjustments", (*app).cmdScenario},
		{"compare", "compare a scenario against its baseline", (*app).cmdCompare},
		{"presets", "list the scenario presets", (*app).cmdPresets},
		{"recommend", "recommend a target ROAS from business metrics", (*app).cmdRecommend},
		{"curve", "print the profit or efficiency curve", (*app).cmdCurve},
		{"matrix", "print the margin x growth tROAS matrix", (*app).cmdMatrix},
		{"alerts", "evaluate the smart alerts", (*app).cmdAlerts},
		{"export", "write a baseline as CSV/JSON/YAML/msgpack or a scenario workbook", (*app).cmdExport},
		{"import", "apply a Metric,Value CSV file to a baseline", (*app).cmdImport},
	}
}

// run dispatches args[0] to its command
func run(args []string, out io.Writer, cfg *config.Config, log zerolog.Logger) error {
	if len(args) == 0 {
		usage(out)
		return errNoCommand
	}

	a := &app{
		cfg:       cfg,
		log:       log,
		out:       out,
		scenarios: scenario.NewService(log),
		troas:     troas.NewService(log),
	}

	switch args[0] {
	case "help", "-h", "-help", "--help":
		usage(out)
		return nil
	}

	for _, c := range commandList() {
		if c.name == args[0] {
			a.log.Debug().Str("command", c.name).Strs("args", args[1:]).Msg("Running command")
			done := utils.CommandTimer(c.name, a.log)
			err := c.run(a, args[1:])
			done(err)
			return err
		}
	}

	usage(out)
	return fmt.Errorf("%w: %q", errUnknownCommand, args[0])
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: planner <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commandList() {
		fmt.Fprintf(w, "  %-10s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'planner <command> -h' for the flags of a command.")
}

// outputFlags are shared by every command that prints a result
type outputFlags struct {
	format   string
	locale   string
	currency string
}

// baseFlagSet is a flag set without the shared output flags
func (a *app) baseFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *app) newFlagSet(name string) (*flag.FlagSet, *outputFlags) {
	fs := a.baseFlagSet(name)

	o := &outputFlags{}
	fs.StringVar(&o.format, "output", a.cfg.OutputFormat, "output format: text, json, yaml or msgpack")
	fs.StringVar(&o.locale, "locale", a.cfg.Locale, "locale for text output (BCP 47)")
	fs.StringVar(&o.currency, "currency", a.cfg.Currency, "currency code for text output (ISO 4217)")
	return fs, o
}

// emit prints v as a text report, or encodes it in the requested format
func (a *app) emit(o *outputFlags, v interface{}, text func(r *report.Renderer) error) error {
	if strings.EqualFold(o.format, textOutput) {
		r, err := a.renderer(o)
		if err != nil {
			return err
		}
		return text(r)
	}

	format, err := dataio.ParseFormat(o.format)
	if err != nil {
		return err
	}
	return dataio.Encode(a.out, format, v)
}

func (a *app) renderer(o *outputFlags) (*report.Renderer, error) {
	tag := a.cfg.Tag()
	if o.locale != a.cfg.Locale {
		parsed, err := language.Parse(o.locale)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", o.locale, err)
		}
		tag = parsed
	}
	unit, err := currency.ParseISO(o.currency)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", o.currency, err)
	}
	return report.New(a.out, tag, unit), nil
}

// scenarioFlags select the baseline and the adjustments to apply
type scenarioFlags struct {
	baseline string
	adjust   string
	preset   string
}

func (a *app) addScenarioFlags(fs *flag.FlagSet) *scenarioFlags {
	f := &scenarioFlags{}
	fs.StringVar(&f.baseline, "baseline", "", "baseline file (.yaml, .json, .msgpack); defaults to PLANNER_BASELINE or the sample business")
	fs.StringVar(&f.adjust, "adjust", "", "adjustment file (.yaml, .json, .msgpack)")
	fs.StringVar(&f.preset, "preset", "", "preset name or slug (see 'planner presets')")
	return f
}

func (a *app) loadBaseline(path string) (scenario.BaselineSnapshot, error) {
	if path == "" {
		path = a.cfg.BaselineFile
	}
	if path == "" {
		return scenario.DefaultBaseline(), nil
	}
	a.log.Debug().Str("path", path).Msg("Loading baseline")
	return dataio.LoadBaseline(path)
}

func (a *app) loadScenario(f *scenarioFlags) (scenario.BaselineSnapshot, scenario.AdjustmentSet, error) {
	baseline, err := a.loadBaseline(f.baseline)
	if err != nil {
		return scenario.BaselineSnapshot{}, scenario.AdjustmentSet{}, err
	}

	switch {
	case f.adjust != "" && f.preset != "":
		return baseline, scenario.AdjustmentSet{}, errors.New("-adjust and -preset cannot be combined")
	case f.preset != "":
		preset, err := a.scenarios.Preset(f.preset)
		if err != nil {
			return baseline, scenario.AdjustmentSet{}, err
		}
		return baseline, preset.Adjustments, nil
	case f.adjust != "":
		adjustments, err := dataio.LoadAdjustments(f.adjust)
		return baseline, adjustments, err
	default:
		return baseline, scenario.ZeroAdjustments(), nil
	}
}

func (a *app) loadMetrics(path string) (troas.BusinessMetrics, error) {
	if path == "" {
		path = a.cfg.MetricsFile
	}
	if path == "" {
		return troas.DefaultBusinessMetrics(), nil
	}
	a.log.Debug().Str("path", path).Msg("Loading business metrics")
	return dataio.LoadBusinessMetrics(path)
}

// create opens path for writing, or returns the command output for "" and "-"
func (a *app) create(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{a.out}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
