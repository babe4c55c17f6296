package dataio

import (
	"fmt"
	"os"

	"github.com/aristath/scenario-planner/internal/modules/scenario"
	"github.com/aristath/scenario-planner/internal/modules/troas"
)

// LoadBaseline reads a baseline record. Fields absent from the file are zero.
func LoadBaseline(path string) (scenario.BaselineSnapshot, error) {
	var b scenario.BaselineSnapshot
	if err := loadFile(path, &b); err != nil {
		return scenario.BaselineSnapshot{}, err
	}
	return b, nil
}

// LoadAdjustments reads an adjustment set. Fields absent from the file are 0%.
func LoadAdjustments(path string) (scenario.AdjustmentSet, error) {
	var a scenario.AdjustmentSet
	if err := loadFile(path, &a); err != nil {
		return scenario.AdjustmentSet{}, err
	}
	return a, nil
}

// LoadBusinessMetrics reads business metrics on top of DefaultBusinessMetrics,
// so a file only needs the fields it changes, and validates the result.
func LoadBusinessMetrics(path string) (troas.BusinessMetrics, error) {
	m := troas.DefaultBusinessMetrics()
	if err := loadFile(path, &m); err != nil {
		return troas.BusinessMetrics{}, err
	}
	if err := m.Validate(); err != nil {
		return troas.BusinessMetrics{}, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return m, nil
}

func loadFile(path string, v interface{}) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if err := Decode(f, format, v); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
