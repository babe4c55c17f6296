package scenario

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Service exposes the scenario engine to callers that want logging.
// It keeps no state between calls; every result reflects only its arguments.
type Service struct {
	log zerolog.Logger
}

// NewService creates a new scenario service
func NewService(log zerolog.Logger) *Service {
	return &Service{
		log: log.With().Str("service", "scenario").Logger(),
	}
}

// Calculate runs the engine and logs the headline figures
func (s *Service) Calculate(baseline BaselineSnapshot, adjustments AdjustmentSet) DerivedSnapshot {
	derived := Calculate(baseline, adjustments)

	s.log.Debug().
		Bool("zero_adjustments", adjustments.IsZero()).
		Float64("revenue_multiplier", derived.RevenueMultiplier).
		Float64("total_revenue", derived.TotalRevenue).
		Float64("total_spend", derived.TotalSpend).
		Float64("net_profit", derived.NetProfit).
		Msg("Scenario calculated")

	return derived
}

// Compare runs the engine with and without adjustments
func (s *Service) Compare(baseline BaselineSnapshot, adjustments AdjustmentSet) Comparison {
	comparison := Compare(baseline, adjustments)

	s.log.Debug().
		Float64("profit_impact", comparison.ProfitImpact).
		Float64("gross_margin", comparison.Adjusted.GrossMargin).
		Msg("Scenario compared")

	return comparison
}

// Preset looks up a named preset for use as the adjustment set
func (s *Service) Preset(name string) (Preset, error) {
	preset, err := PresetByName(name)
	if err != nil {
		return Preset{}, fmt.Errorf("failed to apply preset: %w", err)
	}

	s.log.Info().Str("preset", preset.Name).Msg("Applying scenario preset")
	return preset, nil
}
