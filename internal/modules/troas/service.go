package troas

import (
	"github.com/rs/zerolog"
)

// Analysis bundles everything the strategy dashboard shows for one set of
// business metrics.
type Analysis struct {
	Metrics           BusinessMetrics    `json:"metrics" yaml:"metrics"`
	Recommendation    Recommendation     `json:"recommendation" yaml:"recommendation"`
	Alerts            []Alert            `json:"alerts" yaml:"alerts"`
	CurrentCurve      []ProfitCurvePoint `json:"current_curve" yaml:"current_curve"`
	ImprovedCurve     []ProfitCurvePoint `json:"improved_curve" yaml:"improved_curve"`
	DeclinedCurve     []ProfitCurvePoint `json:"declined_curve" yaml:"declined_curve"`
	CurrentProfit     float64            `json:"current_profit" yaml:"current_profit"`
	RecommendedProfit float64            `json:"recommended_profit" yaml:"recommended_profit"`
}

// Service exposes the recommender with logging. It keeps no state between calls.
type Service struct {
	log zerolog.Logger
}

// NewService creates a new tROAS service
func NewService(log zerolog.Logger) *Service {
	return &Service{
		log: log.With().Str("service", "troas").Logger(),
	}
}

// Recommend builds a recommendation and logs its headline figures
func (s *Service) Recommend(m BusinessMetrics) Recommendation {
	rec := Recommend(m)

	s.log.Info().
		Float64("health_score", rec.BusinessHealthScore).
		Str("health_status", string(rec.BusinessHealthStatus)).
		Float64("base_troas", rec.BaseTROAS).
		Float64("recommended_troas", rec.RecommendedTROAS).
		Float64("suggested_change", rec.SuggestedChange).
		Msg("tROAS recommendation calculated")

	if rec.OverrideMessage != "" {
		s.log.Info().Float64("market_opportunity", rec.MarketOpportunityScore).Msg(rec.OverrideMessage)
	}

	return rec
}

// Analyze builds the recommendation, its alerts and the three profit curves,
// and reads the profit at the current and recommended targets off the current curve.
func (s *Service) Analyze(m BusinessMetrics) Analysis {
	rec := s.Recommend(m)
	alerts := Alerts(rec, m)
	current := ProfitCurve(m, CurveCurrent)

	analysis := Analysis{
		Metrics:        m,
		Recommendation: rec,
		Alerts:         alerts,
		CurrentCurve:   current,
		ImprovedCurve:  ProfitCurve(m, CurveImproved),
		DeclinedCurve:  ProfitCurve(m, CurveDeclined),
	}
	if p, ok := ProfitAt(current, m.CurrentTROAS); ok {
		analysis.CurrentProfit = p.Profit
	}
	if p, ok := ProfitAt(current, rec.RecommendedTROAS); ok {
		analysis.RecommendedProfit = p.Profit
	}

	for _, alert := range alerts {
		s.log.Debug().
			Str("type", string(alert.Type)).
			Str("priority", string(alert.Priority)).
			Msg(alert.Title)
	}

	return analysis
}
