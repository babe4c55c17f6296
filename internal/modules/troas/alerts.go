package troas

import (
	"fmt"
	"math"
)

// AlertType classifies an alert
type AlertType string

const (
	AlertOpportunity AlertType = "opportunity"
	AlertWarning     AlertType = "warning"
	AlertInfo        AlertType = "info"
)

// AlertPriority ranks alerts
type AlertPriority string

const (
	PriorityHigh   AlertPriority = "high"
	PriorityMedium AlertPriority = "medium"
)

// Alert is an actionable observation about the recommendation
type Alert struct {
	Type     AlertType     `json:"type" yaml:"type"`
	Title    string        `json:"title" yaml:"title"`
	Message  string        `json:"message" yaml:"message"`
	Action   string        `json:"action" yaml:"action"`
	Priority AlertPriority `json:"priority" yaml:"priority"`
}

// Alert thresholds
const (
	AlertHealthyScore       = 70.0
	AlertSignificantChange  = 0.5
	AlertMarginFloor        = 20.0
	AlertOpportunityScore   = 80.0
	AlertMinimumCashMonths  = 3.0
	AlertCompetitiveHealthy = 60.0
)

// Alerts evaluates the alert rules against a recommendation and the metrics
// it was built from. Alerts are returned in rule order.
func Alerts(rec Recommendation, m BusinessMetrics) []Alert {
	alerts := []Alert{}

	if rec.BusinessHealthScore > AlertHealthyScore && math.Abs(rec.SuggestedChange) > AlertSignificantChange {
		alerts = append(alerts, Alert{
			Type:  AlertOpportunity,
			Title: "Business health improved but tROAS unchanged",
			Message: fmt.Sprintf("Your business health score is %.0f/100. Consider lowering tROAS to %.1f to capture growth opportunities.",
				rec.BusinessHealthScore, rec.RecommendedTROAS),
			Action:   fmt.Sprintf("Lower tROAS to %.1f", rec.RecommendedTROAS),
			Priority: PriorityHigh,
		})
	}

	if m.GrossMargin < AlertMarginFloor {
		alerts = append(alerts, Alert{
			Type:  AlertWarning,
			Title: "Margins compressed this month",
			Message: fmt.Sprintf("Your gross margin of %.1f%% is below the recommended 20%% threshold. Consider increasing tROAS to protect profitability.",
				m.GrossMargin),
			Action:   "Increase tROAS to protect margins",
			Priority: PriorityMedium,
		})
	}

	if rec.MarketOpportunityScore > AlertOpportunityScore {
		alerts = append(alerts, Alert{
			Type:  AlertOpportunity,
			Title: "High market opportunity detected",
			Message: fmt.Sprintf("Market opportunity score is %.0f/100. Consider aggressive tROAS strategy to capture market share.",
				rec.MarketOpportunityScore),
			Action:   "Consider aggressive tROAS approach",
			Priority: PriorityHigh,
		})
	}

	if m.CashReserveRatio < AlertMinimumCashMonths {
		alerts = append(alerts, Alert{
			Type:  AlertWarning,
			Title: "Low cash reserve position",
			Message: fmt.Sprintf("Cash reserve of %.1f months is below recommended 3-month minimum. Consider conservative tROAS approach.",
				m.CashReserveRatio),
			Action:   "Adopt conservative tROAS strategy",
			Priority: PriorityHigh,
		})
	}

	if m.RevenueGrowth < 0 {
		alerts = append(alerts, Alert{
			Type:  AlertWarning,
			Title: "Revenue growth declining",
			Message: fmt.Sprintf("Month-over-month revenue growth is %.1f%%. Consider adjusting tROAS strategy to address declining performance.",
				m.RevenueGrowth),
			Action:   "Review and adjust tROAS strategy",
			Priority: PriorityMedium,
		})
	}

	if m.MarketCompetition == CompetitionHigh && rec.BusinessHealthScore > AlertCompetitiveHealthy {
		alerts = append(alerts, Alert{
			Type:     AlertInfo,
			Title:    "High competition environment",
			Message:  "Market competition is high but business health is strong. Consider aggressive tROAS to maintain market position.",
			Action:   "Consider aggressive positioning",
			Priority: PriorityMedium,
		})
	}

	return alerts
}
