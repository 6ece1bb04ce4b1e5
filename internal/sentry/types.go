package sentry

import "time"

// EventType classifies a detected financial event.
type EventType string

const (
	EventInterestRate EventType = "interest_rate"
	EventExchangeRate EventType = "exchange_rate"
	EventPolicy       EventType = "policy"
	EventNews         EventType = "news"
)

// Event is one detected financial or economic event to fan out over
// the registered companies.
type Event struct {
	ID          string    `json:"event_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        EventType `json:"event_type"`

	// ImpactMagnitude is in [-1, 1]; for rate events its absolute
	// value is read as the percentage-point change.
	ImpactMagnitude float64 `json:"impact_magnitude"`

	AffectedIndicators []string  `json:"affected_indicators"`
	Source             string    `json:"source"`
	OccurredAt         time.Time `json:"timestamp"`
}

// Risk is one identified risk for a company under an event.
type Risk struct {
	Type                string  `json:"risk_type"`
	Severity            string  `json:"severity"`
	Description         string  `json:"description"`
	MonthlyCostIncrease int64   `json:"monthly_cost_increase,omitempty"`
	AnnualCostIncrease  int64   `json:"annual_cost_increase,omitempty"`
	Probability         float64 `json:"probability"`
	TimeHorizon         string  `json:"time_horizon"`
	IndicatorName       string  `json:"indicator_name,omitempty"`

	// Model refinement, present when the deep-dive call succeeded.
	SeverityScore     float64 `json:"severity_score,omitempty"`
	BusinessImpact    string  `json:"business_impact,omitempty"`
	MitigationUrgency string  `json:"mitigation_urgency,omitempty"`
}

// Solution is one recommended countermeasure.
type Solution struct {
	Type             string   `json:"solution_type"`
	Name             string   `json:"name"`
	ProductType      string   `json:"product_type,omitempty"`
	ExpectedBenefit  string   `json:"expected_benefit"`
	Timeline         string   `json:"implementation_timeline"`
	EstimatedSaving  int64    `json:"estimated_saving"`
	EligibilityScore float64  `json:"eligibility_score,omitempty"`
	RiskCoverage     []string `json:"risk_coverage"`
}

// CompanyAlert is the per-company outcome of an event fan-out.
type CompanyAlert struct {
	CompanyName string
	Event       Event
	Risks       []Risk
	Solutions   []Solution
	Report      string
	Confidence  float64
	StressLevel string
	RiskScore   float64
}

// FanOutResult aggregates an event's alerts over every registered
// company.
type FanOutResult struct {
	Event     Event
	Alerts    []CompanyAlert
	Companies int
	Failed    int
}

// DefaultEvent is the standing rate-hike scenario used when no event
// is supplied.
func DefaultEvent(now time.Time) Event {
	return Event{
		ID:                 "event_rate_hike_" + now.Format("20060102"),
		Title:              "한국은행 기준금리 0.5%p 인상",
		Description:        "한국은행이 물가 안정을 위해 기준금리를 0.5%포인트 인상했습니다.",
		Type:               EventInterestRate,
		ImpactMagnitude:    -0.5,
		AffectedIndicators: []string{"base_rate", "loan_rates", "bond_yields"},
		Source:             "한국은행 금융통화위원회",
		OccurredAt:         now,
	}
}
