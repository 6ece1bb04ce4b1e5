package types

import "time"

// HealthState classifies a dependency check outcome.
type HealthState string

const (
	HealthStateHealthy   HealthState = "healthy"
	HealthStateUnhealthy HealthState = "unhealthy"
)

func (s HealthState) String() string {
	return string(s)
}

// HealthStatus is the result of probing one dependency: the graph
// connection or an LLM provider.
type HealthStatus struct {
	State     HealthState `json:"state"`
	Message   string      `json:"message,omitempty"`
	CheckedAt time.Time   `json:"checked_at"`
}

// NewHealthStatus stamps a status with the current time.
func NewHealthStatus(state HealthState, message string) HealthStatus {
	return HealthStatus{
		State:     state,
		Message:   message,
		CheckedAt: time.Now(),
	}
}

// Healthy reports a passing check.
func Healthy(message string) HealthStatus {
	return NewHealthStatus(HealthStateHealthy, message)
}

// Unhealthy reports a failing check.
func Unhealthy(message string) HealthStatus {
	return NewHealthStatus(HealthStateUnhealthy, message)
}

func (h HealthStatus) IsHealthy() bool {
	return h.State == HealthStateHealthy
}

func (h HealthStatus) IsUnhealthy() bool {
	return h.State == HealthStateUnhealthy
}
