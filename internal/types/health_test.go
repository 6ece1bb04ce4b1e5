package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthStatusConstructors(t *testing.T) {
	h := Healthy("connected")
	assert.True(t, h.IsHealthy())
	assert.False(t, h.IsUnhealthy())
	assert.Equal(t, "connected", h.Message)
	assert.False(t, h.CheckedAt.IsZero())

	u := Unhealthy("down")
	assert.True(t, u.IsUnhealthy())
	assert.False(t, u.IsHealthy())
	assert.Equal(t, HealthStateUnhealthy, u.State)
}

func TestHealthStateString(t *testing.T) {
	assert.Equal(t, "healthy", HealthStateHealthy.String())
	assert.Equal(t, "unhealthy", HealthStateUnhealthy.String())
}
