package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProbeWithoutBackends(t *testing.T) {
	status := HealthBackends{}.probe(context.Background())

	assert.False(t, status.ReservationStore)
	assert.False(t, status.Cache)
	assert.False(t, status.Sessions)
	assert.False(t, status.TaskQueue)
	assert.False(t, status.CheckedAt.IsZero())
}

func TestGetHealthStatusReturnsSnapshot(t *testing.T) {
	healthMu.Lock()
	currentHealth = HealthStatus{ReservationStore: true, TaskQueue: true}
	healthMu.Unlock()

	got := GetHealthStatus()
	assert.True(t, got.ReservationStore)
	assert.True(t, got.TaskQueue)
	assert.False(t, got.Cache)
}
