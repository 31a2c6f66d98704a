package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/promotora-credito/app-cadastro/internal/logging"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestHealthService_States(t *testing.T) {
	var mongoErr error
	h := NewHealthService(logging.Logger).
		AddCheck("mongodb", false, func(ctx context.Context) error { return mongoErr }).
		AddCheck("redis", true, func(ctx context.Context) error { return nil })
	ctx := context.Background()

	report := h.Check(ctx)
	assert.Equal(t, "healthy", report.Status)
	assert.False(t, report.Degraded)
	assert.Equal(t, "healthy", report.Components["mongodb"].Status)

	mongoErr = errors.New("no reachable servers")
	report = h.Check(ctx)
	assert.Equal(t, "degraded", report.Status)
	assert.True(t, report.Degraded)
	assert.Equal(t, "mongodb_down", report.Reason)
	assert.NotNil(t, report.Since)
	assert.Equal(t, "no reachable servers", report.Components["mongodb"].Error)
	assert.True(t, h.IsDegraded())

	mongoErr = nil
	report = h.Check(ctx)
	assert.Equal(t, "healthy", report.Status)
	assert.False(t, h.IsDegraded())
}

func TestHealthService_CriticalFailure(t *testing.T) {
	h := NewHealthService(logging.Logger).
		AddCheck("redis", true, func(ctx context.Context) error { return errors.New("connection refused") })

	report := h.Check(context.Background())
	assert.Equal(t, "unhealthy", report.Status)
	assert.Equal(t, "redis_down", report.Reason)
}

func TestHealthService_MonitoringStops(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	h := NewHealthService(logging.Logger)
	done := make(chan struct{})
	go func() {
		h.StartMonitoring(time.Millisecond)
		close(done)
	}()

	time.Sleep(5 * time.Millisecond)
	h.Stop()
	h.Stop()
	<-done
}
