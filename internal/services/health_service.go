package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/promotora-credito/app-cadastro/internal/logging"
	"github.com/promotora-credito/app-cadastro/internal/observability"
	"go.uber.org/zap"
)

// HealthCheck probes one dependency
type HealthCheck func(ctx context.Context) error

// ComponentHealth is the last known state of a dependency
type ComponentHealth struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthReport is the answer of the health endpoint
type HealthReport struct {
	Status     string                     `json:"status"`
	Degraded   bool                       `json:"degraded"`
	Reason     string                     `json:"reason,omitempty"`
	Since      *time.Time                 `json:"since,omitempty"`
	Components map[string]ComponentHealth `json:"components"`
}

// HealthService probes MongoDB and Redis. A failing Mongo only degrades
// the service, since field configuration falls back to the built-in
// defaults; a failing Redis makes it unhealthy because sessions live there.
type HealthService struct {
	checks   map[string]HealthCheck
	critical map[string]bool
	timeout  time.Duration

	mu          sync.RWMutex
	degraded    bool
	reason      string
	activatedAt time.Time

	stopOnce sync.Once
	stopChan chan struct{}
	logger   *logging.SafeLogger
}

// NewHealthService creates a health service with no checks
func NewHealthService(logger *logging.SafeLogger) *HealthService {
	return &HealthService{
		checks:   map[string]HealthCheck{},
		critical: map[string]bool{},
		timeout:  2 * time.Second,
		stopChan: make(chan struct{}),
		logger:   logger,
	}
}

// AddCheck registers a probe. A failing critical probe makes the service unhealthy.
func (h *HealthService) AddCheck(name string, critical bool, check HealthCheck) *HealthService {
	h.checks[name] = check
	h.critical[name] = critical
	return h
}

// Check runs every probe and updates the degraded state
func (h *HealthService) Check(ctx context.Context) HealthReport {
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	report := HealthReport{Status: "healthy", Components: map[string]ComponentHealth{}}
	var failing []string
	for _, name := range names {
		probeCtx, cancel := context.WithTimeout(ctx, h.timeout)
		err := h.checks[name](probeCtx)
		cancel()

		if err != nil {
			report.Components[name] = ComponentHealth{Status: "unhealthy", Error: err.Error()}
			failing = append(failing, name+"_down")
			if h.critical[name] {
				report.Status = "unhealthy"
			}
			continue
		}
		report.Components[name] = ComponentHealth{Status: "healthy"}
	}

	if len(failing) > 0 {
		h.activate(strings.Join(failing, ","))
	} else {
		h.deactivate()
	}

	h.mu.RLock()
	report.Degraded = h.degraded
	report.Reason = h.reason
	if h.degraded {
		since := h.activatedAt
		report.Since = &since
	}
	h.mu.RUnlock()

	if report.Degraded && report.Status == "healthy" {
		report.Status = "degraded"
	}
	return report
}

func (h *HealthService) activate(reason string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.degraded && h.reason == reason {
		return
	}
	if !h.degraded {
		h.activatedAt = time.Now()
	}
	h.degraded = true
	h.reason = reason
	observability.DegradedMode.Set(1)
	h.logger.Warn("degraded mode activated",
		zap.String("reason", reason),
		zap.Time("activated_at", h.activatedAt))
}

func (h *HealthService) deactivate() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.degraded {
		return
	}
	h.logger.Info("degraded mode deactivated",
		zap.String("previous_reason", h.reason),
		zap.Duration("duration", time.Since(h.activatedAt)))
	h.degraded = false
	h.reason = ""
	h.activatedAt = time.Time{}
	observability.DegradedMode.Set(0)
}

// IsDegraded returns whether a probe failed on the last check
func (h *HealthService) IsDegraded() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.degraded
}

// StartMonitoring checks every interval until Stop is called
func (h *HealthService) StartMonitoring(interval time.Duration) {
	h.logger.Info("starting health monitoring", zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.Check(context.Background())
		case <-h.stopChan:
			h.logger.Info("health monitoring stopped")
			return
		}
	}
}

// Stop ends StartMonitoring. Safe to call more than once.
func (h *HealthService) Stop() {
	h.stopOnce.Do(func() { close(h.stopChan) })
}
