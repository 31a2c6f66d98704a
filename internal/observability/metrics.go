package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_cadastro_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_cadastro_active_connections",
			Help: "Number of active connections",
		},
	)

	// CacheHits tracks cache hits by operation
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_cadastro_cache_hits_total",
			Help: "Number of cache hits",
		},
		[]string{"operation"},
	)

	// WizardTransitions counts tab navigation attempts by outcome
	WizardTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_cadastro_wizard_transitions_total",
			Help: "Number of wizard tab transitions",
		},
		[]string{"direction", "outcome"},
	)

	// SectionValidations counts section validations by section and outcome
	SectionValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_cadastro_section_validations_total",
			Help: "Number of section validations",
		},
		[]string{"section", "outcome"},
	)

	// Submissions counts wizard submissions by mode and status
	Submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_cadastro_submissions_total",
			Help: "Number of wizard submissions",
		},
		[]string{"mode", "status"},
	)

	// ExternalCalls tracks calls to the lending backend and the CEP service
	ExternalCalls = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_cadastro_external_call_duration_seconds",
			Help: "Duration of calls to external services in seconds",
		},
		[]string{"service", "operation", "status"},
	)

	// CEPLookups counts CEP lookups by outcome
	CEPLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_cadastro_cep_lookups_total",
			Help: "Number of CEP lookups",
		},
		[]string{"outcome"},
	)

	// StaleOptionResponses counts option list responses dropped because a newer request exists
	StaleOptionResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_cadastro_stale_option_responses_total",
			Help: "Number of option list responses discarded as stale",
		},
		[]string{"list"},
	)

	// AuditQueueDepth tracks buffered submission audit entries
	AuditQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_cadastro_audit_queue_depth",
			Help: "Number of submission audit entries waiting to be written",
		},
	)

	// DegradedMode is 1 while a dependency health check fails
	DegradedMode = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_cadastro_degraded_mode",
			Help: "Whether the service runs without one of its dependencies",
		},
	)
)
