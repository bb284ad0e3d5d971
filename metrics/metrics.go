package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation families.
const (
	Ingestion = "ingestion"
	Query     = "query"
	Export    = "export"
)

// Completion statuses.
const (
	StatusSuccess        = "success"
	StatusRemoteError    = "remote_error"
	StatusTransportError = "transport_error"
	StatusSaveError      = "save_error"
)

// Rejection reasons.
const (
	ReasonBusy       = "busy"
	ReasonValidation = "validation"
	ReasonEmpty      = "empty"
)

var (
	OperationsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reportboot_operations_started_total",
			Help: "Total number of workflow operations that passed their gate",
		},
		[]string{"operation"},
	)

	OperationsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reportboot_operations_completed_total",
			Help: "Total number of workflow operations completed, by status",
		},
		[]string{"operation", "status"},
	)

	OperationsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reportboot_operations_rejected_total",
			Help: "Total number of triggers rejected before any remote call",
		},
		[]string{"operation", "reason"},
	)

	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reportboot_operation_duration_seconds",
			Help:    "Remote call duration per operation family in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"operation"},
	)
)
