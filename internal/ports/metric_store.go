package ports

import (
	"context"

	"survey-route-service/internal/domain"
)

// Contract for persisting planner step metrics to durable storage.
type MetricStore interface {
	// Persist the metrics of one planner run under the given run identifier.
	SaveMetrics(ctx context.Context, runID string, metrics []domain.StepMetric) error
}
