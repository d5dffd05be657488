package domain

import "time"

// StepMetric records wall-clock time and memory usage for one named phase of
// a planner run. Metrics are appended to an ordered log and are purely
// diagnostic; they never influence routing decisions.
type StepMetric struct {
	Step      string
	Elapsed   time.Duration
	MemoryMB  float64
	Timestamp time.Time
}
