package obs

import (
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"survey-route-service/internal/domain"
)

// Recorder measures named phases of a planner run and keeps their StepMetrics
// in an append-only log. Measurements are diagnostic only and never affect
// routing.
type Recorder struct {
	logger zerolog.Logger

	mu      sync.Mutex
	metrics []domain.StepMetric
}

func NewRecorder(logger zerolog.Logger) *Recorder {
	return &Recorder{logger: logger}
}

// Phase runs fn, records its wall-clock duration and the heap size after it
// returns, and logs the measurement. The function's error is passed through
// unchanged.
func (r *Recorder) Phase(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	m := domain.StepMetric{
		Step:      name,
		Elapsed:   elapsed,
		MemoryMB:  heapMB(),
		Timestamp: time.Now(),
	}

	r.mu.Lock()
	r.metrics = append(r.metrics, m)
	r.mu.Unlock()

	evt := r.logger.Info()
	if err != nil {
		evt = r.logger.Error().Err(err)
	}
	evt.Str("step", name).
		Dur("elapsed", elapsed).
		Float64("memory_mb", m.MemoryMB).
		Msg("phase complete")

	return err
}

// Metrics returns a copy of the log in recording order.
func (r *Recorder) Metrics() []domain.StepMetric {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.StepMetric, len(r.metrics))
	copy(out, r.metrics)
	return out
}

func heapMB() float64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return float64(ms.HeapAlloc) / 1024 / 1024
}
