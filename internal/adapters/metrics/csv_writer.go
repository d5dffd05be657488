package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"survey-route-service/internal/domain"
)

// WriteCSV writes step metrics to path, creating parent directories as
// needed. The column layout matches the diagnostics files consumed by the
// downstream analysis scripts.
func WriteCSV(path string, stepMetrics []domain.StepMetric) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write metrics csv: create directory for %q: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write metrics csv: create %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"step_name", "elapsed_seconds", "memory_mb", "timestamp"}); err != nil {
		return fmt.Errorf("write metrics csv: header: %w", err)
	}

	for _, m := range stepMetrics {
		record := []string{
			m.Step,
			strconv.FormatFloat(m.Elapsed.Seconds(), 'f', 6, 64),
			strconv.FormatFloat(m.MemoryMB, 'f', 2, 64),
			strconv.FormatFloat(float64(m.Timestamp.UnixNano())/1e9, 'f', 6, 64),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write metrics csv: step %q: %w", m.Step, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write metrics csv: flush: %w", err)
	}
	return nil
}
