package port

import (
	"time"

	"trackbench/internal/domain/entity"
)

// RunRecorder собирает метрики прогона.
type RunRecorder interface {
	// ObserveUpdate вызывается после каждого обновления трекера.
	ObserveUpdate(algorithm entity.Algorithm, latency time.Duration, tracked bool)

	// ObserveRun вызывается один раз в конце прогона.
	ObserveRun(summary *entity.RunSummary)
}
