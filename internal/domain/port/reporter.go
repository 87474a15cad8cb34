package port

import (
	"context"

	"trackbench/internal/domain/entity"
)

// SummaryReporter отправляет итог прогона во внешний канал.
type SummaryReporter interface {
	Report(ctx context.Context, summary *entity.RunSummary) error
}
