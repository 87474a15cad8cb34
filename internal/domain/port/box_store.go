package port

import (
	"context"

	"trackbench/internal/domain/entity"
)

// BoxWriter сохраняет выбранные прямоугольники.
type BoxWriter interface {
	Save(ctx context.Context, boxes ...entity.BoundingBox) error
}

// BoxReader читает эталонную разметку, по одному прямоугольнику на кадр.
type BoxReader interface {
	Load(ctx context.Context) ([]entity.BoundingBox, error)
}
