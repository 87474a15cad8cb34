package port

import (
	"context"
	"time"

	"trackbench/internal/domain/entity"
)

// Display показывает оператору ход трекинга.
type Display interface {
	// Show рисует overlay поверх кадра и показывает результат.
	Show(frame Frame, overlay entity.Overlay) error

	// WaitKey ждёт нажатия не дольше delay и возвращает код клавиши или -1.
	WaitKey(delay time.Duration) int
}

// RegionPicker даёт оператору выбрать прямоугольник на кадре.
type RegionPicker interface {
	// SelectRegion блокируется, пока оператор не подтвердит или не отменит выбор.
	SelectRegion(ctx context.Context, frame Frame) (entity.BoundingBox, error)
}
