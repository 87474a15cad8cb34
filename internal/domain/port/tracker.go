package port

import "trackbench/internal/domain/entity"

// Tracker следит за одним объектом с помощью внешнего алгоритма.
type Tracker interface {
	// Init привязывает трекер к объекту в прямоугольнике box на кадре frame.
	Init(frame Frame, box entity.BoundingBox) bool

	// Update ищет объект на следующем кадре.
	Update(frame Frame) entity.UpdateResult

	Close() error
}

// TrackerFactory создаёт трекер по имени алгоритма.
type TrackerFactory interface {
	New(algorithm entity.Algorithm) (Tracker, error)
}
