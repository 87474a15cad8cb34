package entity

// UpdateResult хранит итог одного обновления трекера: либо новый прямоугольник, либо потерю объекта.
type UpdateResult struct {
	box     BoundingBox
	tracked bool
}

// Tracked создаёт результат, в котором объект найден в кадре.
func Tracked(box BoundingBox) UpdateResult {
	return UpdateResult{box: box, tracked: true}
}

// Lost создаёт результат, в котором трекер потерял объект.
func Lost() UpdateResult {
	return UpdateResult{}
}

// Box возвращает оценку положения. ok=false означает потерю, прямоугольник тогда не определён.
func (r UpdateResult) Box() (BoundingBox, bool) {
	return r.box, r.tracked
}

// IsTracked сообщает, удалось ли обновление.
func (r UpdateResult) IsTracked() bool {
	return r.tracked
}
