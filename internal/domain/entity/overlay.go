package entity

// TextKind определяет оформление надписи.
type TextKind int

const (
	TextInfo  TextKind = iota // служебная информация: алгоритм, FPS
	TextAlert                 // сообщение о потере объекта
)

// OverlayText описывает надпись поверх кадра.
type OverlayText struct {
	Text string
	X    int // базовая линия текста
	Y    int
	Kind TextKind
}

// Overlay содержит всё, что рисуется поверх одного кадра.
type Overlay struct {
	Box   *BoundingBox // nil, если объект потерян
	Texts []OverlayText
}
