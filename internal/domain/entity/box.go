package entity

import (
	"fmt"
	"image"
	"strconv"
	"strings"
	"unicode"
)

// BoundingBox задаёт прямоугольник в пикселях, начало координат в левом верхнем углу.
type BoundingBox struct {
	X      int // координата X левого верхнего угла
	Y      int // координата Y левого верхнего угла
	Width  int // ширина в пикселях
	Height int // высота в пикселях
}

// ParseBox разбирает строку вида "(x, y, w, h)".
// Скобки и пробельные символы удаляются, остаток делится по запятым.
func ParseBox(s string) (BoundingBox, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == '(' || r == ')' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	fields := strings.Split(cleaned, ",")
	if len(fields) != 4 {
		return BoundingBox{}, fmt.Errorf("%w: %q has %d fields, want 4", ErrBadBoxFormat, s, len(fields))
	}

	var v [4]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return BoundingBox{}, fmt.Errorf("%w: field %d of %q is not an integer", ErrBadBoxFormat, i+1, s)
		}
		v[i] = n
	}

	return BoundingBox{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

// String возвращает каноническую запись без пробелов: (x,y,w,h).
func (b BoundingBox) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", b.X, b.Y, b.Width, b.Height)
}

// Empty сообщает, что у прямоугольника нулевая площадь.
func (b BoundingBox) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Within проверяет, что прямоугольник целиком лежит в кадре width x height.
func (b BoundingBox) Within(width, height int) bool {
	if b.Empty() {
		return false
	}
	return b.X >= 0 && b.Y >= 0 && b.X+b.Width <= width && b.Y+b.Height <= height
}

// Area возвращает площадь в пикселях.
func (b BoundingBox) Area() int {
	if b.Empty() {
		return 0
	}
	return b.Width * b.Height
}

// Rect переводит прямоугольник в image.Rectangle.
func (b BoundingBox) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// BoxFromRect строит BoundingBox из image.Rectangle.
func BoxFromRect(r image.Rectangle) BoundingBox {
	r = r.Canon()
	return BoundingBox{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// IoU считает отношение пересечения к объединению двух прямоугольников.
// Для пустых или непересекающихся прямоугольников возвращает 0.
func (b BoundingBox) IoU(other BoundingBox) float64 {
	if b.Empty() || other.Empty() {
		return 0
	}
	inter := b.Rect().Intersect(other.Rect())
	if inter.Empty() {
		return 0
	}
	interArea := inter.Dx() * inter.Dy()
	union := b.Area() + other.Area() - interArea
	return float64(interArea) / float64(union)
}

// UnbiasedIoU считает IoU с поправкой на фон кадра площадью frameArea.
// Совпадение фона учитывается с весом, который растёт, когда прямоугольники малы
// относительно кадра (Hager et al., "Countering bias in tracking evaluations").
// При frameArea не больше объединения фоновое слагаемое не учитывается.
func (b BoundingBox) UnbiasedIoU(other BoundingBox, frameArea int) float64 {
	inter := 0
	if !b.Empty() && !other.Empty() {
		if r := b.Rect().Intersect(other.Rect()); !r.Empty() {
			inter = r.Dx() * r.Dy()
		}
	}
	onlyB := float64(b.Area() - inter)
	onlyOther := float64(other.Area() - inter)
	union := float64(inter) + onlyB + onlyOther
	if union == 0 {
		return 0
	}

	background := float64(frameArea) - union
	if background <= 0 {
		return float64(inter) / union
	}

	w0 := union * union / (union*union + (background+onlyB+onlyOther)*(background+onlyB+onlyOther))
	return w0*float64(inter)/union + (1-w0)*background/(background+onlyB+onlyOther)
}
