//go:build gocv
// +build gocv

package vision

import (
	"context"
	"image"
	"time"

	"gocv.io/x/gocv"

	"trackbench/internal/domain/entity"
	"trackbench/internal/domain/port"
)

// Window управляет окном highgui. Окно создаётся при первом показе кадра.
type Window struct {
	name   string
	window *gocv.Window
}

func NewWindow(name string) *Window {
	return &Window{name: name}
}

func (w *Window) open() *gocv.Window {
	if w.window == nil {
		w.window = gocv.NewWindow(w.name)
	}
	return w.window
}

// Show рисует overlay прямо на кадре и показывает его.
func (w *Window) Show(frame port.Frame, overlay entity.Overlay) error {
	mat, err := matOf(frame)
	if err != nil {
		return err
	}
	drawOverlay(&mat, overlay)
	w.open().IMShow(mat)
	return nil
}

// WaitKey ждёт не меньше 1 мс: 0 у OpenCV означает бесконечное ожидание.
func (w *Window) WaitKey(delay time.Duration) int {
	if w.window == nil {
		return -1
	}
	ms := int(delay / time.Millisecond)
	if ms < 1 {
		ms = 1
	}
	return w.window.WaitKey(ms)
}

// SelectRegion блокируется до Enter/Space (выбор) или Esc/c (отмена, пустой прямоугольник).
func (w *Window) SelectRegion(ctx context.Context, frame port.Frame) (entity.BoundingBox, error) {
	if err := ctx.Err(); err != nil {
		return entity.BoundingBox{}, err
	}
	mat, err := matOf(frame)
	if err != nil {
		return entity.BoundingBox{}, err
	}
	rect := w.open().SelectROI(mat)
	return entity.BoxFromRect(rect), nil
}

func (w *Window) Close() error {
	if w.window == nil {
		return nil
	}
	err := w.window.Close()
	w.window = nil
	return err
}

func drawOverlay(img *gocv.Mat, overlay entity.Overlay) {
	if overlay.Box != nil {
		gocv.Rectangle(img, overlay.Box.Rect(), BoxColor, BoxThickness)
	}
	for _, t := range overlay.Texts {
		gocv.PutText(img, t.Text, image.Pt(t.X, t.Y), gocv.FontHersheySimplex, TextScale, TextColor(t.Kind), TextThickness)
	}
}

var (
	_ port.Display      = (*Window)(nil)
	_ port.RegionPicker = (*Window)(nil)
)
