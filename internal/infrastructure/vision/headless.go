package vision

import (
	"time"

	"trackbench/internal/domain/entity"
	"trackbench/internal/domain/port"
)

// HeadlessDisplay ничего не показывает и никогда не сообщает о нажатии клавиши.
// Нужен для замеров без окна.
type HeadlessDisplay struct {
	shown int
}

func NewHeadlessDisplay() *HeadlessDisplay {
	return &HeadlessDisplay{}
}

func (d *HeadlessDisplay) Show(frame port.Frame, overlay entity.Overlay) error {
	d.shown++
	return nil
}

func (d *HeadlessDisplay) WaitKey(delay time.Duration) int {
	return -1
}

// Shown возвращает число "показанных" кадров.
func (d *HeadlessDisplay) Shown() int {
	return d.shown
}

func (d *HeadlessDisplay) Close() error {
	return nil
}

var _ port.Display = (*HeadlessDisplay)(nil)
