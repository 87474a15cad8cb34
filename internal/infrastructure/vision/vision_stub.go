//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trackbench/internal/domain/entity"
	"trackbench/internal/domain/port"
)

var errNoGoCV = errors.New("gocv build tag is not enabled")

// CaptureOpener заменяет открытие видео в сборке без OpenCV.
type CaptureOpener struct {
	correction entity.Correction
}

func NewCaptureOpener() *CaptureOpener {
	return &CaptureOpener{}
}

func (o *CaptureOpener) WithCorrection(c entity.Correction) *CaptureOpener {
	o.correction = c
	return o
}

// Open возвращает ошибку, если сборка без тега gocv.
func (o *CaptureOpener) Open(path string) (port.FrameSource, error) {
	return nil, fmt.Errorf("%w: %s: %v", entity.ErrVideoOpen, path, errNoGoCV)
}

// TrackerFactory заменяет фабрику трекеров в сборке без OpenCV.
type TrackerFactory struct {
	modelDir string
}

func NewTrackerFactory(modelDir string) *TrackerFactory {
	return &TrackerFactory{modelDir: modelDir}
}

// New возвращает ошибку, если сборка без тега gocv.
func (f *TrackerFactory) New(algorithm entity.Algorithm) (port.Tracker, error) {
	return nil, fmt.Errorf("%w: %s: %v", entity.ErrAlgorithmUnavailable, algorithm, errNoGoCV)
}

// Window заменяет окно highgui в сборке без OpenCV.
type Window struct {
	name string
}

func NewWindow(name string) *Window {
	return &Window{name: name}
}

// Show возвращает ошибку, если сборка без тега gocv.
func (w *Window) Show(frame port.Frame, overlay entity.Overlay) error {
	return errNoGoCV
}

func (w *Window) WaitKey(delay time.Duration) int {
	return -1
}

// SelectRegion возвращает ошибку, если сборка без тега gocv.
func (w *Window) SelectRegion(ctx context.Context, frame port.Frame) (entity.BoundingBox, error) {
	return entity.BoundingBox{}, errNoGoCV
}

func (w *Window) Close() error {
	return nil
}
