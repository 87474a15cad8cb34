//go:build gocv
// +build gocv

package vision

import (
	"fmt"
	"io"

	"gocv.io/x/gocv"

	"trackbench/internal/domain/entity"
	"trackbench/internal/domain/port"
)

// CaptureOpener открывает видеофайлы через cv::VideoCapture.
type CaptureOpener struct {
	correction entity.Correction
}

func NewCaptureOpener() *CaptureOpener {
	return &CaptureOpener{}
}

// WithCorrection включает поправку яркости для всех кадров открываемых видео.
func (o *CaptureOpener) WithCorrection(c entity.Correction) *CaptureOpener {
	o.correction = c
	return o
}

// Open возвращает ErrVideoOpen, если файл не найден или кодек не поддерживается.
func (o *CaptureOpener) Open(path string) (port.FrameSource, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", entity.ErrVideoOpen, path, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("%w: %s", entity.ErrVideoOpen, path)
	}

	src := &captureSource{capture: capture, correction: o.correction}
	if o.correction.HasGamma() {
		table := entity.GammaTable(o.correction.Gamma)
		view, err := gocv.NewMatFromBytes(1, len(table), gocv.MatTypeCV8U, table[:])
		if err != nil {
			capture.Close()
			return nil, fmt.Errorf("%w: %s: gamma table: %v", entity.ErrVideoOpen, path, err)
		}
		// view ссылается на память Go, таблице нужна своя копия
		lut := view.Clone()
		view.Close()
		src.gamma = &lut
	}
	return src, nil
}

type captureSource struct {
	capture    *gocv.VideoCapture
	correction entity.Correction
	gamma      *gocv.Mat // таблица подстановки, nil без гамма-коррекции
}

// Read декодирует следующий кадр; неудачное чтение означает конец потока.
func (s *captureSource) Read() (port.Frame, error) {
	mat := gocv.NewMat()
	if ok := s.capture.Read(&mat); !ok || mat.Empty() {
		mat.Close()
		return nil, io.EOF
	}
	return &matFrame{mat: s.correct(mat)}, nil
}

// correct применяет поправку и освобождает исходный кадр, если он заменён.
func (s *captureSource) correct(mat gocv.Mat) gocv.Mat {
	if s.correction.HasLinear() {
		out := gocv.NewMat()
		mat.ConvertToWithParams(&out, gocv.MatTypeCV8U, float32(s.correction.Alpha()), float32(s.correction.Brightness))
		mat.Close()
		mat = out
	}
	if s.gamma != nil {
		out := gocv.NewMat()
		gocv.LUT(mat, *s.gamma, &out)
		mat.Close()
		mat = out
	}
	return mat
}

func (s *captureSource) Close() error {
	if s.gamma != nil {
		s.gamma.Close()
	}
	return s.capture.Close()
}

var _ port.VideoOpener = (*CaptureOpener)(nil)
