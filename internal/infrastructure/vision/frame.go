//go:build gocv
// +build gocv

package vision

import (
	"fmt"

	"gocv.io/x/gocv"

	"trackbench/internal/domain/port"
)

// matFrame хранит кадр, декодированный OpenCV.
type matFrame struct {
	mat gocv.Mat
}

func (f *matFrame) Width() int  { return f.mat.Cols() }
func (f *matFrame) Height() int { return f.mat.Rows() }

func (f *matFrame) Close() error {
	return f.mat.Close()
}

// matOf достаёт gocv.Mat из кадра; кадры других адаптеров не поддерживаются.
func matOf(frame port.Frame) (gocv.Mat, error) {
	f, ok := frame.(*matFrame)
	if !ok {
		return gocv.Mat{}, fmt.Errorf("frame %T is not a gocv frame", frame)
	}
	return f.mat, nil
}
