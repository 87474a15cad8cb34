//go:build gocv
// +build gocv

package vision

import (
	"fmt"
	"os"

	"gocv.io/x/gocv"
	"gocv.io/x/gocv/contrib"

	"trackbench/internal/domain/entity"
	"trackbench/internal/domain/port"
)

// TrackerFactory создаёт трекеры OpenCV (модули video и contrib).
type TrackerFactory struct {
	modelDir string
}

// NewTrackerFactory создаёт фабрику. modelDir указывает каталог с моделью GOTURN,
// пустая строка означает текущий каталог.
func NewTrackerFactory(modelDir string) *TrackerFactory {
	return &TrackerFactory{modelDir: modelDir}
}

func (f *TrackerFactory) New(algorithm entity.Algorithm) (port.Tracker, error) {
	if !Bound(algorithm) {
		return nil, fmt.Errorf("%w: %s is not exported by gocv", entity.ErrAlgorithmUnavailable, algorithm)
	}

	var t gocv.Tracker
	switch algorithm {
	case entity.AlgorithmMIL:
		t = gocv.NewTrackerMIL()
	case entity.AlgorithmGOTURN:
		goturn, err := newGOTURN(f.modelDir)
		if err != nil {
			return nil, err
		}
		t = goturn
	case entity.AlgorithmKCF:
		t = contrib.NewTrackerKCF()
	case entity.AlgorithmCSRT:
		t = contrib.NewTrackerCSRT()
	}

	return &gocvTracker{tracker: t}, nil
}

// newGOTURN создаёт GOTURN. OpenCV читает модель из текущего каталога при
// создании трекера, поэтому на это время текущим становится modelDir.
func newGOTURN(modelDir string) (gocv.Tracker, error) {
	dir, err := resolveModelDir(modelDir)
	if err != nil {
		return nil, err
	}
	if !goturnModelPresent(dir) {
		return nil, fmt.Errorf("%w: GOTURN needs %v in %s", entity.ErrAlgorithmUnavailable, goturnModelFiles, dir)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("%w: GOTURN: %v", entity.ErrAlgorithmUnavailable, err)
	}
	if dir != wd {
		if err := os.Chdir(dir); err != nil {
			return nil, fmt.Errorf("%w: GOTURN: %v", entity.ErrAlgorithmUnavailable, err)
		}
		defer os.Chdir(wd)
	}
	return gocv.NewTrackerGOTURN(), nil
}

type gocvTracker struct {
	tracker gocv.Tracker
}

func (t *gocvTracker) Init(frame port.Frame, box entity.BoundingBox) bool {
	mat, err := matOf(frame)
	if err != nil {
		return false
	}
	return t.tracker.Init(mat, box.Rect())
}

func (t *gocvTracker) Update(frame port.Frame) entity.UpdateResult {
	mat, err := matOf(frame)
	if err != nil {
		return entity.Lost()
	}
	rect, ok := t.tracker.Update(mat)
	if !ok {
		return entity.Lost()
	}
	return entity.Tracked(entity.BoxFromRect(rect))
}

func (t *gocvTracker) Close() error {
	return t.tracker.Close()
}

var _ port.TrackerFactory = (*TrackerFactory)(nil)
