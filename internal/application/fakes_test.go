package app

import (
	"context"
	"errors"
	"io"
	"time"

	"trackbench/internal/domain/entity"
	"trackbench/internal/domain/port"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeFrame struct {
	index  int
	width  int
	height int
	closed bool
}

func (f *fakeFrame) Width() int   { return f.width }
func (f *fakeFrame) Height() int  { return f.height }
func (f *fakeFrame) Close() error { f.closed = true; return nil }

// fakeSource отдаёт total кадров 640x480, затем io.EOF
type fakeSource struct {
	total  int
	read   int
	failAt int // номер чтения (с 1), на котором вернуть ошибку; 0 - никогда
	frames []*fakeFrame
	closed bool
}

func (s *fakeSource) Read() (port.Frame, error) {
	if s.failAt > 0 && s.read+1 == s.failAt {
		return nil, errors.New("decoder error")
	}
	if s.read >= s.total {
		return nil, io.EOF
	}
	f := &fakeFrame{index: s.read, width: 640, height: 480}
	s.read++
	s.frames = append(s.frames, f)
	return f, nil
}

func (s *fakeSource) Close() error { s.closed = true; return nil }

type fakeOpener struct {
	src   *fakeSource
	err   error
	calls int
}

func (o *fakeOpener) Open(path string) (port.FrameSource, error) {
	o.calls++
	if o.err != nil {
		return nil, o.err
	}
	return o.src, nil
}

// fakeTracker тратит cost модельного времени на каждое обновление
type fakeTracker struct {
	initOK  bool
	clock   *fakeClock
	cost    time.Duration
	result  func(update int) entity.UpdateResult
	initBox entity.BoundingBox
	updates int
	closed  bool
}

func (t *fakeTracker) Init(frame port.Frame, box entity.BoundingBox) bool {
	t.initBox = box
	return t.initOK
}

func (t *fakeTracker) Update(frame port.Frame) entity.UpdateResult {
	t.updates++
	if t.clock != nil {
		t.clock.Advance(t.cost)
	}
	if t.result == nil {
		return entity.Tracked(t.initBox)
	}
	return t.result(t.updates)
}

func (t *fakeTracker) Close() error { t.closed = true; return nil }

type fakeFactory struct {
	tracker *fakeTracker
	err     error
	calls   int
}

func (f *fakeFactory) New(algorithm entity.Algorithm) (port.Tracker, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.tracker, nil
}

// fakeDisplay запоминает overlay и возвращает клавишу keyAt после показа кадра с этим номером
type fakeDisplay struct {
	overlays []entity.Overlay
	keyAt    int
	key      int
	showErr  error
}

func (d *fakeDisplay) Show(frame port.Frame, overlay entity.Overlay) error {
	if d.showErr != nil {
		return d.showErr
	}
	d.overlays = append(d.overlays, overlay)
	return nil
}

func (d *fakeDisplay) WaitKey(delay time.Duration) int {
	if d.keyAt > 0 && len(d.overlays) == d.keyAt {
		return d.key
	}
	return -1
}

type fakePicker struct {
	box   entity.BoundingBox
	err   error
	calls int
}

func (p *fakePicker) SelectRegion(ctx context.Context, frame port.Frame) (entity.BoundingBox, error) {
	p.calls++
	return p.box, p.err
}

type fakeBoxStore struct {
	boxes []entity.BoundingBox
	err   error
	saved []entity.BoundingBox
}

func (s *fakeBoxStore) Load(ctx context.Context) ([]entity.BoundingBox, error) {
	return s.boxes, s.err
}

func (s *fakeBoxStore) Save(ctx context.Context, boxes ...entity.BoundingBox) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, boxes...)
	return nil
}

type fakeRecorder struct {
	updates int
	lost    int
	runs    []*entity.RunSummary
}

func (r *fakeRecorder) ObserveUpdate(algorithm entity.Algorithm, latency time.Duration, tracked bool) {
	r.updates++
	if !tracked {
		r.lost++
	}
}

func (r *fakeRecorder) ObserveRun(summary *entity.RunSummary) {
	r.runs = append(r.runs, summary)
}
