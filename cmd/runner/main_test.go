package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"trackbench/config"
	"trackbench/internal/domain/entity"
	"trackbench/internal/domain/port"
	"trackbench/internal/infrastructure/vision"
)

type testFrame struct{}

func (testFrame) Width() int   { return 640 }
func (testFrame) Height() int  { return 480 }
func (testFrame) Close() error { return nil }

type testSource struct {
	frames int
}

func (s *testSource) Read() (port.Frame, error) {
	if s.frames == 0 {
		return nil, io.EOF
	}
	s.frames--
	return testFrame{}, nil
}

func (s *testSource) Close() error { return nil }

type testOpener struct {
	frames int
}

func (o testOpener) Open(string) (port.FrameSource, error) {
	return &testSource{frames: o.frames}, nil
}

// testTracker теряет объект на обновлениях из lost.
type testTracker struct {
	updates int
	lost    map[int]bool
	box     entity.BoundingBox
}

func (t *testTracker) Init(_ port.Frame, box entity.BoundingBox) bool {
	t.box = box
	return true
}

func (t *testTracker) Update(port.Frame) entity.UpdateResult {
	t.updates++
	if t.lost[t.updates] {
		return entity.Lost()
	}
	return entity.Tracked(t.box)
}

func (t *testTracker) Close() error { return nil }

type testFactory struct {
	tracker *testTracker
}

func (f testFactory) New(entity.Algorithm) (port.Tracker, error) {
	return f.tracker, nil
}

func cleanEnv(t *testing.T) {
	for _, key := range []string{
		"TRACKBENCH_CONFIG", "TRACKBENCH_LOG_MODE", "TRACKBENCH_GROUND_TRUTH",
		"TRACKBENCH_METRICS_ADDR", "TRACKBENCH_HEADLESS", "TRACKBENCH_WAIT_KEY_MS",
		"TRACKBENCH_GOTURN_DIR", "TRACKBENCH_GAMMA", "TRACKBENCH_CONTRAST",
		"TRACKBENCH_BRIGHTNESS", "TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID",
	} {
		t.Setenv(key, "")
	}
}

func useDevices(t *testing.T, frames int, lost ...int) {
	tracker := &testTracker{lost: map[int]bool{}}
	for _, n := range lost {
		tracker.lost[n] = true
	}
	prev := newDevices
	newDevices = func(*config.Config) devices {
		display := vision.NewHeadlessDisplay()
		return devices{
			opener:   testOpener{frames: frames},
			trackers: testFactory{tracker: tracker},
			display:  display,
			close:    display.Close,
		}
	}
	t.Cleanup(func() { newDevices = prev })
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 2, run([]string{"runner", "KCF", "runner.mp4"}, &stdout, &stderr))
	require.Empty(t, stdout.String())
	require.Contains(t, stderr.String(), "Usage: runner TRACKERTYPE VIDEOPATH BBOXTUPLE")
}

func TestRun_PrintsOnlySummary(t *testing.T) {
	cleanEnv(t)
	useDevices(t, 5, 2, 4)

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"runner", "KCF", "runner.mp4", "(10, 20, 30, 40)"}, &stdout, &stderr))
	require.Regexp(t, `^KCF algorithm: 2 failed loops, runtime = [0-9.e+-]+\n$`, stdout.String())
}

func TestRun_GroundTruth(t *testing.T) {
	cleanEnv(t)
	path := filepath.Join(t.TempDir(), "truth.txt")
	require.NoError(t, os.WriteFile(path, []byte("(10,20,30,40)\n(10,20,30,40)\n(10,20,30,40)\n"), 0o644))
	t.Setenv("TRACKBENCH_GROUND_TRUTH", path)
	// три обновления, для третьего нет разметки
	useDevices(t, 4)

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"runner", "CSRT", "runner.mp4", "(10,20,30,40)"}, &stdout, &stderr))
	require.Regexp(t,
		`^CSRT algorithm: 0 failed loops, runtime = \S+\nmean IoU = 0\.6667\nmean unbiased IoU = 0\.6667\n$`,
		stdout.String())
}

func TestRun_Errors(t *testing.T) {
	cleanEnv(t)
	useDevices(t, 3)

	for name, tc := range map[string]struct {
		args []string
		want error
	}{
		"unknown algorithm": {[]string{"runner", "kcf", "runner.mp4", "(1,2,3,4)"}, entity.ErrNoSuchAlgorithm},
		"bad box":           {[]string{"runner", "KCF", "runner.mp4", "(1,2,3)"}, entity.ErrBadBoxFormat},
		"box outside frame": {[]string{"runner", "KCF", "runner.mp4", "(600,400,100,100)"}, entity.ErrTrackerInit},
	} {
		t.Run(name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			require.Equal(t, 1, run(tc.args, &stdout, &stderr))
			require.Empty(t, stdout.String())
			require.Contains(t, stderr.String(), tc.want.Error())
		})
	}
}

func TestRun_WithoutOpenCV(t *testing.T) {
	cleanEnv(t)
	t.Setenv("TRACKBENCH_HEADLESS", "true")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 1, run([]string{"runner", "KCF", "runner.mp4", "(1,2,3,4)"}, &stdout, &stderr))
	require.Empty(t, stdout.String())
	require.NotEmpty(t, stderr.String())
}
