package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	app "trackbench/internal/application"
	"trackbench/internal/domain/entity"
	"trackbench/internal/infrastructure/vision"
)

func TestNew_WiresServices(t *testing.T) {
	display := vision.NewHeadlessDisplay()
	c := New(Deps{
		Opener:   vision.NewCaptureOpener(),
		Trackers: vision.NewTrackerFactory(""),
		Display:  display,
		Picker:   vision.NewWindow("ROI selector"),
		Options:  app.DefaultBenchmarkOptions(),
	})
	require.NotNil(t, c.SelectionService)
	require.NotNil(t, c.BenchmarkService)

	// неизвестный алгоритм отклоняется до обращения к видео и OpenCV
	_, err := c.BenchmarkService.Run(context.Background(), app.BenchmarkRequest{
		Algorithm: "FOO",
		VideoPath: "runner.mp4",
		Box:       "(1,2,3,4)",
	})
	require.ErrorIs(t, err, entity.ErrNoSuchAlgorithm)
	require.Zero(t, display.Shown())
}
