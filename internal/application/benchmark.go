package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"trackbench/internal/domain/entity"
	"trackbench/internal/domain/port"
)

const (
	// KeyEscape задаёт код клавиши Esc, которой оператор прерывает прогон.
	KeyEscape = 27

	failureBanner = "Tracking failure detected"
)

// BenchmarkOptions задаёт параметры покадрового цикла.
type BenchmarkOptions struct {
	WaitKey   time.Duration // сколько ждать нажатия после показа кадра
	CancelKey int           // клавиша досрочной остановки
}

// DefaultBenchmarkOptions возвращает ожидание 1 мс и остановку по Esc.
func DefaultBenchmarkOptions() BenchmarkOptions {
	return BenchmarkOptions{WaitKey: time.Millisecond, CancelKey: KeyEscape}
}

// BenchmarkRequest содержит аргументы одного прогона в том виде, в каком их ввёл оператор.
type BenchmarkRequest struct {
	Algorithm   string
	VideoPath   string
	Box         string
	GroundTruth port.BoxReader // необязательная эталонная разметка
}

// BenchmarkService прогоняет выбранный трекер по видео и считает статистику.
type BenchmarkService struct {
	opener   port.VideoOpener
	trackers port.TrackerFactory
	display  port.Display
	clock    port.Clock
	recorder port.RunRecorder
	opts     BenchmarkOptions
	log      *zap.Logger
}

// NewBenchmarkService собирает сервис. clock и recorder могут быть nil.
func NewBenchmarkService(
	opener port.VideoOpener,
	trackers port.TrackerFactory,
	display port.Display,
	clock port.Clock,
	recorder port.RunRecorder,
	opts BenchmarkOptions,
	log *zap.Logger,
) *BenchmarkService {
	if clock == nil {
		clock = SystemClock{}
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &BenchmarkService{
		opener:   opener,
		trackers: trackers,
		display:  display,
		clock:    clock,
		recorder: recorder,
		opts:     opts,
		log:      log,
	}
}

// Run выполняет прогон. Потеря объекта на кадре не ошибка: она попадает в статистику.
// Остановка оператором (клавиша или отмена ctx) тоже штатное завершение.
func (s *BenchmarkService) Run(ctx context.Context, req BenchmarkRequest) (*entity.RunSummary, error) {
	algorithm, err := entity.ParseAlgorithm(req.Algorithm)
	if err != nil {
		return nil, err
	}

	box, err := entity.ParseBox(req.Box)
	if err != nil {
		return nil, err
	}

	var truth []entity.BoundingBox
	if req.GroundTruth != nil {
		truth, err = req.GroundTruth.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load ground truth: %w", err)
		}
	}

	tracker, err := s.trackers.New(algorithm)
	if err != nil {
		return nil, err
	}
	defer tracker.Close()

	src, err := s.opener.Open(req.VideoPath)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	first, err := readFirstFrame(src, req.VideoPath)
	if err != nil {
		return nil, err
	}

	if !box.Within(first.Width(), first.Height()) {
		first.Close()
		return nil, fmt.Errorf("%w: box %s is outside the %dx%d frame", entity.ErrTrackerInit, box, first.Width(), first.Height())
	}

	frameArea := first.Width() * first.Height()
	summary := &entity.RunSummary{RunID: uuid.NewString(), Algorithm: algorithm}
	log := s.log.With(zap.String("run_id", summary.RunID), zap.Stringer("algorithm", algorithm))

	start := s.clock.Now()
	ok := tracker.Init(first, box)
	first.Close()
	if !ok {
		return nil, fmt.Errorf("%w: %s rejected box %s", entity.ErrTrackerInit, algorithm, box)
	}
	log.Info("tracker initialized", zap.Stringer("box", box), zap.String("video", req.VideoPath))

	var fps, ious, unbiased []float64
	for {
		if ctx.Err() != nil {
			summary.Cancelled = true
			break
		}

		frame, err := src.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read frame %d: %w", summary.Frames+1, err)
		}

		t0 := s.clock.Now()
		result := tracker.Update(frame)
		latency := s.clock.Now().Sub(t0)

		summary.Frames++
		rate := framesPerSecond(latency)
		fps = append(fps, rate)
		s.recorder.ObserveUpdate(algorithm, latency, result.IsTracked())

		overlay := entity.Overlay{}
		if estimate, tracked := result.Box(); tracked {
			box = estimate
			overlay.Box = &estimate
		} else {
			// прямоугольник остаётся прежним
			summary.Failures++
			overlay.Texts = append(overlay.Texts, entity.OverlayText{Text: failureBanner, X: 100, Y: 80, Kind: entity.TextAlert})
		}
		overlay.Texts = append(overlay.Texts,
			entity.OverlayText{Text: string(algorithm) + " Tracker", X: 100, Y: 20, Kind: entity.TextInfo},
			entity.OverlayText{Text: fmt.Sprintf("FPS : %d", int(rate)), X: 100, Y: 50, Kind: entity.TextInfo},
		)

		if req.GroundTruth != nil {
			iou, uiou := frameIoU(result, truth, summary.Frames, frameArea)
			ious = append(ious, iou)
			unbiased = append(unbiased, uiou)
		}

		err = s.display.Show(frame, overlay)
		frame.Close()
		if err != nil {
			return nil, fmt.Errorf("show frame %d: %w", summary.Frames, err)
		}

		if key := s.display.WaitKey(s.opts.WaitKey); key >= 0 && key&0xff == s.opts.CancelKey {
			summary.Cancelled = true
			break
		}
	}

	summary.Elapsed = s.clock.Now().Sub(start)
	if summary.Elapsed < 0 {
		summary.Elapsed = 0
	}
	if len(fps) > 0 {
		summary.FPSMean = stat.Mean(fps, nil)
	}
	if len(fps) > 1 {
		summary.FPSStdDev = stat.StdDev(fps, nil)
	}
	if len(ious) > 0 {
		summary.MeanIoU = stat.Mean(ious, nil)
		summary.MeanUnbiasedIoU = stat.Mean(unbiased, nil)
		summary.HasIoU = true
	}

	s.recorder.ObserveRun(summary)
	log.Info("run finished",
		zap.Int("frames", summary.Frames),
		zap.Int("failures", summary.Failures),
		zap.Duration("elapsed", summary.Elapsed),
		zap.Bool("cancelled", summary.Cancelled),
		zap.Float64("fps_mean", summary.FPSMean),
		zap.Float64("fps_stddev", summary.FPSStdDev),
	)

	return summary, nil
}

// framesPerSecond считает мгновенную частоту по длительности одного обновления.
func framesPerSecond(latency time.Duration) float64 {
	if latency <= 0 {
		return 0
	}
	return float64(time.Second) / float64(latency)
}

// frameIoU сравнивает результат на кадре index с эталоном и возвращает
// обычный и несмещённый IoU. Потеря объекта и кадр без разметки дают 0.
func frameIoU(result entity.UpdateResult, truth []entity.BoundingBox, index, frameArea int) (float64, float64) {
	box, tracked := result.Box()
	if !tracked || index >= len(truth) {
		return 0, 0
	}
	return box.IoU(truth[index]), truth[index].UnbiasedIoU(box, frameArea)
}

type nopRecorder struct{}

func (nopRecorder) ObserveUpdate(entity.Algorithm, time.Duration, bool) {}
func (nopRecorder) ObserveRun(*entity.RunSummary)                       {}
