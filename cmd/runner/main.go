package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"trackbench/config"
	telegram "trackbench/internal/api"
	app "trackbench/internal/application"
	"trackbench/internal/container"
	"trackbench/internal/domain/port"
	"trackbench/internal/infrastructure/metrics"
	"trackbench/internal/infrastructure/storage"
	"trackbench/internal/infrastructure/vision"
	"trackbench/internal/logger"
)

const usage = `Usage: runner TRACKERTYPE VIDEOPATH BBOXTUPLE
	TRACKERTYPE: BOOSTING, MIL, KCF, TLD, MEDIANFLOW, GOTURN, MOSSE or CSRT
	VIDEOPATH:   ../samples/runner.mp4
	BBOXTUPLE:   (111,222,333,444)`

// devices содержит адаптеры OpenCV, нужные для прогона.
type devices struct {
	opener   port.VideoOpener
	trackers port.TrackerFactory
	display  port.Display
	close    func() error
}

// newDevices создаёт адаптеры по конфигурации.
var newDevices = func(cfg *config.Config) devices {
	dev := devices{
		opener:   vision.NewCaptureOpener().WithCorrection(cfg.Correction),
		trackers: vision.NewTrackerFactory(cfg.Trackers.GoturnDir),
	}
	if cfg.Display.Headless {
		display := vision.NewHeadlessDisplay()
		dev.display, dev.close = display, display.Close
	} else {
		window := vision.NewWindow(cfg.Display.TrackingWindow)
		dev.display, dev.close = window, window.Close
	}
	return dev
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) != 4 {
		fmt.Fprintln(stderr, usage)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}

	log, err := logger.Init(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to init logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	log.Debug("arguments", zap.String("bbox", args[3]), zap.Int("argc", len(args)))

	// Цикл проверяет ctx на каждом кадре, поэтому Ctrl-C останавливает прогон штатно
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder := metrics.NewRecorder(cfg.Metrics.LatencyBuckets)
	if cfg.Metrics.Addr != "" {
		srv := metrics.Serve(cfg.Metrics.Addr, recorder, log)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Warn("metrics server shutdown", zap.Error(err))
			}
		}()
	}

	dev := newDevices(cfg)
	defer dev.close()

	c := container.New(container.Deps{
		Opener:   dev.opener,
		Trackers: dev.trackers,
		Display:  dev.display,
		Recorder: recorder,
		Options: app.BenchmarkOptions{
			WaitKey:   time.Duration(cfg.Display.WaitKeyMillis) * time.Millisecond,
			CancelKey: cfg.Display.CancelKey,
		},
		Log: log,
	})

	req := app.BenchmarkRequest{
		Algorithm: args[1],
		VideoPath: args[2],
		Box:       args[3],
	}
	if cfg.GroundTruth != "" {
		req.GroundTruth = storage.NewBoxFile(cfg.GroundTruth)
	}

	summary, err := c.BenchmarkService.Run(ctx, req)
	if err != nil {
		log.Error("benchmark failed", zap.String("algorithm", req.Algorithm), zap.String("video", req.VideoPath), zap.Error(err))
		fmt.Fprintln(stderr, err)
		return 1
	}

	fmt.Fprintln(stdout, summary.Line())
	if summary.HasIoU {
		fmt.Fprintf(stdout, "mean IoU = %.4f\n", summary.MeanIoU)
		fmt.Fprintf(stdout, "mean unbiased IoU = %.4f\n", summary.MeanUnbiasedIoU)
	}

	if cfg.Telegram.Token != "" {
		reporter, err := telegram.NewReporter(cfg.Telegram.Token, cfg.Telegram.ChatID, log)
		if err != nil {
			log.Warn("telegram reporter disabled", zap.Error(err))
			return 0
		}
		if err := reporter.Report(context.Background(), summary); err != nil {
			log.Warn("summary not delivered", zap.Error(err))
		}
	}

	return 0
}
