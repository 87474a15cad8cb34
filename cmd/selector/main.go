package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"trackbench/config"
	"trackbench/internal/container"
	"trackbench/internal/domain/port"
	"trackbench/internal/infrastructure/storage"
	"trackbench/internal/infrastructure/vision"
	"trackbench/internal/logger"
)

const usage = "Usage: selector VIDEOPATH\n\tdraw the box around the object, confirm with Enter or Space, cancel with Esc or c"

// devices содержит адаптеры OpenCV, нужные для выбора области.
type devices struct {
	opener port.VideoOpener
	picker port.RegionPicker
	close  func() error
}

// newDevices создаёт адаптеры по конфигурации.
var newDevices = func(cfg *config.Config) devices {
	window := vision.NewWindow(cfg.Display.SelectWindow)
	return devices{
		opener: vision.NewCaptureOpener().WithCorrection(cfg.Correction),
		picker: window,
		close:  window.Close,
	}
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(stderr, usage)
		return 2
	}
	videoPath := args[1]

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

	// SIGINT не перехватываем: SelectROI блокируется внутри OpenCV и отмену ctx не увидит,
	// а прерывание из терминала должно завершать процесс.
	ctx := context.Background()

	dev := newDevices(cfg)
	defer dev.close()

	var writer port.BoxWriter
	if cfg.Selector.SavePath != "" {
		writer = storage.NewBoxFile(cfg.Selector.SavePath)
	}

	c := container.New(container.Deps{
		Opener:    dev.opener,
		Picker:    dev.picker,
		BoxWriter: writer,
		Log:       log,
	})

	box, err := c.SelectionService.Select(ctx, videoPath)
	if err != nil {
		log.Error("selection failed", zap.String("video", videoPath), zap.Error(err))
		fmt.Fprintln(stderr, err)
		return 1
	}

	// Единственный вывод в stdout: его копируют в аргументы runner
	fmt.Fprintln(stdout, box.String())
	return 0
}
