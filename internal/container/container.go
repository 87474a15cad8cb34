package container

import (
	"go.uber.org/zap"

	app "trackbench/internal/application"
	"trackbench/internal/domain/port"
)

type Container struct {
	SelectionService *app.SelectionService
	BenchmarkService *app.BenchmarkService
}

// Deps перечисляет адаптеры, из которых собираются сервисы. Clock, Recorder и BoxWriter необязательны.
type Deps struct {
	Opener    port.VideoOpener
	Trackers  port.TrackerFactory
	Display   port.Display
	Picker    port.RegionPicker
	BoxWriter port.BoxWriter
	Clock     port.Clock
	Recorder  port.RunRecorder
	Options   app.BenchmarkOptions
	Log       *zap.Logger
}

func New(d Deps) *Container {
	selectionService := app.NewSelectionService(d.Opener, d.Picker, d.BoxWriter, d.Log)
	benchmarkService := app.NewBenchmarkService(d.Opener, d.Trackers, d.Display, d.Clock, d.Recorder, d.Options, d.Log)

	return &Container{
		SelectionService: selectionService,
		BenchmarkService: benchmarkService,
	}
}
