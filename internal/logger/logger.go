package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	ModeProduction  = "production"
	ModeDevelopment = "development"
)

// New создаёт логгер для режима mode. Вывод всегда в stderr:
// stdout занят результатом (прямоугольник или итоговая строка).
func New(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	switch mode {
	case ModeProduction:
		cfg = zap.NewProductionConfig()
	case ModeDevelopment, "":
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log mode %q", mode)
	}

	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build()
}

// Init создаёт логгер и делает его глобальным (zap.L(), zap.S()).
func Init(mode string) (*zap.Logger, error) {
	l, err := New(mode)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(l)
	return l, nil
}
