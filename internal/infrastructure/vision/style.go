package vision

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"trackbench/internal/domain/entity"
)

// Оформление overlay. Цвета в RGB, gocv сам переставляет каналы в BGR.
var (
	BoxColor   = color.RGBA{B: 255, A: 255}
	InfoColor  = color.RGBA{R: 50, G: 170, B: 50, A: 255}
	AlertColor = color.RGBA{R: 255, A: 255}
)

const (
	BoxThickness  = 2
	TextScale     = 0.75
	TextThickness = 2
)

// TextColor выбирает цвет надписи по её виду.
func TextColor(kind entity.TextKind) color.RGBA {
	if kind == entity.TextAlert {
		return AlertColor
	}
	return InfoColor
}

// Алгоритмы, для которых в gocv есть конструктор. Остальные из перечисления
// (BOOSTING, TLD, MEDIANFLOW, MOSSE) в OpenCV 4.5+ ушли в legacy и gocv их не экспортирует.
var boundAlgorithms = map[entity.Algorithm]bool{
	entity.AlgorithmMIL:    true,
	entity.AlgorithmGOTURN: true,
	entity.AlgorithmKCF:    true,
	entity.AlgorithmCSRT:   true,
}

// Bound сообщает, можно ли создать трекер algorithm через gocv.
func Bound(algorithm entity.Algorithm) bool {
	return boundAlgorithms[algorithm]
}

// GOTURN загружает сеть из каталога модели.
var goturnModelFiles = []string{"goturn.prototxt", "goturn.caffemodel"}

// goturnModelPresent проверяет, что файлы модели GOTURN лежат в dir.
func goturnModelPresent(dir string) bool {
	for _, name := range goturnModelFiles {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return false
		}
	}
	return true
}

// resolveModelDir возвращает каталог модели GOTURN, по умолчанию текущий.
func resolveModelDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("%w: GOTURN model directory: %v", entity.ErrAlgorithmUnavailable, err)
	}
	return wd, nil
}
