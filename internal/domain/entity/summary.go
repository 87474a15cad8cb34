package entity

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// RunSummary описывает итог одного прогона трекера по видео.
type RunSummary struct {
	RunID           string
	Algorithm       Algorithm
	Frames          int           // обработано кадров после первого
	Failures        int           // кадров, где объект потерян
	Elapsed         time.Duration // от инициализации до выхода из цикла
	Cancelled       bool          // остановлен оператором
	FPSMean         float64
	FPSStdDev       float64
	MeanIoU         float64
	MeanUnbiasedIoU float64
	HasIoU          bool // MeanIoU и MeanUnbiasedIoU посчитаны по эталонной разметке
}

// Line возвращает итоговую строку отчёта.
func (s *RunSummary) Line() string {
	return fmt.Sprintf("%s algorithm: %d failed loops, runtime = %s",
		s.Algorithm, s.Failures, FormatSeconds(s.Elapsed.Seconds()))
}

// FormatSeconds печатает число так же, как str(float) в Python:
// кратчайшая запись, целые с ".0", экспонента вне [1e-4, 1e16).
func FormatSeconds(v float64) string {
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}
