package entity

import "math"

// Correction задаёт поправку яркости кадров до трекинга: сначала
// v' = Contrast*v + Brightness, затем гамма v' = 255*(v'/255)^Gamma.
// Нулевое значение ничего не меняет.
type Correction struct {
	Gamma      float64 `yaml:"gamma"`      // 0 или 1 - без гамма-коррекции
	Contrast   float64 `yaml:"contrast"`   // множитель alpha, 0 или 1 - без изменения
	Brightness float64 `yaml:"brightness"` // сдвиг beta
}

// HasGamma сообщает, нужна ли гамма-коррекция.
func (c Correction) HasGamma() bool {
	return c.Gamma > 0 && c.Gamma != 1
}

// HasLinear сообщает, нужна ли поправка контраста или яркости.
func (c Correction) HasLinear() bool {
	return c.Alpha() != 1 || c.Brightness != 0
}

// Enabled сообщает, меняет ли поправка хоть что-то.
func (c Correction) Enabled() bool {
	return c.HasGamma() || c.HasLinear()
}

// Alpha возвращает множитель контраста, 0 считается единицей.
func (c Correction) Alpha() float64 {
	if c.Contrast == 0 {
		return 1
	}
	return c.Contrast
}

// GammaTable строит таблицу подстановки для 8-битных каналов.
func GammaTable(gamma float64) [256]uint8 {
	var table [256]uint8
	for i := range table {
		table[i] = saturate(math.Pow(float64(i)/255, gamma) * 255)
	}
	return table
}

// LinearValue применяет контраст и яркость к одному значению канала.
func (c Correction) LinearValue(v uint8) uint8 {
	return saturate(c.Alpha()*float64(v) + c.Brightness)
}

func saturate(v float64) uint8 {
	v = math.RoundToEven(v)
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}
