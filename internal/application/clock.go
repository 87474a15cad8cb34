package app

import "time"

// SystemClock берёт время из time.Now, монотонные показания сохраняются.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
