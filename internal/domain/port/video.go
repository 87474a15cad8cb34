package port

// Frame представляет декодированный кадр видео. Внутреннее представление знает только адаптер.
type Frame interface {
	Width() int
	Height() int
	// Close освобождает память кадра.
	Close() error
}

// FrameSource выдаёт кадры один раз и по порядку.
type FrameSource interface {
	// Read возвращает следующий кадр или io.EOF, когда видео закончилось.
	Read() (Frame, error)

	Close() error
}

// VideoOpener открывает видеофайл.
type VideoOpener interface {
	Open(path string) (FrameSource, error)
}
