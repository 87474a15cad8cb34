package entity

import "errors"

// Ошибки запуска. Все они обнаруживаются до начала покадрового цикла.
var (
	ErrVideoOpen            = errors.New("could not open video")
	ErrEmptyVideo           = errors.New("cannot read video file")
	ErrBadBoxFormat         = errors.New("bad bounding box format")
	ErrNoSuchAlgorithm      = errors.New("no such tracking algorithm")
	ErrAlgorithmUnavailable = errors.New("tracking algorithm is not available")
	ErrTrackerInit          = errors.New("tracker initialization failed")
	ErrEmptySelection       = errors.New("empty region selected")
)
