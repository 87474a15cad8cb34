package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"trackbench/internal/domain/entity"
	"trackbench/internal/domain/port"
)

// SelectionService выбирает начальную область интереса на первом кадре видео.
type SelectionService struct {
	opener port.VideoOpener
	picker port.RegionPicker
	writer port.BoxWriter
	log    *zap.Logger
}

// NewSelectionService создаёт сервис выбора. writer может быть nil.
func NewSelectionService(opener port.VideoOpener, picker port.RegionPicker, writer port.BoxWriter, log *zap.Logger) *SelectionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SelectionService{
		opener: opener,
		picker: picker,
		writer: writer,
		log:    log,
	}
}

// Select показывает первый кадр оператору и возвращает выбранный прямоугольник.
// Пустой выбор (отмена или нулевая площадь) возвращает ErrEmptySelection.
func (s *SelectionService) Select(ctx context.Context, videoPath string) (entity.BoundingBox, error) {
	src, err := s.opener.Open(videoPath)
	if err != nil {
		return entity.BoundingBox{}, err
	}
	defer src.Close()

	frame, err := readFirstFrame(src, videoPath)
	if err != nil {
		return entity.BoundingBox{}, err
	}
	defer frame.Close()

	box, err := s.picker.SelectRegion(ctx, frame)
	if err != nil {
		return entity.BoundingBox{}, err
	}
	if box.Empty() {
		return entity.BoundingBox{}, fmt.Errorf("%w: %s", entity.ErrEmptySelection, box)
	}

	s.log.Info("region selected",
		zap.String("video", videoPath),
		zap.Stringer("box", box),
		zap.Int("frame_width", frame.Width()),
		zap.Int("frame_height", frame.Height()),
	)

	if s.writer != nil {
		if err := s.writer.Save(ctx, box); err != nil {
			return entity.BoundingBox{}, fmt.Errorf("save selection: %w", err)
		}
	}

	return box, nil
}

// readFirstFrame читает первый кадр; конец потока на этом шаге означает пустое видео.
func readFirstFrame(src port.FrameSource, videoPath string) (port.Frame, error) {
	frame, err := src.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s", entity.ErrEmptyVideo, videoPath)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", entity.ErrEmptyVideo, videoPath, err)
	}
	return frame, nil
}
