package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"trackbench/internal/domain/entity"
	"trackbench/internal/domain/port"
)

// BoxFile хранит прямоугольники в текстовом файле, по одному на строку.
// Запись всегда в каноническом виде (x,y,w,h); при чтении понимается
// ещё и формат OpenCV "[w x h from (x, y)]".
type BoxFile struct {
	path string
}

// NewBoxFile создаёт хранилище поверх файла path.
func NewBoxFile(path string) *BoxFile {
	return &BoxFile{path: path}
}

// Path возвращает путь к файлу.
func (f *BoxFile) Path() string {
	return f.path
}

// Save дописывает прямоугольники в конец файла.
func (f *BoxFile) Save(ctx context.Context, boxes ...entity.BoundingBox) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", f.path, err)
	}

	w := bufio.NewWriter(file)
	for _, b := range boxes {
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			file.Close()
			return fmt.Errorf("write %s: %w", f.path, err)
		}
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return file.Close()
}

// Load читает все прямоугольники. Пустые строки и строки с # пропускаются.
func (f *BoxFile) Load(ctx context.Context) ([]entity.BoundingBox, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.path, err)
	}
	defer file.Close()

	var boxes []entity.BoundingBox
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		b, err := parseLine(text)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", f.path, line, err)
		}
		boxes = append(boxes, b)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	return boxes, nil
}

func parseLine(text string) (entity.BoundingBox, error) {
	if !strings.HasPrefix(text, "[") {
		return entity.ParseBox(text)
	}

	var b entity.BoundingBox
	n, err := fmt.Sscanf(text, "[%d x %d from (%d, %d)]", &b.Width, &b.Height, &b.X, &b.Y)
	if err != nil || n != 4 {
		return entity.BoundingBox{}, errors.Join(entity.ErrBadBoxFormat, fmt.Errorf("%q", text))
	}
	return b, nil
}

// Проверка реализации интерфейсов.
var (
	_ port.BoxWriter = (*BoxFile)(nil)
	_ port.BoxReader = (*BoxFile)(nil)
)
