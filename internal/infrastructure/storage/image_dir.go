package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"crop-vision/internal/domain/entity"
	"crop-vision/internal/domain/port"
)

// ImageDir каталог с изображениями (без рекурсии)
type ImageDir struct {
	root string
}

func NewImageDir(root string) *ImageDir {
	return &ImageDir{root: root}
}

func (d *ImageDir) Path() string {
	return d.root
}

// IsImageFile проверяет расширение файла
func IsImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp":
		return true
	default:
		return false
	}
}

// List возвращает имена изображений в порядке байтового сравнения
func (d *ImageDir) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", entity.ErrImageDirNotFound, d.root)
	}
	if err != nil {
		return nil, fmt.Errorf("read image dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() && e.Type()&fs.ModeSymlink == 0 {
			continue
		}
		if !IsImageFile(e.Name()) {
			continue
		}
		if e.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(filepath.Join(d.root, e.Name()))
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %s", entity.ErrNoImages, d.root)
	}
	return names, nil
}

// Read читает файл; имя не должно выходить за пределы каталога
func (d *ImageDir) Read(ctx context.Context, name string) ([]byte, error) {
	if name != filepath.Base(name) {
		return nil, fmt.Errorf("invalid image name %q", name)
	}
	data, err := os.ReadFile(filepath.Join(d.root, name))
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", name, err)
	}
	return data, nil
}

var _ port.ImageSource = (*ImageDir)(nil)
