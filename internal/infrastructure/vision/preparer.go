package vision

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"crop-vision/internal/domain/entity"
	"crop-vision/internal/domain/port"
)

// Форматы, которые vision API принимают как есть.
var passthroughFormats = map[string]bool{
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// Preparer приводит изображение к виду, пригодному для API:
// слишком большие или неподдерживаемые (bmp) картинки перекодируются в JPEG.
type Preparer struct {
	MaxSide     int
	JPEGQuality int
}

// NewPreparer создаёт подготовщик с ограничением по длинной стороне.
func NewPreparer(maxSide, quality int) *Preparer {
	return &Preparer{
		MaxSide:     maxSide,
		JPEGQuality: quality,
	}
}

// Prepare возвращает байты и MIME-тип; результат зависит только от содержимого.
func (p *Preparer) Prepare(raw []byte) (entity.ImageData, error) {
	if len(raw) == 0 {
		return entity.ImageData{}, errors.New("empty image")
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return entity.ImageData{}, fmt.Errorf("failed to decode image: %w", err)
	}

	if passthroughFormats[format] && !p.tooLarge(cfg.Width, cfg.Height) {
		return entity.ImageData{Bytes: raw, MIMEType: "image/" + format}, nil
	}

	out, err := p.reencode(raw)
	if err != nil {
		return entity.ImageData{}, err
	}
	return entity.ImageData{Bytes: out, MIMEType: "image/jpeg"}, nil
}

func (p *Preparer) tooLarge(w, h int) bool {
	return p.MaxSide > 0 && (w > p.MaxSide || h > p.MaxSide)
}

// targetSize сохраняет пропорции, длинная сторона не больше MaxSide.
func (p *Preparer) targetSize(w, h int) (int, int) {
	if !p.tooLarge(w, h) {
		return w, h
	}
	if w >= h {
		return p.MaxSide, maxInt(1, h*p.MaxSide/w)
	}
	return maxInt(1, w*p.MaxSide/h), p.MaxSide
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

var _ port.ImagePreparer = (*Preparer)(nil)
