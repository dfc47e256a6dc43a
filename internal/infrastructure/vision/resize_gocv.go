//go:build gocv
// +build gocv

package vision

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// reencode уменьшает картинку через OpenCV и кодирует её в JPEG.
func (p *Preparer) reencode(raw []byte) ([]byte, error) {
	src, err := gocv.IMDecode(raw, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	defer src.Close()
	if src.Empty() {
		return nil, errors.New("failed to decode image")
	}

	dst := src
	w, h := p.targetSize(src.Cols(), src.Rows())
	if w != src.Cols() || h != src.Rows() {
		resized := gocv.NewMat()
		defer resized.Close()
		gocv.Resize(src, &resized, image.Pt(w, h), 0, 0, gocv.InterpolationArea)
		dst = resized
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, dst, []int{gocv.IMWriteJpegQuality, p.JPEGQuality})
	if err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	defer buf.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}
