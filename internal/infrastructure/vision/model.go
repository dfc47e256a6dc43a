package vision

import (
	"context"
	"encoding/base64"

	"crop-vision/internal/domain/entity"
)

// Request один вызов vision-модели: картинка и фиксированная инструкция.
type Request struct {
	System    string
	Prompt    string
	Image     entity.ImageData
	MaxTokens int
}

// Model провайдер vision-модели, возвращает сырой текст ответа.
type Model interface {
	Ask(ctx context.Context, req Request) (string, error)
}

// dataURI кодирует картинку в data:image/...;base64,...
func dataURI(img entity.ImageData) string {
	mime := img.MIMEType
	if mime == "" {
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Bytes)
}
