package vision

import (
	"context"
	"fmt"

	"crop-vision/internal/domain/entity"
	"crop-vision/internal/domain/port"
)

// Client классифицирует и описывает культуры поверх любой Model.
type Client struct {
	model          Model
	classifyTokens int
	identifyTokens int
}

// NewClient создаёт клиента с лимитами токенов на ответ.
func NewClient(model Model, classifyTokens, identifyTokens int) *Client {
	return &Client{
		model:          model,
		classifyTokens: classifyTokens,
		identifyTokens: identifyTokens,
	}
}

// Classify отправляет картинку с фиксированной инструкцией и разбирает метку и уверенность.
func (c *Client) Classify(ctx context.Context, img entity.ImageData) (*entity.Classification, error) {
	text, err := c.model.Ask(ctx, Request{
		System:    classifySystemPrompt,
		Prompt:    classifyUserPrompt,
		Image:     img,
		MaxTokens: c.classifyTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("vision request: %w", err)
	}

	result, err := ParseClassification(text)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Describe возвращает карточку культуры.
func (c *Client) Describe(ctx context.Context, img entity.ImageData) (*entity.CropInfo, error) {
	text, err := c.model.Ask(ctx, Request{
		System:    identifySystemPrompt,
		Prompt:    identifyUserPrompt,
		Image:     img,
		MaxTokens: c.identifyTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("vision request: %w", err)
	}

	info, err := ParseCropInfo(text)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

var (
	_ port.CropClassifier = (*Client)(nil)
	_ port.CropDescriber  = (*Client)(nil)
)
