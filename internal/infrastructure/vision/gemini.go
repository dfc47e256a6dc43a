package vision

import (
	"context"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiModel struct {
	client *genai.Client
	model  string
}

// NewGeminiModel создаёт клиента Gemini; endpoint нужен только для нестандартного адреса API.
func NewGeminiModel(ctx context.Context, apiKey, model, endpoint string) (*GeminiModel, error) {
	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &GeminiModel{
		client: client,
		model:  model,
	}, nil
}

func (m *GeminiModel) Ask(ctx context.Context, req Request) (string, error) {
	model := m.client.GenerativeModel(m.model)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	model.ResponseMIMEType = "application/json"
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}

	format := strings.TrimPrefix(req.Image.MIMEType, "image/")
	if format == "" {
		format = "jpeg"
	}

	resp, err := model.GenerateContent(ctx, genai.ImageData(format, req.Image.Bytes), genai.Text(req.Prompt))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("no response candidates or content")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("no text in response")
	}
	return strings.TrimSpace(sb.String()), nil
}

func (m *GeminiModel) Close() error {
	return m.client.Close()
}
