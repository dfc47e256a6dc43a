package vision

import (
	"context"
	"errors"
	"strings"

	"github.com/sashabaranov/go-openai"
)

type OpenAIModel struct {
	client   *openai.Client
	model    string
	jsonMode bool
}

// NewOpenAIModel создаёт клиента OpenAI; baseURL позволяет указать совместимый API (Ollama и т.п.).
func NewOpenAIModel(apiKey, model, baseURL string, jsonMode bool) *OpenAIModel {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIModel{
		client:   openai.NewClientWithConfig(config),
		model:    model,
		jsonMode: jsonMode,
	}
}

func (m *OpenAIModel) Ask(ctx context.Context, req Request) (string, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:     m.model,
		MaxTokens: req.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: req.System,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: req.Prompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURI(req.Image),
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
	}
	if m.jsonMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := m.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
