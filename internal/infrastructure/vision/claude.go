package vision

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"
)

type ClaudeModel struct {
	client *anthropic.Client
	model  string
}

func NewClaudeModel(apiKey, model, baseURL string) *ClaudeModel {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}
	return &ClaudeModel{
		client: anthropic.NewClient(apiKey, opts...),
		model:  model,
	}
}

func (m *ClaudeModel) Ask(ctx context.Context, req Request) (string, error) {
	mime := req.Image.MIMEType
	if mime == "" {
		mime = "image/jpeg"
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1000
	}

	resp, err := m.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(m.model),
		System:    req.System,
		MaxTokens: maxTokens,
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewImageMessageContent(anthropic.NewMessageContentSource(
						anthropic.MessagesContentSourceTypeBase64,
						mime,
						base64.StdEncoding.EncodeToString(req.Image.Bytes),
					)),
					anthropic.NewTextMessageContent(req.Prompt),
				},
			},
		},
	})
	if err != nil {
		return "", err
	}

	for _, c := range resp.Content {
		if c.Text != nil {
			return strings.TrimSpace(*c.Text), nil
		}
	}
	return "", errors.New("no response content")
}
