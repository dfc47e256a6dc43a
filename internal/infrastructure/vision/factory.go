package vision

import (
	"context"
	"fmt"
	"log"
	"strings"

	"crop-vision/config"
)

// NewModel выбирает провайдера по конфигурации.
func NewModel(ctx context.Context, cfg config.VisionConfig) (Model, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "", "openai":
		return NewOpenAIModel(cfg.APIKey, cfg.Model, cfg.BaseURL, true), nil

	case "gemini":
		return NewGeminiModel(ctx, cfg.APIKey, cfg.Model, cfg.BaseURL)

	case "claude":
		return NewClaudeModel(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "ollama":
		// Ollama через OpenAI-совместимый API; ключ игнорируется, но клиенту нужен непустой
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}
		log.Printf("Using Ollama via OpenAI-compatible API at %s", baseURL)
		return NewOpenAIModel(apiKey, cfg.Model, baseURL, false), nil

	default:
		return nil, fmt.Errorf("unsupported vision provider: %s", cfg.Provider)
	}
}
