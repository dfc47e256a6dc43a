package vision

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"crop-vision/config"
	"crop-vision/internal/domain/entity"
)

func newOpenAIServer(t *testing.T, reply string) (*httptest.Server, *[]string) {
	t.Helper()
	var (
		mu     sync.Mutex
		bodies []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		mu.Lock()
		bodies = append(bodies, string(body))
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": reply},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &bodies
}

func TestOpenAIModel_ClassifyRoundTrip(t *testing.T) {
	srv, bodies := newOpenAIServer(t, `{"crop": "사과", "confidence": 0.93}`)
	client := NewClient(NewOpenAIModel("test-key", "gpt-4o-mini", srv.URL+"/v1", true), 300, 500)

	img := entity.ImageData{Bytes: []byte("fake-jpeg-bytes"), MIMEType: "image/jpeg"}
	c, err := client.Classify(context.Background(), img)
	require.NoError(t, err)
	require.Equal(t, "사과", c.Label)
	require.InDelta(t, 0.93, c.Confidence, 1e-9)

	require.Len(t, *bodies, 1)
	var req struct {
		Model          string `json:"model"`
		MaxTokens      int    `json:"max_tokens"`
		ResponseFormat struct {
			Type string `json:"type"`
		} `json:"response_format"`
		Messages []json.RawMessage `json:"messages"`
	}
	require.NoError(t, json.Unmarshal([]byte((*bodies)[0]), &req))
	require.Equal(t, "gpt-4o-mini", req.Model)
	require.Equal(t, 300, req.MaxTokens)
	require.Equal(t, "json_object", req.ResponseFormat.Type)
	require.Len(t, req.Messages, 2)
	require.Contains(t, (*bodies)[0], "data:image/jpeg;base64,"+"ZmFrZS1qcGVnLWJ5dGVz")
}

func TestOpenAIModel_SameBytesSameRequest(t *testing.T) {
	srv, bodies := newOpenAIServer(t, "```json\n{\"crop\": \"딸기\", \"confidence\": 0.5}\n```")
	client := NewClient(NewOpenAIModel("test-key", "gpt-4o-mini", srv.URL+"/v1", true), 300, 500)

	// Один и тот же файл под разными именами: имени в запросе нет
	img := entity.ImageData{Bytes: []byte("same"), MIMEType: "image/png"}
	for i := 0; i < 2; i++ {
		c, err := client.Classify(context.Background(), img)
		require.NoError(t, err)
		require.Equal(t, "딸기", c.Label)
	}

	require.Len(t, *bodies, 2)
	require.Equal(t, (*bodies)[0], (*bodies)[1])
	require.False(t, strings.Contains((*bodies)[0], ".png"))
}

func TestNewModel_Providers(t *testing.T) {
	m, err := NewModel(context.Background(), visionConfig("openai"))
	require.NoError(t, err)
	require.IsType(t, &OpenAIModel{}, m)

	m, err = NewModel(context.Background(), visionConfig("ollama"))
	require.NoError(t, err)
	require.False(t, m.(*OpenAIModel).jsonMode)

	m, err = NewModel(context.Background(), visionConfig("claude"))
	require.NoError(t, err)
	require.IsType(t, &ClaudeModel{}, m)

	m, err = NewModel(context.Background(), visionConfig("gemini"))
	require.NoError(t, err)
	require.IsType(t, &GeminiModel{}, m)
	require.NoError(t, m.(*GeminiModel).Close())

	_, err = NewModel(context.Background(), visionConfig("watson"))
	require.ErrorContains(t, err, "unsupported vision provider")
}

func visionConfig(provider string) config.VisionConfig {
	cfg := config.Default().Vision
	cfg.Provider = provider
	cfg.Model = "test-model"
	cfg.APIKey = "test-key"
	return cfg
}
