package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"crop-vision/internal/domain/entity"
)

var envKeys = []string{
	"VISION_PROVIDER", "VISION_MODEL", "VISION_BASE_URL", "OPENAI_API_KEY", "VISION_API_KEY",
	"TELEGRAM_TOKEN", "IMAGE_DIR", "ANSWER_PATH", "PREDICTIONS_PATH", "PORT",
	"CLASSIFY_WORKERS", "REQUEST_TIMEOUT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "..", "nonexistent", DefaultPath))
	require.Error(t, err)
	require.Nil(t, cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	require.Equal(t, "openai", cfg.Vision.Provider)
	require.Equal(t, "gpt-4o-mini", cfg.Vision.Model)
	require.Equal(t, 60*time.Second, cfg.Vision.RequestTimeout)
	require.Equal(t, "img", cfg.Paths.ImageDir)
	require.Equal(t, "data/answer.csv", cfg.Paths.Answers)
	require.Equal(t, "data/predictions.csv", cfg.Paths.Predictions)
	require.Equal(t, 1, cfg.Classify.Workers)
	require.ErrorIs(t, cfg.RequireCredential(), entity.ErrMissingAPIKey)
}

func TestLoad_TOMLAndEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[vision]
provider = "claude"
model = "claude-3-5-sonnet-latest"
request_timeout = "15s"
max_image_side = 768

[paths]
image_dir = "photos"

[classify]
workers = 4
`), 0o644))

	t.Setenv("VISION_MODEL", "claude-3-haiku")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ANSWER_PATH", "labels.csv")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "claude", cfg.Vision.Provider)
	require.Equal(t, "claude-3-haiku", cfg.Vision.Model)
	require.Equal(t, 15*time.Second, cfg.Vision.RequestTimeout)
	require.Equal(t, 768, cfg.Vision.MaxImageSide)
	require.Equal(t, "photos", cfg.Paths.ImageDir)
	require.Equal(t, "labels.csv", cfg.Paths.Answers)
	require.Equal(t, 4, cfg.Classify.Workers)
	require.NoError(t, cfg.RequireCredential())
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)

	t.Setenv("CLASSIFY_WORKERS", "many")
	_, err := Load("")
	require.ErrorContains(t, err, "CLASSIFY_WORKERS")

	t.Setenv("CLASSIFY_WORKERS", "")
	t.Setenv("REQUEST_TIMEOUT", "soon")
	_, err = Load("")
	require.ErrorContains(t, err, "request timeout")

	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[vision\n"), 0o644))
	t.Setenv("REQUEST_TIMEOUT", "")
	_, err = Load(path)
	require.ErrorContains(t, err, "failed to parse TOML")
}

func TestRequireCredential_Ollama(t *testing.T) {
	cfg := Default()
	cfg.Vision.Provider = "ollama"
	require.NoError(t, cfg.RequireCredential())
}

func TestLoad_ModelFollowsProvider(t *testing.T) {
	clearEnv(t)

	for provider, want := range map[string]string{
		"openai":  "gpt-4o-mini",
		" Gemini": "gemini-1.5-flash",
		"claude":  "claude-3-5-sonnet-latest",
		"ollama":  "llava",
	} {
		t.Setenv("VISION_PROVIDER", provider)
		cfg, err := Load("")
		require.NoError(t, err)
		require.Equal(t, want, cfg.Vision.Model, provider)
	}

	t.Setenv("VISION_PROVIDER", "gemini")
	t.Setenv("VISION_MODEL", "gemini-2.0-flash")
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "gemini-2.0-flash", cfg.Vision.Model)
}

func TestRequireCredential_NamesProviderKey(t *testing.T) {
	cfg := Default()
	require.ErrorContains(t, cfg.RequireCredential(), "OPENAI_API_KEY")

	cfg.Vision.Provider = "claude"
	err := cfg.RequireCredential()
	require.ErrorIs(t, err, entity.ErrMissingAPIKey)
	require.ErrorContains(t, err, "VISION_API_KEY")
	require.NotContains(t, err.Error(), "OPENAI_API_KEY")
}
