package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"crop-vision/internal/domain/entity"
)

// VisionConfig настройки провайдера vision-модели.
type VisionConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	ClassifyTokens int    `toml:"classify_max_tokens"`
	IdentifyTokens int    `toml:"identify_max_tokens"`
	Timeout        string `toml:"request_timeout"` // например "60s"
	MaxImageSide   int    `toml:"max_image_side"`
	JPEGQuality    int    `toml:"jpeg_quality"`

	RequestTimeout time.Duration `toml:"-"`
}

// PathsConfig пути к изображениям и CSV-реестрам.
type PathsConfig struct {
	ImageDir    string `toml:"image_dir"`
	Answers     string `toml:"answers"`
	Predictions string `toml:"predictions"`
}

type ClassifyConfig struct {
	Workers int `toml:"workers"`
}

type ServerConfig struct {
	Port string `toml:"port"`
}

type TelegramConfig struct {
	Token string `toml:"token"`
}

type Config struct {
	Vision   VisionConfig   `toml:"vision"`
	Paths    PathsConfig    `toml:"paths"`
	Classify ClassifyConfig `toml:"classify"`
	Server   ServerConfig   `toml:"server"`
	Telegram TelegramConfig `toml:"telegram"`
}

// defaultModels модель по умолчанию для каждого провайдера; подставляется после env.
var defaultModels = map[string]string{
	"openai": "gpt-4o-mini",
	"gemini": "gemini-1.5-flash",
	"claude": "claude-3-5-sonnet-latest",
	"ollama": "llava",
}

// Default возвращает конфигурацию со значениями по умолчанию.
// Модель не задана: она зависит от провайдера и выбирается в Load.
func Default() *Config {
	return &Config{
		Vision: VisionConfig{
			Provider:       "openai",
			ClassifyTokens: 300,
			IdentifyTokens: 500,
			RequestTimeout: 60 * time.Second,
			MaxImageSide:   1024,
			JPEGQuality:    90,
		},
		Paths: PathsConfig{
			ImageDir:    "img",
			Answers:     "data/answer.csv",
			Predictions: "data/predictions.csv",
		},
		Classify: ClassifyConfig{Workers: 1},
		Server:   ServerConfig{Port: "8080"},
	}
}

// Load читает .env, затем необязательный TOML-файл, затем переменные окружения.
// Пустой path означает "только значения по умолчанию и окружение".
func Load(path string) (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse TOML: %w", err)
			}
		case errors.Is(err, os.ErrNotExist) && path == DefaultPath:
		default:
			return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.fillDefaults()

	return cfg, nil
}

// DefaultPath конфиг, который читается без явного --config; его отсутствие не ошибка.
const DefaultPath = "config/config.toml"

func (c *Config) applyEnv() error {
	setString(&c.Vision.Provider, "VISION_PROVIDER")
	setString(&c.Vision.Model, "VISION_MODEL")
	setString(&c.Vision.BaseURL, "VISION_BASE_URL")
	setString(&c.Vision.APIKey, "OPENAI_API_KEY")
	setString(&c.Vision.APIKey, "VISION_API_KEY")
	setString(&c.Telegram.Token, "TELEGRAM_TOKEN")
	setString(&c.Paths.ImageDir, "IMAGE_DIR")
	setString(&c.Paths.Answers, "ANSWER_PATH")
	setString(&c.Paths.Predictions, "PREDICTIONS_PATH")
	setString(&c.Server.Port, "PORT")

	if v := os.Getenv("CLASSIFY_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CLASSIFY_WORKERS %q: %w", v, err)
		}
		c.Classify.Workers = n
	}
	setString(&c.Vision.Timeout, "REQUEST_TIMEOUT")
	if c.Vision.Timeout != "" {
		d, err := time.ParseDuration(c.Vision.Timeout)
		if err != nil {
			return fmt.Errorf("invalid request timeout %q: %w", c.Vision.Timeout, err)
		}
		c.Vision.RequestTimeout = d
	}
	return nil
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.Vision.Provider == "" {
		c.Vision.Provider = def.Vision.Provider
	}
	c.Vision.Provider = strings.ToLower(strings.TrimSpace(c.Vision.Provider))
	if c.Vision.Model == "" {
		c.Vision.Model = defaultModels[c.Vision.Provider]
	}
	if c.Vision.ClassifyTokens <= 0 {
		c.Vision.ClassifyTokens = def.Vision.ClassifyTokens
	}
	if c.Vision.IdentifyTokens <= 0 {
		c.Vision.IdentifyTokens = def.Vision.IdentifyTokens
	}
	if c.Vision.RequestTimeout <= 0 {
		c.Vision.RequestTimeout = def.Vision.RequestTimeout
	}
	if c.Vision.MaxImageSide <= 0 {
		c.Vision.MaxImageSide = def.Vision.MaxImageSide
	}
	if c.Vision.JPEGQuality <= 0 || c.Vision.JPEGQuality > 100 {
		c.Vision.JPEGQuality = def.Vision.JPEGQuality
	}
	if c.Classify.Workers < 1 {
		c.Classify.Workers = 1
	}
	if c.Server.Port == "" {
		c.Server.Port = def.Server.Port
	}
}

// RequireCredential проверяет наличие ключа до первого запроса к модели.
// Ollama ключ не требует.
func (c *Config) RequireCredential() error {
	if c.Vision.APIKey != "" || c.Vision.Provider == "ollama" {
		return nil
	}
	key := "VISION_API_KEY"
	if c.Vision.Provider == "openai" {
		key = "OPENAI_API_KEY"
	}
	return fmt.Errorf("%w: add %s=your_api_key_here to .env or export it (provider %s)", entity.ErrMissingAPIKey, key, c.Vision.Provider)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
