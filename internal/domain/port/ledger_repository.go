package port

import (
	"context"

	"crop-vision/internal/domain/entity"
)

// ImageSource интерфейс каталога с изображениями
type ImageSource interface {
	// List возвращает имена изображений, отсортированные по имени
	List(ctx context.Context) ([]string, error)

	// Read читает байты изображения по имени
	Read(ctx context.Context, name string) ([]byte, error)
}

// AnswerRepository интерфейс хранилища реестра ответов
type AnswerRepository interface {
	// Load читает реестр; entity.ErrAnswerLedgerNotFound если файла нет
	Load(ctx context.Context) (*entity.AnswerLedger, error)

	// Exists сообщает, есть ли реестр хотя бы с одной строкой
	Exists(ctx context.Context) (bool, error)

	// Create записывает новый реестр
	Create(ctx context.Context, entries []entity.AnswerEntry) error

	// Path путь к файлу для сообщений пользователю
	Path() string
}

// PredictionRepository интерфейс хранилища реестра предсказаний
type PredictionRepository interface {
	// Save полностью перезаписывает реестр
	Save(ctx context.Context, predictions []entity.Prediction) error

	// Load читает реестр; entity.ErrPredictionsNotFound если файла нет
	Load(ctx context.Context) ([]entity.Prediction, error)

	Path() string
}
