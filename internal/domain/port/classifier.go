package port

import (
	"context"

	"crop-vision/internal/domain/entity"
)

// CropClassifier интерфейс классификатора культур.
// На вход только подготовленные байты изображения, без имени файла.
type CropClassifier interface {
	// Classify возвращает метку и уверенность; ошибка разбора оборачивает entity.ErrMalformedReply
	Classify(ctx context.Context, img entity.ImageData) (*entity.Classification, error)
}

// CropDescriber интерфейс получения справочной карточки культуры
type CropDescriber interface {
	// Describe распознаёт культуру и возвращает подробную информацию о ней
	Describe(ctx context.Context, img entity.ImageData) (*entity.CropInfo, error)
}
