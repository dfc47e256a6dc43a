package port

import (
	"context"

	"crop-vision/internal/domain/entity"
)

// UserRepository интерфейс хранилища собеседников бота
type UserRepository interface {
	// Get возвращает копию пользователя, создаёт нового если не найден
	Get(ctx context.Context, userID, chatID int64) (*entity.User, error)

	// Save сохраняет состояние пользователя
	Save(ctx context.Context, user *entity.User) error

	// Forget удаляет пользователя и всё, что о нём запомнено
	Forget(ctx context.Context, userID int64) error
}
