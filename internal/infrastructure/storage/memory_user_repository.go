package storage

import (
	"context"
	"errors"
	"sync"

	"crop-vision/internal/domain/entity"
	"crop-vision/internal/domain/port"
)

// MemoryUserRepository in-memory хранилище; наружу отдаются только копии
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[int64]entity.User
}

// NewMemoryUserRepository создаёт новое in-memory хранилище
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[int64]entity.User),
	}
}

// Get возвращает пользователя по ID, создаёт нового если не найден
func (r *MemoryUserRepository) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	r.mu.RLock()
	user, exists := r.users[userID]
	r.mu.RUnlock()

	if exists {
		return &user, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if user, exists := r.users[userID]; exists {
		return &user, nil
	}
	newUser := entity.NewUser(userID, chatID)
	r.users[userID] = *newUser

	return newUser, nil
}

// Save сохраняет состояние пользователя
func (r *MemoryUserRepository) Save(ctx context.Context, user *entity.User) error {
	if user == nil {
		return errors.New("nil user")
	}

	r.mu.Lock()
	r.users[user.ID] = *user
	r.mu.Unlock()

	return nil
}

// Forget удаляет пользователя
func (r *MemoryUserRepository) Forget(ctx context.Context, userID int64) error {
	r.mu.Lock()
	delete(r.users, userID)
	r.mu.Unlock()

	return nil
}

// Проверка реализации интерфейса
var _ port.UserRepository = (*MemoryUserRepository)(nil)
