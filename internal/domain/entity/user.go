package entity

// UserState состояние пользователя в диалоге с ботом
type UserState string

const (
	StateMainMenu      UserState = "main_menu"      // В главном меню
	StateAwaitingPhoto UserState = "awaiting_photo" // Ожидание фото культуры
	StateProcessing    UserState = "processing"     // Идёт распознавание
)

// User собеседник бота. Хранится только в памяти процесса.
type User struct {
	ID       int64     // Telegram User ID
	ChatID   int64     // Telegram Chat ID
	State    UserState // Текущее состояние пользователя
	LastCrop *CropInfo // Последняя распознанная культура, для /last
}

// NewUser создаёт нового пользователя с начальным состоянием
func NewUser(userID, chatID int64) *User {
	return &User{
		ID:     userID,
		ChatID: chatID,
		State:  StateMainMenu,
	}
}

// SetState обновляет состояние пользователя
func (u *User) SetState(state UserState) {
	u.State = state
}

// Remember сохраняет копию карточки последней распознанной культуры
func (u *User) Remember(info CropInfo) {
	info.FamousRegions = append([]string(nil), info.FamousRegions...)
	u.LastCrop = &info
}

// AwaitingPhoto true после /check, пока фото ещё не прислано
func (u *User) AwaitingPhoto() bool {
	return u.State == StateAwaitingPhoto
}
