package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	"crop-vision/internal/domain/entity"
)

func TestImageFileID(t *testing.T) {
	id, ok := imageFileID(&tgbotapi.Message{Photo: []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "large"}}})
	require.True(t, ok)
	require.Equal(t, "large", id)

	id, ok = imageFileID(&tgbotapi.Message{Document: &tgbotapi.Document{FileID: "doc", MimeType: "image/png"}})
	require.True(t, ok)
	require.Equal(t, "doc", id)

	_, ok = imageFileID(&tgbotapi.Message{Document: &tgbotapi.Document{FileID: "pdf", MimeType: "application/pdf"}})
	require.False(t, ok)

	_, ok = imageFileID(&tgbotapi.Message{Text: "hi"})
	require.False(t, ok)
}

func TestPhotoToIdentify_RequiresCheck(t *testing.T) {
	msg := &tgbotapi.Message{Photo: []tgbotapi.PhotoSize{{FileID: "p"}}}
	user := entity.NewUser(1, 10)

	_, ok := photoToIdentify(msg, user)
	require.False(t, ok)

	user.SetState(entity.StateAwaitingPhoto)
	id, ok := photoToIdentify(msg, user)
	require.True(t, ok)
	require.Equal(t, "p", id)

	user.SetState(entity.StateProcessing)
	_, ok = photoToIdentify(msg, user)
	require.False(t, ok)
}
