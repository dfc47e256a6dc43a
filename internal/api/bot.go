package telegram

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "crop-vision/internal/application"
	"crop-vision/internal/domain/entity"
)

const (
	msgStart = `👋 안녕하세요! 농작물 사진을 보고 어떤 작물인지 알려드리는 봇입니다.

📸 /check 후 농작물 사진을 보내주시면 이름, 제철, 주요 산지, 영양, 보관법을 알려드립니다.

📋 명령어:
/check — 사진 식별 시작
/last — 마지막 식별 결과 다시 보기
/help — 도움말
/cancel — 현재 작업 취소`

	msgHelp = `ℹ️ 사용 방법:

1️⃣ /check 를 입력하고 농작물 사진을 보내주세요
2️⃣ AI가 이미지 내용만 보고 작물을 식별합니다
3️⃣ 작물 정보 카드를 받아보세요

💡 팁:
• 밝은 곳에서 촬영하세요
• 작물이 화면에 크게 나오도록 찍어주세요
• 한 장에 한 종류의 작물만 담아주세요`

	msgAwaitingPhoto   = "📸 식별할 농작물 사진을 보내주세요."
	msgCancelled       = "❌ 취소되었습니다. /check 로 다시 시작하세요."
	msgSendPhoto       = "📸 /check 를 입력한 뒤 농작물 사진을 보내주세요."
	msgUnknownCommand  = "❓ 알 수 없는 명령어입니다. /help 를 확인하세요."
	msgProcessing      = "⏳ 이미지를 분석하고 있습니다..."
	msgNoLast          = "아직 식별한 작물이 없습니다. 사진을 보내주세요."
	msgProcessingError = "⚠️ 이미지를 분석하지 못했습니다. 다른 사진으로 다시 시도해주세요."
)

// Bot представляет Telegram-бота
type Bot struct {
	api        *tgbotapi.BotAPI
	users      *app.UserService
	identifier *app.IdentificationService
	httpClient *http.Client
}

// NewBot создаёт нового бота
func NewBot(token string, users *app.UserService, identifier *app.IdentificationService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:        api,
		users:      users,
		identifier: identifier,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	user, err := b.users.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		log.Printf("Error getting user: %v", err)
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg, user)
		return
	}

	// Фото принимается только после /check
	if fileID, ok := photoToIdentify(msg, user); ok {
		b.handlePhoto(ctx, msg, user, fileID)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	switch msg.Command() {
	case "start":
		b.users.Cancel(ctx, user.ID, msg.Chat.ID)
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "check":
		b.users.BeginCheck(ctx, user.ID, msg.Chat.ID)
		b.sendMessage(msg.Chat.ID, msgAwaitingPhoto)

	case "last":
		if user.LastCrop == nil {
			b.sendMessage(msg.Chat.ID, msgNoLast)
			return
		}
		b.sendMessage(msg.Chat.ID, FormatCropInfo(user.LastCrop))

	case "cancel":
		b.users.Cancel(ctx, user.ID, msg.Chat.ID)
		b.sendMessage(msg.Chat.ID, msgCancelled)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// handlePhoto скачивает фото, распознаёт культуру и отвечает карточкой
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message, user *entity.User, fileID string) {
	b.users.BeginProcessing(ctx, user.ID, msg.Chat.ID)
	b.sendMessage(msg.Chat.ID, msgProcessing)

	imageData, err := b.downloadFile(ctx, fileID)
	if err != nil {
		log.Printf("Error downloading photo: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		b.users.Cancel(ctx, user.ID, msg.Chat.ID)
		return
	}

	info, err := b.identifier.Identify(ctx, imageData)
	if err != nil {
		log.Printf("Error identifying photo from chat %d: %v", msg.Chat.ID, err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		b.users.Cancel(ctx, user.ID, msg.Chat.ID)
		return
	}

	if _, err := b.users.Finish(ctx, user.ID, msg.Chat.ID, info); err != nil {
		log.Printf("Error saving user: %v", err)
	}
	b.sendMessage(msg.Chat.ID, FormatCropInfo(info))
}

// photoToIdentify файл для распознавания, если пользователь ждёт фото
func photoToIdentify(msg *tgbotapi.Message, user *entity.User) (string, bool) {
	fileID, ok := imageFileID(msg)
	if !ok || !user.AwaitingPhoto() {
		return "", false
	}
	return fileID, true
}

// imageFileID возвращает файл с максимальным разрешением либо документ-картинку
func imageFileID(msg *tgbotapi.Message) (string, bool) {
	if len(msg.Photo) > 0 {
		return msg.Photo[len(msg.Photo)-1].FileID, true
	}
	if msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/") {
		return msg.Document.FileID, true
	}
	return "", false
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}
