package entity

import "errors"

// Ошибки конфигурации и входных данных. Они фатальны для запуска и не повторяются.
var (
	ErrMissingAPIKey        = errors.New("vision API key is not set")
	ErrImageDirNotFound     = errors.New("image directory does not exist")
	ErrNoImages             = errors.New("no image files found")
	ErrAnswerLedgerNotFound = errors.New("answer ledger not found")
	ErrPredictionsNotFound  = errors.New("prediction ledger not found")
	ErrInvalidLedger        = errors.New("invalid ledger format")
	ErrLedgerUnlabeled      = errors.New("answer ledger has unlabeled rows")
)

// ErrInvalidImage присланные байты не удалось декодировать как изображение.
var ErrInvalidImage = errors.New("invalid image")

// ErrMalformedReply ответ модели не удалось разобрать как ожидаемый JSON.
var ErrMalformedReply = errors.New("malformed model reply")
