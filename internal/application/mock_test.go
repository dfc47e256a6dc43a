package app

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"sort"
	"sync"

	"crop-vision/internal/domain/entity"
)

// MockImageSource каталог изображений в памяти
type MockImageSource struct {
	Files map[string][]byte
	Err   error
}

func (m *MockImageSource) List(ctx context.Context) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	names := make([]string, 0, len(m.Files))
	for name := range m.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, entity.ErrNoImages
	}
	return names, nil
}

func (m *MockImageSource) Read(ctx context.Context, name string) ([]byte, error) {
	data, ok := m.Files[name]
	if !ok {
		return nil, fmt.Errorf("read image %s: not found", name)
	}
	return data, nil
}

// MockAnswers реестр ответов в памяти; nil Entries означает "файла нет"
type MockAnswers struct {
	Entries []entity.AnswerEntry
	Created int
}

func (m *MockAnswers) Load(ctx context.Context) (*entity.AnswerLedger, error) {
	if m.Entries == nil {
		return nil, entity.ErrAnswerLedgerNotFound
	}
	return entity.NewAnswerLedger(m.Entries), nil
}

func (m *MockAnswers) Exists(ctx context.Context) (bool, error) {
	return len(m.Entries) > 0, nil
}

func (m *MockAnswers) Create(ctx context.Context, entries []entity.AnswerEntry) error {
	m.Created++
	m.Entries = append([]entity.AnswerEntry{}, entries...)
	return nil
}

func (m *MockAnswers) Path() string { return "data/answer.csv" }

// MockPredictions реестр предсказаний в памяти
type MockPredictions struct {
	Saved []entity.Prediction
	Saves int
}

func (m *MockPredictions) Save(ctx context.Context, predictions []entity.Prediction) error {
	m.Saves++
	m.Saved = append([]entity.Prediction{}, predictions...)
	return nil
}

func (m *MockPredictions) Load(ctx context.Context) ([]entity.Prediction, error) {
	if m.Saved == nil {
		return nil, entity.ErrPredictionsNotFound
	}
	return m.Saved, nil
}

func (m *MockPredictions) Path() string { return "data/predictions.csv" }

// MockPreparer отдаёт байты как есть; пустые считаются битыми
type MockPreparer struct{}

func (MockPreparer) Prepare(raw []byte) (entity.ImageData, error) {
	if len(raw) == 0 {
		return entity.ImageData{}, errors.New("empty image")
	}
	return entity.ImageData{Bytes: raw, MIMEType: "image/jpeg"}, nil
}

// MockClassifier отвечает по содержимому картинки и запоминает, что видел
type MockClassifier struct {
	mu      sync.Mutex
	Replies map[string]entity.Classification // ключ — содержимое изображения
	Fail    map[string]error
	Seen    []entity.ImageData
}

func (m *MockClassifier) Classify(ctx context.Context, img entity.ImageData) (*entity.Classification, error) {
	m.mu.Lock()
	m.Seen = append(m.Seen, img)
	m.mu.Unlock()

	key := string(img.Bytes)
	if err, ok := m.Fail[key]; ok {
		return nil, err
	}
	c, ok := m.Replies[key]
	if !ok {
		return nil, fmt.Errorf("%w: no reply for %x", entity.ErrMalformedReply, sha256.Sum256(img.Bytes))
	}
	return &c, nil
}

func (m *MockClassifier) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Seen)
}

// MockDescriber возвращает фиксированную карточку
type MockDescriber struct {
	Info *entity.CropInfo
	Err  error
}

func (m *MockDescriber) Describe(ctx context.Context, img entity.ImageData) (*entity.CropInfo, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Info, nil
}
