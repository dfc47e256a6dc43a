package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"crop-vision/internal/domain/entity"
	"crop-vision/internal/domain/port"
)

// ProgressFunc вызывается после каждого изображения; index начинается с 1.
type ProgressFunc func(index, total int, p entity.Prediction)

// ClassificationService прогоняет все изображения через классификатор и пишет реестр предсказаний.
type ClassificationService struct {
	images      port.ImageSource
	answers     port.AnswerRepository
	predictions port.PredictionRepository
	preparer    port.ImagePreparer
	classifier  port.CropClassifier
	timeout     time.Duration
	workers     int

	// NewRunID генерирует идентификатор запуска для логов
	NewRunID func() string
	// MissingKey причина отсутствия classifier, с подсказкой для конкретного провайдера
	MissingKey error
}

// ClassificationResult итог запуска.
type ClassificationResult struct {
	RunID       string
	Path        string
	Predictions []entity.Prediction
	Failed      int
	Unlabeled   int
}

func NewClassificationService(
	images port.ImageSource,
	answers port.AnswerRepository,
	predictions port.PredictionRepository,
	preparer port.ImagePreparer,
	classifier port.CropClassifier,
	timeout time.Duration,
	workers int,
) *ClassificationService {
	if workers < 1 {
		workers = 1
	}
	return &ClassificationService{
		images:      images,
		answers:     answers,
		predictions: predictions,
		preparer:    preparer,
		classifier:  classifier,
		timeout:     timeout,
		workers:     workers,
		NewRunID:    uuid.NewString,
	}
}

// Run классифицирует каждое изображение независимо. Ошибка на одном изображении
// превращается в запись unknown/0 и не останавливает остальные.
func (s *ClassificationService) Run(ctx context.Context, progress ProgressFunc) (*ClassificationResult, error) {
	if s.classifier == nil {
		if s.MissingKey != nil {
			return nil, s.MissingKey
		}
		return nil, fmt.Errorf("%w: add OPENAI_API_KEY (or VISION_API_KEY for other providers) to .env or export it", entity.ErrMissingAPIKey)
	}

	ledger, err := s.answers.Load(ctx)
	if err != nil {
		if errors.Is(err, entity.ErrAnswerLedgerNotFound) {
			return nil, fmt.Errorf("%w; run `crop-vision template` first", err)
		}
		return nil, err
	}

	names, err := s.images.List(ctx)
	if err != nil {
		return nil, err
	}

	runID := s.NewRunID()
	log.Printf("[run %s] classifying %d images", runID, len(names))

	results := make([]entity.Prediction, len(names))
	var mu sync.Mutex
	// index — позиция файла в отсортированном списке, а не порядок завершения
	report := func(index int, p entity.Prediction) {
		if progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		progress(index, len(names), p)
	}

	g := new(errgroup.Group)
	g.SetLimit(s.workers)
	for i, name := range names {
		if ctx.Err() != nil {
			break
		}
		i, name := i, name
		g.Go(func() error {
			p := s.classifyOne(ctx, runID, name, ledger.Truth(name))
			results[i] = p
			report(i+1, p)
			return nil
		})
	}
	_ = g.Wait()

	// Прерванный запуск не перезаписывает реестр неполными данными
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("classification interrupted: %w", err)
	}

	result := &ClassificationResult{
		RunID:       runID,
		Path:        s.predictions.Path(),
		Predictions: results,
	}
	for _, p := range results {
		if p.Failed {
			result.Failed++
		}
		if !p.HasTruth() {
			result.Unlabeled++
		}
	}

	if err := s.predictions.Save(ctx, results); err != nil {
		return nil, fmt.Errorf("save predictions: %w", err)
	}
	log.Printf("[run %s] done: %d images, %d failed", runID, len(results), result.Failed)

	return result, nil
}

// classifyOne никогда не возвращает ошибку: любой сбой становится маркером неудачи.
// Имя файла используется только как ключ соединения, в модель уходят лишь байты.
func (s *ClassificationService) classifyOne(ctx context.Context, runID, name, truth string) entity.Prediction {
	raw, err := s.images.Read(ctx, name)
	if err != nil {
		log.Printf("[run %s] %s: %v", runID, name, err)
		return entity.FailedPrediction(name, truth)
	}

	img, err := s.preparer.Prepare(raw)
	if err != nil {
		log.Printf("[run %s] %s: prepare image: %v", runID, name, err)
		return entity.FailedPrediction(name, truth)
	}

	reqCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	c, err := s.classifier.Classify(reqCtx, img)
	if err != nil {
		log.Printf("[run %s] %s: classification failed, rerun to retry: %v", runID, name, err)
		return entity.FailedPrediction(name, truth)
	}

	return entity.NewPrediction(name, *c, truth)
}
