package app

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"crop-vision/internal/domain/entity"
	"crop-vision/internal/domain/port"
)

// EvaluationService считает точность по реестру предсказаний.
type EvaluationService struct {
	predictions port.PredictionRepository
}

func NewEvaluationService(predictions port.PredictionRepository) *EvaluationService {
	return &EvaluationService{predictions: predictions}
}

// Run читает реестр и возвращает сводку.
func (s *EvaluationService) Run(ctx context.Context) (*entity.Summary, error) {
	preds, err := s.predictions.Load(ctx)
	if err != nil {
		if errors.Is(err, entity.ErrPredictionsNotFound) {
			return nil, fmt.Errorf("%w; run `crop-vision classify` first", err)
		}
		return nil, err
	}
	summary := Evaluate(preds)
	return &summary, nil
}

// Evaluate считает общую точность, точность и среднюю уверенность по эталонным меткам.
// Строки без эталона не учитываются; пустой вход даёт нулевую сводку.
func Evaluate(preds []entity.Prediction) entity.Summary {
	summary := entity.Summary{Rows: len(preds)}

	type bucket struct {
		total, correct int
		confidence     float64
	}
	buckets := make(map[string]*bucket)

	for _, p := range preds {
		if p.Failed {
			summary.Failed++
		}
		if !p.HasTruth() {
			summary.Unlabeled++
			continue
		}

		summary.Total++
		b, ok := buckets[p.TrueLabel]
		if !ok {
			b = &bucket{}
			buckets[p.TrueLabel] = b
		}
		b.total++
		b.confidence += p.Confidence

		if p.Correct {
			summary.Correct++
			b.correct++
		} else {
			summary.Misclassified = append(summary.Misclassified, p)
		}
	}

	summary.Accuracy = ratio(summary.Correct, summary.Total)

	summary.PerLabel = make([]entity.LabelStats, 0, len(buckets))
	for label, b := range buckets {
		summary.PerLabel = append(summary.PerLabel, entity.LabelStats{
			Label:          label,
			Total:          b.total,
			Correct:        b.correct,
			Accuracy:       ratio(b.correct, b.total),
			MeanConfidence: b.confidence / float64(b.total),
		})
	}
	sort.Slice(summary.PerLabel, func(i, j int) bool {
		a, b := summary.PerLabel[i], summary.PerLabel[j]
		if a.Accuracy != b.Accuracy {
			return a.Accuracy > b.Accuracy
		}
		return a.Label < b.Label
	})

	return summary
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
