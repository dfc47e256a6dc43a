package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"crop-vision/internal/domain/entity"
	"crop-vision/internal/domain/port"
)

var predictionHeader = []string{"filename", "pred_label", "pred_confidence", "true_label", "correct"}

// PredictionCSV реестр предсказаний в CSV
type PredictionCSV struct {
	path string
}

// NewPredictionCSV создаёт хранилище реестра предсказаний
func NewPredictionCSV(path string) *PredictionCSV {
	return &PredictionCSV{path: path}
}

func (r *PredictionCSV) Path() string {
	return r.path
}

// Save перезаписывает реестр целиком
func (r *PredictionCSV) Save(ctx context.Context, predictions []entity.Prediction) error {
	rows := make([][]string, 0, len(predictions))
	for _, p := range predictions {
		rows = append(rows, []string{
			p.Filename,
			p.PredictedLabel,
			strconv.FormatFloat(p.Confidence, 'f', -1, 64),
			p.TrueLabel,
			formatCorrect(p),
		})
	}
	return writeCSV(r.path, predictionHeader, rows)
}

// Load читает реестр; правильность пересчитывается по меткам, колонка correct справочная.
func (r *PredictionCSV) Load(ctx context.Context) ([]entity.Prediction, error) {
	t, err := readCSV(r.path, "filename", "pred_label", "pred_confidence", "true_label")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", entity.ErrPredictionsNotFound, r.path)
	}
	if err != nil {
		return nil, err
	}

	out := make([]entity.Prediction, 0, len(t.rows))
	for i, row := range t.rows {
		raw := t.get(row, "pred_confidence")
		confidence := 0.0
		if raw != "" {
			confidence, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s row %d: confidence %q", entity.ErrInvalidLedger, r.path, i+2, raw)
			}
		}

		p := entity.NewPrediction(
			t.get(row, "filename"),
			entity.Classification{Label: t.get(row, "pred_label"), Confidence: confidence},
			t.get(row, "true_label"),
		)
		p.Failed = p.PredictedLabel == entity.UnknownLabel && p.Confidence == 0
		if p.Failed {
			p.Correct = false
		}
		out = append(out, p)
	}
	return out, nil
}

func formatCorrect(p entity.Prediction) string {
	if !p.HasTruth() {
		return ""
	}
	return strings.ToLower(strconv.FormatBool(p.Correct))
}

var _ port.PredictionRepository = (*PredictionCSV)(nil)
