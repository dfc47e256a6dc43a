package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"crop-vision/internal/domain/entity"
)

func TestPredictionCSV_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "predictions.csv")
	repo := NewPredictionCSV(path)
	ctx := context.Background()

	preds := []entity.Prediction{
		entity.NewPrediction("img_1.jpg", entity.Classification{Label: "사과", Confidence: 0.95}, "사과"),
		entity.NewPrediction("img_2.jpg", entity.Classification{Label: "라즈베리", Confidence: 0.62}, "딸기"),
		entity.NewPrediction("img_3.jpg", entity.Classification{Label: "배", Confidence: 0.8}, ""),
		entity.FailedPrediction("img_4.jpg", "감"),
	}
	require.NoError(t, repo.Save(ctx, preds))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(string(raw), "\ufeff")), "\n")
	require.Equal(t, []string{
		"filename,pred_label,pred_confidence,true_label,correct",
		"img_1.jpg,사과,0.95,사과,true",
		"img_2.jpg,라즈베리,0.62,딸기,false",
		"img_3.jpg,배,0.8,,",
		"img_4.jpg,unknown,0,감,false",
	}, lines)

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, preds, loaded)
}

func TestPredictionCSV_Errors(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	_, err := NewPredictionCSV(filepath.Join(dir, "nope.csv")).Load(ctx)
	require.ErrorIs(t, err, entity.ErrPredictionsNotFound)

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("filename,pred_label,pred_confidence,true_label,correct\na.jpg,사과,high,사과,true\n"), 0o644))
	_, err = NewPredictionCSV(bad).Load(ctx)
	require.ErrorIs(t, err, entity.ErrInvalidLedger)
	require.Contains(t, err.Error(), "row 2")

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	preds, err := NewPredictionCSV(empty).Load(ctx)
	require.NoError(t, err)
	require.Empty(t, preds)
}
