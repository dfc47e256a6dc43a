package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"crop-vision/internal/domain/entity"
)

func TestIdentificationService_Classify(t *testing.T) {
	classifier := &MockClassifier{Replies: map[string]entity.Classification{
		"apple": {Label: "사과", Confidence: 0.9},
	}}
	svc := NewIdentificationService(MockPreparer{}, classifier, nil, time.Second)

	c, err := svc.Classify(context.Background(), []byte("apple"))
	require.NoError(t, err)
	require.Equal(t, "사과", c.Label)

	_, err = svc.Classify(context.Background(), nil)
	require.ErrorIs(t, err, entity.ErrInvalidImage)
	require.Equal(t, 1, classifier.Calls())
}

func TestIdentificationService_Identify(t *testing.T) {
	describer := &MockDescriber{Info: &entity.CropInfo{Name: "딸기", FamousRegions: []string{"논산"}}}
	svc := NewIdentificationService(MockPreparer{}, nil, describer, 0)

	info, err := svc.Identify(context.Background(), []byte("berry"))
	require.NoError(t, err)
	require.Equal(t, "딸기", info.Name)

	_, err = svc.Classify(context.Background(), []byte("berry"))
	require.Error(t, err)

	describer.Err = errors.New("upstream down")
	_, err = svc.Identify(context.Background(), []byte("berry"))
	require.EqualError(t, err, "upstream down")
}
