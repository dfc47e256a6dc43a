package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crop-vision/internal/domain/entity"
	"crop-vision/internal/domain/port"
)

// IdentificationService распознаёт одну присланную фотографию (бот, HTTP).
type IdentificationService struct {
	preparer   port.ImagePreparer
	classifier port.CropClassifier
	describer  port.CropDescriber
	timeout    time.Duration
}

// NewIdentificationService создаёт сервис интерактивного распознавания.
func NewIdentificationService(preparer port.ImagePreparer, classifier port.CropClassifier, describer port.CropDescriber, timeout time.Duration) *IdentificationService {
	return &IdentificationService{
		preparer:   preparer,
		classifier: classifier,
		describer:  describer,
		timeout:    timeout,
	}
}

// Classify возвращает только метку и уверенность.
func (s *IdentificationService) Classify(ctx context.Context, photo []byte) (*entity.Classification, error) {
	if s.classifier == nil {
		return nil, errors.New("classifier is not configured")
	}

	img, err := s.prepare(photo)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.classifier.Classify(ctx, img)
}

// Identify возвращает полную карточку культуры.
func (s *IdentificationService) Identify(ctx context.Context, photo []byte) (*entity.CropInfo, error) {
	if s.describer == nil {
		return nil, errors.New("describer is not configured")
	}

	img, err := s.prepare(photo)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.describer.Describe(ctx, img)
}

func (s *IdentificationService) prepare(photo []byte) (entity.ImageData, error) {
	if len(photo) == 0 {
		return entity.ImageData{}, fmt.Errorf("%w: empty photo", entity.ErrInvalidImage)
	}
	img, err := s.preparer.Prepare(photo)
	if err != nil {
		return entity.ImageData{}, fmt.Errorf("%w: %v", entity.ErrInvalidImage, err)
	}
	return img, nil
}

func (s *IdentificationService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
