package app

import (
	"context"
	"fmt"

	"crop-vision/internal/domain/entity"
	"crop-vision/internal/domain/port"
)

// TemplateService создаёт шаблон реестра ответов для ручной разметки.
type TemplateService struct {
	images  port.ImageSource
	answers port.AnswerRepository
}

// TemplateResult итог генерации шаблона.
type TemplateResult struct {
	Path         string
	Created      bool
	Images       []string
	ExistingRows int      // строк в уже существующем реестре
	Missing      []string // изображения, которых нет в существующем реестре
}

func NewTemplateService(images port.ImageSource, answers port.AnswerRepository) *TemplateService {
	return &TemplateService{images: images, answers: answers}
}

// Generate пишет filename,label с пустыми метками, только если реестра ещё нет.
// Существующий реестр с данными никогда не перезаписывается.
func (s *TemplateService) Generate(ctx context.Context) (*TemplateResult, error) {
	names, err := s.images.List(ctx)
	if err != nil {
		return nil, err
	}

	result := &TemplateResult{
		Path:   s.answers.Path(),
		Images: names,
	}

	exists, err := s.answers.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("check existing ledger %s: %w", s.answers.Path(), err)
	}
	if exists {
		ledger, err := s.answers.Load(ctx)
		if err != nil {
			return nil, err
		}
		result.ExistingRows = ledger.Len()
		result.Missing = ledger.Missing(names)
		return result, nil
	}

	entries := make([]entity.AnswerEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, entity.AnswerEntry{Filename: name})
	}
	if err := s.answers.Create(ctx, entries); err != nil {
		return nil, fmt.Errorf("write answer template: %w", err)
	}

	result.Created = true
	return result, nil
}
