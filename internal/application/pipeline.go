package app

import (
	"context"
	"fmt"

	"crop-vision/internal/domain/entity"
	"crop-vision/internal/domain/port"
)

// Pipeline последовательно запускает: шаблон → проверка разметки → классификация → оценка.
type Pipeline struct {
	template       *TemplateService
	answers        port.AnswerRepository
	classification *ClassificationService
	evaluation     *EvaluationService
}

// PipelineHooks колбэки для вывода промежуточных результатов.
type PipelineHooks struct {
	OnTemplate   func(*TemplateResult)
	Progress     ProgressFunc
	OnClassified func(*ClassificationResult)
}

// PipelineResult заполняется по мере прохождения этапов.
type PipelineResult struct {
	Template       *TemplateResult
	Classification *ClassificationResult
	Summary        *entity.Summary
}

func NewPipeline(template *TemplateService, answers port.AnswerRepository, classification *ClassificationService, evaluation *EvaluationService) *Pipeline {
	return &Pipeline{
		template:       template,
		answers:        answers,
		classification: classification,
		evaluation:     evaluation,
	}
}

// Run останавливается на первой ошибке этапа и возвращает её без изменений
// вместе с тем, что успело выполниться.
func (p *Pipeline) Run(ctx context.Context, hooks PipelineHooks) (*PipelineResult, error) {
	result := &PipelineResult{}

	tmpl, err := p.template.Generate(ctx)
	if err != nil {
		return result, err
	}
	result.Template = tmpl
	if hooks.OnTemplate != nil {
		hooks.OnTemplate(tmpl)
	}

	ledger, err := p.answers.Load(ctx)
	if err != nil {
		return result, err
	}
	if unlabeled := ledger.Unlabeled(); len(unlabeled) > 0 {
		return result, fmt.Errorf("%w: %d of %d rows in %s have no label",
			entity.ErrLedgerUnlabeled, len(unlabeled), ledger.Len(), p.answers.Path())
	}

	classified, err := p.classification.Run(ctx, hooks.Progress)
	if err != nil {
		return result, err
	}
	result.Classification = classified
	if hooks.OnClassified != nil {
		hooks.OnClassified(classified)
	}

	summary, err := p.evaluation.Run(ctx)
	if err != nil {
		return result, err
	}
	result.Summary = summary

	return result, nil
}
