package container

import (
	"context"
	"errors"
	"io"

	"crop-vision/config"
	app "crop-vision/internal/application"
	"crop-vision/internal/domain/port"
	"crop-vision/internal/infrastructure/storage"
	"crop-vision/internal/infrastructure/vision"
)

type Container struct {
	Config *config.Config

	Images      port.ImageSource
	Answers     port.AnswerRepository
	Predictions port.PredictionRepository

	UserService           *app.UserService
	TemplateService       *app.TemplateService
	ClassificationService *app.ClassificationService
	EvaluationService     *app.EvaluationService
	IdentificationService *app.IdentificationService
	Pipeline              *app.Pipeline

	closers []io.Closer
}

// New собирает сервисы. classifier и describer могут быть nil, если ключа нет:
// тогда шаблон и оценка работают, а классификация сообщит об отсутствии ключа.
func New(cfg *config.Config, userRepo port.UserRepository, classifier port.CropClassifier, describer port.CropDescriber) *Container {
	images := storage.NewImageDir(cfg.Paths.ImageDir)
	answers := storage.NewAnswerCSV(cfg.Paths.Answers)
	predictions := storage.NewPredictionCSV(cfg.Paths.Predictions)
	preparer := vision.NewPreparer(cfg.Vision.MaxImageSide, cfg.Vision.JPEGQuality)

	templateService := app.NewTemplateService(images, answers)
	classificationService := app.NewClassificationService(
		images, answers, predictions, preparer, classifier,
		cfg.Vision.RequestTimeout, cfg.Classify.Workers,
	)
	evaluationService := app.NewEvaluationService(predictions)

	return &Container{
		Config:                cfg,
		Images:                images,
		Answers:               answers,
		Predictions:           predictions,
		UserService:           app.NewUserService(userRepo),
		TemplateService:       templateService,
		ClassificationService: classificationService,
		EvaluationService:     evaluationService,
		IdentificationService: app.NewIdentificationService(preparer, classifier, describer, cfg.Vision.RequestTimeout),
		Pipeline:              app.NewPipeline(templateService, answers, classificationService, evaluationService),
	}
}

// Build создаёт vision-клиента по конфигурации (если есть ключ) и собирает контейнер.
func Build(ctx context.Context, cfg *config.Config) (*Container, error) {
	var (
		classifier port.CropClassifier
		describer  port.CropDescriber
	)

	var closer io.Closer
	missingKey := cfg.RequireCredential()
	if missingKey == nil {
		model, err := vision.NewModel(ctx, cfg.Vision)
		if err != nil {
			return nil, err
		}
		// У gemini есть соединение, которое нужно закрыть
		closer, _ = model.(io.Closer)
		client := vision.NewClient(model, cfg.Vision.ClassifyTokens, cfg.Vision.IdentifyTokens)
		classifier, describer = client, client
	}

	c := New(cfg, storage.NewMemoryUserRepository(), classifier, describer)
	c.ClassificationService.MissingKey = missingKey
	if closer != nil {
		c.closers = append(c.closers, closer)
	}
	return c, nil
}

// Close освобождает ресурсы провайдера модели.
func (c *Container) Close() error {
	var errs []error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
