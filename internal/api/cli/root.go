package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"crop-vision/config"
	telegram "crop-vision/internal/api"
	"crop-vision/internal/api/httpapi"
	app "crop-vision/internal/application"
	"crop-vision/internal/container"
	"crop-vision/internal/domain/entity"
)

type options struct {
	configPath  string
	imageDir    string
	answers     string
	predictions string
}

// NewRootCommand собирает дерево команд crop-vision.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "crop-vision",
		Short:         "Classify crop photos with a vision model and score them against an answer sheet",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "path to TOML config")
	root.PersistentFlags().StringVar(&opts.imageDir, "images", "", "image directory (overrides config)")
	root.PersistentFlags().StringVar(&opts.answers, "answers", "", "answer ledger CSV (overrides config)")
	root.PersistentFlags().StringVar(&opts.predictions, "predictions", "", "prediction ledger CSV (overrides config)")

	root.AddCommand(
		newTemplateCmd(opts),
		newClassifyCmd(opts),
		newEvaluateCmd(opts),
		newRunCmd(opts),
		newServeCmd(opts),
		newBotCmd(opts),
	)
	return root
}

func (o *options) load(ctx context.Context) (*container.Container, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.imageDir != "" {
		cfg.Paths.ImageDir = o.imageDir
	}
	if o.answers != "" {
		cfg.Paths.Answers = o.answers
	}
	if o.predictions != "" {
		cfg.Paths.Predictions = o.predictions
	}
	return container.Build(ctx, cfg)
}

func newTemplateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Create the answer ledger template (never overwrites an existing one)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()
			res, err := c.TemplateService.Generate(cmd.Context())
			if err != nil {
				return err
			}
			RenderTemplate(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func newClassifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "classify",
		Short: "Classify every image and write the prediction ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()
			if err := c.Config.RequireCredential(); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			banner(w, rule, "🌾 농작물 이미지 분류 시스템")

			res, err := c.ClassificationService.Run(cmd.Context(), func(i, n int, p entity.Prediction) {
				RenderProgress(w, i, n, p)
			})
			if err != nil {
				return err
			}
			RenderClassified(w, res)
			return nil
		},
	}
}

func newEvaluateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate",
		Short: "Print accuracy statistics for the prediction ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()
			summary, err := c.EvaluationService.Run(cmd.Context())
			if err != nil {
				return err
			}
			RenderSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}
}

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Template, classify and evaluate in one go; stops while labels are missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()
			w := cmd.OutOrStdout()
			banner(w, stars, "🌾 농작물 이미지 분류 시스템 - 전체 실행")

			res, err := c.Pipeline.Run(cmd.Context(), app.PipelineHooks{
				OnTemplate: func(r *app.TemplateResult) { RenderTemplate(w, r) },
				Progress:   func(i, n int, p entity.Prediction) { RenderProgress(w, i, n, p) },
				OnClassified: func(r *app.ClassificationResult) {
					RenderClassified(w, r)
				},
			})
			if errors.Is(err, entity.ErrLedgerUnlabeled) {
				// Остановка ради ручной разметки — ожидаемый исход, а не сбой
				fmt.Fprintf(w, "\n⏸️  %v\n\n", err)
				if res.Template == nil || !res.Template.Created {
					RenderAnnotateReminder(w, c.Answers.Path())
				}
				return nil
			}
			if err != nil {
				return err
			}

			RenderSummary(w, res.Summary)
			fmt.Fprintln(w)
			fmt.Fprintln(w, "📊 결과 파일:")
			fmt.Fprintf(w, "  - 정답: %s\n", c.Answers.Path())
			fmt.Fprintf(w, "  - 예측: %s\n", c.Predictions.Path())
			return nil
		},
	}
}

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve /classify and /identify over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()
			if err := c.Config.RequireCredential(); err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              ":" + c.Config.Server.Port,
				Handler:           httpapi.NewServer(c.IdentificationService).SetupRouter(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Printf("Starting server on port %s", c.Config.Server.Port)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-cmd.Context().Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}
}

func newBotCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot that identifies crops from photos",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()
			if c.Config.Telegram.Token == "" {
				return errors.New("TELEGRAM_TOKEN is required")
			}
			if err := c.Config.RequireCredential(); err != nil {
				return err
			}

			bot, err := telegram.NewBot(c.Config.Telegram.Token, c.UserService, c.IdentificationService)
			if err != nil {
				return fmt.Errorf("failed to create bot: %w", err)
			}

			log.Println("Bot is running...")
			return bot.Run(cmd.Context())
		},
	}
}
