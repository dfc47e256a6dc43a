package cli

import (
	"fmt"
	"io"
	"strings"

	app "crop-vision/internal/application"
	"crop-vision/internal/domain/entity"
)

var (
	rule  = strings.Repeat("=", 70)
	dash  = strings.Repeat("-", 70)
	stars = strings.Repeat("*", 70)
)

func banner(w io.Writer, line, title string) {
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w)
}

// RenderTemplate выводит итог генерации шаблона и подсказку по разметке.
func RenderTemplate(w io.Writer, res *app.TemplateResult) {
	banner(w, rule, "[1/3] 정답 템플릿 생성")

	fmt.Fprintf(w, "[OK] %d개의 이미지 파일을 발견했습니다:\n\n", len(res.Images))
	for i, name := range res.Images {
		fmt.Fprintf(w, "   %d. %s\n", i+1, name)
	}
	fmt.Fprintln(w)

	if !res.Created {
		fmt.Fprintf(w, "[SKIP] %s 파일이 이미 존재합니다 (%d행). 기존 정답을 보존합니다.\n", res.Path, res.ExistingRows)
		if len(res.Missing) > 0 {
			fmt.Fprintf(w, "[WARNING] 정답 파일에 없는 이미지 %d개: %s\n", len(res.Missing), strings.Join(res.Missing, ", "))
			fmt.Fprintln(w, "          필요하면 직접 행을 추가하세요.")
		}
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "[FILE] 위치: %s\n", res.Path)
	fmt.Fprintf(w, "[COUNT] 이미지 개수: %d개\n\n", len(res.Images))
	RenderAnnotateReminder(w, res.Path)
}

// RenderAnnotateReminder просит заполнить колонку label перед классификацией.
func RenderAnnotateReminder(w io.Writer, path string) {
	banner(w, dash, "다음 단계:")
	fmt.Fprintf(w, "1. %s 파일을 여세요\n\n", path)
	fmt.Fprintln(w, "2. 각 이미지를 확인하고 'label' 컬럼에 정답을 입력하세요")
	fmt.Fprintln(w, "   예시:")
	fmt.Fprintln(w, "   filename      | label")
	fmt.Fprintln(w, "   ------------- | --------")
	fmt.Fprintln(w, "   img_1.jpg     | 사과")
	fmt.Fprintln(w, "   img_2.jpg     | 딸기")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "3. 저장 후, 아래 명령어를 실행하세요:")
	fmt.Fprintln(w, "   crop-vision classify   (또는 crop-vision run)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "[TIP] Excel이나 메모장에서 편집 가능합니다!")
	fmt.Fprintln(w, rule)
}

// RenderProgress строка прогресса по одному изображению.
func RenderProgress(w io.Writer, index, total int, p entity.Prediction) {
	fmt.Fprintf(w, "[%d/%d] %s -> 예측: %s (%.1f%%), 정답: %s %s\n",
		index, total, p.Filename, p.PredictedLabel, p.Confidence*100, truthOrDash(p.TrueLabel), verdict(p))
}

func verdict(p entity.Prediction) string {
	switch {
	case p.Failed:
		return "⚠️"
	case !p.HasTruth():
		return "➖"
	case p.Correct:
		return "✅"
	default:
		return "❌"
	}
}

func truthOrDash(label string) string {
	if label == "" {
		return "(없음)"
	}
	return label
}

// RenderClassified итог классификации.
func RenderClassified(w io.Writer, res *app.ClassificationResult) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, dash)
	fmt.Fprintf(w, "✅ 완료! 결과가 저장되었습니다: %s\n", res.Path)
	if res.Failed > 0 {
		fmt.Fprintf(w, "⚠️  %d개 이미지는 분류에 실패했습니다 (unknown, 0%%). 다시 실행하면 재시도합니다.\n", res.Failed)
	}
	if res.Unlabeled > 0 {
		fmt.Fprintf(w, "➖ %d개 이미지는 정답이 없어 정확도 계산에서 제외됩니다.\n", res.Unlabeled)
	}
	fmt.Fprintln(w, dash)
	fmt.Fprintln(w)
}

// RenderSummary отчёт о точности: общий блок, по меткам, ошибки.
func RenderSummary(w io.Writer, s *entity.Summary) {
	banner(w, rule, "📊 전체 정확도")
	fmt.Fprintf(w, "  총 이미지 수      : %5d장\n", s.Total)
	fmt.Fprintf(w, "  정답 개수         : %5d장\n", s.Correct)
	fmt.Fprintf(w, "  오답 개수         : %5d장\n", s.Wrong())
	if s.Unlabeled > 0 {
		fmt.Fprintf(w, "  정답 없음(제외)   : %5d장\n", s.Unlabeled)
	}
	if s.Failed > 0 {
		fmt.Fprintf(w, "  분류 실패         : %5d장\n", s.Failed)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  🎯 정확도         : %5.1f%%\n\n", s.Accuracy*100)

	banner(w, rule, "🌱 농작물별 정확도")
	for _, l := range s.PerLabel {
		fmt.Fprintf(w, "  📌 %s\n", l.Label)
		fmt.Fprintf(w, "     - 개수         : %d장\n", l.Total)
		fmt.Fprintf(w, "     - 정답         : %d장\n", l.Correct)
		fmt.Fprintf(w, "     - 정확도       : %.1f%%\n", l.Accuracy*100)
		fmt.Fprintf(w, "     - 평균 확신도  : %.1f%%\n\n", l.MeanConfidence*100)
	}

	if s.Total > 0 && len(s.Misclassified) == 0 {
		fmt.Fprintln(w, rule)
		fmt.Fprintln(w, "🎉 축하합니다! 모든 이미지가 정확하게 분류되었습니다!")
		fmt.Fprintln(w, rule)
		return
	}
	if len(s.Misclassified) > 0 {
		banner(w, rule, "❌ 오분류 상세 내역")
		for i, p := range s.Misclassified {
			fmt.Fprintf(w, "  %d. %s\n", i+1, p.Filename)
			fmt.Fprintf(w, "     정답 : %s\n", p.TrueLabel)
			fmt.Fprintf(w, "     예측 : %s (확신도: %.1f%%)\n\n", p.PredictedLabel, p.Confidence*100)
		}
	}
	fmt.Fprintln(w, rule)
}
