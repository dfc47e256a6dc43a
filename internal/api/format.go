package telegram

import (
	"fmt"
	"strings"

	"crop-vision/internal/domain/entity"
)

// FormatCropInfo собирает текст карточки культуры; пустые поля пропускаются.
func FormatCropInfo(info *entity.CropInfo) string {
	var sb strings.Builder

	name := info.Name
	if info.NameEN != "" {
		name = fmt.Sprintf("%s (%s)", info.Name, info.NameEN)
	}
	fmt.Fprintf(&sb, "🌾 %s\n", name)
	fmt.Fprintf(&sb, "🎯 확신도: %.1f%%\n", info.Confidence*100)

	line := func(icon, title, value string) {
		if strings.TrimSpace(value) != "" {
			fmt.Fprintf(&sb, "\n%s %s: %s", icon, title, value)
		}
	}
	line("📂", "분류", info.Category)
	line("📍", "주요 산지", strings.Join(info.FamousRegions, ", "))
	line("📅", "제철", info.Season)
	line("💪", "영양", info.Nutrition)
	line("🧊", "보관", info.Storage)
	line("😋", "맛", info.Taste)

	return strings.TrimRight(sb.String(), "\n")
}
