package entity

// CropInfo карточка культуры для интерактивного режима (бот, HTTP).
type CropInfo struct {
	Name          string   `json:"name"`
	NameEN        string   `json:"name_en"`
	Confidence    float64  `json:"confidence"`
	Category      string   `json:"category"`
	FamousRegions []string `json:"famous_regions"`
	Season        string   `json:"season"`
	Nutrition     string   `json:"nutrition"`
	Storage       string   `json:"storage"`
	Taste         string   `json:"taste"`
}
