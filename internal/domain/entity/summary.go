package entity

// LabelStats статистика по одной эталонной метке.
type LabelStats struct {
	Label          string
	Total          int
	Correct        int
	Accuracy       float64 // доля 0..1
	MeanConfidence float64 // доля 0..1
}

// Summary итог оценки; никогда не сохраняется на диск.
type Summary struct {
	Rows          int // всего строк в реестре
	Total         int // строк с эталоном
	Correct       int
	Accuracy      float64 // доля 0..1
	Unlabeled     int
	Failed        int
	PerLabel      []LabelStats
	Misclassified []Prediction
}

// Wrong количество ошибок среди строк с эталоном.
func (s Summary) Wrong() int {
	return s.Total - s.Correct
}
