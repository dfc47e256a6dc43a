package entity

import (
	"math"
	"strings"
)

// UnknownLabel метка-маркер для изображения, которое не удалось классифицировать.
const UnknownLabel = "unknown"

// Classification ответ модели: метка и самооценка уверенности.
type Classification struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// NewClassification нормализует метку и зажимает уверенность в [0,1].
func NewClassification(label string, confidence float64) Classification {
	return Classification{
		Label:      strings.TrimSpace(label),
		Confidence: ClampConfidence(confidence),
	}
}

// ClampConfidence приводит значение к [0,1]; NaN становится 0.
func ClampConfidence(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Prediction строка реестра предсказаний.
type Prediction struct {
	Filename       string
	PredictedLabel string
	Confidence     float64
	TrueLabel      string
	Correct        bool // имеет смысл только при HasTruth
	Failed         bool
}

// NewPrediction собирает запись и вычисляет правильность.
func NewPrediction(filename string, c Classification, truth string) Prediction {
	p := Prediction{
		Filename:       filename,
		PredictedLabel: c.Label,
		Confidence:     ClampConfidence(c.Confidence),
		TrueLabel:      strings.TrimSpace(truth),
	}
	p.Correct = p.HasTruth() && LabelsMatch(p.PredictedLabel, p.TrueLabel)
	return p
}

// FailedPrediction маркер неудачи: unknown с нулевой уверенностью.
func FailedPrediction(filename, truth string) Prediction {
	p := NewPrediction(filename, Classification{Label: UnknownLabel}, truth)
	p.Failed = true
	p.Correct = false
	return p
}

// HasTruth есть ли эталон для этой строки.
func (p Prediction) HasTruth() bool {
	return p.TrueLabel != ""
}

// LabelsMatch сравнивает метки без учёта регистра и крайних пробелов.
func LabelsMatch(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}
