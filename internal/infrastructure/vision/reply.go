package vision

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"crop-vision/internal/domain/entity"
)

// parseJSON вырезает из ответа модели JSON-объект (markdown-ограждения, текст вокруг) и декодирует его.
func parseJSON[T any](response string) (T, error) {
	var zero T

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end < start {
		return zero, fmt.Errorf("%w: no JSON object in %q", entity.ErrMalformedReply, truncate(response, 200))
	}

	var result T
	if err := json.Unmarshal([]byte(response[start:end+1]), &result); err != nil {
		return zero, fmt.Errorf("%w: %v: %q", entity.ErrMalformedReply, err, truncate(response, 200))
	}
	return result, nil
}

// flexFloat принимает число, строку с числом или процентами ("93%").
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexFloat(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("confidence must be a number, got %s", data)
	}
	s = strings.TrimSpace(s)
	percent := strings.HasSuffix(s, "%")
	n, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return fmt.Errorf("confidence must be a number, got %q", s)
	}
	if percent {
		n /= 100
	}
	*f = flexFloat(n)
	return nil
}

type classificationReply struct {
	Crop       string    `json:"crop"`
	Label      string    `json:"label"`
	Confidence flexFloat `json:"confidence"`
}

// ParseClassification разбирает {"crop": "사과", "confidence": 0.93}.
// Ключ "label" принимается как синоним. Без метки ответ считается битым.
func ParseClassification(response string) (entity.Classification, error) {
	reply, err := parseJSON[classificationReply](response)
	if err != nil {
		return entity.Classification{}, err
	}

	label := reply.Crop
	if strings.TrimSpace(label) == "" {
		label = reply.Label
	}
	if strings.TrimSpace(label) == "" {
		return entity.Classification{}, fmt.Errorf("%w: empty label in %q", entity.ErrMalformedReply, truncate(response, 200))
	}

	return entity.NewClassification(label, float64(reply.Confidence)), nil
}

type cropInfoReply struct {
	entity.CropInfo
	Confidence flexFloat `json:"confidence"`
}

// ParseCropInfo разбирает карточку культуры.
func ParseCropInfo(response string) (entity.CropInfo, error) {
	reply, err := parseJSON[cropInfoReply](response)
	if err != nil {
		return entity.CropInfo{}, err
	}

	info := reply.CropInfo
	info.Name = strings.TrimSpace(info.Name)
	if info.Name == "" {
		return entity.CropInfo{}, fmt.Errorf("%w: empty crop name in %q", entity.ErrMalformedReply, truncate(response, 200))
	}
	info.Confidence = entity.ClampConfidence(float64(reply.Confidence))
	return info, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
