package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"crop-vision/internal/domain/entity"
	"crop-vision/internal/domain/port"
)

var answerHeader = []string{"filename", "label"}

// AnswerCSV реестр ответов в CSV: filename,label
type AnswerCSV struct {
	path string
}

// NewAnswerCSV создаёт хранилище реестра ответов по пути к файлу
func NewAnswerCSV(path string) *AnswerCSV {
	return &AnswerCSV{path: path}
}

func (r *AnswerCSV) Path() string {
	return r.path
}

// Load читает реестр ответов
func (r *AnswerCSV) Load(ctx context.Context) (*entity.AnswerLedger, error) {
	t, err := readCSV(r.path, answerHeader...)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", entity.ErrAnswerLedgerNotFound, r.path)
	}
	if err != nil {
		return nil, err
	}

	entries := make([]entity.AnswerEntry, 0, len(t.rows))
	for _, row := range t.rows {
		name := t.get(row, "filename")
		if name == "" {
			continue
		}
		entries = append(entries, entity.AnswerEntry{
			Filename: name,
			Label:    t.get(row, "label"),
		})
	}
	return entity.NewAnswerLedger(entries), nil
}

// Exists true, если файл есть и в нём хотя бы одна строка данных.
// Пустой файл или файл только с заголовком считается отсутствующим.
func (r *AnswerCSV) Exists(ctx context.Context) (bool, error) {
	ledger, err := r.Load(ctx)
	switch {
	case errors.Is(err, entity.ErrAnswerLedgerNotFound):
		return false, nil
	case err != nil:
		// Непонятный файл не трогаем: вдруг это чьи-то ручные правки
		return true, err
	}
	return ledger.Len() > 0, nil
}

// Create записывает реестр
func (r *AnswerCSV) Create(ctx context.Context, entries []entity.AnswerEntry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Filename, e.Label})
	}
	return writeCSV(r.path, answerHeader, rows)
}

// Проверка реализации интерфейса
var _ port.AnswerRepository = (*AnswerCSV)(nil)
