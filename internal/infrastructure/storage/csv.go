package storage

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"crop-vision/internal/domain/entity"
)

// utf8BOM пишем в начало файла, чтобы Excel корректно показывал корейский текст.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// csvTable прочитанная таблица: заголовок -> индекс колонки и строки данных.
type csvTable struct {
	columns map[string]int
	rows    [][]string
}

func (t *csvTable) get(row []string, column string) string {
	i, ok := t.columns[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// readCSV читает файл в UTF-8 (с BOM или без), при невалидном UTF-8 пробует CP949/EUC-KR.
func readCSV(path string, required ...string) (*csvTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	data, err = decodeText(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", entity.ErrInvalidLedger, path, err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", entity.ErrInvalidLedger, path, err)
	}

	t := &csvTable{columns: make(map[string]int)}
	if len(records) == 0 {
		return t, nil
	}

	for i, name := range records[0] {
		t.columns[strings.TrimSpace(name)] = i
	}
	for _, col := range required {
		if _, ok := t.columns[col]; !ok {
			return nil, fmt.Errorf("%w: %s: missing column %q", entity.ErrInvalidLedger, path, col)
		}
	}

	for _, row := range records[1:] {
		if isBlankRow(row) {
			continue
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// decodeText снимает BOM и приводит данные к UTF-8.
func decodeText(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, nil
	}
	// CP949 — надмножество EUC-KR, декодер x/text покрывает оба
	out, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("unsupported text encoding: %w", err)
	}
	return out, nil
}

// writeCSV атомарно перезаписывает файл: UTF-8 с BOM, родительские каталоги создаются.
func writeCSV(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := encodeCSV(tmp, header, rows); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func encodeCSV(w io.Writer, header []string, rows [][]string) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
