package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"crop-vision/internal/domain/entity"
)

func TestAnswerCSV_CreateAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "answer.csv")
	repo := NewAnswerCSV(path)
	ctx := context.Background()

	exists, err := repo.Exists(ctx)
	require.NoError(t, err)
	require.False(t, exists)

	entries := []entity.AnswerEntry{
		{Filename: "img_1.jpg", Label: "사과"},
		{Filename: "img,2.jpg", Label: ""},
	}
	require.NoError(t, repo.Create(ctx, entries))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(raw, utf8BOM))

	ledger, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, entries, ledger.Entries)

	exists, err = repo.Exists(ctx)
	require.NoError(t, err)
	require.True(t, exists)
}

func TestAnswerCSV_LegacyKoreanEncoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answer.csv")
	encoded, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), []byte("filename,label\nimg_1.jpg,사과\nimg_2.jpg,딸기\n"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, encoded, 0o644))

	ledger, err := NewAnswerCSV(path).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "사과", ledger.Truth("img_1.jpg"))
	require.Equal(t, "딸기", ledger.Truth("img_2.jpg"))
}

func TestAnswerCSV_HeaderMatchedByName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answer.csv")
	require.NoError(t, os.WriteFile(path, []byte("label,note,filename\n 배 ,x, a.jpg\n,,\n"), 0o644))

	ledger, err := NewAnswerCSV(path).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, []entity.AnswerEntry{{Filename: "a.jpg", Label: "배"}}, ledger.Entries)
}

func TestAnswerCSV_Errors(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	_, err := NewAnswerCSV(filepath.Join(dir, "missing.csv")).Load(ctx)
	require.ErrorIs(t, err, entity.ErrAnswerLedgerNotFound)

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("name,label\na.jpg,사과\n"), 0o644))
	_, err = NewAnswerCSV(bad).Load(ctx)
	require.ErrorIs(t, err, entity.ErrInvalidLedger)

	headerOnly := filepath.Join(dir, "header.csv")
	require.NoError(t, os.WriteFile(headerOnly, []byte("\xEF\xBB\xBFfilename,label\n"), 0o644))
	exists, err := NewAnswerCSV(headerOnly).Exists(ctx)
	require.NoError(t, err)
	require.False(t, exists)

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	exists, err = NewAnswerCSV(empty).Exists(ctx)
	require.NoError(t, err)
	require.False(t, exists)
}
