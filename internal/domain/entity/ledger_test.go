package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnswerLedger_Lookup(t *testing.T) {
	l := NewAnswerLedger([]AnswerEntry{
		{Filename: "img_1.jpg", Label: "사과"},
		{Filename: "img_2.jpg", Label: ""},
		{Filename: "img_1.jpg", Label: "배"},
	})

	label, ok := l.Lookup("img_1.jpg")
	require.True(t, ok)
	require.Equal(t, "배", label)

	label, ok = l.Lookup("img_2.jpg")
	require.True(t, ok)
	require.Empty(t, label)

	_, ok = l.Lookup("IMG_1.jpg")
	require.False(t, ok)

	require.Equal(t, 3, l.Len())
	require.Equal(t, []AnswerEntry{{Filename: "img_2.jpg"}}, l.Unlabeled())
	require.Equal(t, []string{"img_3.jpg"}, l.Missing([]string{"img_1.jpg", "img_3.jpg"}))
}

func TestAnswerLedger_Nil(t *testing.T) {
	var l *AnswerLedger
	require.Zero(t, l.Len())
	require.Empty(t, l.Truth("x.jpg"))
	require.Nil(t, l.Unlabeled())
}
