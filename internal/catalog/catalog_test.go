package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satvocab/vocab-api/internal/domain/entity"
	apperrors "github.com/satvocab/vocab-api/internal/pkg/errors"
)

func sampleWords() []entity.Word {
	return []entity.Word{
		{ID: 1, Word: "Abate", Definition: "To lessen in intensity", Synonym: "diminish"},
		{ID: 2, Word: "Aberration", Definition: "A deviation from the norm", Synonym: "anomaly"},
		{ID: 3, Word: "Benevolent", Definition: "Kind and generous", Synonym: "charitable"},
		{ID: 4, Word: "Cacophony", Definition: "Harsh discordant sound", Synonym: "din"},
	}
}

func TestNew(t *testing.T) {
	c, err := New(sampleWords())
	require.NoError(t, err)

	assert.Equal(t, 4, c.Len())
	if diff := cmp.Diff(sampleWords(), c.Words()); diff != "" {
		t.Errorf("Words() mismatch (-want +got):\n%s", diff)
	}

	w, ok := c.Get(3)
	require.True(t, ok)
	assert.Equal(t, "Benevolent", w.Word)

	_, ok = c.Get(42)
	assert.False(t, ok, "Несуществующий ID не должен находиться")
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name  string
		words []entity.Word
	}{
		{"дубликат ID", []entity.Word{{ID: 1, Word: "A"}, {ID: 1, Word: "B"}}},
		{"нулевой ID", []entity.Word{{ID: 0, Word: "A"}}},
		{"отрицательный ID", []entity.Word{{ID: -3, Word: "A"}}},
		{"пустой термин", []entity.Word{{ID: 1, Word: "  "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.words)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestNew_Empty(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestCatalog_WordsIsCopy(t *testing.T) {
	c, err := New(sampleWords())
	require.NoError(t, err)

	words := c.Words()
	words[0].Word = "mutated"

	w, _ := c.Get(1)
	assert.Equal(t, "Abate", w.Word, "Изменение копии не должно менять каталог")
}

func TestCatalog_Search(t *testing.T) {
	c, err := New(sampleWords())
	require.NoError(t, err)

	got := c.Search("ab", 0)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 2, got[1].ID)

	assert.Len(t, c.Search("AB", 1), 1, "limit ограничивает выдачу")
	assert.Len(t, c.Search("", 3), 3, "пустой префикс возвращает начало каталога")
	assert.Empty(t, c.Search("zzz", 10))
}
