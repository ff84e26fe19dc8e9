package selector

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satvocab/vocab-api/internal/domain/entity"
	apperrors "github.com/satvocab/vocab-api/internal/pkg/errors"
)

func TestShuffle_IsPermutation(t *testing.T) {
	rng := NewRandomSource(11)
	input := []int{1, 2, 3, 4, 5, 6, 7, 8}

	for i := 0; i < 100; i++ {
		out := Shuffle(rng, input)
		sorted := append([]int(nil), out...)
		sort.Ints(sorted)
		require.Equal(t, input, sorted)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, input, "Shuffle не должен менять исходный срез")
}

func TestShuffle_Uniform(t *testing.T) {
	rng := NewRandomSource(12)
	input := []int{0, 1, 2}

	const runs = 30000
	firstCounts := make([]int, 3)
	for i := 0; i < runs; i++ {
		firstCounts[Shuffle(rng, input)[0]]++
	}
	for v, c := range firstCounts {
		assert.InDelta(t, 1.0/3.0, float64(c)/runs, 0.02, "Элемент %d должен оказываться первым в ~1/3 случаев", v)
	}
}

func TestBuildQuestion_Invariants(t *testing.T) {
	words := testWords(12)
	s := NewSelector(DefaultWeights(), NewRandomSource(8))

	for _, qType := range []entity.QuestionType{entity.DefinitionToWord, entity.WordToDefinition} {
		for _, item := range words {
			q, err := s.BuildQuestion(item, words, qType)
			require.NoError(t, err)

			require.Len(t, q.Options, OptionsPerQuestion)
			assert.Equal(t, item.ID, q.CorrectOptionID)
			assert.Equal(t, item, q.Word)
			assert.Equal(t, qType, q.Type)

			ids := make(map[int]bool)
			matches := 0
			for _, opt := range q.Options {
				assert.False(t, ids[opt.ID], "ID вариантов должны быть уникальны")
				ids[opt.ID] = true
				if opt.ID == item.ID {
					matches++
				}
			}
			assert.Equal(t, 1, matches, "Ровно один вариант совпадает со словом")
		}
	}
}

func TestBuildQuestion_OptionText(t *testing.T) {
	words := testWords(4)
	s := NewSelector(DefaultWeights(), NewRandomSource(1))
	byID := make(map[int]entity.Word)
	for _, w := range words {
		byID[w.ID] = w
	}

	q, err := s.BuildQuestion(words[0], words, entity.DefinitionToWord)
	require.NoError(t, err)
	for _, opt := range q.Options {
		assert.Equal(t, byID[opt.ID].Word, opt.Text, "definition_to_word: варианты - слова")
	}

	q, err = s.BuildQuestion(words[0], words, entity.WordToDefinition)
	require.NoError(t, err)
	for _, opt := range q.Options {
		assert.Equal(t, byID[opt.ID].Definition, opt.Text, "word_to_definition: варианты - определения")
	}
}

func TestBuildQuestion_CatalogTooSmall(t *testing.T) {
	s := NewSelector(DefaultWeights(), NewRandomSource(1))

	for n := 0; n < OptionsPerQuestion; n++ {
		words := testWords(n)
		item := entity.Word{ID: 1, Word: "WordA"}
		_, err := s.BuildQuestion(item, words, entity.DefinitionToWord)
		assert.ErrorIs(t, err, ErrCatalogTooSmall, "каталог из %d слов", n)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	}
}

func TestBuildQuestion_WordOutsideCatalog(t *testing.T) {
	s := NewSelector(DefaultWeights(), NewRandomSource(1))
	outside := entity.Word{ID: 99, Word: "Outside", Definition: "not listed"}

	// Три слова в каталоге плюс внешнее слово не дают права на вопрос
	q, err := s.BuildQuestion(outside, testWords(OptionsPerQuestion-1), entity.DefinitionToWord)
	assert.ErrorIs(t, err, ErrCatalogTooSmall)
	assert.Nil(t, q)

	q, err = s.BuildQuestion(outside, testWords(6), entity.DefinitionToWord)
	assert.ErrorIs(t, err, ErrWordNotInCatalog)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Nil(t, q)
}

func TestBuildQuestion_UnknownType(t *testing.T) {
	s := NewSelector(DefaultWeights(), NewRandomSource(1))
	words := testWords(5)

	_, err := s.BuildQuestion(words[0], words, entity.QuestionType("reverse"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
