package selector

import (
	"fmt"

	"github.com/satvocab/vocab-api/internal/domain/entity"
	apperrors "github.com/satvocab/vocab-api/internal/pkg/errors"
)

// OptionsPerQuestion - количество вариантов ответа в вопросе
const OptionsPerQuestion = 4

// Shuffle возвращает перемешанную копию (Fisher–Yates)
func Shuffle[T any](rng RandomSource, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// BuildQuestion собирает вопрос: слово плюс 3 случайных дистрактора, в случайном порядке
func (s *Selector) BuildQuestion(item entity.Word, words []entity.Word, qType entity.QuestionType) (*entity.Question, error) {
	if !qType.IsValid() {
		return nil, fmt.Errorf("%w: unknown question type %q", apperrors.ErrValidation, qType)
	}

	if len(words) < OptionsPerQuestion {
		return nil, ErrCatalogTooSmall
	}

	others := make([]entity.Word, 0, len(words))
	for _, w := range words {
		if w.ID != item.ID {
			others = append(others, w)
		}
	}
	if len(others) == len(words) {
		return nil, fmt.Errorf("%w: word %d", ErrWordNotInCatalog, item.ID)
	}
	if len(others) < OptionsPerQuestion-1 {
		return nil, ErrCatalogTooSmall
	}

	distractors := Shuffle(s.rng, others)[:OptionsPerQuestion-1]
	all := append([]entity.Word{item}, distractors...)
	shuffled := Shuffle(s.rng, all)

	options := make([]entity.QuestionOption, len(shuffled))
	for i, w := range shuffled {
		text := w.Definition
		if qType == entity.DefinitionToWord {
			text = w.Word
		}
		options[i] = entity.QuestionOption{ID: w.ID, Text: text}
	}

	return &entity.Question{
		Word:            item,
		Options:         options,
		CorrectOptionID: item.ID,
		Type:            qType,
	}, nil
}
