package selector

import (
	"errors"
	"fmt"

	apperrors "github.com/satvocab/vocab-api/internal/pkg/errors"
)

var (
	// ErrEmptyCatalog - выбирать не из чего
	ErrEmptyCatalog = errors.New("catalog is empty")

	// ErrCatalogTooSmall - для вопроса нужно минимум 4 слова
	ErrCatalogTooSmall = fmt.Errorf("%w: catalog must contain at least %d words", apperrors.ErrValidation, OptionsPerQuestion)

	// ErrWordNotInCatalog - вопрос строится только по слову из каталога
	ErrWordNotInCatalog = fmt.Errorf("%w: word is not in the catalog", apperrors.ErrValidation)
)
