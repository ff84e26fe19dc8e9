package catalog

import (
	"fmt"
	"strings"

	"github.com/satvocab/vocab-api/internal/domain/entity"
	apperrors "github.com/satvocab/vocab-api/internal/pkg/errors"
)

// Catalog - неизменяемый упорядоченный список слов с индексом по ID
type Catalog struct {
	words []entity.Word
	byID  map[int]int
}

// New создает каталог, проверяя уникальность и корректность ID
func New(words []entity.Word) (*Catalog, error) {
	c := &Catalog{
		words: make([]entity.Word, len(words)),
		byID:  make(map[int]int, len(words)),
	}
	copy(c.words, words)

	for i, w := range c.words {
		if w.ID <= 0 {
			return nil, fmt.Errorf("%w: word #%d has non-positive id %d", apperrors.ErrValidation, i, w.ID)
		}
		if strings.TrimSpace(w.Word) == "" {
			return nil, fmt.Errorf("%w: word id %d has empty term", apperrors.ErrValidation, w.ID)
		}
		if _, dup := c.byID[w.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate word id %d", apperrors.ErrValidation, w.ID)
		}
		c.byID[w.ID] = i
	}

	return c, nil
}

// Len возвращает количество слов
func (c *Catalog) Len() int {
	return len(c.words)
}

// Words возвращает копию списка слов
func (c *Catalog) Words() []entity.Word {
	out := make([]entity.Word, len(c.words))
	copy(out, c.words)
	return out
}

// View возвращает список слов без копирования. Вызывающий код не должен его изменять.
func (c *Catalog) View() []entity.Word {
	return c.words
}

// Get возвращает слово по ID
func (c *Catalog) Get(id int) (entity.Word, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return entity.Word{}, false
	}
	return c.words[idx], true
}

// Contains проверяет наличие слова в каталоге
func (c *Catalog) Contains(id int) bool {
	_, ok := c.byID[id]
	return ok
}

// Search ищет слова по префиксу термина без учета регистра.
// Пустой префикс возвращает первые limit слов каталога.
func (c *Catalog) Search(prefix string, limit int) []entity.Word {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	out := make([]entity.Word, 0)
	for _, w := range c.words {
		if limit > 0 && len(out) >= limit {
			break
		}
		if prefix == "" || strings.HasPrefix(strings.ToLower(w.Word), prefix) {
			out = append(out, w)
		}
	}
	return out
}
