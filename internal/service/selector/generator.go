package selector

import (
	"fmt"
	"sync"

	"github.com/satvocab/vocab-api/internal/catalog"
	"github.com/satvocab/vocab-api/internal/domain/entity"
	apperrors "github.com/satvocab/vocab-api/internal/pkg/errors"
)

// Generator генерирует вопросы по каталогу. Безопасен для конкурентного использования.
type Generator struct {
	catalog  *catalog.Catalog
	quiz     *Selector
	learning *Selector
	mu       sync.Mutex // защищает rng
}

// NewGenerator создаёт генератор; rng общий для режимов викторины и обучения
func NewGenerator(c *catalog.Catalog, weights Weights, rng RandomSource) *Generator {
	return &Generator{
		catalog:  c,
		quiz:     NewSelector(weights, rng),
		learning: NewSelector(LearningWeights(), rng),
	}
}

// Catalog возвращает каталог генератора
func (g *Generator) Catalog() *catalog.Catalog {
	return g.catalog
}

// GenerateQuestion выбирает слово и строит по нему вопрос
func (g *Generator) GenerateQuestion(qType entity.QuestionType, user, global Signal) (*entity.Question, error) {
	return g.GenerateQuestionExcluding(qType, user, global, nil)
}

// GenerateQuestionExcluding - то же, что GenerateQuestion, но с множеством исключённых слов
func (g *Generator) GenerateQuestionExcluding(qType entity.QuestionType, user, global Signal, excluded map[int]struct{}) (*entity.Question, error) {
	words := g.catalog.View()

	g.mu.Lock()
	defer g.mu.Unlock()

	word, err := g.quiz.SelectNext(words, user, global, excluded)
	if err != nil {
		return nil, err
	}
	return g.quiz.BuildQuestion(word, words, qType)
}

// GenerateQuestions генерирует count вопросов; повторы слов допустимы
func (g *Generator) GenerateQuestions(count int, qType entity.QuestionType, user, global Signal) ([]entity.Question, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive", apperrors.ErrValidation)
	}

	questions := make([]entity.Question, 0, count)
	for i := 0; i < count; i++ {
		q, err := g.GenerateQuestion(qType, user, global)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	return questions, nil
}

// LearningWords выбирает count разных слов с учётом только глобальной сложности
func (g *Generator) LearningWords(count int, global Signal) ([]entity.Word, error) {
	words := g.catalog.View()

	g.mu.Lock()
	defer g.mu.Unlock()

	return g.learning.SelectDistinct(words, nil, global, count)
}
