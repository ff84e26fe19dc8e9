package selector

import (
	"log"

	"github.com/satvocab/vocab-api/internal/domain/entity"
)

// Selector выбирает слова взвешенной рулеткой по сигналам сложности
type Selector struct {
	weights Weights
	rng     RandomSource
}

// NewSelector создаёт новый селектор
func NewSelector(weights Weights, rng RandomSource) *Selector {
	return &Selector{
		weights: weights,
		rng:     rng,
	}
}

// SelectNext выбирает одно слово из каталога.
// excluded - необязательное множество исключённых ID; если оно исключает
// все слова, исключение игнорируется. Повторы между вызовами допустимы.
func (s *Selector) SelectNext(words []entity.Word, user, global Signal, excluded map[int]struct{}) (entity.Word, error) {
	if len(words) == 0 {
		return entity.Word{}, ErrEmptyCatalog
	}

	candidates := words
	if len(excluded) > 0 {
		filtered := make([]entity.Word, 0, len(words))
		for _, w := range words {
			if _, skip := excluded[w.ID]; !skip {
				filtered = append(filtered, w)
			}
		}
		if len(filtered) > 0 {
			candidates = filtered
		} else {
			log.Printf("[Selector] Исключены все %d слов, исключение игнорируется", len(words))
		}
	}

	weights := make([]float64, len(candidates))
	for i, w := range candidates {
		weights[i] = s.weights.Weight(w.ID, user, global)
	}

	return candidates[s.roulette(weights)], nil
}

// SelectDistinct выбирает до count разных слов взвешенной выборкой без возвращения
func (s *Selector) SelectDistinct(words []entity.Word, user, global Signal, count int) ([]entity.Word, error) {
	if len(words) == 0 {
		return nil, ErrEmptyCatalog
	}
	if count <= 0 {
		return []entity.Word{}, nil
	}
	if count > len(words) {
		count = len(words)
	}

	pool := make([]entity.Word, len(words))
	copy(pool, words)
	weights := make([]float64, len(pool))
	for i, w := range pool {
		weights[i] = s.weights.Weight(w.ID, user, global)
	}

	selected := make([]entity.Word, 0, count)
	for len(selected) < count {
		idx := s.roulette(weights)
		selected = append(selected, pool[idx])

		last := len(pool) - 1
		pool[idx], pool[last] = pool[last], pool[idx]
		weights[idx], weights[last] = weights[last], weights[idx]
		pool = pool[:last]
		weights = weights[:last]
	}

	return selected, nil
}

// roulette возвращает индекс по накопленным весам.
// Некорректные или нулевые суммы дают последний индекс.
func (s *Selector) roulette(weights []float64) int {
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}

	last := len(weights) - 1
	if !(total > 0) {
		return last
	}

	r := s.rng.Float64() * total
	for i, w := range weights {
		if !(w > 0) {
			continue
		}
		r -= w
		if r <= 0 {
			return i
		}
	}

	return last
}
