package selector

import (
	"math"

	"github.com/satvocab/vocab-api/internal/domain/entity"
)

// Weights содержит коэффициенты адаптивного выбора слов
type Weights struct {
	// LocalMultiplier - вклад доли ошибок пользователя
	LocalMultiplier float64

	// GlobalMultiplier - вклад глобальной сложности слова
	GlobalMultiplier float64

	// GlobalMinAttempts - минимум попыток, после которого глобальной статистике доверяем
	GlobalMinAttempts int
}

// DefaultWeights возвращает коэффициенты режима викторины
func DefaultWeights() Weights {
	return Weights{
		LocalMultiplier:   5,
		GlobalMultiplier:  3,
		GlobalMinAttempts: entity.MinGlobalAttempts,
	}
}

// LearningWeights - режим обучения: только глобальная сложность, максимум x3
func LearningWeights() Weights {
	return Weights{
		LocalMultiplier:   0,
		GlobalMultiplier:  2,
		GlobalMinAttempts: entity.MinGlobalAttempts,
	}
}

// Local возвращает пользовательскую составляющую веса (>= 1)
func (w Weights) Local(sig DifficultySignal, ok bool) float64 {
	if !ok {
		return 1
	}
	rate, valid := sig.IncorrectRate()
	if !valid {
		return 1
	}
	return 1 + rate*w.LocalMultiplier
}

// Global возвращает глобальную составляющую веса (>= 1).
// Учитываются только TotalAttempts и ErrorRate снимка; счетчики correct/incorrect не пересчитываются.
func (w Weights) Global(sig DifficultySignal, ok bool) float64 {
	if !ok || sig.TotalAttempts < w.GlobalMinAttempts {
		return 1
	}
	if math.IsNaN(sig.ErrorRate) || sig.ErrorRate < 0 || sig.ErrorRate > 1 {
		return 1
	}
	return 1 + sig.ErrorRate*w.GlobalMultiplier
}

// Weight вычисляет вес слова: local * global
func (w Weights) Weight(id int, user, global Signal) float64 {
	u, uok := user[id]
	g, gok := global[id]
	weight := w.Local(u, uok) * w.Global(g, gok)
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		return 0
	}
	return weight
}

// Weight вычисляет вес слова с коэффициентами по умолчанию
func Weight(id int, user, global Signal) float64 {
	return DefaultWeights().Weight(id, user, global)
}
