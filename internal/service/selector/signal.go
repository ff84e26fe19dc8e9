package selector

import "github.com/satvocab/vocab-api/internal/domain/entity"

// DifficultySignal - счетчики ответов по одному слову
type DifficultySignal struct {
	Correct       int
	Incorrect     int
	TotalAttempts int
	// ErrorRate - доля ошибок 0..1; NaN и значения вне диапазона означают "нет данных"
	ErrorRate float64
}

// Signal - снимок сигналов сложности по ID слова.
// Отсутствующая запись означает "нет данных".
type Signal map[int]DifficultySignal

// IncorrectRate - доля ошибок по счетчикам correct/incorrect
func (s DifficultySignal) IncorrectRate() (float64, bool) {
	if s.Correct < 0 || s.Incorrect < 0 {
		return 0, false
	}
	total := s.Correct + s.Incorrect
	if total == 0 {
		return 0, false
	}
	return float64(s.Incorrect) / float64(total), true
}

// FromPerformance строит пользовательский сигнал из счетчиков
func FromPerformance(perf map[int]entity.PerformanceCounts) Signal {
	sig := make(Signal, len(perf))
	for id, p := range perf {
		sig[id] = DifficultySignal{
			Correct:       p.Correct,
			Incorrect:     p.Incorrect,
			TotalAttempts: p.Correct + p.Incorrect,
		}
	}
	return sig
}

// FromGlobalStats строит глобальный сигнал из общей статистики
func FromGlobalStats(stats entity.GlobalStats) Signal {
	sig := make(Signal, len(stats))
	for id, s := range stats {
		sig[id] = DifficultySignal{
			Correct:       s.Correct,
			Incorrect:     s.Incorrect,
			TotalAttempts: s.TotalAttempts,
			ErrorRate:     s.DifficultyScore,
		}
	}
	return sig
}

// Record учитывает ответ в снимке сигнала
func (sig Signal) Record(wordID int, isCorrect bool) {
	s := sig[wordID]
	if isCorrect {
		s.Correct++
	} else {
		s.Incorrect++
	}
	s.TotalAttempts = s.Correct + s.Incorrect
	s.ErrorRate = float64(s.Incorrect) / float64(s.TotalAttempts)
	sig[wordID] = s
}
