package entity

// MinGlobalAttempts - минимальное число попыток, после которого глобальной статистике доверяют
const MinGlobalAttempts = 5

// GlobalWordStat хранит агрегированную по всем пользователям статистику слова
type GlobalWordStat struct {
	Correct         int     `json:"correct"`
	Incorrect       int     `json:"incorrect"`
	TotalAttempts   int     `json:"totalAttempts"`
	DifficultyScore float64 `json:"difficultyScore"` // 0..1, доля ошибок
}

// Record учитывает один ответ и пересчитывает DifficultyScore
func (s *GlobalWordStat) Record(isCorrect bool) {
	s.TotalAttempts++
	if isCorrect {
		s.Correct++
	} else {
		s.Incorrect++
	}
	s.DifficultyScore = float64(s.Incorrect) / float64(s.TotalAttempts)
}

// DifficultyWeight возвращает вес слова для показа: 1 при недостатке данных,
// иначе от 1 (0% ошибок) до 5 (100% ошибок).
func (s GlobalWordStat) DifficultyWeight() float64 {
	if s.TotalAttempts < MinGlobalAttempts {
		return 1
	}
	return 1 + s.DifficultyScore*4
}

// GlobalStats - статистика по всем словам, ключ - ID слова
type GlobalStats map[int]GlobalWordStat

// AnswerSubmission - один ответ, отправляемый в глобальную статистику
type AnswerSubmission struct {
	WordID    int  `json:"wordId"`
	IsCorrect bool `json:"isCorrect"`
}

// WordStatUpdate - результат обновления статистики слова
type WordStatUpdate struct {
	WordID int            `json:"wordId"`
	Stat   GlobalWordStat `json:"stat"`
}
