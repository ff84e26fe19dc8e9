package entity

import "time"

// WordStat - статистика пользователя по одному слову для страницы статистики
type WordStat struct {
	WordID     int       `json:"wordId"`
	Word       string    `json:"word"`
	Definition string    `json:"definition"`
	Synonym    string    `json:"synonym"`
	Correct    int       `json:"correct"`
	Incorrect  int       `json:"incorrect"`
	Total      int       `json:"total"`
	Accuracy   int       `json:"accuracy"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// StatsOverview - общие показатели пользователя
type StatsOverview struct {
	TotalWordsStudied int `json:"totalWordsStudied"`
	TotalAttempts     int `json:"totalAttempts"`
	TotalCorrect      int `json:"totalCorrect"`
	TotalIncorrect    int `json:"totalIncorrect"`
	OverallAccuracy   int `json:"overallAccuracy"`
}

// UserStats - ответ /api/user/stats
type UserStats struct {
	Overview       StatsOverview `json:"overview"`
	StrongestWords []WordStat    `json:"strongestWords"`
	WeakestWords   []WordStat    `json:"weakestWords"`
	MostPracticed  []WordStat    `json:"mostPracticed"`
	MostMissed     []WordStat    `json:"mostMissed"`
	RecentWords    []WordStat    `json:"recentWords"`
}

// TopMissedWord - слово из рейтинга самых трудных по глобальной статистике
type TopMissedWord struct {
	ID              int     `json:"id"`
	Word            string  `json:"word"`
	Definition      string  `json:"definition"`
	Synonym         string  `json:"synonym"`
	TotalAttempts   int     `json:"totalAttempts"`
	Correct         int     `json:"correct"`
	Incorrect       int     `json:"incorrect"`
	ErrorPercentage int     `json:"errorPercentage"`
	DifficultyScore float64 `json:"difficultyScore"`
	Weight          float64 `json:"weight"`
}
