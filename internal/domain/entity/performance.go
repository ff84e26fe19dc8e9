package entity

import "time"

// WordPerformance хранит счетчики ответов пользователя по одному слову
type WordPerformance struct {
	ID        uint      `gorm:"primaryKey" db:"id" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_word" db:"user_id" json:"-"`
	WordID    int       `gorm:"not null;uniqueIndex:idx_user_word" db:"word_id" json:"wordId"`
	Correct   int       `gorm:"not null;default:0" db:"correct" json:"correct"`
	Incorrect int       `gorm:"not null;default:0" db:"incorrect" json:"incorrect"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// TableName определяет имя таблицы для GORM
func (WordPerformance) TableName() string {
	return "user_performance"
}

// Total возвращает общее количество попыток
func (p WordPerformance) Total() int {
	return p.Correct + p.Incorrect
}

// PerformanceCounts - форма счетчиков, которую отдает /api/user/performance
// и которую гость присылает из localStorage.
type PerformanceCounts struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}
