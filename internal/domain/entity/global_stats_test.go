package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGlobalWordStat_Record(t *testing.T) {
	var stat GlobalWordStat

	stat.Record(true)
	stat.Record(false)
	stat.Record(false)
	stat.Record(true)

	assert.Equal(t, 4, stat.TotalAttempts)
	assert.Equal(t, 2, stat.Correct)
	assert.Equal(t, 2, stat.Incorrect)
	assert.InDelta(t, 0.5, stat.DifficultyScore, 1e-9, "DifficultyScore - доля ошибок")
}

func TestGlobalWordStat_DifficultyWeight(t *testing.T) {
	tests := []struct {
		name     string
		stat     GlobalWordStat
		expected float64
	}{
		{
			name:     "нет данных → базовый вес",
			stat:     GlobalWordStat{},
			expected: 1,
		},
		{
			name:     "меньше 5 попыток → базовый вес даже при 100% ошибок",
			stat:     GlobalWordStat{Incorrect: 4, TotalAttempts: 4, DifficultyScore: 1},
			expected: 1,
		},
		{
			name:     "5 попыток, 100% ошибок → 5",
			stat:     GlobalWordStat{Incorrect: 5, TotalAttempts: 5, DifficultyScore: 1},
			expected: 5,
		},
		{
			name:     "10 попыток, 20% ошибок → 1.8",
			stat:     GlobalWordStat{Correct: 8, Incorrect: 2, TotalAttempts: 10, DifficultyScore: 0.2},
			expected: 1.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.stat.DifficultyWeight(), 1e-9)
		})
	}
}
