package helper

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/satvocab/vocab-api/internal/domain/entity"
)

// QuestionPrompt возвращает текст, который показывается пользователю:
// определение для definition_to_word и само слово для word_to_definition
func QuestionPrompt(q *entity.Question) string {
	if q.Type == entity.WordToDefinition {
		return q.Word.Word
	}
	return q.Word.Definition
}

// ParseQuestionType приводит строку запроса к типу вопроса.
// Пустая строка означает definition_to_word.
func ParseQuestionType(raw string) entity.QuestionType {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return entity.DefinitionToWord
	}
	return entity.QuestionType(raw)
}

// QueryInt читает числовой query-параметр. Отсутствующий параметр дает def.
// ok=false означает, что значение не является числом.
func QueryInt(c *gin.Context, name string, def int) (value int, ok bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}

// OptionalCount читает неотрицательный query-параметр; -1, если параметр не передан
func OptionalCount(c *gin.Context, name string) (value int, ok bool) {
	value, ok = QueryInt(c, name, -1)
	if !ok {
		return 0, false
	}
	if value < 0 && strings.TrimSpace(c.Query(name)) != "" {
		return 0, false
	}
	return value, true
}

// CopyOptions копирует варианты ответа, чтобы DTO не разделял срез с сессией
func CopyOptions(options []entity.QuestionOption) []entity.QuestionOption {
	out := make([]entity.QuestionOption, len(options))
	copy(out, options)
	return out
}
