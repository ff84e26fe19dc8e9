package entity

// QuestionType определяет направление вопроса
type QuestionType string

const (
	// DefinitionToWord - показываем определение, варианты - слова
	DefinitionToWord QuestionType = "definition_to_word"
	// WordToDefinition - показываем слово, варианты - определения
	WordToDefinition QuestionType = "word_to_definition"
)

// IsValid проверяет, что тип вопроса известен
func (t QuestionType) IsValid() bool {
	return t == DefinitionToWord || t == WordToDefinition
}

// QuestionOption представляет вариант ответа; ID совпадает с ID слова
type QuestionOption struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// Question - вопрос с четырьмя вариантами ответа. Не сохраняется в БД.
type Question struct {
	Word            Word             `json:"word"`
	Options         []QuestionOption `json:"options"`
	CorrectOptionID int              `json:"correctOptionId"`
	Type            QuestionType     `json:"type"`
}

// HasOption проверяет, что вариант с таким ID есть в вопросе
func (q *Question) HasOption(optionID int) bool {
	for _, opt := range q.Options {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}

// IsCorrect проверяет, является ли выбранный вариант правильным
func (q *Question) IsCorrect(optionID int) bool {
	return optionID == q.CorrectOptionID
}
