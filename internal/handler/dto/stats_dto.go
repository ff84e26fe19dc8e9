package dto

import "github.com/satvocab/vocab-api/internal/domain/entity"

// AnswerSubmissionRequest - один ответ в пакете для глобальной статистики.
// Указатели позволяют отличить отсутствующее поле от нулевого значения.
type AnswerSubmissionRequest struct {
	WordID    *int  `json:"wordId"`
	IsCorrect *bool `json:"isCorrect"`
}

// UpdatePerformanceRequest - запрос на обновление персональной статистики
type UpdatePerformanceRequest struct {
	WordID    *int  `json:"wordId" binding:"required"`
	IsCorrect *bool `json:"isCorrect" binding:"required"`
}

// ToSubmissions проверяет пакет и приводит его к доменным типам
func ToSubmissions(reqs []AnswerSubmissionRequest) ([]entity.AnswerSubmission, bool) {
	out := make([]entity.AnswerSubmission, 0, len(reqs))
	for _, r := range reqs {
		if r.WordID == nil || r.IsCorrect == nil {
			return nil, false
		}
		out = append(out, entity.AnswerSubmission{WordID: *r.WordID, IsCorrect: *r.IsCorrect})
	}
	return out, true
}

// GlobalStatsResponse - ответ /api/stats/global
type GlobalStatsResponse struct {
	Success    bool               `json:"success"`
	Stats      entity.GlobalStats `json:"stats"`
	TotalWords int                `json:"totalWords"`
}

// SubmitStatsResponse - ответ /api/stats/submit
type SubmitStatsResponse struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Stats   []entity.WordStatUpdate `json:"stats"`
}

// TopMissedResponse - ответ /api/stats/top-missed
type TopMissedResponse struct {
	Success           bool                   `json:"success"`
	Words             []entity.TopMissedWord `json:"words"`
	TotalTrackedWords int                    `json:"totalTrackedWords"`
}
