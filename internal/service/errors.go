package service

import (
	"fmt"

	apperrors "github.com/satvocab/vocab-api/internal/pkg/errors"
)

// Ошибки сервисов; все оборачивают общие ошибки приложения
var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
	ErrUnknownWord        = fmt.Errorf("%w: unknown word id", apperrors.ErrValidation)
	ErrSessionNotFound    = fmt.Errorf("%w: quiz session not found", apperrors.ErrNotFound)
	ErrSessionFinished    = fmt.Errorf("%w: quiz session is finished", apperrors.ErrConflict)
	ErrSessionExpired     = fmt.Errorf("%w: quiz session time is over", apperrors.ErrExpired)
	ErrSessionForbidden   = fmt.Errorf("%w: quiz session belongs to another user", apperrors.ErrForbidden)
)

// Ошибки состояния сессии
var (
	ErrSessionComplete   = fmt.Errorf("%w: all questions are answered, finish the session", apperrors.ErrConflict)
	ErrNoPendingQuestion = fmt.Errorf("%w: no question is pending", apperrors.ErrConflict)
	ErrSessionBusy       = fmt.Errorf("%w: quiz session is being updated", apperrors.ErrConflict)
)
