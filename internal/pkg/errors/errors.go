package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок аутентификации (нет токена, неверный пароль).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда пользователь пытается работать с чужим ресурсом.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrExpired используется, когда срок действия ресурса истек (например, таймер сессии).
	ErrExpired = errors.New("resource is expired")

	// ErrConflict используется для конфликтов состояния (занятое имя пользователя, завершенная сессия).
	ErrConflict = errors.New("resource state conflict")
)
