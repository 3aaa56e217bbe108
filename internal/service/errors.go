// errors.go — ошибки бизнес-логики сервисного слоя.
package service

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound — ресурс не найден.
	ErrNotFound = errors.New("ресурс не найден")
	// ErrConflict — конфликт (дублирующийся ресурс).
	ErrConflict = errors.New("конфликт — ресурс уже существует")
	// ErrValidation — ошибка валидации входных данных.
	ErrValidation = errors.New("ошибка валидации")
)

// ValidationError — ошибка валидации с полным списком сообщений.
// Сообщения идут в порядке полей формы: name, surname, email, age, sex.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "ошибка валидации: " + strings.Join(e.Messages, "; ")
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
