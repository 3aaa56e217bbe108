// Пакет errors — конструкторы стандартных ошибок REST API.
// Два формата тела: валидация — {"errors": ["...", ...]},
// остальные ошибки — {"error": "..."}.
package errors

import (
	"encoding/json"
	"net/http"
)

// errorBody — тело ответа с одиночной ошибкой.
type errorBody struct {
	Error string `json:"error"`
}

// validationBody — тело ответа валидации с полным списком сообщений.
type validationBody struct {
	Errors []string `json:"errors"`
}

// WriteError записывает ответ с одиночной ошибкой.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorBody{Error: message})
}

// --- Конструкторы для типичных ошибок ---

// ValidationErrors — 400, все нарушения правил валидации разом.
func ValidationErrors(w http.ResponseWriter, messages []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(validationBody{Errors: messages})
}

// BadRequest — 400 некорректный запрос (не валидация полей).
func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

// NotFound — 404 ресурс не найден.
func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

// Conflict — 409 конфликт (дублирующийся ресурс).
func Conflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, message)
}

// InternalError — 500 внутренняя ошибка.
func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}
