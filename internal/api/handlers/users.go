// users.go — обработчики /api/users endpoints.
// CRUD справочника пользователей.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/userdir/internal/api/errors"
	"github.com/bigkaa/userdir/internal/domain/model"
	"github.com/bigkaa/userdir/internal/service"
)

// userRequest — тело запроса создания/обновления пользователя.
// age принимает число, строку или null — клиенты шлют и то и другое.
type userRequest struct {
	Name    string          `json:"name"`
	Surname string          `json:"surname"`
	Email   string          `json:"email"`
	Sex     *string         `json:"sex"`
	Age     json.RawMessage `json:"age"`
}

// toInput приводит тело запроса к сырому вводу для валидации.
func (req *userRequest) toInput() model.UserInput {
	in := model.UserInput{
		Name:    req.Name,
		Surname: req.Surname,
		Email:   req.Email,
	}
	if req.Sex != nil {
		in.Sex = *req.Sex
	}
	in.Age = rawAgeString(req.Age)
	return in
}

// rawAgeString приводит JSON-значение age к строке для валидации.
// null и отсутствие поля дают пустую строку, число — его текст,
// строка — содержимое без кавычек.
func rawAgeString(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	if strings.HasPrefix(s, `"`) {
		var unquoted string
		if err := json.Unmarshal(raw, &unquoted); err != nil {
			return s
		}
		return unquoted
	}
	return s
}

// userIDParam извлекает id из URL. Нечисловой id равносилен отсутствующему.
func userIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// ListUsers — GET /api/users.
// Возвращает все записи, новые первыми.
func (h *APIHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.logger.Error("Ошибка получения списка пользователей", "error", err)
		apierrors.InternalError(w, "Failed to fetch users")
		return
	}
	if users == nil {
		users = []*model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// GetUser — GET /api/users/{id}.
func (h *APIHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(r)
	if !ok {
		apierrors.NotFound(w, "User not found")
		return
	}

	u, err := h.users.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, "User not found")
			return
		}
		h.logger.Error("Ошибка получения пользователя", "user_id", id, "error", err)
		apierrors.InternalError(w, "Failed to fetch user")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// CreateUser — POST /api/users.
// 201 с созданной записью, 400 со списком ошибок валидации,
// 409 при дубликате email.
func (h *APIHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.BadRequest(w, "Invalid JSON body")
		return
	}

	u, err := h.users.Create(r.Context(), req.toInput())
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			apierrors.ValidationErrors(w, vErr.Messages)
		case errors.Is(err, service.ErrConflict):
			apierrors.Conflict(w, "Email already exists")
		default:
			h.logger.Error("Ошибка создания пользователя", "error", err)
			apierrors.InternalError(w, "Failed to create user")
		}
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// UpdateUser — PUT /api/users/{id}.
// Полная замена полей записи; id и created_at неизменны.
func (h *APIHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(r)
	if !ok {
		apierrors.NotFound(w, "User not found")
		return
	}

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.BadRequest(w, "Invalid JSON body")
		return
	}

	u, err := h.users.Update(r.Context(), id, req.toInput())
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			apierrors.ValidationErrors(w, vErr.Messages)
		case errors.Is(err, service.ErrNotFound):
			apierrors.NotFound(w, "User not found")
		case errors.Is(err, service.ErrConflict):
			apierrors.Conflict(w, "Email already exists")
		default:
			h.logger.Error("Ошибка обновления пользователя", "user_id", id, "error", err)
			apierrors.InternalError(w, "Failed to update user")
		}
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// DeleteUser — DELETE /api/users/{id}.
// 204 без тела при успехе.
func (h *APIHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(r)
	if !ok {
		apierrors.NotFound(w, "User not found")
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, "User not found")
			return
		}
		h.logger.Error("Ошибка удаления пользователя", "user_id", id, "error", err)
		apierrors.InternalError(w, "Failed to delete user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
