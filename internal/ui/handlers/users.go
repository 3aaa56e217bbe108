// Пакет handlers — HTTP-обработчики браузерного UI справочника.
// Страница таблицы пользователей: поиск, фильтр по полу, сортировка
// кликом по заголовку, пагинация; модальная форма создания/редактирования.
// Состояние представления живёт в query-параметрах, partials
// перерисовываются скриптом без перезагрузки страницы.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/userdir/internal/domain/model"
	"github.com/bigkaa/userdir/internal/service"
	"github.com/bigkaa/userdir/internal/ui/templates"
	"github.com/bigkaa/userdir/internal/ui/view"
)

// UsersHandler — обработчик страниц справочника пользователей.
type UsersHandler struct {
	usersSvc *service.UserService
	renderer *templates.Renderer
	pageSize int
	logger   *slog.Logger
}

// NewUsersHandler создаёт обработчик UI справочника.
// pageSize — размер страницы таблицы по умолчанию.
func NewUsersHandler(usersSvc *service.UserService, renderer *templates.Renderer, pageSize int, logger *slog.Logger) *UsersHandler {
	return &UsersHandler{
		usersSvc: usersSvc,
		renderer: renderer,
		pageSize: pageSize,
		logger:   logger.With(slog.String("component", "ui.users")),
	}
}

// stateFromQuery собирает состояние представления из query-параметров.
func (h *UsersHandler) stateFromQuery(q url.Values) view.State {
	st := view.State{
		Search:   q.Get("q"),
		Sex:      q.Get("sex"),
		SortKey:  q.Get("sort"),
		SortDir:  q.Get("order"),
		Page:     1,
		PageSize: h.pageSize,
	}

	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		st.Page = p
	}
	if ps, err := strconv.Atoi(q.Get("size")); err == nil && ps >= 1 && ps <= 100 {
		st.PageSize = ps
	}
	if st.SortKey != "" && st.SortDir != view.DirDesc {
		st.SortDir = view.DirAsc
	}
	return st
}

// tableData готовит данные таблицы: грузит список и применяет конвейер.
func (h *UsersHandler) tableData(r *http.Request) (templates.UserTableData, error) {
	st := h.stateFromQuery(r.URL.Query())

	users, err := h.usersSvc.List(r.Context())
	if err != nil {
		return templates.UserTableData{}, err
	}

	page := view.Apply(users, st)

	return templates.UserTableData{
		State:   st,
		Page:    page,
		Toggles: sortToggles(st),
	}, nil
}

// sortToggles вычисляет состояние после клика по каждому заголовку.
func sortToggles(st view.State) map[string]view.State {
	toggles := make(map[string]view.State, 6)
	for _, key := range []string{"id", "name", "surname", "email", "sex", "age"} {
		toggles[key] = view.Toggle(st, key)
	}
	return toggles
}

// HandleList обрабатывает GET /admin/users — страница таблицы.
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	data, err := h.tableData(r)
	if err != nil {
		h.logger.Error("Ошибка получения списка пользователей",
			slog.String("error", err.Error()),
		)
		h.renderError(w, http.StatusInternalServerError, "Не удалось загрузить справочник")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, "users.html", templates.UsersPageData{Table: data}); err != nil {
		h.logger.Error("Ошибка рендеринга страницы пользователей",
			slog.String("error", err.Error()),
		)
	}
}

// HandleTablePartial обрабатывает GET /admin/partials/user-table.
// Возвращает только таблицу с пагинацией, без layout.
func (h *UsersHandler) HandleTablePartial(w http.ResponseWriter, r *http.Request) {
	data, err := h.tableData(r)
	if err != nil {
		h.logger.Error("Ошибка получения списка пользователей",
			slog.String("error", err.Error()),
		)
		h.renderError(w, http.StatusInternalServerError, "Не удалось загрузить справочник")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, "user_table.html", data); err != nil {
		h.logger.Error("Ошибка рендеринга таблицы пользователей",
			slog.String("error", err.Error()),
		)
	}
}

// HandleFormPartial обрабатывает GET /admin/partials/user-form.
// Без параметра id — пустая форма создания, с id — форма редактирования.
func (h *UsersHandler) HandleFormPartial(w http.ResponseWriter, r *http.Request) {
	data := templates.UserFormData{}

	if idStr := r.URL.Query().Get("id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			h.renderError(w, http.StatusNotFound, "Пользователь не найден")
			return
		}

		u, err := h.usersSvc.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				h.renderError(w, http.StatusNotFound, "Пользователь не найден")
				return
			}
			h.logger.Error("Ошибка получения пользователя",
				slog.Int64("user_id", id),
				slog.String("error", err.Error()),
			)
			h.renderError(w, http.StatusInternalServerError, "Не удалось загрузить пользователя")
			return
		}

		data.ID = u.ID
		data.Input = userToInput(u)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, "user_form.html", data); err != nil {
		h.logger.Error("Ошибка рендеринга формы пользователя",
			slog.String("error", err.Error()),
		)
	}
}

// HandleCreate обрабатывает POST /admin/users — создание из формы.
// При ошибке валидации возвращает форму с сообщениями и кодом 400.
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, http.StatusBadRequest, "Некорректная форма")
		return
	}
	in := inputFromForm(r)

	_, err := h.usersSvc.Create(r.Context(), in)
	if err != nil {
		h.renderMutationError(w, err, templates.UserFormData{Input: in})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := h.renderer.Render(w, "form_success.html", nil); err != nil {
		h.logger.Error("Ошибка рендеринга подтверждения",
			slog.String("error", err.Error()),
		)
	}
}

// HandleUpdate обрабатывает POST /admin/users/{id} — сохранение формы.
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.renderError(w, http.StatusNotFound, "Пользователь не найден")
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderError(w, http.StatusBadRequest, "Некорректная форма")
		return
	}
	in := inputFromForm(r)

	_, err = h.usersSvc.Update(r.Context(), id, in)
	if err != nil {
		h.renderMutationError(w, err, templates.UserFormData{ID: id, Input: in})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := h.renderer.Render(w, "form_success.html", nil); err != nil {
		h.logger.Error("Ошибка рендеринга подтверждения",
			slog.String("error", err.Error()),
		)
	}
}

// HandleDelete обрабатывает POST /admin/users/{id}/delete.
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.renderError(w, http.StatusNotFound, "Пользователь не найден")
		return
	}

	if err := h.usersSvc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			// Запись уже удалена: таблица обновится при перерисовке
			h.renderError(w, http.StatusNotFound, "Пользователь не найден")
			return
		}
		h.logger.Error("Ошибка удаления пользователя",
			slog.Int64("user_id", id),
			slog.String("error", err.Error()),
		)
		h.renderError(w, http.StatusInternalServerError, "Не удалось удалить пользователя")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// renderMutationError отображает ошибку мутации в форме.
func (h *UsersHandler) renderMutationError(w http.ResponseWriter, err error, data templates.UserFormData) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		data.Errors = vErr.Messages
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
	case errors.Is(err, service.ErrConflict):
		data.Errors = []string{"Email already exists"}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusConflict)
	case errors.Is(err, service.ErrNotFound):
		h.renderError(w, http.StatusNotFound, "Пользователь не найден")
		return
	default:
		h.logger.Error("Ошибка сохранения пользователя",
			slog.String("error", err.Error()),
		)
		h.renderError(w, http.StatusInternalServerError, "Не удалось сохранить пользователя")
		return
	}

	if rErr := h.renderer.Render(w, "user_form.html", data); rErr != nil {
		h.logger.Error("Ошибка рендеринга формы пользователя",
			slog.String("error", rErr.Error()),
		)
	}
}

// renderError отображает сообщение об ошибке как alert partial.
func (h *UsersHandler) renderError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.renderer.Render(w, "alert.html", templates.AlertData{Message: message}); err != nil {
		h.logger.Error("Ошибка рендеринга alert",
			slog.String("error", err.Error()),
		)
	}
}

// inputFromForm собирает сырой ввод из полей формы.
func inputFromForm(r *http.Request) model.UserInput {
	return model.UserInput{
		Name:    r.PostFormValue("name"),
		Surname: r.PostFormValue("surname"),
		Email:   r.PostFormValue("email"),
		Sex:     r.PostFormValue("sex"),
		Age:     r.PostFormValue("age"),
	}
}

// userToInput переводит запись в значения полей формы редактирования.
func userToInput(u *model.User) model.UserInput {
	in := model.UserInput{
		Name:    u.Name,
		Surname: u.Surname,
		Email:   u.Email,
	}
	if u.Sex != nil {
		in.Sex = *u.Sex
	}
	if u.Age != nil {
		in.Age = strconv.Itoa(*u.Age)
	}
	return in
}
