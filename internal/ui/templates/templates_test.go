package templates

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/bigkaa/userdir/internal/domain/model"
	"github.com/bigkaa/userdir/internal/ui/view"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

// tableData возвращает данные таблицы для рендеринга.
func tableData() UserTableData {
	users := []*model.User{
		{ID: 2, Name: "Анна", Surname: "Сидорова", Email: "anna@example.com", Sex: strPtr("female"), Age: intPtr(28), CreatedAt: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)},
		{ID: 1, Name: "Иван", Surname: "Петров", Email: "ivan@example.com", CreatedAt: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)},
	}
	st := view.State{Page: 1, PageSize: 10}
	return UserTableData{
		State: st,
		Page:  view.Apply(users, st),
		Toggles: map[string]view.State{
			"id": view.Toggle(st, "id"), "name": view.Toggle(st, "name"),
			"surname": view.Toggle(st, "surname"), "email": view.Toggle(st, "email"),
			"sex": view.Toggle(st, "sex"), "age": view.Toggle(st, "age"),
		},
	}
}

func TestRender_UsersPage(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New() вернул ошибку: %v", err)
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, "users.html", UsersPageData{Table: tableData()}); err != nil {
		t.Fatalf("Render() вернул ошибку: %v", err)
	}

	html := buf.String()
	for _, want := range []string{"Справочник пользователей", "anna@example.com", "ivan@example.com", "/static/js/app.js"} {
		if !strings.Contains(html, want) {
			t.Errorf("в странице нет %q", want)
		}
	}
}

func TestRender_UserTable(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New() вернул ошибку: %v", err)
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, "user_table.html", tableData()); err != nil {
		t.Fatalf("Render() вернул ошибку: %v", err)
	}

	html := buf.String()
	// Необязательные поля без значения отображаются прочерком
	if !strings.Contains(html, "&mdash;") && !strings.Contains(html, "—") {
		t.Error("в таблице нет прочерка для отсутствующих sex/age")
	}
	if !strings.Contains(html, "Показано 2 из 2") {
		t.Errorf("в таблице нет счётчика записей: %s", html[:200])
	}
}

func TestRender_UserTable_Empty(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New() вернул ошибку: %v", err)
	}

	st := view.State{Page: 1, PageSize: 10}
	data := UserTableData{
		State:   st,
		Page:    view.Apply(nil, st),
		Toggles: map[string]view.State{},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, "user_table.html", data); err != nil {
		t.Fatalf("Render() вернул ошибку: %v", err)
	}
	if !strings.Contains(buf.String(), "Справочник пуст") {
		t.Error("нет empty state для пустого справочника")
	}
}

func TestRender_UserForm(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New() вернул ошибку: %v", err)
	}

	// Форма создания
	var buf bytes.Buffer
	if err := r.Render(&buf, "user_form.html", UserFormData{}); err != nil {
		t.Fatalf("Render() формы создания вернул ошибку: %v", err)
	}
	if !strings.Contains(buf.String(), "Новый пользователь") {
		t.Error("нет заголовка формы создания")
	}
	if !strings.Contains(buf.String(), `action="/admin/users"`) {
		t.Error("форма создания указывает не на /admin/users")
	}

	// Форма редактирования с ошибками
	buf.Reset()
	data := UserFormData{
		ID:     7,
		Input:  model.UserInput{Name: "Иван", Surname: "Петров", Email: "ivan@example.com", Age: "30"},
		Errors: []string{"Email format is invalid"},
	}
	if err := r.Render(&buf, "user_form.html", data); err != nil {
		t.Fatalf("Render() формы редактирования вернул ошибку: %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, `action="/admin/users/7"`) {
		t.Error("форма редактирования указывает не на /admin/users/7")
	}
	if !strings.Contains(html, "Email format is invalid") {
		t.Error("в форме нет сообщения об ошибке")
	}
}

// TestRender_EscapesHTML проверяет автоэкранирование пользовательских данных.
func TestRender_EscapesHTML(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New() вернул ошибку: %v", err)
	}

	st := view.State{Page: 1, PageSize: 10}
	users := []*model.User{
		{ID: 1, Name: "<script>alert(1)</script>", Surname: "X", Email: "x@example.com"},
	}
	data := UserTableData{State: st, Page: view.Apply(users, st), Toggles: map[string]view.State{}}

	var buf bytes.Buffer
	if err := r.Render(&buf, "user_table.html", data); err != nil {
		t.Fatalf("Render() вернул ошибку: %v", err)
	}
	if strings.Contains(buf.String(), "<script>alert(1)</script>") {
		t.Error("пользовательский ввод не экранирован")
	}
}
