// Пакет templates — встроенные HTML-шаблоны браузерного UI.
// Шаблоны встраиваются в бинарник через //go:embed и рендерятся
// стандартным html/template с автоэкранированием.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/bigkaa/userdir/internal/domain/model"
	"github.com/bigkaa/userdir/internal/ui/view"
)

//go:embed *.html
var content embed.FS

// Renderer — набор разобранных шаблонов UI.
type Renderer struct {
	tmpl *template.Template
}

// New разбирает все встроенные шаблоны.
func New() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"seq": seq,
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}).ParseFS(content, "*.html")
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора шаблонов: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render выполняет шаблон name с данными data.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("ошибка рендеринга %s: %w", name, err)
	}
	return nil
}

// seq возвращает числа от from до to включительно (номера страниц).
func seq(from, to int) []int {
	if to < from {
		return nil
	}
	result := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		result = append(result, i)
	}
	return result
}

// UsersPageData — данные полной страницы справочника.
type UsersPageData struct {
	Table UserTableData
}

// UserTableData — данные partial таблицы пользователей.
type UserTableData struct {
	State view.State
	Page  view.Page
	// Toggles — состояние сортировки после клика по каждому заголовку.
	Toggles map[string]view.State
}

// UserFormData — данные формы создания/редактирования.
// ID == 0 означает форму создания.
type UserFormData struct {
	ID     int64
	Input  model.UserInput
	Errors []string
}

// AlertData — данные partial с сообщением об ошибке.
type AlertData struct {
	Message string
}
