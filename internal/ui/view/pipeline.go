// Пакет view — конвейер табличного представления справочника:
// поиск → фильтр → сортировка → пагинация.
// Чистые функции без состояния; обработчики UI держат State
// в query-параметрах и применяют конвейер к полному списку.
package view

import (
	"sort"
	"strings"

	"github.com/bigkaa/userdir/internal/domain/model"
)

// Направления сортировки.
const (
	DirAsc  = "asc"
	DirDesc = "desc"
)

// Ключи сортировки, по которым сравнение числовое.
// Отсутствующее значение считается нулём.
var numericKeys = map[string]bool{
	"id":  true,
	"age": true,
}

// State — параметры представления таблицы.
// Пустой SortKey означает порядок, в котором записи пришли из БД.
type State struct {
	Search   string
	Sex      string
	SortKey  string
	SortDir  string
	Page     int
	PageSize int
}

// Page — готовая страница таблицы.
type Page struct {
	Items         []*model.User
	TotalAll      int
	TotalFiltered int
	CurrentPage   int
	TotalPages    int
}

// Toggle возвращает состояние после клика по заголовку колонки.
// Повторный клик по той же колонке меняет направление,
// новая колонка всегда начинает с asc. Номер страницы не сбрасывается.
func Toggle(st State, key string) State {
	if st.SortKey == key {
		if st.SortDir == DirAsc {
			st.SortDir = DirDesc
		} else {
			st.SortDir = DirAsc
		}
		return st
	}
	st.SortKey = key
	st.SortDir = DirAsc
	return st
}

// Apply прогоняет полный список через конвейер и возвращает страницу.
// Номер страницы приводится в диапазон [1, TotalPages].
func Apply(users []*model.User, st State) Page {
	filtered := filter(users, st.Search, st.Sex)
	sorted := sortUsers(filtered, st.SortKey, st.SortDir)

	pageSize := st.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	totalPages := (len(sorted) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	page := st.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(sorted) {
		start = len(sorted)
	}
	if end > len(sorted) {
		end = len(sorted)
	}

	return Page{
		Items:         sorted[start:end],
		TotalAll:      len(users),
		TotalFiltered: len(sorted),
		CurrentPage:   page,
		TotalPages:    totalPages,
	}
}

// filter оставляет записи, содержащие search в имени, фамилии или email
// (без учёта регистра) и совпадающие по полу, если фильтр задан.
func filter(users []*model.User, search, sex string) []*model.User {
	needle := strings.ToLower(search)
	result := make([]*model.User, 0, len(users))
	for _, u := range users {
		if needle != "" &&
			!strings.Contains(strings.ToLower(u.Name), needle) &&
			!strings.Contains(strings.ToLower(u.Surname), needle) &&
			!strings.Contains(strings.ToLower(u.Email), needle) {
			continue
		}
		if sex != "" && (u.Sex == nil || *u.Sex != sex) {
			continue
		}
		result = append(result, u)
	}
	return result
}

// sortUsers возвращает отсортированную копию среза.
// Сортировка стабильная: записи с равными ключами сохраняют
// исходный относительный порядок.
func sortUsers(users []*model.User, key, dir string) []*model.User {
	if key == "" {
		return users
	}

	sorted := make([]*model.User, len(users))
	copy(sorted, users)

	desc := dir == DirDesc

	if numericKeys[key] {
		sort.SliceStable(sorted, func(i, j int) bool {
			a, b := numericValue(sorted[i], key), numericValue(sorted[j], key)
			if desc {
				return a > b
			}
			return a < b
		})
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := stringValue(sorted[i], key), stringValue(sorted[j], key)
		if desc {
			return a > b
		}
		return a < b
	})
	return sorted
}

// numericValue возвращает числовое значение ключа; отсутствующее — 0.
func numericValue(u *model.User, key string) int64 {
	switch key {
	case "id":
		return u.ID
	case "age":
		if u.Age == nil {
			return 0
		}
		return int64(*u.Age)
	}
	return 0
}

// stringValue возвращает строковое значение ключа в нижнем регистре;
// отсутствующее — пустая строка.
func stringValue(u *model.User, key string) string {
	var v string
	switch key {
	case "name":
		v = u.Name
	case "surname":
		v = u.Surname
	case "email":
		v = u.Email
	case "sex":
		if u.Sex != nil {
			v = *u.Sex
		}
	case "created_at":
		v = u.CreatedAt.UTC().Format("2006-01-02T15:04:05.000000000")
	}
	return strings.ToLower(v)
}
