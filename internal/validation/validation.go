// Пакет validation — единый модуль валидации записи пользователя.
// Один и тот же код вызывается на обеих границах доверия:
// предварительная проверка в UI-обработчиках и авторитетная проверка
// в сервисном слое перед записью в БД. Расхождение результатов исключено.
package validation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bigkaa/userdir/internal/domain/model"
)

// Тексты ошибок валидации. Возвращаются как в API (400 {"errors":[...]}),
// так и в UI-форме, поэтому формулировки фиксированы.
const (
	MsgNameRequired    = "Name is required"
	MsgSurnameRequired = "Surname is required"
	MsgEmailRequired   = "Email is required"
	MsgEmailInvalid    = "Email format is invalid"
	MsgAgeInvalid      = "Age must be a valid number between 0 and 150"
	MsgSexInvalid      = "Sex must be one of: male, female, other"
)

// emailPattern — local@domain.tld: непробельная локальная часть,
// непробельный домен с точкой.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate проверяет кандидата и возвращает список ошибок в порядке полей:
// name, surname, email, age, sex. Пустой список — кандидат валиден.
// Все правила проверяются независимо, собираются все нарушения сразу.
func Validate(in model.UserInput) []string {
	var errs []string

	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, MsgNameRequired)
	}
	if strings.TrimSpace(in.Surname) == "" {
		errs = append(errs, MsgSurnameRequired)
	}

	email := strings.TrimSpace(in.Email)
	if email == "" {
		errs = append(errs, MsgEmailRequired)
	} else if !emailPattern.MatchString(email) {
		errs = append(errs, MsgEmailInvalid)
	}

	// Пустой age означает «не указан» и валиден.
	if age := strings.TrimSpace(in.Age); age != "" {
		n, err := strconv.Atoi(age)
		if err != nil || n < 0 || n > 150 {
			errs = append(errs, MsgAgeInvalid)
		}
	}

	// Пустой sex означает «не указан» и валиден.
	if sex := strings.TrimSpace(in.Sex); sex != "" {
		switch strings.ToLower(sex) {
		case "male", "female", "other":
		default:
			errs = append(errs, MsgSexInvalid)
		}
	}

	return errs
}

// Normalize приводит валидный кандидат к виду для персистентности:
// обязательные поля обрезаются, пустые sex/age превращаются в nil
// (никогда в пустую строку), sex приводится к нижнему регистру.
// Вызывается только после успешного Validate.
func Normalize(in model.UserInput) (name, surname, email string, sex *string, age *int) {
	name = strings.TrimSpace(in.Name)
	surname = strings.TrimSpace(in.Surname)
	email = strings.TrimSpace(in.Email)

	if s := strings.ToLower(strings.TrimSpace(in.Sex)); s != "" {
		sex = &s
	}
	if a := strings.TrimSpace(in.Age); a != "" {
		if n, err := strconv.Atoi(a); err == nil {
			age = &n
		}
	}
	return name, surname, email, sex, age
}
