package validation

import (
	"reflect"
	"testing"

	"github.com/bigkaa/userdir/internal/domain/model"
)

// TestValidate_Valid проверяет валидные кандидаты.
func TestValidate_Valid(t *testing.T) {
	cases := []struct {
		name string
		in   model.UserInput
	}{
		{"все поля", model.UserInput{Name: "Anna", Surname: "Ivanova", Email: "anna@example.com", Sex: "female", Age: "30"}},
		{"только обязательные", model.UserInput{Name: "Ivan", Surname: "Petrov", Email: "ivan@example.com"}},
		{"sex в верхнем регистре", model.UserInput{Name: "A", Surname: "B", Email: "a@b.com", Sex: "Male"}},
		{"граничные значения age", model.UserInput{Name: "A", Surname: "B", Email: "a@b.com", Age: "0"}},
		{"age = 150", model.UserInput{Name: "A", Surname: "B", Email: "a@b.com", Age: "150"}},
		{"пробелы вокруг полей", model.UserInput{Name: "  A  ", Surname: " B ", Email: " a@b.com "}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if errs := Validate(tc.in); len(errs) != 0 {
				t.Errorf("Validate() = %v, ожидался пустой список", errs)
			}
		})
	}
}

// TestValidate_Errors проверяет тексты и порядок ошибок.
func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   model.UserInput
		want []string
	}{
		{
			"пустое имя",
			model.UserInput{Name: "", Surname: "B", Email: "a@b.com"},
			[]string{MsgNameRequired},
		},
		{
			"имя из пробелов",
			model.UserInput{Name: "   ", Surname: "B", Email: "a@b.com"},
			[]string{MsgNameRequired},
		},
		{
			"некорректный email",
			model.UserInput{Name: "A", Surname: "B", Email: "bad"},
			[]string{MsgEmailInvalid},
		},
		{
			"email без точки в домене",
			model.UserInput{Name: "A", Surname: "B", Email: "a@nodot"},
			[]string{MsgEmailInvalid},
		},
		{
			"email с пробелом",
			model.UserInput{Name: "A", Surname: "B", Email: "a b@c.com"},
			[]string{MsgEmailInvalid},
		},
		{
			"пустой email — только required",
			model.UserInput{Name: "A", Surname: "B", Email: ""},
			[]string{MsgEmailRequired},
		},
		{
			"age вне диапазона",
			model.UserInput{Name: "A", Surname: "B", Email: "a@b.com", Age: "200"},
			[]string{MsgAgeInvalid},
		},
		{
			"age не число",
			model.UserInput{Name: "A", Surname: "B", Email: "a@b.com", Age: "abc"},
			[]string{MsgAgeInvalid},
		},
		{
			"age отрицательный",
			model.UserInput{Name: "A", Surname: "B", Email: "a@b.com", Age: "-1"},
			[]string{MsgAgeInvalid},
		},
		{
			"недопустимый sex",
			model.UserInput{Name: "A", Surname: "B", Email: "a@b.com", Sex: "unknown"},
			[]string{MsgSexInvalid},
		},
		{
			"все нарушения сразу, в порядке полей",
			model.UserInput{Name: "", Surname: " ", Email: "bad", Sex: "x", Age: "999"},
			[]string{MsgNameRequired, MsgSurnameRequired, MsgEmailInvalid, MsgAgeInvalid, MsgSexInvalid},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Validate(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Validate() = %v, хотели %v", got, tc.want)
			}
		})
	}
}

// TestNormalize проверяет приведение валидного кандидата.
func TestNormalize(t *testing.T) {
	name, surname, email, sex, age := Normalize(model.UserInput{
		Name:    "  Anna ",
		Surname: " Ivanova",
		Email:   " anna@example.com ",
		Sex:     "Female",
		Age:     "30",
	})

	if name != "Anna" || surname != "Ivanova" || email != "anna@example.com" {
		t.Errorf("обязательные поля не обрезаны: %q %q %q", name, surname, email)
	}
	if sex == nil || *sex != "female" {
		t.Errorf("sex = %v, хотели female", sex)
	}
	if age == nil || *age != 30 {
		t.Errorf("age = %v, хотели 30", age)
	}
}

// TestNormalize_Absent проверяет, что пустые sex/age превращаются в nil.
func TestNormalize_Absent(t *testing.T) {
	_, _, _, sex, age := Normalize(model.UserInput{
		Name: "A", Surname: "B", Email: "a@b.com",
		Sex: "  ", Age: "",
	})

	if sex != nil {
		t.Errorf("sex = %v, хотели nil", *sex)
	}
	if age != nil {
		t.Errorf("age = %v, хотели nil", *age)
	}
}
