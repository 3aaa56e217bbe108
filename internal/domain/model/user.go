// Пакет model — доменные модели User Directory.
package model

import "time"

// User — запись пользователя из таблицы users.
type User struct {
	// ID — идентификатор записи, выдаётся БД (BIGSERIAL)
	ID int64 `json:"id"`
	// Name — имя, обязательное
	Name string `json:"name"`
	// Surname — фамилия, обязательная
	Surname string `json:"surname"`
	// Sex — пол (male, female, other), nil если не указан
	Sex *string `json:"sex"`
	// Age — возраст в диапазоне [0,150], nil если не указан
	Age *int `json:"age"`
	// Email — адрес электронной почты, уникален во всей таблице
	Email string `json:"email"`
	// CreatedAt — время создания записи, выставляется БД один раз
	CreatedAt time.Time `json:"created_at"`
}

// UserInput — кандидат на создание/обновление пользователя.
// Age хранится как сырой текст: UI-форма отправляет текст, а API
// нормализует number/string/null к тексту до валидации.
type UserInput struct {
	Name    string
	Surname string
	Email   string
	Sex     string
	Age     string
}
