// user.go — CRUD для таблицы users.
// id и created_at выдаются БД и никогда не перезаписываются.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/userdir/internal/domain/model"
)

// UserRepository — интерфейс CRUD для таблицы users.
type UserRepository interface {
	// List возвращает все записи, новые первыми (created_at DESC).
	List(ctx context.Context) ([]*model.User, error)
	// GetByID возвращает запись по id.
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// Create создаёт запись; id и created_at выставляет БД.
	Create(ctx context.Context, u *model.User) error
	// Update обновляет все поля кроме id и created_at.
	Update(ctx context.Context, u *model.User) error
	// Delete удаляет запись по id.
	Delete(ctx context.Context, id int64) error
}

// userRepo — реализация UserRepository.
type userRepo struct {
	db DBTX
}

// NewUserRepository создаёт репозиторий пользователей.
func NewUserRepository(db DBTX) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) List(ctx context.Context) ([]*model.User, error) {
	// Тай-брейк по id: записи с одинаковым created_at возвращаются
	// в одном и том же порядке при повторных чтениях.
	query := `
		SELECT id, name, surname, sex, age, email, created_at
		FROM users
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка пользователей: %w", err)
	}
	defer rows.Close()

	var result []*model.User
	for rows.Next() {
		u := &model.User{}
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Surname, &u.Sex, &u.Age, &u.Email, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования пользователя: %w", err)
		}
		result = append(result, u)
	}
	return result, rows.Err()
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, name, surname, sex, age, email, created_at
		FROM users
		WHERE id = $1`

	u := &model.User{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.Surname, &u.Sex, &u.Age, &u.Email, &u.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}
	return u, nil
}

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (name, surname, email, sex, age)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		u.Name, u.Surname, u.Email, u.Sex, u.Age,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email уже зарегистрирован", ErrConflict)
		}
		return fmt.Errorf("ошибка создания пользователя: %w", err)
	}
	return nil
}

func (r *userRepo) Update(ctx context.Context, u *model.User) error {
	// Одна условная операция вместо «проверить существование, затем
	// обновить»: отсутствие строки видно по pgx.ErrNoRows без окна гонки.
	query := `
		UPDATE users
		SET name = $2, surname = $3, email = $4, sex = $5, age = $6
		WHERE id = $1
		RETURNING created_at`

	err := r.db.QueryRow(ctx, query,
		u.ID, u.Name, u.Surname, u.Email, u.Sex, u.Age,
	).Scan(&u.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrNotFound
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email уже зарегистрирован", ErrConflict)
		}
		return fmt.Errorf("ошибка обновления пользователя: %w", err)
	}
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления пользователя: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
