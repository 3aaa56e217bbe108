// users.go — сервис справочника пользователей.
// Единственная точка, где мутации проходят валидацию: HTTP-слой и UI
// отдают сырой ввод, сервис решает, пускать ли его в репозиторий.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/userdir/internal/domain/model"
	"github.com/bigkaa/userdir/internal/repository"
	"github.com/bigkaa/userdir/internal/validation"
)

// usersMutationsTotal — счётчик мутаций справочника по типу операции.
var usersMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ud_users_mutations_total",
	Help: "Общее количество мутаций справочника пользователей.",
}, []string{"op"})

// UserService — бизнес-логика справочника пользователей.
type UserService struct {
	repo   repository.UserRepository
	cache  *UserCache
	logger *slog.Logger
}

// NewUserService создаёт сервис пользователей.
// cache может быть nil — тогда все чтения идут в БД.
func NewUserService(repo repository.UserRepository, cache *UserCache, logger *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		cache:  cache,
		logger: logger.With(slog.String("component", "user_service")),
	}
}

// List возвращает все записи справочника, новые первыми.
func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение списка пользователей: %w", err)
	}
	return users, nil
}

// Get возвращает пользователя по id.
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	if s.cache != nil {
		if u, ok := s.cache.Get(id); ok {
			return u, nil
		}
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(u)
	}
	return u, nil
}

// Create валидирует ввод и создаёт пользователя.
// При нарушении правил возвращает *ValidationError со всеми сообщениями.
func (s *UserService) Create(ctx context.Context, in model.UserInput) (*model.User, error) {
	if msgs := validation.Validate(in); len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	name, surname, email, sex, age := validation.Normalize(in)
	u := &model.User{
		Name:    name,
		Surname: surname,
		Email:   email,
		Sex:     sex,
		Age:     age,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%w: пользователь с email '%s' уже существует", ErrConflict, email)
		}
		return nil, fmt.Errorf("создание пользователя: %w", err)
	}

	usersMutationsTotal.WithLabelValues("create").Inc()
	if s.cache != nil {
		s.cache.Set(u)
	}

	s.logger.Info("Пользователь создан",
		slog.Int64("user_id", u.ID),
		slog.String("email", email),
	)
	return u, nil
}

// Update валидирует ввод и обновляет пользователя целиком.
// id и created_at не меняются.
func (s *UserService) Update(ctx context.Context, id int64, in model.UserInput) (*model.User, error) {
	if msgs := validation.Validate(in); len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	name, surname, email, sex, age := validation.Normalize(in)
	u := &model.User{
		ID:      id,
		Name:    name,
		Surname: surname,
		Email:   email,
		Sex:     sex,
		Age:     age,
	}

	if err := s.repo.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrConflict):
			return nil, fmt.Errorf("%w: пользователь с email '%s' уже существует", ErrConflict, email)
		}
		return nil, fmt.Errorf("обновление пользователя: %w", err)
	}

	usersMutationsTotal.WithLabelValues("update").Inc()
	if s.cache != nil {
		s.cache.Set(u)
	}

	s.logger.Info("Пользователь обновлён",
		slog.Int64("user_id", id),
	)
	return u, nil
}

// Delete удаляет пользователя по id.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("удаление пользователя: %w", err)
	}

	usersMutationsTotal.WithLabelValues("delete").Inc()
	if s.cache != nil {
		s.cache.Delete(id)
	}

	s.logger.Info("Пользователь удалён",
		slog.Int64("user_id", id),
	)
	return nil
}
