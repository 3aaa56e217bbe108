package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/bigkaa/userdir/internal/config"
	"github.com/bigkaa/userdir/internal/database"
	"github.com/bigkaa/userdir/internal/domain/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// setupTestDB запускает PostgreSQL контейнер, применяет миграции.
// Возвращает pgxpool.Pool и функцию очистки.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("Пропуск интеграционного теста: TEST_INTEGRATION не установлена")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		postgres.WithDatabase("userdir_test"),
		postgres.WithUsername("userdir"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Не удалось запустить PostgreSQL контейнер: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Ошибка остановки контейнера: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Не удалось получить host контейнера: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Не удалось получить port контейнера: %v", err)
	}

	// Настраиваем env для config.Load()
	os.Setenv("UD_DB_HOST", host)
	os.Setenv("UD_DB_PORT", port.Port())
	os.Setenv("UD_DB_NAME", "userdir_test")
	os.Setenv("UD_DB_USER", "userdir")
	os.Setenv("UD_DB_PASSWORD", "test-password")
	os.Setenv("UD_DB_SSL_MODE", "disable")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// Применяем миграции
	if err := database.Migrate(cfg, logger); err != nil {
		t.Fatalf("Ошибка миграций: %v", err)
	}

	// Подключаемся
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		t.Fatalf("Ошибка подключения: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	return pool
}

// testEmail генерирует уникальный email для теста.
func testEmail() string {
	return fmt.Sprintf("%s@example.com", uuid.New().String())
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

// --- Тесты UserRepository ---

func TestUserCRUD(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(pool)

	email := testEmail()
	u := &model.User{
		Name:    "Иван",
		Surname: "Петров",
		Email:   email,
		Sex:     strPtr("male"),
		Age:     intPtr(30),
	}

	// Create
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}
	if u.ID == 0 {
		t.Error("ID не установлен после Create()")
	}
	if u.CreatedAt.IsZero() {
		t.Error("CreatedAt не установлен после Create()")
	}

	// GetByID
	got, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() ошибка: %v", err)
	}
	if got.Name != "Иван" {
		t.Errorf("Name = %q, хотели %q", got.Name, "Иван")
	}
	if got.Email != email {
		t.Errorf("Email = %q, хотели %q", got.Email, email)
	}
	if got.Sex == nil || *got.Sex != "male" {
		t.Errorf("Sex = %v, хотели male", got.Sex)
	}
	if got.Age == nil || *got.Age != 30 {
		t.Errorf("Age = %v, хотели 30", got.Age)
	}

	// List
	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() ошибка: %v", err)
	}
	if len(list) == 0 {
		t.Error("List() вернул пустой список после Create()")
	}

	// Update
	u.Name = "Пётр"
	u.Age = intPtr(31)
	origCreated := u.CreatedAt
	if err := repo.Update(ctx, u); err != nil {
		t.Fatalf("Update() ошибка: %v", err)
	}
	got2, _ := repo.GetByID(ctx, u.ID)
	if got2.Name != "Пётр" {
		t.Errorf("Name после Update() = %q, хотели %q", got2.Name, "Пётр")
	}
	if got2.Age == nil || *got2.Age != 31 {
		t.Errorf("Age после Update() = %v, хотели 31", got2.Age)
	}
	if !got2.CreatedAt.Equal(origCreated) {
		t.Errorf("CreatedAt изменился после Update(): %v -> %v", origCreated, got2.CreatedAt)
	}

	// Delete
	if err := repo.Delete(ctx, u.ID); err != nil {
		t.Fatalf("Delete() ошибка: %v", err)
	}
	if _, err := repo.GetByID(ctx, u.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() после Delete() = %v, хотели ErrNotFound", err)
	}
}

func TestUserOptionalFieldsNull(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(pool)

	u := &model.User{
		Name:    "Анна",
		Surname: "Сидорова",
		Email:   testEmail(),
	}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}

	got, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() ошибка: %v", err)
	}
	if got.Sex != nil {
		t.Errorf("Sex = %v, хотели nil", *got.Sex)
	}
	if got.Age != nil {
		t.Errorf("Age = %v, хотели nil", *got.Age)
	}
}

func TestUserNotFound(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(pool)

	const missingID = int64(999999999)

	if _, err := repo.GetByID(ctx, missingID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() = %v, хотели ErrNotFound", err)
	}

	u := &model.User{ID: missingID, Name: "Нет", Surname: "Такого", Email: testEmail()}
	if err := repo.Update(ctx, u); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() = %v, хотели ErrNotFound", err)
	}

	if err := repo.Delete(ctx, missingID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() = %v, хотели ErrNotFound", err)
	}
}

func TestUserEmailConflict(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(pool)

	email := testEmail()
	first := &model.User{Name: "Первый", Surname: "Пользователь", Email: email}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}

	// Дубликат email при создании
	second := &model.User{Name: "Второй", Surname: "Пользователь", Email: email}
	if err := repo.Create(ctx, second); !errors.Is(err, ErrConflict) {
		t.Errorf("Create() с дублем email = %v, хотели ErrConflict", err)
	}

	// Дубликат email при обновлении
	third := &model.User{Name: "Третий", Surname: "Пользователь", Email: testEmail()}
	if err := repo.Create(ctx, third); err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}
	third.Email = email
	if err := repo.Update(ctx, third); !errors.Is(err, ErrConflict) {
		t.Errorf("Update() с дублем email = %v, хотели ErrConflict", err)
	}
}

func TestUserListOrder(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(pool)

	var ids []int64
	for i := 0; i < 3; i++ {
		u := &model.User{
			Name:    fmt.Sprintf("Пользователь%d", i),
			Surname: "Тестовый",
			Email:   testEmail(),
		}
		if err := repo.Create(ctx, u); err != nil {
			t.Fatalf("Create() ошибка: %v", err)
		}
		ids = append(ids, u.ID)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() ошибка: %v", err)
	}

	// Новые записи первыми; повторный вызов возвращает тот же порядок.
	pos := make(map[int64]int)
	for i, u := range list {
		pos[u.ID] = i
	}
	for i := 1; i < len(ids); i++ {
		if pos[ids[i]] > pos[ids[i-1]] {
			t.Errorf("запись id=%d должна быть раньше id=%d", ids[i], ids[i-1])
		}
	}

	list2, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("Повторный List() ошибка: %v", err)
	}
	if len(list2) != len(list) {
		t.Fatalf("Повторный List() вернул %d записей, хотели %d", len(list2), len(list))
	}
	for i := range list {
		if list[i].ID != list2[i].ID {
			t.Errorf("порядок нестабилен: позиция %d — id %d vs %d", i, list[i].ID, list2[i].ID)
		}
	}
}
