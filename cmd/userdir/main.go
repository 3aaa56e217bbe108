// Точка входа справочника пользователей.
// Загружает конфигурацию, подключается к PostgreSQL, применяет миграции,
// создаёт сервисный слой и HTTP-обработчики (REST API + браузерный UI),
// запускает HTTP-сервер с graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"

	apihandlers "github.com/bigkaa/userdir/internal/api/handlers"
	"github.com/bigkaa/userdir/internal/config"
	"github.com/bigkaa/userdir/internal/database"
	"github.com/bigkaa/userdir/internal/repository"
	"github.com/bigkaa/userdir/internal/server"
	"github.com/bigkaa/userdir/internal/service"
	uihandlers "github.com/bigkaa/userdir/internal/ui/handlers"
	"github.com/bigkaa/userdir/internal/ui/templates"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("Справочник пользователей запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)

	// 3. Применение миграций БД
	logger.Info("Применение миграций БД...")
	if err := database.Migrate(cfg, logger); err != nil {
		logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Подключение к PostgreSQL (pgxpool)
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// 5. Repository и сервисный слой
	userRepo := repository.NewUserRepository(pool)
	userCache := service.NewUserCache(cfg.CacheSize, cfg.CacheTTL)
	usersSvc := service.NewUserService(userRepo, userCache, logger)

	// 6. Readiness checker и API handler
	pgChecker := database.NewReadinessChecker(pool)
	healthHandler := apihandlers.NewHealthHandler(pgChecker)
	apiHandler := apihandlers.NewAPIHandler(healthHandler, usersSvc, logger)

	// 7. Браузерный UI (опционально, UD_UI_ENABLED)
	var uiHandler *uihandlers.UsersHandler
	if cfg.UIEnabled {
		renderer, rErr := templates.New()
		if rErr != nil {
			logger.Error("Ошибка инициализации шаблонов UI", slog.String("error", rErr.Error()))
			os.Exit(1)
		}
		uiHandler = uihandlers.NewUsersHandler(usersSvc, renderer, cfg.UIPageSize, logger)
		logger.Info("Браузерный UI инициализирован",
			slog.Int("page_size", cfg.UIPageSize),
		)
	} else {
		logger.Info("Браузерный UI отключён (UD_UI_ENABLED=false)")
	}

	// 8. Создание и запуск HTTP-сервера
	srv := server.New(cfg, logger, apiHandler, uiHandler)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Справочник пользователей остановлен")
}
