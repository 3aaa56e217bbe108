// Пакет server — HTTP-сервер справочника с graceful shutdown.
// Без TLS — HTTP внутри кластера, TLS termination на внешнем балансировщике.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	apihandlers "github.com/bigkaa/userdir/internal/api/handlers"
	"github.com/bigkaa/userdir/internal/api/middleware"
	"github.com/bigkaa/userdir/internal/config"
	uihandlers "github.com/bigkaa/userdir/internal/ui/handlers"
	"github.com/bigkaa/userdir/internal/ui/static"
)

// Server — HTTP-сервер справочника.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// New создаёт новый HTTP-сервер с настроенными routes и middleware.
// ui может быть nil — тогда браузерный UI отключён и сервер отдаёт
// только REST API с health/metrics.
func New(cfg *config.Config, logger *slog.Logger, api *apihandlers.APIHandler, ui *uihandlers.UsersHandler) *Server {
	router := chi.NewRouter()

	// Глобальные middleware (применяются ко ВСЕМ маршрутам)
	router.Use(middleware.RequestID())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestLogger(logger))

	// Health и metrics — без префикса API, проверяются Kubernetes напрямую
	router.Get("/health/live", api.HealthLive)
	router.Get("/health/ready", api.HealthReady)
	router.Get("/metrics", api.GetMetrics)

	// REST API справочника
	router.Route("/api/users", func(r chi.Router) {
		r.Get("/", api.ListUsers)
		r.Post("/", api.CreateUser)
		r.Get("/{id}", api.GetUser)
		r.Put("/{id}", api.UpdateUser)
		r.Delete("/{id}", api.DeleteUser)
	})

	// Браузерный UI
	if ui != nil {
		router.Route("/admin", func(r chi.Router) {
			r.Get("/users", ui.HandleList)
			r.Post("/users", ui.HandleCreate)
			r.Post("/users/{id}", ui.HandleUpdate)
			r.Post("/users/{id}/delete", ui.HandleDelete)
			r.Get("/partials/user-table", ui.HandleTablePartial)
			r.Get("/partials/user-form", ui.HandleFormPartial)
		})

		// Корень ведёт на таблицу пользователей
		router.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/admin/users", http.StatusFound)
		})

		// Статические ресурсы
		router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(static.FileSystem())))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// Run запускает сервер и ожидает сигнала завершения (SIGINT, SIGTERM).
// При получении сигнала выполняется graceful shutdown.
func (s *Server) Run() error {
	// Канал для ошибок сервера
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.logger.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}
