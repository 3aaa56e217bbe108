// Пакет config — загрузка и валидация конфигурации User Directory
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации User Directory.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string
	// Таймаут чтения HTTP-запроса
	HTTPReadTimeout time.Duration
	// Таймаут записи HTTP-ответа
	HTTPWriteTimeout time.Duration
	// Таймаут простоя keep-alive соединения
	HTTPIdleTimeout time.Duration

	// --- PostgreSQL ---

	// Хост PostgreSQL
	DBHost string
	// Порт PostgreSQL
	DBPort int
	// Имя базы данных
	DBName string
	// Имя пользователя PostgreSQL
	DBUser string
	// Пароль пользователя PostgreSQL
	DBPassword string
	// Режим SSL: disable, require, verify-ca, verify-full
	DBSSLMode string

	// --- Admin UI ---

	// Включён ли браузерный UI (/admin/users)
	UIEnabled bool
	// Размер страницы таблицы по умолчанию
	UIPageSize int

	// --- Кэш записей ---

	// Максимальное количество записей в LRU-кэше
	CacheSize int
	// Время жизни записи в кэше
	CacheTTL time.Duration

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown HTTP-сервера
	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения, валидирует
// обязательные поля и возвращает Config или ошибку.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// UD_PORT — порт HTTP-сервера (по умолчанию 8000)
	cfg.Port, err = getEnvInt("UD_PORT", 8000)
	if err != nil {
		return nil, fmt.Errorf("UD_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("UD_PORT: значение %d вне допустимого диапазона 1-65535", cfg.Port)
	}

	// UD_LOG_LEVEL — уровень логирования (по умолчанию info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("UD_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("UD_LOG_LEVEL: %w", err)
	}

	// UD_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("UD_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("UD_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	// UD_HTTP_READ_TIMEOUT / UD_HTTP_WRITE_TIMEOUT / UD_HTTP_IDLE_TIMEOUT
	cfg.HTTPReadTimeout, err = getEnvDuration("UD_HTTP_READ_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("UD_HTTP_READ_TIMEOUT: %w", err)
	}
	cfg.HTTPWriteTimeout, err = getEnvDuration("UD_HTTP_WRITE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("UD_HTTP_WRITE_TIMEOUT: %w", err)
	}
	cfg.HTTPIdleTimeout, err = getEnvDuration("UD_HTTP_IDLE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("UD_HTTP_IDLE_TIMEOUT: %w", err)
	}

	// --- PostgreSQL ---

	// UD_DB_HOST — обязательный
	cfg.DBHost, err = getEnvRequired("UD_DB_HOST")
	if err != nil {
		return nil, err
	}

	// UD_DB_PORT — порт PostgreSQL (по умолчанию 5432)
	cfg.DBPort, err = getEnvInt("UD_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("UD_DB_PORT: %w", err)
	}

	// UD_DB_NAME — обязательный
	cfg.DBName, err = getEnvRequired("UD_DB_NAME")
	if err != nil {
		return nil, err
	}

	// UD_DB_USER — обязательный
	cfg.DBUser, err = getEnvRequired("UD_DB_USER")
	if err != nil {
		return nil, err
	}

	// UD_DB_PASSWORD — обязательный
	cfg.DBPassword, err = getEnvRequired("UD_DB_PASSWORD")
	if err != nil {
		return nil, err
	}

	// UD_DB_SSL_MODE — режим SSL (по умолчанию disable)
	cfg.DBSSLMode = getEnvDefault("UD_DB_SSL_MODE", "disable")
	validSSLModes := map[string]bool{
		"disable": true, "require": true, "verify-ca": true, "verify-full": true,
	}
	if !validSSLModes[cfg.DBSSLMode] {
		return nil, fmt.Errorf("UD_DB_SSL_MODE: недопустимое значение %q, допустимые: disable, require, verify-ca, verify-full", cfg.DBSSLMode)
	}

	// --- Admin UI ---

	// UD_UI_ENABLED — включение браузерного UI (по умолчанию true)
	cfg.UIEnabled, err = getEnvBool("UD_UI_ENABLED", true)
	if err != nil {
		return nil, fmt.Errorf("UD_UI_ENABLED: %w", err)
	}

	// UD_UI_PAGE_SIZE — размер страницы таблицы (по умолчанию 10)
	cfg.UIPageSize, err = getEnvInt("UD_UI_PAGE_SIZE", 10)
	if err != nil {
		return nil, fmt.Errorf("UD_UI_PAGE_SIZE: %w", err)
	}
	if cfg.UIPageSize < 1 || cfg.UIPageSize > 100 {
		return nil, fmt.Errorf("UD_UI_PAGE_SIZE: значение %d вне допустимого диапазона 1-100", cfg.UIPageSize)
	}

	// --- Кэш записей ---

	// UD_CACHE_SIZE — размер LRU-кэша (по умолчанию 512)
	cfg.CacheSize, err = getEnvInt("UD_CACHE_SIZE", 512)
	if err != nil {
		return nil, fmt.Errorf("UD_CACHE_SIZE: %w", err)
	}
	if cfg.CacheSize < 1 {
		return nil, fmt.Errorf("UD_CACHE_SIZE: значение %d должно быть положительным", cfg.CacheSize)
	}

	// UD_CACHE_TTL — TTL записи в кэше (по умолчанию 5m)
	cfg.CacheTTL, err = getEnvDuration("UD_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("UD_CACHE_TTL: %w", err)
	}

	// --- Graceful shutdown ---

	// UD_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("UD_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("UD_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// DatabaseDSN возвращает строку подключения к PostgreSQL.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword, c.DBSSLMode,
	)
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvBool возвращает булево значение переменной окружения или значение по умолчанию.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("некорректное булево значение: %q", val)
	}
	return b, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
