// cache.go — LRU-кэш записей пользователей с TTL.
// Обёртка над hashicorp/golang-lru/v2/expirable.
package service

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/userdir/internal/domain/model"
)

// Prometheus-метрики кэша.
var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ud_cache_hits_total",
		Help: "Общее количество попаданий в LRU-кэш пользователей.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ud_cache_misses_total",
		Help: "Общее количество промахов LRU-кэша пользователей.",
	})
)

// UserCache — LRU-кэш записей пользователей по id с автоматическим TTL.
// Кэшируются только одиночные записи; список всегда читается из БД,
// чтобы не решать задачу инвалидации списка при мутациях.
type UserCache struct {
	cache *expirable.LRU[int64, *model.User]
}

// NewUserCache создаёт LRU-кэш с указанным максимальным размером и TTL.
func NewUserCache(maxSize int, ttl time.Duration) *UserCache {
	cache := expirable.NewLRU[int64, *model.User](maxSize, nil, ttl)
	return &UserCache{cache: cache}
}

// Get возвращает пользователя из кэша по id.
// Возвращает (запись, true) при hit или (nil, false) при miss.
// Обновляет Prometheus-метрики hit/miss.
func (c *UserCache) Get(id int64) (*model.User, bool) {
	val, ok := c.cache.Get(id)
	if ok {
		cacheHitsTotal.Inc()
		return val, true
	}
	cacheMissesTotal.Inc()
	return nil, false
}

// Set добавляет или обновляет запись в кэше.
func (c *UserCache) Set(u *model.User) {
	c.cache.Add(u.ID, u)
}

// Delete удаляет запись из кэша (инвалидация при мутации).
func (c *UserCache) Delete(id int64) {
	c.cache.Remove(id)
}
