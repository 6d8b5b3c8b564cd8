package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// MemoryCache implementa a interface Cache usando armazenamento em memória
type MemoryCache struct {
	cache    *gocache.Cache
	mutex    sync.RWMutex
	logger   *zap.Logger
	hits     int64
	misses   int64
	recorder HitRatioRecorder
}

// NewMemoryCache cria uma nova instância de MemoryCache
func NewMemoryCache(defaultExpiration, cleanupInterval time.Duration, recorder HitRatioRecorder, logger *zap.Logger) *MemoryCache {
	return &MemoryCache{
		cache:    gocache.New(defaultExpiration, cleanupInterval),
		logger:   logger,
		recorder: recorder,
	}
}

// Set armazena um valor no cache. O valor é serializado em JSON para que o
// Get devolva sempre uma cópia, nunca a referência original.
func (c *MemoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("falha ao serializar valor para o cache: %w", err)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache.Set(key, data, expiration)
	return nil
}

// Get recupera um valor do cache
func (c *MemoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mutex.RLock()
	value, found := c.cache.Get(key)
	c.mutex.RUnlock()

	if !found {
		atomic.AddInt64(&c.misses, 1)
		updateHitRatio(atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses), "memory", c.recorder)
		return false, nil
	}

	atomic.AddInt64(&c.hits, 1)
	updateHitRatio(atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses), "memory", c.recorder)

	data, ok := value.([]byte)
	if !ok {
		return false, fmt.Errorf("valor em cache com tipo inesperado para a chave %s", key)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("falha ao desserializar valor do cache: %w", err)
	}

	return true, nil
}

// Delete remove um valor do cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache.Delete(key)
	return nil
}

// Clear remove todos os valores do cache
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache.Flush()
	return nil
}

// Ping sempre responde com sucesso para o cache em memória
func (c *MemoryCache) Ping(ctx context.Context) error {
	return nil
}
