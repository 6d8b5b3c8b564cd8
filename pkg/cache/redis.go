package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisCache implementa a interface Cache usando Redis
type RedisCache struct {
	client   *redis.Client
	logger   *zap.Logger
	prefix   string
	hits     int64
	misses   int64
	recorder HitRatioRecorder
}

// NewRedisCache cria uma nova instância de RedisCache
func NewRedisCache(opts *redis.Options, prefix string, recorder HitRatioRecorder, logger *zap.Logger) (*RedisCache, error) {
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("falha ao conectar ao redis: %w", err)
	}

	logger.Info("conectado ao redis", zap.String("address", opts.Addr))

	return &RedisCache{
		client:   client,
		logger:   logger,
		prefix:   prefix,
		recorder: recorder,
	}, nil
}

func (c *RedisCache) key(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + ":" + key
}

// Set armazena um valor serializado em JSON
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("falha ao serializar valor para o cache: %w", err)
	}

	if err := c.client.Set(ctx, c.key(key), data, expiration).Err(); err != nil {
		c.logger.Error("falha ao gravar no redis", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// Get recupera um valor do cache
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err == redis.Nil {
		atomic.AddInt64(&c.misses, 1)
		updateHitRatio(atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses), "redis", c.recorder)
		return false, nil
	}
	if err != nil {
		c.logger.Error("falha ao ler do redis", zap.String("key", key), zap.Error(err))
		return false, err
	}

	atomic.AddInt64(&c.hits, 1)
	updateHitRatio(atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses), "redis", c.recorder)

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("falha ao desserializar valor do cache: %w", err)
	}
	return true, nil
}

// Delete remove um valor do cache
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.key(key)).Err()
}

// Clear remove todas as chaves do prefixo da aplicação
func (c *RedisCache) Clear(ctx context.Context) error {
	pattern := c.key("*")

	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Ping verifica a conexão com o Redis
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close fecha a conexão com o Redis
func (c *RedisCache) Close() error {
	return c.client.Close()
}
