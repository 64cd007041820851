package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"sabytin_backend/internal/config"
)

// ErrNotFound возвращается, когда ключа нет в Redis.
var ErrNotFound = errors.New("cache: key not found")

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache создает клиент Redis из конфигурации.
// Обязателен только Addr, Password/DB опциональны.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

// NewFromClient оборачивает готовый клиент. Используется в тестах с miniredis.
func NewFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{Client: client}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return c.Client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return val, err
}

func (c *RedisCache) Del(ctx context.Context, key string) error {
	return c.Client.Del(ctx, key).Err()
}

// --- Токены подтверждения email ---

func keyForVerification(token string) string {
	return "verify:" + token
}

// SetVerificationToken сохраняет токен подтверждения с TTL.
// Значение ключа - ID пользователя, которого подтверждаем.
func (c *RedisCache) SetVerificationToken(ctx context.Context, token, userID string, ttl time.Duration) error {
	return c.Client.Set(ctx, keyForVerification(token), userID, ttl).Err()
}

// ConsumeVerificationToken атомарно забирает токен: возвращает ID
// пользователя и удаляет ключ, чтобы токен нельзя было применить дважды.
func (c *RedisCache) ConsumeVerificationToken(ctx context.Context, token string) (string, error) {
	userID, err := c.Client.GetDel(ctx, keyForVerification(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return userID, err
}

// --- Токены сброса пароля ---

func keyForResetUsed(token string) string {
	return "reset:used:" + token
}

// MarkResetTokenUsed помечает токен сброса использованным до конца его
// срока жизни. Сам токен - JWT, его валидность проверяется отдельно.
func (c *RedisCache) MarkResetTokenUsed(ctx context.Context, token string, ttl time.Duration) error {
	return c.Client.Set(ctx, keyForResetUsed(token), "1", ttl).Err()
}

// IsResetTokenUsed сообщает, применялся ли уже токен сброса.
func (c *RedisCache) IsResetTokenUsed(ctx context.Context, token string) (bool, error) {
	n, err := c.Client.Exists(ctx, keyForResetUsed(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// --- Rate limiting ---

func keyForLoginAttempts(clientIP string) string {
	return fmt.Sprintf("login:attempts:%s", clientIP)
}

// CountLoginAttempt инкрементирует счетчик попыток логина с одного адреса
// в фиксированном окне и возвращает текущее значение. TTL ставится только
// на первой попытке.
func (c *RedisCache) CountLoginAttempt(ctx context.Context, clientIP string, window time.Duration) (int64, error) {
	key := keyForLoginAttempts(clientIP)
	attempts, err := c.Client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if attempts == 1 {
		_ = c.Client.Expire(ctx, key, window).Err()
	}
	return attempts, nil
}

// ResetLoginAttempts сбрасывает счетчик после успешного входа.
func (c *RedisCache) ResetLoginAttempts(ctx context.Context, clientIP string) error {
	return c.Client.Del(ctx, keyForLoginAttempts(clientIP)).Err()
}
