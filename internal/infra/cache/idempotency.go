package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idemLock   = "LOCK"
	idemPrefix = "RES:"
)

// IdempotencyStore хранит результат операции по ключу идемпотентности клиента
// Ключ Redis включает subject (клиента), поэтому одинаковые ключи разных клиентов не пересекаются
type IdempotencyStore struct {
	rdb   *redis.Client
	scope string
	ttl   time.Duration
}

func NewIdempotencyStore(client *redis.Client, scope string, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{rdb: client, scope: scope, ttl: ttl}
}

// Acquire занимает ключ на время выполнения операции; false если ключ уже занят или есть результат
func (s *IdempotencyStore) Acquire(ctx context.Context, subject, key string, lockTTL time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, KeyIdempotency(s.scope, subject, key), idemLock, lockTTL).Result()
}

// SaveResult сохраняет результат операции вместо блокировки
// fingerprint описывает исходный запрос и не должен содержать ':'
func (s *IdempotencyStore) SaveResult(ctx context.Context, subject, key, fingerprint, result string) error {
	value := idemPrefix + fingerprint + ":" + result
	return s.rdb.Set(ctx, KeyIdempotency(s.scope, subject, key), value, s.ttl).Err()
}

// GetResult возвращает сохраненный результат и отпечаток запроса, если операция по ключу уже завершилась
func (s *IdempotencyStore) GetResult(ctx context.Context, subject, key string) (result, fingerprint string, found bool, err error) {
	v, err := s.rdb.Get(ctx, KeyIdempotency(s.scope, subject, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", "", false, nil
	}
	if err != nil {
		return "", "", false, err
	}
	if !strings.HasPrefix(v, idemPrefix) {
		return "", "", false, nil
	}

	fingerprint, result, ok := strings.Cut(strings.TrimPrefix(v, idemPrefix), ":")
	if !ok {
		return "", "", false, nil
	}
	return result, fingerprint, true, nil
}

func (s *IdempotencyStore) IsLocked(ctx context.Context, subject, key string) (bool, error) {
	v, err := s.rdb.Get(ctx, KeyIdempotency(s.scope, subject, key)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return v == idemLock, nil
}

// Release снимает блокировку после неудачной операции, сохраненный результат не трогает
func (s *IdempotencyStore) Release(ctx context.Context, subject, key string) error {
	locked, err := s.IsLocked(ctx, subject, key)
	if err != nil || !locked {
		return err
	}
	return s.rdb.Del(ctx, KeyIdempotency(s.scope, subject, key)).Err()
}
