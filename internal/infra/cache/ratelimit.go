package cache

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SlidingWindowLimiter ограничитель частоты по скользящему окну на ZSET
type SlidingWindowLimiter struct {
	rdb    *redis.Client
	scope  string
	window time.Duration
	limit  int
	script *redis.Script
}

// Скрипт удаляет старые отметки, добавляет текущую и возвращает (allowed, count, retry_after_ms)
const slidingWindowLua = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)
local count = redis.call('ZCARD', key)

if count >= limit then
  local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
  local retry = window
  if oldest[2] then
    retry = tonumber(oldest[2]) + window - now
  end
  return {0, count, retry}
end

redis.call('ZADD', key, now, member)
redis.call('PEXPIRE', key, window)
return {1, count + 1, 0}
`

func NewSlidingWindowLimiter(client *redis.Client, scope string, window time.Duration, limit int) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		rdb:    client,
		scope:  scope,
		window: window,
		limit:  limit,
		script: redis.NewScript(slidingWindowLua),
	}
}

// Allow регистрирует попытку для subject и сообщает, укладывается ли она в лимит
func (l *SlidingWindowLimiter) Allow(ctx context.Context, subject string) (allowed bool, current int, retryAfter time.Duration, err error) {
	if l.limit <= 0 {
		return true, 0, 0, nil
	}

	now := time.Now().UnixMilli()
	member := strconv.FormatInt(now, 10) + "-" + randomHex(6)

	res, err := l.script.Run(ctx, l.rdb,
		[]string{KeyRateLimit(l.scope, subject)},
		now, l.window.Milliseconds(), l.limit, member,
	).Slice()
	if err != nil {
		return false, 0, 0, fmt.Errorf("cache: rate limit script: %w", err)
	}
	if len(res) != 3 {
		return false, 0, 0, fmt.Errorf("cache: rate limit script: unexpected reply %v", res)
	}

	allowed = toInt(res[0]) == 1
	current = toInt(res[1])
	retryAfter = time.Duration(toInt(res[2])) * time.Millisecond
	return allowed, current, retryAfter, nil
}

func toInt(v interface{}) int {
	switch t := v.(type) {
	case int64:
		return int(t)
	case int:
		return t
	case string:
		n, _ := strconv.Atoi(t)
		return n
	default:
		return 0
	}
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
