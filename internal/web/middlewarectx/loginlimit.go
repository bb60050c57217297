package middlewarectx

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/barberpro-web/internal/config"
)

const loginAttemptScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// LoginLimiter считает попытки входа в redis по ключу email+IP.
// При недоступном redis попытки не блокируются: ограничитель не должен
// запирать владельцев барбершопов из-за отказавшей инфраструктуры.
type LoginLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
	prefix string
}

// NewLoginLimiter создает ограничитель попыток входа поверх redis.
// Nil-клиент допустим: ограничение в этом случае отключено.
func NewLoginLimiter(client *redis.Client, cfg config.RateLimit) *LoginLimiter {
	if client == nil {
		return nil
	}
	window := cfg.LoginWindow
	if window <= 0 {
		window = time.Minute
	}
	max := cfg.LoginAttempts
	if max <= 0 {
		max = 1
	}
	return &LoginLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "login:rl:",
	}
}

// Allow регистрирует попытку входа и сообщает, не превышен ли лимит.
func (l *LoginLimiter) Allow(email, remoteAddr string) bool {
	if l == nil || l.client == nil {
		return true
	}

	// Пустой email не считается попыткой: такую отправку отклонит
	// валидация формы, счётчик для неё не ведётся.
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	if normalizedEmail == "" {
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	key := l.prefix + normalizedEmail + ":" + remoteAddr
	seconds := int(l.window.Seconds())
	if seconds <= 0 {
		seconds = 60
	}

	count, err := l.client.Eval(ctx, loginAttemptScript, []string{key}, seconds).Int()
	if err != nil {
		return true
	}
	return count <= l.max
}
