// Package token реализует локальную проверку срока действия bearer-токена
// удалённого API. Токен для панели непрозрачен: подпись проверяет только
// удалённый сервис, здесь разбирается лишь claim exp, чтобы не ходить
// в сеть с заведомо протухшим токеном.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expired сообщает, истёк ли срок действия токена на момент now.
// Токены неизвестного формата или без exp считаются живыми —
// окончательное решение остаётся за удалённым API.
func Expired(tokenStr string, now time.Time) bool {
	var claims jwt.RegisteredClaims

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenStr, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}
