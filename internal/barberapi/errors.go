// Package barberapi реализует клиент удалённого REST API барбершопа.
// Клиент привязывается к базовому URL и bearer-токену, выполняет ровно один
// сетевой запрос на операцию — без повторов и без кэширования.
package barberapi

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidCredentials возвращается при отклонённой попытке входа или регистрации.
var ErrInvalidCredentials = errors.New("invalid credentials")

// APIError описывает неуспешный ответ удалённого API: HTTP-статус
// и сообщение сервера, если оно пришло в теле.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("barber api: status %d", e.Status)
	}
	return fmt.Sprintf("barber api: status %d: %s", e.Status, e.Message)
}

// IsAuthError сообщает, означает ли ошибка невалидный или истёкший токен.
// Удалённый API отвечает 401/403 на такие запросы, панель трактует их
// как «сессия не аутентифицирована».
func IsAuthError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
	}
	return false
}
