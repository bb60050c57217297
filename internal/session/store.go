// Package session управляет сессией владельца барбершопа: обменивает учётные
// данные на bearer-токен удалённого API и хранит его в HttpOnly-cookie.
// Состояние сессии целиком живёт в cookie, серверного хранилища сессий нет.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/barberpro-web/internal/barberapi"
	"github.com/magabrotheeeer/barberpro-web/internal/config"
	"github.com/magabrotheeeer/barberpro-web/internal/lib/sl"
	"github.com/magabrotheeeer/barberpro-web/internal/lib/token"
	"github.com/magabrotheeeer/barberpro-web/internal/models"
)

var (
	// ErrNoSession означает отсутствие cookie с токеном.
	ErrNoSession = errors.New("no session")
	// ErrSessionExpired означает, что токен истёк или отклонён удалённым API.
	ErrSessionExpired = errors.New("session expired")
)

// Factory выдаёт клиент удалённого API, привязанный к переданному токену.
type Factory func(token string) barberapi.API

// Credentials — входные данные формы входа.
type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// RegisterCredentials — входные данные формы регистрации.
type RegisterCredentials struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// Store выполняет операции входа, регистрации, выхода и восстановления сессии.
type Store struct {
	cfg      config.Session
	log      *slog.Logger
	factory  Factory
	validate *validator.Validate
	now      func() time.Time
}

// New создает новый экземпляр Store с указанными логгером и фабрикой клиентов.
func New(cfg config.Session, log *slog.Logger, factory Factory) *Store {
	return &Store{
		cfg:      cfg,
		log:      log,
		factory:  factory,
		validate: validator.New(),
		now:      time.Now,
	}
}

// SignIn проверяет учётные данные и при успехе записывает токен в cookie.
// При ошибке валидации сетевой запрос не выполняется, возвращается
// validator.ValidationErrors.
func (s *Store) SignIn(ctx context.Context, w http.ResponseWriter, creds Credentials) error {
	const op = "session.SignIn"

	if err := s.validate.Struct(creds); err != nil {
		return err
	}

	resp, err := s.factory("").Login(ctx, creds.Email, creds.Password)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.setCookie(w, resp.Token)
	s.log.Info("user signed in", slog.String("email", creds.Email))
	return nil
}

// SignUp регистрирует учётную запись. Cookie не ставится:
// после регистрации пользователь входит через форму входа.
func (s *Store) SignUp(ctx context.Context, creds RegisterCredentials) error {
	const op = "session.SignUp"

	if err := s.validate.Struct(creds); err != nil {
		return err
	}

	if _, err := s.factory("").Register(ctx, creds.Name, creds.Email, creds.Password); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user registered", slog.String("email", creds.Email))
	return nil
}

// SignOut стирает cookie с токеном. Операция идемпотентна:
// повторный выход без сессии не является ошибкой.
func (s *Store) SignOut(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Token возвращает токен текущего запроса или ErrNoSession.
func (s *Store) Token(r *http.Request) (string, error) {
	c, err := r.Cookie(s.cfg.CookieName)
	if err != nil || c.Value == "" {
		return "", ErrNoSession
	}
	return c.Value, nil
}

// Recover восстанавливает пользователя по токену из cookie.
// Истёкший или отклонённый удалённым API токен стирается из cookie,
// чтобы следующий запрос сразу ушёл на страницу входа.
func (s *Store) Recover(ctx context.Context, w http.ResponseWriter, r *http.Request) (*models.Me, error) {
	const op = "session.Recover"

	tok, err := s.Token(r)
	if err != nil {
		return nil, err
	}

	if token.Expired(tok, s.now()) {
		s.SignOut(w)
		return nil, ErrSessionExpired
	}

	me, err := s.factory(tok).Me(ctx)
	if err != nil {
		if barberapi.IsAuthError(err) {
			s.log.Warn("token rejected by remote api", sl.Err(err))
			s.SignOut(w)
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return me, nil
}

func (s *Store) setCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  s.now().Add(s.cfg.TokenTTL),
		MaxAge:   int(s.cfg.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
