// Package flash хранит одноразовые уведомления между редиректами.
// Сообщения складываются в подписанную cookie-сессию gorilla/sessions
// и удаляются при первом чтении.
package flash

import (
	"encoding/gob"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/magabrotheeeer/barberpro-web/internal/lib/sl"
)

const sessionName = "barber_flash"

func init() {
	gob.Register(Message{})
}

// Message — одно уведомление для пользователя.
// Kind принимает значения "success", "error" или "warning"
// и управляет цветом тоста в шаблоне.
type Message struct {
	Kind  string
	Title string
	Text  string
}

// Store пишет и читает уведомления через cookie-сессию.
type Store struct {
	log      *slog.Logger
	sessions *sessions.CookieStore
}

// New создает Store поверх cookie, подписанной переданным ключом.
func New(log *slog.Logger, secretKey string, secure bool) *Store {
	store := sessions.NewCookieStore([]byte(secretKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{log: log, sessions: store}
}

// Notify добавляет уведомление, которое покажет следующая отрисованная страница.
func (s *Store) Notify(w http.ResponseWriter, r *http.Request, kind, title, text string) {
	session, _ := s.sessions.Get(r, sessionName)
	session.AddFlash(Message{Kind: kind, Title: title, Text: text})
	if err := session.Save(r, w); err != nil {
		s.log.Error("failed to save flash session", sl.Err(err))
	}
}

// Pop возвращает накопленные уведомления и очищает их.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) []Message {
	session, _ := s.sessions.Get(r, sessionName)

	flashes := session.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	if err := session.Save(r, w); err != nil {
		s.log.Error("failed to clear flash session", sl.Err(err))
	}

	messages := make([]Message, 0, len(flashes))
	for _, f := range flashes {
		if m, ok := f.(Message); ok {
			messages = append(messages, m)
		}
	}
	return messages
}
