// Package barberproweb предоставляет маршруты для веб-панели.
package barberproweb

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/gorilla/csrf"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/barberpro-web/internal/config"
	"github.com/magabrotheeeer/barberpro-web/internal/session"
	"github.com/magabrotheeeer/barberpro-web/internal/web/flash"
	"github.com/magabrotheeeer/barberpro-web/internal/web/guard"
	"github.com/magabrotheeeer/barberpro-web/internal/web/handlers/actions/schedulefinish"
	"github.com/magabrotheeeer/barberpro-web/internal/web/handlers/pages/dashboard"
	"github.com/magabrotheeeer/barberpro-web/internal/web/handlers/pages/haircutedit"
	"github.com/magabrotheeeer/barberpro-web/internal/web/handlers/pages/haircutnew"
	"github.com/magabrotheeeer/barberpro-web/internal/web/handlers/pages/haircuts"
	"github.com/magabrotheeeer/barberpro-web/internal/web/handlers/pages/landing"
	"github.com/magabrotheeeer/barberpro-web/internal/web/handlers/pages/login"
	"github.com/magabrotheeeer/barberpro-web/internal/web/handlers/pages/planos"
	"github.com/magabrotheeeer/barberpro-web/internal/web/handlers/pages/profile"
	"github.com/magabrotheeeer/barberpro-web/internal/web/handlers/pages/register"
	"github.com/magabrotheeeer/barberpro-web/internal/web/handlers/pages/schedulenew"
	"github.com/magabrotheeeer/barberpro-web/internal/web/middlewarectx"
	"github.com/magabrotheeeer/barberpro-web/internal/web/render"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	renderer *render.Renderer, g *guard.Guard, store *session.Store,
	factory session.Factory, flashes *flash.Store, limiter *middlewarectx.LoginLimiter) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	csrfProtect := csrf.Protect(
		[]byte(cfg.Session.SecretKey),
		csrf.Secure(cfg.Session.CookieSecure),
		csrf.Path("/"),
	)

	// Страницы и JSON-действия под защитой CSRF: формы несут скрытое поле,
	// скрипт агенды передаёт токен в заголовке X-CSRF-Token.
	r.Group(func(r chi.Router) {
		r.Use(csrfProtect)

		loginHandler := login.New(logger, renderer, g, store, flashes, limiter)
		registerHandler := register.New(logger, renderer, g, store, flashes)
		scheduleNewHandler := schedulenew.New(logger, renderer, g, store, factory, flashes)
		haircutNewHandler := haircutnew.New(logger, renderer, g, store, factory, flashes)
		haircutEditHandler := haircutedit.New(logger, renderer, g, store, factory, flashes)
		profileHandler := profile.New(logger, renderer, store, factory, flashes)

		// Гостевые страницы
		r.Get("/", landing.New(logger, renderer, g).Show)
		r.Get("/login", loginHandler.Show)
		r.Post("/login", loginHandler.Submit)
		r.Get("/register", registerHandler.Show)
		r.Post("/register", registerHandler.Submit)

		// Страницы с обязательной сессией
		r.Get("/dashboard", dashboard.New(logger, renderer, g).Show)
		r.Get("/new", scheduleNewHandler.Show)
		r.Post("/new", scheduleNewHandler.Submit)
		r.Get("/haircuts", haircuts.New(logger, renderer, g).Show)
		r.Get("/haircuts/new", haircutNewHandler.Show)
		r.Post("/haircuts/new", haircutNewHandler.Submit)
		r.Get("/haircuts/{id}", haircutEditHandler.Show)
		r.Post("/haircuts/{id}", haircutEditHandler.Submit)
		r.Get("/profile", profileHandler.Show)
		r.Post("/profile", profileHandler.Submit)
		r.Post("/logout", profileHandler.Logout)
		r.Get("/planos", planos.New(logger, renderer, store).Show)

		r.Route("/api/v1", func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, cfg.RateLimit))
			r.Delete("/schedule", schedulefinish.New(logger, store, factory).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
