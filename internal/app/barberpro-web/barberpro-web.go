package barberproweb

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/barberpro-web/internal/barberapi"
	"github.com/magabrotheeeer/barberpro-web/internal/cache"
	"github.com/magabrotheeeer/barberpro-web/internal/config"
	"github.com/magabrotheeeer/barberpro-web/internal/lib/sl"
	"github.com/magabrotheeeer/barberpro-web/internal/session"
	"github.com/magabrotheeeer/barberpro-web/internal/web/flash"
	"github.com/magabrotheeeer/barberpro-web/internal/web/guard"
	"github.com/magabrotheeeer/barberpro-web/internal/web/middlewarectx"
	"github.com/magabrotheeeer/barberpro-web/internal/web/render"
)

type App struct {
	server *http.Server
	logger *slog.Logger
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Недоступный redis не блокирует запуск: без него панель работает,
	// отключается только ограничитель попыток входа.
	var limiter *middlewarectx.LoginLimiter
	if cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection); err != nil {
		logger.Warn("redis unavailable, login attempt limiting disabled", sl.Err(err))
	} else {
		limiter = middlewarectx.NewLoginLimiter(cacheRedis.Db, cfg.RateLimit)
	}

	apiFactory := barberapi.NewFactory(cfg.BarberAPI, logger)
	factory := func(token string) barberapi.API {
		return apiFactory.WithToken(token)
	}

	store := session.New(cfg.Session, logger, factory)
	flashes := flash.New(logger, cfg.Session.SecretKey, cfg.Session.CookieSecure)

	renderer, err := render.New(logger, flashes)
	if err != nil {
		return nil, err
	}

	g := guard.New(logger, store, factory)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, renderer, g, store, factory, flashes, limiter)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}
