// Package render отрисовывает страницы панели из встроенных шаблонов.
// Каждая страница собирается из layout.html и собственного файла,
// шаблоны разбираются один раз при старте.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/magabrotheeeer/barberpro-web/internal/lib/sl"
	"github.com/magabrotheeeer/barberpro-web/internal/web/flash"
	"github.com/magabrotheeeer/barberpro-web/internal/web/templates"
)

// Renderer хранит кэш разобранных шаблонов.
type Renderer struct {
	log     *slog.Logger
	flashes *flash.Store
	cache   map[string]*template.Template
}

// pageData — данные, доступные каждому шаблону страницы.
type pageData struct {
	Title     string
	Flashes   []flash.Message
	CsrfField template.HTML
	CsrfToken string
	Props     any
}

// New разбирает все встроенные шаблоны страниц вместе с layout.html.
func New(log *slog.Logger, flashes *flash.Store) (*Renderer, error) {
	const op = "render.New"

	funcs := template.FuncMap{
		// Цены показываются в бразильских реалах с двумя знаками.
		"price": func(v float64) string {
			return fmt.Sprintf("R$ %.2f", v)
		},
	}

	entries, err := templates.FS.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cache := make(map[string]*template.Template)
	for _, entry := range entries {
		name := entry.Name()
		if name == "layout.html" {
			continue
		}
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templates.FS, "layout.html", name)
		if err != nil {
			return nil, fmt.Errorf("%s: parse %s: %w", op, name, err)
		}
		cache[name] = tmpl
	}

	return &Renderer{log: log, flashes: flashes, cache: cache}, nil
}

// HTML отрисовывает страницу с заголовком и данными loader-а.
// Flash-сообщения и CSRF-поле подставляются в каждую страницу.
func (rr *Renderer) HTML(w http.ResponseWriter, r *http.Request, name, title string, props any) {
	const op = "render.HTML"

	tmpl, ok := rr.cache[name]
	if !ok {
		rr.log.Error("unknown template", slog.String("op", op), slog.String("name", name))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	data := pageData{
		Title:     title,
		Flashes:   rr.flashes.Pop(w, r),
		CsrfField: csrf.TemplateField(r),
		CsrfToken: csrf.Token(r),
		Props:     props,
	}

	// Отрисовка в буфер: при ошибке шаблона клиент получает 500,
	// а не половину страницы.
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		rr.log.Error("failed to execute template",
			slog.String("op", op),
			slog.String("name", name),
			sl.Err(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		rr.log.Error("failed to write response", slog.String("op", op), sl.Err(err))
	}
}
