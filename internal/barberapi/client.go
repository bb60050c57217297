package barberapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/barberpro-web/internal/config"
	"github.com/magabrotheeeer/barberpro-web/internal/lib/sl"
)

// Factory создаёт клиентов, привязанных к одному базовому URL.
// Страничные загрузчики получают клиент с токеном запроса через WithToken,
// http.Client общий для всех созданных клиентов.
type Factory struct {
	baseURL    string
	log        *slog.Logger
	httpClient *http.Client
}

// NewFactory создаёт фабрику клиентов по настройкам удалённого API.
func NewFactory(cfg config.BarberAPI, log *slog.Logger) *Factory {
	return &Factory{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		log:        log,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// WithToken возвращает клиент, подписывающий каждый запрос переданным bearer-токеном.
// Пустой токен допустим: запросы уходят без заголовка Authorization.
func (f *Factory) WithToken(token string) *Client {
	return &Client{
		baseURL:    f.baseURL,
		token:      token,
		log:        f.log,
		httpClient: f.httpClient,
	}
}

// Client выполняет запросы к удалённому API от имени одного токена.
type Client struct {
	baseURL    string
	token      string
	log        *slog.Logger
	httpClient *http.Client
}

// do выполняет один запрос: кодирует body в JSON, подставляет query-параметры,
// заголовки Authorization и X-Request-Id, декодирует успешный ответ в out.
// Ответ вне 2xx превращается в *APIError с сообщением сервера.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	const op = "barberapi.do"

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, &buf)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("barber api request failed",
			slog.String("method", method),
			slog.String("path", path),
			sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := c.apiError(resp)
		c.log.Error("barber api returned error status",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode))
		return fmt.Errorf("%s: %w", op, apiErr)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// apiError достаёт сообщение об ошибке из тела ответа.
// Удалённый сервис отвечает {"error": "..."}, но формат не гарантирован.
func (c *Client) apiError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return apiErr
	}

	var serverMsg struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &serverMsg); err == nil {
		if serverMsg.Error != "" {
			apiErr.Message = serverMsg.Error
		} else {
			apiErr.Message = serverMsg.Message
		}
	}
	return apiErr
}
