package barberapi

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/magabrotheeeer/barberpro-web/internal/models"
)

// API описывает все операции удалённого REST API, которые использует панель.
// Интерфейс нужен обработчикам страниц: в тестах он подменяется моком.
type API interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Me(ctx context.Context) (*models.Me, error)
	UpdateUser(ctx context.Context, name, endereco string) error
	ListSchedule(ctx context.Context) ([]models.ScheduleItem, error)
	CreateSchedule(ctx context.Context, customer, haircutID string) error
	FinishSchedule(ctx context.Context, scheduleID string) error
	ListHaircuts(ctx context.Context, enabled bool) ([]models.Haircut, error)
	HaircutDetail(ctx context.Context, haircutID string) (*models.Haircut, error)
	CheckSubscription(ctx context.Context) (*models.Subscription, error)
	CountHaircuts(ctx context.Context) (int, error)
	CreateHaircut(ctx context.Context, name string, price float64) error
	UpdateHaircut(ctx context.Context, haircutID, name string, price float64, status bool) error
}

var _ API = (*Client)(nil)

// LoginResponse ответ эндпоинта /session: пользователь и выданный токен.
type LoginResponse struct {
	models.User
	Token string `json:"token"`
}

// Login обменивает учётные данные на bearer-токен через POST /session.
// Отклонённые учётные данные превращаются в ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}

	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/session", nil, body, &resp); err != nil {
		if isCredentialsError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return &resp, nil
}

// Register создаёт учётную запись через POST /users.
func (c *Client) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	body := map[string]string{"name": name, "email": email, "password": password}

	var user models.User
	if err := c.do(ctx, http.MethodPost, "/users", nil, body, &user); err != nil {
		if isCredentialsError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return &user, nil
}

// Me возвращает текущего пользователя вместе с состоянием подписки.
func (c *Client) Me(ctx context.Context) (*models.Me, error) {
	var me models.Me
	if err := c.do(ctx, http.MethodGet, "/me", nil, nil, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

// UpdateUser обновляет имя и адрес барбершопа через PUT /users.
func (c *Client) UpdateUser(ctx context.Context, name, endereco string) error {
	body := map[string]string{"name": name, "endereco": endereco}
	return c.do(ctx, http.MethodPut, "/users", nil, body, nil)
}

// ListSchedule возвращает записи расписания на сегодня.
func (c *Client) ListSchedule(ctx context.Context) ([]models.ScheduleItem, error) {
	var items []models.ScheduleItem
	if err := c.do(ctx, http.MethodGet, "/schedule", nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateSchedule регистрирует клиента на выбранную модель стрижки.
func (c *Client) CreateSchedule(ctx context.Context, customer, haircutID string) error {
	body := map[string]string{"customer": customer, "haircut_id": haircutID}
	return c.do(ctx, http.MethodPost, "/schedule", nil, body, nil)
}

// FinishSchedule помечает запись обслуженной: DELETE /schedule?schedule_id=.
func (c *Client) FinishSchedule(ctx context.Context, scheduleID string) error {
	params := url.Values{"schedule_id": {scheduleID}}
	return c.do(ctx, http.MethodDelete, "/schedule", params, nil, nil)
}

// ListHaircuts возвращает модели стрижек с фильтром по статусу.
func (c *Client) ListHaircuts(ctx context.Context, enabled bool) ([]models.Haircut, error) {
	params := url.Values{"status": {strconv.FormatBool(enabled)}}

	var haircuts []models.Haircut
	if err := c.do(ctx, http.MethodGet, "/haircuts", params, nil, &haircuts); err != nil {
		return nil, err
	}
	return haircuts, nil
}

// HaircutDetail возвращает одну модель стрижки по идентификатору.
func (c *Client) HaircutDetail(ctx context.Context, haircutID string) (*models.Haircut, error) {
	params := url.Values{"haircut_id": {haircutID}}

	var haircut models.Haircut
	if err := c.do(ctx, http.MethodGet, "/haircut/detail", params, nil, &haircut); err != nil {
		return nil, err
	}
	return &haircut, nil
}

// CheckSubscription возвращает состояние подписки или nil, если подписки нет.
func (c *Client) CheckSubscription(ctx context.Context) (*models.Subscription, error) {
	var resp struct {
		Subscriptions *models.Subscription `json:"subscriptions"`
	}
	if err := c.do(ctx, http.MethodGet, "/haircut/check", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Subscriptions, nil
}

// CountHaircuts возвращает количество моделей стрижек пользователя.
func (c *Client) CountHaircuts(ctx context.Context) (int, error) {
	var count int
	if err := c.do(ctx, http.MethodGet, "/haircut/count", nil, nil, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// CreateHaircut добавляет модель стрижки в каталог.
func (c *Client) CreateHaircut(ctx context.Context, name string, price float64) error {
	body := map[string]any{"name": name, "price": price}
	return c.do(ctx, http.MethodPost, "/haircut", nil, body, nil)
}

// UpdateHaircut обновляет имя, цену и статус модели стрижки.
func (c *Client) UpdateHaircut(ctx context.Context, haircutID, name string, price float64, status bool) error {
	body := map[string]any{
		"haircut_id": haircutID,
		"name":       name,
		"price":      price,
		"status":     status,
	}
	return c.do(ctx, http.MethodPut, "/haircut", nil, body, nil)
}

// isCredentialsError трактует 400/401 от эндпоинтов входа и регистрации
// как отклонённые учётные данные.
func isCredentialsError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusUnauthorized
	}
	return false
}
