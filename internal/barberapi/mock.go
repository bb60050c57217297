package barberapi

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/barberpro-web/internal/models"
)

// Mock реализует API поверх testify/mock. Используется в тестах
// обработчиков страниц и guard-обёрток.
type Mock struct {
	mock.Mock
}

var _ API = (*Mock)(nil)

func (m *Mock) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	args := m.Called(ctx, email, password)
	resp, _ := args.Get(0).(*LoginResponse)
	return resp, args.Error(1)
}

func (m *Mock) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	args := m.Called(ctx, name, email, password)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *Mock) Me(ctx context.Context) (*models.Me, error) {
	args := m.Called(ctx)
	me, _ := args.Get(0).(*models.Me)
	return me, args.Error(1)
}

func (m *Mock) UpdateUser(ctx context.Context, name, endereco string) error {
	args := m.Called(ctx, name, endereco)
	return args.Error(0)
}

func (m *Mock) ListSchedule(ctx context.Context) ([]models.ScheduleItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]models.ScheduleItem)
	return items, args.Error(1)
}

func (m *Mock) CreateSchedule(ctx context.Context, customer, haircutID string) error {
	args := m.Called(ctx, customer, haircutID)
	return args.Error(0)
}

func (m *Mock) FinishSchedule(ctx context.Context, scheduleID string) error {
	args := m.Called(ctx, scheduleID)
	return args.Error(0)
}

func (m *Mock) ListHaircuts(ctx context.Context, enabled bool) ([]models.Haircut, error) {
	args := m.Called(ctx, enabled)
	haircuts, _ := args.Get(0).([]models.Haircut)
	return haircuts, args.Error(1)
}

func (m *Mock) HaircutDetail(ctx context.Context, haircutID string) (*models.Haircut, error) {
	args := m.Called(ctx, haircutID)
	haircut, _ := args.Get(0).(*models.Haircut)
	return haircut, args.Error(1)
}

func (m *Mock) CheckSubscription(ctx context.Context) (*models.Subscription, error) {
	args := m.Called(ctx)
	sub, _ := args.Get(0).(*models.Subscription)
	return sub, args.Error(1)
}

func (m *Mock) CountHaircuts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *Mock) CreateHaircut(ctx context.Context, name string, price float64) error {
	args := m.Called(ctx, name, price)
	return args.Error(0)
}

func (m *Mock) UpdateHaircut(ctx context.Context, haircutID, name string, price float64, status bool) error {
	args := m.Called(ctx, haircutID, name, price, status)
	return args.Error(0)
}
