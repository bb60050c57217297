// Package models содержит доменные структуры веб-панели барбершопа:
// пользователя, подписку, модель стрижки и запись в расписании.
// Все структуры приходят из удалённого REST API в формате JSON,
// имена полей повторяют формат внешнего сервиса.
package models

// SubscriptionActive значение статуса подписки, открывающее premium-доступ.
const SubscriptionActive = "active"

// User представляет владельца барбершопа, вошедшего в систему.
type User struct {
	ID       string `json:"id"`       // Уникальный идентификатор пользователя
	Name     string `json:"name"`     // Название барбершопа
	Email    string `json:"email"`    // Электронная почта
	Endereco string `json:"endereco"` // Адрес барбершопа (опционально)
}

// Subscription описывает состояние подписки пользователя.
// Статус "active" означает premium-план.
type Subscription struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Active сообщает, открывает ли подписка premium-доступ.
func (s *Subscription) Active() bool {
	return s != nil && s.Status == SubscriptionActive
}

// Me ответ эндпоинта /me: пользователь вместе с состоянием подписки.
type Me struct {
	User
	Subscriptions *Subscription `json:"subscriptions"`
}

// Premium сообщает, активна ли подписка пользователя.
func (m *Me) Premium() bool {
	return m != nil && m.Subscriptions.Active()
}

// Haircut представляет модель стрижки из каталога барбершопа.
type Haircut struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`   // Цена, отображается с двумя знаками
	Status bool    `json:"status"`  // true — модель активна
	UserID string  `json:"user_id"` // Владелец модели
}

// ScheduleItem представляет запись клиента в расписании на стрижку.
type ScheduleItem struct {
	ID       string  `json:"id"`
	Customer string  `json:"customer"`
	Haircut  Haircut `json:"haircut"`
}
