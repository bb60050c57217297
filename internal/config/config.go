// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек веб-панели.
type Config struct {
	Env             string `yaml:"env" env-default:"local"`
	HTTPServer      `yaml:"http_server"`
	RedisConnection `yaml:"redis_connection"`
	BarberAPI       `yaml:"barber_api"`
	Session         `yaml:"session"`
	RateLimit       `yaml:"rate_limit"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"30s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	Addr        string        `yaml:"addr" env-default:"localhost:6379"`
	Password    string        `yaml:"password"`
	User        string        `yaml:"user"`
	DB          int           `yaml:"db"`
	MaxRetries  int           `yaml:"max_retries"`
	DialTimeout time.Duration `yaml:"dial_timeout" env-default:"5s"`
	Timeout     time.Duration `yaml:"timeout" env-default:"3s"`
}

// BarberAPI структура для настройки клиента удалённого REST API барбершопа.
type BarberAPI struct {
	BaseURL string        `yaml:"base_url" env-required:"true"`
	Timeout time.Duration `yaml:"timeout" env-default:"10s"`
}

// Session структура для настройки cookie с токеном и подписи flash-сообщений.
// TokenTTL задаёт срок жизни cookie (по умолчанию 30 дней).
type Session struct {
	CookieName   string        `yaml:"cookie_name" env-default:"barber_token"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"720h"`
	CookieSecure bool          `yaml:"cookie_secure"`
	SecretKey    string        `yaml:"secret_key" env-required:"true"`
}

// RateLimit структура с лимитами для JSON-действий и попыток входа.
type RateLimit struct {
	ActionRPS     int           `yaml:"action_rps" env-default:"5"`
	ActionBurst   int           `yaml:"action_burst" env-default:"10"`
	LoginAttempts int           `yaml:"login_attempts" env-default:"5"`
	LoginWindow   time.Duration `yaml:"login_window" env-default:"1m"`
}

// MustLoad функция для загрузки конфига, путь берётся из переменной окружения CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
