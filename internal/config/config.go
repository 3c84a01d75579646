// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/magabrotheeeer/messmate/internal/models"
)

// Config общая структура для хранения настроек
type Config struct {
	Env        string        `yaml:"env" env:"ENV" env-default:"local"`
	Storage    Storage       `yaml:"storage"`
	HTTPServer HTTPServer    `yaml:"http_server"`
	JWTToken   JWTToken      `yaml:"jwttoken"`
	RabbitMQ   RabbitMQ      `yaml:"rabbitmq"`
	SMTP       SMTP          `yaml:"smtp"`
	Scheduler  Scheduler     `yaml:"scheduler"`
	Users      []models.User `yaml:"users"`
}

// Storage структура для настройки хранилища документа
type Storage struct {
	Driver                  string          `yaml:"driver" env:"STORAGE_DRIVER" env-default:"file"` // file, redis или postgres
	Path                    string          `yaml:"path" env-default:"messmate_db_v2.json"`
	Key                     string          `yaml:"key" env-default:"messmate_db_v2"`
	StorageConnectionString string          `yaml:"storage_connection_string" env:"STORAGE_DSN"`
	MigrationsPath          string          `yaml:"migrations_path" env-default:"./migrations"`
	SaveRetries             int             `yaml:"save_retries" env-default:"3"`
	SaveRetryDelay          time.Duration   `yaml:"save_retry_delay" env-default:"200ms"`
	Redis                   RedisConnection `yaml:"redis_connection"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	Address     string        `yaml:"address" env:"REDIS_ADDRESS"`
	Password    string        `yaml:"password" env:"REDIS_PASSWORD"`
	User        string        `yaml:"user"`
	DB          int           `yaml:"db"`
	MaxRetries  int           `yaml:"max_retries"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
	Timeout     time.Duration `yaml:"timeout"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	Address     string        `yaml:"address" env-default:":8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
	RateLimit   float64       `yaml:"rate_limit" env-default:"10"`
	RateBurst   int           `yaml:"rate_burst" env-default:"20"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"12h"`
}

// RabbitMQ структура для подключения к брокеру уведомлений
type RabbitMQ struct {
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	MaxRetries int           `yaml:"max_retries" env-default:"5"`
	RetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
	// Повторы писем при временных ошибках SMTP
	ConsumerMaxAttempts int           `yaml:"consumer_max_attempts" env-default:"5"`
	ConsumerRetryDelay  time.Duration `yaml:"consumer_retry_delay" env-default:"30s"`
}

// SMTP структура для отправки писем владельцу
type SMTP struct {
	Host       string `yaml:"host" env:"SMTP_HOST"`
	Port       string `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	User       string `yaml:"user" env:"SMTP_USER"`
	Pass       string `yaml:"pass" env:"SMTP_PASS"`
	OwnerEmail string `yaml:"owner_email" env:"OWNER_EMAIL"`
}

// Scheduler структура для настройки периодической проверки напоминаний
type Scheduler struct {
	Interval time.Duration `yaml:"interval" env-default:"12h"`
}

// Load читает конфиг из файла и переменных окружения.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad функция для загрузки конфига по пути из CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"Storage:\n"+
			"  Driver: %s\n"+
			"  Path: %s\n"+
			"  Key: %s\n"+
			"  Redis: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"JWTToken:\n"+
			"  TokenTTL: %s\n"+
			"Scheduler:\n"+
			"  Interval: %s\n",
		c.Env,
		c.Storage.Driver,
		c.Storage.Path,
		c.Storage.Key,
		c.Storage.Redis.Address,
		c.HTTPServer.Address,
		c.HTTPServer.Timeout,
		c.HTTPServer.IdleTimeout,
		c.JWTToken.TokenTTL,
		c.Scheduler.Interval,
	)
}
