package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type CacheDriver string

const (
	CacheDriverLRU   CacheDriver = "lru"
	CacheDriverRedis CacheDriver = "redis"
)

type ConfigBasicClient struct {
	Username string
	Password string
}

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"Europe/Moscow"`
		Location *time.Location
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	Backend struct {
		URL     string        `env:"BACKEND_URL"`
		Token   string        `env:"BACKEND_TOKEN"`
		Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"5s"`

		CalendarBusyEnabled bool `env:"BACKEND_CALENDAR_BUSY_ENABLED"`
	}

	Auth struct {
		BasicClientsString string `env:"AUTH_BASIC_CLIENTS" envDefault:"availability_resolver:availability_resolver"`
		BasicClients       []ConfigBasicClient
	}

	Engine struct {
		GridStepMinutes        int `env:"ENGINE_GRID_STEP_MINUTES" envDefault:"15"`
		DefaultDurationMinutes int `env:"ENGINE_DEFAULT_DURATION_MINUTES" envDefault:"30"`
		BatchConcurrency       int `env:"ENGINE_BATCH_CONCURRENCY" envDefault:"4"`
		BatchMaxDates          int `env:"ENGINE_BATCH_MAX_DATES" envDefault:"31"`
	}

	Log struct {
		Format string `env:"LOG_FORMAT" envDefault:"console"`
		Level  string `env:"LOG_LEVEL" envDefault:"debug"`
	}

	RateLimit struct {
		Enabled bool    `env:"RATE_LIMIT_ENABLED"`
		RPS     float64 `env:"RATE_LIMIT_RPS" envDefault:"50"`
		Burst   int     `env:"RATE_LIMIT_BURST" envDefault:"100"`
	}

	RabbitMQ struct {
		Enabled  bool   `env:"RABBITMQ_ENABLED"`
		URL      string `env:"RABBITMQ_URL"`
		Queue    string `env:"RABBITMQ_QUEUE" envDefault:"availability-resolver.weeklyschedule"`
		Exchange string `env:"RABBITMQ_EXCHANGE" envDefault:"booking"`
		Bind     string `env:"RABBITMQ_BIND" envDefault:"*.availability-resolver.#"`
	}

	Cache struct {
		Enabled bool          `env:"CACHE_ENABLED" envDefault:"true"`
		Driver  CacheDriver   `env:"CACHE_DRIVER" envDefault:"lru"`
		Size    int           `env:"CACHE_WEEKLY_SIZE" envDefault:"1000"`
		TTL     time.Duration `env:"CACHE_WEEKLY_TTL" envDefault:"10m"`

		RedisAddr     string `env:"CACHE_REDIS_ADDR" envDefault:"localhost:6379"`
		RedisPassword string `env:"CACHE_REDIS_PASSWORD"`
		RedisDB       int    `env:"CACHE_REDIS_DB" envDefault:"0"`
		RedisPrefix   string `env:"CACHE_REDIS_PREFIX" envDefault:"availability:weekly:"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) normalize() error {
	// Приведение окружения к нижнему регистру для унификации
	c.App.Env = Environment(strings.ToLower(string(c.App.Env)))
	c.Cache.Driver = CacheDriver(strings.ToLower(string(c.Cache.Driver)))

	location, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return fmt.Errorf("config.app.timezone: %w", err)
	}
	c.App.Location = location

	if c.Engine.GridStepMinutes <= 0 {
		return fmt.Errorf("config.engine.grid_step: must be positive, got %d", c.Engine.GridStepMinutes)
	}
	if c.Engine.DefaultDurationMinutes <= 0 {
		return fmt.Errorf("config.engine.default_duration: must be positive, got %d", c.Engine.DefaultDurationMinutes)
	}
	if c.Engine.BatchConcurrency <= 0 {
		c.Engine.BatchConcurrency = 1
	}

	if c.Cache.Driver != CacheDriverLRU && c.Cache.Driver != CacheDriverRedis {
		return fmt.Errorf("config.cache.driver: unknown driver %q", c.Cache.Driver)
	}

	// Разделение клиентов basic-авторизации
	c.Auth.BasicClients = []ConfigBasicClient{}
	clientPairs := strings.Split(c.Auth.BasicClientsString, ",")
	for _, pair := range clientPairs {
		parts := strings.SplitN(strings.TrimSpace(pair), ":", 2)
		if len(parts) == 2 && parts[0] != "" {
			c.Auth.BasicClients = append(c.Auth.BasicClients, ConfigBasicClient{
				Username: parts[0],
				Password: parts[1],
			})
		}
	}

	return nil
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}

// Now: текущий момент в таймзоне приложения
func (c *Config) Now() time.Time {
	return time.Now().In(c.App.Location)
}
