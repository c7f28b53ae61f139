package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/booking-availability-resolver/internal/adapters/in/http"
	"github.com/suchimauz/booking-availability-resolver/internal/adapters/in/rabbitmq"
	"github.com/suchimauz/booking-availability-resolver/internal/adapters/out/backend"
	"github.com/suchimauz/booking-availability-resolver/internal/adapters/out/cache"
	"github.com/suchimauz/booking-availability-resolver/internal/adapters/out/logger"
	"github.com/suchimauz/booking-availability-resolver/internal/config"
	"github.com/suchimauz/booking-availability-resolver/internal/core/ports/out"
	"github.com/suchimauz/booking-availability-resolver/internal/core/services/availability_service"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	mainLogger, syncLogger, err := newLogger(cfg)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer syncLogger()
	logger := mainLogger.WithModule("Main")

	logger.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
		"cacheDriver":     cfg.Cache.Driver,
	})

	// Локально печатаем конфигурацию без секретов
	if cfg.IsLocal() {
		logger.Debug("app.config.debug", out.LogFields{
			"httpAddr":        cfg.HTTP.Host + ":" + cfg.HTTP.Port,
			"backendUrl":      cfg.Backend.URL,
			"backendTimeout":  cfg.Backend.Timeout.String(),
			"gridStepMinutes": cfg.Engine.GridStepMinutes,
			"durationMinutes": cfg.Engine.DefaultDurationMinutes,
			"rabbitmqQueue":   cfg.RabbitMQ.Queue,
			"cacheTtl":        cfg.Cache.TTL.String(),
		})
	}

	// Настройка Gin в зависимости от окружения
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Инициализация адаптеров
	backendAdapter := backend.NewBackendAdapter(cfg, mainLogger)

	var busyPort out.ExternalBusyPort
	if cfg.Backend.CalendarBusyEnabled {
		busyPort = backendAdapter
	}

	var cachePort out.WeeklyScheduleCachePort
	if cfg.Cache.Enabled {
		switch cfg.Cache.Driver {
		case config.CacheDriverRedis:
			redisCache, err := cache.NewRedisCacheAdapter(cfg, mainLogger)
			if err != nil {
				logger.Error("app.cache.init_failed", out.LogFields{
					"error": err.Error(),
				})
				os.Exit(1)
			}
			defer redisCache.Close()
			cachePort = redisCache
		default:
			cachePort = cache.NewLRUCacheAdapter(cfg, mainLogger)
		}
	}

	// Инициализация сервиса
	availabilityService := availability_service.NewAvailabilityService(
		backendAdapter,
		busyPort,
		cachePort,
		cfg,
		mainLogger,
	)

	// Настройка HTTP сервера
	router := gin.Default()
	controller := http.NewAvailabilityController(availabilityService, cfg, mainLogger)
	controller.RegisterRoutes(router)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Настройка RabbitMQ слушателя только если он включен
	if cfg.RabbitMQ.Enabled {
		listener, err := rabbitmq.NewCacheHitListener(availabilityService, cfg, mainLogger)
		if err != nil {
			logger.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		if err := listener.Start(ctx); err != nil {
			logger.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				logger.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			logger.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	logger.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})
}

// newLogger: цветной консольный для локальной разработки, zap в JSON для остальных
func newLogger(cfg *config.Config) (out.LoggerPort, func(), error) {
	if cfg.Log.Format == "json" {
		zapLogger, err := logger.NewZapLogger(cfg.Log.Level, cfg.IsNotLocal())
		if err != nil {
			return nil, nil, err
		}
		return zapLogger, func() { _ = zapLogger.Sync() }, nil
	}

	consoleLogger, err := logger.NewConsoleLogger(cfg.App.Timezone, cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	return consoleLogger, func() {}, nil
}
