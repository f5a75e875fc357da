package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/botanicbuddy/plantcare-service/config"
	"github.com/botanicbuddy/plantcare-service/internal/api/rest"
	"github.com/botanicbuddy/plantcare-service/internal/api/rest/handlers"
	"github.com/botanicbuddy/plantcare-service/internal/api/rest/middleware"
	"github.com/botanicbuddy/plantcare-service/internal/auth"
	"github.com/botanicbuddy/plantcare-service/internal/cache"
	"github.com/botanicbuddy/plantcare-service/internal/integration/openweather"
	"github.com/botanicbuddy/plantcare-service/internal/integration/trefle"
	"github.com/botanicbuddy/plantcare-service/internal/kafka"
	"github.com/botanicbuddy/plantcare-service/internal/kafka/producer"
	"github.com/botanicbuddy/plantcare-service/internal/metrics"
	"github.com/botanicbuddy/plantcare-service/internal/repository/postgres"
	"github.com/botanicbuddy/plantcare-service/internal/service"
	"github.com/botanicbuddy/plantcare-service/pkg/logger"
	"github.com/IBM/sarama"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

var log *logger.Logger

func init() {
	// Загружаем переменные окружения, отсутствие .env не ошибка
	_ = godotenv.Load()

	logLevel := logger.INFO
	if os.Getenv("DEBUG") == "true" {
		logLevel = logger.DEBUG
	}
	log = logger.New(logLevel)
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализация Prometheus
	promRegistry := prometheus.NewRegistry()
	apiMetrics := metrics.NewAPIMetrics(promRegistry, log)

	// Подключение к базе данных
	dbPool, err := postgres.NewConnection(ctx, cfg.Database.GetDSN(), log)
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	// Инициализация Kafka продюсера, пустой список брокеров отключает события
	careProducer := producer.NewNoopCareProducer()
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaConfig := kafka.NewConfig(cfg.Kafka.Brokers)
		saramaConfig := kafka.NewSaramaConfig(kafkaConfig)

		syncProducer, err := sarama.NewSyncProducer(kafkaConfig.Brokers, saramaConfig)
		if err != nil {
			log.Fatal("Failed to create Kafka producer: %v", err)
		}
		careProducer = producer.NewKafkaCareProducer(syncProducer, log)
	}
	defer careProducer.Close()

	// Репозитории
	userRepo := postgres.NewPostgresUserRepository(dbPool, log)
	addressRepo := postgres.NewPostgresAddressRepository(dbPool, log)
	plantRepo := postgres.NewPostgresPlantRepository(dbPool, log)
	careLogRepo := postgres.NewPostgresCareLogRepository(dbPool, log)
	weatherRepo := postgres.NewPostgresWeatherRepository(dbPool, log)
	subscriptionRepo := postgres.NewPostgresSubscriptionRepository(dbPool, log)

	// Интеграции и кэш
	lookupCache := cache.New()
	trefleClient := trefle.NewClient(trefle.Config{
		APIToken: cfg.Trefle.APIToken,
		BaseURL:  cfg.Trefle.BaseURL,
	}, log)
	weatherClient := openweather.NewClient(openweather.Config{
		APIKey:  cfg.Weather.APIKey,
		BaseURL: cfg.Weather.BaseURL,
	}, log)

	// Сервисы
	tokenService := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Audience, cfg.Auth.TokenTTL, log)
	authService := service.NewAuthService(userRepo, tokenService, cfg.Auth.APIKey, log)
	addressService := service.NewAddressService(addressRepo, log)
	plantService := service.NewPlantService(plantRepo, addressRepo, userRepo, careProducer, apiMetrics, log)
	careLogService := service.NewCareLogService(careLogRepo, plantRepo, careProducer, log)
	taxonomyService := service.NewTaxonomyService(trefleClient, lookupCache, apiMetrics, log)
	weatherService := service.NewWeatherService(weatherRepo, addressRepo, weatherClient, lookupCache, apiMetrics, log)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, log)

	// Обработчики и middleware
	jwtMiddleware := middleware.NewJWTMiddleware(tokenService, log)
	routerHandlers := rest.Handlers{
		Auth:         handlers.NewAuthHandler(authService, log),
		Address:      handlers.NewAddressHandler(addressService, log),
		Plant:        handlers.NewPlantHandler(plantService, log),
		CareLog:      handlers.NewCareLogHandler(careLogService, log),
		Taxonomy:     handlers.NewTaxonomyHandler(taxonomyService, log),
		Weather:      handlers.NewWeatherHandler(weatherService, log),
		Subscription: handlers.NewSubscriptionHandler(subscriptionService, log),
		Health:       handlers.NewHealthHandler(dbPool, log),
	}

	// Установка режима Gin
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Настройка маршрутизатора
	router := rest.SetupRouter(routerHandlers, jwtMiddleware, promRegistry, apiMetrics, log)

	// Создание и запуск HTTP сервера
	server := rest.NewServer(router, cfg, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
