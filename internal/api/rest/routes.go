package rest

import (
	"github.com/botanicbuddy/plantcare-service/internal/api/rest/handlers"
	"github.com/botanicbuddy/plantcare-service/internal/api/rest/middleware"
	"github.com/botanicbuddy/plantcare-service/internal/metrics"
	"github.com/botanicbuddy/plantcare-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers обработчики, подключаемые к маршрутизатору
type Handlers struct {
	Auth         *handlers.AuthHandler
	Address      *handlers.AddressHandler
	Plant        *handlers.PlantHandler
	CareLog      *handlers.CareLogHandler
	Taxonomy     *handlers.TaxonomyHandler
	Weather      *handlers.WeatherHandler
	Subscription *handlers.SubscriptionHandler
	Health       *handlers.HealthHandler
}

// SetupRouter настраивает маршрутизатор Gin с маршрутами и middleware
func SetupRouter(h Handlers, jwt *middleware.JWTMiddleware, registry *prometheus.Registry, m metrics.APIMetrics, log *logger.Logger) *gin.Engine {
	r := gin.New()

	// Подключение middleware
	r.Use(middleware.RequestLogger(log, m))
	r.Use(gin.Recovery())

	// Endpoint для проверки работоспособности сервиса
	r.GET("/health", h.Health.Health)

	// Prometheus метрики
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	v1 := r.Group("/api/v1")
	{
		// Аутентификация
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/token", h.Auth.Token)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.GET("/verify", jwt.RequireAuth(), h.Auth.Verify)
			auth.GET("/me", jwt.RequireUser(), h.Auth.Me)
		}

		// Справочник растений
		plants := v1.Group("/plants", jwt.RequireAuth())
		{
			plants.GET("", h.Taxonomy.List)
			plants.GET("/search", h.Taxonomy.Search)
			plants.GET("/common-name/:name", h.Taxonomy.ByCommonName)
			plants.GET("/:id", h.Taxonomy.Get)
		}

		// Адреса пользователя
		addresses := v1.Group("/addresses", jwt.RequireUser())
		{
			addresses.GET("", h.Address.List)
			addresses.GET("/:id", h.Address.Get)
			addresses.POST("", h.Address.Create)
			addresses.PUT("/:id", h.Address.Update)
			addresses.DELETE("/:id", h.Address.Delete)
		}

		// Растения пользователя
		userPlants := v1.Group("/user-plants", jwt.RequireUser())
		{
			userPlants.GET("", h.Plant.List)
			userPlants.GET("/:id", h.Plant.Get)
			userPlants.POST("", h.Plant.Create)
			userPlants.PUT("/:id", h.Plant.Update)
			userPlants.DELETE("/:id", h.Plant.Delete)
		}

		// Журнал ухода
		careLogs := v1.Group("/care-logs", jwt.RequireUser())
		{
			careLogs.GET("/plant/:plantId", h.CareLog.ListByPlant)
			careLogs.GET("/plant/:plantId/statistics", h.CareLog.Statistics)
			careLogs.GET("/:id", h.CareLog.Get)
			careLogs.POST("", h.CareLog.Create)
			careLogs.DELETE("/:id", h.CareLog.Delete)
		}

		// Погода
		weather := v1.Group("/weather", jwt.RequireUser())
		{
			weather.GET("/address/:id", h.Weather.Current)
			weather.GET("/address/:id/history", h.Weather.History)
		}

		// Подписки
		subscriptions := v1.Group("/subscriptions", jwt.RequireUser())
		{
			subscriptions.GET("", h.Subscription.List)
		}
	}

	return r
}
