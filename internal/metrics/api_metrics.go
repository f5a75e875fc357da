package metrics

import (
	"github.com/botanicbuddy/plantcare-service/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// APIMetrics интерфейс для метрик API
type APIMetrics interface {
	IncRequest(method, path string, status int)
	IncCacheHit(source string)
	IncCacheMiss(source string)
	IncUpstreamCall(provider string)
	IncUpstreamError(provider string)
	IncTierDenied(tier string)
	IncPlantCreated()
}

type apiMetrics struct {
	log            *logger.Logger
	requests       *prometheus.CounterVec
	cacheHits      *prometheus.CounterVec
	cacheMisses    *prometheus.CounterVec
	upstreamCalls  *prometheus.CounterVec
	upstreamErrors *prometheus.CounterVec
	tierDenied     *prometheus.CounterVec
	plantsCreated  prometheus.Counter
}

// NewAPIMetrics создает новые метрики API
func NewAPIMetrics(registry *prometheus.Registry, log *logger.Logger) APIMetrics {
	requests := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "The total number of handled HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	cacheHits := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookup_cache_hits_total",
			Help: "The total number of lookup cache hits",
		},
		[]string{"source"},
	)

	cacheMisses := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookup_cache_misses_total",
			Help: "The total number of lookup cache misses",
		},
		[]string{"source"},
	)

	upstreamCalls := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_calls_total",
			Help: "The total number of outbound provider calls",
		},
		[]string{"provider"},
	)

	upstreamErrors := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_errors_total",
			Help: "The total number of failed outbound provider calls",
		},
		[]string{"provider"},
	)

	tierDenied := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "tier_limit_denied_total",
			Help: "The total number of plant creations denied by tier limit",
		},
		[]string{"tier"},
	)

	plantsCreated := promauto.With(registry).NewCounter(
		prometheus.CounterOpts{
			Name: "plants_created_total",
			Help: "The total number of created user plants",
		},
	)

	return &apiMetrics{
		log:            log,
		requests:       requests,
		cacheHits:      cacheHits,
		cacheMisses:    cacheMisses,
		upstreamCalls:  upstreamCalls,
		upstreamErrors: upstreamErrors,
		tierDenied:     tierDenied,
		plantsCreated:  plantsCreated,
	}
}

// IncRequest увеличивает счетчик обработанных запросов
func (m *apiMetrics) IncRequest(method, path string, status int) {
	m.requests.WithLabelValues(method, path, statusLabel(status)).Inc()
}

// IncCacheHit увеличивает счетчик попаданий в кэш
func (m *apiMetrics) IncCacheHit(source string) {
	m.cacheHits.WithLabelValues(source).Inc()
}

// IncCacheMiss увеличивает счетчик промахов кэша
func (m *apiMetrics) IncCacheMiss(source string) {
	m.cacheMisses.WithLabelValues(source).Inc()
}

// IncUpstreamCall увеличивает счетчик внешних вызовов
func (m *apiMetrics) IncUpstreamCall(provider string) {
	m.upstreamCalls.WithLabelValues(provider).Inc()
}

// IncUpstreamError увеличивает счетчик неудачных внешних вызовов
func (m *apiMetrics) IncUpstreamError(provider string) {
	m.upstreamErrors.WithLabelValues(provider).Inc()
}

// IncTierDenied увеличивает счетчик отказов по лимиту тарифа
func (m *apiMetrics) IncTierDenied(tier string) {
	m.tierDenied.WithLabelValues(tier).Inc()
}

// IncPlantCreated увеличивает счетчик созданных растений
func (m *apiMetrics) IncPlantCreated() {
	m.plantsCreated.Inc()
}

// statusLabel группирует статус в метку класса
func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// NoopAPIMetrics метрики-заглушка для тестов
type NoopAPIMetrics struct{}

func (NoopAPIMetrics) IncRequest(string, string, int) {}
func (NoopAPIMetrics) IncCacheHit(string)             {}
func (NoopAPIMetrics) IncCacheMiss(string)            {}
func (NoopAPIMetrics) IncUpstreamCall(string)         {}
func (NoopAPIMetrics) IncUpstreamError(string)        {}
func (NoopAPIMetrics) IncTierDenied(string)           {}
func (NoopAPIMetrics) IncPlantCreated()               {}
