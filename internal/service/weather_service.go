package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/botanicbuddy/plantcare-service/internal/cache"
	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/botanicbuddy/plantcare-service/internal/integration/openweather"
	"github.com/botanicbuddy/plantcare-service/internal/metrics"
	"github.com/botanicbuddy/plantcare-service/internal/repository"
	"github.com/botanicbuddy/plantcare-service/pkg/logger"
	"github.com/google/uuid"
)

const (
	// weatherCacheTTL срок жизни кэшированной погоды за текущий день
	weatherCacheTTL = time.Hour

	// defaultHistoryDays глубина истории погоды по умолчанию
	defaultHistoryDays = 7
)

// WeatherAPI клиент провайдера текущей погоды
type WeatherAPI interface {
	GetCurrent(ctx context.Context, lat, lon float64) (openweather.CurrentWeather, error)
}

// WeatherService интерфейс сервиса погодных данных
type WeatherService interface {
	Current(ctx context.Context, addressID, userID uuid.UUID) (domain.WeatherData, error)
	History(ctx context.Context, addressID, userID uuid.UUID, days int) ([]domain.WeatherData, error)
}

type weatherService struct {
	weather   repository.WeatherRepository
	addresses repository.AddressRepository
	client    WeatherAPI
	store     *cache.Store
	metrics   metrics.APIMetrics
	log       *logger.Logger

	// now переопределяется в тестах
	now func() time.Time
}

// NewWeatherService создает новый сервис погодных данных
func NewWeatherService(
	weather repository.WeatherRepository,
	addresses repository.AddressRepository,
	client WeatherAPI,
	store *cache.Store,
	m metrics.APIMetrics,
	log *logger.Logger,
) WeatherService {
	return &weatherService{
		weather:   weather,
		addresses: addresses,
		client:    client,
		store:     store,
		metrics:   m,
		log:       log,
		now:       time.Now,
	}
}

// Current возвращает погоду за текущий день по адресу пользователя.
// Данные читаются из кэша, затем из базы, затем у провайдера. За один
// календарный день на адрес сохраняется ровно одна запись.
func (s *weatherService) Current(ctx context.Context, addressID, userID uuid.UUID) (domain.WeatherData, error) {
	address, err := s.addresses.GetByIDForUser(ctx, addressID, userID)
	if err != nil {
		return domain.WeatherData{}, err
	}

	if address.Latitude == nil || address.Longitude == nil {
		s.log.Warn("Address %s has no coordinates", addressID)
		return domain.WeatherData{}, domain.ErrInvalidInput
	}

	today := s.today()
	key := fmt.Sprintf("weather_%s_%s", addressID, today.Format("2006-01-02"))

	if cached, ok := s.store.Get(key); ok {
		if data, ok := cached.(domain.WeatherData); ok {
			s.metrics.IncCacheHit("weather")
			return data, nil
		}
	}
	s.metrics.IncCacheMiss("weather")

	stored, err := s.weather.GetByAddressAndDate(ctx, addressID, today)
	if err == nil {
		s.store.Set(key, stored, weatherCacheTTL)
		return stored, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.WeatherData{}, err
	}

	s.metrics.IncUpstreamCall("openweathermap")
	current, err := s.client.GetCurrent(ctx, *address.Latitude, *address.Longitude)
	if err != nil {
		s.metrics.IncUpstreamError("openweathermap")
		return domain.WeatherData{}, err
	}

	data := domain.WeatherData{
		ID:        uuid.New(),
		AddressID: addressID,
		Date:      today,
	}
	if current.Main != nil {
		data.Temperature = current.Main.Temp
		data.Humidity = current.Main.Humidity
	}
	precipitation := 0.0
	data.Precipitation = &precipitation
	if len(current.Weather) > 0 {
		data.Conditions = current.Weather[0].Description
	}

	saved, err := s.weather.Insert(ctx, data)
	if err != nil {
		return domain.WeatherData{}, err
	}

	s.store.Set(key, saved, weatherCacheTTL)
	return saved, nil
}

// History возвращает сохраненную погоду за последние days дней
func (s *weatherService) History(ctx context.Context, addressID, userID uuid.UUID, days int) ([]domain.WeatherData, error) {
	if _, err := s.addresses.GetByIDForUser(ctx, addressID, userID); err != nil {
		return nil, err
	}

	if days <= 0 {
		days = defaultHistoryDays
	}

	since := s.today().AddDate(0, 0, -days)
	return s.weather.ListHistory(ctx, addressID, since)
}

// today возвращает текущий календарный день в UTC
func (s *weatherService) today() time.Time {
	return s.now().UTC().Truncate(24 * time.Hour)
}
