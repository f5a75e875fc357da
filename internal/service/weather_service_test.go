package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/botanicbuddy/plantcare-service/internal/cache"
	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/botanicbuddy/plantcare-service/internal/integration/openweather"
	"github.com/botanicbuddy/plantcare-service/internal/metrics"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWeatherFixture(api *fakeWeatherAPI) (*weatherService, *fakeWeatherRepo, *fakeAddressRepo, uuid.UUID, uuid.UUID) {
	weather := newFakeWeatherRepo()
	addresses := newFakeAddressRepo()

	userID := uuid.New()
	addressID := uuid.New()
	lat, lon := 55.75, 37.62
	addresses.addresses[addressID] = domain.Address{
		ID:        addressID,
		UserID:    userID,
		Latitude:  &lat,
		Longitude: &lon,
	}

	svc := NewWeatherService(weather, addresses, api, cache.New(), metrics.NoopAPIMetrics{}, testLogger()).(*weatherService)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC) }
	return svc, weather, addresses, userID, addressID
}

func sunnyWeather() openweather.CurrentWeather {
	temp := 21.5
	humidity := 40
	return openweather.CurrentWeather{
		Main:    &openweather.Main{Temp: &temp, Humidity: &humidity},
		Weather: []openweather.Description{{Description: "clear sky"}},
	}
}

func TestWeatherCurrentFetchesAndStores(t *testing.T) {
	api := &fakeWeatherAPI{current: sunnyWeather()}
	svc, weather, _, userID, addressID := newWeatherFixture(api)

	data, err := svc.Current(context.Background(), addressID, userID)
	require.NoError(t, err)
	require.NotNil(t, data.Temperature)
	assert.Equal(t, 21.5, *data.Temperature)
	require.NotNil(t, data.Humidity)
	assert.Equal(t, 40, *data.Humidity)
	require.NotNil(t, data.Precipitation)
	assert.Zero(t, *data.Precipitation)
	assert.Equal(t, "clear sky", data.Conditions)
	assert.Equal(t, 1, api.calls)
	assert.Equal(t, 1, weather.insertCalls)
}

func TestWeatherCurrentSecondCallServedFromCache(t *testing.T) {
	api := &fakeWeatherAPI{current: sunnyWeather()}
	svc, weather, _, userID, addressID := newWeatherFixture(api)

	first, err := svc.Current(context.Background(), addressID, userID)
	require.NoError(t, err)

	second, err := svc.Current(context.Background(), addressID, userID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, api.calls)
	assert.Equal(t, 1, weather.insertCalls)
}

func TestWeatherCurrentServedFromDatabase(t *testing.T) {
	api := &fakeWeatherAPI{current: sunnyWeather()}
	svc, weather, _, userID, addressID := newWeatherFixture(api)

	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	temp := 10.0
	weather.rows[weatherKey(addressID, today)] = domain.WeatherData{
		ID:          uuid.New(),
		AddressID:   addressID,
		Date:        today,
		Temperature: &temp,
	}

	data, err := svc.Current(context.Background(), addressID, userID)
	require.NoError(t, err)
	require.NotNil(t, data.Temperature)
	assert.Equal(t, 10.0, *data.Temperature)
	assert.Equal(t, 0, api.calls)
}

func TestWeatherCurrentConcurrentWriterKeepsSingleRow(t *testing.T) {
	api := &fakeWeatherAPI{current: sunnyWeather()}
	svc, weather, _, userID, addressID := newWeatherFixture(api)

	// Пока идет запрос к провайдеру, параллельный запрос успевает
	// сохранить запись за этот же день первым
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	firstTemp := 17.0
	firstWriter := domain.WeatherData{
		ID:          uuid.New(),
		AddressID:   addressID,
		Date:        today,
		Temperature: &firstTemp,
		Conditions:  "overcast clouds",
	}
	api.onCall = func() {
		weather.rows[weatherKey(addressID, today)] = firstWriter
	}

	data, err := svc.Current(context.Background(), addressID, userID)
	require.NoError(t, err)
	assert.Equal(t, firstWriter.ID, data.ID)
	require.NotNil(t, data.Temperature)
	assert.Equal(t, 17.0, *data.Temperature)
	assert.Equal(t, "overcast clouds", data.Conditions)
	assert.Len(t, weather.rows, 1)

	// Повторный запрос отдает ту же запись из кэша
	again, err := svc.Current(context.Background(), addressID, userID)
	require.NoError(t, err)
	assert.Equal(t, data, again)
	assert.Equal(t, 1, api.calls)
}

func TestWeatherCurrentNoCoordinates(t *testing.T) {
	api := &fakeWeatherAPI{current: sunnyWeather()}
	svc, _, addresses, userID, addressID := newWeatherFixture(api)

	a := addresses.addresses[addressID]
	a.Latitude = nil
	a.Longitude = nil
	addresses.addresses[addressID] = a

	_, err := svc.Current(context.Background(), addressID, userID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, 0, api.calls)
}

func TestWeatherCurrentForeignAddress(t *testing.T) {
	api := &fakeWeatherAPI{current: sunnyWeather()}
	svc, _, _, _, addressID := newWeatherFixture(api)

	_, err := svc.Current(context.Background(), addressID, uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestWeatherCurrentUpstreamFailure(t *testing.T) {
	api := &fakeWeatherAPI{
		err: domain.NewExternalServiceError("openweathermap", 503, errors.New("unavailable")),
	}
	svc, weather, _, userID, addressID := newWeatherFixture(api)

	_, err := svc.Current(context.Background(), addressID, userID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstream))
	assert.Equal(t, 0, weather.insertCalls)
}

func TestWeatherHistory(t *testing.T) {
	api := &fakeWeatherAPI{}
	svc, weather, _, userID, addressID := newWeatherFixture(api)

	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		date := today.AddDate(0, 0, -i)
		weather.rows[weatherKey(addressID, date)] = domain.WeatherData{
			ID:        uuid.New(),
			AddressID: addressID,
			Date:      date,
		}
	}

	history, err := svc.History(context.Background(), addressID, userID, 7)
	require.NoError(t, err)
	assert.Len(t, history, 8)
}

func TestWeatherHistoryDefaultsDays(t *testing.T) {
	api := &fakeWeatherAPI{}
	svc, weather, _, userID, addressID := newWeatherFixture(api)

	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	old := today.AddDate(0, 0, -30)
	weather.rows[weatherKey(addressID, old)] = domain.WeatherData{ID: uuid.New(), AddressID: addressID, Date: old}
	weather.rows[weatherKey(addressID, today)] = domain.WeatherData{ID: uuid.New(), AddressID: addressID, Date: today}

	history, err := svc.History(context.Background(), addressID, userID, 0)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestWeatherHistoryForeignAddress(t *testing.T) {
	api := &fakeWeatherAPI{}
	svc, _, _, _, addressID := newWeatherFixture(api)

	_, err := svc.History(context.Background(), addressID, uuid.New(), 7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
