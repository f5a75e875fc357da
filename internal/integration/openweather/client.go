package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/botanicbuddy/plantcare-service/pkg/logger"
)

const serviceName = "openweathermap"

// CurrentWeather потребляемая часть ответа погодного провайдера
type CurrentWeather struct {
	Main    *Main         `json:"main,omitempty"`
	Weather []Description `json:"weather,omitempty"`
}

// Main температурный блок ответа
type Main struct {
	Temp     *float64 `json:"temp,omitempty"`
	Humidity *int     `json:"humidity,omitempty"`
}

// Description текстовое описание условий
type Description struct {
	Description string `json:"description,omitempty"`
}

// Client представляет клиент погодного провайдера
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

// Config конфигурация погодного клиента
type Config struct {
	APIKey  string
	BaseURL string
}

// NewClient создает новый погодный клиент
func NewClient(cfg Config, log *logger.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{},
		log:        log,
	}
}

// GetCurrent возвращает текущую погоду по координатам в метрической системе
func (c *Client) GetCurrent(ctx context.Context, lat, lon float64) (CurrentWeather, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	reqURL := c.baseURL + "/weather?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return CurrentWeather{}, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return CurrentWeather{}, domain.NewExternalServiceError(serviceName, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return CurrentWeather{}, domain.NewExternalServiceError(serviceName, resp.StatusCode, nil)
	}

	var out CurrentWeather
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return CurrentWeather{}, domain.NewExternalServiceError(serviceName, resp.StatusCode, err)
	}

	c.log.Debugw("Weather fetched from provider", "lat", lat, "lon", lon)
	return out, nil
}
