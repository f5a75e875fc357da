package trefle

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

const serviceName = "trefle"

// Client представляет клиент для работы с API таксономии растений Trefle
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
	log        *logger.Logger
}

// Config конфигурация для клиента Trefle
type Config struct {
	APIToken string
	BaseURL  string
}

// NewClient создает новый клиент Trefle
func NewClient(cfg Config, log *logger.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiToken:   cfg.APIToken,
		httpClient: &http.Client{},
		log:        log,
	}
}

// ListPlants возвращает страницу общего списка растений
func (c *Client) ListPlants(ctx context.Context, page int) (SearchResponse, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	var out SearchResponse
	if err := c.get(ctx, "/plants", params, &out); err != nil {
		return SearchResponse{}, err
	}
	c.log.Debugw("Listed plants from Trefle", "page", page, "count", len(out.Data))
	return out, nil
}

// SearchPlants ищет растения по строке запроса
func (c *Client) SearchPlants(ctx context.Context, query string, page int) (SearchResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("page", strconv.Itoa(page))

	var out SearchResponse
	if err := c.get(ctx, "/plants/search", params, &out); err != nil {
		return SearchResponse{}, err
	}
	c.log.Debugw("Searched plants in Trefle", "query", query, "page", page, "count", len(out.Data))
	return out, nil
}

// GetPlantByID возвращает детальную запись растения
func (c *Client) GetPlantByID(ctx context.Context, plantID int) (DetailResponse, error) {
	var out DetailResponse
	if err := c.get(ctx, fmt.Sprintf("/plants/%d", plantID), url.Values{}, &out); err != nil {
		return DetailResponse{}, err
	}
	return out, nil
}

// GetPlantsByCommonName фильтрует растения по обиходному названию
func (c *Client) GetPlantsByCommonName(ctx context.Context, commonName string, page int) (SearchResponse, error) {
	params := url.Values{}
	params.Set("filter[common_name]", commonName)
	params.Set("page", strconv.Itoa(page))

	var out SearchResponse
	if err := c.get(ctx, "/plants", params, &out); err != nil {
		return SearchResponse{}, err
	}
	return out, nil
}

// get выполняет GET-запрос к провайдеру с токеном в параметрах
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("token", c.apiToken)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build trefle request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.NewExternalServiceError(serviceName, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.NewExternalServiceError(serviceName, resp.StatusCode, nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewExternalServiceError(serviceName, resp.StatusCode, err)
	}
	return nil
}
