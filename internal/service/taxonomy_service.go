package service

import (
	"context"
	"fmt"
	"time"

	"github.com/botanicbuddy/plantcare-service/internal/cache"
	"github.com/botanicbuddy/plantcare-service/internal/integration/trefle"
	"github.com/botanicbuddy/plantcare-service/internal/metrics"
	"github.com/botanicbuddy/plantcare-service/pkg/logger"
)

// taxonomyCacheTTL срок жизни кэшированных ответов справочника
const taxonomyCacheTTL = 24 * time.Hour

// TrefleAPI клиент справочника таксономии растений
type TrefleAPI interface {
	ListPlants(ctx context.Context, page int) (trefle.SearchResponse, error)
	SearchPlants(ctx context.Context, query string, page int) (trefle.SearchResponse, error)
	GetPlantByID(ctx context.Context, plantID int) (trefle.DetailResponse, error)
	GetPlantsByCommonName(ctx context.Context, commonName string, page int) (trefle.SearchResponse, error)
}

// TaxonomyService интерфейс сервиса справочника растений
type TaxonomyService interface {
	List(ctx context.Context, page int) (trefle.SearchResponse, error)
	Search(ctx context.Context, query string, page int) (trefle.SearchResponse, error)
	GetByID(ctx context.Context, plantID int) (trefle.DetailResponse, error)
	ByCommonName(ctx context.Context, commonName string, page int) (trefle.SearchResponse, error)
}

type taxonomyService struct {
	client  TrefleAPI
	store   *cache.Store
	metrics metrics.APIMetrics
	log     *logger.Logger
}

// NewTaxonomyService создает новый сервис справочника растений.
// Успешные ответы справочника кэшируются, ошибки не кэшируются.
func NewTaxonomyService(client TrefleAPI, store *cache.Store, m metrics.APIMetrics, log *logger.Logger) TaxonomyService {
	return &taxonomyService{
		client:  client,
		store:   store,
		metrics: m,
		log:     log,
	}
}

func (s *taxonomyService) List(ctx context.Context, page int) (trefle.SearchResponse, error) {
	key := fmt.Sprintf("trefle_list_%d", page)
	return s.cachedSearch(ctx, key, func() (trefle.SearchResponse, error) {
		return s.client.ListPlants(ctx, page)
	})
}

func (s *taxonomyService) Search(ctx context.Context, query string, page int) (trefle.SearchResponse, error) {
	key := fmt.Sprintf("trefle_search_%s_%d", query, page)
	return s.cachedSearch(ctx, key, func() (trefle.SearchResponse, error) {
		return s.client.SearchPlants(ctx, query, page)
	})
}

func (s *taxonomyService) GetByID(ctx context.Context, plantID int) (trefle.DetailResponse, error) {
	key := fmt.Sprintf("trefle_plant_%d", plantID)

	if cached, ok := s.store.Get(key); ok {
		if resp, ok := cached.(trefle.DetailResponse); ok {
			s.metrics.IncCacheHit("trefle")
			return resp, nil
		}
	}
	s.metrics.IncCacheMiss("trefle")

	s.metrics.IncUpstreamCall("trefle")
	resp, err := s.client.GetPlantByID(ctx, plantID)
	if err != nil {
		s.metrics.IncUpstreamError("trefle")
		return trefle.DetailResponse{}, err
	}

	s.store.Set(key, resp, taxonomyCacheTTL)
	return resp, nil
}

func (s *taxonomyService) ByCommonName(ctx context.Context, commonName string, page int) (trefle.SearchResponse, error) {
	key := fmt.Sprintf("trefle_common_%s_%d", commonName, page)
	return s.cachedSearch(ctx, key, func() (trefle.SearchResponse, error) {
		return s.client.GetPlantsByCommonName(ctx, commonName, page)
	})
}

func (s *taxonomyService) cachedSearch(ctx context.Context, key string, fetch func() (trefle.SearchResponse, error)) (trefle.SearchResponse, error) {
	if cached, ok := s.store.Get(key); ok {
		if resp, ok := cached.(trefle.SearchResponse); ok {
			s.metrics.IncCacheHit("trefle")
			return resp, nil
		}
	}
	s.metrics.IncCacheMiss("trefle")

	s.metrics.IncUpstreamCall("trefle")
	resp, err := fetch()
	if err != nil {
		s.metrics.IncUpstreamError("trefle")
		s.log.Warn("Taxonomy lookup failed for key %s: %v", key, err)
		return trefle.SearchResponse{}, err
	}

	s.store.Set(key, resp, taxonomyCacheTTL)
	return resp, nil
}
