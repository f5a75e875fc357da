package service

import (
	"context"
	"errors"
	"testing"

	"github.com/botanicbuddy/plantcare-service/internal/cache"
	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/botanicbuddy/plantcare-service/internal/integration/trefle"
	"github.com/botanicbuddy/plantcare-service/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaxonomyFixture(api *fakeTrefleAPI) (TaxonomyService, *cache.Store) {
	store := cache.New()
	svc := NewTaxonomyService(api, store, metrics.NoopAPIMetrics{}, testLogger())
	return svc, store
}

func TestTaxonomySearchCachesResponse(t *testing.T) {
	api := &fakeTrefleAPI{
		search: trefle.SearchResponse{
			Data: []trefle.Plant{{ID: 1, CommonName: "monstera"}},
		},
	}
	svc, _ := newTaxonomyFixture(api)

	first, err := svc.Search(context.Background(), "monstera", 1)
	require.NoError(t, err)
	require.Len(t, first.Data, 1)

	second, err := svc.Search(context.Background(), "monstera", 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, api.calls)
}

func TestTaxonomySearchDistinctKeys(t *testing.T) {
	api := &fakeTrefleAPI{}
	svc, _ := newTaxonomyFixture(api)

	_, err := svc.Search(context.Background(), "monstera", 1)
	require.NoError(t, err)
	_, err = svc.Search(context.Background(), "monstera", 2)
	require.NoError(t, err)
	_, err = svc.Search(context.Background(), "fern", 1)
	require.NoError(t, err)

	assert.Equal(t, 3, api.calls)
}

func TestTaxonomyErrorsNotCached(t *testing.T) {
	api := &fakeTrefleAPI{
		err: domain.NewExternalServiceError("trefle", 500, errors.New("boom")),
	}
	svc, store := newTaxonomyFixture(api)

	_, err := svc.Search(context.Background(), "monstera", 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstream))
	assert.Equal(t, 0, store.Len())

	_, err = svc.Search(context.Background(), "monstera", 1)
	require.Error(t, err)
	assert.Equal(t, 2, api.calls)
}

func TestTaxonomyGetByIDCaches(t *testing.T) {
	api := &fakeTrefleAPI{
		detail: trefle.DetailResponse{
			Data: &trefle.PlantDetail{ID: 7, CommonName: "monstera"},
		},
	}
	svc, _ := newTaxonomyFixture(api)

	first, err := svc.GetByID(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, first.Data)
	assert.Equal(t, 7, first.Data.ID)

	_, err = svc.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, api.calls)

	_, err = svc.GetByID(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, 2, api.calls)
}

func TestTaxonomyListAndCommonNameSeparateKeys(t *testing.T) {
	api := &fakeTrefleAPI{}
	svc, _ := newTaxonomyFixture(api)

	_, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	_, err = svc.ByCommonName(context.Background(), "monstera", 1)
	require.NoError(t, err)
	_, err = svc.List(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 2, api.calls)
}
