package trefle

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/botanicbuddy/plantcare-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{APIToken: "test-token", BaseURL: srv.URL}, logger.New(logger.ERROR))
}

func TestSearchPlants(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/plants/search", r.URL.Path)
		assert.Equal(t, "monstera", r.URL.Query().Get("q"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "test-token", r.URL.Query().Get("token"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":1,"common_name":"monstera"}],"meta":{"total":1}}`))
	})

	resp, err := client.SearchPlants(context.Background(), "monstera", 2)
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "monstera", resp.Data[0].CommonName)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Total)
}

func TestGetPlantByID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/plants/42", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"id":42,"scientific_name":"Monstera deliciosa"}}`))
	})

	resp, err := client.GetPlantByID(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, resp.Data)
	assert.Equal(t, 42, resp.Data.ID)
	assert.Equal(t, "Monstera deliciosa", resp.Data.ScientificName)
}

func TestGetPlantsByCommonNameFilter(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/plants", r.URL.Path)
		assert.Equal(t, "fern", r.URL.Query().Get("filter[common_name]"))
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	_, err := client.GetPlantsByCommonName(context.Background(), "fern", 1)
	require.NoError(t, err)
}

func TestClientUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.ListPlants(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstream))

	var extErr *domain.ExternalServiceError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, http.StatusTooManyRequests, extErr.StatusCode)
}

func TestClientMalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":`))
	})

	_, err := client.ListPlants(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstream))
}
