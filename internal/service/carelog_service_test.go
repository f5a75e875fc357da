package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCareLogFixture() (*careLogService, *fakeCareLogRepo, *fakePlantRepo, *recordingProducer, uuid.UUID, uuid.UUID) {
	logs := newFakeCareLogRepo()
	plants := newFakePlantRepo()
	events := &recordingProducer{}

	userID := uuid.New()
	plantID := uuid.New()
	plants.plants[plantID] = domain.UserPlant{ID: plantID, UserID: userID}

	svc := NewCareLogService(logs, plants, events, testLogger()).(*careLogService)
	return svc, logs, plants, events, userID, plantID
}

func TestCareLogCreate(t *testing.T) {
	svc, _, _, events, userID, plantID := newCareLogFixture()

	when := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	entry, err := svc.Create(context.Background(), userID, domain.CreatePlantCareLogRequest{
		UserPlantID: plantID,
		CareType:    "watering",
		DateTime:    &when,
		Amount:      "250ml",
	})
	require.NoError(t, err)
	assert.Equal(t, "watering", entry.CareType)
	assert.Equal(t, when, entry.DateTime)
	assert.Equal(t, 1, events.logged)
}

func TestCareLogCreateDefaultsDateTime(t *testing.T) {
	svc, _, _, _, userID, plantID := newCareLogFixture()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	entry, err := svc.Create(context.Background(), userID, domain.CreatePlantCareLogRequest{
		UserPlantID: plantID,
		CareType:    "fertilizing",
	})
	require.NoError(t, err)
	assert.Equal(t, now, entry.DateTime)
}

func TestCareLogCreateForeignPlant(t *testing.T) {
	svc, _, _, events, userID, _ := newCareLogFixture()

	_, err := svc.Create(context.Background(), userID, domain.CreatePlantCareLogRequest{
		UserPlantID: uuid.New(),
		CareType:    "watering",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, 0, events.logged)
}

func TestCareLogListForeignPlant(t *testing.T) {
	svc, _, plants, _, userID, _ := newCareLogFixture()

	foreign := uuid.New()
	plants.plants[foreign] = domain.UserPlant{ID: foreign, UserID: uuid.New()}

	_, err := svc.ListByPlant(context.Background(), foreign, userID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCareLogList(t *testing.T) {
	svc, logs, _, _, userID, plantID := newCareLogFixture()

	for i := 0; i < 3; i++ {
		id := uuid.New()
		logs.logs[id] = domain.PlantCareLog{ID: id, UserPlantID: plantID, CareType: "watering"}
	}

	entries, err := svc.ListByPlant(context.Background(), plantID, userID)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestCareLogStatistics(t *testing.T) {
	svc, logs, _, _, userID, plantID := newCareLogFixture()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		id := uuid.New()
		logs.logs[id] = domain.PlantCareLog{
			ID:          id,
			UserPlantID: plantID,
			CareType:    "watering",
			DateTime:    base.AddDate(0, 0, i),
		}
	}
	pruneID := uuid.New()
	logs.logs[pruneID] = domain.PlantCareLog{
		ID:          pruneID,
		UserPlantID: plantID,
		CareType:    "pruning",
		DateTime:    base,
	}

	stats, err := svc.Statistics(context.Background(), plantID, userID)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalLogs)
	assert.Len(t, stats.CareTypes, 2)
}

func TestCareLogStatisticsForeignPlant(t *testing.T) {
	svc, _, _, _, userID, _ := newCareLogFixture()

	_, err := svc.Statistics(context.Background(), uuid.New(), userID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
