package service

import (
	"context"
	"errors"
	"testing"

	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/botanicbuddy/plantcare-service/internal/metrics"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlantServiceFixture() (PlantService, *fakeUserRepo, *fakeAddressRepo, *fakePlantRepo, *recordingProducer, uuid.UUID) {
	users := newFakeUserRepo()
	addresses := newFakeAddressRepo()
	plants := newFakePlantRepo()
	events := &recordingProducer{}

	userID := uuid.New()
	users.users[userID] = domain.User{
		ID:               userID,
		Email:            "gardener@example.com",
		SubscriptionTier: domain.TierFree,
	}

	svc := NewPlantService(plants, addresses, users, events, metrics.NoopAPIMetrics{}, testLogger())
	return svc, users, addresses, plants, events, userID
}

func TestPlantCreate(t *testing.T) {
	svc, _, _, _, events, userID := newPlantServiceFixture()

	created, err := svc.Create(context.Background(), userID, domain.CreateUserPlantRequest{
		CommonName: "Monstera",
		Nickname:   "Monty",
	})
	require.NoError(t, err)
	assert.Equal(t, "Monstera", created.CommonName)
	assert.Equal(t, "Monty", created.Nickname)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, 1, events.created)
}

func TestPlantCreateTierLimit(t *testing.T) {
	svc, users, _, _, events, userID := newPlantServiceFixture()
	users.plantCount = domain.FreePlantLimit

	_, err := svc.Create(context.Background(), userID, domain.CreateUserPlantRequest{CommonName: "Fern"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPlantLimitReached))
	assert.Equal(t, 0, events.created)
}

func TestPlantCreatePremiumUnlimited(t *testing.T) {
	svc, users, _, _, _, userID := newPlantServiceFixture()
	u := users.users[userID]
	u.SubscriptionTier = domain.TierPremium
	users.users[userID] = u
	users.plantCount = 1000

	_, err := svc.Create(context.Background(), userID, domain.CreateUserPlantRequest{CommonName: "Fern"})
	assert.NoError(t, err)
}

func TestPlantCreateForeignAddressRejected(t *testing.T) {
	svc, _, addresses, _, _, userID := newPlantServiceFixture()

	otherAddress := uuid.New()
	addresses.addresses[otherAddress] = domain.Address{ID: otherAddress, UserID: uuid.New()}

	_, err := svc.Create(context.Background(), userID, domain.CreateUserPlantRequest{
		CommonName: "Fern",
		AddressID:  &otherAddress,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestPlantCreateOwnAddress(t *testing.T) {
	svc, _, addresses, _, _, userID := newPlantServiceFixture()

	addressID := uuid.New()
	addresses.addresses[addressID] = domain.Address{ID: addressID, UserID: userID}

	created, err := svc.Create(context.Background(), userID, domain.CreateUserPlantRequest{
		CommonName: "Fern",
		AddressID:  &addressID,
	})
	require.NoError(t, err)
	require.NotNil(t, created.AddressID)
	assert.Equal(t, addressID, *created.AddressID)
}

func TestPlantGetCrossOwner(t *testing.T) {
	svc, _, _, plants, _, userID := newPlantServiceFixture()

	foreign := uuid.New()
	plants.plants[foreign] = domain.UserPlant{ID: foreign, UserID: uuid.New()}

	_, err := svc.GetByID(context.Background(), foreign, userID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestPlantPartialUpdate(t *testing.T) {
	svc, _, _, plants, _, userID := newPlantServiceFixture()

	plantID := uuid.New()
	plants.plants[plantID] = domain.UserPlant{
		ID:       plantID,
		UserID:   userID,
		Nickname: "Old name",
		Location: "Kitchen",
		Notes:    "Water weekly",
	}

	newNickname := "New name"
	updated, err := svc.Update(context.Background(), plantID, userID, domain.UpdateUserPlantRequest{
		Nickname: &newNickname,
	})
	require.NoError(t, err)
	assert.Equal(t, "New name", updated.Nickname)
	assert.Equal(t, "Kitchen", updated.Location)
	assert.Equal(t, "Water weekly", updated.Notes)
}

func TestPlantUpdateClearsFieldWithEmptyString(t *testing.T) {
	svc, _, _, plants, _, userID := newPlantServiceFixture()

	plantID := uuid.New()
	plants.plants[plantID] = domain.UserPlant{ID: plantID, UserID: userID, Notes: "Water weekly"}

	empty := ""
	updated, err := svc.Update(context.Background(), plantID, userID, domain.UpdateUserPlantRequest{
		Notes: &empty,
	})
	require.NoError(t, err)
	assert.Empty(t, updated.Notes)
}

func TestPlantDeletePublishesEvent(t *testing.T) {
	svc, _, _, plants, events, userID := newPlantServiceFixture()

	plantID := uuid.New()
	plants.plants[plantID] = domain.UserPlant{ID: plantID, UserID: userID}

	require.NoError(t, svc.Delete(context.Background(), plantID, userID))
	assert.Equal(t, 1, events.deleted)
	assert.Empty(t, plants.plants)
}

func TestPlantDeleteCrossOwner(t *testing.T) {
	svc, _, _, plants, events, userID := newPlantServiceFixture()

	foreign := uuid.New()
	plants.plants[foreign] = domain.UserPlant{ID: foreign, UserID: uuid.New()}

	err := svc.Delete(context.Background(), foreign, userID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, 0, events.deleted)
}
