package service

import (
	"context"

	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/botanicbuddy/plantcare-service/internal/kafka/producer"
	"github.com/botanicbuddy/plantcare-service/internal/metrics"
	"github.com/botanicbuddy/plantcare-service/internal/repository"
	"github.com/botanicbuddy/plantcare-service/pkg/logger"
	"github.com/google/uuid"
)

// PlantService интерфейс сервиса для работы с растениями пользователя
type PlantService interface {
	List(ctx context.Context, userID uuid.UUID) ([]domain.UserPlant, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (domain.UserPlant, error)
	Create(ctx context.Context, userID uuid.UUID, req domain.CreateUserPlantRequest) (domain.UserPlant, error)
	Update(ctx context.Context, id, userID uuid.UUID, req domain.UpdateUserPlantRequest) (domain.UserPlant, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type plantService struct {
	plants    repository.PlantRepository
	addresses repository.AddressRepository
	users     repository.UserRepository
	events    producer.CareProducer
	metrics   metrics.APIMetrics
	log       *logger.Logger
}

// NewPlantService создает новый сервис для работы с растениями
func NewPlantService(
	plants repository.PlantRepository,
	addresses repository.AddressRepository,
	users repository.UserRepository,
	events producer.CareProducer,
	m metrics.APIMetrics,
	log *logger.Logger,
) PlantService {
	return &plantService{
		plants:    plants,
		addresses: addresses,
		users:     users,
		events:    events,
		metrics:   m,
		log:       log,
	}
}

func (s *plantService) List(ctx context.Context, userID uuid.UUID) ([]domain.UserPlant, error) {
	s.log.Debug("Listing plants for user: %s", userID)
	return s.plants.ListByUser(ctx, userID)
}

func (s *plantService) GetByID(ctx context.Context, id, userID uuid.UUID) (domain.UserPlant, error) {
	s.log.Debug("Getting plant %s for user %s", id, userID)
	return s.plants.GetByIDForUser(ctx, id, userID)
}

// Create создает растение с учетом лимита тарифа пользователя
func (s *plantService) Create(ctx context.Context, userID uuid.UUID, req domain.CreateUserPlantRequest) (domain.UserPlant, error) {
	s.log.Debug("Creating plant for user: %s", userID)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.UserPlant{}, err
	}

	count, err := s.users.CountPlants(ctx, userID)
	if err != nil {
		return domain.UserPlant{}, err
	}

	if !domain.CanAddPlant(user.SubscriptionTier, count) {
		s.log.Warn("Plant limit reached for user %s on tier %s", userID, user.SubscriptionTier)
		s.metrics.IncTierDenied(string(user.SubscriptionTier))
		return domain.UserPlant{}, domain.ErrPlantLimitReached
	}

	if err := s.validateAddress(ctx, req.AddressID, userID); err != nil {
		return domain.UserPlant{}, err
	}

	plant := domain.UserPlant{
		ID:             uuid.New(),
		UserID:         userID,
		AddressID:      req.AddressID,
		TreflePlantID:  req.TreflePlantID,
		CommonName:     req.CommonName,
		ScientificName: req.ScientificName,
		Nickname:       req.Nickname,
		DatePlanted:    req.DatePlanted,
		Location:       req.Location,
		Notes:          req.Notes,
	}

	created, err := s.plants.Create(ctx, plant)
	if err != nil {
		return domain.UserPlant{}, err
	}

	s.metrics.IncPlantCreated()
	if err := s.events.PublishPlantCreated(ctx, created); err != nil {
		s.log.Warn("Failed to publish plant created event: %v", err)
	}

	return s.plants.GetByIDForUser(ctx, created.ID, userID)
}

func (s *plantService) Update(ctx context.Context, id, userID uuid.UUID, req domain.UpdateUserPlantRequest) (domain.UserPlant, error) {
	s.log.Debug("Updating plant %s for user %s", id, userID)

	existing, err := s.plants.GetByIDForUser(ctx, id, userID)
	if err != nil {
		return domain.UserPlant{}, err
	}

	if req.AddressID != nil {
		if err := s.validateAddress(ctx, req.AddressID, userID); err != nil {
			return domain.UserPlant{}, err
		}
		existing.AddressID = req.AddressID
	}
	if req.Nickname != nil {
		existing.Nickname = *req.Nickname
	}
	if req.DatePlanted != nil {
		existing.DatePlanted = req.DatePlanted
	}
	if req.Location != nil {
		existing.Location = *req.Location
	}
	if req.Notes != nil {
		existing.Notes = *req.Notes
	}

	if err := s.plants.Update(ctx, existing); err != nil {
		return domain.UserPlant{}, err
	}

	return s.plants.GetByIDForUser(ctx, id, userID)
}

func (s *plantService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	s.log.Debug("Deleting plant %s for user %s", id, userID)

	if err := s.plants.Delete(ctx, id, userID); err != nil {
		return err
	}

	if err := s.events.PublishPlantDeleted(ctx, id.String(), userID.String()); err != nil {
		s.log.Warn("Failed to publish plant deleted event: %v", err)
	}

	return nil
}

// validateAddress проверяет, что указанный адрес принадлежит пользователю
func (s *plantService) validateAddress(ctx context.Context, addressID *uuid.UUID, userID uuid.UUID) error {
	if addressID == nil {
		return nil
	}

	exists, err := s.addresses.ExistsForUser(ctx, *addressID, userID)
	if err != nil {
		return err
	}
	if !exists {
		s.log.Warn("Address %s does not belong to user %s", *addressID, userID)
		return domain.ErrInvalidInput
	}

	return nil
}
