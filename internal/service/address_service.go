package service

import (
	"context"

	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/botanicbuddy/plantcare-service/internal/repository"
	"github.com/botanicbuddy/plantcare-service/pkg/logger"
	"github.com/google/uuid"
)

// AddressService интерфейс сервиса для работы с адресами пользователя
type AddressService interface {
	List(ctx context.Context, userID uuid.UUID) ([]domain.Address, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (domain.Address, error)
	Create(ctx context.Context, userID uuid.UUID, req domain.CreateAddressRequest) (domain.Address, error)
	Update(ctx context.Context, id, userID uuid.UUID, req domain.UpdateAddressRequest) (domain.Address, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type addressService struct {
	repo repository.AddressRepository
	log  *logger.Logger
}

// NewAddressService создает новый сервис для работы с адресами
func NewAddressService(repo repository.AddressRepository, log *logger.Logger) AddressService {
	return &addressService{
		repo: repo,
		log:  log,
	}
}

func (s *addressService) List(ctx context.Context, userID uuid.UUID) ([]domain.Address, error) {
	s.log.Debug("Listing addresses for user: %s", userID)
	return s.repo.ListByUser(ctx, userID)
}

func (s *addressService) GetByID(ctx context.Context, id, userID uuid.UUID) (domain.Address, error) {
	s.log.Debug("Getting address %s for user %s", id, userID)
	return s.repo.GetByIDForUser(ctx, id, userID)
}

func (s *addressService) Create(ctx context.Context, userID uuid.UUID, req domain.CreateAddressRequest) (domain.Address, error) {
	s.log.Debug("Creating address for user: %s", userID)

	address := domain.Address{
		ID:           uuid.New(),
		UserID:       userID,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		Country:      req.Country,
		PostalCode:   req.PostalCode,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Timezone:     req.Timezone,
	}

	return s.repo.Create(ctx, address)
}

func (s *addressService) Update(ctx context.Context, id, userID uuid.UUID, req domain.UpdateAddressRequest) (domain.Address, error) {
	s.log.Debug("Updating address %s for user %s", id, userID)

	existing, err := s.repo.GetByIDForUser(ctx, id, userID)
	if err != nil {
		return domain.Address{}, err
	}

	if req.AddressLine1 != nil {
		existing.AddressLine1 = *req.AddressLine1
	}
	if req.AddressLine2 != nil {
		existing.AddressLine2 = *req.AddressLine2
	}
	if req.City != nil {
		existing.City = *req.City
	}
	if req.State != nil {
		existing.State = *req.State
	}
	if req.Country != nil {
		existing.Country = *req.Country
	}
	if req.PostalCode != nil {
		existing.PostalCode = *req.PostalCode
	}
	if req.Latitude != nil {
		existing.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		existing.Longitude = req.Longitude
	}
	if req.Timezone != nil {
		existing.Timezone = *req.Timezone
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return domain.Address{}, err
	}

	return existing, nil
}

// Delete удаляет адрес пользователя. Адрес, на который ссылается хотя бы
// одно растение, удалить нельзя.
func (s *addressService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	s.log.Debug("Deleting address %s for user %s", id, userID)

	if _, err := s.repo.GetByIDForUser(ctx, id, userID); err != nil {
		return err
	}

	inUse, err := s.repo.CountPlantsUsingAddress(ctx, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		s.log.Warn("Address %s is referenced by %d plants", id, inUse)
		return domain.ErrAddressInUse
	}

	return s.repo.Delete(ctx, id, userID)
}
