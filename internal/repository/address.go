package repository

import (
	"context"

	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/google/uuid"
)

// AddressRepository интерфейс репозитория для работы с адресами
type AddressRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Address, error)
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (domain.Address, error)
	ExistsForUser(ctx context.Context, id, userID uuid.UUID) (bool, error)
	Create(ctx context.Context, a domain.Address) (domain.Address, error)
	Update(ctx context.Context, a domain.Address) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	CountPlantsUsingAddress(ctx context.Context, addressID uuid.UUID) (int, error)
}
