package repository

import (
	"context"

	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/google/uuid"
)

// PlantRepository интерфейс репозитория для работы с растениями пользователей
type PlantRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.UserPlant, error)
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (domain.UserPlant, error)
	ExistsForUser(ctx context.Context, id, userID uuid.UUID) (bool, error)
	Create(ctx context.Context, p domain.UserPlant) (domain.UserPlant, error)
	Update(ctx context.Context, p domain.UserPlant) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
