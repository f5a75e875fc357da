package repository

import (
	"context"

	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/google/uuid"
)

// CareLogRepository интерфейс репозитория для работы с журналом ухода
type CareLogRepository interface {
	ListByPlant(ctx context.Context, plantID uuid.UUID) ([]domain.PlantCareLog, error)
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (domain.PlantCareLog, error)
	Create(ctx context.Context, l domain.PlantCareLog) (domain.PlantCareLog, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	Statistics(ctx context.Context, plantID uuid.UUID) (domain.CareStatistics, error)
}
