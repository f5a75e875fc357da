package repository

import (
	"context"

	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/google/uuid"
)

// UserRepository интерфейс репозитория для работы с пользователями
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
	Update(ctx context.Context, user domain.User) error
	CountPlants(ctx context.Context, userID uuid.UUID) (int, error)
}
