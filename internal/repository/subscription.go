package repository

import (
	"context"

	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/google/uuid"
)

// SubscriptionRepository интерфейс репозитория для работы с подписками
type SubscriptionRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Subscription, error)
}
