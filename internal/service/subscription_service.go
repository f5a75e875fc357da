package service

import (
	"context"

	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/botanicbuddy/plantcare-service/internal/repository"
	"github.com/botanicbuddy/plantcare-service/pkg/logger"
	"github.com/google/uuid"
)

// SubscriptionService интерфейс сервиса для работы с подписками
type SubscriptionService interface {
	List(ctx context.Context, userID uuid.UUID) ([]domain.Subscription, error)
}

type subscriptionService struct {
	repo repository.SubscriptionRepository
	log  *logger.Logger
}

// NewSubscriptionService создает новый сервис для работы с подписками
func NewSubscriptionService(repo repository.SubscriptionRepository, log *logger.Logger) SubscriptionService {
	return &subscriptionService{
		repo: repo,
		log:  log,
	}
}

func (s *subscriptionService) List(ctx context.Context, userID uuid.UUID) ([]domain.Subscription, error) {
	s.log.Debug("Listing subscriptions for user: %s", userID)
	return s.repo.ListByUser(ctx, userID)
}
