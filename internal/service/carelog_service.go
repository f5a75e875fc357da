package service

import (
	"context"
	"time"

	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/botanicbuddy/plantcare-service/internal/kafka/producer"
	"github.com/botanicbuddy/plantcare-service/internal/repository"
	"github.com/botanicbuddy/plantcare-service/pkg/logger"
	"github.com/google/uuid"
)

// CareLogService интерфейс сервиса для работы с журналом ухода
type CareLogService interface {
	ListByPlant(ctx context.Context, plantID, userID uuid.UUID) ([]domain.PlantCareLog, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (domain.PlantCareLog, error)
	Create(ctx context.Context, userID uuid.UUID, req domain.CreatePlantCareLogRequest) (domain.PlantCareLog, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	Statistics(ctx context.Context, plantID, userID uuid.UUID) (domain.CareStatistics, error)
}

type careLogService struct {
	logs   repository.CareLogRepository
	plants repository.PlantRepository
	events producer.CareProducer
	log    *logger.Logger

	// now переопределяется в тестах
	now func() time.Time
}

// NewCareLogService создает новый сервис для работы с журналом ухода
func NewCareLogService(
	logs repository.CareLogRepository,
	plants repository.PlantRepository,
	events producer.CareProducer,
	log *logger.Logger,
) CareLogService {
	return &careLogService{
		logs:   logs,
		plants: plants,
		events: events,
		log:    log,
		now:    time.Now,
	}
}

// ListByPlant возвращает записи ухода для растения пользователя.
// Чужое или несуществующее растение неразличимы для вызывающего.
func (s *careLogService) ListByPlant(ctx context.Context, plantID, userID uuid.UUID) ([]domain.PlantCareLog, error) {
	s.log.Debug("Listing care logs for plant %s of user %s", plantID, userID)

	exists, err := s.plants.ExistsForUser(ctx, plantID, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("user plant", plantID.String())
	}

	return s.logs.ListByPlant(ctx, plantID)
}

func (s *careLogService) GetByID(ctx context.Context, id, userID uuid.UUID) (domain.PlantCareLog, error) {
	s.log.Debug("Getting care log %s for user %s", id, userID)
	return s.logs.GetByIDForUser(ctx, id, userID)
}

func (s *careLogService) Create(ctx context.Context, userID uuid.UUID, req domain.CreatePlantCareLogRequest) (domain.PlantCareLog, error) {
	s.log.Debug("Creating care log for plant %s of user %s", req.UserPlantID, userID)

	exists, err := s.plants.ExistsForUser(ctx, req.UserPlantID, userID)
	if err != nil {
		return domain.PlantCareLog{}, err
	}
	if !exists {
		s.log.Warn("Plant %s does not belong to user %s", req.UserPlantID, userID)
		return domain.PlantCareLog{}, domain.ErrInvalidInput
	}

	dateTime := s.now().UTC()
	if req.DateTime != nil {
		dateTime = *req.DateTime
	}

	entry := domain.PlantCareLog{
		ID:          uuid.New(),
		UserPlantID: req.UserPlantID,
		CareType:    req.CareType,
		DateTime:    dateTime,
		Amount:      req.Amount,
		Notes:       req.Notes,
	}

	created, err := s.logs.Create(ctx, entry)
	if err != nil {
		return domain.PlantCareLog{}, err
	}

	if err := s.events.PublishCareLogged(ctx, created, userID.String()); err != nil {
		s.log.Warn("Failed to publish care logged event: %v", err)
	}

	return created, nil
}

func (s *careLogService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	s.log.Debug("Deleting care log %s for user %s", id, userID)
	return s.logs.Delete(ctx, id, userID)
}

func (s *careLogService) Statistics(ctx context.Context, plantID, userID uuid.UUID) (domain.CareStatistics, error) {
	s.log.Debug("Computing care statistics for plant %s of user %s", plantID, userID)

	exists, err := s.plants.ExistsForUser(ctx, plantID, userID)
	if err != nil {
		return domain.CareStatistics{}, err
	}
	if !exists {
		return domain.CareStatistics{}, domain.NewNotFoundError("user plant", plantID.String())
	}

	return s.logs.Statistics(ctx, plantID)
}
