package repository

import (
	"context"
	"time"

	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/google/uuid"
)

// WeatherRepository интерфейс репозитория для работы с погодными данными
type WeatherRepository interface {
	GetByAddressAndDate(ctx context.Context, addressID uuid.UUID, date time.Time) (domain.WeatherData, error)
	Insert(ctx context.Context, w domain.WeatherData) (domain.WeatherData, error)
	ListHistory(ctx context.Context, addressID uuid.UUID, since time.Time) ([]domain.WeatherData, error)
}
