package domain

import (
	"time"

	"github.com/google/uuid"
)

// PlantCareLog представляет собой запись об уходе за растением
type PlantCareLog struct {
	ID          uuid.UUID `json:"id"`
	UserPlantID uuid.UUID `json:"user_plant_id"`
	CareType    string    `json:"care_type"` // watering, fertilizing, pruning, ...
	DateTime    time.Time `json:"date_time"`
	Amount      string    `json:"amount,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreatePlantCareLogRequest представляет запрос на создание записи ухода.
// DateTime по умолчанию равно времени сервера.
type CreatePlantCareLogRequest struct {
	UserPlantID uuid.UUID  `json:"user_plant_id" binding:"required"`
	CareType    string     `json:"care_type" binding:"required,max=50"`
	DateTime    *time.Time `json:"date_time"`
	Amount      string     `json:"amount" binding:"max=50"`
	Notes       string     `json:"notes"`
}

// CareTypeStatistics статистика по одному типу ухода
type CareTypeStatistics struct {
	CareType   string    `json:"care_type"`
	Count      int       `json:"count"`
	FirstEntry time.Time `json:"first_entry"`
	LastEntry  time.Time `json:"last_entry"`
}

// CareStatistics сводная статистика ухода за растением
type CareStatistics struct {
	TotalLogs int                  `json:"total_logs"`
	CareTypes []CareTypeStatistics `json:"care_types"`
}
