package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserPlant представляет собой растение пользователя
type UserPlant struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"-"`
	AddressID      *uuid.UUID `json:"address_id,omitempty"`
	TreflePlantID  *int       `json:"trefle_plant_id,omitempty"`
	CommonName     string     `json:"common_name,omitempty"`
	ScientificName string     `json:"scientific_name,omitempty"`
	Nickname       string     `json:"nickname,omitempty"`
	DatePlanted    *time.Time `json:"date_planted,omitempty"`
	Location       string     `json:"location,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	PhotoURL       string     `json:"photo_url,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"-"`

	// Адрес вложен в ответы списков и деталей, если указан
	Address *Address `json:"address,omitempty"`
}

// CreateUserPlantRequest представляет запрос на создание растения
type CreateUserPlantRequest struct {
	AddressID      *uuid.UUID `json:"address_id"`
	TreflePlantID  *int       `json:"trefle_plant_id"`
	CommonName     string     `json:"common_name" binding:"max=255"`
	ScientificName string     `json:"scientific_name" binding:"max=255"`
	Nickname       string     `json:"nickname" binding:"max=100"`
	DatePlanted    *time.Time `json:"date_planted"`
	Location       string     `json:"location" binding:"max=255"`
	Notes          string     `json:"notes"`
}

// UpdateUserPlantRequest представляет частичное обновление растения
type UpdateUserPlantRequest struct {
	AddressID   *uuid.UUID `json:"address_id"`
	Nickname    *string    `json:"nickname"`
	DatePlanted *time.Time `json:"date_planted"`
	Location    *string    `json:"location"`
	Notes       *string    `json:"notes"`
}
