package domain

import (
	"time"

	"github.com/google/uuid"
)

// Address представляет собой адрес пользователя
type Address struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"-"`
	AddressLine1 string    `json:"address_line1"`
	AddressLine2 string    `json:"address_line2,omitempty"`
	City         string    `json:"city"`
	State        string    `json:"state,omitempty"`
	Country      string    `json:"country"`
	PostalCode   string    `json:"postal_code,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	Timezone     string    `json:"timezone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

// CreateAddressRequest представляет запрос на создание адреса
type CreateAddressRequest struct {
	AddressLine1 string `json:"address_line1" binding:"required,max=255"`
	AddressLine2 string `json:"address_line2" binding:"max=255"`
	City         string `json:"city" binding:"required,max=100"`
	State        string `json:"state" binding:"max=100"`
	Country      string `json:"country" binding:"required,max=100"`
	PostalCode   string   `json:"postal_code" binding:"max=20"`
	Latitude     *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude" binding:"omitempty,longitude"`
	Timezone     string   `json:"timezone" binding:"max=50"`
}

// UpdateAddressRequest представляет частичное обновление адреса.
// Отсутствующие поля не изменяют сохраненные значения.
type UpdateAddressRequest struct {
	AddressLine1 *string `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Country      *string  `json:"country"`
	PostalCode   *string  `json:"postal_code"`
	Latitude     *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude" binding:"omitempty,longitude"`
	Timezone     *string  `json:"timezone"`
}
