package domain

import (
	"time"

	"github.com/google/uuid"
)

// WeatherData представляет собой погодные данные по адресу за календарный день.
// Уникальна на пару (address_id, date).
type WeatherData struct {
	ID            uuid.UUID `json:"id"`
	AddressID     uuid.UUID `json:"address_id"`
	Date          time.Time `json:"date"`
	Temperature   *float64  `json:"temperature,omitempty"`
	Humidity      *int      `json:"humidity,omitempty"`
	Precipitation *float64  `json:"precipitation,omitempty"`
	Conditions    string    `json:"conditions,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
