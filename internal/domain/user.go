package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionTier тариф пользователя
type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "Free"
	TierBasic   SubscriptionTier = "Basic"
	TierPremium SubscriptionTier = "Premium"
)

// User представляет собой модель пользователя
type User struct {
	ID               uuid.UUID        `json:"id"`
	Email            string           `json:"email"`
	PasswordHash     string           `json:"-"`
	FirstName        string           `json:"first_name,omitempty"`
	LastName         string           `json:"last_name,omitempty"`
	SubscriptionTier SubscriptionTier `json:"subscription_tier"`
	StripeCustomerID string           `json:"stripe_customer_id,omitempty"`
	EmailVerified    bool             `json:"email_verified"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// UserDTO публичное представление пользователя
type UserDTO struct {
	ID               uuid.UUID        `json:"id"`
	Email            string           `json:"email"`
	FirstName        string           `json:"first_name,omitempty"`
	LastName         string           `json:"last_name,omitempty"`
	SubscriptionTier SubscriptionTier `json:"subscription_tier"`
	EmailVerified    bool             `json:"email_verified"`
	CreatedAt        time.Time        `json:"created_at"`
}

// DTO возвращает публичное представление пользователя
func (u *User) DTO() UserDTO {
	return UserDTO{
		ID:               u.ID,
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		SubscriptionTier: u.SubscriptionTier,
		EmailVerified:    u.EmailVerified,
		CreatedAt:        u.CreatedAt,
	}
}

// RegisterRequest представляет запрос на регистрацию
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginRequest представляет запрос на вход
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenRequest представляет запрос демо-выдачи токена
type TokenRequest struct {
	Username string `json:"username" binding:"required"`
	APIKey   string `json:"api_key"`
}

// RefreshTokenRequest представляет запрос обновления токена
type RefreshTokenRequest struct {
	Token string `json:"token" binding:"required"`
}
