package service

import (
	"context"
	"errors"
	"time"

	"github.com/botanicbuddy/plantcare-service/internal/auth"
	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/botanicbuddy/plantcare-service/internal/repository"
	"github.com/botanicbuddy/plantcare-service/pkg/logger"
	"github.com/google/uuid"
)

// TokenResult результат выдачи токена доступа
type TokenResult struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	User      *domain.UserDTO `json:"user,omitempty"`
}

// AuthService интерфейс сервиса аутентификации
type AuthService interface {
	Register(ctx context.Context, req domain.RegisterRequest) (TokenResult, error)
	Login(ctx context.Context, req domain.LoginRequest) (TokenResult, error)
	DemoToken(ctx context.Context, req domain.TokenRequest) (TokenResult, error)
	Refresh(ctx context.Context, tokenString string) (TokenResult, error)
	Verify(ctx context.Context, tokenString string) (*auth.TokenClaims, error)
	Me(ctx context.Context, userID uuid.UUID) (domain.UserDTO, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
	apiKey string
	log    *logger.Logger
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(users repository.UserRepository, tokens *auth.TokenService, apiKey string, log *logger.Logger) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		apiKey: apiKey,
		log:    log,
	}
}

func (s *authService) Register(ctx context.Context, req domain.RegisterRequest) (TokenResult, error) {
	s.log.Debug("Registering user with email: %s", req.Email)

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password: %v", err)
		return TokenResult{}, domain.ErrInternal
	}

	user := domain.User{
		ID:               uuid.New(),
		Email:            req.Email,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		PasswordHash:     hash,
		SubscriptionTier: domain.TierFree,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return TokenResult{}, err
	}

	token, expiresAt, err := s.tokens.GenerateForUser(created)
	if err != nil {
		s.log.Error("Failed to generate token: %v", err)
		return TokenResult{}, domain.ErrInternal
	}

	dto := created.DTO()
	return TokenResult{Token: token, ExpiresAt: expiresAt, User: &dto}, nil
}

func (s *authService) Login(ctx context.Context, req domain.LoginRequest) (TokenResult, error) {
	s.log.Debug("Login attempt for email: %s", req.Email)

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return TokenResult{}, domain.ErrUnauthorized
		}
		return TokenResult{}, err
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		s.log.Warn("Invalid password for email: %s", req.Email)
		return TokenResult{}, domain.ErrUnauthorized
	}

	token, expiresAt, err := s.tokens.GenerateForUser(user)
	if err != nil {
		s.log.Error("Failed to generate token: %v", err)
		return TokenResult{}, domain.ErrInternal
	}

	dto := user.DTO()
	return TokenResult{Token: token, ExpiresAt: expiresAt, User: &dto}, nil
}

// DemoToken выдает токен по имени пользователя без проверки пароля.
// API-ключ проверяется только если он передан в запросе.
func (s *authService) DemoToken(ctx context.Context, req domain.TokenRequest) (TokenResult, error) {
	s.log.Debug("Issuing demo token for username: %s", req.Username)

	if req.APIKey != "" && req.APIKey != s.apiKey {
		s.log.Warn("Invalid API key supplied for username: %s", req.Username)
		return TokenResult{}, domain.ErrUnauthorized
	}

	token, expiresAt, err := s.tokens.Generate(req.Username, req.Username)
	if err != nil {
		s.log.Error("Failed to generate token: %v", err)
		return TokenResult{}, domain.ErrInternal
	}

	return TokenResult{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *authService) Refresh(ctx context.Context, tokenString string) (TokenResult, error) {
	claims, err := s.tokens.Validate(tokenString)
	if err != nil {
		return TokenResult{}, err
	}

	token, expiresAt, err := s.tokens.Generate(claims.Subject, claims.Name)
	if err != nil {
		s.log.Error("Failed to generate refreshed token: %v", err)
		return TokenResult{}, domain.ErrInternal
	}

	return TokenResult{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *authService) Verify(ctx context.Context, tokenString string) (*auth.TokenClaims, error) {
	return s.tokens.Validate(tokenString)
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (domain.UserDTO, error) {
	s.log.Debug("Getting profile for user: %s", userID)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.UserDTO{}, err
	}

	return user.DTO(), nil
}
