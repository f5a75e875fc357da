package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/botanicbuddy/plantcare-service/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims claims выданного токена
type TokenClaims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// TokenService выпускает и проверяет подписанные bearer-токены
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	log      *logger.Logger

	// now переопределяется в тестах
	now func() time.Time
}

// NewTokenService создает новый TokenService
func NewTokenService(secret, issuer, audience string, ttlHours int, log *logger.Logger) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      time.Duration(ttlHours) * time.Hour,
		log:      log,
		now:      time.Now,
	}
}

// Generate выпускает подписанный токен для заданного субъекта.
// Субъект — имя пользователя (демо-выдача) или ID пользователя.
func (s *TokenService) Generate(subject, name string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := TokenClaims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	s.log.Infow("Token generated", "subject", subject)
	return signed, expiresAt, nil
}

// GenerateForUser выпускает токен, субъект которого — ID пользователя
func (s *TokenService) GenerateForUser(user domain.User) (string, time.Time, error) {
	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if name == "" {
		name = user.Email
	}
	return s.Generate(user.ID.String(), name)
}

// Validate проверяет подпись, издателя, аудиторию и срок действия токена.
// Любой отказ неразличим для вызывающего: возвращается общая ошибка
// авторизации без указания причины.
func (s *TokenService) Validate(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&TokenClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		s.log.Warnw("Token validation failed", "error", err)
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		s.log.Warnw("Token has invalid claims")
		return nil, domain.ErrUnauthorized
	}

	return claims, nil
}

// TTL возвращает срок действия выдаваемых токенов
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}
