package middleware

import (
	"strings"

	"github.com/botanicbuddy/plantcare-service/internal/auth"
	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/botanicbuddy/plantcare-service/pkg/logger"
	"github.com/botanicbuddy/plantcare-service/pkg/res"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextUserIDKey ключ контекста gin с ID аутентифицированного пользователя
	ContextUserIDKey = "userID"

	// ContextSubjectKey ключ контекста gin с субъектом токена
	ContextSubjectKey = "subject"

	authHeaderPrefix = "Bearer "
)

// TokenValidator проверяет bearer-токен и возвращает его claims
type TokenValidator interface {
	Validate(tokenString string) (*auth.TokenClaims, error)
}

// JWTMiddleware middleware аутентификации по bearer-токену
type JWTMiddleware struct {
	validator TokenValidator
	log       *logger.Logger
}

// NewJWTMiddleware создает новый middleware аутентификации
func NewJWTMiddleware(validator TokenValidator, log *logger.Logger) *JWTMiddleware {
	return &JWTMiddleware{
		validator: validator,
		log:       log,
	}
}

// RequireAuth требует валидный bearer-токен. Субъект токена кладется
// в контекст как есть.
func (m *JWTMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.authenticate(c)
		if !ok {
			return
		}

		c.Set(ContextSubjectKey, claims.Subject)
		c.Next()
	}
}

// RequireUser требует валидный bearer-токен, субъект которого — ID
// пользователя. Для маршрутов, работающих с данными пользователя.
func (m *JWTMiddleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.authenticate(c)
		if !ok {
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			m.reject(c, "Token subject is not a user ID")
			return
		}

		c.Set(ContextSubjectKey, claims.Subject)
		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

func (m *JWTMiddleware) authenticate(c *gin.Context) (*auth.TokenClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, authHeaderPrefix) {
		m.reject(c, "Missing authorization token")
		return nil, false
	}

	tokenString := strings.TrimPrefix(authHeader, authHeaderPrefix)
	claims, err := m.validator.Validate(tokenString)
	if err != nil {
		m.reject(c, "Invalid or expired token")
		return nil, false
	}

	return claims, true
}

func (m *JWTMiddleware) reject(c *gin.Context, message string) {
	m.log.Warnw("Authentication failed", "path", c.Request.URL.Path, "reason", message)
	res.Error(c, domain.ErrUnauthorized, message)
	c.Abort()
}

// UserID извлекает ID аутентифицированного пользователя из контекста gin
func UserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	userID, ok := value.(uuid.UUID)
	return userID, ok
}
