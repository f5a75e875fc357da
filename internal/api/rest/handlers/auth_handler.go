package handlers

import (
	"errors"

	"github.com/botanicbuddy/plantcare-service/internal/api/rest/middleware"
	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/botanicbuddy/plantcare-service/internal/service"
	"github.com/botanicbuddy/plantcare-service/pkg/logger"
	"github.com/botanicbuddy/plantcare-service/pkg/req"
	"github.com/botanicbuddy/plantcare-service/pkg/res"
	"github.com/gin-gonic/gin"
)

// AuthHandler обработчик аутентификации
type AuthHandler struct {
	service service.AuthService
	log     *logger.Logger
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(svc service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		service: svc,
		log:     log,
	}
}

// Register регистрирует нового пользователя
func (h *AuthHandler) Register(c *gin.Context) {
	body := req.Bind[domain.RegisterRequest](c, h.log)
	if body == nil {
		return
	}

	result, err := h.service.Register(c.Request.Context(), *body)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			res.Error(c, err, "Email is already registered")
			return
		}
		h.log.Error("Failed to register user: %v", err)
		res.Error(c, err, "")
		return
	}

	res.Created(c, result)
}

// Login аутентифицирует пользователя по email и паролю.
// Причина отказа не раскрывается.
func (h *AuthHandler) Login(c *gin.Context) {
	body := req.Bind[domain.LoginRequest](c, h.log)
	if body == nil {
		return
	}

	result, err := h.service.Login(c.Request.Context(), *body)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			res.Error(c, err, "Invalid email or password")
			return
		}
		h.log.Error("Failed to login user: %v", err)
		res.Error(c, err, "")
		return
	}

	res.OK(c, result)
}

// Token выдает демо-токен по имени пользователя
func (h *AuthHandler) Token(c *gin.Context) {
	body := req.Bind[domain.TokenRequest](c, h.log)
	if body == nil {
		return
	}

	result, err := h.service.DemoToken(c.Request.Context(), *body)
	if err != nil {
		res.Error(c, err, "Invalid API key")
		return
	}

	res.OK(c, result)
}

// Refresh выдает новый токен взамен действующего
func (h *AuthHandler) Refresh(c *gin.Context) {
	body := req.Bind[domain.RefreshTokenRequest](c, h.log)
	if body == nil {
		return
	}

	result, err := h.service.Refresh(c.Request.Context(), body.Token)
	if err != nil {
		res.Error(c, err, "Invalid or expired token")
		return
	}

	res.OK(c, result)
}

// Verify подтверждает действительность предъявленного токена
func (h *AuthHandler) Verify(c *gin.Context) {
	subject := c.GetString(middleware.ContextSubjectKey)
	res.OK(c, gin.H{"valid": true, "subject": subject})
}

// Me возвращает профиль аутентифицированного пользователя
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		res.Error(c, domain.ErrUnauthorized, "")
		return
	}

	user, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		res.Error(c, err, "User not found")
		return
	}

	res.OK(c, user)
}
