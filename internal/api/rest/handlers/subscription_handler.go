package handlers

import (
	"github.com/botanicbuddy/plantcare-service/internal/api/rest/middleware"
	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/botanicbuddy/plantcare-service/internal/service"
	"github.com/botanicbuddy/plantcare-service/pkg/logger"
	"github.com/botanicbuddy/plantcare-service/pkg/res"
	"github.com/gin-gonic/gin"
)

// SubscriptionHandler обработчик подписок пользователя
type SubscriptionHandler struct {
	service service.SubscriptionService
	log     *logger.Logger
}

// NewSubscriptionHandler создает новый обработчик подписок
func NewSubscriptionHandler(svc service.SubscriptionService, log *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		service: svc,
		log:     log,
	}
}

// List возвращает подписки пользователя
func (h *SubscriptionHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		res.Error(c, domain.ErrUnauthorized, "")
		return
	}

	subscriptions, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("Failed to list subscriptions: %v", err)
		res.Error(c, err, "")
		return
	}

	res.OKList(c, subscriptions, len(subscriptions))
}
