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

// CareLogHandler обработчик журнала ухода
type CareLogHandler struct {
	service service.CareLogService
	log     *logger.Logger
}

// NewCareLogHandler создает новый обработчик журнала ухода
func NewCareLogHandler(svc service.CareLogService, log *logger.Logger) *CareLogHandler {
	return &CareLogHandler{
		service: svc,
		log:     log,
	}
}

// ListByPlant возвращает записи ухода для растения
func (h *CareLogHandler) ListByPlant(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		res.Error(c, domain.ErrUnauthorized, "")
		return
	}

	plantID, ok := parseIDParam(c, "plantId")
	if !ok {
		return
	}

	logs, err := h.service.ListByPlant(c.Request.Context(), plantID, userID)
	if err != nil {
		res.Error(c, err, "Plant not found")
		return
	}

	res.OKList(c, logs, len(logs))
}

// Get возвращает запись ухода по ID
func (h *CareLogHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		res.Error(c, domain.ErrUnauthorized, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	entry, err := h.service.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		res.Error(c, err, "Care log not found")
		return
	}

	res.OK(c, entry)
}

// Create создает запись ухода
func (h *CareLogHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		res.Error(c, domain.ErrUnauthorized, "")
		return
	}

	body := req.Bind[domain.CreatePlantCareLogRequest](c, h.log)
	if body == nil {
		return
	}

	entry, err := h.service.Create(c.Request.Context(), userID, *body)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			res.Error(c, err, "Plant does not exist or does not belong to the user")
			return
		}
		h.log.Error("Failed to create care log: %v", err)
		res.Error(c, err, "")
		return
	}

	res.Created(c, entry)
}

// Delete удаляет запись ухода
func (h *CareLogHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		res.Error(c, domain.ErrUnauthorized, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID); err != nil {
		res.Error(c, err, "Care log not found")
		return
	}

	res.OKMessage(c, "Care log deleted")
}

// Statistics возвращает сводную статистику ухода за растением
func (h *CareLogHandler) Statistics(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		res.Error(c, domain.ErrUnauthorized, "")
		return
	}

	plantID, ok := parseIDParam(c, "plantId")
	if !ok {
		return
	}

	stats, err := h.service.Statistics(c.Request.Context(), plantID, userID)
	if err != nil {
		res.Error(c, err, "Plant not found")
		return
	}

	res.OK(c, stats)
}
