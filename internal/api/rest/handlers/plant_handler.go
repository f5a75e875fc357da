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

// PlantHandler обработчик растений пользователя
type PlantHandler struct {
	service service.PlantService
	log     *logger.Logger
}

// NewPlantHandler создает новый обработчик растений
func NewPlantHandler(svc service.PlantService, log *logger.Logger) *PlantHandler {
	return &PlantHandler{
		service: svc,
		log:     log,
	}
}

// List возвращает растения пользователя
func (h *PlantHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		res.Error(c, domain.ErrUnauthorized, "")
		return
	}

	plants, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("Failed to list plants: %v", err)
		res.Error(c, err, "")
		return
	}

	res.OKList(c, plants, len(plants))
}

// Get возвращает растение по ID
func (h *PlantHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		res.Error(c, domain.ErrUnauthorized, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	plant, err := h.service.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		res.Error(c, err, "Plant not found")
		return
	}

	res.OK(c, plant)
}

// Create создает растение с учетом лимита тарифа
func (h *PlantHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		res.Error(c, domain.ErrUnauthorized, "")
		return
	}

	body := req.Bind[domain.CreateUserPlantRequest](c, h.log)
	if body == nil {
		return
	}

	plant, err := h.service.Create(c.Request.Context(), userID, *body)
	if err != nil {
		res.Error(c, err, createPlantMessage(err))
		return
	}

	res.Created(c, plant)
}

// Update частично обновляет растение
func (h *PlantHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		res.Error(c, domain.ErrUnauthorized, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	body := req.Bind[domain.UpdateUserPlantRequest](c, h.log)
	if body == nil {
		return
	}

	plant, err := h.service.Update(c.Request.Context(), id, userID, *body)
	if err != nil {
		res.Error(c, err, createPlantMessage(err))
		return
	}

	res.OK(c, plant)
}

// Delete удаляет растение и его записи ухода
func (h *PlantHandler) Delete(c *gin.Context) {
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
		res.Error(c, err, "Plant not found")
		return
	}

	res.OKMessage(c, "Plant deleted")
}

func createPlantMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrPlantLimitReached):
		return "Plant limit reached for the current subscription tier"
	case errors.Is(err, domain.ErrInvalidInput):
		return "Address does not exist or does not belong to the user"
	default:
		return ""
	}
}
