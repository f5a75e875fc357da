package handlers

import (
	"errors"
	"net/http"

	"github.com/botanicbuddy/plantcare-service/internal/api/rest/middleware"
	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/botanicbuddy/plantcare-service/internal/service"
	"github.com/botanicbuddy/plantcare-service/pkg/logger"
	"github.com/botanicbuddy/plantcare-service/pkg/req"
	"github.com/botanicbuddy/plantcare-service/pkg/res"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AddressHandler обработчик адресов пользователя
type AddressHandler struct {
	service service.AddressService
	log     *logger.Logger
}

// NewAddressHandler создает новый обработчик адресов
func NewAddressHandler(svc service.AddressService, log *logger.Logger) *AddressHandler {
	return &AddressHandler{
		service: svc,
		log:     log,
	}
}

// List возвращает адреса пользователя
func (h *AddressHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		res.Error(c, domain.ErrUnauthorized, "")
		return
	}

	addresses, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("Failed to list addresses: %v", err)
		res.Error(c, err, "")
		return
	}

	res.OKList(c, addresses, len(addresses))
}

// Get возвращает адрес по ID
func (h *AddressHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		res.Error(c, domain.ErrUnauthorized, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	address, err := h.service.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		res.Error(c, err, "Address not found")
		return
	}

	res.OK(c, address)
}

// Create создает новый адрес
func (h *AddressHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		res.Error(c, domain.ErrUnauthorized, "")
		return
	}

	body := req.Bind[domain.CreateAddressRequest](c, h.log)
	if body == nil {
		return
	}

	address, err := h.service.Create(c.Request.Context(), userID, *body)
	if err != nil {
		h.log.Error("Failed to create address: %v", err)
		res.Error(c, err, "")
		return
	}

	res.Created(c, address)
}

// Update частично обновляет адрес
func (h *AddressHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		res.Error(c, domain.ErrUnauthorized, "")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	body := req.Bind[domain.UpdateAddressRequest](c, h.log)
	if body == nil {
		return
	}

	address, err := h.service.Update(c.Request.Context(), id, userID, *body)
	if err != nil {
		res.Error(c, err, "")
		return
	}

	res.OK(c, address)
}

// Delete удаляет адрес, не используемый ни одним растением
func (h *AddressHandler) Delete(c *gin.Context) {
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
		res.Error(c, err, deleteAddressMessage(err))
		return
	}

	res.OKMessage(c, "Address deleted")
}

func deleteAddressMessage(err error) string {
	if errors.Is(err, domain.ErrAddressInUse) {
		return "Address is used by one or more plants"
	}
	return ""
}

// parseIDParam извлекает UUID из параметра пути
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		res.Fail(c, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}
