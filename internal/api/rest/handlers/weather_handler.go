package handlers

import (
	"errors"
	"strconv"

	"github.com/botanicbuddy/plantcare-service/internal/api/rest/middleware"
	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/botanicbuddy/plantcare-service/internal/service"
	"github.com/botanicbuddy/plantcare-service/pkg/logger"
	"github.com/botanicbuddy/plantcare-service/pkg/res"
	"github.com/gin-gonic/gin"
)

// WeatherHandler обработчик погодных данных
type WeatherHandler struct {
	service service.WeatherService
	log     *logger.Logger
}

// NewWeatherHandler создает новый обработчик погодных данных
func NewWeatherHandler(svc service.WeatherService, log *logger.Logger) *WeatherHandler {
	return &WeatherHandler{
		service: svc,
		log:     log,
	}
}

// Current возвращает погоду за текущий день по адресу пользователя
func (h *WeatherHandler) Current(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		res.Error(c, domain.ErrUnauthorized, "")
		return
	}

	addressID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	data, err := h.service.Current(c.Request.Context(), addressID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			res.Error(c, err, "Address has no coordinates")
			return
		}
		if errors.Is(err, domain.ErrUpstream) {
			h.log.Error("Weather provider failure: %v", err)
			res.Error(c, err, "Weather service is unavailable")
			return
		}
		res.Error(c, err, "Address not found")
		return
	}

	res.OK(c, data)
}

// History возвращает сохраненную погоду за последние дни
func (h *WeatherHandler) History(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		res.Error(c, domain.ErrUnauthorized, "")
		return
	}

	addressID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil {
		days = 7
	}

	history, err := h.service.History(c.Request.Context(), addressID, userID, days)
	if err != nil {
		res.Error(c, err, "Address not found")
		return
	}

	res.OKList(c, history, len(history))
}
