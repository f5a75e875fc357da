package res

import (
	"errors"
	"net/http"

	"github.com/botanicbuddy/plantcare-service/internal/domain"
	"github.com/gin-gonic/gin"
)

// Envelope представляет единый формат JSON-ответа API.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Meta    any    `json:"meta,omitempty"`
	Links   any    `json:"links,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Query   string `json:"query,omitempty"`
	Filter  any    `json:"filter,omitempty"`
}

// OK отправляет успешный ответ с данными.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// OKMessage отправляет успешный ответ только с сообщением.
func OKMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

// OKList отправляет успешный ответ со списком и количеством элементов.
func OKList(c *gin.Context, data any, count int) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Count: &count})
}

// Created отправляет ответ о созданном ресурсе.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// JSON отправляет произвольный envelope с заданным статусом.
func JSON(c *gin.Context, status int, env Envelope) {
	c.JSON(status, env)
}

// Fail отправляет ответ ошибки с заданным статусом.
func Fail(c *gin.Context, status int, errMsg string) {
	c.JSON(status, Envelope{Success: false, Error: errMsg})
}

// Error отправляет ответ ошибки, статус которого выводится из вида ошибки.
// Детали внутренних ошибок наружу не протекают.
func Error(c *gin.Context, err error, publicMsg string) {
	status := StatusForError(err)
	msg := publicMsg
	if msg == "" {
		msg = genericMessage(status)
	}
	c.JSON(status, Envelope{Success: false, Error: msg})
}

// StatusForError сопоставляет вид ошибки HTTP-статусу. Единая точка
// сопоставления для всех обработчиков.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrPlantLimitReached):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAddressInUse):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicate):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// genericMessage возвращает обобщенное сообщение для статуса
func genericMessage(status int) string {
	switch status {
	case http.StatusNotFound:
		return "Not found"
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusBadRequest:
		return "Invalid request"
	case http.StatusConflict:
		return "Conflict"
	case http.StatusBadGateway:
		return "Upstream service failure"
	default:
		return "Internal server error"
	}
}
