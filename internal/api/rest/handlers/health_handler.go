package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/botanicbuddy/plantcare-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HealthHandler обработчик проверки состояния сервиса
type HealthHandler struct {
	db  *pgxpool.Pool
	log *logger.Logger
}

// NewHealthHandler создает новый обработчик проверки состояния
func NewHealthHandler(db *pgxpool.Pool, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:  db,
		log: log,
	}
}

// Health возвращает состояние сервиса и его зависимостей
func (h *HealthHandler) Health(c *gin.Context) {
	dbStatus := "ok"
	status := http.StatusOK
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			h.log.Error("Database ping failed: %v", err)
			dbStatus = "unavailable"
			status = http.StatusServiceUnavailable
		}
	}

	c.JSON(status, gin.H{
		"status":   statusText(status),
		"database": dbStatus,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}

func statusText(status int) string {
	if status == http.StatusOK {
		return "healthy"
	}
	return "degraded"
}
