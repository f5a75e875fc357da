package handlers

import (
	"net/http"
	"strconv"

	"github.com/botanicbuddy/plantcare-service/internal/service"
	"github.com/botanicbuddy/plantcare-service/pkg/logger"
	"github.com/botanicbuddy/plantcare-service/pkg/res"
	"github.com/gin-gonic/gin"
)

// TaxonomyHandler обработчик справочника растений
type TaxonomyHandler struct {
	service service.TaxonomyService
	log     *logger.Logger
}

// NewTaxonomyHandler создает новый обработчик справочника растений
func NewTaxonomyHandler(svc service.TaxonomyService, log *logger.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{
		service: svc,
		log:     log,
	}
}

// List возвращает страницу справочника растений
func (h *TaxonomyHandler) List(c *gin.Context) {
	page := pageParam(c)

	resp, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		h.log.Error("Failed to list taxonomy plants: %v", err)
		res.Error(c, err, "Plant reference service is unavailable")
		return
	}

	count := len(resp.Data)
	res.JSON(c, http.StatusOK, res.Envelope{
		Success: true,
		Data:    resp.Data,
		Links:   resp.Links,
		Meta:    resp.Meta,
		Count:   &count,
	})
}

// Search ищет растения в справочнике по строке запроса
func (h *TaxonomyHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		res.Fail(c, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}
	page := pageParam(c)

	resp, err := h.service.Search(c.Request.Context(), query, page)
	if err != nil {
		h.log.Error("Failed to search taxonomy plants: %v", err)
		res.Error(c, err, "Plant reference service is unavailable")
		return
	}

	count := len(resp.Data)
	res.JSON(c, http.StatusOK, res.Envelope{
		Success: true,
		Data:    resp.Data,
		Links:   resp.Links,
		Meta:    resp.Meta,
		Count:   &count,
		Query:   query,
	})
}

// Get возвращает детали растения справочника по его числовому ID
func (h *TaxonomyHandler) Get(c *gin.Context) {
	plantID, err := strconv.Atoi(c.Param("id"))
	if err != nil || plantID < 1 {
		res.Fail(c, http.StatusBadRequest, "Invalid plant ID format")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), plantID)
	if err != nil {
		h.log.Error("Failed to get taxonomy plant %d: %v", plantID, err)
		res.Error(c, err, "Plant reference service is unavailable")
		return
	}

	res.OK(c, resp.Data)
}

// ByCommonName ищет растения справочника по обиходному названию
func (h *TaxonomyHandler) ByCommonName(c *gin.Context) {
	name := c.Param("name")
	page := pageParam(c)

	resp, err := h.service.ByCommonName(c.Request.Context(), name, page)
	if err != nil {
		h.log.Error("Failed to get taxonomy plants by common name: %v", err)
		res.Error(c, err, "Plant reference service is unavailable")
		return
	}

	count := len(resp.Data)
	res.JSON(c, http.StatusOK, res.Envelope{
		Success: true,
		Data:    resp.Data,
		Links:   resp.Links,
		Meta:    resp.Meta,
		Count:   &count,
		Filter:  gin.H{"common_name": name},
	})
}

// pageParam извлекает номер страницы из query-параметра
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
