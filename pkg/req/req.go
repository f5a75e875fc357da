package req

import (
	"errors"
	"net/http"

	"github.com/botanicbuddy/plantcare-service/pkg/logger"
	"github.com/botanicbuddy/plantcare-service/pkg/res"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Bind декодирует и валидирует JSON-тело запроса в структуру типа T.
// При ошибке сам отправляет ответ 422 в едином формате и возвращает nil.
func Bind[T any](c *gin.Context, log *logger.Logger) *T {
	var payload T
	if err := c.ShouldBindJSON(&payload); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			log.Warnw("Request body validation failed", "path", c.Request.URL.Path, "error", err)
			res.Fail(c, http.StatusUnprocessableEntity, "Invalid request data: "+fieldList(verrs))
			return nil
		}
		log.Warnw("Request body decoding failed", "path", c.Request.URL.Path, "error", err)
		res.Fail(c, http.StatusUnprocessableEntity, "Invalid request format")
		return nil
	}
	return &payload
}

// fieldList собирает перечень полей, не прошедших валидацию
func fieldList(verrs validator.ValidationErrors) string {
	out := ""
	for i, fe := range verrs {
		if i > 0 {
			out += ", "
		}
		out += fe.Field()
	}
	return out
}
