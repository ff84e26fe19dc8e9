package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExtractIntParam создает middleware для извлечения и валидации положительного числового параметра URL.
// paramName - имя параметра в URL (например, "id").
// contextKey - ключ, под которым значение будет сохранено в контексте Gin.
func ExtractIntParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param(paramName))
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":      fmt.Sprintf("Invalid %s", paramName),
				"error_type": "validation_error",
			})
			return
		}
		c.Set(contextKey, id)
		c.Next()
	}
}

// ExtractUUIDParam проверяет, что параметр URL является UUID
func ExtractUUIDParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param(paramName)
		if _, err := uuid.Parse(raw); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":      fmt.Sprintf("Invalid %s", paramName),
				"error_type": "validation_error",
			})
			return
		}
		c.Set(contextKey, raw)
		c.Next()
	}
}
