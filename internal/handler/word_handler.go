package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/satvocab/vocab-api/internal/catalog"
	"github.com/satvocab/vocab-api/internal/handler/helper"
)

const (
	defaultWordLimit = 100
	maxWordLimit     = 1000
)

// WordHandler отдает словарь
type WordHandler struct {
	catalog *catalog.Catalog
}

// NewWordHandler создает обработчик словаря
func NewWordHandler(c *catalog.Catalog) *WordHandler {
	return &WordHandler{catalog: c}
}

// ListWords возвращает слова каталога; q фильтрует по началу слова
func (h *WordHandler) ListWords(c *gin.Context) {
	limit, ok := helper.QueryInt(c, "limit", defaultWordLimit)
	if !ok || limit < 1 {
		badRequest(c, "limit must be a positive number")
		return
	}
	if limit > maxWordLimit {
		limit = maxWordLimit
	}

	words := h.catalog.Search(c.Query("q"), limit)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"words":   words,
		"total":   h.catalog.Len(),
	})
}

// GetWord возвращает слово по ID
func (h *WordHandler) GetWord(c *gin.Context) {
	wordID := c.MustGet("wordID").(int)

	word, ok := h.catalog.Get(wordID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Word not found", "error_type": "not_found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "word": word})
}
