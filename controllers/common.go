package controllers

import (
	"errors"
	"net/http"

	"exam-data-api/store"

	"github.com/gin-gonic/gin"
)

// respondStoreError maps persistence errors onto HTTP responses:
// missing documents are 404, an uninitialized store fails fast with 503,
// anything else is a 500 with the fallback message.
func respondStoreError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotInitialized):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// contextString reads a string value set by the auth middleware.
func contextString(c *gin.Context, key string) string {
	value, _ := c.Get(key)
	s, _ := value.(string)
	return s
}
