package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"hobbyhub/internal/store"
	"hobbyhub/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	listCacheTTL   = 1 * time.Minute
	detailCacheTTL = 5 * time.Minute
)

// abortStoreError maps the store error taxonomy onto HTTP statuses. Backend
// failures are logged and returned as opaque 500s.
func abortStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrValidation), errors.Is(err, store.ErrEmptyText):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrIdentityMissing):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrAlreadyVoted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("backend error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "backend error"})
	}
}

func listCacheKey(sort string) string {
	return "posts:list:" + sort
}

func detailCacheKey(id uint) string {
	return fmt.Sprintf("posts:detail:%d", id)
}

// invalidatePostCaches drops every cache entry a post mutation can stale.
func invalidatePostCaches(id uint) {
	cache := utils.GetCache()
	cache.Delete(detailCacheKey(id))
	cache.Delete(listCacheKey(store.SortNewest))
	cache.Delete(listCacheKey(store.SortPopular))
}
