package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/estudiapro/demo-api/internal/storage"
)

func HealthCheck(store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.Client().Ping(c.Request.Context()).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"storage": "disconnected",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"storage": "ok",
		})
	}
}
