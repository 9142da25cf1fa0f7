package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/estudiapro/demo-api/internal/blob"
	"github.com/estudiapro/demo-api/internal/engine"
)

// Proxy adapts an HTTP request into an engine dispatch. Every API route
// shares this handler; the engine's own route table decides what runs.
func Proxy(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := strings.TrimPrefix(c.Request.URL.Path, "/api")
		if !strings.HasSuffix(path, "/") {
			path += "/"
		}

		payload := extractPayload(c)
		out, err := eng.Handle(c.Request.Context(), path, c.Request.Method, payload)
		if err != nil {
			status, code := classify(err)
			c.JSON(status, gin.H{
				"success": false,
				"error": gin.H{
					"code":    code,
					"message": err.Error(),
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    out,
		})
	}
}

func extractPayload(c *gin.Context) any {
	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if form, err := c.MultipartForm(); err == nil {
			return form
		}
		return nil
	}

	if c.Request.Method == http.MethodGet {
		if q := c.Request.URL.Query(); len(q) > 0 {
			return url.Values(q)
		}
		return nil
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil
	}
	return body
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, engine.ErrSessionExpired):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, engine.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, engine.ErrExamNotFound),
		errors.Is(err, engine.ErrTopicNotFound),
		errors.Is(err, engine.ErrPostNotFound),
		errors.Is(err, engine.ErrResourceNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, blob.ErrUnavailable):
		return http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
