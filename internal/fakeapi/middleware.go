package fakeapi

import (
	"net/http"
	"strings"
	"time"

	"fileparse/internal/log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const contextKeyRequestID = "request_id"

// RequestID injects an X-Request-ID header into the request and response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(contextKeyRequestID, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Logger logs each HTTP request with method, path, status, and latency.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		requestID, _ := c.Get(contextKeyRequestID)
		log.LogWithFields(
			log.F("request_id", requestID),
			log.F("method", c.Request.Method),
			log.F("path", c.Request.URL.Path),
			log.F("status", c.Writer.Status()),
			log.F("latency", time.Since(start).String()),
		).Debug("handled request")
	}
}

// APIKeyAuth accepts a key from X-API-Key or from the Authorization header,
// with or without the Bearer prefix.
func APIKeyAuth(keys map[string]struct{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("X-API-Key")
		if token == "" {
			if auth := c.GetHeader("Authorization"); auth != "" {
				parts := strings.SplitN(auth, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
					token = parts[1]
				} else {
					token = auth
				}
			}
		}

		if token == "" {
			respondDetail(c, http.StatusUnauthorized, "INVALID_API_KEY",
				"an API key is required in the X-API-Key or Authorization header")
			return
		}
		if _, ok := keys[token]; !ok {
			respondDetail(c, http.StatusUnauthorized, "INVALID_API_KEY", "the API key is not valid")
			return
		}
		c.Next()
	}
}

// respondDetail aborts with the {"detail": {...}} body the parser service uses.
func respondDetail(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"detail": gin.H{"code": code, "message": msg},
	})
}
