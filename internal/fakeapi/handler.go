package fakeapi

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"fileparse/internal/log"
	"fileparse/pkg/types"

	"github.com/gin-gonic/gin"
)

// Health handles GET /v1/health
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SupportedTypes handles GET /v1/supported-types
func (s *Server) SupportedTypes(c *gin.Context) {
	exts := SupportedExtensions()
	c.JSON(http.StatusOK, gin.H{
		"supported_extensions": exts,
		"total_count":          len(exts),
	})
}

// upload handles POST /v1/convert and POST /v1/ocr
func (s *Server) upload(mode types.Mode) gin.HandlerFunc {
	accepted := make(map[string]bool)
	for _, e := range mode.DefaultExtensions() {
		accepted[e] = true
	}

	return func(c *gin.Context) {
		start := time.Now()

		file, header, err := c.Request.FormFile("file")
		if err != nil {
			respondDetail(c, http.StatusUnprocessableEntity, "INVALID_FILE", "file field is required")
			return
		}
		defer func() { _ = file.Close() }()

		if strings.TrimSpace(header.Filename) == "" {
			respondDetail(c, http.StatusUnprocessableEntity, "INVALID_FILE", "file name must not be empty")
			return
		}

		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !accepted[ext] {
			c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{
				"detail": gin.H{
					"code":            "UNSUPPORTED_TYPE",
					"message":         "unsupported file type: " + ext,
					"supported_types": mode.DefaultExtensions(),
				},
			})
			return
		}

		data, err := io.ReadAll(file)
		if err != nil {
			respondDetail(c, http.StatusUnprocessableEntity, "INVALID_FILE", "could not read upload")
			return
		}

		key := cacheKey(mode, data)
		content, fromCache := s.lookup(key)
		if !fromCache {
			if s.latency > 0 {
				select {
				case <-time.After(s.latency):
				case <-c.Request.Context().Done():
					return
				}
			}
			content, err = s.parse(mode, header.Filename, data)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
					"detail": gin.H{"code": "PARSE_ERROR", "message": "file could not be parsed", "detail": err.Error()},
				})
				return
			}
			s.store(key, content)
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		log.LogWithFields(
			log.F("mode", mode.String()),
			log.F("filename", header.Filename),
			log.F("size", len(data)),
			log.F("from_cache", fromCache),
		).Debug("parsed upload")

		c.JSON(http.StatusOK, gin.H{
			"filename":          header.Filename,
			"size":              len(data),
			"content_type":      contentType,
			mode.ContentField(): content,
			"duration_ms":       time.Since(start).Milliseconds(),
			"from_cache":        fromCache,
		})
	}
}
