// Package fakeapi is an in-process stand-in for the file parser service. It
// serves the convert, OCR and supported-types endpoints with the same status
// codes and response shapes as the real backend, so the client can be tested
// and developed without one.
package fakeapi

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"fileparse/internal/log"
	"fileparse/pkg/types"

	"github.com/gin-gonic/gin"
)

// ParseFunc produces the text returned for an uploaded file.
type ParseFunc func(mode types.Mode, filename string, data []byte) (string, error)

// Stats counts what the server has seen.
type Stats struct {
	Uploads   int
	CacheHits int
}

// Server holds the fake backend state.
type Server struct {
	keys    map[string]struct{}
	parse   ParseFunc
	latency time.Duration

	mu    sync.Mutex
	cache map[string]string
	stats Stats
}

// Option configures a Server.
type Option func(*Server)

// WithParser replaces the default text producer.
func WithParser(fn ParseFunc) Option {
	return func(s *Server) {
		s.parse = fn
	}
}

// WithLatency delays every upload, which makes busy indicators visible
// during local development.
func WithLatency(d time.Duration) Option {
	return func(s *Server) {
		s.latency = d
	}
}

// New creates a server that accepts the given API keys.
func New(keys []string, opts ...Option) *Server {
	s := &Server{
		keys:  make(map[string]struct{}, len(keys)),
		parse: DefaultParse,
		cache: make(map[string]string),
	}
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			s.keys[k] = struct{}{}
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router configures the Gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	if !log.IsDebug() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Logger())

	v1 := r.Group("/v1")
	v1.GET("/health", s.Health)

	protected := v1.Group("")
	protected.Use(APIKeyAuth(s.keys))
	protected.POST("/convert", s.upload(types.Convert))
	protected.POST("/ocr", s.upload(types.OCR))
	protected.GET("/supported-types", s.SupportedTypes)

	return r
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.LogWithFields(log.F("addr", addr), log.F("keys", len(s.keys))).Info("fake parser service listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Stats returns a snapshot of the counters.
func (s *Server) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// SupportedExtensions lists every extension the server parses.
func SupportedExtensions() []string {
	exts := append(types.Convert.DefaultExtensions(), types.OCR.DefaultExtensions()...)
	sort.Strings(exts)
	return exts
}

// DefaultParse echoes text files and describes everything else.
func DefaultParse(mode types.Mode, filename string, data []byte) (string, error) {
	if mode == types.OCR {
		return fmt.Sprintf("text recognized in %s", filename), nil
	}
	if isText(data) {
		return fmt.Sprintf("# %s\n\n%s", filename, data), nil
	}
	return fmt.Sprintf("# %s\n\n%d bytes of binary content", filename, len(data)), nil
}

func isText(data []byte) bool {
	for _, b := range data {
		if b == 0 {
			return false
		}
	}
	return true
}

func (s *Server) lookup(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Uploads++
	content, ok := s.cache[key]
	if ok {
		s.stats.CacheHits++
	}
	return content, ok
}

func (s *Server) store(key, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = content
}

func cacheKey(mode types.Mode, data []byte) string {
	sum := md5.Sum(data)
	return mode.String() + ":" + hex.EncodeToString(sum[:])
}
