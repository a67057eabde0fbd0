// Package api is the HTTP client for the file parser service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fileparse/internal/errors"
	"fileparse/internal/log"
	"fileparse/pkg/types"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const supportedTypesPath = "/v1/supported-types"

// Client talks to one parser service.
type Client struct {
	baseURL string
	client  *http.Client
	timeout *time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. The client passed in
// is never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithTimeout bounds each request. Zero means no timeout. It applies
// whatever the order of options.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = &d
	}
}

// NewClient creates a client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout != nil {
		hc := *c.client
		hc.Timeout = *c.timeout
		c.client = &hc
	}
	return c
}

// Timeout returns the per-request limit in effect.
func (c *Client) Timeout() time.Duration {
	return c.client.Timeout
}

// BaseURL returns the service root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// response mirrors the JSON returned by both upload endpoints.
type response struct {
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	DurationMS  int64  `json:"duration_ms"`
	FromCache   bool   `json:"from_cache"`
	Content     string `json:"content"`
	OCRText     string `json:"ocr_text"`
}

// Upload sends the file at path to the endpoint for mode. Non-2xx answers
// come back as *errors.RequestError carrying the status and body text.
func (c *Client) Upload(ctx context.Context, mode types.Mode, token, path string) (*types.UploadResult, error) {
	body, contentType, err := multipartBody(path)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+mode.Endpoint(), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	respBody, status, err := c.do(req, token)
	if err != nil {
		return nil, err
	}

	var r response
	if err := json.Unmarshal(respBody, &r); err != nil {
		return nil, errors.NewRequestError("decoding response", status, string(respBody), err)
	}

	result := &types.UploadResult{
		Mode:        mode,
		Filename:    r.Filename,
		Size:        r.Size,
		ContentType: r.ContentType,
		DurationMS:  r.DurationMS,
		FromCache:   r.FromCache,
		Content:     r.Content,
	}
	if mode == types.OCR {
		result.Content = r.OCRText
	}
	return result, nil
}

// SupportedTypes fetches the extensions the conversion endpoint accepts.
func (c *Client) SupportedTypes(ctx context.Context, token string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+supportedTypesPath, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	respBody, status, err := c.do(req, token)
	if err != nil {
		return nil, err
	}

	var r struct {
		SupportedExtensions []string `json:"supported_extensions"`
	}
	if err := json.Unmarshal(respBody, &r); err != nil {
		return nil, errors.NewRequestError("decoding response", status, string(respBody), err)
	}

	exts := make([]string, 0, len(r.SupportedExtensions))
	for _, e := range r.SupportedExtensions {
		if e = types.NormalizeExtension(e); e != "" {
			exts = append(exts, e)
		}
	}
	return exts, nil
}

func (c *Client) do(req *http.Request, token string) ([]byte, int, error) {
	requestID := uuid.New().String()
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	entry := log.LogWithFields(
		log.F("request_id", requestID),
		log.F("method", req.Method),
		log.F("path", req.URL.Path),
	)
	entry.Debug("sending request")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		entry.With(log.F("error", err.Error())).Warn("request failed")
		return nil, 0, errors.NewRequestError("upload failed", 0, "", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, errors.NewRequestError("reading response", 0, "", err)
	}

	entry = entry.With(log.F("status", resp.StatusCode), log.F("elapsed", time.Since(start).String()))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		entry.Warn("server rejected request")
		return nil, resp.StatusCode, errors.NewRequestError("upload failed", resp.StatusCode, string(respBody), nil)
	}
	entry.Debug("request finished")

	return respBody, resp.StatusCode, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// multipartBody builds a form with the file under the "file" field. The part
// carries the MIME type detected from the file's content.
func multipartBody(path string) (io.Reader, string, error) {
	f, err := os.Open(path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return nil, "", errors.NewFileError("file not found", path, errors.FileNotFound, err)
		case os.IsPermission(err):
			return nil, "", errors.NewFileError("file access denied", path, errors.FileAccessDenied, err)
		}
		return nil, "", errors.NewFileError("cannot open file", path, errors.InvalidPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, "", errors.NewFileError("cannot stat file", path, errors.InvalidPath, err)
	}
	if info.IsDir() {
		return nil, "", errors.NewFileError("not a regular file", path, errors.InvalidPath, nil)
	}

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return nil, "", errors.NewFileError("cannot read file", path, errors.InvalidPath, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, "", errors.NewFileError("cannot read file", path, errors.InvalidPath, err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`,
		quoteEscaper.Replace(filepath.Base(path))))
	h.Set("Content-Type", mtype.String())
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("creating form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", errors.NewFileError("cannot read file", path, errors.InvalidPath, err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
