package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/colisroute/colis/internal/common"
	"github.com/colisroute/colis/internal/logging"
	"github.com/colisroute/colis/internal/netx"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	limiter *rate.Limiter
	log     logging.Logger
}

type Option func(*HTTPClient)

func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.tokens = ts }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithRateLimit paces outgoing requests to rps per second (burst 1).
// rps <= 0 disables pacing.
func WithRateLimit(rps float64) Option {
	return func(c *HTTPClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithHTTPClient replaces the underlying client; its Timeout is overwritten.
func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) { c.http = h }
}

func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	c.http.Timeout = timeout
	c.log = c.log.With("component", "api")
	return c
}

func (c *HTTPClient) BaseURL() string { return c.baseURL }

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, body, contentType, out)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	reqID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, reqID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	c.injectToken(ctx, req)

	log := c.log.With("method", method, "path", path, "request_id", reqID)
	log.Debug(ctx, "request", "url", req.URL.String())

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error(ctx, "no response received", "error", err)
		return fmt.Errorf("%w: %s %s: %w", ErrUnavailable, method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := netx.ReadBody(resp, netx.MaxErrorBody)
		apiErr := &Error{Method: method, Path: path, Status: resp.StatusCode, Message: backendMessage(raw)}
		c.logFailure(ctx, log, apiErr)
		return apiErr
	}
	defer resp.Body.Close()

	log.Debug(ctx, "response", "status", resp.StatusCode)

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return malformed(fmt.Sprintf("%s %s: empty body", method, path))
		}
		return malformed(fmt.Sprintf("%s %s: %v", method, path, err))
	}
	return nil
}

func (c *HTTPClient) injectToken(ctx context.Context, req *http.Request) {
	if c.tokens == nil {
		return
	}
	tok, err := c.tokens.Token(ctx)
	if err != nil {
		c.log.Warn(ctx, "could not read token", "error", err)
		return
	}
	if tok != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+tok)
	}
}

func (c *HTTPClient) logFailure(ctx context.Context, log logging.Logger, e *Error) {
	args := []any{"status", e.Status, "message", e.Message}
	switch e.Status {
	case http.StatusUnauthorized:
		log.Warn(ctx, "unauthorized, token may be expired", args...)
	case http.StatusForbidden:
		log.Warn(ctx, "forbidden, insufficient permissions", args...)
	case http.StatusNotFound:
		log.Warn(ctx, "not found", args...)
	default:
		if e.Status >= 500 {
			log.Error(ctx, "server error", args...)
		} else {
			log.Warn(ctx, "request rejected", args...)
		}
	}
}

// backendMessage extracts "message" (or "error") from a JSON error body.
// A short plain-text body is used verbatim.
func backendMessage(raw []byte) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	var eb struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &eb) == nil {
		if eb.Message != "" {
			return eb.Message
		}
		return eb.Error
	}
	if raw[0] != '<' && len(raw) <= 200 {
		return string(raw)
	}
	return ""
}
