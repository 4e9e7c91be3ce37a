// Package backend is the HTTP client of the LensHive catalog API. It turns
// transport failures into domain.ErrTransport and non-2xx answers into
// *domain.RemoteError.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lenshive/admin-console/internal/api/metrics"
	"github.com/lenshive/admin-console/internal/core/domain"
	"github.com/lenshive/admin-console/internal/core/ports"
)

const maxBodyBytes = 8 << 20

type Options struct {
	BaseURL       string
	Timeout       time.Duration
	TrailingSlash bool
	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// Client sends authenticated requests to the catalog API. The token is read
// from the token source on every request, so a new login takes effect
// without rebuilding the client.
type Client struct {
	base          string
	trailingSlash bool
	http          *http.Client
	tokens        ports.TokenSource
	log           zerolog.Logger
}

func NewClient(opts Options, tokens ports.TokenSource, log zerolog.Logger) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		base:          strings.TrimRight(opts.BaseURL, "/"),
		trailingSlash: opts.TrailingSlash,
		http:          hc,
		tokens:        tokens,
		log:           log,
	}
}

// request describes one backend call.
type request struct {
	op          string
	method      string
	path        string
	body        io.Reader
	contentType string
	// token, when set, is used instead of the stored one.
	token string
	// anonymous requests carry no Authorization header.
	anonymous bool
}

func (c *Client) url(path string) string {
	if c.trailingSlash && !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return c.base + path
}

// Ping checks that the backend answers at all. Any HTTP status counts as up.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/products"), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// do sends r and decodes a 2xx JSON body into out (when out is non-nil).
func (c *Client) do(ctx context.Context, r request, out any) error {
	req, err := http.NewRequestWithContext(ctx, r.method, c.url(r.path), r.body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", r.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if !r.anonymous {
		token := r.token
		if token == "" && c.tokens != nil {
			if token, err = c.tokens.Load(ctx); err != nil {
				return fmt.Errorf("%s: read token: %w", r.op, err)
			}
		}
		if token != "" {
			req.Header.Set("Authorization", "Token "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(r.op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(r.op, "transport_error").Inc()
		c.log.Warn().Err(err).Str("op", r.op).Msg("backend unreachable")
		return fmt.Errorf("%s: %w: %w", r.op, domain.ErrTransport, err)
	}
	defer resp.Body.Close()
	metrics.BackendRequestsTotal.WithLabelValues(r.op, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%s: read response: %w: %w", r.op, domain.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		re := &domain.RemoteError{Status: resp.StatusCode, Message: extractMessage(body)}
		c.log.Debug().Str("op", r.op).Int("status", resp.StatusCode).Str("message", re.Message).Msg("backend rejected request")
		return fmt.Errorf("%s: %w", r.op, re)
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w: %w", r.op, domain.ErrRemote, err)
	}
	return nil
}

func jsonBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(b), nil
}
