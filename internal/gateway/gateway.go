// Package gateway wraps every network call against the analysis service
// into a uniform result envelope. It is the single place that absorbs the
// service's heterogeneous error shapes; no component above it branches on
// payload shape or status codes.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/finshield/console/internal/interfaces"
	"github.com/finshield/console/internal/logging"
	"github.com/finshield/console/internal/model"
)

// Config contains the gateway's runtime options.
type Config struct {
	// BaseURL is the fixed service origin, e.g. "http://127.0.0.1:8000".
	BaseURL string

	// Timeout bounds a single request. Zero means the 30s default.
	Timeout time.Duration
}

// Gateway issues JSON POSTs, multipart uploads and GETs against the service
// origin. Calls never return an error: every outcome is an Envelope.
type Gateway struct {
	cfg    Config
	client *http.Client
	tokens interfaces.TokenProvider
	expiry interfaces.ExpiryListener
	logger logging.Logger
}

// New constructs a Gateway. tokens supplies the bearer token for
// authenticated calls; expiry is the session-expiry side channel fired on
// 401 (may be nil). If httpClient is nil a default with the configured
// timeout is used.
func New(cfg Config, tokens interfaces.TokenProvider, expiry interfaces.ExpiryListener, logger logging.Logger, httpClient *http.Client) *Gateway {
	componentLogger := logger.With(logging.Field{Key: "component", Value: "gateway"})

	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Gateway{
		cfg:    cfg,
		client: httpClient,
		tokens: tokens,
		expiry: expiry,
		logger: componentLogger,
	}
}

// Post sends a JSON body to path and normalizes the outcome.
func (g *Gateway) Post(ctx context.Context, path string, body any) *model.Envelope {
	payload, err := json.Marshal(body)
	if err != nil {
		return &model.Envelope{Success: false, Message: "Invalid request payload"}
	}
	return g.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(payload))
}

// Upload sends content as a multipart form under the field "file".
// The target endpoint is the caller's choice; the gateway does not inspect
// the file beyond streaming it.
func (g *Gateway) Upload(ctx context.Context, path, filename string, content io.Reader) *model.Envelope {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err == nil {
		_, err = io.Copy(part, content)
	}
	if err == nil {
		err = mw.Close()
	}
	if err != nil {
		g.logger.Warn("building multipart body failed",
			logging.Field{Key: "path", Value: path},
			logging.Field{Key: "error", Value: err.Error()})
		return &model.Envelope{Success: false, Message: "Invalid request payload"}
	}
	return g.do(ctx, http.MethodPost, path, mw.FormDataContentType(), &buf)
}

// Get fetches path and normalizes the outcome.
func (g *Gateway) Get(ctx context.Context, path string) *model.Envelope {
	return g.do(ctx, http.MethodGet, path, "", nil)
}

// isAuthPath reports whether path belongs to the authentication exchange.
// A 401 there is a credential rejection, not an expired session.
func isAuthPath(path string) bool {
	return strings.HasPrefix(path, "/auth")
}

func (g *Gateway) do(ctx context.Context, method, path, contentType string, body io.Reader) *model.Envelope {
	g.logger.Debug("sending request",
		logging.Field{Key: "method", Value: method},
		logging.Field{Key: "path", Value: path})

	req, err := http.NewRequestWithContext(ctx, method, g.cfg.BaseURL+path, body)
	if err != nil {
		return &model.Envelope{Success: false, Message: "Network error"}
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	// Attach the bearer token when a session exists. Trim incidental
	// whitespace; a padded token produces a malformed header.
	if g.tokens != nil {
		if token := strings.TrimSpace(g.tokens.AccessToken()); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warn("request failed",
			logging.Field{Key: "method", Value: method},
			logging.Field{Key: "path", Value: path},
			logging.Field{Key: "error", Value: err.Error()})
		return &model.Envelope{Success: false, Message: "Network error — is the server running?"}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && !isAuthPath(path) {
		// Side channel only. Deliberately no session clearing and no
		// forced navigation; the user decides whether to log out.
		g.logger.Warn("session expired (401)",
			logging.Field{Key: "path", Value: path})
		if g.expiry != nil {
			g.expiry.SessionExpired()
		}
		return &model.Envelope{
			Success:    false,
			Message:    "Session expired. Please sign in again.",
			StatusCode: resp.StatusCode,
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &model.Envelope{Success: false, Message: "Invalid server response", StatusCode: resp.StatusCode}
	}

	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return &model.Envelope{Success: false, Message: "Invalid server response", StatusCode: resp.StatusCode}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &model.Envelope{
			Success:    false,
			Message:    extractMessage(payload),
			StatusCode: resp.StatusCode,
		}
	}

	return &model.Envelope{Success: true, StatusCode: resp.StatusCode, Body: data}
}
