// Package portalapi talks to the content API that owns every record managed by the console.
package portalapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal/internal/models"
	appErrors "github.com/noah-isme/campus-portal/pkg/errors"
)

const maxErrorBody = 64 << 10

// Observer receives one observation per upstream call.
type Observer interface {
	ObserveUpstream(operation string, status int, duration time.Duration)
}

// Options configures the client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Observer   Observer
	Logger     *zap.Logger
}

// Client is a session-holding HTTP client for the content API. The session cookie set by
// login is kept in the client's cookie jar and sent on every later call.
type Client struct {
	baseURL  string
	http     *http.Client
	observer Observer
	logger   *zap.Logger
}

// New builds a client with its own cookie jar unless an http.Client is supplied.
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("portalapi: base url is required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("portalapi: cookie jar: %w", err)
		}
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Jar: jar, Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{baseURL: base, http: httpClient, observer: opts.Observer, logger: logger}, nil
}

// CheckAuth probes the current upstream session.
func (c *Client) CheckAuth(ctx context.Context) (*models.AuthCheckResponse, error) {
	var out models.AuthCheckResponse
	if err := c.do(ctx, "auth_check", http.MethodGet, "/api/auth/check/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login opens an upstream session for the given credentials.
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	body := map[string]string{"username": username, "password": password}
	var out models.LoginResponse
	if err := c.do(ctx, "auth_login", http.MethodPost, "/api/auth/login/", body, &out); err != nil {
		return nil, err
	}
	if out.Status != "" && out.Status != "success" {
		msg := out.Message
		if msg == "" {
			msg = "login failed"
		}
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, msg)
	}
	return &out, nil
}

// Logout closes the upstream session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, "auth_logout", http.MethodPost, "/api/auth/logout/", map[string]string{}, nil)
}

// List fetches an admin collection. A missing or null list decodes as empty.
func (c *Client) List(ctx context.Context, resource, pluralKey string) ([]json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if err := c.do(ctx, "list_"+resource, http.MethodGet, adminPath(resource, nil), nil, &envelope); err != nil {
		return nil, err
	}
	return decodeList(envelope[pluralKey])
}

// Create posts a new record and returns the stored one.
func (c *Client) Create(ctx context.Context, resource, singularKey string, payload interface{}) (json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if err := c.do(ctx, "create_"+resource, http.MethodPost, adminPath(resource, nil), payload, &envelope); err != nil {
		return nil, err
	}
	return envelope[singularKey], nil
}

// Update replaces a record by id.
func (c *Client) Update(ctx context.Context, resource, singularKey string, id int64, payload interface{}) (json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if err := c.do(ctx, "update_"+resource, http.MethodPut, adminPath(resource, &id), payload, &envelope); err != nil {
		return nil, err
	}
	return envelope[singularKey], nil
}

// Delete removes a record by id.
func (c *Client) Delete(ctx context.Context, resource string, id int64) error {
	return c.do(ctx, "delete_"+resource, http.MethodDelete, adminPath(resource, &id), nil, nil)
}

// PublicList fetches one of the public lists. Anything but a success status with an array
// is reported as an upstream error.
func (c *Client) PublicList(ctx context.Context, section string) ([]json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if err := c.do(ctx, "public_"+section, http.MethodGet, "/api/"+section+"/", nil, &envelope); err != nil {
		return nil, err
	}
	var status string
	_ = json.Unmarshal(envelope["status"], &status)
	var items []json.RawMessage
	if status != "success" || json.Unmarshal(envelope[section], &items) != nil || items == nil {
		return nil, appErrors.Clone(appErrors.ErrUpstream, fmt.Sprintf("unexpected %s payload", section))
	}
	return items, nil
}

// InstitutionalInfo fetches the admissions content block.
func (c *Client) InstitutionalInfo(ctx context.Context) (*models.AdmissionsInfo, error) {
	var envelope struct {
		Status     string                 `json:"status"`
		Admissions *models.AdmissionsInfo `json:"admissions"`
	}
	if err := c.do(ctx, "institutional_info", http.MethodGet, "/api/institutional-info/", nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.Status != "success" || envelope.Admissions == nil {
		return nil, appErrors.Clone(appErrors.ErrUpstream, "unexpected institutional info payload")
	}
	return envelope.Admissions, nil
}

func (c *Client) do(ctx context.Context, operation, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("portalapi: encode %s: %w", operation, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("portalapi: build %s: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(operation, 0, time.Since(start))
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "network error: "+err.Error())
	}
	defer resp.Body.Close()
	c.observe(operation, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := errorMessage(raw, resp.StatusCode)
		c.logger.Debug("upstream call failed",
			zap.String("operation", operation),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg),
		)
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return appErrors.Clone(appErrors.ErrUnauthorized, msg)
		}
		return appErrors.Clone(appErrors.ErrUpstream, msg)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "invalid response body")
	}
	return nil
}

func (c *Client) observe(operation string, status int, d time.Duration) {
	if c.observer != nil {
		c.observer.ObserveUpstream(operation, status, d)
	}
}

func adminPath(resource string, id *int64) string {
	if id == nil {
		return "/api/admin/" + resource + "/"
	}
	return "/api/admin/" + resource + "/" + strconv.FormatInt(*id, 10) + "/"
}

func decodeList(raw json.RawMessage) ([]json.RawMessage, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []json.RawMessage{}, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "invalid list payload")
	}
	return items, nil
}

func errorMessage(raw []byte, status int) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Detail  string `json:"detail"`
	}
	if json.Unmarshal(raw, &body) == nil {
		for _, msg := range []string{body.Message, body.Error, body.Detail} {
			if strings.TrimSpace(msg) != "" {
				return msg
			}
		}
	}
	return fmt.Sprintf("HTTP %d", status)
}
