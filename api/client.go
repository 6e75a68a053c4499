// Package api is the thin HTTP boundary to the attendance backend. It speaks
// bearer tokens, retries exactly once after refreshing an expired access
// token, and hands back plain in-memory structures; everything derived from
// them is computed by the engine packages.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"
)

// Environment variables read by LoadConfig. A .env file loaded at startup
// may provide them.
const (
	EnvAPIURL = "CAMPEL_API_URL"
	EnvToken  = "CAMPEL_TOKEN"
	EnvTZ     = "CAMPEL_TZ"
)

// Config carries everything the client needs to reach the backend.
type Config struct {
	BaseURL  string
	Token    string
	Location *time.Location
}

// LoadConfig builds a Config from the environment. The base URL always ends
// in /api; the display time zone defaults to Europe/Madrid.
func LoadConfig() (Config, error) {
	base := strings.TrimRight(os.Getenv(EnvAPIURL), "/")
	if base == "" {
		base = "http://localhost:8000"
	}
	if !strings.HasSuffix(base, "/api") {
		base += "/api"
	}

	tz := os.Getenv(EnvTZ)
	if tz == "" {
		tz = "Europe/Madrid"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", EnvTZ, err)
	}

	return Config{
		BaseURL:  base,
		Token:    os.Getenv(EnvToken),
		Location: loc,
	}, nil
}

// Client is the backend HTTP client. Safe for use from the single UI
// goroutine plus the fetch commands it spawns.
type Client struct {
	base string
	http *http.Client

	mu    sync.Mutex
	token string
}

// NewClient builds a client over cfg. The cookie jar keeps the httpOnly
// refresh cookie the backend sets at login.
func NewClient(cfg Config) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		base:  strings.TrimRight(cfg.BaseURL, "/"),
		http:  &http.Client{Timeout: 15 * time.Second, Jar: jar},
		token: cfg.Token,
	}
}

// Token returns the current access token.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) setToken(t string) {
	c.mu.Lock()
	c.token = t
	c.mu.Unlock()
}

// join glues an endpoint path onto the base, tolerating a redundant /api
// prefix the way the callers sometimes pass it.
func (c *Client) join(endpoint string) string {
	p := endpoint
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if strings.HasSuffix(c.base, "/api") && strings.HasPrefix(p, "/api/") {
		p = p[len("/api"):]
	}
	return c.base + p
}

type apiError struct {
	Status int
	Detail string
}

func (e *apiError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("error %d", e.Status)
}

func errorDetail(body []byte, status int) *apiError {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return &apiError{Status: status, Detail: payload.Detail}
	}
	detail := strings.TrimSpace(string(body))
	return &apiError{Status: status, Detail: detail}
}

// do performs one request; on 401 it refreshes the access token and retries
// exactly once. The response body is decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, endpoint string, contentType string, body []byte, header http.Header, out any) error {
	send := func(token string) (*http.Response, error) {
		var rd io.Reader
		if body != nil {
			rd = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.join(endpoint), rd)
		if err != nil {
			return nil, err
		}
		for k, vs := range header {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return c.http.Do(req)
	}

	res, err := send(c.Token())
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	if res.StatusCode == http.StatusUnauthorized {
		res.Body.Close()
		if err := c.refresh(ctx); err != nil {
			return fmt.Errorf("%s %s: %w", method, endpoint, err)
		}
		if res, err = send(c.Token()); err != nil {
			return fmt.Errorf("%s %s: %w", method, endpoint, err)
		}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("%s %s: %w", method, endpoint, errorDetail(data, res.StatusCode))
	}
	if out == nil || res.StatusCode == http.StatusNoContent || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: decode: %w", method, endpoint, err)
	}
	return nil
}

// refresh trades the refresh cookie for a fresh access token.
func (c *Client) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.join("/auth/refresh"), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		c.setToken("")
		return fmt.Errorf("refresh: session expired (status %d)", res.StatusCode)
	}
	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return fmt.Errorf("refresh: decode: %w", err)
	}
	if payload.AccessToken == "" {
		return fmt.Errorf("refresh: response without access_token")
	}
	c.setToken(payload.AccessToken)
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, "", nil, nil, out)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, body, out any, header http.Header) error {
	var data []byte
	if body != nil {
		var err error
		if data, err = json.Marshal(body); err != nil {
			return fmt.Errorf("POST %s: encode: %w", endpoint, err)
		}
	}
	return c.do(ctx, http.MethodPost, endpoint, "application/json", data, header, out)
}

func (c *Client) postForm(ctx context.Context, endpoint string, form url.Values, out any) error {
	return c.do(ctx, http.MethodPost, endpoint, "application/x-www-form-urlencoded", []byte(form.Encode()), nil, out)
}

// Login trades credentials for an access token and stores it on the client.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var payload struct {
		AccessToken string `json:"access_token"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.postJSON(ctx, "/auth/login-json", body, &payload, nil); err != nil {
		return err
	}
	if payload.AccessToken == "" {
		return fmt.Errorf("login: response without access_token")
	}
	c.setToken(payload.AccessToken)
	return nil
}
