package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go-fraud-console/internal/config"

	"go.uber.org/zap"
)

// Client is the single transport to the report API. Every request goes to the
// one configured base URL and carries the session cookies the API issued.
// Calls are never retried.
type Client struct {
	baseURL string
	base    *url.URL
	http    *http.Client
	jar     *credentialJar
	logger  *zap.Logger
	metrics *Metrics
}

// NewClient builds the client from configuration.
func NewClient(cfg *config.Config, logger *zap.Logger, metrics *Metrics) (*Client, error) {
	return New(cfg.APIBaseURL, cfg.APITimeout, logger, metrics)
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger, metrics *Metrics) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid API base URL %q: scheme must be http or https", baseURL)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	jar := newCredentialJar()
	return &Client{
		baseURL: baseURL,
		base:    u,
		http:    &http.Client{Timeout: timeout, Jar: jar},
		jar:     jar,
		logger:  logger.Named("apiclient"),
		metrics: metrics,
	}, nil
}

// BaseURL returns the configured endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ResetCredentials forgets every cookie the API has set.
func (c *Client) ResetCredentials() {
	c.jar.Reset()
}

// Credentials returns the cookies the jar would send to the API.
func (c *Client) Credentials() []Credential {
	cookies := c.jar.Cookies(c.base)
	creds := make([]Credential, 0, len(cookies))
	for _, ck := range cookies {
		creds = append(creds, Credential{Name: ck.Name, Value: ck.Value})
	}
	return creds
}

// RestoreCredentials puts previously saved cookies back into the jar.
func (c *Client) RestoreCredentials(creds []Credential) {
	cookies := make([]*http.Cookie, 0, len(creds))
	for _, cr := range creds {
		if cr.Name == "" {
			continue
		}
		cookies = append(cookies, &http.Cookie{Name: cr.Name, Value: cr.Value, Path: "/"})
	}
	if len(cookies) > 0 {
		c.jar.SetCookies(c.base, cookies)
	}
}

type call struct {
	endpoint string // metrics label, independent of ids in the path
	method   string
	path     string
	query    url.Values
	body     any
}

// do sends the call and decodes a JSON response into out (when non-nil).
func (c *Client) do(ctx context.Context, req call, out any) error {
	resp, err := c.send(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.method, req.path, err)
	}
	return nil
}

// send returns the response for 2xx statuses; the caller closes the body.
func (c *Client) send(ctx context.Context, req call) (*http.Response, error) {
	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		blob, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", req.method, req.path, err)
		}
		body = bytes.NewReader(blob)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", req.method, req.path, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	requestID := requestIDFrom(ctx)
	httpReq.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.observe(req.endpoint, 0, elapsed)
		c.logger.Warn("Report API call failed",
			zap.String("endpoint", req.endpoint),
			zap.String("request_id", requestID),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return nil, fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	c.metrics.observe(req.endpoint, resp.StatusCode, elapsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		apiErr := newAPIError(req.method, req.path, resp)
		c.logger.Debug("Report API rejected call",
			zap.String("endpoint", req.endpoint),
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message))
		return nil, apiErr
	}

	c.logger.Debug("Report API call",
		zap.String("endpoint", req.endpoint),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", elapsed))
	return resp, nil
}
