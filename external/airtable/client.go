// Package airtable is the record gateway for the Airtable-backed catalog.
// It speaks the Airtable REST API and maps table rows onto domain records.
package airtable

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/mystixxx/altersport/internal/platform/logging"
	"github.com/mystixxx/altersport/internal/platform/resilience"
	"github.com/mystixxx/altersport/internal/usecase"
)

const (
	defaultBaseURL   = "https://api.airtable.com/v0"
	defaultTimeout   = 15 * time.Second
	maxResponseBytes = 4 << 20
	listPageSize     = "100"
	maxListPages     = 50
)

var bearerTokenRegex = regexp.MustCompile(`Bearer\s+[^\s"']+`)
var errAirtableTransient = crerr.New("airtable transient failure")
var errRecordNotFound = crerr.New("airtable record not found")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	BaseID         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client wraps the Airtable REST API. Reads are collapsed through a
// single-flight group; writes always hit the backend. A circuit breaker
// guards both against a flapping upstream.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	baseID         string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := cfg.CircuitBreaker.Normalize()

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		baseID:         strings.TrimSpace(cfg.BaseID),
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) tableURL(table string, recordID string) string {
	u := c.baseURL + "/" + url.PathEscape(c.baseID) + "/" + url.PathEscape(table)
	if recordID != "" {
		u += "/" + url.PathEscape(recordID)
	}
	return u
}

// getJSON performs a GET with single-flight collapsing keyed on the full URL,
// so concurrent cache misses for one table produce one upstream call.
func (c *Client) getJSON(ctx context.Context, fullURL string, target any) error {
	if err := c.allow(ctx); err != nil {
		return err
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, http.MethodGet, fullURL, nil)
		c.record(reqErr)
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode airtable payload: %w", err)
	}
	return nil
}

// mutateJSON performs a write. Writes never share a flight: every call must
// reach the backend exactly once.
func (c *Client) mutateJSON(ctx context.Context, method, fullURL string, body any, target any) error {
	if err := c.allow(ctx); err != nil {
		return err
	}

	encoded, err := sonic.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode airtable request: %w", err)
	}

	raw, err := c.executeRequest(ctx, method, fullURL, encoded)
	c.record(err)
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode airtable payload: %w", err)
	}
	return nil
}

func (c *Client) allow(ctx context.Context) error {
	if !c.circuitEnabled {
		return nil
	}
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "airtable circuit breaker rejected request", "state", c.breaker.State())
		return fmt.Errorf("%w: record backend is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	return nil
}

func (c *Client) record(err error) {
	if !c.circuitEnabled {
		return
	}
	if err != nil && stderrors.Is(err, errAirtableTransient) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

func (c *Client) executeRequest(ctx context.Context, method, fullURL string, body []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errAirtableTransient, c.sanitize(err.Error()))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errAirtableTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusNotFound:
				return nil, errRecordNotFound
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: airtable status=%d body=%s", errAirtableTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("airtable status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("airtable request failed")
	}
	c.logger.WarnContext(ctx, "airtable request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) sanitize(value string) string {
	value = strings.TrimSpace(value)
	if c.apiKey != "" {
		value = strings.ReplaceAll(value, c.apiKey, "REDACTED")
	}
	return bearerTokenRegex.ReplaceAllString(value, "Bearer REDACTED")
}

func isRetryableStatus(status int) bool {
	if status == http.StatusTooManyRequests {
		return true
	}
	return status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}
