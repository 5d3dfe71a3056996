// Package recommender talks to the recommendation backend that powers the
// homepage feed and the onboarding quiz.
package recommender

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/mystixxx/altersport/internal/domain/recommendation"
	"github.com/mystixxx/altersport/internal/platform/resilience"
)

var errRecommenderTransient = crerr.New("recommender transient failure")

type ClientConfig struct {
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client wraps the recommendation HTTP API. The homepage fetch retries
// transient failures; profile writes go out exactly once per call and rely
// on the caller's retry-on-next-visit semantics.
type Client struct {
	client         *http.Client
	baseURL        string
	maxRetries     int
	logger         *slog.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	breakerCfg := cfg.CircuitBreaker.Normalize()

	return &Client{
		client:         &http.Client{Timeout: timeout},
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type wireEvent struct {
	EventID      string   `json:"event_id"`
	EventType    string   `json:"event_type"`
	EventDate    string   `json:"event_date"`
	SportID      string   `json:"sport_id"`
	HomeTeamID   string   `json:"home_team_id"`
	HomeTeamLogo string   `json:"home_team_logo"`
	AwayTeamID   string   `json:"away_team_id"`
	AwayTeamLogo string   `json:"away_team_logo"`
	LocationID   string   `json:"location_id"`
	LeagueIDs    []string `json:"league"`
	FromAPI      bool     `json:"from_api"`
}

type homepageResponse struct {
	UserID           string      `json:"user_id"`
	FavoriteSports   []string    `json:"favorite_sports"`
	UpcomingEvents   []wireEvent `json:"upcoming_events"`
	RecommendedTeams []string    `json:"recommended_teams"`
}

type quizRequest struct {
	UserName       string   `json:"user_name"`
	Age            string   `json:"age"`
	GroupStyle     string   `json:"group_style"`
	Activities     []string `json:"activities"`
	City           string   `json:"city"`
	District       string   `json:"district"`
	SportInterests []string `json:"sport_interests"`
}

type quizResponse struct {
	RecommendedSport string   `json:"recommended_sport"`
	RecommendedTeams []string `json:"recommended_teams"`
}

// FetchHomepage returns the personalized feed for a user.
func (c *Client) FetchHomepage(ctx context.Context, userID string) (recommendation.Payload, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return recommendation.Payload{}, crerr.New("user id is required")
	}

	endpoint, err := c.endpoint("recommend", userID, "homepage")
	if err != nil {
		return recommendation.Payload{}, err
	}

	raw, err := c.doWithRetry(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return recommendation.Payload{}, fmt.Errorf("fetch homepage user_id=%s: %w", userID, err)
	}

	var resp homepageResponse
	if err := sonic.Unmarshal(raw, &resp); err != nil {
		return recommendation.Payload{}, fmt.Errorf("decode homepage payload: %w", err)
	}

	events := make([]recommendation.UpcomingEvent, 0, len(resp.UpcomingEvents))
	for _, item := range resp.UpcomingEvents {
		events = append(events, recommendation.UpcomingEvent(item))
	}
	return recommendation.Payload{
		UserID:           resp.UserID,
		FavoriteSports:   resp.FavoriteSports,
		UpcomingEvents:   events,
		RecommendedTeams: resp.RecommendedTeams,
	}, nil
}

// InitializeUser registers a fresh installation with the backend.
func (c *Client) InitializeUser(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return crerr.New("user id is required")
	}

	endpoint, err := c.endpoint("users", "initialize", userID)
	if err != nil {
		return err
	}

	if _, err := c.doOnce(ctx, http.MethodPost, endpoint, []byte("{}")); err != nil {
		return fmt.Errorf("initialize user user_id=%s: %w", userID, err)
	}
	c.logger.InfoContext(ctx, "recommender user initialized", "user_id", userID)
	return nil
}

// UpdateUser forwards quiz answers and returns the backend's suggestion.
func (c *Client) UpdateUser(ctx context.Context, userID string, answers recommendation.QuizAnswers) (recommendation.QuizResult, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return recommendation.QuizResult{}, crerr.New("user id is required")
	}

	endpoint, err := c.endpoint("users", "update", userID)
	if err != nil {
		return recommendation.QuizResult{}, err
	}

	body, err := sonic.Marshal(quizRequest{
		UserName:       answers.UserName,
		Age:            answers.Age,
		GroupStyle:     answers.GroupStyle,
		Activities:     answers.Activities,
		City:           answers.City,
		District:       answers.District,
		SportInterests: answers.SportInterests,
	})
	if err != nil {
		return recommendation.QuizResult{}, crerr.Wrap(err, "marshal quiz answers")
	}

	c.logger.InfoContext(ctx, "recommender quiz submission",
		"user_id", userID,
		"curl_preview", buildCurlPreview(http.MethodPost, endpoint, truncateForLog(string(body), 2048)),
	)

	raw, err := c.doOnce(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return recommendation.QuizResult{}, fmt.Errorf("update user user_id=%s: %w", userID, err)
	}

	var resp quizResponse
	if err := sonic.Unmarshal(raw, &resp); err != nil {
		return recommendation.QuizResult{}, fmt.Errorf("decode quiz response: %w", err)
	}
	return recommendation.QuizResult{
		RecommendedSport: resp.RecommendedSport,
		RecommendedTeams: resp.RecommendedTeams,
	}, nil
}

func (c *Client) endpoint(parts ...string) (string, error) {
	base, err := validateHTTPBaseURL(c.baseURL)
	if err != nil {
		return "", crerr.Wrap(err, "invalid recommender base url")
	}
	escaped := make([]string, 0, len(parts))
	for _, part := range parts {
		escaped = append(escaped, url.PathEscape(part))
	}
	return base + "/" + strings.Join(escaped, "/"), nil
}

func (c *Client) doWithRetry(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, err := c.doOnce(ctx, method, endpoint, body)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !stderrors.Is(err, errRecommenderTransient) || attempt == c.maxRetries {
			return nil, lastErr
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
	return nil, lastErr
}

func (c *Client) doOnce(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "recommender circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("recommendation backend is temporarily unavailable: %w", err)
		}
	}

	var reader io.Reader
	if body != nil {
		reader = strings.NewReader(string(body))
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, crerr.Wrap(err, "create recommender request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		callErr := fmt.Errorf("%w: send request url=%s: %v", errRecommenderTransient, endpoint, err)
		c.recordCircuitResult(callErr)
		return nil, callErr
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if readErr != nil {
		callErr := fmt.Errorf("%w: read response url=%s: %v", errRecommenderTransient, endpoint, readErr)
		c.recordCircuitResult(callErr)
		return nil, callErr
	}

	if resp.StatusCode/100 != 2 {
		bodyText := strings.TrimSpace(string(raw))
		if isRetryableStatus(resp.StatusCode) {
			callErr := fmt.Errorf("%w: recommender status=%d url=%s body=%s", errRecommenderTransient, resp.StatusCode, endpoint, truncateForLog(bodyText, 512))
			c.recordCircuitResult(callErr)
			return nil, callErr
		}
		callErr := fmt.Errorf("recommender status=%d url=%s body=%s", resp.StatusCode, endpoint, truncateForLog(bodyText, 512))
		c.recordCircuitResult(callErr)
		return nil, callErr
	}

	c.recordCircuitResult(nil)
	return raw, nil
}

func (c *Client) recordCircuitResult(err error) {
	if !c.circuitEnabled || c.breaker == nil {
		return
	}
	if err != nil && stderrors.Is(err, errRecommenderTransient) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

func buildCurlPreview(method, endpoint, body string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}

	appendPart("curl")
	appendPart("-X")
	appendPart(method)
	appendPart(shellQuote(endpoint))
	appendPart("-H")
	appendPart(shellQuote("Content-Type: application/json"))
	appendPart("-d")
	appendPart(shellQuote(body))

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}
