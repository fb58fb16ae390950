package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/Lee-Tyrer/grandexchange-go/internal/application/common"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/items"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/ports"
	"github.com/Lee-Tyrer/grandexchange-go/internal/domain/shared"
)

const (
	defaultTimeout            = 30 * time.Second
	defaultMaxRetries         = 3
	defaultBackoffBase        = time.Second
	defaultRateLimit          = 2.0
	defaultBurst              = 2
	defaultBreakerMaxFailures = 5
	defaultBreakerTimeout     = time.Minute
)

// DefaultUserAgent identifies this client to the price feed, which rejects requests without one
const DefaultUserAgent = "grandexchange-go - price calculator"

// RequestRecorder receives per-request telemetry; implemented by the Prometheus API collector
type RequestRecorder interface {
	RecordAPIRequest(method string, endpoint string, statusCode int, duration float64)
	RecordAPIRetry(method string, endpoint string, reason string)
	RecordRateLimitWait(method string, endpoint string, duration float64)
}

// ClientConfig holds the tunables of the price feed client
type ClientConfig struct {
	BaseURL            string
	UserAgent          string
	Timeout            time.Duration
	RateLimit          float64
	Burst              int
	MaxRetries         int
	BackoffBase        time.Duration
	BreakerMaxFailures int
	BreakerTimeout     time.Duration
}

// DefaultClientConfig returns settings for the main game server
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BaseURL:            serverURLs[ServerDefault],
		UserAgent:          DefaultUserAgent,
		Timeout:            defaultTimeout,
		RateLimit:          defaultRateLimit,
		Burst:              defaultBurst,
		MaxRetries:         defaultMaxRetries,
		BackoffBase:        defaultBackoffBase,
		BreakerMaxFailures: defaultBreakerMaxFailures,
		BreakerTimeout:     defaultBreakerTimeout,
	}
}

// WikiPricesClient implements ports.PriceFeedClient against the OSRS wiki real-time prices API
type WikiPricesClient struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	breaker     *CircuitBreaker
	recorder    RequestRecorder
	baseURL     string
	userAgent   string
	maxRetries  int
	backoffBase time.Duration
	clock       shared.Clock
}

var _ ports.PriceFeedClient = (*WikiPricesClient)(nil)

// NewWikiPricesClient creates a client for the main game server with default settings
// Rate limit: 2 requests per second with burst of 2
// Retry: max 3 retries with 1s exponential backoff + jitter
func NewWikiPricesClient(userAgent string) *WikiPricesClient {
	cfg := DefaultClientConfig()
	if userAgent != "" {
		cfg.UserAgent = userAgent
	}
	return NewWikiPricesClientWithConfig(cfg, nil)
}

// NewWikiPricesClientWithConfig creates a client with custom configuration.
// Zero-valued fields fall back to defaults; if clock is nil, uses RealClock
func NewWikiPricesClientWithConfig(cfg ClientConfig, clock shared.Clock) *WikiPricesClient {
	defaults := DefaultClientConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = defaults.RateLimit
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaults.Burst
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BreakerMaxFailures <= 0 {
		cfg.BreakerMaxFailures = defaults.BreakerMaxFailures
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = defaults.BreakerTimeout
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &WikiPricesClient{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: NewLoggingTransport(nil),
		},
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
		breaker:     NewCircuitBreaker(cfg.BreakerMaxFailures, cfg.BreakerTimeout, clock),
		baseURL:     cfg.BaseURL,
		userAgent:   cfg.UserAgent,
		maxRetries:  cfg.MaxRetries,
		backoffBase: cfg.BackoffBase,
		clock:       clock,
	}
}

// WithRecorder attaches a telemetry recorder and returns the client
func (c *WikiPricesClient) WithRecorder(recorder RequestRecorder) *WikiPricesClient {
	c.recorder = recorder
	return c
}

// Breaker exposes the circuit breaker guarding the feed
func (c *WikiPricesClient) Breaker() *CircuitBreaker {
	return c.breaker
}

// BaseURL returns the server the client talks to
func (c *WikiPricesClient) BaseURL() string {
	return c.baseURL
}

type mappingEntry struct {
	ID       *int   `json:"id"`
	Name     string `json:"name"`
	Examine  string `json:"examine"`
	Members  bool   `json:"members"`
	Value    int    `json:"value"`
	HighAlch *int   `json:"highalch"`
	LowAlch  *int   `json:"lowalch"`
	Limit    *int   `json:"limit"`
	Icon     string `json:"icon"`
}

// GetMapping returns every item tracked by the feed
func (c *WikiPricesClient) GetMapping(ctx context.Context) ([]ports.ItemMappingData, error) {
	var response []mappingEntry
	if err := c.request(ctx, mappingPath, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to get mapping: %w", err)
	}

	mapping := make([]ports.ItemMappingData, 0, len(response))
	for i, entry := range response {
		if entry.ID == nil || entry.Name == "" {
			return nil, &MalformedResponseError{
				Endpoint: mappingPath,
				Reason:   fmt.Sprintf("entry %d is missing an id or name", i),
			}
		}
		mapping = append(mapping, ports.ItemMappingData{
			ID:       *entry.ID,
			Name:     entry.Name,
			Examine:  entry.Examine,
			Members:  entry.Members,
			Value:    entry.Value,
			HighAlch: entry.HighAlch,
			LowAlch:  entry.LowAlch,
			Limit:    entry.Limit,
			Icon:     entry.Icon,
		})
	}

	return mapping, nil
}

// GetLatest returns the latest trade prices keyed by item id.
// A single id is requested directly; several ids are filtered from the full response
func (c *WikiPricesClient) GetLatest(ctx context.Context, ids ...int) (map[int]ports.LatestPriceData, error) {
	var params url.Values
	if len(ids) == 1 {
		params = url.Values{"id": {strconv.Itoa(ids[0])}}
	}

	var response struct {
		Data map[string]struct {
			High     *int   `json:"high"`
			HighTime *int64 `json:"highTime"`
			Low      *int   `json:"low"`
			LowTime  *int64 `json:"lowTime"`
		} `json:"data"`
	}

	if err := c.request(ctx, latestPath, params, &response); err != nil {
		return nil, fmt.Errorf("failed to get latest prices: %w", err)
	}
	if response.Data == nil {
		return nil, &MalformedResponseError{Endpoint: latestPath, Reason: "missing data object"}
	}

	wanted := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	latest := make(map[int]ports.LatestPriceData, len(response.Data))
	for key, values := range response.Data {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, &MalformedResponseError{
				Endpoint: latestPath,
				Reason:   fmt.Sprintf("item id %q is not an integer", key),
			}
		}
		if len(wanted) > 0 {
			if _, ok := wanted[id]; !ok {
				continue
			}
		}
		latest[id] = ports.LatestPriceData{
			High:     values.High,
			HighTime: values.HighTime,
			Low:      values.Low,
			LowTime:  values.LowTime,
		}
	}

	return latest, nil
}

// GetTimeseries returns the bucketed price history of one item
func (c *WikiPricesClient) GetTimeseries(ctx context.Context, id int, timestep items.Timestep) ([]ports.TimeseriesPointData, error) {
	if _, err := items.ParseTimestep(string(timestep)); err != nil {
		return nil, err
	}

	params := url.Values{
		"id":       {strconv.Itoa(id)},
		"timestep": {string(timestep)},
	}

	var response struct {
		Data []struct {
			Timestamp       int64 `json:"timestamp"`
			AvgHighPrice    *int  `json:"avgHighPrice"`
			AvgLowPrice     *int  `json:"avgLowPrice"`
			HighPriceVolume *int  `json:"highPriceVolume"`
			LowPriceVolume  *int  `json:"lowPriceVolume"`
		} `json:"data"`
	}

	if err := c.request(ctx, timeseriesPath, params, &response); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusBadRequest || apiErr.StatusCode == http.StatusNotFound) {
			return nil, &InvalidItemError{URL: c.baseURL + timeseriesPath, ItemID: id}
		}
		return nil, fmt.Errorf("failed to get timeseries: %w", err)
	}

	points := make([]ports.TimeseriesPointData, len(response.Data))
	for i, row := range response.Data {
		points[i] = ports.TimeseriesPointData{
			Timestamp:       row.Timestamp,
			AvgHighPrice:    row.AvgHighPrice,
			AvgLowPrice:     row.AvgLowPrice,
			HighPriceVolume: row.HighPriceVolume,
			LowPriceVolume:  row.LowPriceVolume,
		}
	}

	return points, nil
}

// addJitter adds random jitter to a duration to avoid thundering herd
// Returns a duration between 50% and 150% of the original value
func addJitter(d time.Duration) time.Duration {
	jitter := 0.5 + rand.Float64() // 0.5 to 1.5
	return time.Duration(float64(d) * jitter)
}

// request runs a GET through the circuit breaker. Client errors (4xx) don't trip the breaker
func (c *WikiPricesClient) request(ctx context.Context, path string, params url.Values, result interface{}) error {
	var clientErr error

	err := c.breaker.Call(func() error {
		err := c.doWithRetries(ctx, path, params, result)
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
			clientErr = err
			return nil
		}
		return err
	})
	if clientErr != nil {
		return clientErr
	}
	return err
}

// doWithRetries makes an HTTP request with rate limiting and exponential backoff retries
func (c *WikiPricesClient) doWithRetries(ctx context.Context, path string, params url.Values, result interface{}) error {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	logger := common.LoggerFromContext(ctx)

	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		waitStart := time.Now()
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}
		if c.recorder != nil {
			c.recorder.RecordRateLimitWait(http.MethodGet, path, time.Since(waitStart).Seconds())
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		start := time.Now()
		retryErr, err := c.do(req, path, result)
		if c.recorder != nil && retryErr != nil {
			c.recorder.RecordAPIRetry(http.MethodGet, path, retryErr.message)
		}
		if retryErr == nil {
			if err == nil {
				logger.Debug("price feed request succeeded",
					slog.String("endpoint", path),
					slog.Duration("elapsed", time.Since(start)),
				)
			}
			return err
		}
		lastErr = retryErr

		// Last attempt - don't sleep, just record error
		if attempt >= c.maxRetries {
			break
		}

		if ctx.Err() != nil {
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		}

		// Server-provided Retry-After is used without jitter
		backoffDelay := addJitter(c.backoffBase * time.Duration(1<<attempt))
		if retryErr.retryAfter > 0 {
			backoffDelay = retryErr.retryAfter
		}

		logger.Warn("retrying price feed request",
			slog.String("endpoint", path),
			slog.Int("attempt", attempt+1),
			slog.String("reason", retryErr.message),
			slog.Duration("backoff", backoffDelay),
		)
		c.clock.Sleep(backoffDelay)
	}

	if lastErr != nil {
		return fmt.Errorf("max retries exceeded: %w", lastErr)
	}
	return fmt.Errorf("max retries exceeded")
}

// do executes one attempt. A non-nil retryableError means the attempt may be repeated
func (c *WikiPricesClient) do(req *http.Request, endpoint string, result interface{}) (*retryableError, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if req.Context().Err() != nil {
			return nil, fmt.Errorf("context cancelled: %w", req.Context().Err())
		}
		return &retryableError{message: fmt.Errorf("network error: %w", err).Error()}, nil
	}
	defer resp.Body.Close()

	if c.recorder != nil {
		c.recorder.RecordAPIRequest(req.Method, endpoint, resp.StatusCode, time.Since(start).Seconds())
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		var retryAfter time.Duration
		if header := resp.Header.Get("Retry-After"); header != "" {
			if seconds, err := strconv.Atoi(header); err == nil {
				retryAfter = time.Duration(seconds) * time.Second
			}
		}
		return &retryableError{message: "rate limited (429)", retryAfter: retryAfter}, nil

	case resp.StatusCode == http.StatusServiceUnavailable:
		return &retryableError{message: "service unavailable (503)"}, nil

	case resp.StatusCode >= 500:
		return &retryableError{message: fmt.Sprintf("server error (%d)", resp.StatusCode)}, nil

	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return nil, &MalformedResponseError{Endpoint: endpoint, Reason: err.Error()}
		}
	}

	return nil, nil
}
