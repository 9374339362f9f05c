// Package gateway provides read-only connectivity to the FM Portal gateway,
// the upstream API serving the consolidated dashboard document and the
// centre list. The gateway is a black box; this package owns the transport,
// query-parameter stamping and strict payload decoding.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hashimpk07/FMPortal-sub002/internal/config"
	"github.com/hashimpk07/FMPortal-sub002/internal/domain"
	"go.uber.org/zap"
)

const (
	// Default retry configuration for transient request failures
	defaultMaxRetries     = 3
	defaultInitialBackoff = 500 * time.Millisecond
	defaultMaxBackoff     = 5 * time.Second
	defaultBackoffFactor  = 2.0

	// Default health check timeout
	defaultHealthCheckTimeout = 5 * time.Second

	// ISO stamps for full-day inclusive range boundaries
	startOfDayStamp = "T00:00:00.000000Z"
	endOfDayStamp   = "T23:59:59.000000Z"
)

// Client provides read-only access to the FM Portal gateway.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	apiKey     string
	maxRetries int
	logger     *zap.Logger
}

// HealthStatus represents the health check result for the gateway connection
type HealthStatus struct {
	Status  string        `json:"status"`
	Latency time.Duration `json:"latency_ms"`
	Error   string        `json:"error,omitempty"`
}

// NewClient creates a new gateway client from the given configuration.
func NewClient(cfg *config.GatewayConfig, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("gateway base URL is required")
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid gateway base URL: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	timeout := cfg.RequestTimeoutDuration()
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	logger.Info("Initializing gateway client",
		zap.String("base_url", base.String()),
		zap.Duration("request_timeout", timeout),
		zap.Int("max_retries", maxRetries),
	)

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    base,
		apiKey:     cfg.APIKey,
		maxRetries: maxRetries,
		logger:     logger,
	}, nil
}

// FetchDashboard retrieves the consolidated dashboard document for the given
// filter in a single round trip. The centre filter is omitted for the "all
// centres" selection; date boundaries are stamped to full-day inclusive
// instants.
func (c *Client) FetchDashboard(ctx context.Context, filter domain.DashboardFilterState) (*DashboardPayload, error) {
	query := url.Values{}
	if id, ok := filter.Centre.CentreID(); ok {
		query.Set("centreId", strconv.Itoa(id))
	}
	if filter.Range.Start != nil {
		query.Set("startDate", filter.Range.Start.Format("2006-01-02")+startOfDayStamp)
	}
	if filter.Range.End != nil {
		query.Set("endDate", filter.Range.End.Format("2006-01-02")+endOfDayStamp)
	}

	var payload DashboardPayload
	if err := c.getJSON(ctx, "dashboard", query, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch dashboard: %w", err)
	}
	return &payload, nil
}

// FetchCentres retrieves the centre list and flattens the nested attribute
// shape into plain {id, name} records.
func (c *Client) FetchCentres(ctx context.Context) ([]domain.Centre, error) {
	var payload []CentrePayload
	if err := c.getJSON(ctx, "centres", nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch centres: %w", err)
	}

	centres := make([]domain.Centre, len(payload))
	for i, p := range payload {
		centres[i] = domain.Centre{ID: p.ID, Name: p.Attributes.Name}
	}
	return centres, nil
}

// HealthCheck probes the gateway and reports latency. Used by the readiness
// endpoint.
func (c *Client) HealthCheck(ctx context.Context) *HealthStatus {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultHealthCheckTimeout)
		defer cancel()
	}

	start := time.Now()
	err := c.getJSON(ctx, "health", nil, nil)
	latency := time.Since(start)

	status := &HealthStatus{Latency: latency}
	if err != nil {
		c.logger.Warn("Gateway health check failed",
			zap.Error(err),
			zap.Duration("latency", latency),
		)
		status.Status = "unhealthy"
		status.Error = err.Error()
	} else {
		status.Status = "healthy"
	}
	return status
}

// getJSON issues a GET with retry on transport errors and 5xx responses,
// decoding the body into target when target is non-nil.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, target interface{}) error {
	endpoint := *c.baseURL
	endpoint.Path, _ = url.JoinPath(endpoint.Path, path)
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	requestID := uuid.New().String()
	backoff := defaultInitialBackoff

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
		if err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-ID", requestID)
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			c.logger.Warn("Gateway request failed",
				zap.String("path", path),
				zap.String("request_id", requestID),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if attempt < c.maxRetries {
				time.Sleep(backoff)
				backoff = min(time.Duration(float64(backoff)*defaultBackoffFactor), defaultMaxBackoff)
			}
			continue
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("gateway returned %d: %s", resp.StatusCode, string(body))
			c.logger.Warn("Gateway returned server error",
				zap.String("path", path),
				zap.String("request_id", requestID),
				zap.Int("status_code", resp.StatusCode),
				zap.Int("attempt", attempt),
			)
			if attempt < c.maxRetries {
				time.Sleep(backoff)
				backoff = min(time.Duration(float64(backoff)*defaultBackoffFactor), defaultMaxBackoff)
			}
			continue
		}

		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			_ = resp.Body.Close()
			return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, string(body))
		}

		if target == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			return nil
		}

		err = json.NewDecoder(resp.Body).Decode(target)
		_ = resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to decode gateway response: %w", err)
		}

		c.logger.Debug("Gateway request completed",
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Duration("duration", time.Since(start)),
		)
		return nil
	}

	return fmt.Errorf("gateway request failed after %d attempts: %w", c.maxRetries, lastErr)
}
