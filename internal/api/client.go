package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Taishi66/folio-tui/internal/config"
	"github.com/Taishi66/folio-tui/internal/domain"
)

// Client talks to the PortfolioPulse backend.
// It implements domain.Gateway.
type Client struct {
	httpClient *http.Client
	baseURL    string
	maxRetries int
	backoff    time.Duration
	logger     *zap.Logger

	// sleep waits between transport retries; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// Compile-time check that Client implements domain.Gateway.
var _ domain.Gateway = (*Client)(nil)

// NewClient creates a client from the API section of the config.
func NewClient(cfg config.APIConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.RetryBackoff,
		logger:     logger,
		sleep:      sleepCtx,
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

// get issues a GET and returns the response for 2xx statuses. Error
// statuses are parsed into an APIError and returned without retry;
// retryable transport failures are retried with linear backoff.
func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	endpoint := c.baseURL + path

	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, domain.NewBadRequest(fmt.Sprintf("无效的请求地址: %v", err))
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			apiErr := ParseError(err)
			if apiErr.IsRetryable() && attempt < c.maxRetries && ctx.Err() == nil {
				c.logger.Warn("request failed, retrying",
					zap.String("path", path),
					zap.Int("attempt", attempt+1),
					zap.Int("max_retries", c.maxRetries),
					zap.Error(err))
				if sleepErr := c.sleep(ctx, c.backoff*time.Duration(attempt+1)); sleepErr != nil {
					return nil, ParseError(sleepErr)
				}
				continue
			}
			return nil, apiErr
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			defer resp.Body.Close()
			return nil, ParseErrorResponse(resp)
		}
		return resp, nil
	}
}

// getJSON fetches path and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		e := domain.NewAPIError(domain.ParseError, domain.DefaultMessage(domain.ParseError))
		e.Details = err.Error()
		e.HTTPStatus = resp.StatusCode
		e.Err = err
		return e
	}
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// logFailure records a failed call with its operation context.
func (c *Client) logFailure(op string, err error, fields ...zap.Field) {
	apiErr := ParseError(err)
	fields = append(fields,
		zap.String("op", op),
		zap.String("code", apiErr.Kind.String()),
		zap.Int("http_status", apiErr.HTTPStatus),
		zap.String("request_id", apiErr.RequestID),
		zap.String("details", apiErr.Details))
	c.logger.Error(apiErr.Message, fields...)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
