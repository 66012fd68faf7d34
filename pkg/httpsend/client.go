package httpsend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/dmitrymomot/sociallogin/pkg/logger"
	"github.com/dmitrymomot/sociallogin/pkg/oauth"
)

const (
	component   = "httpsend"
	breakerName = "oauth_provider"
)

// Client sends oauth.Requests over HTTP.
type Client struct {
	httpClient   *http.Client
	maxBodyBytes int64
	breaker      *gobreaker.CircuitBreaker
	metrics      *Metrics
	logger       *slog.Logger
	cfg          Config
}

var _ oauth.Sender = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithConfig replaces timeout, body limit and breaker settings.
func WithConfig(cfg Config) Option {
	return func(c *Client) {
		c.cfg = cfg
	}
}

// WithHTTPClient sets the underlying client. The Client keeps a shallow copy,
// so hc is never modified; the copy gets the configured timeout when
// hc.Timeout is zero.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			cp := *hc
			c.httpClient = &cp
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.cfg.Timeout = d
	}
}

func WithMaxBodyBytes(n int64) Option {
	return func(c *Client) {
		c.cfg.MaxBodyBytes = n
	}
}

// WithBreaker sets how many consecutive failures open the breaker and how
// long it stays open.
func WithBreaker(maxFailures uint32, timeout time.Duration) Option {
	return func(c *Client) {
		c.cfg.BreakerMaxFailures = maxFailures
		c.cfg.BreakerTimeout = timeout
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Client. Zero config values fall back to DefaultConfig.
func New(opts ...Option) *Client {
	c := &Client{
		cfg:    DefaultConfig(),
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	def := DefaultConfig()
	if c.cfg.Timeout <= 0 {
		c.cfg.Timeout = def.Timeout
	}
	if c.cfg.MaxBodyBytes <= 0 {
		c.cfg.MaxBodyBytes = def.MaxBodyBytes
	}
	if c.cfg.BreakerMaxFailures == 0 {
		c.cfg.BreakerMaxFailures = def.BreakerMaxFailures
	}
	if c.cfg.BreakerTimeout <= 0 {
		c.cfg.BreakerTimeout = def.BreakerTimeout
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.httpClient.Timeout == 0 {
		c.httpClient.Timeout = c.cfg.Timeout
	}
	c.maxBodyBytes = c.cfg.MaxBodyBytes
	c.logger = c.logger.With(logger.Component(component))

	maxFailures := c.cfg.BreakerMaxFailures
	log := c.logger
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    breakerName,
		Timeout: c.cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				logger.Event("breaker_state_changed"),
				logger.Group("breaker",
					slog.String("name", name),
					slog.String("from", from.String()),
					slog.String("to", to.String()),
				),
			)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return c
}

// Send executes req. The returned error is non-nil only when no HTTP response
// was obtained or the body could not be read.
func (c *Client) Send(ctx context.Context, req *oauth.Request) (*oauth.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	var resp *oauth.Response
	start := time.Now()
	_, err := c.breaker.Execute(func() (any, error) {
		var err error
		resp, err = c.do(ctx, req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, errServerStatus
		}
		return nil, nil
	})
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		c.metrics.observe(req.Verb, 0, elapsed)
		c.logger.WarnContext(ctx, "provider request rejected",
			logger.Method(req.Verb),
			logger.URL(req.RedactedURL()),
			logger.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrCircuitOpen, err)
	case err != nil && !errors.Is(err, errServerStatus):
		c.metrics.observe(req.Verb, 0, elapsed)
		c.logger.WarnContext(ctx, "provider request failed",
			logger.Method(req.Verb),
			logger.URL(req.RedactedURL()),
			logger.Duration(elapsed),
			logger.Error(err),
		)
		return nil, err
	}

	c.metrics.observe(req.Verb, resp.StatusCode, elapsed)
	c.logger.DebugContext(ctx, "provider request completed",
		logger.Method(req.Verb),
		logger.URL(req.RedactedURL()),
		logger.StatusCode(resp.StatusCode),
		logger.Duration(elapsed),
	)
	return resp, nil
}

func (c *Client) do(ctx context.Context, req *oauth.Request) (*oauth.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.Verb, req.URL(), nil)
	if err != nil {
		return nil, redactURLError(req, err)
	}
	for name, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(name, v)
		}
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, redactURLError(req, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("httpsend: read body: %w", err)
	}
	if int64(len(body)) > c.maxBodyBytes {
		return nil, ErrBodyTooLarge
	}

	return &oauth.Response{
		StatusCode: httpResp.StatusCode,
		Body:       body,
		Header:     httpResp.Header,
	}, nil
}

// redactURLError replaces the URL net/http embeds in its errors, which carries
// secret query parameters, with the redacted form.
func redactURLError(req *oauth.Request, err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		err = ue.Err
	}
	return fmt.Errorf("httpsend: %s %s: %w", req.Verb, req.RedactedURL(), err)
}
