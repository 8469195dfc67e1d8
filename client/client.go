package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/InsulaLabs/counsel/models"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultRetries   = 3
	defaultUserAgent = "counsel-client/1"

	tracerName = "github.com/InsulaLabs/counsel/client"

	DefaultBaseURLVar    = "COUNSEL_BASE_URL"
	DefaultTokenVar      = "COUNSEL_TOKEN"
	DefaultSkipVerifyVar = "COUNSEL_SKIP_VERIFY"
)

type RateLimit struct {
	Limit float64 // requests per second, zero disables limiting
	Burst int
}

type Config struct {
	BaseURL    string // e.g. https://admin.example.com/api
	Token      TokenSource
	SkipVerify bool
	Timeout    time.Duration
	Retries    int // attempts made for rate limited JSON calls
	RateLimit  RateLimit
	UserAgent  string
	Logger     *slog.Logger

	// Registerer receives the client's metrics. A private registry is used
	// when nil so several clients can live in one process.
	Registerer prometheus.Registerer

	// HTTPClient replaces the transport built from SkipVerify and Timeout.
	HTTPClient *http.Client
}

// RequestConfig carries per-call headers and query parameters. Headers set
// here replace the client's defaults for the same key.
type RequestConfig struct {
	Headers http.Header
	Query   url.Values
}

// Response is a fully read HTTP response. Any status code is returned as a
// Response; only failures to obtain one are reported as errors.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client is the API client for the console backend.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	token      TokenSource
	limiter    *rate.Limiter
	retries    int
	userAgent  string
	logger     *slog.Logger
	metrics    *metrics
	gatherer   prometheus.Gatherer
	tracer     trace.Tracer
}

// NewClient creates a new console API client.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigMissing
	}
	if cfg.BaseURL == "" {
		return nil, ErrBaseURLMissing
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clientLogger := logger.WithGroup("counsel_client")

	baseURL, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		clientLogger.Error("Failed to parse base URL", "url", cfg.BaseURL, "error", err)
		return nil, fmt.Errorf("failed to parse base URL '%s': %w", cfg.BaseURL, err)
	}
	if baseURL.Host == "" {
		return nil, fmt.Errorf("base URL '%s' has no host: %w", cfg.BaseURL, ErrBaseURLMissing)
	}

	// HTTPS is enforced for everything but loopback, which the mock backend
	// and tests bind to.
	switch baseURL.Scheme {
	case "https":
	case "http":
		if !isLoopback(baseURL.Hostname()) {
			return nil, fmt.Errorf("%w: %s", ErrInsecureBaseURL, cfg.BaseURL)
		}
	default:
		return nil, fmt.Errorf("unsupported scheme %q in base URL: %w", baseURL.Scheme, ErrInsecureBaseURL)
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		if cfg.SkipVerify {
			clientLogger.Info("TLS verification is skipped.")
		}
		httpClient = &http.Client{
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				TLSClientConfig: &tls.Config{InsecureSkipVerify: cfg.SkipVerify},
			},
			Timeout: cfg.Timeout,
		}
	}

	retries := cfg.Retries
	if retries <= 0 {
		retries = defaultRetries
	}

	var limiter *rate.Limiter
	if cfg.RateLimit.Limit > 0 {
		burst := cfg.RateLimit.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.Limit), burst)
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	registerer := cfg.Registerer
	var gatherer prometheus.Gatherer
	if registerer == nil {
		reg := prometheus.NewRegistry()
		registerer, gatherer = reg, reg
	} else if g, ok := registerer.(prometheus.Gatherer); ok {
		gatherer = g
	}

	clientLogger.Info("Counsel client initialized", "base_url", baseURL.String(), "tls_skip_verify", cfg.SkipVerify, "rate_limit", cfg.RateLimit.Limit)

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		token:      cfg.Token,
		limiter:    limiter,
		retries:    retries,
		userAgent:  userAgent,
		logger:     clientLogger,
		metrics:    newMetrics(registerer),
		gatherer:   gatherer,
		tracer:     otel.Tracer(tracerName),
	}, nil
}

// CreateClientFromEnv builds a client from COUNSEL_BASE_URL, COUNSEL_TOKEN and
// COUNSEL_SKIP_VERIFY.
func CreateClientFromEnv(logger *slog.Logger) (*Client, error) {
	baseURL := os.Getenv(DefaultBaseURLVar)
	if baseURL == "" {
		return nil, fmt.Errorf("%s is not set: %w", DefaultBaseURLVar, ErrBaseURLMissing)
	}
	skipVerify, _ := strconv.ParseBool(os.Getenv(DefaultSkipVerifyVar))
	return NewClient(&Config{
		BaseURL:    baseURL,
		Token:      EnvToken(DefaultTokenVar),
		SkipVerify: skipVerify,
		Logger:     logger,
	})
}

// Metrics returns the gatherer holding the client's metrics, or nil when the
// configured registerer cannot be gathered from.
func (c *Client) Metrics() prometheus.Gatherer {
	return c.gatherer
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func (c *Client) resolve(path string, query url.Values) *url.URL {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u
}

// PostRaw issues a single POST and returns whatever response the server gave.
// The error is non-nil only when no response was obtained, and it is the
// error produced by the transport, unwrapped.
func (c *Client) PostRaw(ctx context.Context, path string, body io.Reader, rc *RequestConfig) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, body, rc)
}

// internal request helper
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, rc *RequestConfig) (*Response, error) {
	if rc == nil {
		rc = &RequestConfig{}
	}
	reqURL := c.resolve(path, rc.Query)

	ctx, span := c.tracer.Start(ctx, "counsel.client "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("counsel.path", path),
		),
	)
	defer span.End()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "rate limiter wait")
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		c.logger.Error("Failed to create new HTTP request", "method", method, "url", reqURL.String(), "error", err)
		return nil, fmt.Errorf("failed to create request %s %s: %w", method, reqURL.String(), err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", requestID)

	// The token is optional; requests without one go out unauthenticated
	// and the server decides.
	if c.token != nil {
		token, err := c.token.Token(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "token")
			return nil, fmt.Errorf("failed to obtain access token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	for key, values := range rc.Headers {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	c.logger.Debug("Sending request", "method", method, "url", reqURL.String(), "request_id", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(path, "transport_error", time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		c.logger.Error("HTTP request failed", "method", method, "url", reqURL.String(), "request_id", requestID, "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.observe(path, "transport_error", time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, "read body")
		c.logger.Error("Failed to read response body", "method", method, "url", reqURL.String(), "status_code", resp.StatusCode, "error", err)
		return nil, err
	}

	c.metrics.observe(path, strconv.Itoa(resp.StatusCode), time.Since(start))
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode >= 400 {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
		c.logger.Warn("Received non-2xx status code", "method", method, "url", reqURL.String(), "status_code", resp.StatusCode, "request_id", requestID)
	} else {
		c.logger.Debug("Request successful", "method", method, "url", reqURL.String(), "status_code", resp.StatusCode)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// Post sends in as JSON and decodes the data member of the reply into out.
func (c *Client) Post(ctx context.Context, path string, in, out any, opts ...CallOption) (*models.BaseResult, error) {
	return c.doJSON(ctx, http.MethodPost, path, in, out, opts)
}

// Get issues a GET; parameters travel as query values via WithQuery.
func (c *Client) Get(ctx context.Context, path string, out any, opts ...CallOption) (*models.BaseResult, error) {
	return c.doJSON(ctx, http.MethodGet, path, nil, out, opts)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any, opts []CallOption) (*models.BaseResult, error) {
	rc := newRequestConfig(opts)

	var payload []byte
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			c.logger.Error("Failed to marshal request body", "path", path, "method", method, "error", err)
			return nil, fmt.Errorf("failed to marshal request body for %s %s: %w", method, path, err)
		}
		if rc.Headers.Get("Content-Type") == "" {
			rc.Headers.Set("Content-Type", "application/json")
		}
	}

	return withRetries(ctx, c.logger, c.retries, func() (*models.BaseResult, error) {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		resp, err := c.do(ctx, method, path, body, rc)
		if err != nil {
			return nil, fmt.Errorf("%s %s failed: %w", method, path, err)
		}
		return c.decodeEnvelope(method, path, resp, out)
	})
}

func (c *Client) decodeEnvelope(method, path string, resp *Response, out any) (*models.BaseResult, error) {
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, rateLimitedFrom(resp)
	}
	if !resp.OK() {
		apiErr := ParseErrorBody(resp.StatusCode, resp.Body, "")
		c.logger.Debug("Parsed error response from server", "status_code", resp.StatusCode, "code", apiErr.Code, "message", apiErr.Message, "rid", apiErr.RequestID)
		return nil, apiErr
	}

	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return &models.BaseResult{Code: resp.StatusCode}, nil
	}

	// Bodies that are not an envelope (arrays, bare objects without the
	// envelope members) decode straight into out.
	var env models.Envelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		if out == nil {
			return &models.BaseResult{Code: resp.StatusCode}, nil
		}
		if err := json.Unmarshal(resp.Body, out); err != nil {
			c.logger.Error("Failed to decode response body", "method", method, "path", path, "status_code", resp.StatusCode, "error", err)
			return nil, fmt.Errorf("failed to decode response body for %s %s (status %d): %w", method, path, resp.StatusCode, err)
		}
		return &models.BaseResult{Code: resp.StatusCode}, nil
	}

	if !successCode(env.Code) {
		message := env.Message
		if message == "" {
			message = GenericErrorMessage
		}
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       env.Code,
			Message:    message,
			RequestID:  env.RID,
			Structured: true,
		}
	}

	if out != nil {
		src := resp.Body
		if env.HasData() {
			src = env.Data
		}
		if err := json.Unmarshal(src, out); err != nil {
			c.logger.Error("Failed to decode response body", "method", method, "path", path, "status_code", resp.StatusCode, "error", err)
			return nil, fmt.Errorf("failed to decode response body for %s %s (status %d): %w", method, path, resp.StatusCode, err)
		}
	}

	result := env.BaseResult
	if result.Code == 0 {
		result.Code = resp.StatusCode
	}
	return &result, nil
}

// successCode reports whether an envelope code means success. The backend
// uses 200; zero means the member was absent.
func successCode(code int) bool {
	return code == 0 || code == http.StatusOK
}
