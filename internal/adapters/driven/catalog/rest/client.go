package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"

	"github.com/custodia-labs/partfinder-cli/internal/catalogapi"
	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driven"
	"github.com/custodia-labs/partfinder-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.CatalogService = (*Client)(nil)

const (
	// maxBodySize caps how much of a response is read.
	maxBodySize = 8 << 20

	// maxErrorBody caps the response text kept on a ServiceError.
	maxErrorBody = 512
)

// Config holds configuration for the catalog client.
type Config struct {
	// BaseURL is the catalog API root (default: http://localhost:3042/api).
	BaseURL string

	// Timeout bounds each HTTP exchange (default: 10s).
	Timeout time.Duration

	// RequestsPerSecond throttles requests. Zero disables throttling.
	RequestsPerSecond float64

	// Burst is the number of requests allowed above the sustained rate.
	Burst int

	// Breaker configures the circuit breaker.
	Breaker BreakerConfig

	// HTTPClient overrides the underlying client. Its Timeout is left alone.
	HTTPClient *http.Client
}

// ConfigFromSettings builds a client configuration from catalog settings.
func ConfigFromSettings(s domain.CatalogSettings) Config {
	return Config{
		BaseURL:           s.BaseURL,
		Timeout:           s.Timeout(),
		RequestsPerSecond: s.RequestsPerSecond,
		Burst:             s.Burst,
		Breaker:           DefaultBreakerConfig(),
	}
}

// Client talks to the catalog HTTP API.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *RateLimiter
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// New creates a catalog client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultCatalogBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = domain.DefaultTimeoutSeconds * time.Second
	}
	if cfg.Breaker.Name == "" {
		cfg.Breaker = DefaultBreakerConfig()
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: catalog base URL %q", domain.ErrInvalidInput, cfg.BaseURL)
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		http:    client,
		baseURL: strings.TrimRight(base.String(), "/"),
		limiter: NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst),
		breaker: newBreaker(cfg.Breaker),
	}, nil
}

// BaseURL returns the catalog API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Categories returns every raw category string.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.get(ctx, catalogapi.PathCategories, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Makes returns makes matching term.
func (c *Client) Makes(ctx context.Context, term string) ([]string, error) {
	q := url.Values{catalogapi.ParamTerm: {term}}
	var out []string
	if err := c.get(ctx, catalogapi.PathMakes, q.Encode(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Models returns the models for a make, narrowed to year when non-empty.
func (c *Client) Models(ctx context.Context, mk, year string) ([]string, error) {
	q := url.Values{catalogapi.ParamMake: {mk}}
	if year != "" {
		q.Set(catalogapi.ParamYear, year)
	}
	var out []string
	if err := c.get(ctx, catalogapi.PathModels, q.Encode(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// YearRange returns the model-year bounds for a make.
func (c *Client) YearRange(ctx context.Context, mk string) (domain.YearRange, error) {
	q := url.Values{catalogapi.ParamMake: {mk}}
	var out catalogapi.YearRange
	if err := c.get(ctx, catalogapi.PathYearsRange, q.Encode(), &out); err != nil {
		return domain.YearRange{}, err
	}
	return out.ToDomain(), nil
}

// Suggestions returns keyword completions for term.
func (c *Client) Suggestions(ctx context.Context, term string) ([]string, error) {
	q := url.Values{catalogapi.ParamTerm: {term}}
	var out []string
	if err := c.get(ctx, catalogapi.PathSuggestions, q.Encode(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Products returns products matching query, sending facets in canonical order.
func (c *Client) Products(ctx context.Context, query domain.ProductQuery) ([]domain.Product, error) {
	var out []catalogapi.Product
	if err := c.get(ctx, catalogapi.PathProducts, query.Encode(), &out); err != nil {
		return nil, err
	}
	return catalogapi.ProductsToDomain(out), nil
}

// Product returns a single product by ID.
func (c *Client) Product(ctx context.Context, id string) (*domain.Product, error) {
	var out catalogapi.Product
	if err := c.get(ctx, catalogapi.ProductPath(id), "", &out); err != nil {
		return nil, err
	}
	p := out.ToDomain()
	return &p, nil
}

// get performs one GET through the limiter and breaker and decodes the body.
func (c *Client) get(ctx context.Context, path, rawQuery string, out any) error {
	label := endpointLabel(path)
	start := time.Now()

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.fetch(ctx, path, rawQuery)
	})
	requestDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())

	if err != nil {
		var se *domain.ServiceError
		switch {
		case isBreakerRejection(err):
			requestsTotal.WithLabelValues(label, outcomeBreakerOpen).Inc()
			return fmt.Errorf("%w: %s: %w", domain.ErrNetworkFailure, path, err)
		case errors.As(err, &se):
			requestsTotal.WithLabelValues(label, outcomeStatus).Inc()
		default:
			requestsTotal.WithLabelValues(label, outcomeNetwork).Inc()
		}
		return err
	}
	requestsTotal.WithLabelValues(label, outcomeOK).Inc()

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode %s response: %w", domain.ErrServiceError, path, err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, path, rawQuery string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err)
	}

	target := c.baseURL + path
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(catalogapi.RequestIDHeader, requestID)

	log := logger.Component("catalog")
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug().Str("request_id", requestID).Str("url", target).Err(err).Msg("request failed")
		return nil, fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s response: %w", domain.ErrNetworkFailure, path, err)
	}

	log.Debug().
		Str("request_id", requestID).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("request")

	if resp.StatusCode == http.StatusTooManyRequests {
		c.limiter.Backoff(resp.Header.Get("Retry-After"))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.ServiceError{
			Endpoint: path,
			Status:   resp.StatusCode,
			Body:     errorBody(body),
		}
	}
	return body, nil
}

// endpointLabel collapses product IDs so metrics stay low-cardinality.
func endpointLabel(path string) string {
	if strings.HasPrefix(path, catalogapi.PathProducts+"/") {
		return catalogapi.PathProducts + "/{id}"
	}
	return path
}

func errorBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody]
	}
	return text
}
