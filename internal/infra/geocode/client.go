// Package geocode implements the Stadia Maps geocoding provider client.
package geocode

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"listing-discovery-service/internal/domain"
)

// API paths for the Stadia Maps geocoding endpoints.
const (
	forwardEndpoint = "/geocoding/v1/search"
	reverseEndpoint = "/geocoding/v1/reverse"
)

// maxResultSize is the largest result count the provider is asked for.
const maxResultSize = 8

// ClientConfig holds configuration for the geocoding client.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Retry   RetryConfig
	CB      CBConfig
}

// RetryConfig holds retry configuration.
type RetryConfig struct {
	MaxAttempts int
	WaitTime    time.Duration
	MaxWaitTime time.Duration
}

// CBConfig holds circuit breaker configuration.
type CBConfig struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
}

// Client implements domain.Geocoder against the Stadia Maps API. Calls to
// the paid provider go through a retry-enabled resty client wrapped in a
// circuit breaker.
type Client struct {
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
	apiKey string
	logger *zap.Logger
}

// New creates a new geocoding client.
func New(cfg ClientConfig, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retry.MaxAttempts).
		SetRetryWaitTime(cfg.Retry.WaitTime).
		SetRetryMaxWaitTime(cfg.Retry.MaxWaitTime).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Retry on network errors or 5xx status codes
			if err != nil {
				return true
			}

			return r.StatusCode() >= 500
		})

	settings := gobreaker.Settings{
		Name:        "stadia-geocode",
		MaxRequests: cfg.CB.MaxRequests,
		Interval:    cfg.CB.Interval,
		Timeout:     cfg.CB.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)

			return counts.Requests >= 3 && failureRatio >= cfg.CB.FailureRatio
		},
	}

	return &Client{
		client: client,
		cb:     gobreaker.NewCircuitBreaker[*resty.Response](settings),
		apiKey: cfg.APIKey,
		logger: logger,
	}
}

// Forward resolves free text to up to size ranked coordinates.
func (c *Client) Forward(ctx context.Context, text string, size int) ([]domain.GeocodeResult, error) {
	if size < 1 {
		size = 1
	}
	if size > maxResultSize {
		size = maxResultSize
	}

	var collection featureCollection
	_, err := c.get(ctx, forwardEndpoint, map[string]string{
		"text": text,
		"size": strconv.Itoa(size),
	}, &collection)
	if err != nil {
		c.logger.Warn("forward geocode failed",
			zap.String("text", text),
			zap.String("state", c.cb.State().String()),
			zap.Error(err),
		)

		return nil, fmt.Errorf("%w: %v", domain.ErrGeocodeFailed, err)
	}

	if len(collection.Features) == 0 {
		return nil, domain.ErrLocationNotFound
	}

	results := make([]domain.GeocodeResult, 0, len(collection.Features))
	for _, f := range collection.Features {
		results = append(results, f.toResult(text))
	}

	return results, nil
}

// Reverse resolves a coordinate to location/country labels.
func (c *Client) Reverse(ctx context.Context, lon, lat float64) (*domain.ReverseResult, error) {
	var collection featureCollection
	_, err := c.get(ctx, reverseEndpoint, map[string]string{
		"point.lon": strconv.FormatFloat(lon, 'f', -1, 64),
		"point.lat": strconv.FormatFloat(lat, 'f', -1, 64),
		"size":      "1",
	}, &collection)
	if err != nil {
		c.logger.Warn("reverse geocode failed",
			zap.Float64("lon", lon),
			zap.Float64("lat", lat),
			zap.String("state", c.cb.State().String()),
			zap.Error(err),
		)

		return nil, fmt.Errorf("%w: %v", domain.ErrGeocodeFailed, err)
	}

	if len(collection.Features) == 0 {
		return nil, domain.ErrLocationNotFound
	}

	return collection.Features[0].toReverse(), nil
}

// get executes a provider request through the circuit breaker.
func (c *Client) get(ctx context.Context, endpoint string, params map[string]string, result interface{}) (*resty.Response, error) {
	return c.cb.Execute(func() (*resty.Response, error) {
		r, err := c.client.R().
			SetContext(ctx).
			SetQueryParams(params).
			SetQueryParam("api_key", c.apiKey).
			SetResult(result).
			Get(endpoint)
		if err != nil {
			return nil, err
		}
		if r.IsError() {
			return nil, fmt.Errorf("provider returned status %d", r.StatusCode())
		}

		return r, nil
	})
}
