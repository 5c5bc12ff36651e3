package apis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultTimeout       = 10 * time.Second
	DefaultRetryAttempts = uint(1)

	correlationHeader = "x-correlation-id"
	maxErrorBody      = 4096
)

// Endpoint locates an upstream API. Token is sent verbatim in the Authorization header.
type Endpoint struct {
	URL   string
	Token string
}

type ClientOption func(*Client)

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

func WithRetryAttempts(attempts uint) ClientOption {
	return func(c *Client) {
		if attempts > 0 {
			c.attempts = attempts
		}
	}
}

func WithRetryDelay(delay time.Duration) ClientOption {
	return func(c *Client) {
		c.delay = delay
	}
}

func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.http = client
	}
}

// Client performs authenticated get-by-id calls against a single upstream API.
type Client struct {
	api      string
	endpoint Endpoint
	http     *http.Client
	attempts uint
	delay    time.Duration
}

func NewClient(api string, endpoint Endpoint, options ...ClientOption) *Client {
	client := &Client{
		api:      api,
		endpoint: Endpoint{URL: strings.TrimRight(strings.TrimSpace(endpoint.URL), "/"), Token: endpoint.Token},
		http: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		attempts: DefaultRetryAttempts,
		delay:    100 * time.Millisecond,
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// getByID fetches {url}/{collection}/{id} into out. It reports false with no error when the API answers 404.
func (c *Client) getByID(ctx context.Context, collection string, id uuid.UUID, correlationID uuid.UUID, out any) (bool, error) {
	if c.endpoint.URL == "" {
		return false, fmt.Errorf("%s api url is not configured", c.api)
	}

	route := fmt.Sprintf("%s/%s/%s", c.endpoint.URL, collection, id)
	log := zerolog.Ctx(ctx).With().Str("api", c.api).Str("route", route).Logger()

	found := false
	err := retry.Do(
		func() error {
			var err error
			found, err = c.get(ctx, route, id, correlationID, out)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.RetryIf(transient),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Err(err).Uint("attempt", n+1).Msg("retrying api call")
		}),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return false, err
	}

	log.Debug().Bool("found", found).Msg("api call complete")
	return found, nil
}

func (c *Client) get(ctx context.Context, route string, id uuid.UUID, correlationID uuid.UUID, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, route, nil)
	if err != nil {
		return false, pkgerrors.Wrap(err, "failed to create request")
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.endpoint.Token)
	req.Header.Set(correlationHeader, correlationID.String())

	resp, err := c.http.Do(req)
	if err != nil {
		return false, &transportError{err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return false, pkgerrors.Wrapf(err, "failed to decode %s response for id %s", c.api, id)
		}
		return true, nil
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return false, &ApiError{Api: c.api, ID: id, StatusCode: resp.StatusCode, Body: string(body)}
	}
}

type transportError struct {
	err error
}

func (e *transportError) Error() string {
	return e.err.Error()
}

func (e *transportError) Unwrap() error {
	return e.err
}

// transient selects the failures worth retrying: transport errors and gateway statuses. A 404 never reaches here.
func transient(err error) bool {
	var api *ApiError
	if errors.As(err, &api) {
		return api.Transient()
	}

	var transport *transportError
	return errors.As(err, &transport)
}
