// internal/loyalty/client.go
package loyalty

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/loyalty-portal/internal/config"
	"golang.org/x/time/rate"
)

// Client talks to the remote loyalty backend. It owns the base transport;
// each resource group hangs off it as a service field.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter
	retryReads bool
	logger     *logrus.Logger

	// Resource groups, one per backend endpoint family
	Products   *ProductsService
	Companies  *CompaniesService
	Redemption *RedemptionService
	Orders     *OrdersService
	Inventory  *InventoryService
}

// authTransport attaches the bearer token and a request id to every upstream call
type authTransport struct {
	token string
	base  http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}
	req.Header.Set("X-Request-ID", uuid.New().String())
	req.Header.Set("Content-Type", "application/json")
	return t.base.RoundTrip(req)
}

// NewClient creates a loyalty backend client from configuration
func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	base, err := url.Parse(cfg.Backend.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend base URL %q: %w", cfg.Backend.BaseURL, err)
	}

	c := &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout: cfg.Backend.Timeout,
			Transport: &authTransport{
				token: cfg.Backend.APIToken,
				base:  http.DefaultTransport,
			},
		},
		limiter:    rate.NewLimiter(rate.Limit(cfg.Backend.RequestsPerSecond), cfg.Backend.RequestBurst),
		retryReads: cfg.Backend.RetryReads,
		logger:     logger,
	}

	c.Products = &ProductsService{client: c}
	c.Companies = &CompaniesService{client: c}
	c.Redemption = &RedemptionService{client: c}
	c.Orders = &OrdersService{client: c}
	c.Inventory = &InventoryService{client: c}

	return c, nil
}

// get performs a GET with query params, decoding the response into dest.
// Failed reads are retried once; mutations never are.
func (c *Client) get(ctx context.Context, path string, query url.Values, dest interface{}) error {
	err := c.do(ctx, http.MethodGet, path, query, nil, dest)
	if err == nil || !c.retryReads {
		return err
	}

	// One automatic retry for reads that failed on transport or a 5xx
	if apiErr, ok := AsAPIError(err); ok {
		if apiErr.Kind == KindNetwork || (apiErr.Kind == KindServer && apiErr.Status >= 500) {
			c.logger.WithFields(logrus.Fields{
				"path":  path,
				"error": apiErr.Message,
			}).Warn("Retrying failed read")
			return c.do(ctx, http.MethodGet, path, query, nil, dest)
		}
	}
	return err
}

// post performs a POST with an optional JSON body, decoding the response into dest
func (c *Client) post(ctx context.Context, path string, query url.Values, body, dest interface{}) error {
	return c.do(ctx, http.MethodPost, path, query, body, dest)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dest interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return NewNetworkError(err)
	}

	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No response reached the server
		return NewNetworkError(err)
	}
	defer resp.Body.Close()

	c.logger.WithFields(logrus.Fields{
		"method":  method,
		"path":    path,
		"status":  resp.StatusCode,
		"latency": time.Since(start),
	}).Debug("Upstream request completed")

	if resp.StatusCode == http.StatusUnauthorized {
		return NewAuthorizationError(readErrorMessage(resp.Body))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return NewServerError(resp.StatusCode, readErrorMessage(resp.Body))
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return NewServerError(resp.StatusCode, fmt.Sprintf("malformed response: %v", err))
	}
	return nil
}

// readErrorMessage extracts a message from an error payload, falling back to raw text
func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(data))
}
