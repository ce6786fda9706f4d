package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/logging"
	"github.com/google/uuid"
)

// RequestIDHeader carries a fresh uuid on every upstream request.
const RequestIDHeader = "X-Request-ID"

// DefaultTimeout bounds a single upstream call.
const DefaultTimeout = 10 * time.Second

type HTTPClient struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     logging.Logger
}

// NewHTTPClient returns a Directory backed by the REST API at baseURL.
// A non-positive timeout falls back to DefaultTimeout.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{},
		logger:     logger.With("module", "http_client"),
	}
}

func (c *HTTPClient) FetchCollection(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.get(ctx, "/users", &users, nil); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (c *HTTPClient) FetchByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, "/users/"+strconv.FormatInt(id, 10), &user, ErrNotFound); err != nil {
		return nil, err
	}
	return &user, nil
}

// get decodes the JSON body of path into out. A 404 is reported as notFound
// when it is non-nil and as a network error otherwise.
func (c *HTTPClient) get(ctx context.Context, path string, out any, notFound error) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrNetwork, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "request failed", "path", path, "request_id", requestID, "error", err)
		return mapTransportError(err)
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "request done",
		"path", path, "request_id", requestID, "status", resp.StatusCode, "took", time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound && notFound != nil:
		return notFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: HTTP error status %d", ErrNetwork, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if isTimeout(err) {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return fmt.Errorf("%w: decode response: %v", ErrNetwork, err)
	}

	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func mapTransportError(err error) error {
	switch {
	case isTimeout(err):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %w", ErrNetwork, context.Canceled)
	default:
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
}
