package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/malbeacon/malbeacon/internal/config"
	"github.com/malbeacon/malbeacon/internal/model"
	"github.com/malbeacon/malbeacon/internal/pkg/apperrors"
	"github.com/malbeacon/malbeacon/internal/pkg/logger"
)

const headerAPIKey = "X-Api-Key"

// Upstream error envelope messages. The API wraps failures in a JSON
// object carrying one of these in its "message" field.
const (
	msgNoResults    = "ERROR: No Results"
	msgUnauthorized = "ERROR: Unauthorized"
	msgQuota        = "ERROR: RequestExceedQuota"
	msgPrivileged   = "ERROR: PrivilegedAccountRequired"
)

// envelope is the upstream error body.
type envelope struct {
	Message string `json:"message"`
}

// Client issues authenticated lookups against the MalBeacon API.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
}

func New(cfg *config.Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	httpClient := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
		Timeout: timeout,
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     cfg.APIKey,
		userAgent:  cfg.UserAgent,
		httpClient: httpClient,
	}
}

// Query runs one module lookup and decodes the beacon list. An empty
// result is not an error: the upstream "No Results" reply and a bare
// empty array both come back as a zero-length slice.
func (c *Client) Query(ctx context.Context, m Module, query string) ([]model.Beacon, error) {
	u := c.baseURL + "/" + m.EndpointPath(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrRequest, fmt.Sprintf("build request for %s", u), err)
	}

	// The API key itself never reaches the logs.
	reqID := uuid.New().String()
	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	logger.Debug("requesting beacons", "module", m.Name, "url", u, "request_id", reqID)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrRequest, fmt.Sprintf("request to %s failed", u), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrRequest, fmt.Sprintf("read response from %s", u), err)
	}

	logger.Debug("upstream responded",
		"status", resp.StatusCode,
		"bytes", len(body),
		"latency_ms", time.Since(start).Milliseconds(),
		"request_id", reqID,
	)

	if resp.StatusCode != http.StatusOK {
		return mapErrorReply(resp.StatusCode, body, u)
	}

	var beacons []model.Beacon
	if err := json.Unmarshal(body, &beacons); err != nil {
		return nil, apperrors.NewFormat(fmt.Sprintf("response from %s is not a beacon array", u), err)
	}
	return beacons, nil
}

// CookieBeacons looks up C2 beacons recorded for a tracking cookie.
func (c *Client) CookieBeacons(ctx context.Context, cookieID string) ([]model.Beacon, error) {
	return c.Query(ctx, Cookie, cookieID)
}

// mapErrorReply maps the upstream error envelope onto the error
// taxonomy. "No Results" is the one non-error reply: the caller gets
// an empty beacon list.
func mapErrorReply(status int, body []byte, u string) ([]model.Beacon, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		switch env.Message {
		case msgNoResults:
			return []model.Beacon{}, nil
		case msgUnauthorized:
			return nil, apperrors.New(apperrors.ErrUnauthorized, "upstream rejected the API key", nil)
		case msgQuota:
			return nil, apperrors.New(apperrors.ErrQuotaExceeded, "account query quota exhausted", nil)
		case msgPrivileged:
			return nil, apperrors.New(apperrors.ErrPrivileged, "module requires a privileged account", nil)
		default:
			return nil, apperrors.New(apperrors.ErrRequest, fmt.Sprintf("upstream replied %d: %s", status, env.Message), nil)
		}
	}
	return nil, apperrors.New(apperrors.ErrRequest, fmt.Sprintf("unexpected status %d from %s", status, u), nil)
}
