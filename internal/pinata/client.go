package pinata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"pinatatracks/internal/logger"
	"pinatatracks/pkg/models"
)

const (
	PublicFilesEndpoint = "/files/public"
	PageLimit           = 50
	SortOrder           = "DESC"

	// MaxErrorBody caps the upstream error body kept for the caller.
	MaxErrorBody = 1 << 20
	// TruncatedSuffix marks an error body cut at MaxErrorBody.
	TruncatedSuffix = "... [truncated]"
)

var (
	// ErrTransport wraps failures to reach Pinata or read its response.
	ErrTransport = errors.New("pinata unreachable")
	// ErrDecode wraps malformed JSON from Pinata.
	ErrDecode = errors.New("failed to decode pinata response")
)

// RequestError is returned when Pinata answers with a non-2xx status.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("pinata request failed with status %d", e.StatusCode)
}

type Client struct {
	baseURL    string
	jwt        string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient returns a client for the Pinata v3 API rooted at baseURL.
// timeout bounds each call; zero disables it.
func NewClient(baseURL, jwt string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		jwt:     jwt,
		timeout: timeout,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *Client) makeRequest(ctx context.Context, method, endpoint string, query url.Values) (*http.Response, error) {
	reqURL := c.baseURL + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.jwt)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	return resp, nil
}

// ListPublicFiles fetches the newest public files of group. group is sent
// as given, without validation.
func (c *Client) ListPublicFiles(ctx context.Context, group string) ([]models.File, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(PageLimit))
	query.Set("group", group)
	query.Set("order", SortOrder)

	start := time.Now()
	resp, err := c.makeRequest(ctx, http.MethodGet, PublicFilesEndpoint, query)
	if err != nil {
		logger.LogUpstreamRequest(PublicFilesEndpoint, 0, time.Since(start), err)
		return nil, err
	}
	defer resp.Body.Close()
	logger.LogUpstreamRequest(PublicFilesEndpoint, resp.StatusCode, time.Since(start), nil)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, err := io.ReadAll(io.LimitReader(resp.Body, MaxErrorBody+1))
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read error body: %w", ErrTransport, err)
		}
		details := string(body)
		if len(body) > MaxErrorBody {
			details = string(body[:MaxErrorBody]) + TruncatedSuffix
		}
		return nil, &RequestError{StatusCode: resp.StatusCode, Body: details}
	}

	var result models.ListFilesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrTransport, ctxErr)
		}
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if result.Data.Files == nil {
		return []models.File{}, nil
	}
	return result.Data.Files, nil
}
