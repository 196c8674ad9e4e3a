// Package placafipe is the client of the PlacaFipe plate registry,
// which maps a license plate to the vehicle and its FIPE candidates
package placafipe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sig-0/fipeval/metrics"
	"github.com/sig-0/fipeval/types"
)

const (
	DefaultBaseURL = "https://api.placafipe.com.br"

	providerName = "placafipe"

	// maxBodySize bounds the upstream response read
	maxBodySize = 1 << 20
)

// Client is the PlacaFipe API client
type Client struct {
	client  *http.Client
	baseURL string
	token   string
	useGET  bool
}

// NewClient creates a new PlacaFipe client for the given base URL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) Name() string {
	return providerName
}

// LookupPlate fetches the vehicle and FIPE candidates for the given plate
func (c *Client) LookupPlate(ctx context.Context, plate types.PlateQuery) (_ *types.PlateLookup, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveUpstream(providerName, "lookup_plate", start, err)
	}()

	if c.token == "" {
		return nil, ErrMissingToken
	}

	var resp plateResponse

	if c.useGET {
		path := fmt.Sprintf(
			"/getplacafipe/%s/%s",
			url.PathEscape(plate.String()),
			url.PathEscape(c.token),
		)

		err = c.do(ctx, http.MethodGet, path, nil, &resp)
	} else {
		err = c.do(ctx, http.MethodPost, "/getplacafipe", plateRequest{
			Plate: plate.String(),
			Token: c.token,
		}, &resp)
	}

	if err != nil {
		return nil, err
	}

	return resp.toPlateLookup(), nil
}

// Quotas fetches the daily usage quotas of the configured token.
// The payload is relayed as-is
func (c *Client) Quotas(ctx context.Context) (json.RawMessage, error) {
	return c.relay(ctx, "quotas", "/getquotas", tokenRequest{Token: c.token})
}

// do executes the request, validates the response envelope and decodes it into out
func (c *Client) do(
	ctx context.Context,
	method, path string,
	body any,
	out any,
) error {
	var reqBody io.Reader = http.NoBody

	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("unable to marshal request: %w", err)
		}

		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("unable to create %s request: %w", method, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		// The token may be part of the URL, don't leak it
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}

		return fmt.Errorf("unable to execute %s request to %s: %w", method, redactedPath(path, c.token), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("unable to read response: %w", err)
	}

	// Error responses may not even be JSON
	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	statusOK := resp.StatusCode >= 200 && resp.StatusCode < 300
	code, hasCode := env.Code.Int()

	if !statusOK || (decodeErr == nil && !env.Code.IsZero() && (!hasCode || code != codeOK)) {
		msg := env.message()
		if msg == "" {
			msg = "request rejected"
		}

		return &APIError{
			Message: msg,
			Status:  resp.StatusCode,
			Code:    code,
		}
	}

	if decodeErr != nil {
		return fmt.Errorf("unable to decode response: %w", decodeErr)
	}

	if err = json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unable to decode response: %w", err)
	}

	return nil
}

// redactedPath strips the token from the request path
func redactedPath(path, token string) string {
	if token == "" {
		return path
	}

	return strings.ReplaceAll(path, url.PathEscape(token), "***")
}
