// Package brasilapi is the client of the BrasilAPI FIPE endpoints,
// which expose the reference tables and per-table prices of the index
package brasilapi

import (
	"bytes"
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

	"github.com/sig-0/fipeval/metrics"
	"github.com/sig-0/fipeval/types"
)

const (
	DefaultBaseURL = "https://brasilapi.com.br"

	providerName = "brasilapi"

	tablesPath = "/api/fipe/tabelas/v1"
	pricePath  = "/api/fipe/preco/v1/"

	maxBodySize = 4 << 20
)

var (
	errNoPrice  = errors.New("no price returned")
	errNoTables = errors.New("no reference tables returned")
)

// Client is the BrasilAPI FIPE client
type Client struct {
	client  *http.Client
	baseURL string
}

type Option func(c *Client)

// WithTimeout specifies the HTTP client timeout. Defaults to 30s
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = timeout
	}
}

// NewClient creates a new BrasilAPI client for the given base URL
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

// ReferenceTables fetches the full list of FIPE reference tables.
// Entries without a positive code are dropped
func (c *Client) ReferenceTables(ctx context.Context) (_ []types.ReferenceTable, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveUpstream(providerName, "reference_tables", start, err)
	}()

	var resp []tableEntry

	if err = c.get(ctx, tablesPath, &resp); err != nil {
		return nil, err
	}

	tables := make([]types.ReferenceTable, 0, len(resp))

	for _, entry := range resp {
		code, ok := entry.Code.Int()
		if !ok || code <= 0 {
			continue
		}

		tables = append(tables, types.ReferenceTable{
			Code:        code,
			PeriodLabel: strings.TrimSpace(entry.Month),
		})
	}

	if len(tables) == 0 {
		return nil, errNoTables
	}

	return tables, nil
}

// Price fetches the price of the fipe code in the given reference table.
// A tableCode of 0 selects the current table
func (c *Client) Price(
	ctx context.Context,
	fipeCode types.FipeCode,
	tableCode int,
) (_ *types.PriceQuote, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveUpstream(providerName, "price", start, err)
	}()

	path := pricePath + url.PathEscape(fipeCode.String())
	if tableCode > 0 {
		path += "?" + url.Values{
			"tabela_referencia": []string{strconv.Itoa(tableCode)},
		}.Encode()
	}

	// The endpoint usually answers with an array, but not always
	var raw json.RawMessage

	if err = c.get(ctx, path, &raw); err != nil {
		return nil, err
	}

	var entry priceEntry

	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		var entries []priceEntry
		if err = json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("unable to decode price list: %w", err)
		}

		if len(entries) == 0 {
			return nil, errNoPrice
		}

		entry = entries[0]
	} else if err = json.Unmarshal(trimmed, &entry); err != nil {
		return nil, fmt.Errorf("unable to decode price: %w", err)
	}

	if entry.Value.IsZero() {
		return nil, errNoPrice
	}

	return entry.toPriceQuote(fipeCode), nil
}

// get executes a GET request and decodes the JSON response into out
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("unable to create new GET request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("unable to execute GET request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("invalid status code received: %d", resp.StatusCode)
	}

	if err = json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(out); err != nil {
		return fmt.Errorf("unable to decode response: %w", err)
	}

	return nil
}
