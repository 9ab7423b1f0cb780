package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Client fetches quotes from the platform's price provider over HTTP.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type quoteResponse struct {
	Symbol string `json:"symbol"`
	Bid    string `json:"bid"`
	Ask    string `json:"ask"`
	Price  string `json:"price"`
}

// GetQuote fetches the current quote for symbol. The provider may omit bid
// or ask; callers are expected to go through Quote.ExitPrice which handles
// the fallback to the last trade price.
func (c *Client) GetQuote(ctx context.Context, symbol string) (Quote, error) {
	if c.baseURL == "" {
		return Quote{}, fmt.Errorf("quote provider not configured")
	}
	endpoint := c.baseURL + "/v1/quotes/" + url.PathEscape(symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Quote{}, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("fetch quote %s: %w", symbol, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Quote{}, fmt.Errorf("fetch quote %s: status %d: %s", symbol, resp.StatusCode, string(body))
	}
	var qr quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return Quote{}, fmt.Errorf("decode quote %s: %w", symbol, err)
	}
	q, err := qr.toQuote(symbol)
	if err != nil {
		return Quote{}, fmt.Errorf("decode quote %s: %w", symbol, err)
	}
	if !q.Valid() {
		return Quote{}, fmt.Errorf("empty quote for %s", symbol)
	}
	return q, nil
}

func (qr quoteResponse) toQuote(fallbackSymbol string) (Quote, error) {
	q := Quote{Symbol: qr.Symbol}
	if q.Symbol == "" {
		q.Symbol = fallbackSymbol
	}
	var err error
	if q.Bid, err = parseOptionalDecimal(qr.Bid); err != nil {
		return Quote{}, fmt.Errorf("bad bid %q: %w", qr.Bid, err)
	}
	if q.Ask, err = parseOptionalDecimal(qr.Ask); err != nil {
		return Quote{}, fmt.Errorf("bad ask %q: %w", qr.Ask, err)
	}
	if q.Price, err = parseOptionalDecimal(qr.Price); err != nil {
		return Quote{}, fmt.Errorf("bad price %q: %w", qr.Price, err)
	}
	return q, nil
}

func parseOptionalDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, nil
	}
	return decimal.NewFromString(s)
}
