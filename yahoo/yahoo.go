// Package yahoo implements a last price client on top of the Yahoo Finance
// chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// DefaultBaseURL is the chart API endpoint.
const DefaultBaseURL = "https://query2.finance.yahoo.com/v8/finance/chart/"

var ErrNoResult = errors.New("yahoo: no result")

const (
	pricePath  = "$.chart.result[0].meta.regularMarketPrice"
	closesPath = "$.chart.result[0].indicators.quote[0].close"
)

// Client fetches prices from the chart API.
type Client struct {
	http    *http.Client
	baseURL string
	agent   string
}

// New creates a client. An empty baseURL means DefaultBaseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
		agent:   "tradejournal/1.0",
	}
}

// Fast returns the regular market price of the ticker.
func (c *Client) Fast(ctx context.Context, ticker string) (float64, error) {
	var jobj any
	if err := c.chart(ctx, ticker, "1d", "1d", &jobj); err != nil {
		return math.NaN(), err
	}
	jval, err := jsonpath.Get(pricePath, jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("error parsing %q: %q %w", ticker, pricePath, err)
	}
	// because jsonpath is never clear about wheter it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return math.NaN(), fmt.Errorf("error parsing %q: %q %s %v", ticker, pricePath, "not a float", jval)
	}
	return val, nil
}

// Intraday returns the one minute closes of the current day, oldest first.
// Minutes without trades are skipped.
func (c *Client) Intraday(ctx context.Context, ticker string) ([]float64, error) {
	var jobj any
	if err := c.chart(ctx, ticker, "1m", "1d", &jobj); err != nil {
		return nil, err
	}
	jval, err := jsonpath.Get(closesPath, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %q %w", ticker, closesPath, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("error parsing %q: %q %s %v", ticker, closesPath, "not a list", jval)
	}
	closes := make([]float64, 0, len(jlist))
	for _, v := range jlist {
		if f, ok := v.(float64); ok {
			closes = append(closes, f)
		}
	}
	return closes, nil
}

// chart queries the chart endpoint and decodes the json payload into data.
func (c *Client) chart(ctx context.Context, ticker, interval, period string, data any) error {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return ErrNoResult
	}
	addr := fmt.Sprintf("%s%s?interval=%s&range=%s", c.baseURL, url.PathEscape(ticker), interval, period)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.agent)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(content, data); err != nil {
		return fmt.Errorf("invalid chart payload for %q: %w", ticker, err)
	}
	return nil
}
