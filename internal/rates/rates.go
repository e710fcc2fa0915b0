// Package rates fetches fiat exchange rates and crypto prices from public
// JSON APIs. The two sources are independent: either may fail without
// affecting the other.
package rates

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gramcli/gram/internal/config"
	"github.com/gramcli/gram/internal/core"
	logger "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// ErrUnavailable is returned by Fetch when both sources failed.
var ErrUnavailable = errors.New("no rate source is reachable")

// maxBody caps the size of an API response.
const maxBody = 1 << 20

// StatusError is returned for a non-200 response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.Code)
}

// FiatRates are exchange rates relative to Base.
type FiatRates struct {
	Base  string             `json:"base"`
	Date  string             `json:"date,omitempty"`
	Rates map[string]float64 `json:"rates"`
}

// Rate returns the units of code per one unit of Base.
func (f *FiatRates) Rate(code string) (float64, bool) {
	if code == f.Base {
		return 1, true
	}
	r, ok := f.Rates[code]
	return r, ok && r > 0
}

// Convert converts amount of from into to.
func (f *FiatRates) Convert(amount float64, from, to string) (float64, bool) {
	rf, ok := f.Rate(from)
	if !ok {
		return 0, false
	}
	rt, ok := f.Rate(to)
	if !ok {
		return 0, false
	}
	return amount / rf * rt, true
}

// CryptoQuote is the USD price of one coin.
type CryptoQuote struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	USD       float64 `json:"usd"`
	Change24h float64 `json:"usd_24h_change"`
}

// Snapshot holds the result of both fetches.
type Snapshot struct {
	Fiat      *FiatRates
	FiatErr   error
	Crypto    []CryptoQuote
	CryptoErr error
	Taken     time.Time
}

// Client fetches rates over HTTP.
type Client struct {
	http      *http.Client
	fiatURL   string
	cryptoURL string
	coins     []string
	timeout   time.Duration
}

// NewClient creates a Client. A nil httpClient selects http.DefaultClient.
func NewClient(httpClient *http.Client, cfg config.RatesConfig) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		http:      httpClient,
		fiatURL:   cfg.FiatURL,
		cryptoURL: cfg.CryptoURL,
		coins:     cfg.Coins,
		timeout:   core.TimeoutHTTP,
	}
}

// Fetch queries both sources one after the other. It returns ErrUnavailable
// only when both fail; partial results are returned with the failing
// source's error recorded in the Snapshot.
func (c *Client) Fetch(ctx context.Context) (*Snapshot, error) {
	s := &Snapshot{Taken: time.Now()}
	s.Fiat, s.FiatErr = c.Fiat(ctx)
	if s.FiatErr != nil {
		logger.WithError(s.FiatErr).Debug("fiat rates unavailable")
	}
	if len(c.coins) > 0 {
		s.Crypto, s.CryptoErr = c.Crypto(ctx)
		if s.CryptoErr != nil {
			logger.WithError(s.CryptoErr).Debug("crypto prices unavailable")
		}
	} else {
		s.CryptoErr = errors.New("no coins configured")
	}

	if s.FiatErr != nil && s.CryptoErr != nil {
		return s, fmt.Errorf("%w: %w", ErrUnavailable, errors.Join(s.FiatErr, s.CryptoErr))
	}
	return s, nil
}

// Fiat fetches the latest exchange rates.
func (c *Client) Fiat(ctx context.Context) (*FiatRates, error) {
	body, err := c.get(ctx, c.fiatURL)
	if err != nil {
		return nil, err
	}

	rates := gjson.GetBytes(body, "rates")
	if !rates.IsObject() {
		return nil, fmt.Errorf("GET %s: response has no rates object", c.fiatURL)
	}

	f := &FiatRates{
		Base:  gjson.GetBytes(body, "base").String(),
		Date:  gjson.GetBytes(body, "date").String(),
		Rates: make(map[string]float64),
	}
	if f.Base == "" {
		f.Base = "USD"
	}
	rates.ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.Number {
			f.Rates[key.String()] = value.Float()
		}
		return true
	})
	return f, nil
}

// Crypto fetches USD prices and 24h change for the configured coins, in
// configuration order.
func (c *Client) Crypto(ctx context.Context) ([]CryptoQuote, error) {
	u, err := url.Parse(c.cryptoURL)
	if err != nil {
		return nil, fmt.Errorf("invalid crypto URL %q: %w", c.cryptoURL, err)
	}
	q := u.Query()
	q.Set("ids", strings.Join(c.coins, ","))
	q.Set("vs_currencies", "usd")
	q.Set("include_24hr_change", "true")
	u.RawQuery = q.Encode()

	body, err := c.get(ctx, u.String())
	if err != nil {
		return nil, err
	}

	byID := gjson.ParseBytes(body).Map()
	quotes := make([]CryptoQuote, 0, len(c.coins))
	for _, id := range c.coins {
		coin, ok := byID[id]
		if !ok || !coin.IsObject() {
			continue
		}
		quotes = append(quotes, CryptoQuote{
			ID:        id,
			Name:      coinName(id),
			USD:       coin.Get("usd").Float(),
			Change24h: coin.Get("usd_24h_change").Float(),
		})
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("GET %s: no prices for %s", c.cryptoURL, strings.Join(c.coins, ", "))
	}
	return quotes, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: rawURL, Code: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", rawURL, err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("GET %s: invalid JSON response", rawURL)
	}
	return body, nil
}

// coinName turns a coin id such as "bitcoin-cash" into "Bitcoin Cash".
func coinName(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
