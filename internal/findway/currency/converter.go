package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shandysiswandi/gofindway/internal/findway/entity"
	"github.com/shopspring/decimal"
)

const (
	DefaultBaseURL   = "https://api.frankfurter.dev/v1/latest"
	DefaultRatesPath = "$.rates"
)

var rateLoads = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "findway_rate_table_loads_total",
	Help: "Exchange rate table loads by outcome",
}, []string{"outcome"})

// Converter turns fares into EUR using a rate table fetched once per process.
// Rates are units of a currency per 1 EUR.
type Converter struct {
	baseURL   string
	ratesPath string
	client    *http.Client

	once  sync.Once
	rates map[string]decimal.Decimal
}

type Option func(*Converter)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Converter) {
		c.client = client
	}
}

// WithTimeout bounds the rate table request. Non-positive values are ignored.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Converter) {
		if timeout > 0 {
			c.client = &http.Client{Timeout: timeout}
		}
	}
}

func WithRatesPath(path string) Option {
	return func(c *Converter) {
		if strings.TrimSpace(path) != "" {
			c.ratesPath = path
		}
	}
}

func New(baseURL string, opts ...Option) *Converter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Converter{
		baseURL:   baseURL,
		ratesPath: DefaultRatesPath,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewWithRates returns a converter that is already loaded with rates.
func NewWithRates(rates map[string]decimal.Decimal) *Converter {
	c := New("")
	table := make(map[string]decimal.Decimal, len(rates)+1)
	for code, rate := range rates {
		table[strings.ToUpper(code)] = rate
	}
	table[entity.CurrencyEUR] = decimal.NewFromInt(1)
	c.once.Do(func() { c.rates = table })
	return c
}

// Load fetches the rate table on first use. Failures leave a table holding
// only EUR and are never retried. The fetch ignores the caller's
// cancellation; the client timeout bounds it.
func (c *Converter) Load(ctx context.Context) {
	c.once.Do(func() {
		rates, err := c.fetch(context.WithoutCancel(ctx))
		if err != nil {
			slog.WarnContext(ctx, "failed to load exchange rates, only EUR is convertible", "error", err)
			rateLoads.WithLabelValues("fallback").Inc()
			rates = map[string]decimal.Decimal{}
		} else {
			rateLoads.WithLabelValues("success").Inc()
		}
		rates[entity.CurrencyEUR] = decimal.NewFromInt(1)
		c.rates = rates
	})
}

// ToEUR converts amount into EUR. It returns nil when the currency has no
// usable rate. EUR amounts come back unrounded.
func (c *Converter) ToEUR(ctx context.Context, amount decimal.Decimal, currency string) *decimal.Decimal {
	c.Load(ctx)

	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == entity.CurrencyEUR {
		return &amount
	}

	rate, ok := c.rates[currency]
	if !ok || rate.IsZero() {
		return nil
	}

	eur := amount.Div(rate).Round(2)
	return &eur
}

func (c *Converter) fetch(ctx context.Context) (map[string]decimal.Decimal, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("rates url: %w", err)
	}
	q := u.Query()
	q.Set("base", entity.CurrencyEUR)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("rates request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rates get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("rates get: unexpected status %d", resp.StatusCode)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("rates decode: %w", err)
	}

	return extractRates(doc, c.ratesPath)
}

func extractRates(doc any, path string) (map[string]decimal.Decimal, error) {
	raw, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("rates path %s: %w", path, err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("rates path %s: expected object, got %T", path, raw)
	}

	rates := make(map[string]decimal.Decimal, len(obj))
	for code, value := range obj {
		rate, ok := toDecimal(value)
		if !ok || rate.IsNegative() {
			continue
		}
		rates[strings.ToUpper(code)] = rate
	}
	return rates, nil
}

func toDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(v), true
	case string:
		d, err := decimal.NewFromString(v)
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}
