package currency

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestToEURWithRates(t *testing.T) {
	c := NewWithRates(map[string]decimal.Decimal{
		"gbp": dec("0.8"),
		"PLN": dec("4.3"),
		"XXX": decimal.Zero,
	})
	ctx := context.Background()

	tests := []struct {
		name     string
		amount   string
		currency string
		want     string
		isNil    bool
	}{
		{name: "eur is returned unchanged", amount: "12.345", currency: "EUR", want: "12.345"},
		{name: "lowercase eur", amount: "50", currency: "eur", want: "50"},
		{name: "divides by rate", amount: "100", currency: "GBP", want: "125"},
		{name: "rounds to two places", amount: "100", currency: "PLN", want: "23.26"},
		{name: "unknown currency", amount: "10", currency: "USD", isNil: true},
		{name: "zero rate", amount: "10", currency: "XXX", isNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.ToEUR(ctx, dec(tt.amount), tt.currency)
			if tt.isNil {
				if got != nil {
					t.Fatalf("expected nil, got %s", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected %s, got nil", tt.want)
			}
			if !got.Equal(dec(tt.want)) {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestToEURKeepsEURPrecision(t *testing.T) {
	c := NewWithRates(nil)
	got := c.ToEUR(context.Background(), dec("19.999"), "EUR")
	if got == nil || got.String() != "19.999" {
		t.Fatalf("EUR amounts must not be rounded, got %v", got)
	}
}

func TestLoadFetchesOnceAndParsesRates(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if got := r.URL.Query().Get("base"); got != "EUR" {
			t.Errorf("base = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"amount":1.0,"base":"EUR","date":"2025-03-07","rates":{"GBP":0.8377,"USD":1.0845}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.ToEUR(ctx, dec("10"), "USD")
		}()
	}
	wg.Wait()

	if got := hits.Load(); got != 1 {
		t.Fatalf("expected a single rate fetch, got %d", got)
	}

	got := c.ToEUR(ctx, dec("108.45"), "USD")
	if got == nil || !got.Equal(dec("100")) {
		t.Fatalf("USD conversion = %v", got)
	}
	got = c.ToEUR(ctx, dec("29.99"), "GBP")
	if got == nil || !got.Equal(dec("35.80")) {
		t.Fatalf("GBP conversion = %v", got)
	}
}

func TestLoadOutlivesCancelledCaller(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"base":"EUR","rates":{"GBP":0.8}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if got := c.ToEUR(ctx, dec("40"), "GBP"); got == nil || !got.Equal(dec("50")) {
		t.Fatalf("conversion under cancelled context = %v, want 50", got)
	}

	got := c.ToEUR(context.Background(), dec("40"), "GBP")
	if got == nil || !got.Equal(dec("50")) {
		t.Fatalf("later GBP conversion = %v, want 50", got)
	}
}

func TestLoadFallsBackToEUROnly(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"rates":`))
			},
		},
		{
			name: "rates not an object",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"rates":[1,2]}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				tt.handler(w, r)
			}))
			defer srv.Close()

			c := New(srv.URL)
			ctx := context.Background()

			if got := c.ToEUR(ctx, dec("10"), "GBP"); got != nil {
				t.Fatalf("expected nil after fallback, got %s", got)
			}
			if got := c.ToEUR(ctx, dec("10"), "EUR"); got == nil || !got.Equal(dec("10")) {
				t.Fatalf("EUR must still convert, got %v", got)
			}
			if got := hits.Load(); got != 1 {
				t.Fatalf("failed load must not be retried, hits = %d", got)
			}
		})
	}
}

func TestLoadUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url)
	if got := c.ToEUR(context.Background(), dec("10"), "USD"); got != nil {
		t.Fatalf("expected nil, got %s", got)
	}
}

func TestWithRatesPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result":"success","conversion_rates":{"EUR":1,"CZK":"25.0"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithRatesPath("$.conversion_rates"), WithHTTPClient(srv.Client()))
	got := c.ToEUR(context.Background(), dec("250"), "czk")
	if got == nil || !got.Equal(dec("10")) {
		t.Fatalf("CZK conversion = %v", got)
	}
}
