package rates

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gramcli/gram/internal/config"
)

const fiatBody = `{"base":"USD","date":"2026-10-17","rates":{"USD":1,"EUR":0.5,"RUB":80,"GBP":0.8}}`
const cryptoBody = `{"bitcoin":{"usd":65000.5,"usd_24h_change":-1.25},"ethereum":{"usd":3200,"usd_24h_change":2.5}}`

func newServer(t *testing.T, fiatStatus, cryptoStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v4/latest/USD", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(fiatStatus)
		_, _ = w.Write([]byte(fiatBody))
	})
	mux.HandleFunc("/api/v3/simple/price", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("ids") != "bitcoin,ethereum" || r.URL.Query().Get("include_24hr_change") != "true" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(cryptoStatus)
		_, _ = w.Write([]byte(cryptoBody))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(srv *httptest.Server) *Client {
	cfg := config.Default().Rates
	cfg.FiatURL = srv.URL + "/v4/latest/USD"
	cfg.CryptoURL = srv.URL + "/api/v3/simple/price"
	return NewClient(srv.Client(), cfg)
}

func TestFetch_Both(t *testing.T) {
	srv := newServer(t, http.StatusOK, http.StatusOK)

	snap, err := newClient(srv).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if snap.Fiat == nil || snap.Fiat.Rates["RUB"] != 80 {
		t.Fatalf("Fiat = %+v", snap.Fiat)
	}
	if len(snap.Crypto) != 2 {
		t.Fatalf("Crypto = %+v", snap.Crypto)
	}
	btc := snap.Crypto[0]
	if btc.Name != "Bitcoin" || btc.USD != 65000.5 || btc.Change24h != -1.25 {
		t.Errorf("bitcoin quote = %+v", btc)
	}
}

func TestFetch_FiatFailsIndependently(t *testing.T) {
	srv := newServer(t, http.StatusInternalServerError, http.StatusOK)

	snap, err := newClient(srv).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch should succeed with one source: %v", err)
	}
	var statusErr *StatusError
	if !errors.As(snap.FiatErr, &statusErr) || statusErr.Code != http.StatusInternalServerError {
		t.Errorf("FiatErr = %v, want StatusError 500", snap.FiatErr)
	}
	if len(snap.Crypto) != 2 {
		t.Errorf("crypto should still be fetched, got %+v", snap.Crypto)
	}
}

func TestFetch_BothFail(t *testing.T) {
	srv := newServer(t, http.StatusBadGateway, http.StatusTooManyRequests)

	_, err := newClient(srv).Fetch(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	c := newClient(srv)
	c.timeout = 50 * time.Millisecond

	start := time.Now()
	_, err := c.Fiat(context.Background())
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if time.Since(start) > time.Second {
		t.Error("request was not bounded by the timeout")
	}
}

func TestFiat_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":"error"}`))
	}))
	t.Cleanup(srv.Close)

	if _, err := newClient(srv).Fiat(context.Background()); err == nil {
		t.Fatal("expected error for body without rates")
	}
}

func TestConvert(t *testing.T) {
	f := &FiatRates{Base: "USD", Rates: map[string]float64{"EUR": 0.5, "RUB": 80}}

	tests := []struct {
		amount   float64
		from, to string
		want     float64
		ok       bool
	}{
		{1, "USD", "RUB", 80, true},
		{1, "EUR", "RUB", 160, true},
		{100, "USD", "RUB", 8000, true},
		{2, "RUB", "USD", 0.025, true},
		{1, "USD", "XYZ", 0, false},
	}
	for _, tt := range tests {
		got, ok := f.Convert(tt.amount, tt.from, tt.to)
		if ok != tt.ok || math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Convert(%v, %s, %s) = %v, %v; want %v, %v", tt.amount, tt.from, tt.to, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCoinName(t *testing.T) {
	tests := map[string]string{
		"bitcoin":      "Bitcoin",
		"bitcoin-cash": "Bitcoin Cash",
		"usd_coin":     "Usd Coin",
	}
	for in, want := range tests {
		if got := coinName(in); got != want {
			t.Errorf("coinName(%q) = %q, want %q", in, got, want)
		}
	}
}
