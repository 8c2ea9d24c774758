package dataflows

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/malcagui2023/ValueInvesting-EMBA/internal/config"
)

func testClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	return &Client{
		http:  resty.New().SetBaseURL(serverURL).SetTimeout(5 * time.Second),
		cache: NewCacheManager(t.TempDir(), time.Hour, true),
		retry: &RetryConfig{MaxRetries: 0, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond},
		cfg:   config.DefaultConfig(),
	}
}

func TestGetFundamentalsDoesNotCacheVendorError(t *testing.T) {
	vendorError := `{"quoteSummary": {"result": [], "error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}}}`

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Write([]byte(vendorError))
			return
		}
		w.Write([]byte(sampleQuoteSummary))
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	if _, _, _, _, err := c.GetFundamentals(context.Background(), "ACME"); err == nil {
		t.Fatal("expected vendor error on first fetch")
	}

	// A cached error body would make this second call fail without ever
	// hitting the server again.
	profile, _, _, _, err := c.GetFundamentals(context.Background(), "ACME")
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if profile.Name == "" {
		t.Fatal("second fetch returned empty profile")
	}
	if calls != 2 {
		t.Fatalf("server calls = %d, want 2", calls)
	}
}

func TestGetDividendsDoesNotCacheVendorError(t *testing.T) {
	vendorError := `{"chart": {"result": [], "error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}}}`
	valid := `{"chart": {"result": [{"events": {"dividends": {"1700000000": {"amount": 0.24, "date": 1700000000}}}}], "error": null}}`

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Write([]byte(vendorError))
			return
		}
		w.Write([]byte(valid))
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	if _, err := c.GetDividends(context.Background(), "ACME"); err == nil {
		t.Fatal("expected vendor error on first fetch")
	}

	history, err := c.GetDividends(context.Background(), "ACME")
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("payments = %d, want 1", len(history))
	}
	if calls != 2 {
		t.Fatalf("server calls = %d, want 2", calls)
	}
}
