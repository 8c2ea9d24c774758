package dataflows

import (
	"fmt"
	"testing"
	"time"
)

func TestValidateSymbol(t *testing.T) {
	if err := ValidateSymbol("aapl"); err != nil {
		t.Fatalf("ValidateSymbol(aapl): %v", err)
	}
	if err := ValidateSymbol(""); err == nil {
		t.Fatal("expected error for empty symbol")
	}
	if err := ValidateSymbol("TOOLONGSYMBOL"); err == nil {
		t.Fatal("expected error for oversized symbol")
	}
}

func TestNormalizeSymbol(t *testing.T) {
	if got := NormalizeSymbol("  aapl "); got != "AAPL" {
		t.Fatalf("NormalizeSymbol = %q, want AAPL", got)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	cm := NewCacheManager(t.TempDir(), time.Hour, true)

	type payload struct {
		Value int `json:"value"`
	}

	if err := cm.Set("yahoo", "test", "AAPL", &payload{Value: 42}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got payload
	if !cm.Get("yahoo", "test", "AAPL", &got) {
		t.Fatal("expected cache hit")
	}
	if got.Value != 42 {
		t.Fatalf("cached value = %d, want 42", got.Value)
	}

	var miss payload
	if cm.Get("yahoo", "test", "MSFT", &miss) {
		t.Fatal("expected cache miss for different key")
	}
}

func TestCacheDisabled(t *testing.T) {
	cm := NewCacheManager(t.TempDir(), time.Hour, false)
	if err := cm.Set("yahoo", "test", "AAPL", map[string]int{"v": 1}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	var got map[string]int
	if cm.Get("yahoo", "test", "AAPL", &got) {
		t.Fatal("disabled cache must never hit")
	}
}

func TestWithRetrySucceedsAfterFailures(t *testing.T) {
	cfg := &RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}

	attempts := 0
	err := WithRetry(cfg, func() error {
		attempts++
		if attempts < 3 {
			return fmt.Errorf("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithRetry: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3", attempts)
	}
}

func TestWithRetryExhausted(t *testing.T) {
	cfg := &RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}

	err := WithRetry(cfg, func() error { return fmt.Errorf("always failing") })
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
}

func TestPeriodStart(t *testing.T) {
	end := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	start, err := periodStart(end, "10y")
	if err != nil {
		t.Fatalf("periodStart: %v", err)
	}
	if start.Year() != 2016 {
		t.Fatalf("start year = %d, want 2016", start.Year())
	}

	if _, err := periodStart(end, "2w"); err == nil {
		t.Fatal("expected error for unknown period")
	}
}
