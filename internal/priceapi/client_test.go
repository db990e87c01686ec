package priceapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTTPCalculator_Quote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/calculate-price" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var req QuoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.MenuItemID != "item-works" {
			t.Errorf("expected item-works, got %s", req.MenuItemID)
		}

		json.NewEncoder(w).Encode(Quote{
			BasePrice:  16.00,
			FinalPrice: 18.00,
			Lines:      []QuoteLine{{Name: "Extra Sausage", Price: 2.00}},
		})
	}))
	defer server.Close()

	calc := NewHTTPCalculator(server.URL)
	quote, err := calc.Quote(context.Background(), QuoteRequest{
		MenuItemID: "item-works",
		SizeCode:   "medium",
		CrustCode:  "thin",
	})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if quote.FinalPrice != 18.00 {
		t.Fatalf("expected 18.00, got %.2f", quote.FinalPrice)
	}
	if len(quote.Lines) != 1 || quote.Lines[0].Name != "Extra Sausage" {
		t.Fatalf("unexpected lines: %+v", quote.Lines)
	}
}

func TestHTTPCalculator_ErrorPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"error": "unknown size code"})
	}))
	defer server.Close()

	calc := NewHTTPCalculator(server.URL)
	_, err := calc.Quote(context.Background(), QuoteRequest{MenuItemID: "item-works"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "unknown size code") {
		t.Fatalf("server error message lost: %v", err)
	}
}

func TestHTTPCalculator_StatusOnlyError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	calc := NewHTTPCalculator(server.URL)
	_, err := calc.Quote(context.Background(), QuoteRequest{MenuItemID: "item-works"})
	if err == nil || !strings.Contains(err.Error(), "status 502") {
		t.Fatalf("expected status error, got %v", err)
	}
}
