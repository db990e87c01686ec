package priceapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

// Calculator is the external price-calculation read used for specialty
// pizzas; it cross-checks or replaces the local computation.
type Calculator interface {
	Quote(ctx context.Context, req QuoteRequest) (*Quote, error)
}

type QuoteRequest struct {
	MenuItemID string      `json:"menu_item_id"`
	SizeCode   string      `json:"size_code"`
	CrustCode  string      `json:"crust_code"`
	Selections []Selection `json:"selections"`
}

type Selection struct {
	CustomizationID string `json:"customization_id"`
	Amount          string `json:"amount"`
}

type Quote struct {
	BasePrice  float64     `json:"base_price"`
	FinalPrice float64     `json:"final_price"`
	Lines      []QuoteLine `json:"lines"`
}

type QuoteLine struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Fingerprint identifies a request by size+crust+selections. Identical
// consecutive fingerprints are skipped by the debouncer, and responses
// for superseded fingerprints are discarded.
func (r QuoteRequest) Fingerprint() string {
	parts := make([]string, 0, len(r.Selections))
	for _, s := range r.Selections {
		parts = append(parts, s.CustomizationID+"="+s.Amount)
	}
	sort.Strings(parts)
	return r.MenuItemID + "|" + r.SizeCode + "|" + r.CrustCode + "|" + strings.Join(parts, ",")
}

// --------------------------------------------------
// HTTP client
// --------------------------------------------------

type HTTPCalculator struct {
	baseURL string
	client  *http.Client
}

func NewHTTPCalculator(baseURL string) *HTTPCalculator {
	return &HTTPCalculator{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPCalculator) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/calculate-price",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		if payload.Error != "" {
			return nil, fmt.Errorf("price calculation failed: %s", payload.Error)
		}
		return nil, fmt.Errorf("price calculation failed: status %d", resp.StatusCode)
	}

	var quote Quote
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return nil, err
	}

	return &quote, nil
}
