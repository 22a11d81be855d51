package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RateTable is the provider's answer for one base currency.
type RateTable struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

type RateTableClient struct {
	baseURL string
	http    *http.Client
}

func NewRateTableClient(baseURL string, timeout time.Duration) *RateTableClient {
	return &RateTableClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchRates downloads the whole rate table keyed by base.
func (c *RateTableClient) FetchRates(ctx context.Context, base string) (*RateTable, error) {
	apiURL := c.baseURL + "/" + url.PathEscape(strings.ToUpper(base))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Provider: "ExchangeRate", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var table RateTable
	if err := json.NewDecoder(resp.Body).Decode(&table); err != nil {
		return nil, fmt.Errorf("JSON parse error: %w", err)
	}
	return &table, nil
}

// Rate implements services.RateProvider.
func (c *RateTableClient) Rate(ctx context.Context, from, to string) (float64, error) {
	table, err := c.FetchRates(ctx, from)
	if err != nil {
		return 0, err
	}

	rate, ok := table.Rates[strings.ToUpper(to)]
	if !ok {
		return 0, fmt.Errorf("%w: exchange rate not found for %s to %s", ErrRateNotFound, from, to)
	}
	return rate, nil
}
