// Package holidays is a client for the date.nager.at public-holidays API.
package holidays

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://date.nager.at"

	// DefaultCountry is assumed when the caller does not pick one.
	DefaultCountry = "BR"
)

// Holiday is one public holiday as the API reports it.
type Holiday struct {
	DateISO   string `json:"date"`
	LocalName string `json:"localName"`
	Name      string `json:"name"`
}

// Client fetches public holidays. The base URL is overridable for tests.
type Client struct {
	http *http.Client
	base string
}

// NewClient builds a client. A nil httpClient gets a 10s-timeout default;
// an empty base selects the public endpoint.
func NewClient(httpClient *http.Client, base string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{http: httpClient, base: base}
}

// Year lists the public holidays of one year. Empty country means BR.
func (c *Client) Year(ctx context.Context, year int, country string) ([]Holiday, error) {
	if country == "" {
		country = DefaultCountry
	}

	url := fmt.Sprintf("%s/api/v3/PublicHolidays/%d/%s", c.base, year, country)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch holidays: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch holidays: unexpected status %d", resp.StatusCode)
	}

	var holidays []Holiday
	if err := json.NewDecoder(resp.Body).Decode(&holidays); err != nil {
		return nil, fmt.Errorf("decode holidays: %w", err)
	}
	return holidays, nil
}

// Find returns the holiday falling on dateISO, or nil.
func Find(holidays []Holiday, dateISO string) *Holiday {
	for i := range holidays {
		if holidays[i].DateISO == dateISO {
			return &holidays[i]
		}
	}
	return nil
}
