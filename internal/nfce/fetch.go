package nfce

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120 Safari/537.36"

// Fetcher downloads public NFC-e pages and runs the HTML extractor on them.
// SEFAZ pages refuse obvious bots, hence the browser User-Agent.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher. A nil client falls back to
// http.DefaultClient; cancellation comes from the caller's context.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client}
}

// Fetch downloads the receipt page at url and extracts its items. Any
// failure (bad URL, unreachable page, non-2xx, no items) fails the whole
// attempt; there are no partial results and no retries.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Receipt, error) {
	url = strings.TrimSpace(url)
	if url == "" || !strings.HasPrefix(url, "http") {
		return nil, fmt.Errorf("URL da NFC-e inválida ou ausente")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("montar requisição da NFC-e: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("falha ao acessar a página da NFC-e: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("falha ao acessar a página da NFC-e (status %d)", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ler página da NFC-e: %w", err)
	}

	return ExtractHTML(string(body))
}
