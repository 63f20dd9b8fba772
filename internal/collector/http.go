package collector

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

// HTTPSource fetches statements from a REST endpoint returning a snapshot
// object for GET {BaseURL}/api/v1/financials?symbol=S&limit=N.
type HTTPSource struct {
	BaseURL string
	APIKey  string
	Limit   int
	Client  *http.Client
}

// NewHTTPSource creates a new source with optional proxy support.
func NewHTTPSource(baseURL, apiKey, proxyURL string, timeout time.Duration) *HTTPSource {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Limit:   5,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (s *HTTPSource) Name() string { return "http" }

func (s *HTTPSource) FetchFinancials(ctx context.Context, symbol string) (*Snapshot, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("limit", fmt.Sprint(s.Limit))
	endpoint := s.BaseURL + "/api/v1/financials?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if s.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.APIKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch financials: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("fetch financials: status %d, body: %s", resp.StatusCode, string(body))
	}

	var snap Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode financials: %w", err)
	}
	if len(snap.Periods) == 0 {
		return nil, fmt.Errorf("%s: no periods: %w", symbol, ErrNotFound)
	}
	if snap.Symbol == "" {
		snap.Symbol = symbol
	}
	orderPeriods(snap.Periods)
	fillSymbol(snap.Periods, snap.Symbol)
	return &snap, nil
}
