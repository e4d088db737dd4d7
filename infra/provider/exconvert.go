package provider

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/amirasaad/exrate/pkg/config"
	"github.com/amirasaad/exrate/pkg/provider/exchange"
	"github.com/tidwall/gjson"
)

// maxBody caps how much of a provider response is read.
const maxBody = 1 << 20

// ExConvert is the HTTP client for the exconvert rate API:
//
//	GET {apiUrl}/fetchOne?access_key=..&from=SRC&to=DST
//	GET {apiUrl}/fetchAll?access_key=..&from=SRC
//
// Both return {"base": ..., "ms": ..., "result": {CODE: rate, ...}}.
type ExConvert struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewExConvert creates a client from config. A zero HTTPTimeout leaves the
// request bounded only by the caller's context.
func NewExConvert(cfg *config.RateProvider, logger *slog.Logger) *ExConvert {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExConvert{
		baseURL:    strings.TrimRight(cfg.ApiUrl, "/"),
		apiKey:     cfg.ApiKey,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		logger:     logger.With("component", "exconvert"),
	}
}

// Name identifies the provider in logs.
func (p *ExConvert) Name() string { return "exconvert" }

// FetchOne requests the single rate from->to.
func (p *ExConvert) FetchOne(ctx context.Context, from, to string) (*exchange.Rates, error) {
	q := url.Values{}
	q.Set("access_key", p.apiKey)
	q.Set("from", from)
	q.Set("to", to)
	return p.fetch(ctx, "fetchOne", q)
}

// FetchAll requests every rate relative to from.
func (p *ExConvert) FetchAll(ctx context.Context, from string) (*exchange.Rates, error) {
	q := url.Values{}
	q.Set("access_key", p.apiKey)
	q.Set("from", from)
	return p.fetch(ctx, "fetchAll", q)
}

func (p *ExConvert) fetch(ctx context.Context, path string, q url.Values) (*exchange.Rates, error) {
	endpoint := p.baseURL + "/" + path + "?" + q.Encode()
	p.logger.Debug("requesting rates", "path", path, "from", q.Get("from"), "to", q.Get("to"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", exchange.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", exchange.ErrProviderUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: API returned status %d: %s",
			exchange.ErrProviderUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return parseRates(body)
}

func parseRates(body []byte) (*exchange.Rates, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid JSON", exchange.ErrMalformedResponse)
	}
	if msg := gjson.GetBytes(body, "error"); msg.Exists() {
		detail := msg.Get("info").String()
		if detail == "" {
			detail = msg.String()
		}
		return nil, fmt.Errorf("%w: %s", exchange.ErrProviderUnavailable, detail)
	}

	res := gjson.GetBytes(body, "result")
	if !res.IsObject() {
		return nil, fmt.Errorf("%w: missing result table", exchange.ErrMalformedResponse)
	}
	rates := &exchange.Rates{
		Base:   strings.ToUpper(gjson.GetBytes(body, "base").String()),
		MS:     gjson.GetBytes(body, "ms").Int(),
		Result: make(map[string]float64),
	}
	var bad string
	res.ForEach(func(k, v gjson.Result) bool {
		// fetchOne payloads may echo the pair's rate under "rate"
		if k.String() == "rate" {
			return true
		}
		if v.Type != gjson.Number {
			bad = k.String()
			return false
		}
		rates.Result[strings.ToUpper(k.String())] = v.Float()
		return true
	})
	if bad != "" {
		return nil, fmt.Errorf("%w: non-numeric rate for %s", exchange.ErrMalformedResponse, bad)
	}
	return rates, nil
}
