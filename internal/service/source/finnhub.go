// Package source holds one MarketDataSource implementation per upstream
// provider, plus the pure mappers from provider wire formats to domain types.
package source

import (
	"context"
	"errors"
	"fmt"

	"MarketScan/internal/domain/models"
	domrepo "MarketScan/internal/domain/repository"
	"MarketScan/internal/service/ratelimit"
	xhttp "MarketScan/pkg/http"
	"MarketScan/pkg/logger"
)

const finnhubName = "finnhub"

// Finnhub is the JSON REST provider. It services all five read operations.
type Finnhub struct {
	baseURL  string
	apiKey   string
	clientID string
	trendPct float64 // sector trend classification threshold
	client   *xhttp.Client
	limiter  *ratelimit.Limiter
	log      *logger.Logger
	metrics  domrepo.Metrics
}

// NewFinnhub creates the finnhub-backed data source. trendPct is the sector
// trend threshold applied when aggregating movers into rotation rows.
func NewFinnhub(baseURL, apiKey, clientID string, trendPct float64, client *xhttp.Client, limiter *ratelimit.Limiter, log *logger.Logger, metrics domrepo.Metrics) *Finnhub {
	return &Finnhub{
		baseURL:  baseURL,
		apiKey:   apiKey,
		clientID: clientID,
		trendPct: trendPct,
		client:   client,
		limiter:  limiter,
		log:      log,
		metrics:  metrics,
	}
}

func (f *Finnhub) Name() string { return finnhubName }

// get performs one rate-limited authenticated GET, decoding JSON into dest.
func (f *Finnhub) get(ctx context.Context, path string, query map[string][]string, dest interface{}) error {
	if f.apiKey == "" {
		return &models.MissingCredentialError{Upstream: finnhubName}
	}

	if f.limiter != nil {
		waited, err := f.limiter.Acquire(ctx)
		if err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
		if waited > 0 {
			f.log.Debug("rate limited", logger.String("source", finnhubName), logger.Duration("waited_ms", waited))
			if f.metrics != nil {
				f.metrics.RecordRateLimitWait(finnhubName, waited.Seconds())
			}
		}
	}

	err := f.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    f.baseURL + path,
		Headers: map[string]string{
			"X-Finnhub-Token": f.apiKey,
			"X-Client-Id":     f.clientID,
		},
		QueryParams: query,
	}, dest)
	return toDomainErr(err)
}

type fhQuote struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	ChangePct     float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PreviousClose float64 `json:"pc"`
}

func (f *Finnhub) FetchQuotes(ctx context.Context, tickers []string) ([]models.IndexSnapshot, error) {
	out := make([]models.IndexSnapshot, 0, len(tickers))
	for _, ticker := range tickers {
		var q fhQuote
		err := f.get(ctx, "/quote", map[string][]string{"symbol": {ticker}}, &q)
		if err != nil {
			return nil, fmt.Errorf("quote %s: %w", ticker, err)
		}
		out = append(out, mapFinnhubQuote(ticker, q))
	}
	return out, nil
}

type fhNews struct {
	ID       int64  `json:"id"`
	Datetime int64  `json:"datetime"`
	Headline string `json:"headline"`
	Source   string `json:"source"`
	Related  string `json:"related"`
	URL      string `json:"url"`
}

func (f *Finnhub) FetchNews(ctx context.Context) ([]models.NewsItem, error) {
	var rows []fhNews
	if err := f.get(ctx, "/news", map[string][]string{"category": {"general"}}, &rows); err != nil {
		return nil, fmt.Errorf("news: %w", err)
	}
	return mapFinnhubNews(rows), nil
}

type fhMover struct {
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	ChangePct string `json:"changePercent"`
	Volume    string `json:"volume"`
	AvgVolume string `json:"avgVolume"`
	Sector    string `json:"sector"`
}

func (f *Finnhub) FetchTopMovers(ctx context.Context) ([]models.MarketMover, error) {
	var rows []fhMover
	if err := f.get(ctx, "/stock/movers", nil, &rows); err != nil {
		return nil, fmt.Errorf("movers: %w", err)
	}
	return mapFinnhubMovers(rows), nil
}

func (f *Finnhub) FetchSectorPerformance(ctx context.Context) ([]models.SectorRotation, error) {
	// The movers feed carries per-ticker sectors; rotation is an aggregation
	// of it rather than a separate upstream call.
	movers, err := f.FetchTopMovers(ctx)
	if err != nil {
		return nil, fmt.Errorf("sector performance: %w", err)
	}
	return AggregateSectors(movers, f.trendPct), nil
}

type fhHolding struct {
	Symbol string `json:"symbol"`
	Note   string `json:"note"`
}

func (f *Finnhub) FetchPortfolio(ctx context.Context) ([]models.KeyTicker, error) {
	var rows []fhHolding
	if err := f.get(ctx, "/portfolio/holdings", nil, &rows); err != nil {
		return nil, fmt.Errorf("portfolio: %w", err)
	}
	out := make([]models.KeyTicker, 0, len(rows))
	for _, r := range rows {
		if r.Symbol == "" {
			continue
		}
		out = append(out, models.KeyTicker{Ticker: r.Symbol, Note: r.Note})
	}
	return out, nil
}

// toDomainErr maps transport failures onto the domain error taxonomy.
func toDomainErr(err error) error {
	if err == nil {
		return nil
	}
	var se *xhttp.StatusError
	if errors.As(err, &se) {
		return models.NewNetworkError(se.Status, se.Body)
	}
	return fmt.Errorf("%w: %v", models.ErrNetwork, err)
}

var _ domrepo.MarketDataSource = (*Finnhub)(nil)
