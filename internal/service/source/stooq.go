package source

import (
	"context"
	"fmt"
	"strings"

	"MarketScan/internal/domain/models"
	domrepo "MarketScan/internal/domain/repository"
	"MarketScan/internal/service/ratelimit"
	"MarketScan/pkg/csvutil"
	xhttp "MarketScan/pkg/http"
	"MarketScan/pkg/logger"
)

const stooqName = "stooq"

// Stooq is the CSV fallback provider. It answers quotes and movers; the other
// operations report unsupported so the repository can tell "no data" apart
// from "not implemented here".
type Stooq struct {
	baseURL string
	client  *xhttp.Client
	limiter *ratelimit.Limiter
	log     *logger.Logger
	metrics domrepo.Metrics
}

// NewStooq creates the stooq-backed data source.
func NewStooq(baseURL string, client *xhttp.Client, limiter *ratelimit.Limiter, log *logger.Logger, metrics domrepo.Metrics) *Stooq {
	return &Stooq{
		baseURL: baseURL,
		client:  client,
		limiter: limiter,
		log:     log,
		metrics: metrics,
	}
}

func (s *Stooq) Name() string { return stooqName }

func (s *Stooq) getCSV(ctx context.Context, path string, query map[string][]string) ([]byte, error) {
	if s.limiter != nil {
		waited, err := s.limiter.Acquire(ctx)
		if err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
		if waited > 0 {
			s.log.Debug("rate limited", logger.String("source", stooqName), logger.Duration("waited_ms", waited))
			if s.metrics != nil {
				s.metrics.RecordRateLimitWait(stooqName, waited.Seconds())
			}
		}
	}

	var body []byte
	err := s.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         s.baseURL + path,
		QueryParams: query,
	}, &body)
	if err != nil {
		return nil, toDomainErr(err)
	}
	return body, nil
}

func (s *Stooq) FetchQuotes(ctx context.Context, tickers []string) ([]models.IndexSnapshot, error) {
	symbols := make([]string, len(tickers))
	for i, t := range tickers {
		symbols[i] = strings.ToLower(t) + ".us"
	}

	body, err := s.getCSV(ctx, "/q/l/", map[string][]string{
		"s": {strings.Join(symbols, ",")},
		"f": {"snd2ohlcpv"},
		"h": {""},
		"e": {"csv"},
	})
	if err != nil {
		return nil, fmt.Errorf("quotes: %w", err)
	}

	quotes, err := csvutil.ParseFunc(body, mapStooqQuote)
	if err != nil {
		return nil, &models.MalformedDataError{Reason: "stooq quote feed", Err: err}
	}
	return quotes, nil
}

func (s *Stooq) FetchTopMovers(ctx context.Context) ([]models.MarketMover, error) {
	body, err := s.getCSV(ctx, "/db/movers.csv", nil)
	if err != nil {
		return nil, fmt.Errorf("movers: %w", err)
	}

	movers, err := csvutil.ParseFunc(body, mapStooqMover)
	if err != nil {
		return nil, &models.MalformedDataError{Reason: "stooq movers feed", Err: err}
	}
	return movers, nil
}

func (s *Stooq) FetchNews(ctx context.Context) ([]models.NewsItem, error) {
	return nil, &models.UnsupportedError{Source: stooqName, Op: "FetchNews"}
}

func (s *Stooq) FetchSectorPerformance(ctx context.Context) ([]models.SectorRotation, error) {
	return nil, &models.UnsupportedError{Source: stooqName, Op: "FetchSectorPerformance"}
}

func (s *Stooq) FetchPortfolio(ctx context.Context) ([]models.KeyTicker, error) {
	return nil, &models.UnsupportedError{Source: stooqName, Op: "FetchPortfolio"}
}

var _ domrepo.MarketDataSource = (*Stooq)(nil)
