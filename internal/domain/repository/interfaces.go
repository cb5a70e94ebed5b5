package repository

import (
	"context"

	"MarketScan/internal/domain/models"
)

// MarketDataSource is implemented once per upstream provider. A provider that
// cannot service an operation returns an error wrapping models.ErrUnsupported,
// never an empty success.
type MarketDataSource interface {
	Name() string
	FetchNews(ctx context.Context) ([]models.NewsItem, error)
	FetchQuotes(ctx context.Context, tickers []string) ([]models.IndexSnapshot, error)
	FetchTopMovers(ctx context.Context) ([]models.MarketMover, error)
	FetchSectorPerformance(ctx context.Context) ([]models.SectorRotation, error)
	FetchPortfolio(ctx context.Context) ([]models.KeyTicker, error)
}

// MarketRepository is the unified read contract the orchestrator consumes.
type MarketRepository interface {
	News(ctx context.Context) ([]models.NewsItem, error)
	Quotes(ctx context.Context, tickers []string) ([]models.IndexSnapshot, error)
	TopMovers(ctx context.Context) ([]models.MarketMover, error)
	SectorPerformance(ctx context.Context) ([]models.SectorRotation, error)
	Portfolio(ctx context.Context) ([]models.KeyTicker, error)
}

// Summarizer is the optional external enrichment capability. Its absence or
// failure must be treated identically by callers.
type Summarizer interface {
	IsAvailable() bool
	GenerateQuickTake(ctx context.Context, scan models.MarketScan) (models.QuickTake, error)
	GenerateRotationNote(ctx context.Context, hot, cold []models.SectorRotation) (string, error)
}

// ScanPublisher emits completed scans to an external sink, fire-and-forget.
type ScanPublisher interface {
	PublishScan(ctx context.Context, scan models.MarketScan) error
	Close() error
}

// Metrics abstracts the Prometheus recorder for the pipeline.
type Metrics interface {
	RecordFetch(op, source string, seconds float64)
	RecordCache(op string, hit bool)
	RecordRateLimitWait(source string, seconds float64)
	RecordScan(result string)
	RecordEnrichmentFailure(stage string)
}
