// Package repository implements the unified market read contract: one primary
// data source, an optional fallback, and per-operation write-through caching.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"MarketScan/internal/domain/models"
	domrepo "MarketScan/internal/domain/repository"
	"MarketScan/pkg/cache"
	"MarketScan/pkg/logger"
)

// TTLs holds the per-operation cache lifetimes. Volatile reads (quotes,
// movers) stay short; slow-moving reads (sectors) run longer.
type TTLs struct {
	Quotes    time.Duration
	Movers    time.Duration
	News      time.Duration
	Sectors   time.Duration
	Portfolio time.Duration
}

// MarketRepository satisfies domrepo.MarketRepository.
type MarketRepository struct {
	primary   domrepo.MarketDataSource
	secondary domrepo.MarketDataSource // optional
	cache     *cache.Manager
	ttl       TTLs
	log       *logger.Logger
	metrics   domrepo.Metrics
}

// NewMarketRepository wires the sources, the cache, and the TTL policy.
// secondary may be nil.
func NewMarketRepository(primary, secondary domrepo.MarketDataSource, c *cache.Manager, ttl TTLs, log *logger.Logger, metrics domrepo.Metrics) *MarketRepository {
	return &MarketRepository{
		primary:   primary,
		secondary: secondary,
		cache:     c,
		ttl:       ttl,
		log:       log,
		metrics:   metrics,
	}
}

func (r *MarketRepository) News(ctx context.Context) ([]models.NewsItem, error) {
	return read(ctx, r, "news", cache.GenerateKey("news", "general"), r.ttl.News,
		func(src domrepo.MarketDataSource) ([]models.NewsItem, error) {
			return src.FetchNews(ctx)
		})
}

func (r *MarketRepository) Quotes(ctx context.Context, tickers []string) ([]models.IndexSnapshot, error) {
	key := cache.GenerateKey("quotes", strings.Join(tickers, ","))
	return read(ctx, r, "quotes", key, r.ttl.Quotes,
		func(src domrepo.MarketDataSource) ([]models.IndexSnapshot, error) {
			return src.FetchQuotes(ctx, tickers)
		})
}

func (r *MarketRepository) TopMovers(ctx context.Context) ([]models.MarketMover, error) {
	return read(ctx, r, "movers", cache.GenerateKey("movers", "top"), r.ttl.Movers,
		func(src domrepo.MarketDataSource) ([]models.MarketMover, error) {
			return src.FetchTopMovers(ctx)
		})
}

func (r *MarketRepository) SectorPerformance(ctx context.Context) ([]models.SectorRotation, error) {
	return read(ctx, r, "sectors", cache.GenerateKey("sectors", "performance"), r.ttl.Sectors,
		func(src domrepo.MarketDataSource) ([]models.SectorRotation, error) {
			return src.FetchSectorPerformance(ctx)
		})
}

func (r *MarketRepository) Portfolio(ctx context.Context) ([]models.KeyTicker, error) {
	return read(ctx, r, "portfolio", cache.GenerateKey("portfolio", "holdings"), r.ttl.Portfolio,
		func(src domrepo.MarketDataSource) ([]models.KeyTicker, error) {
			return src.FetchPortfolio(ctx)
		})
}

// read is the shared hit-or-fetch path: a cache hit never touches the
// network, a miss makes at most two upstream calls (primary, then fallback).
func read[T any](ctx context.Context, r *MarketRepository, op, key string, ttl time.Duration, fetch func(domrepo.MarketDataSource) ([]T, error)) ([]T, error) {
	if cached, err := cache.GetTyped[[]T](ctx, r.cache, key); err == nil {
		if r.metrics != nil {
			r.metrics.RecordCache(op, true)
		}
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		r.log.Warn("cache read failed", logger.String("op", op), logger.Error(&models.CacheError{Key: key, Err: err}))
	}
	if r.metrics != nil {
		r.metrics.RecordCache(op, false)
	}

	rows, err := fetchTimed(r, op, r.primary, fetch)
	if err != nil {
		if r.secondary == nil {
			return nil, fmt.Errorf("%s via %s: %w", op, r.primary.Name(), err)
		}
		r.log.Warn("primary source failed, trying fallback",
			logger.String("op", op),
			logger.String("primary", r.primary.Name()),
			logger.String("fallback", r.secondary.Name()),
			logger.Error(err))

		rows, err = fetchTimed(r, op, r.secondary, fetch)
		if err != nil {
			// The primary already said it could not help; the fallback's
			// error is the one worth propagating.
			return nil, fmt.Errorf("%s via %s: %w", op, r.secondary.Name(), err)
		}
	}

	if err := r.cache.Set(ctx, key, rows, ttl); err != nil {
		r.log.Warn("cache write failed", logger.String("op", op), logger.Error(&models.CacheError{Key: key, Err: err}))
	}
	return rows, nil
}

func fetchTimed[T any](r *MarketRepository, op string, src domrepo.MarketDataSource, fetch func(domrepo.MarketDataSource) ([]T, error)) ([]T, error) {
	start := time.Now()
	rows, err := fetch(src)
	if r.metrics != nil {
		r.metrics.RecordFetch(op, src.Name(), time.Since(start).Seconds())
	}
	return rows, err
}

var _ domrepo.MarketRepository = (*MarketRepository)(nil)
