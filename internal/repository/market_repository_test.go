package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"MarketScan/internal/domain/models"
	domrepo "MarketScan/internal/domain/repository"
	"MarketScan/pkg/cache"
	"MarketScan/pkg/logger"
)

type stubSource struct {
	name   string
	movers []models.MarketMover
	news   []models.NewsItem
	err    error
	calls  int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) FetchNews(context.Context) ([]models.NewsItem, error) {
	s.calls++
	return s.news, s.err
}

func (s *stubSource) FetchQuotes(context.Context, []string) ([]models.IndexSnapshot, error) {
	s.calls++
	return nil, s.err
}

func (s *stubSource) FetchTopMovers(context.Context) ([]models.MarketMover, error) {
	s.calls++
	return s.movers, s.err
}

func (s *stubSource) FetchSectorPerformance(context.Context) ([]models.SectorRotation, error) {
	s.calls++
	return nil, s.err
}

func (s *stubSource) FetchPortfolio(context.Context) ([]models.KeyTicker, error) {
	s.calls++
	return nil, s.err
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func newRepo(primary, secondary *stubSource, t *testing.T) *MarketRepository {
	ttl := TTLs{Quotes: time.Minute, Movers: time.Minute, News: time.Minute, Sectors: time.Minute, Portfolio: time.Minute}
	var sec domrepo.MarketDataSource
	if secondary != nil {
		sec = secondary
	}
	return NewMarketRepository(primary, sec, cache.NewManager(nil), ttl, testLogger(t), nil)
}

func TestCacheHitSkipsNetwork(t *testing.T) {
	primary := &stubSource{name: "primary", movers: []models.MarketMover{{Ticker: "AAPL"}}}
	repo := newRepo(primary, nil, t)
	ctx := context.Background()

	if _, err := repo.TopMovers(ctx); err != nil {
		t.Fatalf("first read: %v", err)
	}
	if _, err := repo.TopMovers(ctx); err != nil {
		t.Fatalf("second read: %v", err)
	}
	if primary.calls != 1 {
		t.Fatalf("cache hit must not trigger a fetch, got %d calls", primary.calls)
	}
}

func TestFallbackOnUnsupported(t *testing.T) {
	primary := &stubSource{name: "primary", err: &models.UnsupportedError{Source: "primary", Op: "FetchNews"}}
	secondary := &stubSource{name: "secondary", news: []models.NewsItem{{ID: "1", Headline: "h"}}}
	repo := newRepo(primary, secondary, t)
	ctx := context.Background()

	items, err := repo.News(ctx)
	if err != nil {
		t.Fatalf("expected fallback success, got %v", err)
	}
	if len(items) != 1 || items[0].ID != "1" {
		t.Fatalf("unexpected items %+v", items)
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Fatalf("expected one call each, got %d/%d", primary.calls, secondary.calls)
	}

	// The fallback result was cached under the same key: no further calls.
	if _, err := repo.News(ctx); err != nil {
		t.Fatalf("cached read: %v", err)
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Fatalf("cache hit must not re-fetch, got %d/%d", primary.calls, secondary.calls)
	}
}

func TestBothSourcesFailPropagatesSecondary(t *testing.T) {
	primary := &stubSource{name: "primary", err: &models.UnsupportedError{Source: "primary", Op: "FetchNews"}}
	secondary := &stubSource{name: "secondary", err: models.NewNetworkError(503, []byte("down"))}
	repo := newRepo(primary, secondary, t)

	_, err := repo.News(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, models.ErrNetwork) {
		t.Fatalf("expected the secondary's error, got %v", err)
	}
}

func TestNoSecondaryPropagatesPrimary(t *testing.T) {
	primary := &stubSource{name: "primary", err: models.NewNetworkError(429, nil)}
	repo := newRepo(primary, nil, t)

	_, err := repo.TopMovers(context.Background())
	if !errors.Is(err, models.ErrRateLimited) {
		t.Fatalf("expected rate-limit error, got %v", err)
	}
}

func TestAtMostTwoUpstreamCallsPerMiss(t *testing.T) {
	primary := &stubSource{name: "primary", err: errors.New("boom")}
	secondary := &stubSource{name: "secondary", err: errors.New("boom too")}
	repo := newRepo(primary, secondary, t)

	_, _ = repo.TopMovers(context.Background())
	if primary.calls != 1 || secondary.calls != 1 {
		t.Fatalf("expected exactly one call per source, got %d/%d", primary.calls, secondary.calls)
	}
}
