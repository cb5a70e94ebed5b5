package di

import (
	"fmt"

	"MarketScan/internal/domain/repository"
	"MarketScan/internal/handler/api"
	internalrepo "MarketScan/internal/repository"
	"MarketScan/internal/service/ratelimit"
	"MarketScan/internal/service/source"
	"MarketScan/internal/service/summarizer"
	"MarketScan/internal/usecase"
	"MarketScan/pkg/cache"
	"MarketScan/pkg/config"
	xhttp "MarketScan/pkg/http"
	pkgkafka "MarketScan/pkg/kafka"
	"MarketScan/pkg/logger"
	"MarketScan/pkg/metrics"
	"MarketScan/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCacheManager creates the two-tier cache with the configured backing
// store.
func ProvideCacheManager(cfg *config.Config) (*cache.Manager, error) {
	var store cache.Store
	switch cfg.Cache.Backend {
	case "redis":
		s, err := cache.NewRedisStore(
			cache.WithRedisAddr(cfg.Cache.Redis.Addr),
			cache.WithRedisAuth(cfg.Cache.Redis.Password, cfg.Cache.Redis.DB),
			cache.WithRedisPrefix("marketscan"),
		)
		if err != nil {
			return nil, fmt.Errorf("redis store: %w", err)
		}
		store = s
	default:
		s, err := cache.NewDiskStore(cfg.Cache.Dir)
		if err != nil {
			return nil, fmt.Errorf("disk store: %w", err)
		}
		store = s
	}
	return cache.NewManager(store), nil
}

// ProvidePrimarySource creates the finnhub-backed data source.
func ProvidePrimarySource(cfg *config.Config, log *logger.Logger, m repository.Metrics) (*source.Finnhub, error) {
	limiter, err := ratelimit.New(cfg.Finnhub.RequestsPerMin)
	if err != nil {
		return nil, fmt.Errorf("finnhub limiter: %w", err)
	}
	client := xhttp.NewClient(xhttp.WithTimeout(cfg.Finnhub.Timeout))
	return source.NewFinnhub(cfg.Finnhub.BaseURL, cfg.Finnhub.APIKey, cfg.Finnhub.ClientID, cfg.Scan.Analysis.SectorTrendPct, client, limiter, log, m), nil
}

// ProvideSecondarySource creates the stooq-backed fallback, or nil when
// disabled.
func ProvideSecondarySource(cfg *config.Config, log *logger.Logger, m repository.Metrics) (repository.MarketDataSource, error) {
	if !cfg.Stooq.Enabled {
		return nil, nil
	}
	limiter, err := ratelimit.New(cfg.Stooq.RequestsPerMin)
	if err != nil {
		return nil, fmt.Errorf("stooq limiter: %w", err)
	}
	client := xhttp.NewClient(xhttp.WithTimeout(cfg.Stooq.Timeout))
	return source.NewStooq(cfg.Stooq.BaseURL, client, limiter, log, m), nil
}

// ProvideRepository creates the caching fallback repository.
func ProvideRepository(
	cfg *config.Config,
	primary *source.Finnhub,
	secondary repository.MarketDataSource,
	c *cache.Manager,
	log *logger.Logger,
	m repository.Metrics,
) repository.MarketRepository {
	ttl := internalrepo.TTLs{
		Quotes:    cfg.Scan.TTL.Quotes,
		Movers:    cfg.Scan.TTL.Movers,
		News:      cfg.Scan.TTL.News,
		Sectors:   cfg.Scan.TTL.Sectors,
		Portfolio: cfg.Scan.TTL.Portfolio,
	}
	return internalrepo.NewMarketRepository(primary, secondary, c, ttl, log, m)
}

// ProvideSummarizer creates the optional enrichment client, or nil when
// disabled.
func ProvideSummarizer(cfg *config.Config) repository.Summarizer {
	if !cfg.Summarizer.Enabled {
		return nil
	}
	return summarizer.New(cfg.Summarizer.BaseURL, cfg.Summarizer.APIKey, cfg.Summarizer.Timeout)
}

// ProvidePublisher creates the optional Kafka scan publisher, or nil when
// disabled.
func ProvidePublisher(cfg *config.Config) (repository.ScanPublisher, error) {
	if !cfg.Publisher.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Publisher.Brokers),
		pkgkafka.WithCompression(cfg.Publisher.Compression),
		pkgkafka.WithRequiredAcks(cfg.Publisher.RequiredAcks),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaScanPublisher(producer, cfg.Publisher.Topic), nil
}

// ProvideScanGenerator creates the pipeline orchestrator.
func ProvideScanGenerator(
	cfg *config.Config,
	repo repository.MarketRepository,
	summ repository.Summarizer,
	pub repository.ScanPublisher,
	m repository.Metrics,
	log *logger.Logger,
) *usecase.ScanGenerator {
	an := usecase.NewAnalyzer(cfg.Scan.Analysis)
	return usecase.NewScanGenerator(repo, an, summ, pub, m, log, cfg.Scan.IndexTickers)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(log *logger.Logger, gen *usecase.ScanGenerator, c *cache.Manager) xhttp.Handler {
	return api.NewScanHandler(log, gen, c)
}

// ProvideApp creates the application.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	handler xhttp.Handler,
	c *cache.Manager,
	pub repository.ScanPublisher,
) *server.App {
	return server.New(cfg, log, handler, c, pub)
}
