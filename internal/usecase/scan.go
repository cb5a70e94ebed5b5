package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"MarketScan/internal/domain/models"
	domrepo "MarketScan/internal/domain/repository"
	"MarketScan/pkg/logger"
)

// ScanGenerator runs the full pipeline: five concurrent repository reads,
// the analysis chain in a fixed order, then optional summarizer enrichment.
// Any fetch failure fails the whole scan; enrichment failures never do.
type ScanGenerator struct {
	repo    domrepo.MarketRepository
	an      *Analyzer
	summ    domrepo.Summarizer
	pub     domrepo.ScanPublisher
	metrics domrepo.Metrics
	log     *logger.Logger
	tickers []string
}

func NewScanGenerator(
	repo domrepo.MarketRepository,
	an *Analyzer,
	summ domrepo.Summarizer,
	pub domrepo.ScanPublisher,
	metrics domrepo.Metrics,
	log *logger.Logger,
	indexTickers []string,
) *ScanGenerator {
	return &ScanGenerator{
		repo:    repo,
		an:      an,
		summ:    summ,
		pub:     pub,
		metrics: metrics,
		log:     log,
		tickers: indexTickers,
	}
}

type fetchResult struct {
	indexes   []models.IndexSnapshot
	movers    []models.MarketMover
	news      []models.NewsItem
	sectors   []models.SectorRotation
	portfolio []models.KeyTicker
}

// GenerateDailyScan produces one complete, immutable scan. The caller gets
// either a fully populated scan or an error, never a partial result.
func (g *ScanGenerator) GenerateDailyScan(ctx context.Context) (models.MarketScan, error) {
	fetched, err := g.fetchAll(ctx)
	if err != nil {
		g.recordScan("error")
		return models.MarketScan{}, err
	}

	sentiment := g.an.Sentiment(fetched.indexes)
	gainers, losers := g.an.RankMovers(fetched.movers)
	macro, corporate := g.an.ClassifyNews(fetched.news)
	hot, cold := g.an.SectorRotation(fetched.sectors)
	signals := g.an.VolumeSignals(fetched.movers)

	classified := append(append([]models.NewsItem{}, macro...), corporate...)
	watchList := g.an.BuildWatchList(fetched.movers, classified, signals)

	scan := models.MarketScan{
		ID:           uuid.NewString(),
		GeneratedAt:  time.Now().UTC(),
		Sentiment:    sentiment,
		Indexes:      fetched.indexes,
		Gainers:      gainers,
		Losers:       losers,
		MacroNews:    macro,
		CorpNews:     corporate,
		HotSectors:   hot,
		ColdSectors:  cold,
		RotationNote: g.an.RotationNote(hot, cold),
		Signals:      signals,
		Portfolio:    fetched.portfolio,
		WatchList:    watchList,
	}

	scan = g.enrich(ctx, scan, hot, cold)
	g.recordScan("ok")
	g.log.Info("scan generated",
		logger.String("scan_id", scan.ID),
		logger.String("sentiment", string(scan.Sentiment)),
		logger.Int("gainers", len(scan.Gainers)),
		logger.Int("losers", len(scan.Losers)),
		logger.Int("signals", len(scan.Signals)),
		logger.Int("watch_list", len(scan.WatchList)))

	g.publish(ctx, scan)
	return scan, nil
}

// fetchAll issues the five repository reads concurrently and joins them.
func (g *ScanGenerator) fetchAll(ctx context.Context) (fetchResult, error) {
	var res fetchResult

	type item struct {
		name string
		err  error
	}
	ch := make(chan item, 5)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := g.repo.Quotes(ctx, g.tickers)
		res.indexes = v
		ch <- item{"quotes", err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := g.repo.TopMovers(ctx)
		res.movers = v
		ch <- item{"movers", err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := g.repo.News(ctx)
		res.news = v
		ch <- item{"news", err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := g.repo.SectorPerformance(ctx)
		res.sectors = v
		ch <- item{"sectors", err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := g.repo.Portfolio(ctx)
		res.portfolio = v
		ch <- item{"portfolio", err}
	}()

	go func() { wg.Wait(); close(ch) }()

	var firstErr error
	for it := range ch {
		if it.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("fetch %s: %w", it.name, it.err)
		}
	}
	if firstErr != nil {
		return fetchResult{}, firstErr
	}
	return res, nil
}

// enrich swaps in summarizer output where available. Every failure falls
// back to the rule-based value already on the scan.
func (g *ScanGenerator) enrich(ctx context.Context, scan models.MarketScan, hot, cold []models.SectorRotation) models.MarketScan {
	if g.summ == nil || !g.summ.IsAvailable() {
		return scan
	}

	note, err := g.summ.GenerateRotationNote(ctx, hot, cold)
	if err != nil {
		g.recordEnrichmentFailure("rotation_note")
		g.log.Warn("rotation note enrichment failed", logger.Error(&models.EnrichmentError{Stage: "rotation_note", Err: err}))
	} else if note != "" {
		scan = scan.WithRotationNote(note)
	}

	qt, err := g.summ.GenerateQuickTake(ctx, scan)
	if err != nil {
		g.recordEnrichmentFailure("quick_take")
		g.log.Warn("quick take enrichment failed", logger.Error(&models.EnrichmentError{Stage: "quick_take", Err: err}))
		return scan
	}
	return scan.WithQuickTake(qt)
}

func (g *ScanGenerator) recordScan(result string) {
	if g.metrics != nil {
		g.metrics.RecordScan(result)
	}
}

func (g *ScanGenerator) recordEnrichmentFailure(stage string) {
	if g.metrics != nil {
		g.metrics.RecordEnrichmentFailure(stage)
	}
}

func (g *ScanGenerator) publish(ctx context.Context, scan models.MarketScan) {
	if g.pub == nil {
		return
	}
	if err := g.pub.PublishScan(ctx, scan); err != nil {
		g.log.Warn("scan publish failed", logger.String("scan_id", scan.ID), logger.Error(err))
	}
}
