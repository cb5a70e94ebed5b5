package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"MarketScan/internal/domain/models"
	"MarketScan/pkg/logger"
)

type fakeRepo struct {
	indexes   []models.IndexSnapshot
	movers    []models.MarketMover
	news      []models.NewsItem
	sectors   []models.SectorRotation
	portfolio []models.KeyTicker
	newsErr   error
}

func (f *fakeRepo) News(context.Context) ([]models.NewsItem, error) { return f.news, f.newsErr }
func (f *fakeRepo) Quotes(context.Context, []string) ([]models.IndexSnapshot, error) {
	return f.indexes, nil
}
func (f *fakeRepo) TopMovers(context.Context) ([]models.MarketMover, error) { return f.movers, nil }
func (f *fakeRepo) SectorPerformance(context.Context) ([]models.SectorRotation, error) {
	return f.sectors, nil
}
func (f *fakeRepo) Portfolio(context.Context) ([]models.KeyTicker, error) {
	return f.portfolio, nil
}

type fakeSummarizer struct {
	available bool
	noteErr   error
	takeErr   error
}

func (f *fakeSummarizer) IsAvailable() bool { return f.available }

func (f *fakeSummarizer) GenerateQuickTake(_ context.Context, _ models.MarketScan) (models.QuickTake, error) {
	if f.takeErr != nil {
		return models.QuickTake{}, f.takeErr
	}
	return models.QuickTake{Text: "markets were mixed", GeneratedAt: time.Now()}, nil
}

func (f *fakeSummarizer) GenerateRotationNote(_ context.Context, _, _ []models.SectorRotation) (string, error) {
	if f.noteErr != nil {
		return "", f.noteErr
	}
	return "capital rotated decisively into technology", nil
}

type fakePublisher struct {
	published []models.MarketScan
	err       error
}

func (f *fakePublisher) PublishScan(_ context.Context, scan models.MarketScan) error {
	f.published = append(f.published, scan)
	return f.err
}
func (f *fakePublisher) Close() error { return nil }

func scanTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func healthyRepo() *fakeRepo {
	return &fakeRepo{
		indexes: []models.IndexSnapshot{
			{Symbol: "SPY", ChangePct: 0.5},
			{Symbol: "QQQ", ChangePct: 0.4},
			{Symbol: "DIA", ChangePct: 0.2},
		},
		movers: []models.MarketMover{
			{Ticker: "AAPL", ChangePct: 5, Volume: 30_000_000, AverageVolume: 10_000_000, Sector: "Technology"},
			{Ticker: "TSLA", ChangePct: -8, Volume: 40_000_000, AverageVolume: 10_000_000, Sector: "Consumer"},
		},
		news: []models.NewsItem{
			{ID: "1", Headline: "Fed holds rates steady", PublishedAt: time.Now().Add(-time.Hour)},
			{ID: "2", Headline: "Apple ships new model", Ticker: "AAPL", PublishedAt: time.Now().Add(-2 * time.Hour)},
		},
		sectors: []models.SectorRotation{
			{Name: "Technology", ChangePct: 2.1},
			{Name: "Utilities", ChangePct: -1.8},
		},
		portfolio: []models.KeyTicker{{Ticker: "VTI", Note: "core holding"}},
	}
}

func TestGenerateDailyScan(t *testing.T) {
	gen := NewScanGenerator(healthyRepo(), testAnalyzer(), nil, nil, nil, scanTestLogger(t), []string{"SPY", "QQQ", "DIA"})

	scan, err := gen.GenerateDailyScan(context.Background())
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	if scan.ID == "" || scan.GeneratedAt.IsZero() {
		t.Fatalf("scan missing identity: %+v", scan)
	}
	if scan.Sentiment != models.SentimentBullish {
		t.Fatalf("sentiment = %s, want bullish", scan.Sentiment)
	}
	if len(scan.Gainers) != 1 || scan.Gainers[0].Ticker != "AAPL" {
		t.Fatalf("gainers = %+v", scan.Gainers)
	}
	if len(scan.Losers) != 1 || scan.Losers[0].Ticker != "TSLA" {
		t.Fatalf("losers = %+v", scan.Losers)
	}
	if len(scan.MacroNews) != 1 || len(scan.CorpNews) != 1 {
		t.Fatalf("news split = %d/%d", len(scan.MacroNews), len(scan.CorpNews))
	}
	if len(scan.HotSectors) != 1 || len(scan.ColdSectors) != 1 {
		t.Fatalf("sectors = %+v / %+v", scan.HotSectors, scan.ColdSectors)
	}
	if !strings.Contains(scan.RotationNote, "Technology") {
		t.Fatalf("rotation note = %q", scan.RotationNote)
	}
	if len(scan.Signals) != 2 {
		t.Fatalf("signals = %+v", scan.Signals)
	}
	if len(scan.Portfolio) != 1 {
		t.Fatalf("portfolio = %+v", scan.Portfolio)
	}
	if len(scan.WatchList) == 0 {
		t.Fatalf("watch list empty")
	}
	if scan.QuickTake != nil {
		t.Fatalf("no summarizer configured, quick take must be nil")
	}
}

func TestGenerateDailyScanFailsOnFetchError(t *testing.T) {
	repo := healthyRepo()
	repo.newsErr = models.NewNetworkError(500, []byte("upstream down"))
	gen := NewScanGenerator(repo, testAnalyzer(), nil, nil, nil, scanTestLogger(t), []string{"SPY"})

	_, err := gen.GenerateDailyScan(context.Background())
	if err == nil {
		t.Fatalf("expected scan failure")
	}
	if !errors.Is(err, models.ErrNetwork) {
		t.Fatalf("error lost its kind: %v", err)
	}
}

func TestEnrichmentReplacesRuleBasedNote(t *testing.T) {
	summ := &fakeSummarizer{available: true}
	gen := NewScanGenerator(healthyRepo(), testAnalyzer(), summ, nil, nil, scanTestLogger(t), []string{"SPY"})

	scan, err := gen.GenerateDailyScan(context.Background())
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if scan.RotationNote != "capital rotated decisively into technology" {
		t.Fatalf("rotation note = %q", scan.RotationNote)
	}
	if scan.QuickTake == nil || scan.QuickTake.Text != "markets were mixed" {
		t.Fatalf("quick take = %+v", scan.QuickTake)
	}
}

func TestEnrichmentFailureFallsBack(t *testing.T) {
	summ := &fakeSummarizer{
		available: true,
		noteErr:   &models.EnrichmentError{Stage: "rotation", Err: errors.New("model overloaded")},
		takeErr:   &models.EnrichmentError{Stage: "quicktake", Err: errors.New("model overloaded")},
	}
	gen := NewScanGenerator(healthyRepo(), testAnalyzer(), summ, nil, nil, scanTestLogger(t), []string{"SPY"})

	scan, err := gen.GenerateDailyScan(context.Background())
	if err != nil {
		t.Fatalf("enrichment failure must not fail the scan: %v", err)
	}
	if !strings.Contains(scan.RotationNote, "Technology") {
		t.Fatalf("expected rule-based note, got %q", scan.RotationNote)
	}
	if scan.QuickTake != nil {
		t.Fatalf("quick take must stay nil on failure")
	}
}

func TestUnavailableSummarizerSkipped(t *testing.T) {
	summ := &fakeSummarizer{available: false}
	gen := NewScanGenerator(healthyRepo(), testAnalyzer(), summ, nil, nil, scanTestLogger(t), []string{"SPY"})

	scan, err := gen.GenerateDailyScan(context.Background())
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if scan.QuickTake != nil {
		t.Fatalf("unavailable summarizer must be treated as absent")
	}
}

func TestPublishFailureDoesNotFailScan(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker unreachable")}
	gen := NewScanGenerator(healthyRepo(), testAnalyzer(), nil, pub, nil, scanTestLogger(t), []string{"SPY"})

	scan, err := gen.GenerateDailyScan(context.Background())
	if err != nil {
		t.Fatalf("publish failure must not fail the scan: %v", err)
	}
	if len(pub.published) != 1 || pub.published[0].ID != scan.ID {
		t.Fatalf("published = %+v", pub.published)
	}
}
