package usecase

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"MarketScan/internal/domain/models"
	"MarketScan/pkg/config"
)

func testAnalyzer() *Analyzer {
	return NewAnalyzer(config.Analysis{
		SentimentMeanPct:  0.3,
		TopMovers:         5,
		NewsCap:           5,
		HotSectorPct:      1.0,
		SectorTrendPct:    1.5,
		SectorCap:         3,
		VolumeRatio:       2.0,
		VolumeSignalCap:   5,
		EarningsMovePct:   10.0,
		NewsMovePct:       5.0,
		WatchListCap:      7,
		WatchListMovers:   3,
		WatchListNewsSpan: 5,
	})
}

func indexes(pcts ...float64) []models.IndexSnapshot {
	out := make([]models.IndexSnapshot, len(pcts))
	for i, p := range pcts {
		out[i] = models.IndexSnapshot{Symbol: fmt.Sprintf("IDX%d", i), ChangePct: p}
	}
	return out
}

func TestSentiment(t *testing.T) {
	a := testAnalyzer()

	cases := []struct {
		name string
		in   []models.IndexSnapshot
		want models.Sentiment
	}{
		{"three positive above mean", indexes(0.5, 0.4, 0.2), models.SentimentBullish},
		{"one positive small mean", indexes(-0.5, 0.1), models.SentimentNeutral},
		{"all negative deep mean", indexes(-0.8, -0.6, -0.4), models.SentimentBearish},
		{"two positive but flat mean", indexes(0.1, 0.1, -0.1), models.SentimentNeutral},
		{"empty", nil, models.SentimentNeutral},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := a.Sentiment(tc.in); got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestRankMoversMagnitudeFirst(t *testing.T) {
	a := NewAnalyzer(config.Analysis{TopMovers: 2, WatchListCap: 7, WatchListMovers: 3, WatchListNewsSpan: 5, NewsCap: 5, SectorCap: 3, VolumeSignalCap: 5})

	movers := []models.MarketMover{
		{Ticker: "AAPL", ChangePct: 5},
		{Ticker: "TSLA", ChangePct: -8},
		{Ticker: "MSFT", ChangePct: 1},
	}
	gainers, losers := a.RankMovers(movers)

	if len(gainers) != 1 || gainers[0].Ticker != "AAPL" {
		t.Fatalf("gainers = %+v, want [AAPL]", gainers)
	}
	if len(losers) != 1 || losers[0].Ticker != "TSLA" {
		t.Fatalf("losers = %+v, want [TSLA]", losers)
	}
}

func TestRankMoversSkipsFlat(t *testing.T) {
	a := testAnalyzer()
	gainers, losers := a.RankMovers([]models.MarketMover{{Ticker: "FLAT", ChangePct: 0}})
	if len(gainers) != 0 || len(losers) != 0 {
		t.Fatalf("flat mover must not rank, got %v / %v", gainers, losers)
	}
}

func newsAt(headline, ticker string, age time.Duration) models.NewsItem {
	return models.NewsItem{
		ID:          headline,
		Headline:    headline,
		Ticker:      ticker,
		PublishedAt: time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC).Add(-age),
	}
}

func TestClassifyNews(t *testing.T) {
	a := testAnalyzer()

	items := []models.NewsItem{
		newsAt("Fed Signals Rate Cut in September", "", time.Hour),
		newsAt("Acme Corp beats on revenue", "ACME", 2*time.Hour),
		newsAt("CPI comes in hotter than expected", "", 30*time.Minute),
	}
	macro, corporate := a.ClassifyNews(items)

	if len(macro) != 2 {
		t.Fatalf("macro = %+v, want 2 items", macro)
	}
	if macro[0].Headline != "CPI comes in hotter than expected" {
		t.Fatalf("macro not newest-first: %+v", macro)
	}
	if len(corporate) != 1 || corporate[0].Category != models.NewsCorporate {
		t.Fatalf("corporate = %+v", corporate)
	}
	for _, it := range macro {
		if it.Category != models.NewsMacro {
			t.Fatalf("macro item not categorized: %+v", it)
		}
	}
}

func TestClassifyNewsCaps(t *testing.T) {
	a := testAnalyzer()

	var items []models.NewsItem
	for i := 0; i < 8; i++ {
		items = append(items, newsAt(fmt.Sprintf("Company %d ships product", i), "", time.Duration(i)*time.Hour))
	}
	_, corporate := a.ClassifyNews(items)
	if len(corporate) != 5 {
		t.Fatalf("corporate capped at 5, got %d", len(corporate))
	}
	if corporate[0].Headline != "Company 0 ships product" {
		t.Fatalf("cap must keep the newest items, got %+v", corporate[0])
	}
}

func TestSectorRotation(t *testing.T) {
	a := testAnalyzer()

	sectors := []models.SectorRotation{
		{Name: "Technology", ChangePct: 2.1},
		{Name: "Energy", ChangePct: 1.4},
		{Name: "Utilities", ChangePct: -1.8},
		{Name: "Health Care", ChangePct: 0.3},
		{Name: "Financials", ChangePct: -0.9},
	}
	hot, cold := a.SectorRotation(sectors)

	if len(hot) != 2 || hot[0].Name != "Technology" || hot[1].Name != "Energy" {
		t.Fatalf("hot = %+v", hot)
	}
	if len(cold) != 1 || cold[0].Name != "Utilities" {
		t.Fatalf("cold = %+v", cold)
	}

	note := a.RotationNote(hot, cold)
	if !strings.Contains(note, "Technology (+2.1%)") || !strings.Contains(note, "Utilities (-1.8%)") {
		t.Fatalf("note = %q", note)
	}
}

func TestSectorRotationCaps(t *testing.T) {
	a := testAnalyzer()

	var sectors []models.SectorRotation
	for i := 0; i < 5; i++ {
		sectors = append(sectors, models.SectorRotation{Name: fmt.Sprintf("S%d", i), ChangePct: 1.1 + float64(i)})
	}
	hot, _ := a.SectorRotation(sectors)
	if len(hot) != 3 {
		t.Fatalf("hot capped at 3, got %d", len(hot))
	}
	if hot[0].Name != "S4" {
		t.Fatalf("hot must be sorted descending, got %+v", hot)
	}
}

func TestRotationNoteColdOnly(t *testing.T) {
	a := testAnalyzer()

	cold := []models.SectorRotation{{Name: "Utilities", ChangePct: -1.8}}
	note := a.RotationNote(nil, cold)
	if !strings.HasPrefix(note, "Money flowing out of Utilities") {
		t.Fatalf("cold-only note must open the sentence, got %q", note)
	}

	hot := []models.SectorRotation{{Name: "Technology", ChangePct: 2.1}}
	note = a.RotationNote(hot, cold)
	if !strings.HasPrefix(note, "Money flowing into Technology") || !strings.Contains(note, "; out of Utilities") {
		t.Fatalf("combined note = %q", note)
	}
}

func TestRotationNoteEmpty(t *testing.T) {
	a := testAnalyzer()
	if note := a.RotationNote(nil, nil); !strings.Contains(strings.ToLower(note), "no significant") {
		t.Fatalf("note = %q", note)
	}
}

func TestVolumeSignals(t *testing.T) {
	a := testAnalyzer()

	movers := []models.MarketMover{
		{Ticker: "EARN", ChangePct: -12, Volume: 30_000_000, AverageVolume: 10_000_000},
		{Ticker: "NEWS", ChangePct: 6, Volume: 50_000_000, AverageVolume: 10_000_000},
		{Ticker: "ODD", ChangePct: 1, Volume: 21_000_000, AverageVolume: 10_000_000},
		{Ticker: "CALM", ChangePct: 3, Volume: 10_000_000, AverageVolume: 10_000_000},
		{Ticker: "NOAVG", ChangePct: 9, Volume: 5_000_000, AverageVolume: 0},
	}
	signals := a.VolumeSignals(movers)

	if len(signals) != 3 {
		t.Fatalf("signals = %+v, want 3", signals)
	}
	if signals[0].Ticker != "NEWS" {
		t.Fatalf("signals must sort by ratio descending, got %+v", signals)
	}

	reasons := map[string]models.SignalReason{}
	for _, s := range signals {
		reasons[s.Ticker] = s.Reason
	}
	if reasons["EARN"] != models.ReasonEarnings || reasons["NEWS"] != models.ReasonNews || reasons["ODD"] != models.ReasonUnusual {
		t.Fatalf("reasons = %+v", reasons)
	}
}

func TestWatchListDedupAndCap(t *testing.T) {
	a := testAnalyzer()

	movers := []models.MarketMover{
		{Ticker: "AAPL", ChangePct: 5},
		{Ticker: "TSLA", ChangePct: -8},
		{Ticker: "MSFT", ChangePct: 1},
		{Ticker: "NVDA", ChangePct: 4},
	}
	news := []models.NewsItem{
		newsAt("Apple unveils new chip", "AAPL", time.Hour),
		newsAt("Nvidia earnings preview", "NVDA", 2*time.Hour),
		newsAt("Fed holds rates", "", 3*time.Hour),
	}
	signals := []models.VolumeSignal{
		{Ticker: "TSLA", Volume: 30, AverageVolume: 10, Reason: models.ReasonEarnings},
		{Ticker: "GME", Volume: 40, AverageVolume: 10, Reason: models.ReasonUnusual},
	}

	items := a.BuildWatchList(movers, news, signals)

	seen := map[string]bool{}
	for _, it := range items {
		if seen[it.Ticker] {
			t.Fatalf("duplicate ticker %s in %+v", it.Ticker, items)
		}
		seen[it.Ticker] = true
	}
	if len(items) > 7 {
		t.Fatalf("watch list over cap: %d", len(items))
	}

	// Movers take priority: TSLA enters as a top mover, not a volume signal.
	if items[0].Ticker != "TSLA" || !strings.Contains(items[0].Reason, "top mover") {
		t.Fatalf("first item = %+v", items[0])
	}
	if !seen["GME"] {
		t.Fatalf("volume-signal ticker missing: %+v", items)
	}
}

func TestWatchListCapSeven(t *testing.T) {
	a := testAnalyzer()

	var movers []models.MarketMover
	var news []models.NewsItem
	var signals []models.VolumeSignal
	for i := 0; i < 5; i++ {
		movers = append(movers, models.MarketMover{Ticker: fmt.Sprintf("M%d", i), ChangePct: float64(10 - i)})
		news = append(news, newsAt(fmt.Sprintf("headline %d", i), fmt.Sprintf("N%d", i), time.Duration(i)*time.Hour))
		signals = append(signals, models.VolumeSignal{Ticker: fmt.Sprintf("V%d", i), Volume: 30, AverageVolume: 10})
	}

	items := a.BuildWatchList(movers, news, signals)
	if len(items) != 7 {
		t.Fatalf("watch list = %d entries, want 7", len(items))
	}
}
