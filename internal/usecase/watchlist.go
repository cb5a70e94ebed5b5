package usecase

import (
	"fmt"
	"math"
	"sort"

	"MarketScan/internal/domain/models"
)

// BuildWatchList unions three candidate pools in priority order: the biggest
// absolute movers, tickers named in the most recent news, and tickers already
// flagged by a volume signal. A ticker enters once, annotated with the first
// reason that selected it, and the list is capped.
func (a *Analyzer) BuildWatchList(movers []models.MarketMover, news []models.NewsItem, signals []models.VolumeSignal) []models.WatchItem {
	var items []models.WatchItem
	seen := make(map[string]bool)

	add := func(ticker, reason string) {
		if ticker == "" || seen[ticker] || len(items) >= a.cfg.WatchListCap {
			return
		}
		seen[ticker] = true
		items = append(items, models.WatchItem{Ticker: ticker, Reason: reason})
	}

	ranked := make([]models.MarketMover, len(movers))
	copy(ranked, movers)
	sort.SliceStable(ranked, func(i, j int) bool {
		return math.Abs(ranked[i].ChangePct) > math.Abs(ranked[j].ChangePct)
	})
	for i := 0; i < len(ranked) && i < a.cfg.WatchListMovers; i++ {
		add(ranked[i].Ticker, fmt.Sprintf("top mover, %+.1f%%", ranked[i].ChangePct))
	}

	recent := make([]models.NewsItem, len(news))
	copy(recent, news)
	sortNewestFirst(recent)
	for i := 0; i < len(recent) && i < a.cfg.WatchListNewsSpan; i++ {
		add(recent[i].Ticker, "in the news: "+recent[i].Headline)
	}

	for _, s := range signals {
		add(s.Ticker, fmt.Sprintf("%s volume, %.1fx average", s.Reason, s.Ratio()))
	}

	return items
}
