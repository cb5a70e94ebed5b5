package source

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"MarketScan/internal/domain/models"
	"MarketScan/pkg/util"
)

// defaultSectorTrendPct classifies a sector's trend when no threshold is
// configured.
const defaultSectorTrendPct = 1.5

var indexNames = map[string]string{
	"SPY": "S&P 500",
	"QQQ": "Nasdaq 100",
	"DIA": "Dow Jones",
	"IWM": "Russell 2000",
}

func indexName(ticker string) string {
	if n, ok := indexNames[ticker]; ok {
		return n
	}
	return ticker
}

// normalizeSnapshot enforces price = previousClose + change, deriving the one
// value the provider omitted.
func normalizeSnapshot(s models.IndexSnapshot) models.IndexSnapshot {
	const tol = 1e-6
	switch {
	case s.Price == 0 && s.PreviousClose != 0:
		s.Price = s.PreviousClose + s.Change
	case s.PreviousClose == 0 && s.Price != 0:
		s.PreviousClose = s.Price - s.Change
	case s.Change == 0 && math.Abs(s.Price-s.PreviousClose) > tol:
		s.Change = s.Price - s.PreviousClose
	}
	if s.ChangePct == 0 && s.PreviousClose != 0 {
		s.ChangePct = s.Change / s.PreviousClose * 100
	}
	return s
}

func mapFinnhubQuote(ticker string, q fhQuote) models.IndexSnapshot {
	return normalizeSnapshot(models.IndexSnapshot{
		Symbol:        ticker,
		Name:          indexName(ticker),
		Price:         q.Current,
		Change:        q.Change,
		ChangePct:     q.ChangePct,
		DayHigh:       q.High,
		DayLow:        q.Low,
		PreviousClose: q.PreviousClose,
	})
}

func mapFinnhubNews(rows []fhNews) []models.NewsItem {
	out := make([]models.NewsItem, 0, len(rows))
	for _, r := range rows {
		if r.Headline == "" {
			continue
		}
		id := strconv.FormatInt(r.ID, 10)
		if r.ID == 0 {
			id = fmt.Sprintf("%s-%d", r.Source, r.Datetime)
		}
		out = append(out, models.NewsItem{
			ID:          id,
			PublishedAt: util.ParseTimeDefault(strconv.FormatInt(r.Datetime, 10), time.Now().UTC()),
			Headline:    r.Headline,
			Source:      r.Source,
			Ticker:      r.Related,
			URL:         r.URL,
			Category:    models.NewsUnknown, // provisional; classified downstream
		})
	}
	return out
}

func mapFinnhubMovers(rows []fhMover) []models.MarketMover {
	out := make([]models.MarketMover, 0, len(rows))
	for _, r := range rows {
		if r.Symbol == "" {
			continue
		}
		out = append(out, models.MarketMover{
			Ticker:        r.Symbol,
			Name:          r.Name,
			Price:         ParseAbbrevFloat(r.Price),
			ChangePct:     ParsePercent(r.ChangePct),
			Volume:        ParseAbbrevInt(r.Volume),
			AverageVolume: ParseAbbrevInt(r.AvgVolume),
			Sector:        r.Sector,
		})
	}
	return out
}

// AggregateSectors groups movers by sector into rotation rows: mean change,
// top-2 leaders by absolute change, trend by the ±trendPct threshold
// (±1.5% when trendPct is zero or negative).
func AggregateSectors(movers []models.MarketMover, trendPct float64) []models.SectorRotation {
	if trendPct <= 0 {
		trendPct = defaultSectorTrendPct
	}
	bySector := make(map[string][]models.MarketMover)
	for _, m := range movers {
		if m.Sector == "" {
			continue
		}
		bySector[m.Sector] = append(bySector[m.Sector], m)
	}

	out := make([]models.SectorRotation, 0, len(bySector))
	for name, ms := range bySector {
		var sum float64
		for _, m := range ms {
			sum += m.ChangePct
		}
		mean := sum / float64(len(ms))

		sort.Slice(ms, func(i, j int) bool {
			return math.Abs(ms[i].ChangePct) > math.Abs(ms[j].ChangePct)
		})
		leaders := make([]string, 0, 2)
		for _, m := range ms {
			if len(leaders) == 2 {
				break
			}
			leaders = append(leaders, m.Ticker)
		}

		out = append(out, models.SectorRotation{
			Name:      name,
			ChangePct: mean,
			Leaders:   leaders,
			Trend:     classifyTrend(mean, trendPct),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func classifyTrend(meanPct, trendPct float64) models.SectorTrend {
	switch {
	case meanPct > trendPct:
		return models.SectorHot
	case meanPct < -trendPct:
		return models.SectorCold
	default:
		return models.SectorNeutral
	}
}
