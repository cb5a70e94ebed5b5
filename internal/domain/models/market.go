package models

import "time"

// IndexSnapshot is a point-in-time view of a market index.
type IndexSnapshot struct {
	Symbol        string
	Name          string
	Price         float64
	Change        float64
	ChangePct     float64
	DayHigh       float64
	DayLow        float64
	PreviousClose float64
}

// MarketMover is a single ticker ranked by daily move.
type MarketMover struct {
	Ticker        string
	Name          string
	Price         float64
	ChangePct     float64
	Volume        int64
	AverageVolume int64
	Sector        string // optional, "" when the provider omits it
}

// VolumeRatio returns volume over average volume, 0 when average is unknown.
func (m MarketMover) VolumeRatio() float64 {
	if m.AverageVolume == 0 {
		return 0
	}
	return float64(m.Volume) / float64(m.AverageVolume)
}

// SectorTrend classifies a sector's aggregate move.
type SectorTrend string

const (
	SectorHot     SectorTrend = "hot"
	SectorCold    SectorTrend = "cold"
	SectorNeutral SectorTrend = "neutral"
)

// SectorRotation aggregates the movers of one sector.
type SectorRotation struct {
	Name      string
	ChangePct float64  // mean of constituent movers
	Leaders   []string // top tickers by absolute change
	Trend     SectorTrend
}

// NewsCategory is assigned by classification, never by the provider.
type NewsCategory string

const (
	NewsCorporate NewsCategory = "corporate"
	NewsMacro     NewsCategory = "macro"
	NewsUnknown   NewsCategory = "unknown"
)

type NewsItem struct {
	ID          string
	PublishedAt time.Time
	Headline    string
	Source      string
	Ticker      string // optional
	URL         string // optional
	Category    NewsCategory
}

// SignalReason qualifies why a volume signal fired.
type SignalReason string

const (
	ReasonEarnings SignalReason = "earnings"
	ReasonNews     SignalReason = "news"
	ReasonUnusual  SignalReason = "unusual"
)

type VolumeSignal struct {
	Ticker        string
	Volume        int64
	AverageVolume int64
	ChangePct     float64
	Reason        SignalReason
}

// Ratio returns the volume ratio the signal was selected on.
func (v VolumeSignal) Ratio() float64 {
	if v.AverageVolume == 0 {
		return 0
	}
	return float64(v.Volume) / float64(v.AverageVolume)
}

// KeyTicker is a display projection of a ticker with a short note.
type KeyTicker struct {
	Ticker string
	Note   string
}

// WatchItem is a watch-list entry annotated with its selection reason.
type WatchItem struct {
	Ticker string
	Reason string
}

// Sentiment is the scan-level market verdict.
type Sentiment string

const (
	SentimentBullish Sentiment = "bullish"
	SentimentBearish Sentiment = "bearish"
	SentimentNeutral Sentiment = "neutral"
)
