package models

import "time"

// QuickTake is an AI-generated summary paragraph attached to a scan.
type QuickTake struct {
	Text        string
	GeneratedAt time.Time
}

// MarketScan is the root aggregate produced by one pipeline run. A scan is
// never mutated after assembly; enrichment returns a new value.
type MarketScan struct {
	ID           string
	GeneratedAt  time.Time
	Sentiment    Sentiment
	Indexes      []IndexSnapshot
	Gainers      []MarketMover
	Losers       []MarketMover
	MacroNews    []NewsItem
	CorpNews     []NewsItem
	HotSectors   []SectorRotation
	ColdSectors  []SectorRotation
	RotationNote string
	Signals      []VolumeSignal
	Portfolio    []KeyTicker
	QuickTake    *QuickTake
	WatchList    []WatchItem
}

// WithQuickTake returns a copy of the scan with the quick-take attached.
func (s MarketScan) WithQuickTake(qt QuickTake) MarketScan {
	s.QuickTake = &qt
	return s
}

// WithRotationNote returns a copy of the scan with the rotation note replaced.
func (s MarketScan) WithRotationNote(note string) MarketScan {
	s.RotationNote = note
	return s
}
