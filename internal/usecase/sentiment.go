package usecase

import (
	"MarketScan/internal/domain/models"
)

// Sentiment derives the scan-level verdict from the index snapshots.
// Bullish needs at least two positive indexes and a mean change above the
// configured threshold; bearish needs at most one positive index and a mean
// below the negated threshold. Anything else, including no indexes at all,
// is neutral.
func (a *Analyzer) Sentiment(indexes []models.IndexSnapshot) models.Sentiment {
	if len(indexes) == 0 {
		return models.SentimentNeutral
	}

	positive := 0
	sum := 0.0
	for _, idx := range indexes {
		if idx.ChangePct > 0 {
			positive++
		}
		sum += idx.ChangePct
	}
	mean := sum / float64(len(indexes))

	switch {
	case positive >= 2 && mean > a.cfg.SentimentMeanPct:
		return models.SentimentBullish
	case positive <= 1 && mean < -a.cfg.SentimentMeanPct:
		return models.SentimentBearish
	default:
		return models.SentimentNeutral
	}
}
