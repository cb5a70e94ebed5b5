package usecase

import (
	"math"
	"sort"

	"MarketScan/internal/domain/models"
)

// VolumeSignals surfaces movers trading at an unusual multiple of their
// average volume. Each signal carries a qualitative reason chosen by the
// size of the price move: a double-digit move usually means earnings, a
// mid-single-digit move means a news catalyst, anything smaller is just
// unusual volume.
func (a *Analyzer) VolumeSignals(movers []models.MarketMover) []models.VolumeSignal {
	var signals []models.VolumeSignal
	for _, m := range movers {
		if m.VolumeRatio() <= a.cfg.VolumeRatio {
			continue
		}
		signals = append(signals, models.VolumeSignal{
			Ticker:        m.Ticker,
			Volume:        m.Volume,
			AverageVolume: m.AverageVolume,
			ChangePct:     m.ChangePct,
			Reason:        a.signalReason(m.ChangePct),
		})
	}

	sort.SliceStable(signals, func(i, j int) bool {
		return signals[i].Ratio() > signals[j].Ratio()
	})

	if len(signals) > a.cfg.VolumeSignalCap {
		signals = signals[:a.cfg.VolumeSignalCap]
	}
	return signals
}

func (a *Analyzer) signalReason(changePct float64) models.SignalReason {
	switch abs := math.Abs(changePct); {
	case abs > a.cfg.EarningsMovePct:
		return models.ReasonEarnings
	case abs > a.cfg.NewsMovePct:
		return models.ReasonNews
	default:
		return models.ReasonUnusual
	}
}
