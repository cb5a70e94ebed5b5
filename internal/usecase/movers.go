package usecase

import (
	"math"
	"sort"

	"MarketScan/internal/domain/models"
)

// RankMovers splits the biggest absolute moves of the day by direction.
// All movers are ranked by absolute percent change first; only the top N make
// the cut, and those are then separated into gainers and losers. A ticker
// with a large negative move therefore displaces a smaller positive one.
func (a *Analyzer) RankMovers(movers []models.MarketMover) (gainers, losers []models.MarketMover) {
	if len(movers) == 0 {
		return nil, nil
	}

	ranked := make([]models.MarketMover, len(movers))
	copy(ranked, movers)
	sort.SliceStable(ranked, func(i, j int) bool {
		return math.Abs(ranked[i].ChangePct) > math.Abs(ranked[j].ChangePct)
	})

	if len(ranked) > a.cfg.TopMovers {
		ranked = ranked[:a.cfg.TopMovers]
	}

	for _, m := range ranked {
		switch {
		case m.ChangePct > 0:
			gainers = append(gainers, m)
		case m.ChangePct < 0:
			losers = append(losers, m)
		}
	}
	return gainers, losers
}
