package usecase

import (
	"fmt"
	"sort"
	"strings"

	"MarketScan/internal/domain/models"
)

// SectorRotation picks out the sectors money is visibly moving into and out
// of. Hot sectors exceed the threshold and come back strongest-first; cold
// sectors fall below the negated threshold and come back most-negative-first.
// Both lists are capped independently.
func (a *Analyzer) SectorRotation(sectors []models.SectorRotation) (hot, cold []models.SectorRotation) {
	for _, s := range sectors {
		switch {
		case s.ChangePct > a.cfg.HotSectorPct:
			hot = append(hot, s)
		case s.ChangePct < -a.cfg.HotSectorPct:
			cold = append(cold, s)
		}
	}

	sort.SliceStable(hot, func(i, j int) bool { return hot[i].ChangePct > hot[j].ChangePct })
	sort.SliceStable(cold, func(i, j int) bool { return cold[i].ChangePct < cold[j].ChangePct })

	if len(hot) > a.cfg.SectorCap {
		hot = hot[:a.cfg.SectorCap]
	}
	if len(cold) > a.cfg.SectorCap {
		cold = cold[:a.cfg.SectorCap]
	}
	return hot, cold
}

// RotationNote renders the rule-based narrative for the hot/cold split. The
// summarizer may later replace it, but this string is always a valid
// fallback.
func (a *Analyzer) RotationNote(hot, cold []models.SectorRotation) string {
	if len(hot) == 0 && len(cold) == 0 {
		return "No significant sector rotation today."
	}

	var parts []string
	if len(hot) > 0 {
		parts = append(parts, "Money flowing into "+sectorList(hot))
	}
	if len(cold) > 0 {
		// Without a hot clause the cold one opens the sentence.
		prefix := "out of "
		if len(hot) == 0 {
			prefix = "Money flowing out of "
		}
		parts = append(parts, prefix+sectorList(cold))
	}
	return strings.Join(parts, "; ") + "."
}

func sectorList(sectors []models.SectorRotation) string {
	names := make([]string, 0, len(sectors))
	for _, s := range sectors {
		names = append(names, fmt.Sprintf("%s (%+.1f%%)", s.Name, s.ChangePct))
	}
	return strings.Join(names, ", ")
}
