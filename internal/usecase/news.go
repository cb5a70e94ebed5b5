package usecase

import (
	"sort"
	"strings"

	"MarketScan/internal/domain/models"
)

// ClassifyNews assigns every item a final category by matching the headline
// against the macro vocabulary, case-insensitively. Any keyword hit makes the
// story macro; everything else is corporate. Both buckets come back sorted
// newest-first and capped.
func (a *Analyzer) ClassifyNews(items []models.NewsItem) (macro, corporate []models.NewsItem) {
	for _, it := range items {
		if a.isMacroHeadline(it.Headline) {
			it.Category = models.NewsMacro
			macro = append(macro, it)
		} else {
			it.Category = models.NewsCorporate
			corporate = append(corporate, it)
		}
	}

	sortNewestFirst(macro)
	sortNewestFirst(corporate)

	if len(macro) > a.cfg.NewsCap {
		macro = macro[:a.cfg.NewsCap]
	}
	if len(corporate) > a.cfg.NewsCap {
		corporate = corporate[:a.cfg.NewsCap]
	}
	return macro, corporate
}

func (a *Analyzer) isMacroHeadline(headline string) bool {
	h := strings.ToLower(headline)
	for _, kw := range a.cfg.MacroKeywords {
		if strings.Contains(h, kw) {
			return true
		}
	}
	return false
}

func sortNewestFirst(items []models.NewsItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
}
