package usecase

import (
	"MarketScan/pkg/config"
)

// Analyzer holds the tunable thresholds shared by every analysis step. All
// methods are pure: same input, same output, no I/O and no retained state.
type Analyzer struct {
	cfg config.Analysis
}

func NewAnalyzer(cfg config.Analysis) *Analyzer {
	if len(cfg.MacroKeywords) == 0 {
		cfg.MacroKeywords = config.DefaultMacroKeywords()
	}
	return &Analyzer{cfg: cfg}
}
