package source

import (
	"strconv"
	"strings"

	"MarketScan/internal/domain/models"
	"MarketScan/pkg/csvutil"
)

// stooq quote columns (f=snd2ohlcpv): Symbol, Name, Date, Open, High, Low,
// Close, Previous, Volume. Symbols come back suffixed, e.g. "spy.us".

func stooqSymbol(raw string) string {
	sym := strings.ToUpper(strings.TrimSpace(raw))
	if i := strings.Index(sym, "."); i > 0 {
		sym = sym[:i]
	}
	return sym
}

func mapStooqQuote(rec csvutil.Record) (models.IndexSnapshot, bool) {
	sym := stooqSymbol(rec["Symbol"])
	if sym == "" {
		return models.IndexSnapshot{}, false
	}
	price, err := strconv.ParseFloat(rec["Close"], 64)
	if err != nil || price == 0 {
		return models.IndexSnapshot{}, false
	}
	prev, _ := strconv.ParseFloat(rec["Previous"], 64)
	high, _ := strconv.ParseFloat(rec["High"], 64)
	low, _ := strconv.ParseFloat(rec["Low"], 64)

	name := rec["Name"]
	if name == "" {
		name = indexName(sym)
	}

	return normalizeSnapshot(models.IndexSnapshot{
		Symbol:        sym,
		Name:          name,
		Price:         price,
		DayHigh:       high,
		DayLow:        low,
		PreviousClose: prev,
	}), true
}

// stooq movers columns: Symbol, Name, Close, Change, Volume, AvgVolume, Sector.
func mapStooqMover(rec csvutil.Record) (models.MarketMover, bool) {
	sym := stooqSymbol(rec["Symbol"])
	if sym == "" {
		return models.MarketMover{}, false
	}
	price := ParseAbbrevFloat(rec["Close"])
	if price == 0 {
		return models.MarketMover{}, false
	}
	return models.MarketMover{
		Ticker:        sym,
		Name:          rec["Name"],
		Price:         price,
		ChangePct:     ParsePercent(rec["Change"]),
		Volume:        ParseAbbrevInt(rec["Volume"]),
		AverageVolume: ParseAbbrevInt(rec["AvgVolume"]),
		Sector:        rec["Sector"],
	}, true
}
