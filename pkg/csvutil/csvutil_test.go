package csvutil

import (
	"errors"
	"strconv"
	"testing"
)

func TestParseQuotedDelimiter(t *testing.T) {
	data := []byte("name,price,change\n\"Acme, Inc.\",100,+2.00%\n")
	recs, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if len(recs[0]) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(recs[0]))
	}
	if recs[0]["name"] != "Acme, Inc." {
		t.Fatalf("comma not preserved: %q", recs[0]["name"])
	}
	if recs[0]["change"] != "+2.00%" {
		t.Fatalf("unexpected change %q", recs[0]["change"])
	}
}

func TestParseEscapedQuotes(t *testing.T) {
	data := []byte("headline,source\n\"CEO says \"\"buy now\"\"\",wire\n")
	recs, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recs[0]["headline"] != `CEO says "buy now"` {
		t.Fatalf("unexpected headline %q", recs[0]["headline"])
	}
}

func TestParseEmbeddedNewline(t *testing.T) {
	data := []byte("headline,source\n\"line one\nline two\",wire\n")
	recs, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("logical row should span physical lines, got %d records", len(recs))
	}
	if recs[0]["headline"] != "line one\nline two" {
		t.Fatalf("unexpected headline %q", recs[0]["headline"])
	}
}

func TestParseBOMAndCRLF(t *testing.T) {
	data := []byte("\xEF\xBB\xBFsymbol,close\r\nSPY,500.1\r\n")
	recs, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recs[0]["symbol"] != "SPY" {
		t.Fatalf("BOM not stripped from header: %q", recs[0]["symbol"])
	}
}

func TestParseBareCRLineEndings(t *testing.T) {
	data := []byte("symbol,close\rSPY,500.1\rQQQ,430.2\r")
	recs, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("CR-terminated rows should split, got %d records", len(recs))
	}
	if recs[1]["symbol"] != "QQQ" {
		t.Fatalf("unexpected second row %+v", recs[1])
	}
}

func TestParseShortRowPadded(t *testing.T) {
	data := []byte("a,b,c\n1,2\n")
	recs, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recs[0]["c"] != "" {
		t.Fatalf("short row should be padded, got %q", recs[0]["c"])
	}
}

func TestParseDuplicateHeaderLastWins(t *testing.T) {
	data := []byte("a,a\nfirst,second\n")
	recs, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recs[0]["a"] != "second" {
		t.Fatalf("duplicate header should keep last value, got %q", recs[0]["a"])
	}
}

func TestParseBlankTrailingRows(t *testing.T) {
	data := []byte("a,b\n1,2\n\n\n")
	recs, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("blank rows should be skipped, got %d records", len(recs))
	}
}

func TestParseStructuralFailures(t *testing.T) {
	if _, err := Parse([]byte("")); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := Parse([]byte("   \n")); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestParseFuncDropsUnmappableRows(t *testing.T) {
	data := []byte("symbol,price\nSPY,500.1\nBAD,not-a-number\nQQQ,430.2\n")
	type quote struct {
		symbol string
		price  float64
	}
	quotes, err := ParseFunc(data, func(rec Record) (quote, bool) {
		p, err := strconv.ParseFloat(rec["price"], 64)
		if err != nil {
			return quote{}, false
		}
		return quote{symbol: rec["symbol"], price: p}, true
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("expected malformed row dropped, got %d", len(quotes))
	}
	if quotes[1].symbol != "QQQ" {
		t.Fatalf("unexpected order: %+v", quotes)
	}
}

func TestParseFuncStructuralError(t *testing.T) {
	_, err := ParseFunc([]byte(""), func(rec Record) (int, bool) { return 0, true })
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected structural error, got %v", err)
	}
}
