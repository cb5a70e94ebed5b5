package source

import (
	"strconv"
	"strings"
)

// Upstream feeds deliver numbers as display strings: thousands separators,
// sign prefixes, percent signs, and SI suffixes (K/M/B/T). Malformed input
// maps to 0 rather than an error; single-row quality is not guaranteed.

var siSuffixes = map[byte]float64{
	'K': 1e3,
	'M': 1e6,
	'B': 1e9,
	'T': 1e12,
}

// ParseAbbrevFloat parses "1.2M", "3,456.7", "+12.5" and similar into a float.
func ParseAbbrevFloat(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "+")
	if s == "" {
		return 0
	}

	// Upper-case only the final byte: ToUpper on the whole string can change
	// its byte length for non-ASCII runes, which would misalign the index.
	mult := 1.0
	last := s[len(s)-1]
	if last >= 'a' && last <= 'z' {
		last -= 'a' - 'A'
	}
	if m, ok := siSuffixes[last]; ok {
		mult = m
		s = s[:len(s)-1]
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v * mult
}

// ParseAbbrevInt parses an abbreviated volume/count string into an int64.
func ParseAbbrevInt(s string) int64 {
	return int64(ParseAbbrevFloat(s))
}

// ParsePercent parses a percent-change display string ("+2.35%", "-0.8").
func ParsePercent(s string) float64 {
	return ParseAbbrevFloat(s)
}
