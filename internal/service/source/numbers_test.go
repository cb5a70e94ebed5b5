package source

import "testing"

func TestParseAbbrevFloat(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1.2M", 1.2e6},
		{"3.4B", 3.4e9},
		{"2T", 2e12},
		{"1,234.5K", 1.2345e6},
		{"+12.5", 12.5},
		{"-0.8%", -0.8},
		{"1.2m", 1.2e6},
		{"3.4b", 3.4e9},
		{" 42 ", 42},
		{"", 0},
		{"n/a", 0},
		{"--", 0},
	}
	for _, c := range cases {
		if got := ParseAbbrevFloat(c.in); got != c.want {
			t.Errorf("ParseAbbrevFloat(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseAbbrevFloatMultiByteRunes(t *testing.T) {
	// Runes whose uppercase form has a different byte length must not crash
	// the parser; garbage maps to 0 like any other malformed input.
	cases := []string{"5ſ", "ſ", "12.3ß", "1,2ſ4"}
	for _, in := range cases {
		if got := ParseAbbrevFloat(in); got != 0 {
			t.Errorf("ParseAbbrevFloat(%q) = %v, want 0", in, got)
		}
	}
}

func TestParseAbbrevInt(t *testing.T) {
	if got := ParseAbbrevInt("12.3M"); got != 12_300_000 {
		t.Fatalf("got %d", got)
	}
	if got := ParseAbbrevInt("garbage"); got != 0 {
		t.Fatalf("malformed input should map to 0, got %d", got)
	}
}

func TestParsePercent(t *testing.T) {
	if got := ParsePercent("+2.35%"); got != 2.35 {
		t.Fatalf("got %v", got)
	}
	if got := ParsePercent("-8%"); got != -8 {
		t.Fatalf("got %v", got)
	}
}
