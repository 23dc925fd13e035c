package pwsh

import (
	"encoding/base64"
	"testing"
	"unicode/utf16"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"notepad", "'notepad'"},
		{"it's", "'it''s'"},
		{"", "''"},
		{"$env:PATH; rm", "'$env:PATH; rm'"},
	}
	for _, tt := range tests {
		if got := Quote(tt.in); got != tt.want {
			t.Errorf("Quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestQuoteList(t *testing.T) {
	if got, want := QuoteList([]string{"User.Read", "it's"}), "'User.Read','it''s'"; got != want {
		t.Errorf("QuoteList = %s, want %s", got, want)
	}
	if got := QuoteList(nil); got != "" {
		t.Errorf("QuoteList(nil) = %q, want empty", got)
	}
}

func TestEncodeCommand(t *testing.T) {
	raw, err := base64.StdEncoding.DecodeString(EncodeCommand("Get-Date é"))
	if err != nil {
		t.Fatal(err)
	}
	if len(raw)%2 != 0 {
		t.Fatalf("odd UTF-16 length %d", len(raw))
	}
	units := make([]uint16, len(raw)/2)
	for i := range units {
		units[i] = uint16(raw[2*i]) | uint16(raw[2*i+1])<<8
	}
	if got := string(utf16.Decode(units)); got != "Get-Date é" {
		t.Errorf("round trip = %q", got)
	}
}
