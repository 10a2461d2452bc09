package models

import (
	"testing"
	"time"
)

func TestNumberPrefixes(t *testing.T) {
	at := time.Date(2025, time.March, 7, 10, 0, 0, 0, time.UTC)

	if got := JobNumberPrefix(at); got != "JC202503" {
		t.Errorf("JobNumberPrefix = %q, want JC202503", got)
	}
	if got := InvoiceNumberPrefix(at); got != "INV202503" {
		t.Errorf("InvoiceNumberPrefix = %q, want INV202503", got)
	}
	if got := SaleNumberPrefix(at); got != "POS20250307" {
		t.Errorf("SaleNumberPrefix = %q, want POS20250307", got)
	}
}

func TestFormatDocumentNumber(t *testing.T) {
	cases := []struct {
		prefix string
		seq    int
		want   string
	}{
		{"JC202503", 1, "JC2025030001"},
		{"INV202503", 42, "INV2025030042"},
		{"POS20250307", 9999, "POS202503079999"},
		{"POS20250307", 10000, "POS2025030710000"}, // grows past the pad
	}
	for _, tc := range cases {
		if got := FormatDocumentNumber(tc.prefix, tc.seq); got != tc.want {
			t.Errorf("FormatDocumentNumber(%q, %d) = %q, want %q", tc.prefix, tc.seq, got, tc.want)
		}
	}
}
