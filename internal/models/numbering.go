package models

import (
	"fmt"
	"time"
)

// Human-readable document numbers are a per-prefix sequence: the
// prefix rolls over monthly (daily for POS) and the counter row for a
// new prefix starts at 1. The counter increment happens in the same
// transaction as the document insert, so concurrent creations cannot
// mint duplicates.

// JobNumberPrefix returns JC<YYYY><MM> for the given time
func JobNumberPrefix(t time.Time) string {
	return fmt.Sprintf("JC%04d%02d", t.Year(), int(t.Month()))
}

// InvoiceNumberPrefix returns INV<YYYY><MM> for the given time
func InvoiceNumberPrefix(t time.Time) string {
	return fmt.Sprintf("INV%04d%02d", t.Year(), int(t.Month()))
}

// SaleNumberPrefix returns POS<YYYYMMDD> for the given time
func SaleNumberPrefix(t time.Time) string {
	return fmt.Sprintf("POS%04d%02d%02d", t.Year(), int(t.Month()), t.Day())
}

// FormatDocumentNumber concatenates a prefix with a zero-padded
// 4-digit sequence number
func FormatDocumentNumber(prefix string, seq int) string {
	return fmt.Sprintf("%s%04d", prefix, seq)
}
