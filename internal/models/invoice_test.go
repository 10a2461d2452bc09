package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestInvoiceTotals(t *testing.T) {
	cases := []struct {
		subtotal, taxRate, discount string
		wantTax, wantTotal          string
	}{
		{"32.00", "5", "0", "1.6", "33.6"},
		{"1000.00", "8", "50.00", "80", "1030"},
		{"200.00", "0", "0", "0", "200"},
		{"0", "8", "0", "0", "0"},
	}
	for _, tc := range cases {
		tax, total := InvoiceTotals(
			decimal.RequireFromString(tc.subtotal),
			decimal.RequireFromString(tc.taxRate),
			decimal.RequireFromString(tc.discount))
		if tax.String() != tc.wantTax {
			t.Errorf("InvoiceTotals(%s, %s, %s) tax = %s, want %s", tc.subtotal, tc.taxRate, tc.discount, tax, tc.wantTax)
		}
		if total.String() != tc.wantTotal {
			t.Errorf("InvoiceTotals(%s, %s, %s) total = %s, want %s", tc.subtotal, tc.taxRate, tc.discount, total, tc.wantTotal)
		}
	}
}

func TestSettlementStatus(t *testing.T) {
	cases := []struct {
		paid, total string
		want        string
	}{
		{"0", "100.00", InvoiceStatusPartial},
		{"50.00", "100.00", InvoiceStatusPartial},
		{"99.99", "100.00", InvoiceStatusPartial},
		{"100.00", "100.00", InvoiceStatusPaid},
		{"120.00", "100.00", InvoiceStatusPaid}, // overpayment settles
	}
	for _, tc := range cases {
		got := SettlementStatus(decimal.RequireFromString(tc.paid), decimal.RequireFromString(tc.total))
		if got != tc.want {
			t.Errorf("SettlementStatus(%s, %s) = %q, want %q", tc.paid, tc.total, got, tc.want)
		}
	}
}

func TestValidPaymentMethod(t *testing.T) {
	if !ValidPaymentMethod(PaymentMethodCash) || !ValidPaymentMethod(PaymentMethodCard) {
		t.Error("known payment methods rejected")
	}
	for _, m := range []string{"cheque", "transfer", ""} {
		if ValidPaymentMethod(m) {
			t.Errorf("ValidPaymentMethod(%q) = true", m)
		}
	}
}
