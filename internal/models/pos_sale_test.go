package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSaleTotals(t *testing.T) {
	lines := []*PosSaleItem{
		{Quantity: 2, UnitPrice: d("10.00"), Discount: d("0")},
		{Quantity: 1, UnitPrice: d("15.00"), Discount: d("3.00")},
	}

	subtotal, taxAmount, total, change := SaleTotals(lines, d("8"), d("0"), d("40.00"))
	if subtotal.String() != "32" {
		t.Errorf("subtotal = %s, want 32", subtotal)
	}
	if taxAmount.String() != "2.56" {
		t.Errorf("taxAmount = %s, want 2.56", taxAmount)
	}
	if total.String() != "34.56" {
		t.Errorf("total = %s, want 34.56", total)
	}
	if change.String() != "5.44" {
		t.Errorf("change = %s, want 5.44", change)
	}
}

func TestSaleTotals_LineDiscountsReduceSubtotal(t *testing.T) {
	lines := []*PosSaleItem{
		{Quantity: 1, UnitPrice: d("100.00"), Discount: d("20.00")},
	}
	subtotal, _, _, _ := SaleTotals(lines, d("0"), d("0"), d("80.00"))
	if subtotal.String() != "80" {
		t.Fatalf("subtotal = %s, want 80", subtotal)
	}
}

func TestSaleTotals_ChangeNeverNegative(t *testing.T) {
	lines := []*PosSaleItem{{Quantity: 1, UnitPrice: d("50.00"), Discount: d("0")}}
	_, _, _, change := SaleTotals(lines, d("0"), d("0"), d("30.00"))
	if !change.IsZero() {
		t.Fatalf("change = %s, want 0 on underpayment", change)
	}
}

func TestSaleTotals_SaleLevelDiscount(t *testing.T) {
	lines := []*PosSaleItem{{Quantity: 3, UnitPrice: d("10.00"), Discount: d("0")}}
	_, _, total, _ := SaleTotals(lines, d("0"), d("5.00"), d("25.00"))
	if total.String() != "25" {
		t.Fatalf("total = %s, want 25", total)
	}
}
