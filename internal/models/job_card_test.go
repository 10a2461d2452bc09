package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCanTransitionJobStatus(t *testing.T) {
	cases := []struct {
		from, to string
		allowed  bool
	}{
		{JobStatusPending, JobStatusInProgress, true},
		{JobStatusPending, JobStatusReady, true}, // skipping ahead is fine
		{JobStatusInProgress, JobStatusQualityCheck, true},
		{JobStatusQualityCheck, JobStatusReady, true},
		{JobStatusReady, JobStatusInvoiced, true},
		{JobStatusInvoiced, JobStatusPaid, true},
		{JobStatusInProgress, JobStatusPending, false},
		{JobStatusReady, JobStatusQualityCheck, false},
		{JobStatusInvoiced, JobStatusReady, false},
		{JobStatusPaid, JobStatusInvoiced, false},
		{JobStatusPending, JobStatusPending, false},
		{"unknown", JobStatusReady, false},
		{JobStatusReady, "unknown", false},
	}
	for _, tc := range cases {
		if got := CanTransitionJobStatus(tc.from, tc.to); got != tc.allowed {
			t.Errorf("CanTransitionJobStatus(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestValidJobStatus(t *testing.T) {
	for _, s := range []string{JobStatusPending, JobStatusInProgress, JobStatusQualityCheck, JobStatusReady, JobStatusInvoiced, JobStatusPaid} {
		if !ValidJobStatus(s) {
			t.Errorf("ValidJobStatus(%q) = false", s)
		}
	}
	if ValidJobStatus("done") {
		t.Error("ValidJobStatus accepted an unknown status")
	}
}

func TestLineTotal(t *testing.T) {
	cases := []struct {
		quantity  int
		unitPrice string
		discount  string
		want      string
	}{
		{2, "150.00", "0", "300"},
		{3, "19.99", "5.00", "54.97"},
		{1, "100.00", "100.00", "0"},
	}
	for _, tc := range cases {
		got := LineTotal(tc.quantity, decimal.RequireFromString(tc.unitPrice), decimal.RequireFromString(tc.discount))
		if got.String() != tc.want {
			t.Errorf("LineTotal(%d, %s, %s) = %s, want %s", tc.quantity, tc.unitPrice, tc.discount, got, tc.want)
		}
	}
}

func TestJobTotal_ManualEntriesPreferActualCost(t *testing.T) {
	actual := decimal.RequireFromString("80.00")
	services := []*JobService{{Total: decimal.RequireFromString("120.00")}}
	parts := []*JobPart{{Total: decimal.RequireFromString("45.50")}}
	entries := []*JobManualEntry{
		{EstimatedCost: decimal.RequireFromString("100.00"), ActualCost: &actual},
		{EstimatedCost: decimal.RequireFromString("30.00")},
	}

	got := JobTotal(services, parts, entries)
	want := decimal.RequireFromString("275.50")
	if !got.Equal(want) {
		t.Fatalf("JobTotal = %s, want %s", got, want)
	}
}

func TestJobTotal_Empty(t *testing.T) {
	if got := JobTotal(nil, nil, nil); !got.IsZero() {
		t.Fatalf("JobTotal(nil, nil, nil) = %s, want 0", got)
	}
}

func TestValidManualCategory(t *testing.T) {
	for _, c := range []string{ManualCategoryTinkering, ManualCategoryPainting, ManualCategoryOther} {
		if !ValidManualCategory(c) {
			t.Errorf("ValidManualCategory(%q) = false", c)
		}
	}
	if ValidManualCategory("welding") {
		t.Error("ValidManualCategory accepted an unknown category")
	}
}
