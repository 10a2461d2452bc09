package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{NotFound("customer", 7), http.StatusNotFound},
		{&InsufficientStockError{ItemID: 1, Requested: 5, Available: 2}, http.StatusConflict},
		{Conflict("already refunded"), http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", NotFound("vehicle", 3)), http.StatusNotFound},
	}
	for _, tc := range cases {
		if got := StatusCode(tc.err); got != tc.want {
			t.Errorf("StatusCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestIsExpected(t *testing.T) {
	if !IsExpected(Conflict("conflict")) {
		t.Error("Conflict should be expected")
	}
	if IsExpected(errors.New("boom")) {
		t.Error("plain errors are not expected")
	}
}

func TestNotFoundError_Message(t *testing.T) {
	if got := NotFound("invoice", 12).Error(); got != "invoice 12 not found" {
		t.Errorf("Error() = %q", got)
	}
	if got := NotFound("setting", nil).Error(); got != "setting not found" {
		t.Errorf("Error() = %q", got)
	}
}

func TestInsufficientStockError_Message(t *testing.T) {
	err := &InsufficientStockError{ItemID: 3, ItemName: "Oil Filter", Requested: 10, Available: 4}
	want := "insufficient stock for Oil Filter. Available: 4"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
