package models

import "testing"

func TestValidMovementType(t *testing.T) {
	for _, m := range []string{MovementPurchase, MovementAdjustment, MovementJobUsage, MovementSale, MovementShopUse} {
		if !ValidMovementType(m) {
			t.Errorf("ValidMovementType(%q) = false", m)
		}
	}
	if ValidMovementType("transfer") {
		t.Error("ValidMovementType accepted an unknown type")
	}
}

func TestDebitMovementType(t *testing.T) {
	cases := map[string]bool{
		MovementJobUsage:   true,
		MovementSale:       true,
		MovementShopUse:    true,
		MovementPurchase:   false,
		MovementAdjustment: false,
	}
	for movement, want := range cases {
		if got := DebitMovementType(movement); got != want {
			t.Errorf("DebitMovementType(%q) = %v, want %v", movement, got, want)
		}
	}
}
