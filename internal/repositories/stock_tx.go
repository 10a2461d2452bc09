package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"workshop-backend/internal/apperrors"
	"workshop-backend/internal/metrics"
	"workshop-backend/internal/models"
)

// Transaction helpers shared by every repository that touches the
// stock ledger. The invariant they protect: inventory_items.current_stock
// always equals the signed sum of that item's stock_movements, and it
// never goes negative.

type lockedItem struct {
	ID           int
	Name         string
	CurrentStock int
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	IsActive     bool
}

// lockItem takes a row lock on the inventory item so the availability
// check and the stock write happen against a stable quantity. Callers
// must already hold an open transaction.
func lockItem(ctx context.Context, tx pgx.Tx, itemID int) (*lockedItem, error) {
	row := tx.QueryRow(ctx,
		`SELECT id, name, current_stock, cost_price, selling_price, is_active
         FROM inventory_items WHERE id=$1 FOR UPDATE`, itemID)

	var item lockedItem
	err := row.Scan(&item.ID, &item.Name, &item.CurrentStock,
		&item.CostPrice, &item.SellingPrice, &item.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("inventory item", itemID)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// appendMovement writes one signed ledger row and applies the same
// delta to the item's cached quantity. It assumes the caller holds the
// item's row lock and has already verified availability for debits.
func appendMovement(ctx context.Context, tx pgx.Tx, m *models.StockMovement) error {
	err := tx.QueryRow(ctx,
		`INSERT INTO stock_movements(inventory_item_id, type, quantity, cost_price, reference, notes, user_id)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING id, created_at`,
		m.InventoryItemID, m.Type, m.Quantity, m.CostPrice, m.Reference, m.Notes, m.UserID,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE inventory_items SET current_stock = current_stock + $1, updated_at=CURRENT_TIMESTAMP
         WHERE id=$2`,
		m.Quantity, m.InventoryItemID)
	if err != nil {
		return err
	}

	metrics.StockMovementsTotal.WithLabelValues(m.Type).Inc()
	return nil
}

// debitStock locks the item, verifies availability and appends a
// negative movement. quantity is the positive amount to remove.
func debitStock(ctx context.Context, tx pgx.Tx, itemID, quantity int, movementType, reference, notes string, userID int) (*lockedItem, error) {
	item, err := lockItem(ctx, tx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsActive {
		return nil, apperrors.Validation("inventory item %q is inactive", item.Name)
	}
	if item.CurrentStock < quantity {
		return nil, &apperrors.InsufficientStockError{
			ItemID:    item.ID,
			ItemName:  item.Name,
			Requested: quantity,
			Available: item.CurrentStock,
		}
	}

	cost := item.CostPrice
	err = appendMovement(ctx, tx, &models.StockMovement{
		InventoryItemID: itemID,
		Type:            movementType,
		Quantity:        -quantity,
		CostPrice:       &cost,
		Reference:       reference,
		Notes:           notes,
		UserID:          userID,
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// creditStock locks the item and appends a positive adjustment
// movement, used when a debit is reversed (part removal, refunds,
// usage deletion).
func creditStock(ctx context.Context, tx pgx.Tx, itemID, quantity int, reference, notes string, userID int) error {
	item, err := lockItem(ctx, tx, itemID)
	if err != nil {
		return err
	}

	cost := item.CostPrice
	return appendMovement(ctx, tx, &models.StockMovement{
		InventoryItemID: itemID,
		Type:            models.MovementAdjustment,
		Quantity:        quantity,
		CostPrice:       &cost,
		Reference:       reference,
		Notes:           notes,
		UserID:          userID,
	})
}

// nextDocumentNumber increments the per-prefix counter and formats the
// document number. Runs inside the document's own transaction; the
// upsert serializes concurrent creations on the counter row.
func nextDocumentNumber(ctx context.Context, tx pgx.Tx, prefix string) (string, error) {
	var seq int
	err := tx.QueryRow(ctx,
		`INSERT INTO document_counters(prefix, value) VALUES($1, 1)
         ON CONFLICT (prefix) DO UPDATE SET value = document_counters.value + 1
         RETURNING value`, prefix).Scan(&seq)
	if err != nil {
		return "", err
	}
	return models.FormatDocumentNumber(prefix, seq), nil
}
