package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"workshop-backend/internal/apperrors"
	"workshop-backend/internal/models"
	"workshop-backend/internal/timeutil"
)

type DailyUsageRepository struct {
	DB *pgxpool.Pool
}

func NewDailyUsageRepository(db *pgxpool.Pool) *DailyUsageRepository {
	return &DailyUsageRepository{DB: db}
}

// Create logs shop consumption and debits the ledger with a shop_use
// movement in the same transaction.
func (r *DailyUsageRepository) Create(ctx context.Context, req *models.CreateDailyUsageRequest, userID int) (*models.DailyUsage, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	usage := &models.DailyUsage{
		InventoryItemID: req.InventoryItemID,
		Quantity:        req.Quantity,
		Reason:          req.Reason,
		Notes:           req.Notes,
		UserID:          userID,
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO daily_usages(inventory_item_id, quantity, reason, notes, user_id)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at`,
		usage.InventoryItemID, usage.Quantity, usage.Reason, usage.Notes, usage.UserID,
	).Scan(&usage.ID, &usage.CreatedAt)
	if err != nil {
		return nil, err
	}

	item, err := debitStock(ctx, tx, req.InventoryItemID, req.Quantity,
		models.MovementShopUse, fmt.Sprintf("usage #%d", usage.ID), req.Notes, userID)
	if err != nil {
		return nil, err
	}
	usage.ItemName = item.Name
	usage.ItemCost = item.CostPrice

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return usage, nil
}

func (r *DailyUsageRepository) List(ctx context.Context, from, to *time.Time) ([]*models.DailyUsage, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT d.id, d.inventory_item_id, d.quantity, d.reason, d.notes, d.user_id, d.created_at,
                u.name, i.name, i.sku, i.cost_price, COALESCE(c.name, '')
         FROM daily_usages d
         JOIN users u ON u.id = d.user_id
         JOIN inventory_items i ON i.id = d.inventory_item_id
         LEFT JOIN categories c ON c.id = i.category_id
         WHERE ($1::timestamptz IS NULL OR d.created_at >= $1)
           AND ($2::timestamptz IS NULL OR d.created_at <= $2)
         ORDER BY d.created_at DESC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usages []*models.DailyUsage
	for rows.Next() {
		var d models.DailyUsage
		err := rows.Scan(&d.ID, &d.InventoryItemID, &d.Quantity, &d.Reason, &d.Notes,
			&d.UserID, &d.CreatedAt, &d.UserName, &d.ItemName, &d.ItemSKU, &d.ItemCost,
			&d.CategoryName)
		if err != nil {
			return nil, err
		}
		usages = append(usages, &d)
	}
	return usages, rows.Err()
}

// Delete removes a usage record and credits the consumed quantity
// back to stock.
func (r *DailyUsageRepository) Delete(ctx context.Context, id int, userID int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var itemID, quantity int
	err = tx.QueryRow(ctx,
		`DELETE FROM daily_usages WHERE id=$1 RETURNING inventory_item_id, quantity`, id,
	).Scan(&itemID, &quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound("daily usage", id)
	}
	if err != nil {
		return err
	}

	err = creditStock(ctx, tx, itemID, quantity,
		fmt.Sprintf("usage #%d", id), "usage record deleted", userID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// TodaySummary aggregates today's usage at current item cost.
func (r *DailyUsageRepository) TodaySummary(ctx context.Context) (*models.DailyUsageSummary, error) {
	now := timeutil.Now()
	start, end := timeutil.StartOfDay(now), timeutil.EndOfDay(now)

	summary := &models.DailyUsageSummary{ByReason: map[string]int{}}
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(d.quantity), 0), COALESCE(SUM(d.quantity * i.cost_price), 0), COUNT(*)
         FROM daily_usages d
         JOIN inventory_items i ON i.id = d.inventory_item_id
         WHERE d.created_at BETWEEN $1 AND $2`,
		start, end,
	).Scan(&summary.TotalItems, &summary.TotalCost, &summary.Count)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT reason, SUM(quantity) FROM daily_usages
         WHERE created_at BETWEEN $1 AND $2 GROUP BY reason`,
		start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var reason string
		var qty int
		if err := rows.Scan(&reason, &qty); err != nil {
			return nil, err
		}
		summary.ByReason[reason] = qty
	}
	return summary, rows.Err()
}
