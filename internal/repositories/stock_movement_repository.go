package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"workshop-backend/internal/models"
)

// StockMovementRepository is read-only: movements are appended through
// the stock transaction helpers, never through this repository.
type StockMovementRepository struct {
	DB *pgxpool.Pool
}

func NewStockMovementRepository(db *pgxpool.Pool) *StockMovementRepository {
	return &StockMovementRepository{DB: db}
}

type StockMovementFilter struct {
	ItemID   int
	Type     string
	FromDate *time.Time
	ToDate   *time.Time
	Limit    int
}

func (r *StockMovementRepository) List(ctx context.Context, f StockMovementFilter) ([]*models.StockMovement, error) {
	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	rows, err := r.DB.Query(ctx,
		`SELECT m.id, m.inventory_item_id, m.type, m.quantity, m.cost_price, m.reference, m.notes,
                m.user_id, m.created_at, u.name, i.name, i.sku
         FROM stock_movements m
         JOIN users u ON u.id = m.user_id
         JOIN inventory_items i ON i.id = m.inventory_item_id
         WHERE ($1 = 0 OR m.inventory_item_id = $1)
           AND ($2 = '' OR m.type = $2)
           AND ($3::timestamptz IS NULL OR m.created_at >= $3)
           AND ($4::timestamptz IS NULL OR m.created_at <= $4)
         ORDER BY m.created_at DESC, m.id DESC
         LIMIT $5`,
		f.ItemID, f.Type, f.FromDate, f.ToDate, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []*models.StockMovement
	for rows.Next() {
		var m models.StockMovement
		err := rows.Scan(&m.ID, &m.InventoryItemID, &m.Type, &m.Quantity, &m.CostPrice,
			&m.Reference, &m.Notes, &m.UserID, &m.CreatedAt, &m.UserName, &m.ItemName, &m.ItemSKU)
		if err != nil {
			return nil, err
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}

// LedgerSum returns the signed movement sum for one item, used to
// verify the ledger against the cached quantity.
func (r *StockMovementRepository) LedgerSum(ctx context.Context, itemID int) (int, error) {
	var sum int
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM stock_movements WHERE inventory_item_id=$1`,
		itemID).Scan(&sum)
	return sum, err
}
