package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"workshop-backend/internal/apperrors"
	"workshop-backend/internal/models"
)

type InventoryItemRepository struct {
	DB *pgxpool.Pool
}

func NewInventoryItemRepository(db *pgxpool.Pool) *InventoryItemRepository {
	return &InventoryItemRepository{DB: db}
}

// Create inserts the item and, when an opening quantity is given,
// seeds the ledger with an opening adjustment in the same transaction.
func (r *InventoryItemRepository) Create(ctx context.Context, item *models.InventoryItem, userID int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	openingStock := item.CurrentStock
	err = tx.QueryRow(ctx,
		`INSERT INTO inventory_items(sku, name, description, category_id, cost_price, selling_price,
                current_stock, reorder_level, unit, barcode, is_active)
         VALUES($1, $2, $3, $4, $5, $6, 0, $7, $8, $9, TRUE)
         RETURNING id, created_at, updated_at`,
		item.SKU, item.Name, item.Description, item.CategoryID, item.CostPrice, item.SellingPrice,
		item.ReorderLevel, item.Unit, item.Barcode,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return err
	}
	item.IsActive = true
	item.CurrentStock = 0

	if openingStock > 0 {
		cost := item.CostPrice
		err = appendMovement(ctx, tx, &models.StockMovement{
			InventoryItemID: item.ID,
			Type:            models.MovementAdjustment,
			Quantity:        openingStock,
			CostPrice:       &cost,
			Reference:       "Initial Stock",
			UserID:          userID,
		})
		if err != nil {
			return err
		}
		item.CurrentStock = openingStock
	}

	return tx.Commit(ctx)
}

const itemColumns = `i.id, i.sku, i.name, i.description, i.category_id, i.cost_price, i.selling_price,
       i.current_stock, i.reorder_level, i.unit, i.barcode, i.is_active, i.created_at, i.updated_at,
       COALESCE(c.name, '')`

func scanItem(row pgx.Row) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := row.Scan(&item.ID, &item.SKU, &item.Name, &item.Description, &item.CategoryID,
		&item.CostPrice, &item.SellingPrice, &item.CurrentStock, &item.ReorderLevel,
		&item.Unit, &item.Barcode, &item.IsActive, &item.CreatedAt, &item.UpdatedAt,
		&item.CategoryName)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *InventoryItemRepository) Get(ctx context.Context, id int) (*models.InventoryItem, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+itemColumns+`
         FROM inventory_items i
         LEFT JOIN categories c ON c.id = i.category_id
         WHERE i.id=$1`, id)

	item, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("inventory item", id)
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Lookup finds an item by exact SKU or barcode, the POS scan path.
func (r *InventoryItemRepository) Lookup(ctx context.Context, code string) (*models.InventoryItem, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+itemColumns+`
         FROM inventory_items i
         LEFT JOIN categories c ON c.id = i.category_id
         WHERE (i.sku=$1 OR i.barcode=$1) AND i.is_active`, code)

	item, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.Validation("no item matches %q", code)
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

type InventoryItemFilter struct {
	CategoryID      int
	Search          string
	LowStock        bool
	IncludeInactive bool
}

func (r *InventoryItemRepository) List(ctx context.Context, f InventoryItemFilter) ([]*models.InventoryItem, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+itemColumns+`
         FROM inventory_items i
         LEFT JOIN categories c ON c.id = i.category_id
         WHERE ($1 = 0 OR i.category_id = $1)
           AND ($2 = '' OR i.name ILIKE '%' || $2 || '%' OR i.sku ILIKE '%' || $2 || '%'
                OR i.barcode = $2)
           AND (NOT $3 OR i.current_stock <= i.reorder_level)
           AND ($4 OR i.is_active)
         ORDER BY i.name`,
		f.CategoryID, f.Search, f.LowStock, f.IncludeInactive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Update writes item attributes. current_stock is deliberately not
// touched here; only movement-producing operations change it.
func (r *InventoryItemRepository) Update(ctx context.Context, item *models.InventoryItem) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE inventory_items SET sku=$1, name=$2, description=$3, category_id=$4, cost_price=$5,
                selling_price=$6, reorder_level=$7, unit=$8, barcode=$9, is_active=$10,
                updated_at=CURRENT_TIMESTAMP
         WHERE id=$11`,
		item.SKU, item.Name, item.Description, item.CategoryID, item.CostPrice,
		item.SellingPrice, item.ReorderLevel, item.Unit, item.Barcode, item.IsActive, item.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("inventory item", item.ID)
	}
	return nil
}

// Deactivate soft-deletes an item. Movement history is financial
// history, so rows are never hard deleted.
func (r *InventoryItemRepository) Deactivate(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE inventory_items SET is_active=FALSE, updated_at=CURRENT_TIMESTAMP WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("inventory item", id)
	}
	return nil
}

// ReceiveStock appends a purchase movement and optionally refreshes
// the item's cost price to the latest purchase cost.
func (r *InventoryItemRepository) ReceiveStock(ctx context.Context, itemID int, req *models.AddStockRequest, userID int) (*models.InventoryItem, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	item, err := lockItem(ctx, tx, itemID)
	if err != nil {
		return nil, err
	}

	cost := item.CostPrice
	if req.CostPrice != nil {
		cost = *req.CostPrice
		_, err = tx.Exec(ctx,
			`UPDATE inventory_items SET cost_price=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
			cost, itemID)
		if err != nil {
			return nil, err
		}
	}

	err = appendMovement(ctx, tx, &models.StockMovement{
		InventoryItemID: itemID,
		Type:            models.MovementPurchase,
		Quantity:        req.Quantity,
		CostPrice:       &cost,
		Reference:       req.Reference,
		Notes:           req.Notes,
		UserID:          userID,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.Get(ctx, itemID)
}

// AdjustStock sets an absolute quantity by appending the signed
// difference as an adjustment movement. A target equal to the current
// quantity appends nothing.
func (r *InventoryItemRepository) AdjustStock(ctx context.Context, itemID int, req *models.AdjustStockRequest, userID int) (*models.InventoryItem, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	item, err := lockItem(ctx, tx, itemID)
	if err != nil {
		return nil, err
	}

	delta := req.Quantity - item.CurrentStock
	if delta != 0 {
		cost := item.CostPrice
		err = appendMovement(ctx, tx, &models.StockMovement{
			InventoryItemID: itemID,
			Type:            models.MovementAdjustment,
			Quantity:        delta,
			CostPrice:       &cost,
			Reference:       "stock adjustment",
			Notes:           req.Notes,
			UserID:          userID,
		})
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.Get(ctx, itemID)
}
