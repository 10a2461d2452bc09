package repositories

import (
	"context"
	"errors"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"workshop-backend/internal/apperrors"
	"workshop-backend/internal/metrics"
	"workshop-backend/internal/models"
	"workshop-backend/internal/timeutil"
)

type PosSaleRepository struct {
	DB *pgxpool.Pool
}

func NewPosSaleRepository(db *pgxpool.Pool) *PosSaleRepository {
	return &PosSaleRepository{DB: db}
}

// Create runs the whole checkout atomically: mint the sale number,
// debit every cart line from stock, then write the sale and its lines.
// Items are debited in ID order so concurrent checkouts sharing items
// cannot deadlock.
func (r *PosSaleRepository) Create(ctx context.Context, req *models.CreateSaleRequest, userID int) (*models.PosSaleDetail, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	saleNumber, err := nextDocumentNumber(ctx, tx, models.SaleNumberPrefix(timeutil.Now()))
	if err != nil {
		return nil, err
	}

	lines := make([]*models.PosSaleItem, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, &models.PosSaleItem{
			InventoryItemID: it.InventoryItemID,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			Discount:        it.Discount,
			Total:           models.LineTotal(it.Quantity, it.UnitPrice, it.Discount),
		})
	}

	debitOrder := make([]*models.PosSaleItem, len(lines))
	copy(debitOrder, lines)
	sort.Slice(debitOrder, func(i, j int) bool {
		return debitOrder[i].InventoryItemID < debitOrder[j].InventoryItemID
	})
	for _, l := range debitOrder {
		item, err := debitStock(ctx, tx, l.InventoryItemID, l.Quantity,
			models.MovementSale, saleNumber, "", userID)
		if err != nil {
			return nil, err
		}
		l.ItemName = item.Name
	}

	// Underpayment is recorded as tendered; change never goes negative.
	subtotal, taxAmount, total, change := models.SaleTotals(lines, req.TaxRate, req.Discount, req.PaidAmount)

	sale := &models.PosSale{
		SaleNumber:    saleNumber,
		CustomerID:    req.CustomerID,
		UserID:        userID,
		Subtotal:      subtotal,
		TaxRate:       req.TaxRate,
		TaxAmount:     taxAmount,
		Discount:      req.Discount,
		Total:         total,
		PaidAmount:    req.PaidAmount,
		Change:        change,
		PaymentMethod: req.PaymentMethod,
		Status:        models.SaleStatusCompleted,
		Notes:         req.Notes,
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO pos_sales(sale_number, customer_id, user_id, subtotal, tax_rate, tax_amount,
                discount, total, paid_amount, change, payment_method, status, notes)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
         RETURNING id, created_at`,
		sale.SaleNumber, sale.CustomerID, sale.UserID, sale.Subtotal, sale.TaxRate,
		sale.TaxAmount, sale.Discount, sale.Total, sale.PaidAmount, sale.Change,
		sale.PaymentMethod, sale.Status, sale.Notes,
	).Scan(&sale.ID, &sale.CreatedAt)
	if err != nil {
		return nil, err
	}

	for _, l := range lines {
		l.PosSaleID = sale.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO pos_sale_items(pos_sale_id, inventory_item_id, quantity, unit_price, discount, total)
             VALUES($1, $2, $3, $4, $5, $6)
             RETURNING id`,
			l.PosSaleID, l.InventoryItemID, l.Quantity, l.UnitPrice, l.Discount, l.Total,
		).Scan(&l.ID)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.PosSalesTotal.Inc()
	return &models.PosSaleDetail{PosSale: *sale, Items: lines}, nil
}

const saleColumns = `s.id, s.sale_number, s.customer_id, s.user_id, s.subtotal, s.tax_rate,
       s.tax_amount, s.discount, s.total, s.paid_amount, s.change, s.payment_method, s.status,
       s.notes, s.created_at, COALESCE(c.name, ''), u.name,
       (SELECT COUNT(*) FROM pos_sale_items l WHERE l.pos_sale_id = s.id)`

const saleJoins = ` FROM pos_sales s
         LEFT JOIN customers c ON c.id = s.customer_id
         JOIN users u ON u.id = s.user_id`

func scanSale(row pgx.Row) (*models.PosSale, error) {
	var sale models.PosSale
	err := row.Scan(&sale.ID, &sale.SaleNumber, &sale.CustomerID, &sale.UserID, &sale.Subtotal,
		&sale.TaxRate, &sale.TaxAmount, &sale.Discount, &sale.Total, &sale.PaidAmount,
		&sale.Change, &sale.PaymentMethod, &sale.Status, &sale.Notes, &sale.CreatedAt,
		&sale.CustomerName, &sale.UserName, &sale.ItemCount)
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *PosSaleRepository) Get(ctx context.Context, id int) (*models.PosSale, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+saleColumns+saleJoins+` WHERE s.id=$1`, id)
	sale, err := scanSale(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("sale", id)
	}
	if err != nil {
		return nil, err
	}
	return sale, nil
}

func (r *PosSaleRepository) GetDetail(ctx context.Context, id int) (*models.PosSaleDetail, error) {
	sale, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT l.id, l.pos_sale_id, l.inventory_item_id, l.quantity, l.unit_price, l.discount,
                l.total, i.name, i.sku
         FROM pos_sale_items l
         JOIN inventory_items i ON i.id = l.inventory_item_id
         WHERE l.pos_sale_id=$1 ORDER BY l.id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	detail := &models.PosSaleDetail{PosSale: *sale}
	for rows.Next() {
		var l models.PosSaleItem
		err := rows.Scan(&l.ID, &l.PosSaleID, &l.InventoryItemID, &l.Quantity, &l.UnitPrice,
			&l.Discount, &l.Total, &l.ItemName, &l.ItemSKU)
		if err != nil {
			return nil, err
		}
		detail.Items = append(detail.Items, &l)
	}
	return detail, rows.Err()
}

func (r *PosSaleRepository) List(ctx context.Context, f models.SaleFilter) ([]*models.PosSale, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+saleColumns+saleJoins+`
         WHERE ($1 = '' OR s.sale_number ILIKE '%' || $1 || '%' OR c.name ILIKE '%' || $1 || '%')
           AND ($2::timestamptz IS NULL OR s.created_at >= $2)
           AND ($3::timestamptz IS NULL OR s.created_at <= $3)
         ORDER BY s.created_at DESC`,
		f.Search, f.FromDate, f.ToDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []*models.PosSale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

// Refund reverses a whole sale: every line is credited back to stock
// and the sale flips to refunded. Partial refunds are not supported.
func (r *PosSaleRepository) Refund(ctx context.Context, id int, userID int) (*models.PosSale, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var saleNumber, status string
	err = tx.QueryRow(ctx,
		`SELECT sale_number, status FROM pos_sales WHERE id=$1 FOR UPDATE`, id,
	).Scan(&saleNumber, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("sale", id)
	}
	if err != nil {
		return nil, err
	}

	if status == models.SaleStatusRefunded {
		return nil, apperrors.Conflict("sale %s is already refunded", saleNumber)
	}

	rows, err := tx.Query(ctx,
		`SELECT inventory_item_id, quantity FROM pos_sale_items WHERE pos_sale_id=$1
         ORDER BY inventory_item_id`, id)
	if err != nil {
		return nil, err
	}
	type saleLine struct{ itemID, quantity int }
	var lines []saleLine
	for rows.Next() {
		var l saleLine
		if err := rows.Scan(&l.itemID, &l.quantity); err != nil {
			rows.Close()
			return nil, err
		}
		lines = append(lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, l := range lines {
		err = creditStock(ctx, tx, l.itemID, l.quantity, saleNumber, "sale refunded", userID)
		if err != nil {
			return nil, err
		}
	}

	_, err = tx.Exec(ctx,
		`UPDATE pos_sales SET status=$1 WHERE id=$2`, models.SaleStatusRefunded, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// TodaySummary aggregates today's completed sales in shop-local time.
func (r *PosSaleRepository) TodaySummary(ctx context.Context) (*models.TodaySalesSummary, error) {
	now := timeutil.Now()
	start, end := timeutil.StartOfDay(now), timeutil.EndOfDay(now)

	var summary models.TodaySalesSummary
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(total), 0), COUNT(*),
                COALESCE(SUM(total) FILTER (WHERE payment_method = 'cash'), 0),
                COALESCE(SUM(total) FILTER (WHERE payment_method = 'card'), 0)
         FROM pos_sales
         WHERE status = 'completed' AND created_at BETWEEN $1 AND $2`,
		start, end,
	).Scan(&summary.TotalSales, &summary.TotalTransactions, &summary.CashSales, &summary.CardSales)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
