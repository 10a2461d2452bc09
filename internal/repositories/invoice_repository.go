package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"workshop-backend/internal/apperrors"
	"workshop-backend/internal/metrics"
	"workshop-backend/internal/models"
	"workshop-backend/internal/timeutil"
)

type InvoiceRepository struct {
	DB      *pgxpool.Pool
	jobRepo *JobCardRepository
}

func NewInvoiceRepository(db *pgxpool.Pool, jobRepo *JobCardRepository) *InvoiceRepository {
	return &InvoiceRepository{DB: db, jobRepo: jobRepo}
}

// Create snapshots the job card's current total into a frozen invoice
// and moves the card to invoiced, all in one transaction. Later edits
// to the card cannot change the billed amounts.
func (r *InvoiceRepository) Create(ctx context.Context, req *models.CreateInvoiceRequest) (*models.Invoice, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var jobNumber, status string
	var subtotal decimal.Decimal
	err = tx.QueryRow(ctx,
		`SELECT job_number, status, actual_total FROM job_cards WHERE id=$1 FOR UPDATE`,
		req.JobCardID,
	).Scan(&jobNumber, &status, &subtotal)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("job card", req.JobCardID)
	}
	if err != nil {
		return nil, err
	}

	if status != models.JobStatusReady {
		return nil, apperrors.Conflict("job card %s is %s; only ready job cards can be invoiced", jobNumber, status)
	}

	var existing int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM invoices WHERE job_card_id=$1 AND status <> 'cancelled'`,
		req.JobCardID).Scan(&existing)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, apperrors.Conflict("job card %s already has an invoice", jobNumber)
	}

	invoiceNumber, err := nextDocumentNumber(ctx, tx, models.InvoiceNumberPrefix(timeutil.Now()))
	if err != nil {
		return nil, err
	}

	taxAmount, total := models.InvoiceTotals(subtotal, req.TaxRate, req.Discount)
	inv := &models.Invoice{
		InvoiceNumber: invoiceNumber,
		JobCardID:     req.JobCardID,
		Subtotal:      subtotal,
		TaxRate:       req.TaxRate,
		TaxAmount:     taxAmount,
		Discount:      req.Discount,
		Total:         total,
		PaidAmount:    decimal.Zero,
		Status:        models.InvoiceStatusPending,
		Notes:         req.Notes,
		JobNumber:     jobNumber,
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO invoices(invoice_number, job_card_id, subtotal, tax_rate, tax_amount, discount,
                total, paid_amount, status, notes)
         VALUES($1, $2, $3, $4, $5, $6, $7, 0, $8, $9)
         RETURNING id, created_at, updated_at`,
		inv.InvoiceNumber, inv.JobCardID, inv.Subtotal, inv.TaxRate, inv.TaxAmount,
		inv.Discount, inv.Total, inv.Status, inv.Notes,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE job_cards SET status=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		models.JobStatusInvoiced, req.JobCardID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.InvoicesIssuedTotal.Inc()
	return inv, nil
}

const invoiceColumns = `i.id, i.invoice_number, i.job_card_id, i.subtotal, i.tax_rate, i.tax_amount,
       i.discount, i.total, i.paid_amount, i.status, i.notes, i.paid_at, i.created_at, i.updated_at,
       j.job_number, c.name, c.phone, v.vehicle_no`

const invoiceJoins = ` FROM invoices i
         JOIN job_cards j ON j.id = i.job_card_id
         JOIN customers c ON c.id = j.customer_id
         JOIN vehicles v ON v.id = j.vehicle_id`

func scanInvoice(row pgx.Row) (*models.Invoice, error) {
	var inv models.Invoice
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.JobCardID, &inv.Subtotal, &inv.TaxRate,
		&inv.TaxAmount, &inv.Discount, &inv.Total, &inv.PaidAmount, &inv.Status, &inv.Notes,
		&inv.PaidAt, &inv.CreatedAt, &inv.UpdatedAt,
		&inv.JobNumber, &inv.CustomerName, &inv.CustomerPhone, &inv.VehicleNo)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepository) Get(ctx context.Context, id int) (*models.Invoice, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+invoiceColumns+invoiceJoins+` WHERE i.id=$1`, id)
	inv, err := scanInvoice(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("invoice", id)
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *InvoiceRepository) GetDetail(ctx context.Context, id int) (*models.InvoiceDetail, error) {
	inv, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &models.InvoiceDetail{Invoice: *inv}

	detail.JobCard, err = r.jobRepo.GetDetail(ctx, inv.JobCardID)
	if err != nil {
		return nil, err
	}

	detail.Payments, err = r.ListPayments(ctx, id)
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (r *InvoiceRepository) List(ctx context.Context, f models.InvoiceFilter) ([]*models.Invoice, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+invoiceColumns+invoiceJoins+`
         WHERE ($1 = '' OR i.status = $1)
           AND ($2 = '' OR i.invoice_number ILIKE '%' || $2 || '%' OR j.job_number ILIKE '%' || $2 || '%'
                OR c.name ILIKE '%' || $2 || '%' OR v.vehicle_no ILIKE '%' || $2 || '%')
           AND ($3::timestamptz IS NULL OR i.created_at >= $3)
           AND ($4::timestamptz IS NULL OR i.created_at <= $4)
         ORDER BY i.created_at DESC`,
		f.Status, f.Search, f.FromDate, f.ToDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (r *InvoiceRepository) ListPayments(ctx context.Context, invoiceID int) ([]*models.Payment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, invoice_id, amount, method, reference, notes, user_id, created_at
         FROM payments WHERE invoice_id=$1 ORDER BY created_at`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		var p models.Payment
		err := rows.Scan(&p.ID, &p.InvoiceID, &p.Amount, &p.Method, &p.Reference,
			&p.Notes, &p.UserID, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}

// AddPayment records a payment and settles the invoice when the paid
// amount reaches the total. Overpayment is accepted. Settlement
// cascades the job card to paid in the same transaction.
func (r *InvoiceRepository) AddPayment(ctx context.Context, invoiceID int, req *models.AddPaymentRequest, userID int) (*models.Invoice, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var status string
	var jobCardID int
	var paidAmount, total decimal.Decimal
	err = tx.QueryRow(ctx,
		`SELECT status, job_card_id, paid_amount, total FROM invoices WHERE id=$1 FOR UPDATE`,
		invoiceID,
	).Scan(&status, &jobCardID, &paidAmount, &total)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("invoice", invoiceID)
	}
	if err != nil {
		return nil, err
	}

	if status == models.InvoiceStatusCancelled {
		return nil, apperrors.Conflict("invoice is cancelled")
	}
	if status == models.InvoiceStatusPaid {
		return nil, apperrors.Conflict("invoice is already paid")
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO payments(invoice_id, amount, method, reference, notes, user_id)
         VALUES($1, $2, $3, $4, $5, $6)`,
		invoiceID, req.Amount, req.Method, req.Reference, req.Notes, userID)
	if err != nil {
		return nil, err
	}

	newPaid := paidAmount.Add(req.Amount)
	newStatus := models.SettlementStatus(newPaid, total)

	if newStatus == models.InvoiceStatusPaid {
		_, err = tx.Exec(ctx,
			`UPDATE invoices SET paid_amount=$1, status=$2, paid_at=CURRENT_TIMESTAMP,
                    updated_at=CURRENT_TIMESTAMP WHERE id=$3`,
			newPaid, newStatus, invoiceID)
		if err != nil {
			return nil, err
		}
		_, err = tx.Exec(ctx,
			`UPDATE job_cards SET status=$1, paid_at=CURRENT_TIMESTAMP, updated_at=CURRENT_TIMESTAMP
             WHERE id=$2`,
			models.JobStatusPaid, jobCardID)
		if err != nil {
			return nil, err
		}
	} else {
		_, err = tx.Exec(ctx,
			`UPDATE invoices SET paid_amount=$1, status=$2, updated_at=CURRENT_TIMESTAMP WHERE id=$3`,
			newPaid, newStatus, invoiceID)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.Get(ctx, invoiceID)
}

// Cancel voids an invoice that is not fully paid and reverts the job
// card to ready. Partially paid invoices can still be cancelled; only a
// settled one cannot. The revert is billing-only: parts stay consumed
// and the ledger is untouched.
func (r *InvoiceRepository) Cancel(ctx context.Context, invoiceID int) (*models.Invoice, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var status string
	var jobCardID int
	err = tx.QueryRow(ctx,
		`SELECT status, job_card_id FROM invoices WHERE id=$1 FOR UPDATE`,
		invoiceID,
	).Scan(&status, &jobCardID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("invoice", invoiceID)
	}
	if err != nil {
		return nil, err
	}

	if status == models.InvoiceStatusCancelled {
		return nil, apperrors.Conflict("invoice is already cancelled")
	}
	if status == models.InvoiceStatusPaid {
		return nil, apperrors.Conflict("invoice is fully paid and cannot be cancelled")
	}

	_, err = tx.Exec(ctx,
		`UPDATE invoices SET status=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		models.InvoiceStatusCancelled, invoiceID)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE job_cards SET status=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		models.JobStatusReady, jobCardID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.Get(ctx, invoiceID)
}
