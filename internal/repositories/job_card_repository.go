package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"workshop-backend/internal/apperrors"
	"workshop-backend/internal/models"
	"workshop-backend/internal/timeutil"
)

type JobCardRepository struct {
	DB *pgxpool.Pool
}

func NewJobCardRepository(db *pgxpool.Pool) *JobCardRepository {
	return &JobCardRepository{DB: db}
}

// Create mints the job number and inserts the card in one transaction
// so concurrent creations cannot share a number.
func (r *JobCardRepository) Create(ctx context.Context, req *models.CreateJobCardRequest) (*models.JobCard, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	jobNumber, err := nextDocumentNumber(ctx, tx, models.JobNumberPrefix(timeutil.Now()))
	if err != nil {
		return nil, err
	}

	card := &models.JobCard{
		JobNumber:    jobNumber,
		CustomerID:   req.CustomerID,
		VehicleID:    req.VehicleID,
		AssignedToID: req.AssignedToID,
		Odometer:     req.Odometer,
		Notes:        req.Notes,
		Status:       models.JobStatusPending,
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO job_cards(job_number, customer_id, vehicle_id, assigned_to_id, odometer, notes, status)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING id, actual_total, created_at, updated_at`,
		card.JobNumber, card.CustomerID, card.VehicleID, card.AssignedToID,
		card.Odometer, card.Notes, card.Status,
	).Scan(&card.ID, &card.ActualTotal, &card.CreatedAt, &card.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return card, nil
}

const jobCardColumns = `j.id, j.job_number, j.customer_id, j.vehicle_id, j.assigned_to_id, j.odometer,
       j.notes, j.status, j.actual_total, j.completed_at, j.paid_at, j.created_at, j.updated_at,
       c.name, c.phone, v.vehicle_no, v.make, v.model, COALESCE(u.name, '')`

const jobCardJoins = ` FROM job_cards j
         JOIN customers c ON c.id = j.customer_id
         JOIN vehicles v ON v.id = j.vehicle_id
         LEFT JOIN users u ON u.id = j.assigned_to_id`

func scanJobCard(row pgx.Row) (*models.JobCard, error) {
	var card models.JobCard
	err := row.Scan(&card.ID, &card.JobNumber, &card.CustomerID, &card.VehicleID,
		&card.AssignedToID, &card.Odometer, &card.Notes, &card.Status, &card.ActualTotal,
		&card.CompletedAt, &card.PaidAt, &card.CreatedAt, &card.UpdatedAt,
		&card.CustomerName, &card.CustomerPhone, &card.VehicleNo, &card.VehicleMake,
		&card.VehicleModel, &card.AssignedToName)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *JobCardRepository) Get(ctx context.Context, id int) (*models.JobCard, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+jobCardColumns+jobCardJoins+` WHERE j.id=$1`, id)
	card, err := scanJobCard(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("job card", id)
	}
	if err != nil {
		return nil, err
	}
	return card, nil
}

// GetDetail assembles the full aggregate: header, parties, every line
// collection and the invoice if one exists.
func (r *JobCardRepository) GetDetail(ctx context.Context, id int) (*models.JobCardDetail, error) {
	card, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &models.JobCardDetail{JobCard: *card}

	detail.Customer = &models.Customer{}
	err = r.DB.QueryRow(ctx,
		`SELECT id, name, phone, email, address, notes, created_at, updated_at
         FROM customers WHERE id=$1`, card.CustomerID,
	).Scan(&detail.Customer.ID, &detail.Customer.Name, &detail.Customer.Phone,
		&detail.Customer.Email, &detail.Customer.Address, &detail.Customer.Notes,
		&detail.Customer.CreatedAt, &detail.Customer.UpdatedAt)
	if err != nil {
		return nil, err
	}

	detail.Vehicle = &models.Vehicle{}
	err = r.DB.QueryRow(ctx,
		`SELECT id, customer_id, vehicle_no, make, model, color, year, vin, notes, created_at, updated_at
         FROM vehicles WHERE id=$1`, card.VehicleID,
	).Scan(&detail.Vehicle.ID, &detail.Vehicle.CustomerID, &detail.Vehicle.VehicleNo,
		&detail.Vehicle.Make, &detail.Vehicle.Model, &detail.Vehicle.Color, &detail.Vehicle.Year,
		&detail.Vehicle.VIN, &detail.Vehicle.Notes, &detail.Vehicle.CreatedAt, &detail.Vehicle.UpdatedAt)
	if err != nil {
		return nil, err
	}

	detail.Services, err = r.listServices(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Parts, err = r.listParts(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.ManualEntries, err = r.listManualEntries(ctx, id)
	if err != nil {
		return nil, err
	}

	invoice, err := r.invoiceForJob(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Invoice = invoice

	return detail, nil
}

func (r *JobCardRepository) invoiceForJob(ctx context.Context, jobCardID int) (*models.Invoice, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, invoice_number, job_card_id, subtotal, tax_rate, tax_amount, discount, total,
                paid_amount, status, notes, paid_at, created_at, updated_at
         FROM invoices WHERE job_card_id=$1 AND status <> 'cancelled'`, jobCardID)

	var inv models.Invoice
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.JobCardID, &inv.Subtotal, &inv.TaxRate,
		&inv.TaxAmount, &inv.Discount, &inv.Total, &inv.PaidAmount, &inv.Status, &inv.Notes,
		&inv.PaidAt, &inv.CreatedAt, &inv.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *JobCardRepository) List(ctx context.Context, f models.JobCardFilter) ([]*models.JobCard, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+jobCardColumns+jobCardJoins+`
         WHERE ($1 = '' OR j.status = $1)
           AND ($2 = '' OR j.job_number ILIKE '%' || $2 || '%' OR c.name ILIKE '%' || $2 || '%'
                OR v.vehicle_no ILIKE '%' || $2 || '%')
           AND ($3 = 0 OR j.customer_id = $3)
           AND ($4 = 0 OR j.assigned_to_id = $4)
           AND ($5::timestamptz IS NULL OR j.created_at >= $5)
           AND ($6::timestamptz IS NULL OR j.created_at <= $6)
         ORDER BY j.created_at DESC`,
		f.Status, f.Search, f.CustomerID, f.AssignedToID, f.FromDate, f.ToDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []*models.JobCard
	for rows.Next() {
		card, err := scanJobCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

func (r *JobCardRepository) Stats(ctx context.Context) (*models.JobCardStats, error) {
	var stats models.JobCardStats
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE status = 'pending'),
                COUNT(*) FILTER (WHERE status = 'in_progress'),
                COUNT(*) FILTER (WHERE status = 'quality_check'),
                COUNT(*) FILTER (WHERE status = 'ready'),
                COUNT(*) FILTER (WHERE status = 'invoiced')
         FROM job_cards`,
	).Scan(&stats.Pending, &stats.InProgress, &stats.QualityCheck, &stats.Ready, &stats.Invoiced)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *JobCardRepository) Update(ctx context.Context, id int, req *models.UpdateJobCardRequest) (*models.JobCard, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE job_cards SET odometer=$1, notes=$2, assigned_to_id=$3, updated_at=CURRENT_TIMESTAMP
         WHERE id=$4`,
		req.Odometer, req.Notes, req.AssignedToID, id)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NotFound("job card", id)
	}
	return r.Get(ctx, id)
}

// UpdateStatus moves the card forward through its lifecycle. Backward
// moves are rejected here; invoiced and paid are reached only through
// the invoicing flow.
func (r *JobCardRepository) UpdateStatus(ctx context.Context, id int, status string) (*models.JobCard, error) {
	if !models.ValidJobStatus(status) {
		return nil, apperrors.Validation("unknown job status %q", status)
	}
	if status == models.JobStatusInvoiced || status == models.JobStatusPaid {
		return nil, apperrors.Validation("status %q is set by invoicing, not directly", status)
	}

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var current string
	err = tx.QueryRow(ctx,
		`SELECT status FROM job_cards WHERE id=$1 FOR UPDATE`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("job card", id)
	}
	if err != nil {
		return nil, err
	}

	if !models.CanTransitionJobStatus(current, status) {
		return nil, apperrors.Conflict("cannot move job card from %s to %s", current, status)
	}

	if status == models.JobStatusReady {
		_, err = tx.Exec(ctx,
			`UPDATE job_cards SET status=$1, completed_at=COALESCE(completed_at, CURRENT_TIMESTAMP),
                    updated_at=CURRENT_TIMESTAMP WHERE id=$2`, status, id)
	} else {
		_, err = tx.Exec(ctx,
			`UPDATE job_cards SET status=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`, status, id)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Delete removes a job card before it is billed, crediting every
// consumed part back to stock in the same transaction.
func (r *JobCardRepository) Delete(ctx context.Context, id int, userID int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var jobNumber, status string
	err = tx.QueryRow(ctx,
		`SELECT job_number, status FROM job_cards WHERE id=$1 FOR UPDATE`, id,
	).Scan(&jobNumber, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound("job card", id)
	}
	if err != nil {
		return err
	}

	if status == models.JobStatusInvoiced || status == models.JobStatusPaid {
		return apperrors.Conflict("job card %s is billed and cannot be deleted", jobNumber)
	}

	rows, err := tx.Query(ctx,
		`SELECT inventory_item_id, quantity FROM job_parts WHERE job_card_id=$1`, id)
	if err != nil {
		return err
	}
	type partLine struct{ itemID, quantity int }
	var parts []partLine
	for rows.Next() {
		var p partLine
		if err := rows.Scan(&p.itemID, &p.quantity); err != nil {
			rows.Close()
			return err
		}
		parts = append(parts, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, p := range parts {
		err = creditStock(ctx, tx, p.itemID, p.quantity, jobNumber, "job card deleted", userID)
		if err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM job_cards WHERE id=$1`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// lockCardForLineEdit takes the card's row lock before any line change.
// Cards stay editable after invoicing; the invoice keeps its own total
// snapshot, so later line changes never move an issued bill.
func lockCardForLineEdit(ctx context.Context, tx pgx.Tx, jobCardID int) (jobNumber string, err error) {
	err = tx.QueryRow(ctx,
		`SELECT job_number FROM job_cards WHERE id=$1 FOR UPDATE`, jobCardID,
	).Scan(&jobNumber)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", apperrors.NotFound("job card", jobCardID)
	}
	if err != nil {
		return "", err
	}
	return jobNumber, nil
}

// AddService appends a service line and recomputes the card total.
func (r *JobCardRepository) AddService(ctx context.Context, jobCardID int, req *models.AddJobServiceRequest) (*models.JobService, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := lockCardForLineEdit(ctx, tx, jobCardID); err != nil {
		return nil, err
	}

	line := &models.JobService{
		JobCardID: jobCardID,
		ServiceID: req.ServiceID,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		Discount:  req.Discount,
		Total:     models.LineTotal(req.Quantity, req.UnitPrice, req.Discount),
		Notes:     req.Notes,
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO job_services(job_card_id, service_id, quantity, unit_price, discount, total, notes)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING id, created_at`,
		line.JobCardID, line.ServiceID, line.Quantity, line.UnitPrice, line.Discount,
		line.Total, line.Notes,
	).Scan(&line.ID, &line.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := r.recomputeTotal(ctx, tx, jobCardID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return line, nil
}

func (r *JobCardRepository) RemoveService(ctx context.Context, jobCardID, lineID int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := lockCardForLineEdit(ctx, tx, jobCardID); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx,
		`DELETE FROM job_services WHERE id=$1 AND job_card_id=$2`, lineID, jobCardID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("job service", lineID)
	}

	if err := r.recomputeTotal(ctx, tx, jobCardID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// AddPart appends a parts line, debits the stock ledger and recomputes
// the total, all in one transaction.
func (r *JobCardRepository) AddPart(ctx context.Context, jobCardID int, req *models.AddJobPartRequest, userID int) (*models.JobPart, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	jobNumber, err := lockCardForLineEdit(ctx, tx, jobCardID)
	if err != nil {
		return nil, err
	}

	_, err = debitStock(ctx, tx, req.InventoryItemID, req.Quantity,
		models.MovementJobUsage, jobNumber, req.Notes, userID)
	if err != nil {
		return nil, err
	}

	line := &models.JobPart{
		JobCardID:       jobCardID,
		InventoryItemID: req.InventoryItemID,
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
		Discount:        req.Discount,
		Total:           models.LineTotal(req.Quantity, req.UnitPrice, req.Discount),
		Notes:           req.Notes,
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO job_parts(job_card_id, inventory_item_id, quantity, unit_price, discount, total, notes)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING id, created_at`,
		line.JobCardID, line.InventoryItemID, line.Quantity, line.UnitPrice, line.Discount,
		line.Total, line.Notes,
	).Scan(&line.ID, &line.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := r.recomputeTotal(ctx, tx, jobCardID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return line, nil
}

// RemovePart deletes a parts line and credits its quantity back to
// stock as an adjustment movement.
func (r *JobCardRepository) RemovePart(ctx context.Context, jobCardID, lineID, userID int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	jobNumber, err := lockCardForLineEdit(ctx, tx, jobCardID)
	if err != nil {
		return err
	}

	var itemID, quantity int
	err = tx.QueryRow(ctx,
		`DELETE FROM job_parts WHERE id=$1 AND job_card_id=$2
         RETURNING inventory_item_id, quantity`, lineID, jobCardID,
	).Scan(&itemID, &quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound("job part", lineID)
	}
	if err != nil {
		return err
	}

	err = creditStock(ctx, tx, itemID, quantity, jobNumber, "part removed from job card", userID)
	if err != nil {
		return err
	}

	if err := r.recomputeTotal(ctx, tx, jobCardID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *JobCardRepository) AddManualEntry(ctx context.Context, jobCardID int, req *models.ManualEntryRequest) (*models.JobManualEntry, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := lockCardForLineEdit(ctx, tx, jobCardID); err != nil {
		return nil, err
	}

	entry := &models.JobManualEntry{
		JobCardID:     jobCardID,
		Description:   req.Description,
		Category:      req.Category,
		EstimatedCost: req.EstimatedCost,
		ActualCost:    req.ActualCost,
		Notes:         req.Notes,
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO job_manual_entries(job_card_id, description, category, estimated_cost, actual_cost, notes)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id, created_at`,
		entry.JobCardID, entry.Description, entry.Category, entry.EstimatedCost,
		entry.ActualCost, entry.Notes,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := r.recomputeTotal(ctx, tx, jobCardID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *JobCardRepository) UpdateManualEntry(ctx context.Context, jobCardID, entryID int, req *models.ManualEntryRequest) (*models.JobManualEntry, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := lockCardForLineEdit(ctx, tx, jobCardID); err != nil {
		return nil, err
	}

	entry := &models.JobManualEntry{
		ID:            entryID,
		JobCardID:     jobCardID,
		Description:   req.Description,
		Category:      req.Category,
		EstimatedCost: req.EstimatedCost,
		ActualCost:    req.ActualCost,
		Notes:         req.Notes,
	}
	err = tx.QueryRow(ctx,
		`UPDATE job_manual_entries SET description=$1, category=$2, estimated_cost=$3, actual_cost=$4, notes=$5
         WHERE id=$6 AND job_card_id=$7
         RETURNING created_at`,
		entry.Description, entry.Category, entry.EstimatedCost, entry.ActualCost, entry.Notes,
		entryID, jobCardID,
	).Scan(&entry.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("manual entry", entryID)
	}
	if err != nil {
		return nil, err
	}

	if err := r.recomputeTotal(ctx, tx, jobCardID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *JobCardRepository) RemoveManualEntry(ctx context.Context, jobCardID, entryID int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := lockCardForLineEdit(ctx, tx, jobCardID); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx,
		`DELETE FROM job_manual_entries WHERE id=$1 AND job_card_id=$2`, entryID, jobCardID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("manual entry", entryID)
	}

	if err := r.recomputeTotal(ctx, tx, jobCardID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// recomputeTotal rebuilds actual_total from the card's current lines.
// Always a full recompute; incremental deltas drift.
func (r *JobCardRepository) recomputeTotal(ctx context.Context, tx pgx.Tx, jobCardID int) error {
	_, err := tx.Exec(ctx,
		`UPDATE job_cards SET actual_total =
             COALESCE((SELECT SUM(total) FROM job_services WHERE job_card_id=$1), 0)
           + COALESCE((SELECT SUM(total) FROM job_parts WHERE job_card_id=$1), 0)
           + COALESCE((SELECT SUM(COALESCE(actual_cost, estimated_cost)) FROM job_manual_entries WHERE job_card_id=$1), 0),
             updated_at=CURRENT_TIMESTAMP
         WHERE id=$1`, jobCardID)
	return err
}

func (r *JobCardRepository) listServices(ctx context.Context, jobCardID int) ([]*models.JobService, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT l.id, l.job_card_id, l.service_id, l.quantity, l.unit_price, l.discount, l.total,
                l.notes, l.created_at, s.name
         FROM job_services l
         JOIN services s ON s.id = l.service_id
         WHERE l.job_card_id=$1 ORDER BY l.id`, jobCardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*models.JobService
	for rows.Next() {
		var l models.JobService
		err := rows.Scan(&l.ID, &l.JobCardID, &l.ServiceID, &l.Quantity, &l.UnitPrice,
			&l.Discount, &l.Total, &l.Notes, &l.CreatedAt, &l.ServiceName)
		if err != nil {
			return nil, err
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

func (r *JobCardRepository) listParts(ctx context.Context, jobCardID int) ([]*models.JobPart, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT l.id, l.job_card_id, l.inventory_item_id, l.quantity, l.unit_price, l.discount,
                l.total, l.notes, l.created_at, i.name, i.sku
         FROM job_parts l
         JOIN inventory_items i ON i.id = l.inventory_item_id
         WHERE l.job_card_id=$1 ORDER BY l.id`, jobCardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*models.JobPart
	for rows.Next() {
		var l models.JobPart
		err := rows.Scan(&l.ID, &l.JobCardID, &l.InventoryItemID, &l.Quantity, &l.UnitPrice,
			&l.Discount, &l.Total, &l.Notes, &l.CreatedAt, &l.ItemName, &l.ItemSKU)
		if err != nil {
			return nil, err
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

func (r *JobCardRepository) listManualEntries(ctx context.Context, jobCardID int) ([]*models.JobManualEntry, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, job_card_id, description, category, estimated_cost, actual_cost, notes, created_at
         FROM job_manual_entries WHERE job_card_id=$1 ORDER BY id`, jobCardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.JobManualEntry
	for rows.Next() {
		var e models.JobManualEntry
		err := rows.Scan(&e.ID, &e.JobCardID, &e.Description, &e.Category,
			&e.EstimatedCost, &e.ActualCost, &e.Notes, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
