package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"workshop-backend/internal/apperrors"
	"workshop-backend/internal/models"
)

type CustomerRepository struct {
	DB *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO customers(name, phone, email, address, notes)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at, updated_at`,
		c.Name, c.Phone, c.Email, c.Address, c.Notes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CustomerRepository) Get(ctx context.Context, id int) (*models.Customer, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT c.id, c.name, c.phone, c.email, c.address, c.notes, c.created_at, c.updated_at,
                (SELECT COUNT(*) FROM vehicles v WHERE v.customer_id = c.id),
                (SELECT COUNT(*) FROM job_cards j WHERE j.customer_id = c.id)
         FROM customers c WHERE c.id=$1`, id)

	var customer models.Customer
	err := row.Scan(&customer.ID, &customer.Name, &customer.Phone, &customer.Email,
		&customer.Address, &customer.Notes, &customer.CreatedAt, &customer.UpdatedAt,
		&customer.VehicleCount, &customer.JobCardCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("customer", id)
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) List(ctx context.Context, search string) ([]*models.Customer, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT c.id, c.name, c.phone, c.email, c.address, c.notes, c.created_at, c.updated_at,
                (SELECT COUNT(*) FROM vehicles v WHERE v.customer_id = c.id),
                (SELECT COUNT(*) FROM job_cards j WHERE j.customer_id = c.id)
         FROM customers c
         WHERE $1 = '' OR c.name ILIKE '%' || $1 || '%' OR c.phone ILIKE '%' || $1 || '%'
         ORDER BY c.created_at DESC`, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		var customer models.Customer
		err := rows.Scan(&customer.ID, &customer.Name, &customer.Phone, &customer.Email,
			&customer.Address, &customer.Notes, &customer.CreatedAt, &customer.UpdatedAt,
			&customer.VehicleCount, &customer.JobCardCount)
		if err != nil {
			return nil, err
		}
		customers = append(customers, &customer)
	}
	return customers, rows.Err()
}

func (r *CustomerRepository) Update(ctx context.Context, c *models.Customer) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE customers SET name=$1, phone=$2, email=$3, address=$4, notes=$5, updated_at=CURRENT_TIMESTAMP
         WHERE id=$6`,
		c.Name, c.Phone, c.Email, c.Address, c.Notes, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("customer", c.ID)
	}
	return nil
}

// Delete removes a customer and cascades to their vehicles. Blocked
// while any job card references the customer: job cards are financial
// history and must never lose their party.
func (r *CustomerRepository) Delete(ctx context.Context, id int) error {
	var jobCount int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM job_cards WHERE customer_id=$1`, id).Scan(&jobCount)
	if err != nil {
		return err
	}
	if jobCount > 0 {
		return apperrors.Conflict("customer has %d job card(s) and cannot be deleted", jobCount)
	}

	tag, err := r.DB.Exec(ctx, `DELETE FROM customers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("customer", id)
	}
	return nil
}
