package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"workshop-backend/internal/apperrors"
	"workshop-backend/internal/models"
)

type ServiceRepository struct {
	DB *pgxpool.Pool
}

func NewServiceRepository(db *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{DB: db}
}

func (r *ServiceRepository) Create(ctx context.Context, s *models.Service) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO services(category_id, name, description, base_price, duration, is_active)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id, created_at, updated_at`,
		s.CategoryID, s.Name, s.Description, s.BasePrice, s.Duration, s.IsActive,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *ServiceRepository) Get(ctx context.Context, id int) (*models.Service, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT s.id, s.category_id, s.name, s.description, s.base_price, s.duration, s.is_active,
                s.created_at, s.updated_at, COALESCE(c.name, '')
         FROM services s
         LEFT JOIN service_categories c ON c.id = s.category_id
         WHERE s.id=$1`, id)

	var service models.Service
	err := row.Scan(&service.ID, &service.CategoryID, &service.Name, &service.Description,
		&service.BasePrice, &service.Duration, &service.IsActive,
		&service.CreatedAt, &service.UpdatedAt, &service.CategoryName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("service", id)
	}
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *ServiceRepository) List(ctx context.Context, categoryID int, search string, includeInactive bool) ([]*models.Service, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT s.id, s.category_id, s.name, s.description, s.base_price, s.duration, s.is_active,
                s.created_at, s.updated_at, COALESCE(c.name, '')
         FROM services s
         LEFT JOIN service_categories c ON c.id = s.category_id
         WHERE ($1 = 0 OR s.category_id = $1)
           AND ($2 = '' OR s.name ILIKE '%' || $2 || '%')
           AND ($3 OR s.is_active)
         ORDER BY s.name`, categoryID, search, includeInactive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*models.Service
	for rows.Next() {
		var service models.Service
		err := rows.Scan(&service.ID, &service.CategoryID, &service.Name, &service.Description,
			&service.BasePrice, &service.Duration, &service.IsActive,
			&service.CreatedAt, &service.UpdatedAt, &service.CategoryName)
		if err != nil {
			return nil, err
		}
		services = append(services, &service)
	}
	return services, rows.Err()
}

func (r *ServiceRepository) Update(ctx context.Context, s *models.Service) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE services SET category_id=$1, name=$2, description=$3, base_price=$4, duration=$5,
                is_active=$6, updated_at=CURRENT_TIMESTAMP
         WHERE id=$7`,
		s.CategoryID, s.Name, s.Description, s.BasePrice, s.Duration, s.IsActive, s.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("service", s.ID)
	}
	return nil
}

// Delete deactivates a service when job history references it,
// otherwise removes the row.
func (r *ServiceRepository) Delete(ctx context.Context, id int) error {
	var usageCount int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM job_services WHERE service_id=$1`, id).Scan(&usageCount)
	if err != nil {
		return err
	}

	if usageCount > 0 {
		tag, err := r.DB.Exec(ctx,
			`UPDATE services SET is_active=FALSE, updated_at=CURRENT_TIMESTAMP WHERE id=$1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NotFound("service", id)
		}
		return nil
	}

	tag, err := r.DB.Exec(ctx, `DELETE FROM services WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("service", id)
	}
	return nil
}
