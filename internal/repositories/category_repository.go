package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"workshop-backend/internal/apperrors"
	"workshop-backend/internal/models"
)

// CategoryRepository manages both inventory categories and service
// categories. The two tables share a shape and differ only in which
// children block deletion.
type CategoryRepository struct {
	DB *pgxpool.Pool
}

func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO categories(name, description)
         VALUES($1, $2)
         RETURNING id, created_at, updated_at`,
		c.Name, c.Description,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CategoryRepository) Get(ctx context.Context, id int) (*models.Category, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT c.id, c.name, c.description, c.created_at, c.updated_at,
                (SELECT COUNT(*) FROM inventory_items i WHERE i.category_id = c.id)
         FROM categories c WHERE c.id=$1`, id)

	var category models.Category
	err := row.Scan(&category.ID, &category.Name, &category.Description,
		&category.CreatedAt, &category.UpdatedAt, &category.ItemCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("category", id)
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT c.id, c.name, c.description, c.created_at, c.updated_at,
                (SELECT COUNT(*) FROM inventory_items i WHERE i.category_id = c.id)
         FROM categories c ORDER BY c.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var category models.Category
		err := rows.Scan(&category.ID, &category.Name, &category.Description,
			&category.CreatedAt, &category.UpdatedAt, &category.ItemCount)
		if err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) Update(ctx context.Context, c *models.Category) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE categories SET name=$1, description=$2, updated_at=CURRENT_TIMESTAMP WHERE id=$3`,
		c.Name, c.Description, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("category", c.ID)
	}
	return nil
}

// Delete removes an inventory category. Blocked while items reference it.
func (r *CategoryRepository) Delete(ctx context.Context, id int) error {
	var itemCount int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM inventory_items WHERE category_id=$1`, id).Scan(&itemCount)
	if err != nil {
		return err
	}
	if itemCount > 0 {
		return apperrors.Conflict("category has %d item(s) and cannot be deleted", itemCount)
	}

	tag, err := r.DB.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("category", id)
	}
	return nil
}

func (r *CategoryRepository) NameExists(ctx context.Context, name string, excludeID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE LOWER(name)=LOWER($1) AND id<>$2)`,
		name, excludeID).Scan(&exists)
	return exists, err
}

// Service category variants

func (r *CategoryRepository) CreateServiceCategory(ctx context.Context, c *models.ServiceCategory) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO service_categories(name, description)
         VALUES($1, $2)
         RETURNING id, created_at, updated_at`,
		c.Name, c.Description,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CategoryRepository) GetServiceCategory(ctx context.Context, id int) (*models.ServiceCategory, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT c.id, c.name, c.description, c.created_at, c.updated_at,
                (SELECT COUNT(*) FROM services s WHERE s.category_id = c.id)
         FROM service_categories c WHERE c.id=$1`, id)

	var category models.ServiceCategory
	err := row.Scan(&category.ID, &category.Name, &category.Description,
		&category.CreatedAt, &category.UpdatedAt, &category.ServiceCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("service category", id)
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) ListServiceCategories(ctx context.Context) ([]*models.ServiceCategory, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT c.id, c.name, c.description, c.created_at, c.updated_at,
                (SELECT COUNT(*) FROM services s WHERE s.category_id = c.id)
         FROM service_categories c ORDER BY c.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.ServiceCategory
	for rows.Next() {
		var category models.ServiceCategory
		err := rows.Scan(&category.ID, &category.Name, &category.Description,
			&category.CreatedAt, &category.UpdatedAt, &category.ServiceCount)
		if err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) UpdateServiceCategory(ctx context.Context, c *models.ServiceCategory) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE service_categories SET name=$1, description=$2, updated_at=CURRENT_TIMESTAMP WHERE id=$3`,
		c.Name, c.Description, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("service category", c.ID)
	}
	return nil
}

func (r *CategoryRepository) DeleteServiceCategory(ctx context.Context, id int) error {
	var serviceCount int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM services WHERE category_id=$1`, id).Scan(&serviceCount)
	if err != nil {
		return err
	}
	if serviceCount > 0 {
		return apperrors.Conflict("service category has %d service(s) and cannot be deleted", serviceCount)
	}

	tag, err := r.DB.Exec(ctx, `DELETE FROM service_categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("service category", id)
	}
	return nil
}
