package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"workshop-backend/internal/apperrors"
	"workshop-backend/internal/models"
)

type VehicleRepository struct {
	DB *pgxpool.Pool
}

func NewVehicleRepository(db *pgxpool.Pool) *VehicleRepository {
	return &VehicleRepository{DB: db}
}

func (r *VehicleRepository) Create(ctx context.Context, v *models.Vehicle) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO vehicles(customer_id, vehicle_no, make, model, color, year, vin, notes)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING id, created_at, updated_at`,
		v.CustomerID, v.VehicleNo, v.Make, v.Model, v.Color, v.Year, v.VIN, v.Notes,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
}

func (r *VehicleRepository) Get(ctx context.Context, id int) (*models.Vehicle, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT v.id, v.customer_id, v.vehicle_no, v.make, v.model, v.color, v.year, v.vin, v.notes,
                v.created_at, v.updated_at, c.name, c.phone
         FROM vehicles v
         JOIN customers c ON c.id = v.customer_id
         WHERE v.id=$1`, id)

	var vehicle models.Vehicle
	err := row.Scan(&vehicle.ID, &vehicle.CustomerID, &vehicle.VehicleNo, &vehicle.Make,
		&vehicle.Model, &vehicle.Color, &vehicle.Year, &vehicle.VIN, &vehicle.Notes,
		&vehicle.CreatedAt, &vehicle.UpdatedAt, &vehicle.CustomerName, &vehicle.CustomerPhone)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("vehicle", id)
	}
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *VehicleRepository) GetByVehicleNo(ctx context.Context, vehicleNo string) (*models.Vehicle, error) {
	var id int
	err := r.DB.QueryRow(ctx,
		`SELECT id FROM vehicles WHERE UPPER(vehicle_no)=UPPER($1)`, vehicleNo).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.Validation("vehicle %q not found", vehicleNo)
	}
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *VehicleRepository) List(ctx context.Context, customerID int, search string) ([]*models.Vehicle, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT v.id, v.customer_id, v.vehicle_no, v.make, v.model, v.color, v.year, v.vin, v.notes,
                v.created_at, v.updated_at, c.name, c.phone
         FROM vehicles v
         JOIN customers c ON c.id = v.customer_id
         WHERE ($1 = 0 OR v.customer_id = $1)
           AND ($2 = '' OR v.vehicle_no ILIKE '%' || $2 || '%' OR v.make ILIKE '%' || $2 || '%'
                OR v.model ILIKE '%' || $2 || '%' OR c.name ILIKE '%' || $2 || '%')
         ORDER BY v.created_at DESC`, customerID, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*models.Vehicle
	for rows.Next() {
		var vehicle models.Vehicle
		err := rows.Scan(&vehicle.ID, &vehicle.CustomerID, &vehicle.VehicleNo, &vehicle.Make,
			&vehicle.Model, &vehicle.Color, &vehicle.Year, &vehicle.VIN, &vehicle.Notes,
			&vehicle.CreatedAt, &vehicle.UpdatedAt, &vehicle.CustomerName, &vehicle.CustomerPhone)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, &vehicle)
	}
	return vehicles, rows.Err()
}

func (r *VehicleRepository) Update(ctx context.Context, v *models.Vehicle) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE vehicles SET vehicle_no=$1, make=$2, model=$3, color=$4, year=$5, vin=$6, notes=$7,
                updated_at=CURRENT_TIMESTAMP
         WHERE id=$8`,
		v.VehicleNo, v.Make, v.Model, v.Color, v.Year, v.VIN, v.Notes, v.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("vehicle", v.ID)
	}
	return nil
}

// Delete removes a vehicle. Blocked while job cards reference it.
func (r *VehicleRepository) Delete(ctx context.Context, id int) error {
	var jobCount int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM job_cards WHERE vehicle_id=$1`, id).Scan(&jobCount)
	if err != nil {
		return err
	}
	if jobCount > 0 {
		return apperrors.Conflict("vehicle has %d job card(s) and cannot be deleted", jobCount)
	}

	tag, err := r.DB.Exec(ctx, `DELETE FROM vehicles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("vehicle", id)
	}
	return nil
}

// VehicleNoExists reports whether another vehicle already carries the
// registration number.
func (r *VehicleRepository) VehicleNoExists(ctx context.Context, vehicleNo string, excludeID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM vehicles WHERE UPPER(vehicle_no)=UPPER($1) AND id<>$2)`,
		vehicleNo, excludeID).Scan(&exists)
	return exists, err
}
