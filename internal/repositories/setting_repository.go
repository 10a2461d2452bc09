package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"workshop-backend/internal/apperrors"
	"workshop-backend/internal/models"
)

type SettingRepository struct {
	DB *pgxpool.Pool
}

func NewSettingRepository(db *pgxpool.Pool) *SettingRepository {
	return &SettingRepository{DB: db}
}

func (r *SettingRepository) Get(ctx context.Context, key string) (*models.Setting, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT key, value, updated_by_user_id, updated_at FROM settings WHERE key=$1`, key)

	var s models.Setting
	err := row.Scan(&s.Key, &s.Value, &s.UpdatedByUserID, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("setting", 0)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingRepository) List(ctx context.Context) ([]*models.Setting, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT key, value, updated_by_user_id, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []*models.Setting
	for rows.Next() {
		var s models.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedByUserID, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, &s)
	}
	return settings, rows.Err()
}

func (r *SettingRepository) Upsert(ctx context.Context, key, value string, userID int) (*models.Setting, error) {
	row := r.DB.QueryRow(ctx,
		`INSERT INTO settings(key, value, updated_by_user_id, updated_at)
         VALUES($1, $2, $3, CURRENT_TIMESTAMP)
         ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value,
             updated_by_user_id=EXCLUDED.updated_by_user_id, updated_at=CURRENT_TIMESTAMP
         RETURNING key, value, updated_by_user_id, updated_at`,
		key, value, userID)

	var s models.Setting
	err := row.Scan(&s.Key, &s.Value, &s.UpdatedByUserID, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// TaxRate reads the configured default tax rate, zero when unset or
// malformed.
func (r *SettingRepository) TaxRate(ctx context.Context) (decimal.Decimal, error) {
	s, err := r.Get(ctx, models.SettingTaxRate)
	if err != nil {
		var nf *apperrors.NotFoundError
		if errors.As(err, &nf) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	rate, err := decimal.NewFromString(s.Value)
	if err != nil {
		return decimal.Zero, nil
	}
	return rate, nil
}
