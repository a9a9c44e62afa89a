package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/makrochain/loan-service/internal/domain/model"
	"github.com/makrochain/loan-service/internal/domain/valueobject"
)

// HarvestRepo implements port.HarvestRepository on PostgreSQL.
type HarvestRepo struct {
	pool *pgxpool.Pool
}

// NewHarvestRepo creates a new PostgreSQL-backed harvest repository.
func NewHarvestRepo(pool *pgxpool.Pool) *HarvestRepo {
	return &HarvestRepo{pool: pool}
}

const harvestColumns = `
	id, farmer_id, crop, quantity_kg, unit_price, currency,
	harvest_date, status, buyer_id, version, created_at, updated_at`

// Save persists a harvest with the same optimistic version guard as loans.
func (r *HarvestRepo) Save(ctx context.Context, h model.Harvest) error {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO harvests (
			id, farmer_id, crop, quantity_kg, unit_price, currency,
			harvest_date, status, buyer_id, version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (id) DO UPDATE SET
			status     = EXCLUDED.status,
			buyer_id   = EXCLUDED.buyer_id,
			version    = harvests.version + 1,
			updated_at = EXCLUDED.updated_at
		WHERE harvests.version = $10
	`, h.ID(), h.FarmerID(), h.Crop(), h.QuantityKg(), h.UnitPrice(), h.Currency(),
		h.HarvestDate(), h.Status().String(), h.BuyerID(), h.Version(), h.CreatedAt(), h.UpdatedAt())
	if err != nil {
		return mapError("save harvest", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("save harvest %s: %w", h.ID(), valueobject.ErrVersionConflict)
	}
	return nil
}

// FindByID retrieves a harvest by ID.
func (r *HarvestRepo) FindByID(ctx context.Context, id string) (model.Harvest, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+harvestColumns+` FROM harvests WHERE id = $1`, id)
	h, err := scanHarvestRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Harvest{}, fmt.Errorf("harvest %s: %w", id, valueobject.ErrNotFound)
		}
		return model.Harvest{}, mapError("find harvest", err)
	}
	return h, nil
}

// FindByFarmerID retrieves a farmer's harvests, newest first.
func (r *HarvestRepo) FindByFarmerID(ctx context.Context, farmerID string) ([]model.Harvest, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+harvestColumns+` FROM harvests
		WHERE farmer_id = $1
		ORDER BY created_at DESC
	`, farmerID)
	if err != nil {
		return nil, mapError("list harvests", err)
	}
	defer rows.Close()

	var harvests []model.Harvest
	for rows.Next() {
		h, err := scanHarvestRow(rows)
		if err != nil {
			return nil, mapError("scan harvest", err)
		}
		harvests = append(harvests, h)
	}
	return harvests, rows.Err()
}

func scanHarvestRow(s scannable) (model.Harvest, error) {
	var (
		id, farmerID, crop    string
		quantityKg, unitPrice decimal.Decimal
		currency              string
		harvestDate           time.Time
		statusStr, buyerID    string
		version               int
		createdAt, updatedAt  time.Time
	)

	err := s.Scan(
		&id, &farmerID, &crop, &quantityKg, &unitPrice, &currency,
		&harvestDate, &statusStr, &buyerID, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Harvest{}, err
	}

	status, err := valueobject.NewHarvestStatus(statusStr)
	if err != nil {
		return model.Harvest{}, fmt.Errorf("parse harvest status: %w", err)
	}

	return model.ReconstructHarvest(
		id, farmerID, crop,
		quantityKg, unitPrice,
		currency,
		harvestDate,
		status,
		buyerID,
		version,
		createdAt, updatedAt,
	), nil
}
