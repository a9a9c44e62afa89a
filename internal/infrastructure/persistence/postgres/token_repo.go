package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/makrochain/loan-service/internal/domain/model"
	"github.com/makrochain/loan-service/internal/domain/valueobject"
)

// TokenRepo implements port.TokenRepository on PostgreSQL.
type TokenRepo struct {
	pool *pgxpool.Pool
}

// NewTokenRepo creates a new PostgreSQL-backed token repository.
func NewTokenRepo(pool *pgxpool.Pool) *TokenRepo {
	return &TokenRepo{pool: pool}
}

const tokenColumns = `
	id, harvest_id, blockchain_hash, status, minted_at, redeemed_at,
	version, created_at, updated_at`

// Save persists a token with an optimistic version guard.
func (r *TokenRepo) Save(ctx context.Context, t model.Token) error {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO tokens (
			id, harvest_id, blockchain_hash, status, minted_at, redeemed_at,
			version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET
			blockchain_hash = EXCLUDED.blockchain_hash,
			status          = EXCLUDED.status,
			minted_at       = EXCLUDED.minted_at,
			redeemed_at     = EXCLUDED.redeemed_at,
			version         = tokens.version + 1,
			updated_at      = EXCLUDED.updated_at
		WHERE tokens.version = $7
	`, t.ID(), t.HarvestID(), t.BlockchainHash(), t.Status().String(), t.MintedAt(), t.RedeemedAt(),
		t.Version(), t.CreatedAt(), t.UpdatedAt())
	if err != nil {
		return mapError("save token", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("save token %s: %w", t.ID(), valueobject.ErrVersionConflict)
	}
	return nil
}

// FindByID retrieves a token by ID.
func (r *TokenRepo) FindByID(ctx context.Context, id string) (model.Token, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+tokenColumns+` FROM tokens WHERE id = $1`, id)
	t, err := scanTokenRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Token{}, fmt.Errorf("token %s: %w", id, valueobject.ErrNotFound)
		}
		return model.Token{}, mapError("find token", err)
	}
	return t, nil
}

// FindByHarvestID retrieves the token created for a harvest.
func (r *TokenRepo) FindByHarvestID(ctx context.Context, harvestID string) (model.Token, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+tokenColumns+` FROM tokens WHERE harvest_id = $1`, harvestID)
	t, err := scanTokenRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Token{}, fmt.Errorf("token for harvest %s: %w", harvestID, valueobject.ErrNotFound)
		}
		return model.Token{}, mapError("find token", err)
	}
	return t, nil
}

func scanTokenRow(s scannable) (model.Token, error) {
	var (
		id, harvestID, blockchainHash string
		statusStr                     string
		mintedAt, redeemedAt          *time.Time
		version                       int
		createdAt, updatedAt          time.Time
	)

	err := s.Scan(
		&id, &harvestID, &blockchainHash, &statusStr, &mintedAt, &redeemedAt,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Token{}, err
	}

	status, err := valueobject.NewTokenStatus(statusStr)
	if err != nil {
		return model.Token{}, fmt.Errorf("parse token status: %w", err)
	}

	return model.ReconstructToken(
		id, harvestID, blockchainHash,
		status,
		mintedAt, redeemedAt,
		version,
		createdAt, updatedAt,
	), nil
}
