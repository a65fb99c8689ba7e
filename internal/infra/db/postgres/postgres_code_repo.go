package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-lookup-bot/internal/domain"
	"telegram-lookup-bot/internal/domain/model"
	"telegram-lookup-bot/internal/domain/ports/repository"
)

// Ensure implementation satisfies the interface.
var _ repository.CodeRepository = (*PostgresCodeRepo)(nil)

type PostgresCodeRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresCodeRepo(pool *pgxpool.Pool) *PostgresCodeRepo {
	return &PostgresCodeRepo{pool: pool}
}

func (r *PostgresCodeRepo) Save(ctx context.Context, tx repository.Tx, code *model.RedeemCode) error {
	const q = `
INSERT INTO redeem_codes (id, code, amount, created_by, created_at, used_by, used_at)
VALUES ($1, $2, $3, $4, $5, $6, $7);
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	if _, err := ex.Exec(ctx, q, code.ID, code.Code, code.Amount, code.CreatedBy, code.CreatedAt, code.UsedBy, code.UsedAt); err != nil {
		return fmt.Errorf("save redeem code: %w", err)
	}
	return nil
}

func (r *PostgresCodeRepo) FindByCode(ctx context.Context, tx repository.Tx, code string) (*model.RedeemCode, error) {
	const q = `
SELECT id, code, amount, created_by, created_at, used_by, used_at
  FROM redeem_codes WHERE code=$1;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	var rc model.RedeemCode
	if err := ex.QueryRow(ctx, q, code).Scan(&rc.ID, &rc.Code, &rc.Amount, &rc.CreatedBy, &rc.CreatedAt, &rc.UsedBy, &rc.UsedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rc, nil
}

// MarkUsed is the single-winner transition. The WHERE used_by IS NULL guard
// means a second racer updates zero rows no matter how the reads interleaved.
func (r *PostgresCodeRepo) MarkUsed(ctx context.Context, tx repository.Tx, code string, userID int64, at time.Time) (bool, error) {
	const q = `
UPDATE redeem_codes SET used_by=$1, used_at=$2
 WHERE code=$3 AND used_by IS NULL;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return false, err
	}
	tag, err := ex.Exec(ctx, q, userID, at, code)
	if err != nil {
		return false, fmt.Errorf("mark code used: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PostgresCodeRepo) ListRecent(ctx context.Context, tx repository.Tx, limit int) ([]*model.RedeemCode, error) {
	const q = `
SELECT id, code, amount, created_by, created_at, used_by, used_at
  FROM redeem_codes
 ORDER BY created_at DESC, id DESC
 LIMIT $1;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.RedeemCode
	for rows.Next() {
		var rc model.RedeemCode
		if err := rows.Scan(&rc.ID, &rc.Code, &rc.Amount, &rc.CreatedBy, &rc.CreatedAt, &rc.UsedBy, &rc.UsedAt); err != nil {
			return nil, err
		}
		out = append(out, &rc)
	}
	return out, rows.Err()
}
