package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-lookup-bot/internal/domain"
	"telegram-lookup-bot/internal/domain/model"
	"telegram-lookup-bot/internal/domain/ports/repository"
)

var _ repository.AccountRepository = (*PostgresAccountRepo)(nil)

type PostgresAccountRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresAccountRepo(pool *pgxpool.Pool) *PostgresAccountRepo {
	return &PostgresAccountRepo{pool: pool}
}

func (r *PostgresAccountRepo) Init(ctx context.Context, tx repository.Tx, tgID int64) error {
	const q = `
INSERT INTO users (user_id, credits, last_topup_date)
VALUES ($1, 0, NULL)
ON CONFLICT (user_id) DO NOTHING;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	if _, err := ex.Exec(ctx, q, tgID); err != nil {
		return fmt.Errorf("init account: %w", err)
	}
	return nil
}

func (r *PostgresAccountRepo) Find(ctx context.Context, tx repository.Tx, tgID int64) (*model.UserAccount, error) {
	return r.find(ctx, tx, tgID, false)
}

func (r *PostgresAccountRepo) FindForUpdate(ctx context.Context, tx repository.Tx, tgID int64) (*model.UserAccount, error) {
	if !inTx(tx) {
		return nil, domain.ErrInvalidExecContext
	}
	return r.find(ctx, tx, tgID, true)
}

func (r *PostgresAccountRepo) find(ctx context.Context, tx repository.Tx, tgID int64, lock bool) (*model.UserAccount, error) {
	q := `SELECT user_id, credits, last_topup_date FROM users WHERE user_id=$1`
	if lock {
		q += ` FOR UPDATE`
	}
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	var acc model.UserAccount
	if err := ex.QueryRow(ctx, q, tgID).Scan(&acc.TelegramID, &acc.Credits, &acc.LastTopUp); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &acc, nil
}

func (r *PostgresAccountRepo) Save(ctx context.Context, tx repository.Tx, acc *model.UserAccount) error {
	const q = `
INSERT INTO users (user_id, credits, last_topup_date)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE SET
  credits = EXCLUDED.credits,
  last_topup_date = EXCLUDED.last_topup_date;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	if _, err := ex.Exec(ctx, q, acc.TelegramID, acc.Credits, acc.LastTopUp); err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	return nil
}

func (r *PostgresAccountRepo) CountAccounts(ctx context.Context, tx repository.Tx) (int, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := ex.QueryRow(ctx, `SELECT COUNT(*) FROM users;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return n, nil
}
