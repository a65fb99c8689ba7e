package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
)

// EnsureSchema creates the two tables if they do not exist yet. The process
// owns its schema the way the bot always has; there is no separate migration
// step for two tables.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS users (
    user_id         BIGINT PRIMARY KEY,
    credits         BIGINT NOT NULL DEFAULT 0 CHECK (credits >= 0),
    last_topup_date DATE
);

CREATE TABLE IF NOT EXISTS redeem_codes (
    id         TEXT PRIMARY KEY,
    code       TEXT NOT NULL UNIQUE,
    amount     BIGINT NOT NULL CHECK (amount > 0),
    created_by BIGINT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    used_by    BIGINT,
    used_at    TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_redeem_codes_created_at ON redeem_codes (created_at DESC, id DESC);
`
	_, err := pool.Exec(ctx, ddl)
	return err
}
