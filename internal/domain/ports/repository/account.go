package repository

import (
	"context"

	"telegram-lookup-bot/internal/domain/model"
)

// AccountRepository is the port for per-user credit balances.
type AccountRepository interface {
	// Init inserts a zero-balance row if absent; no-op when the account exists.
	// Safe to call concurrently for the same user.
	Init(ctx context.Context, tx Tx, tgID int64) error
	// Find returns the account, domain.ErrNotFound if absent.
	Find(ctx context.Context, tx Tx, tgID int64) (*model.UserAccount, error)
	// FindForUpdate locks the account row for the duration of the enclosing
	// transaction. Must be called with a live tx.
	FindForUpdate(ctx context.Context, tx Tx, tgID int64) (*model.UserAccount, error)
	// Save writes the account's current balance and top-up date.
	Save(ctx context.Context, tx Tx, acc *model.UserAccount) error
	CountAccounts(ctx context.Context, tx Tx) (int, error)
}
