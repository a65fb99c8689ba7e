package repository

import (
	"context"
	"time"

	"telegram-lookup-bot/internal/domain/model"
)

// CodeRepository is the port for managing one-time redeem codes.
type CodeRepository interface {
	// Save inserts a new code. The token column is unique.
	Save(ctx context.Context, tx Tx, code *model.RedeemCode) error
	// FindByCode returns the code row, domain.ErrNotFound if absent.
	FindByCode(ctx context.Context, tx Tx, code string) (*model.RedeemCode, error)
	// MarkUsed flips the code to used iff it is still unused, and reports
	// whether this call won the transition. Concurrent racers on the same
	// code observe exactly one winner.
	MarkUsed(ctx context.Context, tx Tx, code string, userID int64, at time.Time) (bool, error)
	// ListRecent returns up to limit codes, most recently created first.
	ListRecent(ctx context.Context, tx Tx, limit int) ([]*model.RedeemCode, error)
}
