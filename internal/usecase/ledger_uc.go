package usecase

import (
	"context"
	"errors"
	"time"

	"telegram-lookup-bot/internal/domain"
	"telegram-lookup-bot/internal/domain/model"
	"telegram-lookup-bot/internal/domain/ports/repository"
	"telegram-lookup-bot/internal/infra/logging"
	"telegram-lookup-bot/internal/infra/metrics"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"
)

// Compile-time check
var _ LedgerUseCase = (*ledgerUC)(nil)

// LedgerUseCase owns per-user credit accounting. Balances never go negative;
// the daily grant is applied at most once per UTC calendar day per user.
type LedgerUseCase interface {
	// EnsureAccount creates a zero-balance account if absent. Idempotent.
	EnsureAccount(ctx context.Context, tgID int64) error
	// GrantDailyIfDue applies the daily free credits when the user has not
	// yet received them today, and returns the (possibly updated) balance.
	GrantDailyIfDue(ctx context.Context, tgID int64) (int64, error)
	// GetBalance ensures the account exists and returns its balance.
	GetBalance(ctx context.Context, tgID int64) (int64, error)
	// Adjust adds delta (signed) to the balance, clamped at zero, and
	// returns the resulting balance.
	Adjust(ctx context.Context, tgID int64, delta int64) (int64, error)
}

type ledgerUC struct {
	accounts  repository.AccountRepository
	tm        repository.TransactionManager
	dailyFree int64
	log       *zerolog.Logger
	now       func() time.Time
}

func NewLedgerUseCase(accounts repository.AccountRepository, tm repository.TransactionManager, dailyFree int64, logger *zerolog.Logger) *ledgerUC {
	return &ledgerUC{
		accounts:  accounts,
		tm:        tm,
		dailyFree: dailyFree,
		log:       logger,
		now:       time.Now,
	}
}

func (u *ledgerUC) EnsureAccount(ctx context.Context, tgID int64) error {
	defer logging.TraceDuration(u.log, "LedgerUC.EnsureAccount")()
	// Single idempotent insert; no transaction needed.
	return u.accounts.Init(ctx, repository.NoTX, tgID)
}

func (u *ledgerUC) GrantDailyIfDue(ctx context.Context, tgID int64) (int64, error) {
	defer logging.TraceDuration(u.log, "LedgerUC.GrantDailyIfDue")()

	var balance int64
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		acc, err := u.lockAccount(ctx, tx, tgID)
		if err != nil {
			return err
		}
		now := u.now().UTC()
		if acc.TopUpDue(now) {
			acc.ApplyDelta(u.dailyFree)
			day := now.Truncate(24 * time.Hour)
			acc.LastTopUp = &day
			if err := u.accounts.Save(ctx, tx, acc); err != nil {
				return err
			}
			metrics.AddCreditsGranted(u.dailyFree)
			u.log.Debug().Int64("tg_id", tgID).Int64("balance", acc.Credits).Msg("daily credits granted")
		}
		balance = acc.Credits
		return nil
	})
	return balance, err
}

func (u *ledgerUC) GetBalance(ctx context.Context, tgID int64) (int64, error) {
	defer logging.TraceDuration(u.log, "LedgerUC.GetBalance")()

	if err := u.accounts.Init(ctx, repository.NoTX, tgID); err != nil {
		return 0, err
	}
	acc, err := u.accounts.Find(ctx, repository.NoTX, tgID)
	if err != nil {
		return 0, err
	}
	return acc.Credits, nil
}

func (u *ledgerUC) Adjust(ctx context.Context, tgID int64, delta int64) (int64, error) {
	defer logging.TraceDuration(u.log, "LedgerUC.Adjust")()

	var balance int64
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		acc, err := u.lockAccount(ctx, tx, tgID)
		if err != nil {
			return err
		}
		balance = acc.ApplyDelta(delta)
		return u.accounts.Save(ctx, tx, acc)
	})
	if err == nil && delta < 0 {
		metrics.AddCreditsSpent(-delta)
	}
	return balance, err
}

// lockAccount creates the row if missing, then locks it for the rest of the
// transaction so concurrent mutations of the same user serialize.
func (u *ledgerUC) lockAccount(ctx context.Context, tx repository.Tx, tgID int64) (*model.UserAccount, error) {
	if err := u.accounts.Init(ctx, tx, tgID); err != nil {
		return nil, err
	}
	acc, err := u.accounts.FindForUpdate(ctx, tx, tgID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Init just inserted or found the row; treat a miss as a bug upstream.
			return nil, domain.ErrInvalidExecContext
		}
		return nil, err
	}
	return acc, nil
}
