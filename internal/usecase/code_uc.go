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
var _ CodeUseCase = (*codeUC)(nil)

// CodeUseCase issues one-time redeem codes and redeems them exactly once.
type CodeUseCase interface {
	// Issue creates a new unused code worth amount credits.
	// Fails with domain.ErrInvalidAmount when amount <= 0.
	Issue(ctx context.Context, amount int64, issuer int64) (*model.RedeemCode, error)
	// Redeem consumes the code for tgID and credits its amount to the
	// user's balance atomically. At most one concurrent caller succeeds;
	// the rest observe domain.ErrCodeAlreadyUsed.
	Redeem(ctx context.Context, code string, tgID int64) (int64, error)
	// List returns up to limit codes, most recently created first.
	List(ctx context.Context, limit int) ([]*model.RedeemCode, error)
}

type codeUC struct {
	codes    repository.CodeRepository
	accounts repository.AccountRepository
	tm       repository.TransactionManager
	log      *zerolog.Logger
	now      func() time.Time
}

func NewCodeUseCase(codes repository.CodeRepository, accounts repository.AccountRepository, tm repository.TransactionManager, logger *zerolog.Logger) *codeUC {
	return &codeUC{
		codes:    codes,
		accounts: accounts,
		tm:       tm,
		log:      logger,
		now:      time.Now,
	}
}

func (u *codeUC) Issue(ctx context.Context, amount int64, issuer int64) (*model.RedeemCode, error) {
	defer logging.TraceDuration(u.log, "CodeUC.Issue")()

	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	token, err := generateRedeemToken()
	if err != nil {
		return nil, err
	}
	rc, err := model.NewRedeemCode(token, amount, issuer)
	if err != nil {
		return nil, err
	}
	if err := u.codes.Save(ctx, repository.NoTX, rc); err != nil {
		return nil, err
	}
	metrics.IncCodeIssued()
	u.log.Info().Int64("issuer", issuer).Int64("amount", amount).Msg("redeem code issued")
	return rc, nil
}

func (u *codeUC) Redeem(ctx context.Context, code string, tgID int64) (int64, error) {
	defer logging.TraceDuration(u.log, "CodeUC.Redeem")()

	var amount int64
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		rc, err := u.codes.FindByCode(ctx, tx, code)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrCodeNotFound
			}
			return err
		}
		if rc.Used() {
			return domain.ErrCodeAlreadyUsed
		}

		// The guarded update is the serialization point: of N concurrent
		// redeemers only the first flips the row, everyone else loses here.
		won, err := u.codes.MarkUsed(ctx, tx, code, tgID, u.now().UTC())
		if err != nil {
			return err
		}
		if !won {
			return domain.ErrCodeAlreadyUsed
		}

		// Credit the redeemer inside the same transaction, so the mark-used
		// and the balance change commit or roll back together.
		if err := u.accounts.Init(ctx, tx, tgID); err != nil {
			return err
		}
		acc, err := u.accounts.FindForUpdate(ctx, tx, tgID)
		if err != nil {
			return err
		}
		acc.ApplyDelta(rc.Amount)
		if err := u.accounts.Save(ctx, tx, acc); err != nil {
			return err
		}
		amount = rc.Amount
		return nil
	})
	if err != nil {
		metrics.IncCodeRedemption("failure")
		return 0, err
	}
	metrics.IncCodeRedemption("success")
	logging.With(ctx, u.log).Info().Int64("tg_id", tgID).Int64("amount", amount).Msg("redeem code consumed")
	return amount, nil
}

func (u *codeUC) List(ctx context.Context, limit int) ([]*model.RedeemCode, error) {
	defer logging.TraceDuration(u.log, "CodeUC.List")()
	return u.codes.ListRecent(ctx, repository.NoTX, limit)
}
