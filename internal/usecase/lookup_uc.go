package usecase

import (
	"context"

	"telegram-lookup-bot/internal/domain"
	"telegram-lookup-bot/internal/domain/model"
	"telegram-lookup-bot/internal/domain/ports/adapter"
	"telegram-lookup-bot/internal/infra/logging"
	"telegram-lookup-bot/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ LookupUseCase = (*lookupUC)(nil)

// LookupResult is what a successful metered lookup returns to the front end.
type LookupResult struct {
	Records    []model.LookupRecord
	Remaining  int64 // balance after deduction; meaningless for privileged callers
	Privileged bool
}

// LookupUseCase gates the external phone lookup behind the credit ledger.
//
// The order matters: the balance is checked before the external call, but the
// cost is deducted only after the provider returned a usable result. A failed
// or empty lookup never consumes credits.
type LookupUseCase interface {
	Lookup(ctx context.Context, tgID int64, number string) (*LookupResult, error)
}

type lookupUC struct {
	ledger LedgerUseCase
	policy *AccessPolicy
	lookup adapter.LookupAdapter
	cost   int64
	log    *zerolog.Logger
}

func NewLookupUseCase(ledger LedgerUseCase, policy *AccessPolicy, lookup adapter.LookupAdapter, cost int64, logger *zerolog.Logger) *lookupUC {
	return &lookupUC{
		ledger: ledger,
		policy: policy,
		lookup: lookup,
		cost:   cost,
		log:    logger,
	}
}

func (u *lookupUC) Lookup(ctx context.Context, tgID int64, number string) (*LookupResult, error) {
	defer logging.TraceDuration(u.log, "LookupUC.Lookup")()

	balance, err := u.ledger.GrantDailyIfDue(ctx, tgID)
	if err != nil {
		return nil, err
	}

	privileged := u.policy.IsPrivileged(tgID)
	if !privileged && balance < u.cost {
		metrics.IncInsufficientCredits()
		return nil, &domain.InsufficientCreditsError{Balance: balance}
	}

	records, err := u.lookup.Lookup(ctx, number)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrNoResults
	}

	res := &LookupResult{Records: records, Privileged: privileged}
	if !privileged {
		remaining, err := u.ledger.Adjust(ctx, tgID, -u.cost)
		if err != nil {
			// The lookup already happened; surface the accounting failure
			// rather than pretending the operation succeeded cleanly.
			return nil, err
		}
		res.Remaining = remaining
	}
	return res, nil
}
