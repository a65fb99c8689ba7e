package lookup

import (
	"context"

	"telegram-lookup-bot/internal/domain/model"
	"telegram-lookup-bot/internal/domain/ports/adapter"
	"telegram-lookup-bot/internal/infra/metrics"
	red "telegram-lookup-bot/internal/infra/redis"

	"github.com/rs/zerolog"
)

var _ adapter.LookupAdapter = (*CachedLookupAdapter)(nil)

// CachedLookupAdapter is a read-through cache decorator over another lookup
// adapter. It sits below the credit gate, so a cache hit still costs a credit;
// caching only spares the upstream provider, not the caller's balance.
type CachedLookupAdapter struct {
	inner adapter.LookupAdapter
	cache *red.LookupCache
	log   *zerolog.Logger
}

func NewCachedLookupAdapter(inner adapter.LookupAdapter, cache *red.LookupCache, logger *zerolog.Logger) *CachedLookupAdapter {
	return &CachedLookupAdapter{inner: inner, cache: cache, log: logger}
}

func (a *CachedLookupAdapter) Lookup(ctx context.Context, number string) ([]model.LookupRecord, error) {
	records, hit, err := a.cache.Get(ctx, number)
	if err != nil {
		// A broken cache must not break lookups.
		a.log.Warn().Err(err).Msg("lookup cache read failed")
	} else if hit {
		metrics.IncLookupCacheHit()
		return records, nil
	}

	records, err = a.inner.Lookup(ctx, number)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		if err := a.cache.Store(ctx, number, records); err != nil {
			a.log.Warn().Err(err).Msg("lookup cache write failed")
		}
	}
	return records, nil
}
