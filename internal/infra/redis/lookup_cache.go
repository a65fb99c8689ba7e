package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"telegram-lookup-bot/internal/domain/model"
)

// LookupCache stores normalized lookup results keyed by the queried number.
// Entries expire after the configured TTL so stale provider data ages out.
type LookupCache struct {
	client *Client
	ttl    time.Duration
}

func NewLookupCache(client *Client, ttl time.Duration) *LookupCache {
	return &LookupCache{client: client, ttl: ttl}
}

func (c *LookupCache) Get(ctx context.Context, number string) ([]model.LookupRecord, bool, error) {
	data, err := c.client.Get(ctx, lookupKey(number))
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var records []model.LookupRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, false, err
	}
	return records, true, nil
}

func (c *LookupCache) Store(ctx context.Context, number string, records []model.LookupRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, lookupKey(number), data, c.ttl)
}

func lookupKey(number string) string { return "lookup:" + number }
