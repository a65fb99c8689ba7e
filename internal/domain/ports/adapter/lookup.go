package adapter

import (
	"context"

	"telegram-lookup-bot/internal/domain/model"
)

// LookupAdapter is the port for the external phone-lookup provider.
// An empty slice with a nil error means the provider answered but found
// nothing; callers treat that differently from a transport failure.
type LookupAdapter interface {
	Lookup(ctx context.Context, number string) ([]model.LookupRecord, error)
}
