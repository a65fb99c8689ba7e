package lookup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"telegram-lookup-bot/internal/domain/model"
	"telegram-lookup-bot/internal/domain/ports/adapter"
	"telegram-lookup-bot/internal/infra/logging"
	"telegram-lookup-bot/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Ensure implementation satisfies the interface.
var _ adapter.LookupAdapter = (*HTTPLookupAdapter)(nil)

// HTTPLookupAdapter calls the phone-lookup provider over HTTP. The provider
// URL is a template with a {num} placeholder for the queried number.
type HTTPLookupAdapter struct {
	template string
	client   *http.Client
	log      *zerolog.Logger
	dev      bool
}

func NewHTTPLookupAdapter(template string, timeout time.Duration, logger *zerolog.Logger, dev bool) (*HTTPLookupAdapter, error) {
	if !strings.Contains(template, "{num}") {
		return nil, errors.New("lookup api template must contain {num}")
	}
	return &HTTPLookupAdapter{
		template: template,
		client:   &http.Client{Timeout: timeout},
		log:      logger,
		dev:      dev,
	}, nil
}

func (a *HTTPLookupAdapter) Lookup(ctx context.Context, number string) ([]model.LookupRecord, error) {
	url := strings.ReplaceAll(a.template, "{num}", number)

	start := time.Now()
	records, err := a.fetch(ctx, url)
	elapsed := time.Since(start)

	switch {
	case err != nil:
		metrics.ObserveLookup("error", elapsed)
		a.log.Warn().Err(err).Str("number", logging.Redact(number, a.dev)).Msg("lookup failed")
		return nil, err
	case len(records) == 0:
		metrics.ObserveLookup("empty", elapsed)
	default:
		metrics.ObserveLookup("ok", elapsed)
	}
	return records, nil
}

func (a *HTTPLookupAdapter) fetch(ctx context.Context, url string) ([]model.LookupRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lookup request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lookup api returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read lookup response: %w", err)
	}
	return normalizeResponse(body)
}
