package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"telegram-lookup-bot/internal/domain"
	"telegram-lookup-bot/internal/domain/model"
	"telegram-lookup-bot/internal/domain/ports/repository"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// mockTxManager serializes all "transactions" behind one mutex, which gives
// unit tests the same exactly-one-winner behavior the real database provides.
type mockTxManager struct {
	mu sync.Mutex
}

func newMockTxManager() *mockTxManager { return &mockTxManager{} }

func (m *mockTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx, repository.NoTX)
}

// memAccountRepo is a small in-memory implementation used by unit tests.
type memAccountRepo struct {
	mu      sync.RWMutex
	store   map[int64]*model.UserAccount
	saveErr error // used by tests to simulate save failures
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{store: make(map[int64]*model.UserAccount)}
}

func (m *memAccountRepo) Init(ctx context.Context, tx repository.Tx, tgID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[tgID]; !ok {
		m.store[tgID] = model.NewUserAccount(tgID)
	}
	return nil
}

func (m *memAccountRepo) Find(ctx context.Context, tx repository.Tx, tgID int64) (*model.UserAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	acc, ok := m.store[tgID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *acc
	return &cp, nil
}

func (m *memAccountRepo) FindForUpdate(ctx context.Context, tx repository.Tx, tgID int64) (*model.UserAccount, error) {
	return m.Find(ctx, tx, tgID)
}

func (m *memAccountRepo) Save(ctx context.Context, tx repository.Tx, acc *model.UserAccount) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *acc
	m.store[acc.TelegramID] = &cp
	return nil
}

func (m *memAccountRepo) CountAccounts(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

// memCodeRepo provides in-memory redeem codes for tests.
type memCodeRepo struct {
	mu    sync.RWMutex
	store map[string]*model.RedeemCode
}

func newMemCodeRepo() *memCodeRepo {
	return &memCodeRepo{store: make(map[string]*model.RedeemCode)}
}

func (m *memCodeRepo) Save(ctx context.Context, tx repository.Tx, code *model.RedeemCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[code.Code]; ok {
		return domain.ErrInvalidArgument
	}
	cp := *code
	m.store[code.Code] = &cp
	return nil
}

func (m *memCodeRepo) FindByCode(ctx context.Context, tx repository.Tx, code string) (*model.RedeemCode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rc, ok := m.store[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rc
	return &cp, nil
}

func (m *memCodeRepo) MarkUsed(ctx context.Context, tx repository.Tx, code string, userID int64, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rc, ok := m.store[code]
	if !ok || rc.Used() {
		return false, nil
	}
	rc.UsedBy = &userID
	rc.UsedAt = &at
	return true, nil
}

func (m *memCodeRepo) ListRecent(ctx context.Context, tx repository.Tx, limit int) ([]*model.RedeemCode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.RedeemCode, 0, len(m.store))
	for _, rc := range m.store {
		cp := *rc
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memCodeRepo) len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}

// mockLookupAdapter records calls and delegates to a configurable func.
type mockLookupAdapter struct {
	mu         sync.Mutex
	calls      int
	LookupFunc func(ctx context.Context, number string) ([]model.LookupRecord, error)
}

func (m *mockLookupAdapter) Lookup(ctx context.Context, number string) ([]model.LookupRecord, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.LookupFunc != nil {
		return m.LookupFunc(ctx, number)
	}
	return []model.LookupRecord{{Mobile: number, Name: "test"}}, nil
}

func (m *mockLookupAdapter) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
