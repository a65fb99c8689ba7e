//go:build integration

package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v4"

	"telegram-lookup-bot/internal/domain"
	"telegram-lookup-bot/internal/domain/model"
	"telegram-lookup-bot/internal/domain/ports/repository"
)

func TestAccountRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}

	ctx := context.Background()
	repo := NewPostgresAccountRepo(testPool)
	tm := NewTxManager(testPool)

	t.Run("should init an account idempotently", func(t *testing.T) {
		cleanup(t)

		if err := repo.Init(ctx, repository.NoTX, 111); err != nil {
			t.Fatalf("Init failed: %v", err)
		}

		acc, err := repo.Find(ctx, repository.NoTX, 111)
		if err != nil {
			t.Fatalf("Find failed: %v", err)
		}
		if acc.Credits != 0 || acc.LastTopUp != nil {
			t.Errorf("fresh account = %+v, want zero credits and nil last top-up", acc)
		}

		// A second init must not reset an existing balance.
		acc.ApplyDelta(50)
		if err := repo.Save(ctx, repository.NoTX, acc); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if err := repo.Init(ctx, repository.NoTX, 111); err != nil {
			t.Fatalf("second Init failed: %v", err)
		}
		acc, _ = repo.Find(ctx, repository.NoTX, 111)
		if acc.Credits != 50 {
			t.Errorf("credits after re-init = %d, want 50", acc.Credits)
		}
	})

	t.Run("should return ErrNotFound for a missing account", func(t *testing.T) {
		cleanup(t)
		if _, err := repo.Find(ctx, repository.NoTX, 999); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("Find missing = %v, want ErrNotFound", err)
		}
	})

	t.Run("should persist the top-up date round trip", func(t *testing.T) {
		cleanup(t)
		if err := repo.Init(ctx, repository.NoTX, 111); err != nil {
			t.Fatalf("Init failed: %v", err)
		}

		day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
		acc := &model.UserAccount{TelegramID: 111, Credits: 30, LastTopUp: &day}
		if err := repo.Save(ctx, repository.NoTX, acc); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		got, err := repo.Find(ctx, repository.NoTX, 111)
		if err != nil {
			t.Fatalf("Find failed: %v", err)
		}
		if got.LastTopUp == nil || got.TopUpDue(day.Add(2*time.Hour)) {
			t.Errorf("top-up date did not survive the round trip: %+v", got)
		}
		if !got.TopUpDue(day.AddDate(0, 0, 1)) {
			t.Error("next day must be due again")
		}
	})

	t.Run("should reject FindForUpdate outside a transaction", func(t *testing.T) {
		cleanup(t)
		if _, err := repo.FindForUpdate(ctx, repository.NoTX, 111); !errors.Is(err, domain.ErrInvalidExecContext) {
			t.Fatalf("FindForUpdate without tx = %v, want ErrInvalidExecContext", err)
		}
	})

	t.Run("should serialize concurrent adjustments with row locks", func(t *testing.T) {
		cleanup(t)
		if err := repo.Init(ctx, repository.NoTX, 111); err != nil {
			t.Fatalf("Init failed: %v", err)
		}

		const workers = 10
		var wg sync.WaitGroup
		errs := make(chan error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
					acc, err := repo.FindForUpdate(ctx, tx, 111)
					if err != nil {
						return err
					}
					acc.ApplyDelta(1)
					return repo.Save(ctx, tx, acc)
				})
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			if err != nil {
				t.Fatalf("concurrent adjust failed: %v", err)
			}
		}

		acc, _ := repo.Find(ctx, repository.NoTX, 111)
		if acc.Credits != workers {
			t.Errorf("credits = %d, want %d (no lost updates)", acc.Credits, workers)
		}
	})

	t.Run("should roll back the whole transaction on error", func(t *testing.T) {
		cleanup(t)
		if err := repo.Init(ctx, repository.NoTX, 111); err != nil {
			t.Fatalf("Init failed: %v", err)
		}

		boom := errors.New("boom")
		err := tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
			acc, err := repo.FindForUpdate(ctx, tx, 111)
			if err != nil {
				return err
			}
			acc.ApplyDelta(100)
			if err := repo.Save(ctx, tx, acc); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("WithTx = %v, want the callback error", err)
		}

		acc, _ := repo.Find(ctx, repository.NoTX, 111)
		if acc.Credits != 0 {
			t.Errorf("credits after rollback = %d, want 0", acc.Credits)
		}
	})

	t.Run("should count accounts", func(t *testing.T) {
		cleanup(t)
		for _, id := range []int64{1, 2, 3} {
			if err := repo.Init(ctx, repository.NoTX, id); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
		}
		n, err := repo.CountAccounts(ctx, repository.NoTX)
		if err != nil {
			t.Fatalf("CountAccounts failed: %v", err)
		}
		if n != 3 {
			t.Errorf("count = %d, want 3", n)
		}
	})
}
