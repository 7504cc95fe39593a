package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coolcare/coolcare/internal/coolcare/domain"
	"github.com/coolcare/coolcare/internal/coolcare/store"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	s := New()

	require.NoError(t, s.ReplaceVerificationCode(ctx, domain.VerificationCode{
		Phone: "+79991234567", CodeHash: "a", CreatedAt: now, ExpiresAt: now.Add(time.Minute),
	}))
	require.NoError(t, s.ReplaceVerificationCode(ctx, domain.VerificationCode{
		Phone: "+79991234567", CodeHash: "b", CreatedAt: now, ExpiresAt: now.Add(time.Minute),
	}))
	require.Equal(t, 1, s.Len())

	_, err := s.ConsumeVerificationCode(ctx, "+79991234567", "a")
	require.ErrorIs(t, err, store.ErrNotFound)
	require.Equal(t, 1, s.Len(), "a wrong guess leaves the code in place")

	got, err := s.ConsumeVerificationCode(ctx, "+79991234567", "b")
	require.NoError(t, err)
	require.Equal(t, "b", got.CodeHash)
	require.Zero(t, s.Len())
}

func TestDeleteExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	s := New()

	require.NoError(t, s.ReplaceVerificationCode(ctx, domain.VerificationCode{Phone: "+1", CodeHash: "x", ExpiresAt: now}))
	require.NoError(t, s.ReplaceVerificationCode(ctx, domain.VerificationCode{Phone: "+2", CodeHash: "y", ExpiresAt: now.Add(time.Second)}))

	n, err := s.DeleteExpiredVerificationCodes(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
	require.Equal(t, 1, s.Len())
}

func TestConsumeConcurrent(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.ReplaceVerificationCode(ctx, domain.VerificationCode{
		Phone: "+79991234567", CodeHash: "h", ExpiresAt: time.Now().Add(time.Minute),
	}))

	var (
		wg      sync.WaitGroup
		winners atomic.Int32
	)
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.ConsumeVerificationCode(ctx, "+79991234567", "h"); err == nil {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()
	require.EqualValues(t, 1, winners.Load())
}
