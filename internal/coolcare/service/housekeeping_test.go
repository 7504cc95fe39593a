package service

import (
	"context"
	"testing"
	"time"

	"github.com/coolcare/coolcare/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingCleanup(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	v := env.auth.Verification

	issued, err := v.IssueCode(ctx, "+79991234567")
	require.NoError(t, err)
	_, err = v.IssueCode(ctx, "+79990000000")
	require.NoError(t, err)

	h := NewHousekeepingService(v, slogx.Discard(), 0)
	require.Equal(t, time.Hour, h.Interval)
	require.Zero(t, h.Cleanup(ctx))

	env.clock.Advance(DefaultCodeTTL + time.Second)
	require.EqualValues(t, 2, h.Cleanup(ctx))

	env.clock.Set(t0)
	ok, err := v.VerifyCode(ctx, issued.Phone, issued.Code)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHousekeepingStartStop(t *testing.T) {
	env := newTestEnv(t)
	h := NewHousekeepingService(env.auth.Verification, slogx.Discard(), time.Hour)
	h.Start()
	h.Stop()
}
