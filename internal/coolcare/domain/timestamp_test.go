package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	msk := time.FixedZone("MSK", 3*3600)

	tests := []struct {
		in   string
		want time.Time
	}{
		{"2026-03-01T10:00:00Z", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"2026-03-01T10:00:00+03:00", time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)},
		{"2026-03-01T10:00", time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)},
		{"2026-03-01T10:00:30", time.Date(2026, 3, 1, 7, 0, 30, 0, time.UTC)},
		{"2026-03-01 10:00", time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseTimestamp(tc.in, msk)
			require.NoError(t, err)
			require.True(t, tc.want.Equal(got), "got %s", got)
			require.Equal(t, time.UTC, got.Location())
		})
	}

	_, err := ParseTimestamp("tomorrow", msk)
	require.Error(t, err)
}

func TestParseDateAndDayBounds(t *testing.T) {
	msk := time.FixedZone("MSK", 3*3600)

	d, err := ParseDate("2026-03-01", msk)
	require.NoError(t, err)

	start, end := DayBounds(d.Add(15*time.Hour), msk)
	require.True(t, start.Equal(time.Date(2026, 2, 28, 21, 0, 0, 0, time.UTC)))
	require.Equal(t, 24*time.Hour, end.Sub(start))

	_, err = ParseDate("01.03.2026", msk)
	require.Error(t, err)
}
