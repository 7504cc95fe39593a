package phonex_test

import (
	"testing"

	"github.com/coolcare/coolcare/pkg/phonex"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"trunk prefix with punctuation", "8 (999) 123-45-67", "+79991234567"},
		{"spaced international", "+7 999 123 45 67", "+79991234567"},
		{"bare digits", "79991234567", "+79991234567"},
		{"dashed international", "+7-999-123-4567", "+79991234567"},
		{"eight with wrong length stays", "8999123456", "+8999123456"},
		{"inner plus dropped", "7+999+1234567", "+79991234567"},
		{"repeated leading plus", "++79991234567", "+79991234567"},
		{"surrounding whitespace", "  +44 20 7946 0018 ", "+442079460018"},
		{"no digits", "call me", ""},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, phonex.Normalize(tc.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"8 (999) 123-45-67", "+1 (555) 010-9999", "0044 20"} {
		once := phonex.Normalize(in)
		require.Equal(t, once, phonex.Normalize(once), in)
	}
}

func TestValid(t *testing.T) {
	t.Parallel()

	require.True(t, phonex.Valid("+79991234567"))
	require.False(t, phonex.Valid("79991234567"))
	require.False(t, phonex.Valid("+123"))
	require.False(t, phonex.Valid(""))
	require.False(t, phonex.Valid("+7999abc4567"))
}
