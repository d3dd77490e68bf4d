package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSessionCodeUsesUnambiguousAlphabet(t *testing.T) {
	require.NotContains(t, SessionCodeAlphabet, "0")
	require.NotContains(t, SessionCodeAlphabet, "O")
	require.NotContains(t, SessionCodeAlphabet, "1")
	require.NotContains(t, SessionCodeAlphabet, "I")

	for i := 0; i < 50; i++ {
		code := NewSessionCode()
		require.Len(t, string(code), SessionCodeLength)
		require.True(t, code.Valid())
		for _, r := range code {
			require.True(t, strings.ContainsRune(SessionCodeAlphabet, r))
		}
	}
}

func TestParseSessionCodeNormalizesInput(t *testing.T) {
	code, err := ParseSessionCode("  abqr34 ")
	require.NoError(t, err)
	require.Equal(t, SessionCode("ABQR34"), code)
}

func TestParseSessionCodeRejectsBadInput(t *testing.T) {
	for _, raw := range []string{"", "ABC", "ABQR345X", "ABQR30", "ABQRO4", "ABQR!4"} {
		_, err := ParseSessionCode(raw)
		require.ErrorIs(t, err, ErrInvalidSessionCode, "raw=%q", raw)
	}
}
