package approvaltoken

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signerAt(secret string, at time.Time) *Signer {
	s := NewSigner(secret)
	s.now = func() time.Time { return at }
	return s
}

func TestGenerateAndVerify(t *testing.T) {
	issued := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	t.Run("round trip", func(t *testing.T) {
		s := signerAt("secret", issued)

		token, err := s.Generate("app-1", "approve")
		require.NoError(t, err)
		assert.NoError(t, s.Verify("app-1", "approve", token))
	})

	t.Run("wrong application or action", func(t *testing.T) {
		s := signerAt("secret", issued)

		token, err := s.Generate("app-1", "approve")
		require.NoError(t, err)

		assert.ErrorIs(t, s.Verify("app-2", "approve", token), ErrInvalidToken)
		assert.ErrorIs(t, s.Verify("app-1", "reject", token), ErrInvalidToken)
	})

	t.Run("tampered signature", func(t *testing.T) {
		s := signerAt("secret", issued)

		token, err := s.Generate("app-1", "approve")
		require.NoError(t, err)

		flipped := token[:len(token)-1] + flipHex(token[len(token)-1])
		assert.ErrorIs(t, s.Verify("app-1", "approve", flipped), ErrInvalidToken)
	})

	t.Run("tampered timestamp invalidates signature", func(t *testing.T) {
		s := signerAt("secret", issued)

		token, err := s.Generate("app-1", "approve")
		require.NoError(t, err)

		_, mac, _ := strings.Cut(token, ".")
		assert.ErrorIs(t, s.Verify("app-1", "approve", "1."+mac), ErrInvalidToken)
	})

	t.Run("expires after seven days", func(t *testing.T) {
		s := signerAt("secret", issued)
		token, err := s.Generate("app-1", "approve")
		require.NoError(t, err)

		late := signerAt("secret", issued.Add(Validity+time.Second))
		assert.ErrorIs(t, late.Verify("app-1", "approve", token), ErrExpiredToken)

		edge := signerAt("secret", issued.Add(Validity))
		assert.NoError(t, edge.Verify("app-1", "approve", token))
	})

	t.Run("tokens from the future are rejected", func(t *testing.T) {
		s := signerAt("secret", issued)
		token, err := s.Generate("app-1", "approve")
		require.NoError(t, err)

		early := signerAt("secret", issued.Add(-time.Minute))
		assert.ErrorIs(t, early.Verify("app-1", "approve", token), ErrExpiredToken)
	})

	t.Run("missing secret", func(t *testing.T) {
		s := NewSigner("")

		_, err := s.Generate("app-1", "approve")
		assert.ErrorIs(t, err, ErrNoSecret)
		assert.ErrorIs(t, s.Verify("app-1", "approve", "1.deadbeef"), ErrNoSecret)
	})

	t.Run("malformed tokens", func(t *testing.T) {
		s := signerAt("secret", issued)

		assert.ErrorIs(t, s.Verify("app-1", "approve", "no-dot"), ErrInvalidToken)
		assert.ErrorIs(t, s.Verify("app-1", "approve", "notanumber.abcdef"), ErrInvalidToken)
	})
}

func flipHex(b byte) string {
	if b == '0' {
		return "1"
	}
	return "0"
}
