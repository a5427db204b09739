package offboard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	require.Equal(t, "a@corp.com", NormalizeKey("A@CORP.COM"))
	require.Equal(t, "corp\\alice", NormalizeKey("CORP\\Alice"))
	require.Equal(t, "", NormalizeKey(""))
}

func TestMatcher(t *testing.T) {
	t.Run("case insensitive exact equality", func(t *testing.T) {
		matcher := NewMatcher("a@corp.com", "alice@corp.onmicrosoft.com")

		require.True(t, matcher.Matches("A@Corp.Com"))
		require.True(t, matcher.Matches("ALICE@CORP.ONMICROSOFT.COM"))
		require.False(t, matcher.Matches("b@corp.com"))
	})

	t.Run("never matches by substring or prefix", func(t *testing.T) {
		matcher := NewMatcher("a@corp.com")

		require.False(t, matcher.Matches("aa@corp.com"))
		require.False(t, matcher.Matches("a@corp.com.evil.com"))
		require.False(t, matcher.Matches("a"))
	})

	t.Run("empty principals never match anything", func(t *testing.T) {
		matcher := NewMatcher("", "a@corp.com", "")

		require.False(t, matcher.Matches(""))
		require.True(t, matcher.Matches("a@corp.com"))
	})

	t.Run("domain qualified trustee does not equal the smtp address", func(t *testing.T) {
		// The two shapes name the same principal but compare unequal;
		// sweeps only match trustees recorded in address form.
		matcher := NewMatcher("a@corp.com")

		require.False(t, matcher.Matches("CORP\\a"))
	})

	t.Run("MatchesAny", func(t *testing.T) {
		matcher := NewMatcher("a@corp.com")

		require.True(t, matcher.MatchesAny("b@corp.com", "a@corp.com"))
		require.False(t, matcher.MatchesAny("b@corp.com", "c@corp.com"))
		require.False(t, matcher.MatchesAny())
	})
}
