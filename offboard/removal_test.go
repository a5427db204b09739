package offboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSummarizeRemovals(t *testing.T) {
	t.Run("empty sweep applies cleanly", func(t *testing.T) {
		outcome, detail := summarizeRemovals(nil, false)
		require.Equal(t, OutcomeApplied, outcome)
		require.Equal(t, "0 removed", detail)
	})

	t.Run("empty dry-run sweep", func(t *testing.T) {
		outcome, detail := summarizeRemovals(nil, true)
		require.Equal(t, OutcomeApplied, outcome)
		require.Equal(t, "0 would remove", detail)
	})

	t.Run("successful removals are listed", func(t *testing.T) {
		removals := []Removal{
			{Collection: "directory group", Object: "Sales"},
			{Collection: "unified group", Object: "Phoenix", Detail: "owners"},
		}

		outcome, detail := summarizeRemovals(removals, false)
		require.Equal(t, OutcomeApplied, outcome)
		require.Equal(t, "2 removed: Sales, Phoenix owners", detail)
	})

	t.Run("any failure fails the sweep but keeps the successes", func(t *testing.T) {
		removals := []Removal{
			{Collection: "directory group", Object: "Sales"},
			{Collection: "distribution group", Object: "All Hands", Err: errors.New("backend timeout")},
		}

		outcome, detail := summarizeRemovals(removals, false)
		require.Equal(t, OutcomeFailed, outcome)
		require.Equal(t, "1 removed: Sales; 1 failed: All Hands: backend timeout", detail)
	})

	t.Run("all failed", func(t *testing.T) {
		removals := []Removal{
			{Collection: "distribution group", Object: "All Hands", Err: errors.New("backend timeout")},
		}

		outcome, detail := summarizeRemovals(removals, false)
		require.Equal(t, OutcomeFailed, outcome)
		require.Equal(t, "0 removed, 1 failed: All Hands: backend timeout", detail)
	})
}
