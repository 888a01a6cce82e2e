package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dice-companion/internal/entities/monopoly"
	"github.com/KirkDiggler/dice-companion/internal/rules"
)

func tallyFaces(t *testing.T, phase monopoly.GamePhase, faces map[monopoly.DieID]int) *monopoly.RollResult {
	t.Helper()

	set, err := rules.ActiveDice(phase)
	require.NoError(t, err)

	tally := &rules.Tally{}
	for _, die := range set {
		require.NoError(t, tally.Add(die, faces[die]))
	}

	return &monopoly.RollResult{
		Phase:            phase,
		Total:            tally.Total,
		OutcomeLines:     tally.Outcomes,
		DoublesTriggered: tally.Doubles(),
	}
}

func TestAggregateLines_Scenarios(t *testing.T) {
	testCases := []struct {
		name     string
		phase    monopoly.GamePhase
		faces    map[monopoly.DieID]int
		expected []string
	}{
		{
			name:     "start game doubles",
			phase:    monopoly.PhaseStartGame,
			faces:    map[monopoly.DieID]int{1: 5, 2: 2, 7: 3, 8: 3},
			expected: []string{"Total Value: 6", "Travel Voucher", "Mr. Monopoly", "ROLL AGAIN"},
		},
		{
			name:     "mid game no doubles",
			phase:    monopoly.PhaseMidGame,
			faces:    map[monopoly.DieID]int{3: 4, 4: 5, 7: 2, 8: 6},
			expected: []string{"Total Value: 8", "Shenanigans", "Chance"},
		},
		{
			name:     "end game doubles",
			phase:    monopoly.PhaseEndGame,
			faces:    map[monopoly.DieID]int{5: 2, 6: 1, 7: 4, 8: 4},
			expected: []string{"Total Value: 8", "Mr. Monopoly", "Shenanigans", "ROLL AGAIN"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := tallyFaces(t, tc.phase, tc.faces)
			assert.Equal(t, tc.expected, rules.AggregateLines(result))
		})
	}
}

func TestAggregateLines_DoublesOnlyWhenEqual(t *testing.T) {
	for a := monopoly.MinFace; a <= monopoly.MaxFace; a++ {
		for b := monopoly.MinFace; b <= monopoly.MaxFace; b++ {
			result := tallyFaces(t, monopoly.PhaseMidGame, map[monopoly.DieID]int{3: 1, 4: 1, 7: a, 8: b})
			lines := rules.AggregateLines(result)

			assert.Equal(t, a == b, result.DoublesTriggered)
			assert.Equal(t, a == b, lines[len(lines)-1] == monopoly.RollAgainLine)
		}
	}
}

func TestAggregateLines_NilResult(t *testing.T) {
	assert.Empty(t, rules.AggregateLines(nil))
}

func TestAggregateLines_ZeroTotal(t *testing.T) {
	lines := rules.AggregateLines(&monopoly.RollResult{})
	assert.Equal(t, []string{"Total Value: 0"}, lines)
}

func TestTally_RejectsBadFace(t *testing.T) {
	tally := &rules.Tally{}
	assert.Error(t, tally.Add(monopoly.DieSeven, 0))
	assert.Error(t, tally.Add(monopoly.DieOne, 9))
	assert.Zero(t, tally.Total)
}

func TestIsDoubles(t *testing.T) {
	assert.True(t, rules.IsDoubles([]int{4, 4}))
	assert.False(t, rules.IsDoubles([]int{4, 5}))
	assert.False(t, rules.IsDoubles([]int{4}))
	assert.False(t, rules.IsDoubles(nil))
}
