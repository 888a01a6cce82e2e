package rules

import (
	"strconv"

	"github.com/KirkDiggler/dice-companion/internal/entities/monopoly"
)

// Tally accumulates the rolled faces of one roll in die set order
type Tally struct {
	Total      int
	Outcomes   []monopoly.Outcome
	ValueFaces []int
}

// Add records a die face. Value dice add to the total, symbol dice resolve
// to an outcome.
func (t *Tally) Add(die monopoly.DieID, face int) error {
	if die.IsValueDie() {
		if err := validateFace(face); err != nil {
			return err
		}
		t.Total += face
		t.ValueFaces = append(t.ValueFaces, face)
		return nil
	}

	outcome, err := ResolveOutcome(die, face)
	if err != nil {
		return err
	}
	t.Outcomes = append(t.Outcomes, outcome)
	return nil
}

// Doubles reports whether both value dice landed on the same face
func (t *Tally) Doubles() bool {
	return IsDoubles(t.ValueFaces)
}

// IsDoubles reports whether exactly two value faces match
func IsDoubles(valueFaces []int) bool {
	return len(valueFaces) == 2 && valueFaces[0] == valueFaces[1]
}

// AggregateLines turns a roll result into the lines shown to players:
// the total, each symbol outcome in die set order, then ROLL AGAIN on doubles.
func AggregateLines(result *monopoly.RollResult) []string {
	if result == nil {
		return []string{}
	}

	lines := make([]string, 0, len(result.OutcomeLines)+2)
	lines = append(lines, monopoly.TotalValuePrefix+strconv.Itoa(result.Total))
	for _, outcome := range result.OutcomeLines {
		lines = append(lines, outcome.String())
	}
	if result.DoublesTriggered {
		lines = append(lines, monopoly.RollAgainLine)
	}
	return lines
}
