// Package builders provides test data builders for creating test fixtures
package builders

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/dice-companion/internal/entities/monopoly"
	"github.com/KirkDiggler/dice-companion/internal/pkg/animation"
	"github.com/KirkDiggler/dice-companion/internal/rules"
)

// RollResultBuilder provides a fluent interface for building test RollResult
// instances whose totals, outcomes and images agree with the faces rolled
type RollResultBuilder struct {
	rollID   string
	phase    monopoly.GamePhase
	faces    []int
	rolledAt time.Time
}

// NewRollResultBuilder creates a builder for a start game roll of all ones
func NewRollResultBuilder() *RollResultBuilder {
	return &RollResultBuilder{
		rollID:   "roll-test-001",
		phase:    monopoly.PhaseStartGame,
		faces:    []int{1, 1, 1, 1},
		rolledAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// WithRollID sets the roll ID
func (b *RollResultBuilder) WithRollID(id string) *RollResultBuilder {
	b.rollID = id
	return b
}

// WithPhase sets the phase, which decides the dice the faces land on
func (b *RollResultBuilder) WithPhase(phase monopoly.GamePhase) *RollResultBuilder {
	b.phase = phase
	return b
}

// WithFaces sets the faces in die set order
func (b *RollResultBuilder) WithFaces(faces ...int) *RollResultBuilder {
	b.faces = faces
	return b
}

// WithRolledAt sets the roll time
func (b *RollResultBuilder) WithRolledAt(at time.Time) *RollResultBuilder {
	b.rolledAt = at
	return b
}

// Build resolves the faces and returns the result. It panics on faces that
// no real roll could produce.
func (b *RollResultBuilder) Build() *monopoly.RollResult {
	set, err := rules.ActiveDice(b.phase)
	if err != nil {
		panic(fmt.Sprintf("builders: %v", err))
	}
	if len(b.faces) != len(set) {
		panic(fmt.Sprintf("builders: %d faces for %d dice", len(b.faces), len(set)))
	}

	pool := animation.Pool()
	tally := &rules.Tally{}
	dice := make([]monopoly.DieRoll, len(set))
	for i, die := range set {
		face := b.faces[i]
		if err := tally.Add(die, face); err != nil {
			panic(fmt.Sprintf("builders: %v", err))
		}
		idx, err := rules.ImageIndex(die, face)
		if err != nil {
			panic(fmt.Sprintf("builders: %v", err))
		}

		dice[i] = monopoly.DieRoll{
			Die:        die,
			Face:       face,
			Token:      pool[i],
			ImageIndex: idx,
		}
		if die.IsSymbolDie() {
			dice[i].Outcome = tally.Outcomes[len(tally.Outcomes)-1]
		}
	}

	return &monopoly.RollResult{
		RollID:           b.rollID,
		Phase:            b.phase,
		Total:            tally.Total,
		OutcomeLines:     tally.Outcomes,
		DoublesTriggered: tally.Doubles(),
		Dice:             dice,
		RolledAt:         b.rolledAt,
	}
}
