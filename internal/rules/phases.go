package rules

import (
	"github.com/KirkDiggler/dice-companion/internal/entities/monopoly"
	"github.com/KirkDiggler/dice-companion/internal/errors"
)

var phaseDice = map[monopoly.GamePhase]monopoly.DieSet{
	monopoly.PhaseStartGame: {monopoly.DieOne, monopoly.DieTwo, monopoly.DieSeven, monopoly.DieEight},
	monopoly.PhaseMidGame:   {monopoly.DieThree, monopoly.DieFour, monopoly.DieSeven, monopoly.DieEight},
	monopoly.PhaseEndGame:   {monopoly.DieFive, monopoly.DieSix, monopoly.DieSeven, monopoly.DieEight},
}

// ActiveDice returns the dice rolled during a phase, symbol dice first.
// The returned slice is a copy and safe to modify.
func ActiveDice(phase monopoly.GamePhase) (monopoly.DieSet, error) {
	set, ok := phaseDice[phase]
	if !ok {
		return nil, InvalidPhase(phase)
	}

	out := make(monopoly.DieSet, len(set))
	copy(out, set)
	return out, nil
}

// ParsePhase accepts either the wire name or the tab label of a phase
func ParsePhase(raw string) (monopoly.GamePhase, error) {
	for _, phase := range monopoly.AllPhases {
		if raw == phase.String() || raw == phase.DisplayName() {
			return phase, nil
		}
	}
	return "", InvalidPhase(monopoly.GamePhase(raw))
}

// InvalidPhase is returned for any phase outside the known set
func InvalidPhase(phase monopoly.GamePhase) *errors.Error {
	return errors.InvalidArgumentf("invalid game phase: %q", phase.String()).
		WithMeta("phase", phase.String())
}
