package roll

import (
	"github.com/KirkDiggler/dice-companion/internal/entities/monopoly"
)

// SelectPhaseInput defines the request for changing the table's phase
type SelectPhaseInput struct {
	Phase monopoly.GamePhase
}

// SelectPhaseOutput defines the response for changing the table's phase
type SelectPhaseOutput struct {
	Phase monopoly.GamePhase
	Dice  monopoly.DieSet

	// RollInFlight is true when a roll started under the previous phase is
	// still being revealed; that roll keeps its original dice
	RollInFlight bool
}

// StartRollInput defines the request for starting a roll
type StartRollInput struct{}

// RollingDie is a die as the renderer sees it while it tumbles
type RollingDie struct {
	Die   monopoly.DieID
	Token monopoly.AnimationToken
}

// StartRollOutput defines the response for starting a roll
type StartRollOutput struct {
	// Started is false when a roll was already in progress
	Started bool

	// Status is the session status after the call
	Status monopoly.RollStatus

	RollID string
	Phase  monopoly.GamePhase
	Dice   []RollingDie
}
