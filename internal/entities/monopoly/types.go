// Package monopoly holds the entities shared by the dice companion: phases,
// dice, outcomes and the published roll result.
package monopoly

import "time"

// GamePhase selects which symbol dice are on the table
type GamePhase string

// String returns the wire name of the phase
func (p GamePhase) String() string {
	return string(p)
}

// DisplayName returns the tab label shown to players
func (p GamePhase) DisplayName() string {
	switch p {
	case PhaseStartGame:
		return "Start Game"
	case PhaseMidGame:
		return "Mid Game"
	case PhaseEndGame:
		return "End Game"
	default:
		return string(p)
	}
}

// IsValid reports whether the phase is one of the known phases
func (p GamePhase) IsValid() bool {
	switch p {
	case PhaseStartGame, PhaseMidGame, PhaseEndGame:
		return true
	default:
		return false
	}
}

// DieID identifies one of the eight physical dice
type DieID int

// IsValueDie reports whether the die contributes to the total
func (d DieID) IsValueDie() bool {
	return d == DieSeven || d == DieEight
}

// IsSymbolDie reports whether the die resolves to an outcome label
func (d DieID) IsSymbolDie() bool {
	return d >= DieOne && d <= DieSix
}

// IsValid reports whether the die exists
func (d DieID) IsValid() bool {
	return d >= MinDie && d <= MaxDie
}

// DieSet is the ordered list of dice rolled for a phase
type DieSet []DieID

// Contains reports whether the set includes the die
func (s DieSet) Contains(die DieID) bool {
	for _, d := range s {
		if d == die {
			return true
		}
	}
	return false
}

// Outcome is the label a symbol die resolves to
type Outcome string

// String returns the label
func (o Outcome) String() string {
	return string(o)
}

// AnimationToken is the per-roll animation class assigned to a rolling die
type AnimationToken string

// RollStatus is where a table's roll session is in its lifecycle
type RollStatus string

// Roll statuses
const (
	StatusIdle      RollStatus = "idle"
	StatusRolling   RollStatus = "rolling"
	StatusRevealing RollStatus = "revealing"
)

// DieRoll is what a single die did during a roll
type DieRoll struct {
	Die   DieID          `json:"die"`
	Face  int            `json:"face"`
	Token AnimationToken `json:"token"`

	// ImageIndex selects one of the 48 die face images
	ImageIndex int `json:"image_index"`

	// Outcome is empty for value dice
	Outcome Outcome `json:"outcome,omitempty"`
}

// RollResult is the outcome of one completed roll
type RollResult struct {
	RollID           string    `json:"roll_id"`
	Phase            GamePhase `json:"phase"`
	Total            int       `json:"total"`
	OutcomeLines     []Outcome `json:"outcome_lines"`
	DoublesTriggered bool      `json:"doubles_triggered"`
	Dice             []DieRoll `json:"dice"`
	RolledAt         time.Time `json:"rolled_at"`
}

// Clone returns a deep copy, nil for a nil result
func (r *RollResult) Clone() *RollResult {
	if r == nil {
		return nil
	}
	out := *r
	out.OutcomeLines = append([]Outcome(nil), r.OutcomeLines...)
	out.Dice = append([]DieRoll(nil), r.Dice...)
	return &out
}

// Settled is the die as shown once it stops tumbling: its token is retired
// and its outcome waits for the published result
func (d DieRoll) Settled() DieRoll {
	return DieRoll{
		Die:        d.Die,
		Face:       d.Face,
		ImageIndex: d.ImageIndex,
	}
}

// RollSessionState is a point-in-time view of a table's roll session
type RollSessionState struct {
	Phase  GamePhase
	Status RollStatus

	// Result is the last published roll, nil before the first roll completes
	Result *RollResult
}
