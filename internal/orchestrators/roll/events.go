package roll

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/dice-companion/internal/entities/monopoly"
)

// Event types published on the event bus during a roll
const (
	// EventDieRolling fires once per die when a roll starts
	EventDieRolling = "dice.die.rolling"

	// EventDieSettled fires once per die when its face becomes visible
	EventDieSettled = "dice.die.settled"

	// EventRollPublished fires when the roll result becomes observable
	EventRollPublished = "dice.roll.published"
)

// Event context keys
const (
	ContextKeyTableID = "table_id"
	ContextKeyRollID  = "roll_id"
	ContextKeyDieRoll = "die_roll"
	ContextKeyResult  = "result"
	ContextKeyLines   = "lines"
)

// EntityTypeTable is the entity type of a dice table
const EntityTypeTable = "dice_table"

// Table is the event source for everything a table's orchestrator publishes
type Table struct {
	ID string
}

// GetID returns the table ID
func (t *Table) GetID() string {
	return t.ID
}

// GetType returns the entity type
func (t *Table) GetType() string {
	return EntityTypeTable
}

var _ core.Entity = (*Table)(nil)

// DieRollFromEvent extracts the die carried by a rolling or settled event
func DieRollFromEvent(event events.Event) (monopoly.DieRoll, bool) {
	raw, ok := event.Context().Get(ContextKeyDieRoll)
	if !ok {
		return monopoly.DieRoll{}, false
	}
	die, ok := raw.(monopoly.DieRoll)
	return die, ok
}

// ResultFromEvent extracts the result carried by a published event
func ResultFromEvent(event events.Event) (*monopoly.RollResult, bool) {
	raw, ok := event.Context().Get(ContextKeyResult)
	if !ok {
		return nil, false
	}
	result, ok := raw.(*monopoly.RollResult)
	return result, ok
}

// LinesFromEvent extracts the display lines carried by a published event
func LinesFromEvent(event events.Event) ([]string, bool) {
	raw, ok := event.Context().Get(ContextKeyLines)
	if !ok {
		return nil, false
	}
	lines, ok := raw.([]string)
	return lines, ok
}

// TableIDFromEvent extracts the table that published a roll event
func TableIDFromEvent(event events.Event) string {
	raw, ok := event.Context().Get(ContextKeyTableID)
	if !ok {
		return ""
	}
	id, _ := raw.(string)
	return id
}

// RollIDFromEvent extracts the roll ID every roll event carries
func RollIDFromEvent(event events.Event) string {
	raw, ok := event.Context().Get(ContextKeyRollID)
	if !ok {
		return ""
	}
	id, _ := raw.(string)
	return id
}
