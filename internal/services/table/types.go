package table

import (
	"github.com/KirkDiggler/dice-companion/internal/entities/monopoly"
)

// Update is a roll event as delivered to a table's stream subscribers
type Update struct {
	Type    string               `json:"type"`
	TableID string               `json:"table_id"`
	RollID  string               `json:"roll_id"`
	Die     *monopoly.DieRoll    `json:"die,omitempty"`
	Lines   []string             `json:"lines,omitempty"`
	Result  *monopoly.RollResult `json:"result,omitempty"`
}

// SubscribeInput defines the request for following a table's roll events
type SubscribeInput struct {
	TableID string
}

// SubscribeOutput carries the update channel and its cancel function
type SubscribeOutput struct {
	Updates     <-chan Update
	Unsubscribe func()
}

// ListHistoryInput defines the request for a table's recent rolls
type ListHistoryInput struct {
	TableID string
	Limit   int
}

// ListHistoryOutput defines the response for a table's recent rolls
type ListHistoryOutput struct {
	Results []*monopoly.RollResult
}
