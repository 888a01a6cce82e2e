// Package rollhistory provides repository interface and types for the
// recent roll history of a table
package rollhistory

import (
	"context"
	"time"

	"github.com/KirkDiggler/dice-companion/internal/entities/monopoly"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=rollhistorymock github.com/KirkDiggler/dice-companion/internal/repositories/roll_history Repository

// AppendInput contains parameters for recording a published roll
type AppendInput struct {
	TableID string
	Result  *monopoly.RollResult
}

// AppendOutput contains the result of recording a roll
type AppendOutput struct {
	// Stored is the number of rolls now kept for the table
	Stored int32
}

// ListInput contains parameters for listing recent rolls
type ListInput struct {
	TableID string

	// Limit caps the number of rolls returned; zero means the repository limit
	Limit int
}

// ListOutput contains recent rolls, newest first
type ListOutput struct {
	Results []*monopoly.RollResult
}

// DeleteInput contains parameters for clearing a table's history
type DeleteInput struct {
	TableID string
}

// DeleteOutput contains the result of clearing history
type DeleteOutput struct {
	RollsDeleted int32
}

// Repository defines the interface for roll history storage operations
type Repository interface {
	// Append records a published roll and refreshes the history TTL
	Append(ctx context.Context, input AppendInput) (*AppendOutput, error)

	// List returns recent rolls for a table, newest first
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Delete removes a table's history
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// Defaults applied when Config leaves them unset
const (
	DefaultTTL   = 15 * time.Minute
	DefaultLimit = 20
)
