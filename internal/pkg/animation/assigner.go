// Package animation hands out the per-roll animation tokens used by the
// rendering layer while dice tumble.
package animation

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/dice-companion/internal/entities/monopoly"
	"github.com/KirkDiggler/dice-companion/internal/errors"
)

//go:generate mockgen -destination=mock/mock_assigner.go -package=animationmock github.com/KirkDiggler/dice-companion/internal/pkg/animation Assigner

// PoolSize is the number of distinct animation tokens
const PoolSize = 10

const tokenFormat = "animate-cube%d"

// Assigner draws distinct animation tokens for the dice in a roll
type Assigner interface {
	// Assign returns count distinct tokens from the pool
	Assign(count int) ([]monopoly.AnimationToken, error)
}

// Pool returns every token in pool order
func Pool() []monopoly.AnimationToken {
	pool := make([]monopoly.AnimationToken, PoolSize)
	for i := range pool {
		pool[i] = monopoly.AnimationToken(fmt.Sprintf(tokenFormat, i+1))
	}
	return pool
}

type shuffleAssigner struct {
	roller dice.Roller
}

// NewAssigner returns an Assigner that shuffles the pool with roller
func NewAssigner(roller dice.Roller) (Assigner, error) {
	if roller == nil {
		return nil, errors.InvalidArgument("roller is required")
	}
	return &shuffleAssigner{roller: roller}, nil
}

// Assign shuffles the whole pool and keeps the first count tokens
func (a *shuffleAssigner) Assign(count int) ([]monopoly.AnimationToken, error) {
	if count < 0 || count > PoolSize {
		return nil, errors.InvalidArgumentf("token count %d out of range 0-%d", count, PoolSize)
	}

	pool := Pool()
	for i := len(pool) - 1; i > 0; i-- {
		// Roll is 1-based
		j, err := a.roller.Roll(i + 1)
		if err != nil {
			return nil, errors.Wrap(err, "failed to shuffle animation pool")
		}
		j--
		if j < 0 || j > i {
			return nil, errors.Internalf("roller returned %d for a %d-sided die", j+1, i+1)
		}
		pool[i], pool[j] = pool[j], pool[i]
	}

	return pool[:count], nil
}
