package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dice-companion/internal/entities/monopoly"
	"github.com/KirkDiggler/dice-companion/internal/testutils/builders"
)

func TestCheckEntry(t *testing.T) {
	valid := *builders.NewRollResultBuilder().WithPhase(monopoly.PhaseMidGame).Build()
	encode := func(r monopoly.RollResult) string {
		raw, err := json.Marshal(r)
		require.NoError(t, err)
		return string(raw)
	}

	assert.Empty(t, checkEntry(encode(valid)))
	assert.Equal(t, "corrupted JSON", checkEntry("{"))

	missingID := valid
	missingID.RollID = ""
	assert.Equal(t, "missing roll ID", checkEntry(encode(missingID)))

	badPhase := valid
	badPhase.Phase = "overtime"
	assert.Equal(t, `unknown phase "overtime"`, checkEntry(encode(badPhase)))

	short := valid
	short.Dice = short.Dice[:2]
	assert.Equal(t, "2 dice recorded", checkEntry(encode(short)))
}
