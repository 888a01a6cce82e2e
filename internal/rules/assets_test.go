package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dice-companion/internal/entities/monopoly"
	"github.com/KirkDiggler/dice-companion/internal/rules"
)

func TestImageIndex_CoversAllImagesOnce(t *testing.T) {
	seen := make(map[int]bool, rules.ImageCount)

	for die := monopoly.DieID(monopoly.MinDie); die <= monopoly.MaxDie; die++ {
		for face := monopoly.MinFace; face <= monopoly.MaxFace; face++ {
			idx, err := rules.ImageIndex(die, face)
			require.NoError(t, err)
			assert.Equal(t, (int(die)-1)*6+(face-1), idx)
			assert.False(t, seen[idx], "index %d reused", idx)
			seen[idx] = true
		}
	}

	assert.Len(t, seen, 48)
}

func TestImageIndex_OutOfRange(t *testing.T) {
	_, err := rules.ImageIndex(9, 1)
	assert.Error(t, err)

	_, err = rules.ImageIndex(1, 7)
	assert.Error(t, err)
}

func TestImagePath(t *testing.T) {
	path, err := rules.ImagePath(monopoly.DieOne, 1)
	require.NoError(t, err)
	assert.Equal(t, "/images/Dice-01.png", path)

	path, err = rules.ImagePath(monopoly.DieEight, 6)
	require.NoError(t, err)
	assert.Equal(t, "/images/Dice-48.png", path)
}
