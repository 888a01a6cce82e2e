package rules

import (
	"fmt"

	"github.com/KirkDiggler/dice-companion/internal/entities/monopoly"
	"github.com/KirkDiggler/dice-companion/internal/errors"
)

const (
	// ImageCount is the number of distinct die face images
	ImageCount = monopoly.MaxDie * monopoly.DieSides

	imagePathFormat = "/images/Dice-%02d.png"
)

// ImageIndex returns the zero-based image for a die showing a face
func ImageIndex(die monopoly.DieID, face int) (int, error) {
	if !die.IsValid() {
		return 0, errors.InvalidArgumentf("die %d out of range %d-%d", die, monopoly.MinDie, monopoly.MaxDie).
			WithMeta("die", int(die))
	}
	if err := validateFace(face); err != nil {
		return 0, err
	}

	return (int(die)-1)*monopoly.DieSides + (face - 1), nil
}

// ImagePath returns the asset path for a die showing a face.
// Asset files are numbered from 01.
func ImagePath(die monopoly.DieID, face int) (string, error) {
	idx, err := ImageIndex(die, face)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(imagePathFormat, idx+1), nil
}
