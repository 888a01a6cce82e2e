package rules

import (
	"github.com/KirkDiggler/dice-companion/internal/entities/monopoly"
	"github.com/KirkDiggler/dice-companion/internal/errors"
)

// die six cycles through the card decks twice
var dieSixFaces = [monopoly.DieSides]monopoly.Outcome{
	monopoly.OutcomeShenanigans,
	monopoly.OutcomeChance,
	monopoly.OutcomeCommunityChest,
	monopoly.OutcomeShenanigans,
	monopoly.OutcomeChance,
	monopoly.OutcomeCommunityChest,
}

// ResolveOutcome maps a symbol die face to its outcome label.
// Value dice have no label and are rejected.
func ResolveOutcome(die monopoly.DieID, face int) (monopoly.Outcome, error) {
	if !die.IsSymbolDie() {
		return "", errors.InvalidArgumentf("die %d has no outcome table", die).
			WithMeta("die", int(die))
	}
	if err := validateFace(face); err != nil {
		return "", err
	}

	switch die {
	case monopoly.DieOne:
		if face <= 4 {
			return monopoly.OutcomeMrMonopoly, nil
		}
		return monopoly.OutcomeTravelVoucher, nil
	case monopoly.DieTwo:
		if face <= 4 {
			return monopoly.OutcomeMrMonopoly, nil
		}
		return monopoly.OutcomeStockMarket, nil
	case monopoly.DieThree, monopoly.DieFour:
		switch {
		case face <= 3:
			return monopoly.OutcomeStockMarket, nil
		case face == 4:
			return monopoly.OutcomeShenanigans, nil
		case face == 5:
			return monopoly.OutcomeChance, nil
		default:
			return monopoly.OutcomeCommunityChest, nil
		}
	case monopoly.DieFive:
		if face <= 3 {
			return monopoly.OutcomeMrMonopoly, nil
		}
		return monopoly.OutcomeTax, nil
	default:
		return dieSixFaces[face-1], nil
	}
}

func validateFace(face int) error {
	if face < monopoly.MinFace || face > monopoly.MaxFace {
		return errors.InvalidArgumentf("face %d out of range %d-%d", face, monopoly.MinFace, monopoly.MaxFace).
			WithMeta("face", face)
	}
	return nil
}
