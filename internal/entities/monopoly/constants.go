package monopoly

// Game phases
const (
	PhaseStartGame GamePhase = "start_game"
	PhaseMidGame   GamePhase = "mid_game"
	PhaseEndGame   GamePhase = "end_game"
)

// Die identities. Dice 1-6 carry symbols, 7 and 8 carry numbers.
const (
	DieOne   DieID = 1
	DieTwo   DieID = 2
	DieThree DieID = 3
	DieFour  DieID = 4
	DieFive  DieID = 5
	DieSix   DieID = 6
	DieSeven DieID = 7
	DieEight DieID = 8
)

// Die and face bounds
const (
	MinDie   = 1
	MaxDie   = 8
	MinFace  = 1
	MaxFace  = 6
	DieSides = 6

	// ActiveDiceCount is the number of dice rolled in every phase
	ActiveDiceCount = 4
)

// Outcome labels
const (
	OutcomeMrMonopoly     Outcome = "Mr. Monopoly"
	OutcomeTravelVoucher  Outcome = "Travel Voucher"
	OutcomeStockMarket    Outcome = "Stock Market"
	OutcomeShenanigans    Outcome = "Shenanigans"
	OutcomeChance         Outcome = "Chance"
	OutcomeCommunityChest Outcome = "Community Chest"
	OutcomeTax            Outcome = "Tax"
)

// Result line fragments
const (
	TotalValuePrefix = "Total Value: "
	RollAgainLine    = "ROLL AGAIN"
)

// AllPhases lists the phases in tab order
var AllPhases = []GamePhase{PhaseStartGame, PhaseMidGame, PhaseEndGame}
