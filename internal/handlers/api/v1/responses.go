package v1

import (
	"time"

	"github.com/KirkDiggler/dice-companion/internal/entities/monopoly"
	"github.com/KirkDiggler/dice-companion/internal/orchestrators/roll"
	"github.com/KirkDiggler/dice-companion/internal/rules"
	"github.com/KirkDiggler/dice-companion/internal/services/table"
)

type selectPhaseRequest struct {
	Phase string `json:"phase"`
}

type dieResponse struct {
	Die        int    `json:"die"`
	Face       int    `json:"face,omitempty"`
	Token      string `json:"token,omitempty"`
	ImageIndex *int   `json:"image_index,omitempty"`
	ImagePath  string `json:"image_path,omitempty"`
	Outcome    string `json:"outcome,omitempty"`
}

type rollResponse struct {
	RollID           string        `json:"roll_id"`
	Phase            string        `json:"phase"`
	Total            int           `json:"total"`
	OutcomeLines     []string      `json:"outcome_lines"`
	DoublesTriggered bool          `json:"doubles_triggered"`
	Dice             []dieResponse `json:"dice"`
	RolledAt         time.Time     `json:"rolled_at"`
}

type tableResponse struct {
	TableID     string        `json:"table_id"`
	Phase       string        `json:"phase"`
	PhaseName   string        `json:"phase_name"`
	Status      string        `json:"status"`
	Rolling     bool          `json:"rolling"`
	ActiveDice  []int         `json:"active_dice"`
	ResultLines []string      `json:"result_lines"`
	LastRoll    *rollResponse `json:"last_roll,omitempty"`
}

type selectPhaseResponse struct {
	Phase        string `json:"phase"`
	PhaseName    string `json:"phase_name"`
	ActiveDice   []int  `json:"active_dice"`
	RollInFlight bool   `json:"roll_in_flight"`
}

type startRollResponse struct {
	Started bool          `json:"started"`
	Status  string        `json:"status"`
	RollID  string        `json:"roll_id,omitempty"`
	Phase   string        `json:"phase,omitempty"`
	Dice    []dieResponse `json:"dice,omitempty"`
}

type historyResponse struct {
	Rolls []*rollResponse `json:"rolls"`
}

type updateResponse struct {
	TableID string        `json:"table_id"`
	RollID  string        `json:"roll_id"`
	Die     *dieResponse  `json:"die,omitempty"`
	Lines   []string      `json:"lines,omitempty"`
	Result  *rollResponse `json:"result,omitempty"`
}

type errorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func convertDieSet(set monopoly.DieSet) []int {
	out := make([]int, len(set))
	for i, die := range set {
		out[i] = int(die)
	}
	return out
}

// convertDieRoll leaves the face and image empty while the die is still tumbling
func convertDieRoll(d monopoly.DieRoll) dieResponse {
	resp := dieResponse{
		Die:     int(d.Die),
		Face:    d.Face,
		Token:   string(d.Token),
		Outcome: string(d.Outcome),
	}
	if d.Face == 0 {
		return resp
	}

	idx := d.ImageIndex
	resp.ImageIndex = &idx
	if path, err := rules.ImagePath(d.Die, d.Face); err == nil {
		resp.ImagePath = path
	}
	return resp
}

func convertRollResult(result *monopoly.RollResult) *rollResponse {
	if result == nil {
		return nil
	}

	lines := make([]string, len(result.OutcomeLines))
	for i, outcome := range result.OutcomeLines {
		lines[i] = string(outcome)
	}
	dice := make([]dieResponse, len(result.Dice))
	for i, d := range result.Dice {
		dice[i] = convertDieRoll(d)
	}

	return &rollResponse{
		RollID:           result.RollID,
		Phase:            result.Phase.String(),
		Total:            result.Total,
		OutcomeLines:     lines,
		DoublesTriggered: result.DoublesTriggered,
		Dice:             dice,
		RolledAt:         result.RolledAt,
	}
}

func convertTable(tableID string, session roll.Service) *tableResponse {
	state := session.State()

	// the phase stored in a session is always valid
	set, _ := rules.ActiveDice(state.Phase)

	return &tableResponse{
		TableID:     tableID,
		Phase:       state.Phase.String(),
		PhaseName:   state.Phase.DisplayName(),
		Status:      string(state.Status),
		Rolling:     state.Status != monopoly.StatusIdle,
		ActiveDice:  convertDieSet(set),
		ResultLines: session.CurrentResultLines(),
		LastRoll:    convertRollResult(state.Result),
	}
}

func convertStartRoll(out *roll.StartRollOutput) *startRollResponse {
	resp := &startRollResponse{
		Started: out.Started,
		Status:  string(out.Status),
		RollID:  out.RollID,
		Phase:   out.Phase.String(),
	}
	for _, d := range out.Dice {
		resp.Dice = append(resp.Dice, dieResponse{
			Die:   int(d.Die),
			Token: string(d.Token),
		})
	}
	return resp
}

func convertUpdate(u table.Update) *updateResponse {
	resp := &updateResponse{
		TableID: u.TableID,
		RollID:  u.RollID,
		Lines:   u.Lines,
		Result:  convertRollResult(u.Result),
	}
	if u.Die != nil {
		d := convertDieRoll(*u.Die)
		resp.Die = &d
	}
	return resp
}
