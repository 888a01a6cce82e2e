// Package roll implements the roll orchestrator: one table's roll session,
// from throwing the dice through the timed settle and reveal.
package roll

//go:generate mockgen -destination=mock/mock_service.go -package=rollmock github.com/KirkDiggler/dice-companion/internal/orchestrators/roll Service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/dice-companion/internal/clients/sound"
	"github.com/KirkDiggler/dice-companion/internal/entities/monopoly"
	"github.com/KirkDiggler/dice-companion/internal/errors"
	"github.com/KirkDiggler/dice-companion/internal/pkg/animation"
	"github.com/KirkDiggler/dice-companion/internal/pkg/clock"
	"github.com/KirkDiggler/dice-companion/internal/pkg/idgen"
	"github.com/KirkDiggler/dice-companion/internal/pkg/scheduler"
	rollhistory "github.com/KirkDiggler/dice-companion/internal/repositories/roll_history"
	"github.com/KirkDiggler/dice-companion/internal/rules"
)

const (
	// DefaultSettleDelay is how long dice tumble before their faces show
	DefaultSettleDelay = 1000 * time.Millisecond

	// DefaultRevealDelay is how long after the throw the result is published
	DefaultRevealDelay = 1500 * time.Millisecond

	// historyTimeout bounds the write of a published roll to history
	historyTimeout = 2 * time.Second
)

// Service defines the operations a rendering layer uses on a table
type Service interface {
	// SelectPhase changes which dice the next roll uses
	SelectPhase(ctx context.Context, input *SelectPhaseInput) (*SelectPhaseOutput, error)

	// StartRoll throws the dice; refused while a roll is in progress
	StartRoll(ctx context.Context, input *StartRollInput) (*StartRollOutput, error)

	// IsRolling reports whether a roll is being animated or revealed
	IsRolling() bool

	// CurrentResultLines returns the lines of the last published roll
	CurrentResultLines() []string

	// State returns a snapshot of the roll session
	State() monopoly.RollSessionState

	// Close cancels any pending transitions
	Close()
}

// Config holds the dependencies for the roll orchestrator
type Config struct {
	TableID     string
	Roller      dice.Roller
	Assigner    animation.Assigner
	Scheduler   scheduler.Scheduler
	Clock       clock.Clock
	IDGenerator idgen.Generator
	EventBus    events.EventBus

	// SoundPlayer defaults to sound.Noop
	SoundPlayer sound.Player
	RollSound   string

	// History is optional; published rolls are recorded when set
	History rollhistory.Repository

	// InitialPhase defaults to the start game phase
	InitialPhase monopoly.GamePhase

	// SettleDelay and RevealDelay are both measured from the throw
	SettleDelay time.Duration
	RevealDelay time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("TableID", c.TableID, vb)
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.Assigner == nil {
		vb.RequiredField("Assigner")
	}
	if c.Scheduler == nil {
		vb.RequiredField("Scheduler")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.InitialPhase != "" && !c.InitialPhase.IsValid() {
		vb.InvalidField("InitialPhase", c.InitialPhase.String())
	}

	settle, reveal := c.delays()
	errors.ValidatePositiveDuration("SettleDelay", settle, vb)
	if reveal <= settle {
		vb.InvalidField("RevealDelay", "must be longer than SettleDelay")
	}

	return vb.Build()
}

func (c *Config) delays() (settle, reveal time.Duration) {
	settle, reveal = c.SettleDelay, c.RevealDelay
	if settle == 0 {
		settle = DefaultSettleDelay
	}
	if reveal == 0 {
		reveal = DefaultRevealDelay
	}
	return settle, reveal
}

type orchestrator struct {
	table       *Table
	roller      dice.Roller
	assigner    animation.Assigner
	scheduler   scheduler.Scheduler
	clock       clock.Clock
	idGen       idgen.Generator
	eventBus    events.EventBus
	soundPlayer sound.Player
	rollSound   string
	history     rollhistory.Repository
	settleDelay time.Duration
	revealDelay time.Duration

	mu       sync.Mutex
	phase    monopoly.GamePhase
	status   monopoly.RollStatus
	inFlight *monopoly.RollResult
	result   *monopoly.RollResult
	lines    []string
	timers   []scheduler.Timer
}

// NewOrchestrator creates a new roll orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	settle, reveal := cfg.delays()
	phase := cfg.InitialPhase
	if phase == "" {
		phase = monopoly.PhaseStartGame
	}
	player := cfg.SoundPlayer
	if player == nil {
		player = sound.Noop{}
	}
	rollSound := cfg.RollSound
	if rollSound == "" {
		rollSound = sound.DefaultRollSound
	}

	return &orchestrator{
		table:       &Table{ID: cfg.TableID},
		roller:      cfg.Roller,
		assigner:    cfg.Assigner,
		scheduler:   cfg.Scheduler,
		clock:       cfg.Clock,
		idGen:       cfg.IDGenerator,
		eventBus:    cfg.EventBus,
		soundPlayer: player,
		rollSound:   rollSound,
		history:     cfg.History,
		settleDelay: settle,
		revealDelay: reveal,
		phase:       phase,
		status:      monopoly.StatusIdle,
		lines:       []string{},
	}, nil
}

// SelectPhase changes the phase for the next roll. A roll already in flight
// keeps the dice it was thrown with.
func (o *orchestrator) SelectPhase(_ context.Context, input *SelectPhaseInput) (*SelectPhaseOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	set, err := rules.ActiveDice(input.Phase)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	o.phase = input.Phase
	inFlight := o.status != monopoly.StatusIdle
	o.mu.Unlock()

	slog.Info("Game phase selected",
		"table_id", o.table.ID,
		"phase", input.Phase,
		"roll_in_flight", inFlight,
	)

	return &SelectPhaseOutput{
		Phase:        input.Phase,
		Dice:         set,
		RollInFlight: inFlight,
	}, nil
}

// StartRoll computes the whole roll up front, then schedules the settle and
// reveal transitions. The result stays hidden until the reveal fires.
func (o *orchestrator) StartRoll(ctx context.Context, _ *StartRollInput) (*StartRollOutput, error) {
	o.mu.Lock()
	if o.status != monopoly.StatusIdle {
		status := o.status
		o.mu.Unlock()

		slog.Debug("Roll rejected, roll already in progress",
			"table_id", o.table.ID,
			"status", status,
		)
		return &StartRollOutput{Started: false, Status: status}, nil
	}

	result, err := o.throwLocked()
	if err != nil {
		o.mu.Unlock()
		return nil, err
	}

	o.status = monopoly.StatusRolling
	o.inFlight = result
	rollID := result.RollID
	o.timers = []scheduler.Timer{
		o.scheduler.AfterFunc(o.settleDelay, func() { o.settle(rollID) }),
		o.scheduler.AfterFunc(o.revealDelay, func() { o.reveal(rollID) }),
	}
	o.mu.Unlock()

	o.playRollSound(ctx)

	rolling := make([]RollingDie, len(result.Dice))
	for i, d := range result.Dice {
		rolling[i] = RollingDie{Die: d.Die, Token: d.Token}
		o.publish(ctx, EventDieRolling, rollID, map[string]any{
			ContextKeyDieRoll: monopoly.DieRoll{Die: d.Die, Token: d.Token},
		})
	}

	slog.Info("Dice thrown",
		"table_id", o.table.ID,
		"roll_id", rollID,
		"phase", result.Phase,
	)

	return &StartRollOutput{
		Started: true,
		Status:  monopoly.StatusRolling,
		RollID:  rollID,
		Phase:   result.Phase,
		Dice:    rolling,
	}, nil
}

// throwLocked draws faces and tokens for the active dice and resolves them
func (o *orchestrator) throwLocked() (*monopoly.RollResult, error) {
	set, err := rules.ActiveDice(o.phase)
	if err != nil {
		return nil, err
	}

	tokens, err := o.assigner.Assign(len(set))
	if err != nil {
		return nil, errors.Wrap(err, "failed to assign animation tokens")
	}
	if len(tokens) != len(set) {
		return nil, errors.Internalf("assigner returned %d tokens for %d dice", len(tokens), len(set))
	}

	tally := &rules.Tally{}
	rolled := make([]monopoly.DieRoll, 0, len(set))
	for i, die := range set {
		face, err := o.roller.Roll(monopoly.DieSides)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to roll die %d", die)
		}
		if err := tally.Add(die, face); err != nil {
			return nil, errors.Wrapf(err, "failed to resolve die %d", die)
		}
		imageIndex, err := rules.ImageIndex(die, face)
		if err != nil {
			return nil, err
		}

		dieRoll := monopoly.DieRoll{
			Die:        die,
			Face:       face,
			Token:      tokens[i],
			ImageIndex: imageIndex,
		}
		if die.IsSymbolDie() {
			dieRoll.Outcome = tally.Outcomes[len(tally.Outcomes)-1]
		}
		rolled = append(rolled, dieRoll)
	}

	return &monopoly.RollResult{
		RollID:           o.idGen.Generate(),
		Phase:            o.phase,
		Total:            tally.Total,
		OutcomeLines:     tally.Outcomes,
		DoublesTriggered: tally.Doubles(),
		Dice:             rolled,
		RolledAt:         o.clock.Now(),
	}, nil
}

// settle moves the roll to revealing and shows each die's face
func (o *orchestrator) settle(rollID string) {
	o.mu.Lock()
	if o.status != monopoly.StatusRolling || o.inFlight == nil || o.inFlight.RollID != rollID {
		o.mu.Unlock()
		return
	}
	o.status = monopoly.StatusRevealing
	settled := append([]monopoly.DieRoll(nil), o.inFlight.Dice...)
	o.mu.Unlock()

	o.emitSettled(rollID, settled)
}

func (o *orchestrator) emitSettled(rollID string, settled []monopoly.DieRoll) {
	ctx := context.Background()
	for _, d := range settled {
		o.publish(ctx, EventDieSettled, rollID, map[string]any{
			ContextKeyDieRoll: d.Settled(),
		})
	}
}

// reveal publishes the result and frees the session for the next roll
func (o *orchestrator) reveal(rollID string) {
	o.mu.Lock()
	if o.inFlight == nil || o.inFlight.RollID != rollID {
		o.mu.Unlock()
		return
	}

	// the settle timer can lose the race on a loaded runtime
	var unsettled []monopoly.DieRoll
	if o.status == monopoly.StatusRolling {
		unsettled = append(unsettled, o.inFlight.Dice...)
	}

	result := o.inFlight
	lines := rules.AggregateLines(result)
	o.result = result
	o.lines = lines
	o.inFlight = nil
	o.timers = nil
	o.status = monopoly.StatusIdle
	o.mu.Unlock()

	if unsettled != nil {
		o.emitSettled(rollID, unsettled)
	}

	ctx := context.Background()
	o.publish(ctx, EventRollPublished, rollID, map[string]any{
		ContextKeyResult: result.Clone(),
		ContextKeyLines:  append([]string(nil), lines...),
	})
	o.recordHistory(ctx, result)

	slog.Info("Roll result published",
		"table_id", o.table.ID,
		"roll_id", rollID,
		"total", result.Total,
		"doubles", result.DoublesTriggered,
	)
}

func (o *orchestrator) recordHistory(ctx context.Context, result *monopoly.RollResult) {
	if o.history == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, historyTimeout)
	defer cancel()

	if _, err := o.history.Append(ctx, rollhistory.AppendInput{
		TableID: o.table.ID,
		Result:  result,
	}); err != nil {
		slog.Warn("Failed to record roll history",
			"table_id", o.table.ID,
			"roll_id", result.RollID,
			"error", err,
		)
	}
}

// playRollSound never blocks the roll; failures are logged and dropped
func (o *orchestrator) playRollSound(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Warn("Roll sound panicked", "table_id", o.table.ID, "panic", r)
			}
		}()

		if err := o.soundPlayer.Play(ctx, o.rollSound); err != nil {
			slog.Warn("Failed to play roll sound",
				"table_id", o.table.ID,
				"sound", o.rollSound,
				"error", err,
			)
		}
	}()
}

// publish sends an event to subscribers. Subscriber failures are logged and
// never change the session.
func (o *orchestrator) publish(ctx context.Context, eventType, rollID string, data map[string]any) {
	event := events.NewGameEvent(eventType, o.table, nil)
	event.Context().Set(ContextKeyTableID, o.table.ID)
	event.Context().Set(ContextKeyRollID, rollID)
	for k, v := range data {
		event.Context().Set(k, v)
	}

	if err := o.eventBus.Publish(ctx, event); err != nil {
		slog.Warn("Roll event subscriber failed",
			"table_id", o.table.ID,
			"roll_id", rollID,
			"event", eventType,
			"error", err,
		)
	}
}

// IsRolling reports whether a roll is in progress
func (o *orchestrator) IsRolling() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status != monopoly.StatusIdle
}

// CurrentResultLines returns a copy of the last published lines, empty
// before the first roll completes
func (o *orchestrator) CurrentResultLines() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string{}, o.lines...)
}

// State returns a snapshot of the session
func (o *orchestrator) State() monopoly.RollSessionState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return monopoly.RollSessionState{
		Phase:  o.phase,
		Status: o.status,
		Result: o.result.Clone(),
	}
}

// Close stops pending transitions and drops any roll in flight
func (o *orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, t := range o.timers {
		t.Stop()
	}
	if o.inFlight != nil {
		slog.Info("Roll abandoned",
			"table_id", o.table.ID,
			"roll_id", o.inFlight.RollID,
		)
	}
	o.timers = nil
	o.inFlight = nil
	o.status = monopoly.StatusIdle
}
