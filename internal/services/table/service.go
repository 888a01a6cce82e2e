// Package table keeps one roll session per dice table and bridges each
// table's roll events to its stream subscribers.
package table

//go:generate mockgen -destination=mock/mock_service.go -package=tablemock github.com/KirkDiggler/dice-companion/internal/services/table Service

import (
	"context"
	"log/slog"
	"regexp"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/dice-companion/internal/clients/sound"
	"github.com/KirkDiggler/dice-companion/internal/errors"
	"github.com/KirkDiggler/dice-companion/internal/orchestrators/roll"
	"github.com/KirkDiggler/dice-companion/internal/pkg/animation"
	"github.com/KirkDiggler/dice-companion/internal/pkg/broadcast"
	"github.com/KirkDiggler/dice-companion/internal/pkg/clock"
	"github.com/KirkDiggler/dice-companion/internal/pkg/idgen"
	"github.com/KirkDiggler/dice-companion/internal/pkg/scheduler"
	rollhistory "github.com/KirkDiggler/dice-companion/internal/repositories/roll_history"
)

// DefaultMaxTables caps how many tables one process hosts
const DefaultMaxTables = 256

var tableIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Service defines table lookup and streaming
type Service interface {
	// Table returns the roll session for a table, creating it on first use
	Table(ctx context.Context, tableID string) (roll.Service, error)

	// Subscribe follows the roll events of a table
	Subscribe(ctx context.Context, input *SubscribeInput) (*SubscribeOutput, error)

	// ListHistory returns a table's recent rolls, newest first
	ListHistory(ctx context.Context, input *ListHistoryInput) (*ListHistoryOutput, error)

	// Close stops every table and closes every stream
	Close()
}

// Config holds the dependencies shared by every table
type Config struct {
	Roller      dice.Roller
	Scheduler   scheduler.Scheduler
	Clock       clock.Clock
	IDGenerator idgen.Generator
	EventBus    events.EventBus

	SoundPlayer sound.Player
	RollSound   string
	History     rollhistory.Repository

	SettleDelay time.Duration
	RevealDelay time.Duration
	MaxTables   int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
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
	if c.MaxTables < 0 {
		vb.InvalidField("MaxTables", "cannot be negative")
	}

	return vb.Build()
}

type entry struct {
	session     roll.Service
	broadcaster *broadcast.Broadcaster[Update]
}

type service struct {
	cfg       Config
	assigner  animation.Assigner
	maxTables int

	mu            sync.Mutex
	tables        map[string]*entry
	subscriptions []string
	closed        bool
}

// NewService creates a table registry with the provided dependencies
func NewService(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	assigner, err := animation.NewAssigner(cfg.Roller)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create animation assigner")
	}

	maxTables := cfg.MaxTables
	if maxTables == 0 {
		maxTables = DefaultMaxTables
	}

	s := &service{
		cfg:       *cfg,
		assigner:  assigner,
		maxTables: maxTables,
		tables:    make(map[string]*entry),
	}

	for _, eventType := range []string{roll.EventDieRolling, roll.EventDieSettled, roll.EventRollPublished} {
		id := cfg.EventBus.SubscribeFunc(eventType, 0, s.forward)
		s.subscriptions = append(s.subscriptions, id)
	}

	return s, nil
}

// Table returns the roll session for a table, creating it on first use
func (s *service) Table(_ context.Context, tableID string) (roll.Service, error) {
	e, err := s.entry(tableID)
	if err != nil {
		return nil, err
	}
	return e.session, nil
}

func (s *service) entry(tableID string) (*entry, error) {
	if !tableIDRegex.MatchString(tableID) {
		return nil, errors.InvalidArgumentf("invalid table ID: %q", tableID).
			WithMeta("table_id", tableID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, errors.Unavailable("table service closed")
	}
	if e, ok := s.tables[tableID]; ok {
		return e, nil
	}
	if len(s.tables) >= s.maxTables {
		return nil, errors.ResourceExhausted("table limit reached").
			WithMeta("max_tables", s.maxTables)
	}

	session, err := roll.NewOrchestrator(&roll.Config{
		TableID:     tableID,
		Roller:      s.cfg.Roller,
		Assigner:    s.assigner,
		Scheduler:   s.cfg.Scheduler,
		Clock:       s.cfg.Clock,
		IDGenerator: s.cfg.IDGenerator,
		EventBus:    s.cfg.EventBus,
		SoundPlayer: s.cfg.SoundPlayer,
		RollSound:   s.cfg.RollSound,
		History:     s.cfg.History,
		SettleDelay: s.cfg.SettleDelay,
		RevealDelay: s.cfg.RevealDelay,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create table %s", tableID)
	}

	e := &entry{
		session:     session,
		broadcaster: broadcast.New[Update](0),
	}
	s.tables[tableID] = e

	slog.Info("Table opened", "table_id", tableID, "tables", len(s.tables))

	return e, nil
}

// forward relays roll events to the publishing table's subscribers
func (s *service) forward(_ context.Context, event events.Event) error {
	tableID := roll.TableIDFromEvent(event)

	s.mu.Lock()
	e, ok := s.tables[tableID]
	s.mu.Unlock()
	if !ok {
		return nil
	}

	update := Update{
		Type:    event.Type(),
		TableID: tableID,
		RollID:  roll.RollIDFromEvent(event),
	}
	if die, ok := roll.DieRollFromEvent(event); ok {
		update.Die = &die
	}
	if lines, ok := roll.LinesFromEvent(event); ok {
		update.Lines = lines
	}
	if result, ok := roll.ResultFromEvent(event); ok {
		update.Result = result
	}

	e.broadcaster.Publish(update)
	return nil
}

// Subscribe follows the roll events of a table
func (s *service) Subscribe(_ context.Context, input *SubscribeInput) (*SubscribeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	e, err := s.entry(input.TableID)
	if err != nil {
		return nil, err
	}

	updates, unsubscribe := e.broadcaster.Subscribe()
	return &SubscribeOutput{
		Updates:     updates,
		Unsubscribe: unsubscribe,
	}, nil
}

// ListHistory returns a table's recent rolls
func (s *service) ListHistory(ctx context.Context, input *ListHistoryInput) (*ListHistoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if !tableIDRegex.MatchString(input.TableID) {
		return nil, errors.InvalidArgumentf("invalid table ID: %q", input.TableID)
	}
	if s.cfg.History == nil {
		return &ListHistoryOutput{Results: nil}, nil
	}

	out, err := s.cfg.History.List(ctx, rollhistory.ListInput{
		TableID: input.TableID,
		Limit:   input.Limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list roll history")
	}

	return &ListHistoryOutput{
		Results: out.Results,
	}, nil
}

// Close stops every table and closes every stream
func (s *service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for _, id := range s.subscriptions {
		if err := s.cfg.EventBus.Unsubscribe(id); err != nil {
			slog.Warn("Failed to unsubscribe from roll events", "subscription_id", id, "error", err)
		}
	}
	s.subscriptions = nil

	for tableID, e := range s.tables {
		e.session.Close()
		e.broadcaster.Close()
		delete(s.tables, tableID)
	}
}
