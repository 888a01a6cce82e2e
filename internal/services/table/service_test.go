package table_test

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/dice-companion/internal/entities/monopoly"
	"github.com/KirkDiggler/dice-companion/internal/errors"
	"github.com/KirkDiggler/dice-companion/internal/orchestrators/roll"
	"github.com/KirkDiggler/dice-companion/internal/pkg/idgen"
	"github.com/KirkDiggler/dice-companion/internal/pkg/scheduler"
	rollhistory "github.com/KirkDiggler/dice-companion/internal/repositories/roll_history"
	"github.com/KirkDiggler/dice-companion/internal/services/table"
	"github.com/KirkDiggler/dice-companion/internal/testutils"
)

// onesRoller rolls a one on every die
type onesRoller struct{}

func (onesRoller) Roll(_ int) (int, error) { return 1, nil }

func (onesRoller) RollN(count, _ int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i] = 1
	}
	return out, nil
}

type TableServiceTestSuite struct {
	suite.Suite
	sched   *scheduler.Manual
	history rollhistory.Repository
	cleanup func()
	svc     table.Service
	ctx     context.Context
}

func TestTableServiceSuite(t *testing.T) {
	suite.Run(t, new(TableServiceTestSuite))
}

func (s *TableServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.sched = scheduler.NewManual(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	repo, err := rollhistory.NewRedisRepository(&rollhistory.Config{Client: client})
	s.Require().NoError(err)
	s.history = repo

	s.svc = s.newService(0)
}

func (s *TableServiceTestSuite) TearDownTest() {
	s.svc.Close()
	s.cleanup()
}

func (s *TableServiceTestSuite) newService(maxTables int) table.Service {
	svc, err := table.NewService(&table.Config{
		Roller:      onesRoller{},
		Scheduler:   s.sched,
		Clock:       s.sched,
		IDGenerator: idgen.NewSequential("roll"),
		EventBus:    events.NewBus(),
		History:     s.history,
		MaxTables:   maxTables,
	})
	s.Require().NoError(err)
	return svc
}

func (s *TableServiceTestSuite) drain(ch <-chan table.Update) []table.Update {
	var out []table.Update
	for {
		select {
		case u, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, u)
		default:
			return out
		}
	}
}

func (s *TableServiceTestSuite) TestTableCreatedOnDemand() {
	first, err := s.svc.Table(s.ctx, "kitchen")
	s.Require().NoError(err)

	again, err := s.svc.Table(s.ctx, "kitchen")
	s.Require().NoError(err)
	s.Same(first, again)

	other, err := s.svc.Table(s.ctx, "den")
	s.Require().NoError(err)
	s.NotSame(first, other)

	s.Equal(monopoly.PhaseStartGame, first.State().Phase)
	s.Equal(monopoly.StatusIdle, first.State().Status)
}

func (s *TableServiceTestSuite) TestInvalidTableID() {
	for _, id := range []string{"", "has space", "semi;colon", "this-id-is-far-too-long-to-be-accepted-by-the-registry-at-all-really"} {
		_, err := s.svc.Table(s.ctx, id)
		s.Error(err, id)
		s.True(errors.IsInvalidArgument(err), id)
	}
}

func (s *TableServiceTestSuite) TestTableLimit() {
	svc := s.newService(2)
	defer svc.Close()

	_, err := svc.Table(s.ctx, "one")
	s.Require().NoError(err)
	_, err = svc.Table(s.ctx, "two")
	s.Require().NoError(err)

	_, err = svc.Table(s.ctx, "three")
	s.Error(err)
	s.Equal(errors.CodeResourceExhausted, errors.GetCode(err))

	// existing tables are still reachable
	_, err = svc.Table(s.ctx, "one")
	s.NoError(err)
}

func (s *TableServiceTestSuite) TestSubscribeReceivesRollLifecycle() {
	sub, err := s.svc.Subscribe(s.ctx, &table.SubscribeInput{TableID: "kitchen"})
	s.Require().NoError(err)
	defer sub.Unsubscribe()

	session, err := s.svc.Table(s.ctx, "kitchen")
	s.Require().NoError(err)

	out, err := session.StartRoll(s.ctx, &roll.StartRollInput{})
	s.Require().NoError(err)
	s.Require().True(out.Started)

	rolling := s.drain(sub.Updates)
	s.Require().Len(rolling, monopoly.ActiveDiceCount)
	for _, u := range rolling {
		s.Equal(roll.EventDieRolling, u.Type)
		s.Equal("kitchen", u.TableID)
		s.Equal(out.RollID, u.RollID)
		s.Require().NotNil(u.Die)
		s.Zero(u.Die.Face)
		s.NotEmpty(u.Die.Token)
	}

	s.sched.Advance(roll.DefaultSettleDelay)
	settled := s.drain(sub.Updates)
	s.Require().Len(settled, monopoly.ActiveDiceCount)
	for _, u := range settled {
		s.Equal(roll.EventDieSettled, u.Type)
		s.Require().NotNil(u.Die)
		s.Equal(1, u.Die.Face)
	}

	s.sched.Advance(roll.DefaultRevealDelay - roll.DefaultSettleDelay)
	published := s.drain(sub.Updates)
	s.Require().Len(published, 1)
	s.Equal(roll.EventRollPublished, published[0].Type)
	s.Require().NotNil(published[0].Result)
	s.Equal(2, published[0].Result.Total)
	s.True(published[0].Result.DoublesTriggered)
	s.Equal("Total Value: 2", published[0].Lines[0])
	s.Equal(monopoly.RollAgainLine, published[0].Lines[len(published[0].Lines)-1])
}

func (s *TableServiceTestSuite) TestSubscribeIsolatedPerTable() {
	sub, err := s.svc.Subscribe(s.ctx, &table.SubscribeInput{TableID: "kitchen"})
	s.Require().NoError(err)
	defer sub.Unsubscribe()

	den, err := s.svc.Table(s.ctx, "den")
	s.Require().NoError(err)

	_, err = den.StartRoll(s.ctx, &roll.StartRollInput{})
	s.Require().NoError(err)
	s.sched.Advance(roll.DefaultRevealDelay)

	s.Empty(s.drain(sub.Updates))
}

func (s *TableServiceTestSuite) TestSubscribeValidation() {
	_, err := s.svc.Subscribe(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.svc.Subscribe(s.ctx, &table.SubscribeInput{TableID: "bad id"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *TableServiceTestSuite) TestListHistory() {
	session, err := s.svc.Table(s.ctx, "kitchen")
	s.Require().NoError(err)

	for i := 0; i < 2; i++ {
		_, err := session.StartRoll(s.ctx, &roll.StartRollInput{})
		s.Require().NoError(err)
		s.sched.Advance(roll.DefaultRevealDelay)
	}

	out, err := s.svc.ListHistory(s.ctx, &table.ListHistoryInput{TableID: "kitchen"})
	s.Require().NoError(err)
	s.Require().Len(out.Results, 2)
	s.Equal("roll_2", out.Results[0].RollID)
	s.Equal("roll_1", out.Results[1].RollID)

	limited, err := s.svc.ListHistory(s.ctx, &table.ListHistoryInput{TableID: "kitchen", Limit: 1})
	s.Require().NoError(err)
	s.Len(limited.Results, 1)

	empty, err := s.svc.ListHistory(s.ctx, &table.ListHistoryInput{TableID: "den"})
	s.Require().NoError(err)
	s.Empty(empty.Results)
}

func (s *TableServiceTestSuite) TestCloseEndsStreams() {
	sub, err := s.svc.Subscribe(s.ctx, &table.SubscribeInput{TableID: "kitchen"})
	s.Require().NoError(err)

	s.svc.Close()

	_, open := <-sub.Updates
	s.False(open)

	// unsubscribing after close is harmless
	sub.Unsubscribe()
}

func (s *TableServiceTestSuite) TestClosedServiceRejectsTables() {
	_, err := s.svc.Table(s.ctx, "kitchen")
	s.Require().NoError(err)

	s.svc.Close()

	_, err = s.svc.Table(s.ctx, "kitchen")
	s.Require().Error(err)
	s.Equal(errors.CodeUnavailable, errors.GetCode(err))

	_, err = s.svc.Table(s.ctx, "late")
	s.Require().Error(err)
	s.Equal(errors.CodeUnavailable, errors.GetCode(err))

	sub, err := s.svc.Subscribe(s.ctx, &table.SubscribeInput{TableID: "late"})
	s.Require().Error(err)
	s.Nil(sub)
	s.Equal(errors.CodeUnavailable, errors.GetCode(err))

	// closing twice stays closed
	s.svc.Close()
	_, err = s.svc.Table(s.ctx, "late")
	s.Equal(errors.CodeUnavailable, errors.GetCode(err))
}

func (s *TableServiceTestSuite) TestConfigValidation() {
	_, err := table.NewService(&table.Config{})
	s.Error(err)

	_, err = table.NewService(&table.Config{
		Roller:      onesRoller{},
		Scheduler:   s.sched,
		Clock:       s.sched,
		IDGenerator: idgen.NewSequential("roll"),
		EventBus:    events.NewBus(),
		MaxTables:   -1,
	})
	s.Error(err)
}
