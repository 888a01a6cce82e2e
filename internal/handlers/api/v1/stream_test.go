package v1_test

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"

	v1 "github.com/KirkDiggler/dice-companion/internal/handlers/api/v1"
	"github.com/KirkDiggler/dice-companion/internal/orchestrators/roll"
	"github.com/KirkDiggler/dice-companion/internal/pkg/idgen"
	"github.com/KirkDiggler/dice-companion/internal/pkg/scheduler"
	"github.com/KirkDiggler/dice-companion/internal/services/table"
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

type sseEvent struct {
	name string
	data map[string]any
}

type StreamTestSuite struct {
	suite.Suite
	sched  *scheduler.Manual
	tables table.Service
	server *httptest.Server
	resp   *http.Response
	events chan sseEvent
}

func TestStreamTestSuite(t *testing.T) {
	suite.Run(t, new(StreamTestSuite))
}

func (s *StreamTestSuite) SetupTest() {
	s.sched = scheduler.NewManual(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	tables, err := table.NewService(&table.Config{
		Roller:      onesRoller{},
		Scheduler:   s.sched,
		Clock:       s.sched,
		IDGenerator: idgen.NewSequential("roll"),
		EventBus:    events.NewBus(),
	})
	s.Require().NoError(err)
	s.tables = tables

	handler, err := v1.NewTableHandler(&v1.TableHandlerConfig{
		Tables:    tables,
		KeepAlive: time.Hour,
	})
	s.Require().NoError(err)
	s.server = httptest.NewServer(v1.NewRouter(handler))

	resp, err := http.Get(s.server.URL + "/v1/tables/kitchen/stream")
	s.Require().NoError(err)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.resp = resp

	s.events = make(chan sseEvent, 64)
	go s.readEvents(resp)
}

func (s *StreamTestSuite) TearDownTest() {
	_ = s.resp.Body.Close()
	s.tables.Close()
	s.server.Close()
}

func (s *StreamTestSuite) readEvents(resp *http.Response) {
	defer close(s.events)

	scanner := bufio.NewScanner(resp.Body)
	var name string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			var data map[string]any
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &data); err != nil {
				return
			}
			s.events <- sseEvent{name: name, data: data}
		}
	}
}

func (s *StreamTestSuite) next() sseEvent {
	select {
	case e, ok := <-s.events:
		s.Require().True(ok, "stream closed")
		return e
	case <-time.After(2 * time.Second):
		s.FailNow("timed out waiting for stream event")
		return sseEvent{}
	}
}

func (s *StreamTestSuite) TestStreamFollowsRoll() {
	state := s.next()
	s.Equal("state", state.name)
	s.Equal("start_game", state.data["phase"])
	s.Equal("idle", state.data["status"])

	resp, err := http.Post(s.server.URL+"/v1/tables/kitchen/rolls", "application/json", nil)
	s.Require().NoError(err)
	_ = resp.Body.Close()
	s.Require().Equal(http.StatusAccepted, resp.StatusCode)

	for i := 0; i < 4; i++ {
		e := s.next()
		s.Equal(roll.EventDieRolling, e.name)
		die := e.data["die"].(map[string]any)
		s.NotContains(die, "face")
		s.NotEmpty(die["token"])
	}

	s.sched.Advance(roll.DefaultSettleDelay)
	for i := 0; i < 4; i++ {
		e := s.next()
		s.Equal(roll.EventDieSettled, e.name)
		die := e.data["die"].(map[string]any)
		s.Equal(float64(1), die["face"])
		s.Contains(die, "image_index")
	}

	s.sched.Advance(roll.DefaultRevealDelay - roll.DefaultSettleDelay)
	published := s.next()
	s.Equal(roll.EventRollPublished, published.name)
	s.Equal("roll_1", published.data["roll_id"])
	lines := published.data["lines"].([]any)
	s.Equal("Total Value: 2", lines[0])
	s.Equal("ROLL AGAIN", lines[len(lines)-1])
}

func (s *StreamTestSuite) TestStreamEndsOnShutdown() {
	s.Equal("state", s.next().name)

	s.tables.Close()

	select {
	case _, ok := <-s.events:
		s.False(ok)
	case <-time.After(2 * time.Second):
		s.FailNow("stream did not end on shutdown")
	}
}

func (s *StreamTestSuite) TestStreamRejectedAfterShutdown() {
	s.Equal("state", s.next().name)

	s.tables.Close()

	resp, err := http.Get(s.server.URL + "/v1/tables/late/stream")
	s.Require().NoError(err)
	defer func() { _ = resp.Body.Close() }()
	s.Equal(http.StatusServiceUnavailable, resp.StatusCode)

	var body map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Equal("UNAVAILABLE", body["code"])
}
