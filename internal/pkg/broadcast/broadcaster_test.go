package broadcast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dice-companion/internal/pkg/broadcast"
)

func TestBroadcaster_FanOut(t *testing.T) {
	b := broadcast.New[string](4)
	a, unsubA := b.Subscribe()
	c, unsubC := b.Subscribe()
	defer unsubA()
	defer unsubC()

	b.Publish("die.settled")

	assert.Equal(t, "die.settled", <-a)
	assert.Equal(t, "die.settled", <-c)
	assert.Equal(t, 2, b.Subscribers())
}

func TestBroadcaster_DropsWhenFull(t *testing.T) {
	b := broadcast.New[int](1)
	ch, unsub := b.Subscribe()
	defer unsub()

	b.Publish(1)
	b.Publish(2)

	assert.Equal(t, 1, <-ch)
	select {
	case v := <-ch:
		t.Fatalf("unexpected value %d", v)
	default:
	}
}

func TestBroadcaster_Unsubscribe(t *testing.T) {
	b := broadcast.New[int](0)
	ch, unsub := b.Subscribe()

	unsub()
	unsub()

	_, ok := <-ch
	assert.False(t, ok)
	assert.Zero(t, b.Subscribers())
}

func TestBroadcaster_Close(t *testing.T) {
	b := broadcast.New[int](0)
	ch, unsub := b.Subscribe()

	b.Close()
	_, ok := <-ch
	require.False(t, ok)
	unsub()

	late, _ := b.Subscribe()
	_, ok = <-late
	assert.False(t, ok)
}
