package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dice-companion/internal/redis"
)

func TestNewClient_RequiresEndpoint(t *testing.T) {
	_, err := redis.NewClient("", nil)
	assert.Error(t, err)
}

func TestNewClient_Ping(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := redis.NewClient(mr.Addr(), &redis.Options{PoolSize: 2})
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	assert.NoError(t, client.Ping(context.Background()).Err())
}
