package rollhistory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dice-companion/internal/entities/monopoly"
	"github.com/KirkDiggler/dice-companion/internal/errors"
	redisclient "github.com/KirkDiggler/dice-companion/internal/redis"
)

const (
	// Key pattern: roll_history:{table_id}
	historyKeyPrefix = "roll_history:"

	errTableIDEmpty = "table ID cannot be empty"
	errResultNil    = "result cannot be nil"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client

	// TTL is how long a table's history lives after its last roll
	TTL time.Duration

	// Limit is how many rolls are kept per table
	Limit int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.TTL < 0 {
		vb.InvalidField("TTL", "cannot be negative")
	}
	if c.Limit < 0 {
		vb.InvalidField("Limit", "cannot be negative")
	}

	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	ttl    time.Duration
	limit  int
}

// NewRedisRepository creates a new Redis repository for roll history
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}
	limit := cfg.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	return &redisRepository{
		client: cfg.Client,
		ttl:    ttl,
		limit:  limit,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Append pushes the roll onto the head of the table's list, trims it to the
// configured limit and refreshes the TTL in one transaction
func (r *redisRepository) Append(ctx context.Context, input AppendInput) (*AppendOutput, error) {
	if input.TableID == "" {
		return nil, errors.InvalidArgument(errTableIDEmpty)
	}
	if input.Result == nil {
		return nil, errors.InvalidArgument(errResultNil)
	}

	resultJSON, err := json.Marshal(input.Result)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal roll result")
	}

	key := r.buildKey(input.TableID)

	var length *redis.IntCmd
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, resultJSON)
		pipe.LTrim(ctx, key, 0, int64(r.limit-1))
		pipe.Expire(ctx, key, r.ttl)
		length = pipe.LLen(ctx, key)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store roll in Redis")
	}

	return &AppendOutput{
		// nolint:gosec // bounded by limit
		Stored: int32(length.Val()),
	}, nil
}

// List retrieves recent rolls, newest first
func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	if input.TableID == "" {
		return nil, errors.InvalidArgument(errTableIDEmpty)
	}

	limit := input.Limit
	if limit <= 0 || limit > r.limit {
		limit = r.limit
	}

	raw, err := r.client.LRange(ctx, r.buildKey(input.TableID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read roll history from Redis")
	}

	results := make([]*monopoly.RollResult, 0, len(raw))
	for _, entry := range raw {
		var result monopoly.RollResult
		if err := json.Unmarshal([]byte(entry), &result); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal roll result")
		}
		results = append(results, &result)
	}

	return &ListOutput{
		Results: results,
	}, nil
}

// Delete removes a table's history
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.TableID == "" {
		return nil, errors.InvalidArgument(errTableIDEmpty)
	}

	key := r.buildKey(input.TableID)

	count, err := r.client.LLen(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to count roll history in Redis")
	}

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to delete roll history from Redis")
	}

	return &DeleteOutput{
		// nolint:gosec // bounded by limit
		RollsDeleted: int32(count),
	}, nil
}

// buildKey creates the Redis key for a table's history
func (r *redisRepository) buildKey(tableID string) string {
	return fmt.Sprintf("%s%s", historyKeyPrefix, tableID)
}
