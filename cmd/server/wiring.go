package main

import (
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/alicebob/miniredis/v2"

	"github.com/KirkDiggler/dice-companion/internal/clients/sound"
	"github.com/KirkDiggler/dice-companion/internal/config"
	"github.com/KirkDiggler/dice-companion/internal/errors"
	"github.com/KirkDiggler/dice-companion/internal/pkg/clock"
	"github.com/KirkDiggler/dice-companion/internal/pkg/idgen"
	"github.com/KirkDiggler/dice-companion/internal/pkg/scheduler"
	"github.com/KirkDiggler/dice-companion/internal/redis"
	rollhistory "github.com/KirkDiggler/dice-companion/internal/repositories/roll_history"
	"github.com/KirkDiggler/dice-companion/internal/services/table"
)

// buildTables wires the table registry from configuration. The returned
// cleanup closes the tables and then the history store.
func buildTables(cfg *config.Config) (table.Service, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	addr := cfg.RedisAddr
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to start in-memory redis")
		}
		cleanups = append(cleanups, mr.Close)
		addr = mr.Addr()
		slog.Info("Using in-memory roll history", "addr", addr)
	}

	redisClient, err := redis.NewClient(addr, &redis.Options{UseTLS: cfg.RedisTLS && cfg.RedisAddr != ""})
	if err != nil {
		cleanup()
		return nil, nil, errors.Wrap(err, "failed to create redis client")
	}
	cleanups = append(cleanups, func() { _ = redisClient.Close() })

	history, err := rollhistory.NewRedisRepository(&rollhistory.Config{
		Client: redisClient,
		TTL:    cfg.HistoryTTL,
		Limit:  cfg.HistoryLimit,
	})
	if err != nil {
		cleanup()
		return nil, nil, errors.Wrap(err, "failed to create roll history repository")
	}

	player, err := buildSoundPlayer(cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	tables, err := table.NewService(&table.Config{
		Roller:      dice.DefaultRoller,
		Scheduler:   scheduler.New(),
		Clock:       clock.New(),
		IDGenerator: idgen.NewUUID("roll"),
		EventBus:    events.NewBus(),
		SoundPlayer: player,
		RollSound:   cfg.SoundFile,
		History:     history,
		SettleDelay: cfg.SettleDelay,
		RevealDelay: cfg.RevealDelay,
		MaxTables:   cfg.MaxTables,
	})
	if err != nil {
		cleanup()
		return nil, nil, errors.Wrap(err, "failed to create table service")
	}
	cleanups = append(cleanups, tables.Close)

	return tables, cleanup, nil
}

func buildSoundPlayer(cfg *config.Config) (sound.Player, error) {
	if cfg.SoundCommand == "" {
		return sound.Noop{}, nil
	}

	player, err := sound.NewCommandPlayer(&sound.CommandConfig{Command: cfg.SoundCommand})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create sound player")
	}
	return player, nil
}
