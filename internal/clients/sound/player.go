// Package sound triggers the roll sound effect. Playback is best effort:
// the roll orchestrator never waits on it and only logs failures.
package sound

import (
	"context"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/KirkDiggler/dice-companion/internal/errors"
)

//go:generate mockgen -destination=mock/mock_player.go -package=soundmock github.com/KirkDiggler/dice-companion/internal/clients/sound Player

// DefaultRollSound is the effect played when dice are thrown
const DefaultRollSound = "/dice.mp3"

// Player plays a named sound effect
type Player interface {
	Play(ctx context.Context, name string) error
}

// Noop discards every request
type Noop struct{}

// Play does nothing
func (Noop) Play(_ context.Context, _ string) error {
	return nil
}

// CommandConfig configures a Player that shells out to an audio tool
type CommandConfig struct {
	// Command is split on spaces; the sound name is appended as the last argument
	Command string
}

// Validate ensures the command is usable
func (c *CommandConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Command", c.Command, vb)
	return vb.Build()
}

type commandPlayer struct {
	name string
	args []string
}

// NewCommandPlayer returns a Player that runs an external command such as
// "aplay -q" or "afplay" for each sound
func NewCommandPlayer(cfg *CommandConfig) (Player, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	fields := strings.Fields(cfg.Command)
	return &commandPlayer{
		name: fields[0],
		args: fields[1:],
	}, nil
}

// Play starts the command and returns once it has been launched.
// The process is reaped in the background.
func (p *commandPlayer) Play(ctx context.Context, name string) error {
	args := append(append([]string{}, p.args...), name)

	// #nosec G204 -- command comes from operator configuration
	cmd := exec.CommandContext(ctx, p.name, args...)
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "failed to start %s", p.name)
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			slog.Debug("Sound command exited with error",
				"command", p.name,
				"sound", name,
				"error", err,
			)
		}
	}()

	return nil
}
