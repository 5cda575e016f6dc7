package engine

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-adventure/internal/collision"
	"github.com/vovakirdan/tui-adventure/internal/core"
	"github.com/vovakirdan/tui-adventure/internal/player"
)

// Trigger selects when a hazard can hurt the player.
type Trigger string

const (
	// TriggerContact checks every live hazard each tick.
	TriggerContact Trigger = "contact"
	// TriggerExpiry checks a hazard only on the tick it expires.
	TriggerExpiry Trigger = "expiry"
)

// ParseTrigger validates a trigger name. Empty means TriggerContact.
func ParseTrigger(s string) (Trigger, error) {
	switch Trigger(s) {
	case "", TriggerContact:
		return TriggerContact, nil
	case TriggerExpiry:
		return TriggerExpiry, nil
	}
	return "", fmt.Errorf("engine: unknown hazard trigger %q", s)
}

// DefaultHazardTTL is how long a hazard lives.
const DefaultHazardTTL = 2100 * time.Millisecond

// Config holds the simulation parameters.
type Config struct {
	PlayerSpeed float64
	PlayerSpawn core.Point

	HazardTTL       time.Duration
	HazardAnimation string
	Trigger         Trigger

	// DropDistance is how far ahead of the player the bomb key places a
	// hazard. Zero drops it on the player.
	DropDistance int

	CollisionThreshold int

	// MaxDelta caps one tick's elapsed time, e.g. after the process was
	// suspended. Zero disables the cap.
	MaxDelta time.Duration

	// Debug panics on programming errors such as duplicate entity ids.
	Debug bool
}

// DefaultConfig returns the stock game parameters.
func DefaultConfig() Config {
	return Config{
		PlayerSpeed:        player.DefaultSpeed,
		PlayerSpawn:        core.Pt(100, 100),
		HazardTTL:          DefaultHazardTTL,
		HazardAnimation:    "Explode",
		Trigger:            TriggerContact,
		DropDistance:       48,
		CollisionThreshold: collision.DefaultThreshold,
		MaxDelta:           250 * time.Millisecond,
	}
}
