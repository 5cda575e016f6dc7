// Package entity defines the game's entity record and the registry that owns
// every live entity.
//
// An entity is one struct carrying a set of capability flags plus optional
// payloads per capability. Systems filter on flags instead of inspecting types.
package entity

import (
	"time"

	"github.com/vovakirdan/tui-adventure/internal/core"
	"github.com/vovakirdan/tui-adventure/internal/sprite"
)

// ID is a process-unique entity identifier. IDs are assigned monotonically
// and never reused.
type ID uint64

// Capability is a bit set of entity capabilities.
type Capability uint8

const (
	Renderable Capability = 1 << iota // has a sprite and draws itself
	Temporary                         // has a time-to-live
	Player                            // the player singleton
)

// Has reports whether all capabilities in o are set.
func (c Capability) Has(o Capability) bool {
	return c&o == o
}

func (c Capability) String() string {
	if c == 0 {
		return "none"
	}
	s := ""
	for _, f := range []struct {
		c    Capability
		name string
	}{{Renderable, "renderable"}, {Temporary, "temporary"}, {Player, "player"}} {
		if c.Has(f.c) {
			if s != "" {
				s += "|"
			}
			s += f.name
		}
	}
	return s
}

// Entity is a live game object.
type Entity struct {
	ID   ID
	Caps Capability
	Pos  core.Point

	Sprite *SpriteState // set when Caps has Renderable
	TTL    *Lifetime    // set when Caps has Temporary
	Player *PlayerState // set when Caps has Player
}

// Is reports whether the entity has all the given capabilities.
func (e *Entity) Is(c Capability) bool {
	return e.Caps.Has(c)
}

// SpriteState pairs a shared sheet definition with this entity's own cursor.
type SpriteState struct {
	Sheet  *sprite.Sheet
	Cursor sprite.Cursor
}

// Lifetime tracks a Temporary entity's age on the simulation clock.
type Lifetime struct {
	TTL       time.Duration
	SpawnedAt time.Duration // simulation time at spawn
	Elapsed   time.Duration
	Expired   bool
}

// Update recomputes the age at simulation time now and returns whether the
// lifetime has expired. Expiry is sticky.
func (l *Lifetime) Update(now time.Duration) bool {
	l.Elapsed = now - l.SpawnedAt
	if l.Elapsed >= l.TTL {
		l.Expired = true
	}
	return l.Expired
}

// Facing is the direction the player is looking.
type Facing int

const (
	FacingDown Facing = iota
	FacingUp
	FacingLeft
	FacingRight
)

func (f Facing) String() string {
	switch f {
	case FacingUp:
		return "Up"
	case FacingLeft:
		return "Left"
	case FacingRight:
		return "Right"
	default:
		return "Down"
	}
}

// PlayerState is the payload of the Player capability.
type PlayerState struct {
	Alive     bool
	Facing    Facing
	Attacking bool
	Moving    bool

	// Sub-pixel position; Entity.Pos holds the truncated value.
	X, Y float64
}

// NewPlayer builds the player entity at a world position.
func NewPlayer(sheet *sprite.Sheet, pos core.Point) *Entity {
	e := &Entity{
		Caps: Player,
		Pos:  pos,
		Player: &PlayerState{
			Alive:  true,
			Facing: FacingDown,
			X:      float64(pos.X),
			Y:      float64(pos.Y),
		},
	}
	if sheet != nil {
		e.Caps |= Renderable
		e.Sprite = &SpriteState{Sheet: sheet}
	}
	return e
}

// NewHazard builds a Temporary+Renderable entity spawned at simulation time now.
// The named animation is activated on the entity's own cursor.
func NewHazard(sheet *sprite.Sheet, pos core.Point, ttl, now time.Duration, animation string) *Entity {
	e := &Entity{
		Caps: Temporary,
		Pos:  pos,
		TTL:  &Lifetime{TTL: ttl, SpawnedAt: now},
	}
	if sheet != nil {
		e.Caps |= Renderable
		e.Sprite = &SpriteState{Sheet: sheet}
		sprite.Activate(&e.Sprite.Cursor, sheet, animation)
	}
	return e
}
