// Package player turns the polled input snapshot into player movement, attacks
// and animation changes.
package player

import (
	"time"

	"github.com/vovakirdan/tui-adventure/internal/core"
	"github.com/vovakirdan/tui-adventure/internal/entity"
	"github.com/vovakirdan/tui-adventure/internal/input"
	"github.com/vovakirdan/tui-adventure/internal/sprite"
)

// DefaultSpeed is the player speed in world pixels per second.
const DefaultSpeed = 128.0

// Animation names looked up on the player sheet.
const (
	AnimMove   = "Move"
	AnimIdle   = "Idle"
	AnimAttack = "Attack"
	AnimDead   = "Dead"
)

// Controller applies the move/attack policy to the player entity.
type Controller struct {
	Speed float64

	// World size in pixels; positions are clamped to [0, W-1] x [0, H-1].
	W, H int
}

// New creates a controller for a world of the given pixel size.
func New(speed float64, w, h int) *Controller {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	return &Controller{Speed: speed, W: w, H: h}
}

// Update advances the player by one simulation step of length dt.
//
// The attack button wins only when at most one direction is held; with two or
// more directions it is ignored and the player moves instead.
func (c *Controller) Update(e *entity.Entity, in input.Snapshot, dt time.Duration) {
	p := e.Player
	if p == nil || !p.Alive {
		return
	}

	if in.Attack && in.DirectionCount() <= 1 {
		p.Facing = singleFacing(in)
		p.Attacking = true
		p.Moving = false
		play(e, AnimAttack+p.Facing.String())
		return
	}
	p.Attacking = false

	var dx, dy float64
	if in.Left {
		dx--
	}
	if in.Right {
		dx++
	}
	if in.Up {
		dy--
	}
	if in.Down {
		dy++
	}
	dx, dy = core.Normalize(dx, dy)

	if dx == 0 && dy == 0 {
		p.Moving = false
		play(e, AnimIdle+p.Facing.String())
		return
	}

	p.Moving = true
	p.Facing = facingOf(dx, dy)

	step := c.Speed * dt.Seconds()
	p.X = core.ClampF(p.X+dx*step, 0, float64(max(c.W-1, 0)))
	p.Y = core.ClampF(p.Y+dy*step, 0, float64(max(c.H-1, 0)))
	e.Pos = core.Pt(int(p.X), int(p.Y))

	play(e, AnimMove+p.Facing.String())
}

// Kill marks the player dead and switches to the death animation.
func (c *Controller) Kill(e *entity.Entity) {
	if e.Player == nil {
		return
	}
	e.Player.Alive = false
	e.Player.Moving = false
	e.Player.Attacking = false
	play(e, AnimDead)
}

// Teleport moves the player to p, clamped to the world.
func (c *Controller) Teleport(e *entity.Entity, p core.Point) {
	x := core.Clamp(p.X, 0, max(c.W-1, 0))
	y := core.Clamp(p.Y, 0, max(c.H-1, 0))
	e.Pos = core.Pt(x, y)
	if e.Player != nil {
		e.Player.X, e.Player.Y = float64(x), float64(y)
	}
}

func play(e *entity.Entity, name string) {
	if e.Sprite == nil {
		return
	}
	sprite.Play(&e.Sprite.Cursor, e.Sprite.Sheet, name)
}

// singleFacing returns the facing named by the one held direction, or
// FacingDown when none is held.
func singleFacing(in input.Snapshot) entity.Facing {
	switch {
	case in.Up:
		return entity.FacingUp
	case in.Left:
		return entity.FacingLeft
	case in.Right:
		return entity.FacingRight
	default:
		return entity.FacingDown
	}
}

// facingOf picks a facing for a non-zero direction. Diagonals face sideways.
func facingOf(dx, dy float64) entity.Facing {
	switch {
	case dx < 0:
		return entity.FacingLeft
	case dx > 0:
		return entity.FacingRight
	case dy < 0:
		return entity.FacingUp
	default:
		return entity.FacingDown
	}
}
