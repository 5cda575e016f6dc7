package player

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/tui-adventure/internal/core"
	"github.com/vovakirdan/tui-adventure/internal/entity"
	"github.com/vovakirdan/tui-adventure/internal/input"
	"github.com/vovakirdan/tui-adventure/internal/sprite"
)

func testSheet() *sprite.Sheet {
	s := &sprite.Sheet{
		Rows: 5, Columns: 4, FrameWidth: 16, FrameHeight: 16,
		Animations: map[string]sprite.Animation{},
	}
	for i, f := range []string{"Down", "Up", "Left", "Right"} {
		s.Animations[AnimIdle+f] = sprite.Animation{Frames: []int{i * 4}, FrameDuration: time.Second}
		s.Animations[AnimMove+f] = sprite.Animation{Frames: []int{i*4 + 1, i*4 + 2}, FrameDuration: 150 * time.Millisecond}
		s.Animations[AnimAttack+f] = sprite.Animation{Frames: []int{i*4 + 3}, FrameDuration: 100 * time.Millisecond}
	}
	s.Animations[AnimDead] = sprite.Animation{Frames: []int{16, 17, 18, 19}, FrameDuration: 300 * time.Millisecond}
	return s
}

func newPlayer() *entity.Entity {
	return entity.NewPlayer(testSheet(), core.Pt(100, 100))
}

func TestAttackTieBreak(t *testing.T) {
	tests := []struct {
		name       string
		in         input.Snapshot
		wantAttack bool
		wantFacing entity.Facing
		wantAnim   string
	}{
		{"attack alone faces down", input.Snapshot{Attack: true}, true, entity.FacingDown, "AttackDown"},
		{"attack with one direction", input.Snapshot{Attack: true, Left: true}, true, entity.FacingLeft, "AttackLeft"},
		{"attack with two directions moves", input.Snapshot{Attack: true, Up: true, Right: true}, false, entity.FacingRight, "MoveRight"},
		{"attack with opposing directions is still two", input.Snapshot{Attack: true, Up: true, Down: true}, false, entity.FacingDown, "IdleDown"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New(DefaultSpeed, 1000, 1000)
			e := newPlayer()
			c.Update(e, tc.in, 100*time.Millisecond)

			if e.Player.Attacking != tc.wantAttack {
				t.Errorf("Attacking = %v, expected %v", e.Player.Attacking, tc.wantAttack)
			}
			if e.Player.Facing != tc.wantFacing {
				t.Errorf("Facing = %v, expected %v", e.Player.Facing, tc.wantFacing)
			}
			if got := e.Sprite.Cursor.Active; got != tc.wantAnim {
				t.Errorf("animation = %q, expected %q", got, tc.wantAnim)
			}
			if tc.wantAttack && e.Pos != core.Pt(100, 100) {
				t.Errorf("attacking player moved to %v", e.Pos)
			}
		})
	}
}

func TestAttackWithoutDirectionFacesDown(t *testing.T) {
	c := New(DefaultSpeed, 1000, 1000)
	e := newPlayer()

	c.Update(e, input.Snapshot{Left: true}, 100*time.Millisecond)
	if e.Player.Facing != entity.FacingLeft {
		t.Fatalf("Facing = %v after moving left, expected Left", e.Player.Facing)
	}

	c.Update(e, input.Snapshot{Attack: true}, 100*time.Millisecond)
	if e.Player.Facing != entity.FacingDown {
		t.Errorf("Facing = %v, expected Down", e.Player.Facing)
	}
	if got := e.Sprite.Cursor.Active; got != "AttackDown" {
		t.Errorf("animation = %q, expected %q", got, "AttackDown")
	}
}

func TestMovementIsNormalized(t *testing.T) {
	c := New(100, 10000, 10000)
	e := newPlayer()

	c.Update(e, input.Snapshot{Right: true, Down: true}, time.Second)

	dist := math.Hypot(e.Player.X-100, e.Player.Y-100)
	if math.Abs(dist-100) > 1e-9 {
		t.Errorf("diagonal step = %v, expected 100", dist)
	}
	if e.Player.X <= 100 || e.Player.Y <= 100 {
		t.Errorf("player moved to (%v, %v), expected down-right", e.Player.X, e.Player.Y)
	}
	if e.Pos != core.Pt(int(e.Player.X), int(e.Player.Y)) {
		t.Errorf("Pos = %v, expected truncated (%v, %v)", e.Pos, e.Player.X, e.Player.Y)
	}
}

func TestSubPixelAccumulation(t *testing.T) {
	c := New(10, 1000, 1000)
	e := newPlayer()

	// 10 px/s at 60 fps is a sixth of a pixel per tick.
	for range 60 {
		c.Update(e, input.Snapshot{Right: true}, time.Second/60)
	}
	if e.Pos.X != 109 && e.Pos.X != 110 {
		t.Errorf("Pos.X = %d after one second, expected about 110", e.Pos.X)
	}
}

func TestPositionClamped(t *testing.T) {
	tests := []struct {
		name string
		in   input.Snapshot
		want core.Point
	}{
		{"left wall", input.Snapshot{Left: true}, core.Pt(0, 100)},
		{"top wall", input.Snapshot{Up: true}, core.Pt(100, 0)},
		{"right wall", input.Snapshot{Right: true}, core.Pt(199, 100)},
		{"bottom wall", input.Snapshot{Down: true}, core.Pt(100, 149)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New(1000, 200, 150)
			e := newPlayer()
			for range 10 {
				c.Update(e, tc.in, time.Second)
			}
			if e.Pos != tc.want {
				t.Errorf("Pos = %v, expected %v", e.Pos, tc.want)
			}
		})
	}
}

func TestIdleAndMoveAnimations(t *testing.T) {
	c := New(DefaultSpeed, 1000, 1000)
	e := newPlayer()

	c.Update(e, input.Snapshot{Up: true}, 50*time.Millisecond)
	if e.Sprite.Cursor.Active != "MoveUp" || !e.Player.Moving {
		t.Fatalf("animation = %q moving=%v, expected MoveUp", e.Sprite.Cursor.Active, e.Player.Moving)
	}

	// Advancing the cursor then playing the same animation must not restart it.
	sprite.Advance(&e.Sprite.Cursor, e.Sprite.Sheet, 200*time.Millisecond)
	before := e.Sprite.Cursor.Elapsed
	c.Update(e, input.Snapshot{Up: true}, 50*time.Millisecond)
	if e.Sprite.Cursor.Elapsed != before {
		t.Errorf("MoveUp restarted: elapsed %v, expected %v", e.Sprite.Cursor.Elapsed, before)
	}

	c.Update(e, input.Snapshot{}, 50*time.Millisecond)
	if e.Sprite.Cursor.Active != "IdleUp" || e.Player.Moving {
		t.Errorf("animation = %q moving=%v, expected IdleUp", e.Sprite.Cursor.Active, e.Player.Moving)
	}
}

func TestKill(t *testing.T) {
	c := New(DefaultSpeed, 1000, 1000)
	e := newPlayer()
	c.Kill(e)

	if e.Player.Alive {
		t.Error("player still alive after Kill")
	}
	if e.Sprite.Cursor.Active != AnimDead {
		t.Errorf("animation = %q, expected %q", e.Sprite.Cursor.Active, AnimDead)
	}

	pos := e.Pos
	c.Update(e, input.Snapshot{Right: true}, time.Second)
	if e.Pos != pos {
		t.Errorf("dead player moved from %v to %v", pos, e.Pos)
	}
}

func TestTeleportClamps(t *testing.T) {
	c := New(DefaultSpeed, 100, 50)
	e := newPlayer()
	c.Teleport(e, core.Pt(500, -3))
	if e.Pos != core.Pt(99, 0) || e.Player.X != 99 || e.Player.Y != 0 {
		t.Errorf("Teleport() = %v (%v, %v), expected (99, 0)", e.Pos, e.Player.X, e.Player.Y)
	}
}
