// Package sprite implements sprite-sheet animation playback.
//
// A Sheet is an immutable definition shared by every entity built from it.
// Playback state lives in a Cursor owned by each entity, so two entities
// using the same sheet animate independently.
package sprite

import (
	"time"

	"github.com/vovakirdan/tui-adventure/internal/core"
)

// Animation is an ordered list of sheet frame indices played at a fixed rate.
type Animation struct {
	Frames        []int
	FrameDuration time.Duration
}

// Duration returns the length of one loop of the animation.
func (a Animation) Duration() time.Duration {
	return time.Duration(len(a.Frames)) * a.FrameDuration
}

// Sheet is the frame geometry and animation table of a sprite sheet.
type Sheet struct {
	Name        string
	Rows        int
	Columns     int
	FrameWidth  int
	FrameHeight int

	// Offset is subtracted from the entity position to get the top-left
	// corner of the drawn frame.
	Offset core.Point

	Texture    core.TextureID
	Animations map[string]Animation
}

// Has reports whether the sheet defines the named animation.
func (s *Sheet) Has(name string) bool {
	_, ok := s.Animations[name]
	return ok
}

// Cursor is per-entity playback state.
type Cursor struct {
	Active  string
	Elapsed time.Duration // time within the current loop
	Frame   int           // sheet frame index currently shown
}

// Activate resets the cursor to frame 0 of the named animation.
// Unknown names keep the previous animation and return false.
func Activate(c *Cursor, s *Sheet, name string) bool {
	anim, ok := s.Animations[name]
	if !ok {
		return false
	}
	c.Active = name
	c.Elapsed = 0
	c.Frame = 0
	if len(anim.Frames) > 0 {
		c.Frame = anim.Frames[0]
	}
	return true
}

// Play activates the named animation unless it is already active.
func Play(c *Cursor, s *Sheet, name string) bool {
	if c.Active == name && s.Has(name) {
		return true
	}
	return Activate(c, s, name)
}

// Advance accumulates dt and recomputes the current frame. Animations loop
// indefinitely; callers wanting one-shot playback pair them with a lifetime.
func Advance(c *Cursor, s *Sheet, dt time.Duration) {
	anim, ok := s.Animations[c.Active]
	if !ok || len(anim.Frames) == 0 {
		return
	}

	total := anim.Duration()
	if total <= 0 {
		c.Frame = anim.Frames[0]
		return
	}

	c.Elapsed = (c.Elapsed + dt) % total
	c.Frame = anim.Frames[int(c.Elapsed/anim.FrameDuration)]
}

// FrameRect returns the source rectangle of the cursor's current frame.
func FrameRect(c *Cursor, s *Sheet) core.Rect {
	cols := s.Columns
	if cols <= 0 {
		cols = 1
	}
	col := c.Frame % cols
	row := c.Frame / cols
	return core.NewRect(col*s.FrameWidth, row*s.FrameHeight, s.FrameWidth, s.FrameHeight)
}

// DestRect returns where a frame is drawn in world space for an entity at pos.
func DestRect(s *Sheet, pos core.Point) core.Rect {
	return core.NewRect(pos.X-s.Offset.X, pos.Y-s.Offset.Y, s.FrameWidth, s.FrameHeight)
}
