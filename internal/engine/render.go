package engine

import (
	"fmt"

	"github.com/vovakirdan/tui-adventure/internal/core"
	"github.com/vovakirdan/tui-adventure/internal/entity"
	"github.com/vovakirdan/tui-adventure/internal/sprite"
	"github.com/vovakirdan/tui-adventure/internal/state"
)

// Render draws the current frame: terrain layers back to front, then every
// renderable entity except the player, then the player, then any overlay.
// It runs in every state; paused and finished games keep showing their last
// simulated frame.
func (e *Engine) Render() {
	r := e.renderer
	if r == nil {
		return
	}
	r.Clear()

	p, hasPlayer := e.Player()
	if hasPlayer {
		r.CameraLookAt(p.Pos)
	}

	e.renderTerrain()

	for ent := range e.entities.Iterate(entity.Renderable) {
		if ent.ID == e.playerID {
			continue
		}
		e.renderEntity(ent)
	}
	if hasPlayer && p.Sprite != nil {
		e.renderEntity(p)
	}

	switch e.machine.State() {
	case state.GameOver:
		r.DrawOverlay("GAME OVER",
			fmt.Sprintf("survived %.1fs", e.clock.Seconds()),
			fmt.Sprintf("%d hazards dropped", e.stats.Spawned),
			"",
			"r restart   enter quit")
	case state.Paused:
		r.DrawOverlay("PAUSED", "p to resume")
	}

	r.Present()
}

func (e *Engine) renderTerrain() {
	cols, rows := e.world.Size()
	tw, th := e.world.TileSize()

	for layer := range e.world.Layers() {
		for row := range rows {
			for col := range cols {
				tile, ok := e.world.TileAt(layer, col, row)
				if !ok {
					continue
				}
				src := core.NewRect(0, 0, tile.ImageWidth, tile.ImageHeight)
				dst := core.NewRect(col*tw, row*th, tw, th)
				e.renderer.RenderTexture(tile.Texture, src, dst)
			}
		}
	}
}

func (e *Engine) renderEntity(ent *entity.Entity) {
	s := ent.Sprite
	if s == nil || s.Sheet == nil {
		return
	}
	src := sprite.FrameRect(&s.Cursor, s.Sheet)
	dst := sprite.DestRect(s.Sheet, ent.Pos)
	e.renderer.RenderTexture(s.Sheet.Texture, src, dst)
}
