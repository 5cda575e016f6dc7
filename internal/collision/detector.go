// Package collision detects hazards touching the player.
package collision

import (
	"iter"

	"github.com/vovakirdan/tui-adventure/internal/core"
	"github.com/vovakirdan/tui-adventure/internal/entity"
)

// DefaultThreshold is the half-size of the proximity box in world pixels.
const DefaultThreshold = 32

// Detector is an axis-aligned proximity test: a hazard collides when both
// |dx| and |dy| are strictly below Threshold.
type Detector struct {
	Threshold int
}

// New creates a detector. A non-positive threshold uses DefaultThreshold.
func New(threshold int) *Detector {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Detector{Threshold: threshold}
}

// Near reports whether two positions are within the proximity box.
func (d *Detector) Near(a, b core.Point) bool {
	delta := a.Sub(b)
	return core.Abs(delta.X) < d.Threshold && core.Abs(delta.Y) < d.Threshold
}

// Scan returns the ids of all hazards colliding with the player, in iteration
// order. When any collide, the player's Alive flag is cleared. A dead player
// collides with nothing.
func (d *Detector) Scan(player *entity.Entity, hazards iter.Seq[*entity.Entity]) []entity.ID {
	if player == nil || player.Player == nil || !player.Player.Alive {
		return nil
	}

	var hits []entity.ID
	for h := range hazards {
		if h.ID == player.ID {
			continue
		}
		if d.Near(player.Pos, h.Pos) {
			hits = append(hits, h.ID)
		}
	}

	if len(hits) > 0 {
		player.Player.Alive = false
	}
	return hits
}
