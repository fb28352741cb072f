package level

import (
	"math"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
)

// DefaultUseAngle is the cone half-angle Use searches when the caller has no preference.
const DefaultUseAngle float32 = math.Pi / 4

// Activable is a behavior the player can trigger by looking at its node.
type Activable interface {
	Activate()
}

// Toggler is a two-state mechanism driven by an Activator.
type Toggler interface {
	Toggle()
}

// Activator marks a container node as usable and forwards activation to the mechanism inside it.
type Activator struct {
	target Toggler
}

var (
	_ Activable     = &Activator{}
	_ node.Behavior = &Activator{}
)

// NewActivator creates an Activator forwarding to target.
func NewActivator(target Toggler) *Activator {
	if target == nil {
		panic("level: NewActivator requires a non-nil target")
	}
	return &Activator{target: target}
}

func (a *Activator) Activate() {
	a.target.Toggle()
}

// Target returns the mechanism this activator drives.
func (a *Activator) Target() Toggler {
	return a.target
}

func (a *Activator) Loop(n node.Node, deltaTime float64, viewport common.Size) error {
	return nil
}

// Use activates the nearest node in front of player carrying an Activable behavior.
//
// Parameters:
//   - player: the node whose facing axis is searched
//   - angle: cone half-angle in radians
//
// Returns:
//   - node.Node: the activated node
//   - bool: false if nothing usable was in range
func Use(player node.Node, angle float32) (node.Node, bool) {
	for _, n := range player.NodesWithDirection(angle) {
		for _, b := range n.Behaviors() {
			if a, ok := b.(Activable); ok {
				a.Activate()
				return n, true
			}
		}
	}
	return nil, false
}
