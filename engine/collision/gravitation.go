package collision

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultGravity is the fall acceleration in units per second squared.
const DefaultGravity float32 = 3

// Gravitation is a node behavior that pulls a dynamic collision sphere down. The step per frame is
// capped at two thirds of the sphere radius so the static pass can always catch it.
// One Gravitation must be attached to exactly one node.
type Gravitation struct {
	acceleration float32
	fallSpeed    float32
	last         mgl32.Vec3
	hasLast      bool
}

var _ node.Behavior = &Gravitation{}

// GravitationOption is a functional option for configuring a Gravitation.
type GravitationOption func(*Gravitation)

// WithAcceleration sets the fall acceleration.
func WithAcceleration(g float32) GravitationOption {
	return func(gr *Gravitation) {
		gr.acceleration = g
	}
}

// NewGravitation creates a Gravitation behavior.
func NewGravitation(options ...GravitationOption) *Gravitation {
	g := &Gravitation{acceleration: DefaultGravity}
	for _, option := range options {
		option(g)
	}
	return g
}

// FallSpeed returns the current accumulated fall speed.
func (g *Gravitation) FallSpeed() float32 {
	return g.fallSpeed
}

// Loop measures the node's vertical velocity since the previous step and applies the capped fall.
// The first frame, non-positive deltas and nodes without an active dynamic element only record
// the position.
func (g *Gravitation) Loop(n node.Node, deltaTime float64, viewport common.Size) error {
	dyn := n.DynamicCollision()
	if !g.hasLast || deltaTime <= 0 || !dyn.IsActive {
		g.last = n.Position()
		g.hasLast = true
		return nil
	}
	dt := float32(deltaTime)

	vy := (n.Position().Y() - g.last.Y()) / dt
	if vy < -g.fallSpeed {
		g.fallSpeed = 0
	} else {
		g.fallSpeed += g.acceleration * dt
	}
	step := min(g.fallSpeed*dt, dyn.Radius*2/3)
	n.MoveGlobalOn(mgl32.Vec3{0, -step, 0})
	g.last = n.Position()
	return nil
}

// DidMoveToScene forgets the tracked position so a node moved between scenes does not register
// a velocity spike.
func (g *Gravitation) DidMoveToScene(n node.Node, previous, next node.Node) {
	g.hasLast = false
	g.fallSpeed = 0
}
