package level

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/collision"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
	"github.com/go-gl/mathgl/mgl32"
)

// PlayerRadius is the player's dynamic collision radius.
const PlayerRadius float32 = 0.5

// Player is a falling, colliding node driven by input.
type Player struct {
	node        node.Node
	gravity     *collision.Gravitation
	moveSpeed   float32
	rotateSpeed float32
}

// PlayerOption is a functional option for NewPlayer.
type PlayerOption func(*Player)

// WithGravitation replaces the default gravitation behavior.
func WithGravitation(g *collision.Gravitation) PlayerOption {
	return func(p *Player) {
		p.gravity = g
	}
}

// WithMoveSpeed sets the walk speed in units per second.
func WithMoveSpeed(speed float32) PlayerOption {
	return func(p *Player) {
		p.moveSpeed = speed
	}
}

// WithRotateSpeed sets the turn speed in radians per second.
func WithRotateSpeed(speed float32) PlayerOption {
	return func(p *Player) {
		p.rotateSpeed = speed
	}
}

// NewPlayer creates the player node at position. It is detached until added to a scene.
func NewPlayer(a *node.Arena, position mgl32.Vec3, options ...PlayerOption) *Player {
	p := &Player{moveSpeed: 2, rotateSpeed: mgl32.DegToRad(45)}
	for _, option := range options {
		option(p)
	}
	if p.gravity == nil {
		p.gravity = collision.NewGravitation()
	}
	p.node = a.New(
		node.WithName("player"),
		node.WithPosition(position),
		node.WithDynamicRadius(PlayerRadius),
		node.WithBehaviors(p.gravity),
	)
	return p
}

func (p *Player) Node() node.Node {
	return p.node
}

// Move walks along the player's own axes: input.X() strafes along local X, input.Y() along local Z.
// Forward is negative Y.
func (p *Player) Move(input mgl32.Vec2, deltaTime float32) {
	step := input.Mul(p.moveSpeed * deltaTime)
	rotate := p.node.RotateMatrix()
	right := common.TransformDirection(rotate, mgl32.Vec3{1, 0, 0})
	back := common.TransformDirection(rotate, mgl32.Vec3{0, 0, 1})
	p.node.MoveOn(right.Mul(step.X()).Add(back.Mul(step.Y())))
}

// Turn yaws the player around +Y. Positive input turns left.
func (p *Player) Turn(input, deltaTime float32) {
	p.node.RotateOn(input*p.rotateSpeed*deltaTime, yAxis)
}

// Use activates whatever the player is facing within angle.
func (p *Player) Use(angle float32) (node.Node, bool) {
	return Use(p.node, angle)
}

// Carry attaches n (typically the scene camera node) to the player so it follows the player's placement.
func (p *Player) Carry(n node.Node) {
	p.node.AddSubnode(n)
}
