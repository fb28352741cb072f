package node

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-scene/common"
	pkgerrors "github.com/pkg/errors"
)

var (
	// ErrAnimationNotFound is returned when detaching an animation that is not attached.
	ErrAnimationNotFound = errors.New("node: animation not attached")
	// ErrBehaviorNotFound is returned when detaching a behavior that is not attached.
	ErrBehaviorNotFound = errors.New("node: behavior not attached")
	// ErrRenderHandlerNotFound is returned when detaching a render handler that is not attached.
	ErrRenderHandlerNotFound = errors.New("node: render handler not attached")
)

// Behavior is per-frame logic attached to a node. Implementations must be pointer types.
type Behavior interface {
	// Loop runs once per frame for the node the behavior is attached to.
	//
	// Parameters:
	//   - n: the owning node
	//   - deltaTime: seconds since the previous frame
	//   - viewport: current viewport size
	//
	// Returns:
	//   - error: aborts the frame's update pass
	Loop(n Node, deltaTime float64, viewport common.Size) error
}

// Animation is a time-driven modifier attached to a node. Implementations must be pointer types.
type Animation interface {
	// Loop advances the animation by deltaTime seconds.
	//
	// Returns:
	//   - bool: false once the animation has finished and should be detached
	Loop(n Node, deltaTime float32) bool
}

func (n *node) AddAnimation(a Animation) {
	n.animations = append(n.animations, a)
}

func (n *node) RemoveAnimation(a Animation) error {
	var ok bool
	if n.animations, ok = common.RemoveFirst(n.animations, a); !ok {
		return ErrAnimationNotFound
	}
	return nil
}

func (n *node) Animations() []Animation {
	return append([]Animation(nil), n.animations...)
}

func (n *node) AddBehavior(b Behavior) {
	n.behaviors = append(n.behaviors, b)
}

func (n *node) RemoveBehavior(b Behavior) error {
	var ok bool
	if n.behaviors, ok = common.RemoveFirst(n.behaviors, b); !ok {
		return ErrBehaviorNotFound
	}
	return nil
}

func (n *node) Behaviors() []Behavior {
	return append([]Behavior(nil), n.behaviors...)
}

func (n *node) Loop(deltaTime float64, viewport common.Size) error {
	for _, a := range n.Animations() {
		if !a.Loop(n, float32(deltaTime)) {
			_ = n.RemoveAnimation(a)
		}
	}
	for _, b := range n.Behaviors() {
		if err := b.Loop(n, deltaTime, viewport); err != nil {
			return pkgerrors.Wrapf(err, "node %q", n.name)
		}
		if n.released {
			return nil
		}
	}
	return nil
}

// UpdateLoop runs Loop on root and its subtree, depth-first with parents before children.
// Each node's children are snapshotted before they are visited, so nodes attached during the pass
// run from the next frame on and released nodes are skipped.
//
// Parameters:
//   - root: the subtree root
//   - deltaTime: seconds since the previous frame
//   - viewport: current viewport size
//
// Returns:
//   - error: the first behavior error; the pass stops there
func UpdateLoop(root Node, deltaTime float64, viewport common.Size) error {
	r, ok := root.(*node)
	if !ok {
		return nil
	}
	return updateLoop(r, deltaTime, viewport)
}

func updateLoop(n *node, deltaTime float64, viewport common.Size) error {
	if n.released {
		return nil
	}
	if err := n.Loop(deltaTime, viewport); err != nil {
		return err
	}
	children := append([]*node(nil), n.children...)
	for _, c := range children {
		if err := updateLoop(c, deltaTime, viewport); err != nil {
			return err
		}
	}
	return nil
}
