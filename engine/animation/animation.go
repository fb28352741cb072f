// Package animation drives node properties over time. An Animation is a reusable description; a
// Controller is one running instance of it bound to a node and advanced by the node's Loop.
package animation

import (
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
	"github.com/go-gl/mathgl/mgl32"
)

// Handler applies an animation to a node.
type Handler interface {
	// Prepare runs once, on the first frame the controller advances.
	Prepare(n node.Node)
	// Update applies eased progress, usually in [0, 1].
	Update(n node.Node, progress float32)
}

// HandlerFuncs adapts a pair of functions to Handler. Either may be nil.
type HandlerFuncs struct {
	PrepareFunc func(n node.Node)
	UpdateFunc  func(n node.Node, progress float32)
}

func (h HandlerFuncs) Prepare(n node.Node) {
	if h.PrepareFunc != nil {
		h.PrepareFunc(n)
	}
}

func (h HandlerFuncs) Update(n node.Node, progress float32) {
	if h.UpdateFunc != nil {
		h.UpdateFunc(n, progress)
	}
}

// Animation describes a timed change. Make builds fresh per-run state for each controller.
type Animation struct {
	// Tag optionally names the animation for lookup.
	Tag string
	// Duration of one repetition in seconds.
	Duration float32
	// Repeat is the number of repetitions; 0 repeats forever.
	Repeat int
	// Function eases the linear progress.
	Function Function
	// Make creates the handler for one run.
	Make func(n node.Node) Handler
}

// AnimationOption is a functional option for configuring an Animation.
type AnimationOption func(*Animation)

// WithTag names the Animation.
func WithTag(tag string) AnimationOption {
	return func(a *Animation) {
		a.Tag = tag
	}
}

// WithDuration sets the duration of one repetition in seconds.
func WithDuration(d float32) AnimationOption {
	return func(a *Animation) {
		a.Duration = d
	}
}

// WithRepeat sets the repetition count. 0 repeats forever.
func WithRepeat(n int) AnimationOption {
	return func(a *Animation) {
		a.Repeat = n
	}
}

// WithFunction sets the easing function.
func WithFunction(f Function) AnimationOption {
	return func(a *Animation) {
		a.Function = f
	}
}

// New creates an Animation around maker with a one second, single run, linear default.
//
// Parameters:
//   - maker: builds the per-run handler
//   - options: functional options
//
// Returns:
//   - Animation: the description
func New(maker func(n node.Node) Handler, options ...AnimationOption) Animation {
	a := Animation{Duration: 1, Repeat: 1, Function: Linear, Make: maker}
	for _, option := range options {
		option(&a)
	}
	return a
}

// Empty is an animation that only takes time.
func Empty(options ...AnimationOption) Animation {
	return New(func(node.Node) Handler { return HandlerFuncs{} }, options...)
}

// Func calls fn with eased progress every frame.
func Func(fn func(n node.Node, progress float32), options ...AnimationOption) Animation {
	return New(func(node.Node) Handler { return HandlerFuncs{UpdateFunc: fn} }, options...)
}

// MoveFunc moves the node to the local position returned by position for each progress value.
func MoveFunc(position func(progress float32) mgl32.Vec3, options ...AnimationOption) Animation {
	return Func(func(n node.Node, p float32) {
		n.MoveTo(position(p))
	}, options...)
}

// MoveFromTo moves the node in local space from one position to another.
func MoveFromTo(from, to mgl32.Vec3, options ...AnimationOption) Animation {
	return MoveFunc(func(p float32) mgl32.Vec3 {
		return lerp(from, to, p)
	}, options...)
}

// MoveTo moves the node in local space from wherever it is when the run starts to target.
func MoveTo(target mgl32.Vec3, options ...AnimationOption) Animation {
	return New(func(n node.Node) Handler {
		from := n.LocalPosition()
		return HandlerFuncs{
			PrepareFunc: func(n node.Node) {
				from = n.LocalPosition()
			},
			UpdateFunc: func(n node.Node, p float32) {
				n.MoveTo(lerp(from, target, p))
			},
		}
	}, options...)
}

// RotateFromTo rotates the node about axis between two angles in radians.
func RotateFromTo(axis mgl32.Vec3, from, to float32, options ...AnimationOption) Animation {
	return Func(func(n node.Node, p float32) {
		n.RotateTo(from+(to-from)*p, axis)
	}, options...)
}

func lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
