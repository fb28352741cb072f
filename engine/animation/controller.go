package animation

import (
	"math"

	"github.com/Carmen-Shannon/oxy-scene/engine/node"
)

// StopAction decides which progress a stopped animation leaves the node at.
type StopAction int

const (
	// SaveProgress leaves the node where it is.
	SaveProgress StopAction = iota
	// ToEndProgress applies progress 1.
	ToEndProgress
	// ToStartProgress applies progress 0.
	ToStartProgress
)

// Completion is called once when a controller stops. finished is true when the animation ran out
// of repetitions rather than being stopped.
type Completion func(finished bool, action StopAction)

// Controller is one run of an Animation on one node. It starts paused.
type Controller struct {
	tag        string
	node       node.Node
	handler    Handler
	function   Function
	duration   float32
	repeat     int
	speed      float32
	current    float32
	paused     bool
	prepared   bool
	stopped    bool
	completion Completion
}

var _ node.Animation = &Controller{}

// NewController binds a to n. The controller is paused and not attached to the node.
//
// Parameters:
//   - n: the animated node
//   - a: the animation description
//   - options: functional options
//
// Returns:
//   - *Controller: the paused controller
func NewController(n node.Node, a Animation, options ...ControllerOption) *Controller {
	c := &Controller{
		tag:      a.Tag,
		node:     n,
		handler:  a.Make(n),
		function: a.Function,
		duration: a.Duration,
		repeat:   a.Repeat,
		speed:    1,
		paused:   true,
	}
	if c.function == nil {
		c.function = Linear
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Run binds a to n, attaches the controller to the node and starts it.
//
// Parameters:
//   - n: the animated node
//   - a: the animation description
//   - options: functional options
//
// Returns:
//   - *Controller: the playing controller
func Run(n node.Node, a Animation, options ...ControllerOption) *Controller {
	c := NewController(n, a, options...)
	n.AddAnimation(c)
	c.Play()
	return c
}

// Tag returns the animation tag.
func (c *Controller) Tag() string {
	return c.tag
}

// Play resumes the controller.
func (c *Controller) Play() {
	c.paused = false
}

// Pause suspends the controller without detaching it.
func (c *Controller) Pause() {
	c.paused = true
}

// Paused reports whether the controller is paused.
func (c *Controller) Paused() bool {
	return c.paused
}

// Stopped reports whether the controller has stopped or finished.
func (c *Controller) Stopped() bool {
	return c.stopped
}

// Speed returns the time scale.
func (c *Controller) Speed() float32 {
	return c.speed
}

// SetSpeed sets the time scale.
func (c *Controller) SetSpeed(speed float32) {
	c.speed = speed
}

// Progress returns the linear progress of the current repetition.
func (c *Controller) Progress() float32 {
	if c.duration <= 0 {
		return 1
	}
	return c.current / c.duration
}

// Stop ends the run. The node detaches the controller on its next Loop.
//
// Parameters:
//   - action: the progress to leave the node at
func (c *Controller) Stop(action StopAction) {
	c.stop(false, action)
}

// Loop advances the controller by deltaTime scaled by Speed.
//
// Returns:
//   - bool: false once the controller has stopped
func (c *Controller) Loop(n node.Node, deltaTime float32) bool {
	if c.stopped {
		return false
	}
	if c.paused {
		return true
	}
	c.current += deltaTime * c.speed
	c.step()
	return !c.stopped
}

func (c *Controller) setCurrentTime(t float32) {
	c.current = t
}

func (c *Controller) prepare() {
	if !c.prepared {
		c.prepared = true
		c.handler.Prepare(c.node)
	}
}

// finish prepares the controller if needed and applies its end value in one go.
func (c *Controller) finish() {
	if c.stopped {
		return
	}
	c.prepare()
	c.current = c.duration
	c.handler.Update(c.node, 1)
	c.stop(true, ToEndProgress)
}

func (c *Controller) step() {
	if c.stopped {
		return
	}
	c.prepare()
	if c.duration <= 0 {
		c.current = c.duration
		c.handler.Update(c.node, c.function(1))
		c.stop(true, ToEndProgress)
		return
	}
	if c.current <= c.duration {
		c.handler.Update(c.node, c.function(c.current/c.duration))
		return
	}

	laps := float32(math.Floor(float64(c.current / c.duration)))
	if c.repeat > 0 {
		c.repeat -= int(laps)
		if c.repeat <= 0 {
			c.current = c.duration
			c.handler.Update(c.node, c.function(1))
			c.stop(true, ToEndProgress)
			return
		}
	}
	c.current -= laps * c.duration
	c.handler.Update(c.node, c.function(c.current/c.duration))
}

func (c *Controller) stop(finished bool, action StopAction) {
	if c.stopped {
		return
	}
	c.stopped = true
	switch action {
	case ToEndProgress:
		if c.current != c.duration {
			c.handler.Update(c.node, 1)
		}
	case ToStartProgress:
		if c.current != 0 {
			c.handler.Update(c.node, 0)
		}
	}
	if c.completion != nil {
		c.completion(finished, action)
	}
}
