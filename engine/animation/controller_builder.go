package animation

// ControllerOption is a functional option for configuring a Controller during construction.
type ControllerOption func(*Controller)

// WithSpeed sets the initial time scale.
//
// Parameters:
//   - speed: multiplier applied to every frame delta
//
// Returns:
//   - ControllerOption: functional option to set the speed
func WithSpeed(speed float32) ControllerOption {
	return func(c *Controller) {
		c.speed = speed
	}
}

// WithCompletion sets the callback invoked once when the controller stops.
//
// Parameters:
//   - completion: the callback
//
// Returns:
//   - ControllerOption: functional option to set the completion
func WithCompletion(completion Completion) ControllerOption {
	return func(c *Controller) {
		c.completion = completion
	}
}
