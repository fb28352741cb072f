package collision

// ControllerBuilderOption is a functional option for configuring a Controller during construction.
type ControllerBuilderOption func(*controller)

// WithStaticQueryPadding sets the cell padding added to a sphere's radius when gathering static candidates.
//
// Parameters:
//   - padding: extra query radius in cells
//
// Returns:
//   - ControllerBuilderOption: functional option to set the padding
func WithStaticQueryPadding(padding float32) ControllerBuilderOption {
	return func(c *controller) {
		c.staticQueryPadding = padding
	}
}
