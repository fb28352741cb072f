package node

import (
	"github.com/Carmen-Shannon/oxy-scene/engine/voxel"
	"github.com/go-gl/mathgl/mgl32"
)

// NodeBuilderOption is a functional option for configuring a Node during construction.
type NodeBuilderOption func(*node)

// WithName sets the debug name of the Node.
//
// Parameters:
//   - name: the name used in logs and errors
//
// Returns:
//   - NodeBuilderOption: functional option to set the name
func WithName(name string) NodeBuilderOption {
	return func(n *node) {
		n.name = name
	}
}

// WithPosition sets the initial position matrix.
//
// Parameters:
//   - p: translation relative to the parent
//
// Returns:
//   - NodeBuilderOption: functional option to set the position
func WithPosition(p mgl32.Vec3) NodeBuilderOption {
	return func(n *node) {
		n.MoveTo(p)
	}
}

// WithRotation sets the initial rotation matrix.
//
// Parameters:
//   - angle: rotation in radians
//   - axis: rotation axis
//
// Returns:
//   - NodeBuilderOption: functional option to set the rotation
func WithRotation(angle float32, axis mgl32.Vec3) NodeBuilderOption {
	return func(n *node) {
		n.RotateTo(angle, axis)
	}
}

// WithScale sets the initial scale matrix.
func WithScale(s mgl32.Vec3) NodeBuilderOption {
	return func(n *node) {
		n.ScaleTo(s)
	}
}

// WithFirstMatrix sets the innermost local matrix, typically a model-space correction.
func WithFirstMatrix(m mgl32.Mat4) NodeBuilderOption {
	return func(n *node) {
		n.SetFirstMatrix(m)
	}
}

// WithHidden hides the Node and its subtree from rendering.
func WithHidden(hidden bool) NodeBuilderOption {
	return func(n *node) {
		n.hidden = hidden
	}
}

// WithVoxelPoints sets the local sample points of the Node's spatial placement.
//
// Parameters:
//   - points: local points; voxel.Unbounded registers the node globally
//
// Returns:
//   - NodeBuilderOption: functional option to set the points
func WithVoxelPoints(points ...voxel.Point) NodeBuilderOption {
	return func(n *node) {
		n.VoxelElement().SetPoints(points...)
	}
}

// WithVoxelGroups adds the Node to the given voxel groups.
func WithVoxelGroups(ids ...voxel.GroupID) NodeBuilderOption {
	return func(n *node) {
		for _, id := range ids {
			n.VoxelElement().AddGroup(id)
		}
	}
}

// WithStaticPlanes gives the Node an active static collision element made of planes.
//
// Parameters:
//   - planes: collision planes in node space
//
// Returns:
//   - NodeBuilderOption: functional option to set the static collision element
func WithStaticPlanes(planes ...Plane) NodeBuilderOption {
	return func(n *node) {
		n.SetStaticCollision(StaticCollisionElement{IsActive: true, Planes: planes})
	}
}

// WithDynamicRadius gives the Node an active dynamic collision sphere.
//
// Parameters:
//   - radius: sphere radius
//
// Returns:
//   - NodeBuilderOption: functional option to set the dynamic collision element
func WithDynamicRadius(radius float32) NodeBuilderOption {
	return func(n *node) {
		n.SetDynamicCollision(DynamicCollisionElement{IsActive: true, Radius: radius})
	}
}

// WithBehaviors attaches per-frame behaviors in order.
func WithBehaviors(behaviors ...Behavior) NodeBuilderOption {
	return func(n *node) {
		for _, b := range behaviors {
			n.AddBehavior(b)
		}
	}
}

// WithRenderHandlers attaches render handlers in order.
func WithRenderHandlers(handlers ...RenderHandler) NodeBuilderOption {
	return func(n *node) {
		for _, h := range handlers {
			n.AddRenderHandler(h)
		}
	}
}

// WithInteractionRadius sets the NodesWithDirection search radius. Only meaningful on scene roots.
func WithInteractionRadius(r float32) NodeBuilderOption {
	return func(n *node) {
		n.SetInteractionRadius(r)
	}
}
