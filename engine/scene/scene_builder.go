package scene

import (
	"github.com/Carmen-Shannon/oxy-scene/engine/camera"
	"github.com/Carmen-Shannon/oxy-scene/engine/collision"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithArena makes the scene allocate its root and camera from an existing arena, so nodes built
// beforehand can be attached.
//
// Parameters:
//   - a: the arena
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithArena(a *node.Arena) SceneBuilderOption {
	return func(s *scene) {
		s.arena = a
	}
}

// WithNodes attaches nodes under the root once it exists. The nodes must come from the scene's arena.
//
// Parameters:
//   - nodes: the nodes to attach
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithNodes(nodes ...node.Node) SceneBuilderOption {
	return func(s *scene) {
		s.pending = append(s.pending, nodes...)
	}
}

// WithCollisionController replaces the default collision pass.
func WithCollisionController(c collision.Controller) SceneBuilderOption {
	return func(s *scene) {
		s.collision = c
	}
}

// WithInteractionRadius sets the search radius of NodesWithDirection for this scene.
func WithInteractionRadius(r float32) SceneBuilderOption {
	return func(s *scene) {
		s.rootOpts = append(s.rootOpts, node.WithInteractionRadius(r))
	}
}

// WithCameraOptions configures the main camera.
func WithCameraOptions(options ...camera.CameraBuilderOption) SceneBuilderOption {
	return func(s *scene) {
		s.cameraOpts = append(s.cameraOpts, options...)
	}
}
