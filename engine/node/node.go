package node

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/voxel"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultInteractionRadius is the search radius NodesWithDirection uses unless the scene root overrides it.
const DefaultInteractionRadius float32 = 1.5

type node struct {
	arena    *Arena
	handle   Handle
	name     string
	hidden   bool
	released bool

	parent   Handle
	scene    Handle
	children []*node

	first    mgl32.Mat4
	scale    mgl32.Mat4
	rotate   mgl32.Mat4
	position mgl32.Mat4
	last     mgl32.Mat4

	model         mgl32.Mat4
	modelValid    bool
	absolute      mgl32.Mat4
	absoluteValid bool

	voxels *voxel.ElementController

	// scene roots only
	system            *voxel.SystemController
	interactionRadius float32

	static  StaticCollisionElement
	dynamic DynamicCollisionElement

	animations     []Animation
	behaviors      []Behavior
	renderHandlers []RenderHandler
}

// Node is an element of a scene hierarchy. Its local transform is composed from five matrices
// (last × position × rotate × scale × first); the model and absolute transforms are cached and
// invalidated on change, and an absolute change marks the node's spatial placement dirty.
type Node interface {
	voxel.Element

	// Handle returns the generation-checked reference to this node.
	//
	// Returns:
	//   - Handle: the node handle
	Handle() Handle

	// Arena returns the arena that owns this node.
	Arena() *Arena

	// Name returns the debug name.
	Name() string

	// SetName sets the debug name.
	SetName(name string)

	// Released reports whether the node was destroyed by Arena.Release.
	Released() bool

	// Hidden reports whether rendering skips this node and its subtree.
	Hidden() bool

	// SetHidden toggles rendering of this node and its subtree.
	SetHidden(hidden bool)

	// Parent returns the parent node.
	//
	// Returns:
	//   - Node: the parent, or nil if detached or the parent was released
	Parent() Node

	// Scene returns the scene root this node belongs to. A scene root returns itself.
	//
	// Returns:
	//   - Node: the scene root, or nil if the node is not attached to a scene
	Scene() Node

	// IsSceneRoot reports whether this node was created by Arena.NewScene.
	IsSceneRoot() bool

	// Children returns a snapshot of the direct children in insertion order.
	Children() []Node

	// AddSubnode attaches child under this node, detaching it from its previous parent first.
	// The child and its subtree adopt this node's scene. Attaching a node of another arena, a scene
	// root, this node itself or one of its ancestors is a programmer error and is ignored.
	//
	// Parameters:
	//   - child: the node to attach
	AddSubnode(child Node)

	// RemoveFromParent detaches this node. The node and its subtree leave their scene.
	RemoveFromParent()

	// FindParent walks up the ancestors and returns the first one accepted by pred.
	//
	// Parameters:
	//   - pred: ancestor predicate
	//
	// Returns:
	//   - Node: the closest matching ancestor, or nil
	FindParent(pred func(Node) bool) Node

	// FirstMatrix returns the innermost local matrix.
	FirstMatrix() mgl32.Mat4
	// SetFirstMatrix replaces the innermost local matrix.
	SetFirstMatrix(m mgl32.Mat4)
	// ScaleMatrix returns the local scale matrix.
	ScaleMatrix() mgl32.Mat4
	// SetScaleMatrix replaces the local scale matrix.
	SetScaleMatrix(m mgl32.Mat4)
	// RotateMatrix returns the local rotation matrix.
	RotateMatrix() mgl32.Mat4
	// SetRotateMatrix replaces the local rotation matrix.
	SetRotateMatrix(m mgl32.Mat4)
	// PositionMatrix returns the local translation matrix.
	PositionMatrix() mgl32.Mat4
	// SetPositionMatrix replaces the local translation matrix.
	SetPositionMatrix(m mgl32.Mat4)
	// LastMatrix returns the outermost local matrix.
	LastMatrix() mgl32.Mat4
	// SetLastMatrix replaces the outermost local matrix.
	SetLastMatrix(m mgl32.Mat4)

	// ModelMatrix returns last × position × rotate × scale × first, recomputed only after a change.
	//
	// Returns:
	//   - mgl32.Mat4: the local transform relative to the parent
	ModelMatrix() mgl32.Mat4

	// Position returns the world-space origin of this node.
	Position() mgl32.Vec3

	// SetPosition moves the node so its world-space origin lands on p.
	//
	// Parameters:
	//   - p: target world position
	SetPosition(p mgl32.Vec3)

	// LocalPosition returns the translation of the position matrix.
	LocalPosition() mgl32.Vec3

	// MoveTo sets the position matrix to a translation by v.
	MoveTo(v mgl32.Vec3)

	// MoveOn composes a translation by v onto the position matrix.
	MoveOn(v mgl32.Vec3)

	// MoveGlobalOn moves the node's world origin by delta, converting it into parent space.
	//
	// Parameters:
	//   - delta: world-space displacement
	MoveGlobalOn(delta mgl32.Vec3)

	// RotateTo sets the rotation matrix to angle radians about axis.
	RotateTo(angle float32, axis mgl32.Vec3)

	// RotateOn composes a rotation of angle radians about axis onto the rotation matrix.
	RotateOn(angle float32, axis mgl32.Vec3)

	// ScaleTo sets the scale matrix.
	ScaleTo(s mgl32.Vec3)

	// ScaleOn multiplies the scale matrix by s.
	ScaleOn(s mgl32.Vec3)

	// LocalScale returns the diagonal of the scale matrix.
	LocalScale() mgl32.Vec3

	// Scale returns the world-space scale: the lengths of the absolute transform's basis vectors.
	Scale() mgl32.Vec3

	// Direction returns the world-space unit vector along the node's local +Z axis. Nodes face
	// local -Z, so this points backwards.
	Direction() mgl32.Vec3

	// VoxelElement returns the node's spatial placement, creating it on first use. A new
	// placement of a scene-attached node is registered with the scene's index immediately.
	//
	// Returns:
	//   - *voxel.ElementController: the node's controller
	VoxelElement() *voxel.ElementController

	// VoxelSystem returns the spatial index of the node's scene.
	//
	// Returns:
	//   - *voxel.SystemController: the scene index, or nil if the node has no scene
	VoxelSystem() *voxel.SystemController

	// LockUpdateCoordinate runs action with placement invalidation deferred until it returns,
	// so a node moved many times in one scope is re-bucketed once.
	//
	// Parameters:
	//   - action: the batched edit
	LockUpdateCoordinate(action func())

	// InteractionRadius returns the search radius of NodesWithDirection for this node's scene.
	InteractionRadius() float32

	// SetInteractionRadius sets the search radius on a scene root. Ignored on other nodes.
	SetInteractionRadius(r float32)

	// NodesWithDirection returns the scene nodes within the interaction radius whose bearing
	// from this node lies within angle radians of the facing axis (the negated Direction), nearest
	// first. The node itself is never included.
	//
	// Parameters:
	//   - angle: half-angle of the search cone in radians
	//
	// Returns:
	//   - []Node: matching nodes ordered by distance
	NodesWithDirection(angle float32) []Node

	// StaticCollision returns the node's static collision element. The Planes slice is shared.
	StaticCollision() StaticCollisionElement
	// SetStaticCollision replaces the node's static collision element.
	SetStaticCollision(e StaticCollisionElement)
	// SetStaticCollisionActive toggles the static collision element.
	SetStaticCollisionActive(active bool)
	// AddStaticCollisionPlane appends a plane to the static collision element.
	AddStaticCollisionPlane(p Plane)

	// DynamicCollision returns the node's dynamic collision element.
	DynamicCollision() DynamicCollisionElement
	// SetDynamicCollision replaces the node's dynamic collision element. Activation changes
	// move the node into or out of DynamicCollisionGroup.
	SetDynamicCollision(e DynamicCollisionElement)
	// SetDynamicCollisionActive toggles the dynamic collision element.
	SetDynamicCollisionActive(active bool)
	// SetDynamicCollisionRadius sets the sphere radius of the dynamic collision element.
	SetDynamicCollisionRadius(r float32)

	// AddAnimation attaches an animation. Finished animations detach themselves during Loop.
	AddAnimation(a Animation)
	// RemoveAnimation detaches an animation.
	//
	// Returns:
	//   - error: ErrAnimationNotFound if a is not attached
	RemoveAnimation(a Animation) error
	// Animations returns a snapshot of the attached animations.
	Animations() []Animation

	// AddBehavior attaches a per-frame behavior.
	AddBehavior(b Behavior)
	// RemoveBehavior detaches a behavior.
	//
	// Returns:
	//   - error: ErrBehaviorNotFound if b is not attached
	RemoveBehavior(b Behavior) error
	// Behaviors returns a snapshot of the attached behaviors.
	Behaviors() []Behavior

	// AddRenderHandler attaches a render handler.
	AddRenderHandler(h RenderHandler)
	// RemoveRenderHandler detaches a render handler.
	//
	// Returns:
	//   - error: ErrRenderHandlerNotFound if h is not attached
	RemoveRenderHandler(h RenderHandler) error
	// RenderHandlers returns a snapshot of the attached render handlers.
	RenderHandlers() []RenderHandler

	// Loop advances the node's animations, then runs its behaviors in attachment order.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous frame
	//   - viewport: current viewport size
	//
	// Returns:
	//   - error: the first behavior error
	Loop(deltaTime float64, viewport common.Size) error
}

var _ Node = &node{}

func newNode(a *Arena) *node {
	id := mgl32.Ident4()
	return &node{
		arena:    a,
		first:    id,
		scale:    id,
		rotate:   id,
		position: id,
		last:     id,
		dynamic:  DynamicCollisionElement{Radius: 1},
	}
}

func (n *node) Handle() Handle {
	return n.handle
}

func (n *node) Arena() *Arena {
	return n.arena
}

func (n *node) Name() string {
	return n.name
}

func (n *node) SetName(name string) {
	n.name = name
}

func (n *node) Released() bool {
	return n.released
}

func (n *node) Hidden() bool {
	return n.hidden
}

func (n *node) SetHidden(hidden bool) {
	n.hidden = hidden
}

func (n *node) IsSceneRoot() bool {
	return n.system != nil
}

func (n *node) InteractionRadius() float32 {
	if root := n.sceneNode(); root != nil {
		return root.interactionRadius
	}
	return DefaultInteractionRadius
}

func (n *node) SetInteractionRadius(r float32) {
	if !common.Assert(n.IsSceneRoot(), "interaction radius set on non-root node %q", n.name) {
		return
	}
	n.interactionRadius = r
}

func (n *node) VoxelElement() *voxel.ElementController {
	if n.voxels == nil {
		n.voxels = voxel.NewElementController(n)
		if sys := n.VoxelSystem(); sys != nil {
			sys.AddController(n.voxels)
		}
	}
	return n.voxels
}

func (n *node) VoxelSystem() *voxel.SystemController {
	if root := n.sceneNode(); root != nil {
		return root.system
	}
	return nil
}

func (n *node) LockUpdateCoordinate(action func()) {
	n.VoxelElement().LockNeedUpdate(action)
}

func (n *node) sceneNode() *node {
	return n.arena.resolve(n.scene)
}

func (n *node) parentNode() *node {
	return n.arena.resolve(n.parent)
}
