package node

import (
	"github.com/Carmen-Shannon/oxy-scene/engine/voxel"
	"github.com/go-gl/mathgl/mgl32"
)

// DynamicCollisionGroup is the voxel group every node with an active dynamic collision element belongs to.
const DynamicCollisionGroup voxel.GroupID = "DynamicCollisionElement"

// Plane is a rectangular collision surface. In plane space the surface spans X in [-Size.X()/2, Size.X()/2]
// and Z in [-Size.Y()/2, Size.Y()/2] at Y = 0, with +Y as the solid side's normal.
type Plane struct {
	// Transform places the plane relative to its node.
	Transform mgl32.Mat4
	// Size is the plane extent along its local X and Z axes.
	Size mgl32.Vec2
}

// NewPlane creates a plane of the given extent placed by transform.
func NewPlane(transform mgl32.Mat4, width, depth float32) Plane {
	return Plane{Transform: transform, Size: mgl32.Vec2{width, depth}}
}

// StaticCollisionElement describes immovable geometry as a set of planes.
type StaticCollisionElement struct {
	IsActive bool
	Planes   []Plane
}

// DynamicCollisionElement describes a movable sphere.
type DynamicCollisionElement struct {
	IsActive bool
	Radius   float32
}

func (n *node) StaticCollision() StaticCollisionElement {
	return n.static
}

func (n *node) SetStaticCollision(e StaticCollisionElement) {
	n.static = e
}

func (n *node) SetStaticCollisionActive(active bool) {
	n.static.IsActive = active
}

func (n *node) AddStaticCollisionPlane(p Plane) {
	n.static.Planes = append(n.static.Planes, p)
}

func (n *node) DynamicCollision() DynamicCollisionElement {
	return n.dynamic
}

func (n *node) SetDynamicCollision(e DynamicCollisionElement) {
	was := n.dynamic.IsActive
	n.dynamic = e
	if was == e.IsActive {
		return
	}
	if e.IsActive {
		n.VoxelElement().AddGroup(DynamicCollisionGroup)
	} else if n.voxels != nil {
		n.voxels.RemoveGroup(DynamicCollisionGroup)
	}
}

func (n *node) SetDynamicCollisionActive(active bool) {
	e := n.dynamic
	e.IsActive = active
	n.SetDynamicCollision(e)
}

func (n *node) SetDynamicCollisionRadius(r float32) {
	n.dynamic.Radius = r
}
