package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	node node.Node

	fov    float32
	aspect float32
	near   float32
	far    float32

	projectionMatrix        mgl32.Mat4
	inverseProjectionMatrix mgl32.Mat4
}

// Camera defines the interface for a scene camera.
// The camera is a node in the scene hierarchy: its view matrix is the inverse of the node's
// absolute transform, so moving or parenting the node moves the camera. It looks down local -Z.
type Camera interface {
	// Node returns the camera's scene node.
	//
	// Returns:
	//   - node.Node: the node carrying the camera transform
	Node() node.Node

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ViewMatrix returns the inverse of the camera node's absolute transform.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current perspective projection.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns ProjectionMatrix × ViewMatrix.
	//
	// Returns:
	//   - mgl32.Mat4: the combined view-projection matrix
	ViewProjectionMatrix() mgl32.Mat4

	// InverseProjectionMatrix returns the inverse of the current projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the inverse projection matrix
	InverseProjectionMatrix() mgl32.Mat4

	// Update matches the aspect ratio to the viewport. Should be called once per frame before rendering.
	//
	// Parameters:
	//   - viewport: the render target size
	Update(viewport common.Size)

	// LookAt rotates the camera node so it faces target from its current world position.
	//
	// Parameters:
	//   - target: world-space point to face
	//   - up: world-space up vector
	LookAt(target, up mgl32.Vec3)

	// SetFov sets the field of view in radians and recomputes the projection.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes the projection.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance and recomputes the projection.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes the projection.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings carried by n.
//
// Parameters:
//   - n: the node carrying the camera transform; must not be nil
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(n node.Node, options ...CameraBuilderOption) Camera {
	if n == nil {
		panic("camera: node must not be nil")
	}
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		node:   n,
		fov:    45.0 * (math.Pi / 180.0), // radians
		aspect: 1.0,
		near:   0.1,
		far:    100.0,
	}
	for _, option := range options {
		option(c)
	}
	c.updateProjection()
	return c
}

func (c *cameraImpl) Node() node.Node {
	return c.node
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	return c.node.AbsoluteTransform().Inv()
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

func (c *cameraImpl) InverseProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inverseProjectionMatrix
}

func (c *cameraImpl) Update(viewport common.Size) {
	if viewport.Width <= 0 || viewport.Height <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if aspect := viewport.Aspect(); aspect != c.aspect {
		c.aspect = aspect
		c.updateProjection()
	}
}

func (c *cameraImpl) LookAt(target, up mgl32.Vec3) {
	eye := c.node.Position()
	if target.ApproxEqual(eye) {
		return
	}
	world := mgl32.LookAtV(eye, target, up).Inv()

	frame := c.node.LastMatrix()
	if p := c.node.Parent(); p != nil {
		frame = p.AbsoluteTransform().Mul4(frame)
	}
	rotation := frame.Inv().Mul4(world)
	rotation.SetCol(3, mgl32.Vec4{0, 0, 0, 1})
	c.node.SetRotateMatrix(rotation)
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateProjection()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateProjection()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateProjection()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateProjection()
}

// updateProjection recalculates the projection and inverse projection matrices.
// Caller must hold the mutex.
func (c *cameraImpl) updateProjection() {
	c.projectionMatrix = mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
	c.inverseProjectionMatrix = c.projectionMatrix.Inv()
}
