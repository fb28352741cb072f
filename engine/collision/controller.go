// Package collision resolves overlaps between dynamic collision spheres and pushes them out of
// static collision planes. It reads the scene's spatial index and must run after the index flush.
package collision

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
	"github.com/Carmen-Shannon/oxy-scene/engine/voxel"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultStaticQueryPadding is added to a sphere's radius when searching for static candidates.
const DefaultStaticQueryPadding float32 = 1

// Stats summarizes one collision pass.
type Stats struct {
	// Dynamic is the number of active dynamic nodes processed.
	Dynamic int
	// Pairs is the number of dynamic pairs pushed apart.
	Pairs int
	// Candidates is the number of static candidate nodes examined.
	Candidates int
	// Corrections is the number of plane corrections applied.
	Corrections int
}

// Controller is the per-frame collision pass of a scene.
type Controller interface {
	// Loop resolves dynamic-vs-dynamic overlaps, then dynamic-vs-static overlaps, for every node
	// in the scene's DynamicCollisionGroup. Nodes are moved once each at the end of each phase.
	//
	// Parameters:
	//   - scene: the scene root whose index is queried
	//
	// Returns:
	//   - Stats: counters for this pass
	Loop(scene node.Node) Stats

	// StaticQueryPadding returns the cell padding added to each sphere radius for static queries.
	StaticQueryPadding() float32
}

type controller struct {
	staticQueryPadding float32
}

var _ Controller = &controller{}

// NewController creates a collision Controller.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Controller: the new controller
func NewController(options ...ControllerBuilderOption) Controller {
	c := &controller{staticQueryPadding: DefaultStaticQueryPadding}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *controller) StaticQueryPadding() float32 {
	return c.staticQueryPadding
}

func (c *controller) Loop(scene node.Node) Stats {
	var stats Stats
	sys := scene.VoxelSystem()
	if sys == nil {
		return stats
	}
	dynamic := activeDynamic(sys.GroupElements(node.DynamicCollisionGroup))
	stats.Dynamic = len(dynamic)
	if len(dynamic) == 0 {
		return stats
	}

	stats.Pairs = resolveDynamic(dynamic)
	for _, n := range dynamic {
		candidates, corrections := c.resolveStatic(sys, n)
		stats.Candidates += candidates
		stats.Corrections += corrections
	}
	return stats
}

func activeDynamic(elements []voxel.Element) []node.Node {
	out := make([]node.Node, 0, len(elements))
	for _, e := range elements {
		n, ok := e.(node.Node)
		if !ok || n.Released() || !n.DynamicCollision().IsActive {
			continue
		}
		out = append(out, n)
	}
	return out
}

// resolveDynamic sweeps every ordered pair. Each push updates both accumulated positions, so later
// pairs see earlier corrections. Coincident centers have no separating axis and are left alone.
func resolveDynamic(nodes []node.Node) int {
	start := make([]mgl32.Vec3, len(nodes))
	pos := make([]mgl32.Vec3, len(nodes))
	for i, n := range nodes {
		start[i] = n.Position()
		pos[i] = start[i]
	}

	pairs := 0
	for i, a := range nodes {
		ra := a.DynamicCollision().Radius
		for j, b := range nodes {
			if i == j {
				continue
			}
			delta := pos[i].Sub(pos[j])
			overlap := (delta.Len() - (ra + b.DynamicCollision().Radius)) / 2
			if overlap >= 0 {
				continue
			}
			dir, ok := common.SafeNormalize(delta)
			if !ok {
				continue
			}
			push := dir.Mul(-overlap)
			pos[i] = pos[i].Add(push)
			pos[j] = pos[j].Sub(push)
			pairs++
		}
	}

	for i, n := range nodes {
		n.MoveGlobalOn(pos[i].Sub(start[i]))
	}
	return pairs
}

// resolveStatic tests n's sphere center against the planes of every static candidate near it.
// A blocking plane lifts the center to exactly radius above it; later planes see the lifted center.
func (c *controller) resolveStatic(sys *voxel.SystemController, n node.Node) (int, int) {
	start := n.Position()
	radius := n.DynamicCollision().Radius

	candidates := sys.Filter(voxel.CoordinateOf(start), radius+c.staticQueryPadding, func(e voxel.Element) bool {
		other, ok := e.(node.Node)
		return ok && other != n && !other.Released() && other.StaticCollision().IsActive
	})

	pos := start
	corrections := 0
	for _, e := range candidates {
		other := e.(node.Node)
		frame := other.AbsoluteTransform()
		for _, plane := range other.StaticCollision().Planes {
			if corrected, ok := blockByPlane(frame.Mul4(plane.Transform), plane.Size, pos, radius); ok {
				pos = corrected
				corrections++
			}
		}
	}

	n.MoveGlobalOn(pos.Sub(start))
	return len(candidates), corrections
}

// blockByPlane reports whether p lies over the plane rectangle within radius on its solid side,
// and if so returns p lifted to exactly radius above the plane.
func blockByPlane(world mgl32.Mat4, size mgl32.Vec2, p mgl32.Vec3, radius float32) (mgl32.Vec3, bool) {
	local := common.TransformPoint(world.Inv(), p)
	if abs(local.X()) >= size.X()/2 || abs(local.Z()) >= size.Y()/2 {
		return p, false
	}
	if local.Y() <= 0 || local.Y() >= radius {
		return p, false
	}
	local[1] = radius
	return common.TransformPoint(world, local), true
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
