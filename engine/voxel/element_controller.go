package voxel

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-scene/common"
)

// ElementController is the per-element adapter between an owner and the index.
// It tracks local sample points and named groups, derives world-space points from the owner's
// absolute transform on demand, and reports dirtiness to the SystemController it is registered with.
// Nothing is recomputed eagerly: dirty controllers wait for the next SystemController.Loop.
type ElementController struct {
	owner  Element
	system *SystemController

	points map[Point]struct{}
	groups map[GroupID]struct{}

	// realPoints is the world-space placement computed at the last points update.
	realPoints map[Point]struct{}

	// savedPoints and savedGroups mirror what the system currently has bucketed for this controller.
	savedPoints map[Point]struct{}
	savedGroups map[GroupID]struct{}

	needPoints bool
	needGroups bool

	lockDepth   int
	lockPending bool
}

// NewElementController creates a controller for owner with no points and no groups.
//
// Parameters:
//   - owner: the element whose absolute transform places the sample points
//
// Returns:
//   - *ElementController: the new, unregistered controller
func NewElementController(owner Element) *ElementController {
	return &ElementController{
		owner:       owner,
		points:      make(map[Point]struct{}),
		groups:      make(map[GroupID]struct{}),
		realPoints:  make(map[Point]struct{}),
		savedPoints: make(map[Point]struct{}),
		savedGroups: make(map[GroupID]struct{}),
	}
}

// Owner returns the element this controller places.
func (c *ElementController) Owner() Element {
	return c.owner
}

// System returns the index the controller is registered with, or nil.
func (c *ElementController) System() *SystemController {
	return c.system
}

// Points returns the local sample points, unbounded first, then ordered by X, Y, Z.
func (c *ElementController) Points() []Point {
	return sortedPoints(c.points)
}

// RealPoints returns the world-space points from the last update, in the same order as Points.
func (c *ElementController) RealPoints() []Point {
	return sortedPoints(c.realPoints)
}

// SetPoints replaces the local sample points. An identical set is a no-op.
//
// Parameters:
//   - points: the new local-space points; Unbounded registers the element globally
func (c *ElementController) SetPoints(points ...Point) {
	next := make(map[Point]struct{}, len(points))
	for _, p := range points {
		next[p] = struct{}{}
	}
	if equalSets(next, c.points) {
		return
	}
	c.points = next
	c.SetNeedPointsUpdate()
}

// AddPoint inserts one local sample point.
func (c *ElementController) AddPoint(p Point) {
	if _, ok := c.points[p]; ok {
		return
	}
	c.points[p] = struct{}{}
	c.SetNeedPointsUpdate()
}

// RemovePoint removes one local sample point.
func (c *ElementController) RemovePoint(p Point) {
	if _, ok := c.points[p]; !ok {
		return
	}
	delete(c.points, p)
	c.SetNeedPointsUpdate()
}

// Groups returns the group identifiers in lexical order.
func (c *ElementController) Groups() []GroupID {
	out := make([]GroupID, 0, len(c.groups))
	for g := range c.groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// HasGroup reports whether id is in the controller's group set.
func (c *ElementController) HasGroup(id GroupID) bool {
	_, ok := c.groups[id]
	return ok
}

// SetGroups replaces the group set. An identical set is a no-op.
func (c *ElementController) SetGroups(ids ...GroupID) {
	next := make(map[GroupID]struct{}, len(ids))
	for _, id := range ids {
		next[id] = struct{}{}
	}
	if equalSets(next, c.groups) {
		return
	}
	c.groups = next
	c.setNeedGroupsUpdate()
}

// AddGroup inserts one group identifier.
func (c *ElementController) AddGroup(id GroupID) {
	if _, ok := c.groups[id]; ok {
		return
	}
	c.groups[id] = struct{}{}
	c.setNeedGroupsUpdate()
}

// RemoveGroup removes one group identifier.
func (c *ElementController) RemoveGroup(id GroupID) {
	if _, ok := c.groups[id]; !ok {
		return
	}
	delete(c.groups, id)
	c.setNeedGroupsUpdate()
}

// Dirty reports whether the controller is waiting for a flush.
func (c *ElementController) Dirty() bool {
	return c.needPoints || c.needGroups
}

// Locked reports whether a LockNeedUpdate scope is open.
func (c *ElementController) Locked() bool {
	return c.lockDepth > 0
}

// SetNeedPointsUpdate marks the world points stale and queues the controller with its system.
// It is idempotent while already dirty. Inside a LockNeedUpdate scope the request is remembered
// and replayed once when the outermost scope exits.
func (c *ElementController) SetNeedPointsUpdate() {
	if c.lockDepth > 0 {
		c.lockPending = true
		return
	}
	if c.needPoints {
		return
	}
	c.needPoints = true
	if c.system != nil {
		c.system.setNeedUpdate(c)
	}
}

func (c *ElementController) setNeedGroupsUpdate() {
	if c.needGroups {
		return
	}
	c.needGroups = true
	if c.system != nil {
		c.system.setNeedUpdate(c)
	}
}

// LockNeedUpdate runs action with points invalidation deferred. Scopes nest; the deferred
// invalidation is committed once when the outermost scope returns, even if action panics.
//
// Parameters:
//   - action: the batched edit
func (c *ElementController) LockNeedUpdate(action func()) {
	c.lockDepth++
	defer func() {
		c.lockDepth--
		if c.lockDepth == 0 && c.lockPending {
			c.lockPending = false
			c.SetNeedPointsUpdate()
		}
	}()
	action()
}

// UpdateIfNeeded commits pending point and group changes.
func (c *ElementController) UpdateIfNeeded() {
	if c.needPoints {
		c.updatePoints()
	}
	if c.needGroups {
		c.updateGroups()
	}
}

func (c *ElementController) updatePoints() {
	c.needPoints = false
	next := c.computeRealPoints()
	if equalSets(next, c.realPoints) {
		return
	}
	c.realPoints = next
	if c.system != nil {
		c.system.didUpdatePoints(c)
	}
}

func (c *ElementController) updateGroups() {
	c.needGroups = false
	if c.system != nil {
		c.system.didUpdateGroups(c)
	}
}

func (c *ElementController) computeRealPoints() map[Point]struct{} {
	out := make(map[Point]struct{}, len(c.points))
	if len(c.points) == 0 {
		return out
	}
	transform := c.owner.AbsoluteTransform()
	for p := range c.points {
		if !p.Bounded {
			out[Unbounded] = struct{}{}
			continue
		}
		out[AtVec(common.TransformPoint(transform, p.Coordinate.Vec3()))] = struct{}{}
	}
	return out
}

func equalSets[K comparable](a, b map[K]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func sortedPoints(set map[Point]struct{}) []Point {
	out := make([]Point, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Bounded != b.Bounded {
			return !a.Bounded
		}
		if a.Coordinate.X != b.Coordinate.X {
			return a.Coordinate.X < b.Coordinate.X
		}
		if a.Coordinate.Y != b.Coordinate.Y {
			return a.Coordinate.Y < b.Coordinate.Y
		}
		return a.Coordinate.Z < b.Coordinate.Z
	})
	return out
}
