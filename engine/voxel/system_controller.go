package voxel

import (
	"errors"
	"math"

	"github.com/Carmen-Shannon/oxy-scene/common"
)

// ErrControllerNotFound is returned when removing a controller that is not registered with the system.
var ErrControllerNotFound = errors.New("voxel: controller not registered")

// SystemController is the spatial index. It maps grid cells to Voxel buckets (with a reserved
// unbounded cell) and group identifiers to Group buckets. Membership always equals each registered
// controller's last-flushed real points and groups; stale memberships are removed before new ones
// are added. Not safe for concurrent use.
type SystemController struct {
	voxels      map[Point]*Voxel
	groups      map[GroupID]*Group
	controllers map[*ElementController]struct{}

	pending    []*ElementController
	pendingSet map[*ElementController]struct{}
}

// Stats is a snapshot of index size.
type Stats struct {
	// Voxels is the number of non-empty cells, including the unbounded cell.
	Voxels int
	// Groups is the number of group buckets currently held.
	Groups int
	// Controllers is the number of registered controllers.
	Controllers int
	// Pending is the number of controllers waiting for the next Loop.
	Pending int
}

// NewSystemController creates an empty index.
//
// Returns:
//   - *SystemController: the new index
func NewSystemController() *SystemController {
	return &SystemController{
		voxels:      make(map[Point]*Voxel),
		groups:      make(map[GroupID]*Group),
		controllers: make(map[*ElementController]struct{}),
		pendingSet:  make(map[*ElementController]struct{}),
	}
}

// AddController registers c, computing its world points immediately and bucketing it.
// A controller registered with another system is moved here.
//
// Parameters:
//   - c: the controller to register
func (s *SystemController) AddController(c *ElementController) {
	if c.system == s {
		return
	}
	if c.system != nil {
		_ = c.system.RemoveController(c)
	}
	c.system = s
	s.controllers[c] = struct{}{}

	c.realPoints = c.computeRealPoints()
	c.needPoints = false
	c.needGroups = false
	s.addInVoxels(c)
	s.addInGroups(c)
}

// RemoveController unregisters c and removes it from every cell and group.
//
// Parameters:
//   - c: the controller to remove
//
// Returns:
//   - error: ErrControllerNotFound if c is not registered here
func (s *SystemController) RemoveController(c *ElementController) error {
	if c.system != s {
		return ErrControllerNotFound
	}
	s.removeFromVoxels(c)
	s.removeFromGroups(c)
	delete(s.controllers, c)
	if _, ok := s.pendingSet[c]; ok {
		delete(s.pendingSet, c)
		s.pending, _ = common.RemoveFirst(s.pending, c)
	}
	c.system = nil
	return nil
}

// Loop drains the update worklist, committing every dirty controller once. Controllers dirtied
// while the worklist is being drained are committed in the same call.
//
// Returns:
//   - int: the number of controllers committed
func (s *SystemController) Loop() int {
	n := 0
	for len(s.pending) > 0 {
		batch := s.pending
		s.pending = nil
		clear(s.pendingSet)
		for _, c := range batch {
			if c.system != s {
				continue
			}
			c.UpdateIfNeeded()
			n++
		}
	}
	return n
}

// Voxel returns the bucket for p.
//
// Returns:
//   - *Voxel: the bucket, or nil
//   - bool: false if no element is bucketed at p
func (s *SystemController) Voxel(p Point) (*Voxel, bool) {
	v, ok := s.voxels[p]
	return v, ok
}

// Group returns the bucket for id, creating an empty one on first use. A bucket is dropped when
// its last member leaves, so callers look it up again after each Loop.
func (s *SystemController) Group(id GroupID) *Group {
	g, ok := s.groups[id]
	if !ok {
		g = &Group{id: id}
		s.groups[id] = g
	}
	return g
}

// GroupElements returns the members of id without creating the group.
func (s *SystemController) GroupElements(id GroupID) []Element {
	g, ok := s.groups[id]
	if !ok {
		return nil
	}
	return g.Elements()
}

// Registered reports whether c is registered with this system.
func (s *SystemController) Registered(c *ElementController) bool {
	_, ok := s.controllers[c]
	return ok
}

// ForEachVoxels visits every existing cell within a Chebyshev distance of ceil(radius + 0.5)
// around center, then the unbounded cell. The neighbourhood is a cube, deliberately coarse.
// Iteration stops as soon as fn returns false.
//
// Parameters:
//   - center: the query cell
//   - radius: query radius in cells
//   - fn: visitor; return false to stop
func (s *SystemController) ForEachVoxels(center Coordinate, radius float32, fn func(*Voxel) bool) {
	r := int(math.Ceil(float64(radius) + 0.5))
	for x := -r; x <= r; x++ {
		for y := -r; y <= r; y++ {
			for z := -r; z <= r; z++ {
				v, ok := s.voxels[At(center.Offset(x, y, z))]
				if !ok {
					continue
				}
				if !fn(v) {
					return
				}
			}
		}
	}
	if v, ok := s.voxels[Unbounded]; ok {
		fn(v)
	}
}

// Filter collects the distinct elements around center accepted by pred, in visit order.
//
// Parameters:
//   - center: the query cell
//   - radius: query radius in cells
//   - pred: element predicate
//
// Returns:
//   - []Element: the matching elements
func (s *SystemController) Filter(center Coordinate, radius float32, pred func(Element) bool) []Element {
	var seen elementSet
	s.ForEachVoxels(center, radius, func(v *Voxel) bool {
		for _, e := range v.Elements() {
			if seen.contains(e) {
				continue
			}
			if pred(e) {
				seen.add(e)
			}
		}
		return true
	})
	return seen.items
}

// Stats returns the current index size.
func (s *SystemController) Stats() Stats {
	return Stats{
		Voxels:      len(s.voxels),
		Groups:      len(s.groups),
		Controllers: len(s.controllers),
		Pending:     len(s.pending),
	}
}

// Dump renders the cell and group occupancy for debug logging.
func (s *SystemController) Dump() string {
	cells := make(map[string]int, len(s.voxels))
	for p, v := range s.voxels {
		cells[p.String()] = v.Len()
	}
	groups := make(map[string]int, len(s.groups))
	for id, g := range s.groups {
		groups[string(id)] = g.Len()
	}
	return common.Dump(s.Stats(), cells, groups)
}

func (s *SystemController) setNeedUpdate(c *ElementController) {
	if _, ok := s.pendingSet[c]; ok {
		return
	}
	s.pendingSet[c] = struct{}{}
	s.pending = append(s.pending, c)
}

func (s *SystemController) didUpdatePoints(c *ElementController) {
	s.removeFromVoxels(c)
	s.addInVoxels(c)
}

func (s *SystemController) didUpdateGroups(c *ElementController) {
	s.removeFromGroups(c)
	s.addInGroups(c)
}

func (s *SystemController) removeFromVoxels(c *ElementController) {
	for p := range c.savedPoints {
		v, ok := s.voxels[p]
		if !ok {
			continue
		}
		v.set.remove(c.owner)
		if v.Len() == 0 {
			delete(s.voxels, p)
		}
	}
	c.savedPoints = make(map[Point]struct{})
}

func (s *SystemController) addInVoxels(c *ElementController) {
	for _, p := range sortedPoints(c.realPoints) {
		v, ok := s.voxels[p]
		if !ok {
			v = &Voxel{point: p}
			s.voxels[p] = v
		}
		v.set.add(c.owner)
	}
	c.savedPoints = make(map[Point]struct{}, len(c.realPoints))
	for p := range c.realPoints {
		c.savedPoints[p] = struct{}{}
	}
}

func (s *SystemController) removeFromGroups(c *ElementController) {
	for id := range c.savedGroups {
		g, ok := s.groups[id]
		if !ok {
			continue
		}
		g.set.remove(c.owner)
		if g.Len() == 0 {
			delete(s.groups, id)
		}
	}
	c.savedGroups = make(map[GroupID]struct{})
}

func (s *SystemController) addInGroups(c *ElementController) {
	for _, id := range c.Groups() {
		s.Group(id).set.add(c.owner)
	}
	c.savedGroups = make(map[GroupID]struct{}, len(c.groups))
	for id := range c.groups {
		c.savedGroups[id] = struct{}{}
	}
}
