package voxel

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Element is anything the index can place: it only needs a world transform.
// Elements are compared by identity, so implementations must be pointer types.
type Element interface {
	AbsoluteTransform() mgl32.Mat4
}

// Position returns the translation of an element's absolute transform.
func Position(e Element) mgl32.Vec3 {
	return common.MatrixTranslation(e.AbsoluteTransform())
}

// GroupID names a non-spatial bucket, e.g. every dynamic collider.
type GroupID string

// elementSet is an insertion-ordered set. Removal swaps the last element into the hole, which
// keeps iteration deterministic for a given sequence of edits.
type elementSet struct {
	items []Element
	index map[Element]int
}

func (s *elementSet) add(e Element) {
	if s.index == nil {
		s.index = make(map[Element]int)
	}
	if _, ok := s.index[e]; ok {
		return
	}
	s.index[e] = len(s.items)
	s.items = append(s.items, e)
}

func (s *elementSet) remove(e Element) {
	i, ok := s.index[e]
	if !ok {
		return
	}
	last := len(s.items) - 1
	if i != last {
		s.items[i] = s.items[last]
		s.index[s.items[i]] = i
	}
	s.items[last] = nil
	s.items = s.items[:last]
	delete(s.index, e)
}

func (s *elementSet) contains(e Element) bool {
	_, ok := s.index[e]
	return ok
}

// Voxel is a single grid cell bucket.
type Voxel struct {
	point Point
	set   elementSet
}

// Point returns the cell this bucket is keyed by.
func (v *Voxel) Point() Point {
	return v.point
}

// Elements returns the bucket contents in insertion order. The slice must not be modified.
func (v *Voxel) Elements() []Element {
	return v.set.items
}

// Len returns the number of elements in the cell.
func (v *Voxel) Len() int {
	return len(v.set.items)
}

// Contains reports whether e is bucketed in this cell.
func (v *Voxel) Contains(e Element) bool {
	return v.set.contains(e)
}

// Group is a named, non-spatial bucket.
type Group struct {
	id  GroupID
	set elementSet
}

// ID returns the group's identifier.
func (g *Group) ID() GroupID {
	return g.id
}

// Elements returns the group members in insertion order. The slice must not be modified.
func (g *Group) Elements() []Element {
	return g.set.items
}

// Len returns the number of members.
func (g *Group) Len() int {
	return len(g.set.items)
}

// Contains reports whether e is a member.
func (g *Group) Contains(e Element) bool {
	return g.set.contains(e)
}
