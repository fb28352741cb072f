package voxel

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

type testElement struct {
	name      string
	transform mgl32.Mat4
}

func newTestElement(name string, x, y, z float32) *testElement {
	return &testElement{name: name, transform: mgl32.Translate3D(x, y, z)}
}

func (e *testElement) AbsoluteTransform() mgl32.Mat4 {
	return e.transform
}

func (e *testElement) moveTo(x, y, z float32) {
	e.transform = mgl32.Translate3D(x, y, z)
}

func TestCoordinateOf(t *testing.T) {
	tests := []struct {
		in   mgl32.Vec3
		want Coordinate
	}{
		{mgl32.Vec3{0, 0, 0}, Coordinate{0, 0, 0}},
		{mgl32.Vec3{0.49, -0.49, 1.51}, Coordinate{0, 0, 2}},
		{mgl32.Vec3{0.5, -0.5, 2.5}, Coordinate{1, -1, 3}},
		{mgl32.Vec3{-3.7, 10.2, -0.1}, Coordinate{-4, 10, 0}},
	}
	for _, tt := range tests {
		if got := CoordinateOf(tt.in); got != tt.want {
			t.Errorf("CoordinateOf(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAddControllerBucketsRealPoints(t *testing.T) {
	s := NewSystemController()
	e := newTestElement("a", 3, 0, -2)
	c := NewElementController(e)
	c.SetPoints(At(Coordinate{}), At(Coordinate{X: 1}), Unbounded)
	s.AddController(c)

	for _, p := range []Point{At(Coordinate{3, 0, -2}), At(Coordinate{4, 0, -2}), Unbounded} {
		v, ok := s.Voxel(p)
		if !ok || !v.Contains(e) {
			t.Fatalf("expected element in %v", p)
		}
	}
	if c.Dirty() {
		t.Fatal("controller should be clean after registration")
	}
}

func TestIndexConsistencyAfterMoves(t *testing.T) {
	s := NewSystemController()
	elements := []*testElement{
		newTestElement("a", 0, 0, 0),
		newTestElement("b", 1, 0, 0),
		newTestElement("c", 5, 2, 1),
	}
	controllers := make([]*ElementController, len(elements))
	for i, e := range elements {
		controllers[i] = NewElementController(e)
		controllers[i].SetPoints(At(Coordinate{}))
		s.AddController(controllers[i])
	}

	moves := [][3]float32{{2, 0, 0}, {2, 0, 0}, {-1, -1, 4}}
	for i, m := range moves {
		elements[i].moveTo(m[0], m[1], m[2])
		controllers[i].SetNeedPointsUpdate()
		controllers[i].SetNeedPointsUpdate()
	}
	if err := s.RemoveController(controllers[2]); err != nil {
		t.Fatal(err)
	}
	if n := s.Loop(); n != 2 {
		t.Fatalf("Loop committed %d controllers, want 2", n)
	}

	for p, v := range s.voxels {
		want := map[Element]bool{}
		for _, c := range controllers {
			if !s.Registered(c) {
				continue
			}
			for _, rp := range c.RealPoints() {
				if rp == p {
					want[c.Owner()] = true
				}
			}
		}
		if len(want) != v.Len() {
			t.Fatalf("cell %v holds %d elements, want %d", p, v.Len(), len(want))
		}
		for _, e := range v.Elements() {
			if !want[e] {
				t.Fatalf("cell %v holds unexpected element %v", p, e.(*testElement).name)
			}
		}
	}
	if _, ok := s.Voxel(At(Coordinate{})); ok {
		t.Fatal("origin cell should be gone after both elements moved away")
	}
	v, ok := s.Voxel(At(Coordinate{X: 2}))
	if !ok || v.Len() != 2 {
		t.Fatal("expected both moved elements in (2,0,0)")
	}
}

func TestLoopIsIdempotent(t *testing.T) {
	s := NewSystemController()
	e := newTestElement("a", 0, 0, 0)
	c := NewElementController(e)
	c.SetPoints(At(Coordinate{}))
	c.AddGroup("players")
	s.AddController(c)

	e.moveTo(4, 0, 0)
	c.SetNeedPointsUpdate()
	s.Loop()
	before := s.Dump()
	if n := s.Loop(); n != 0 {
		t.Fatalf("second Loop committed %d controllers, want 0", n)
	}
	if after := s.Dump(); after != before {
		t.Fatalf("second Loop changed the index:\n%s\n%s", before, after)
	}
}

func TestGroupsFollowController(t *testing.T) {
	s := NewSystemController()
	e := newTestElement("a", 0, 0, 0)
	c := NewElementController(e)
	s.AddController(c)

	c.AddGroup("dynamic")
	if s.Group("dynamic").Contains(e) {
		t.Fatal("group membership must wait for Loop")
	}
	s.Loop()
	if !s.Group("dynamic").Contains(e) {
		t.Fatal("expected element in group after Loop")
	}

	c.RemoveGroup("dynamic")
	s.Loop()
	if len(s.GroupElements("dynamic")) != 0 {
		t.Fatal("expected group to be empty")
	}
	if s.Stats().Groups != 0 {
		t.Fatal("emptied group should be deleted")
	}
	if s.GroupElements("missing") != nil {
		t.Fatal("missing group should be empty")
	}
}

func TestLockNeedUpdateDefersUntilOutermostScope(t *testing.T) {
	s := NewSystemController()
	e := newTestElement("a", 0, 0, 0)
	c := NewElementController(e)
	c.SetPoints(At(Coordinate{}))
	s.AddController(c)

	c.LockNeedUpdate(func() {
		e.moveTo(1, 0, 0)
		c.SetNeedPointsUpdate()
		c.LockNeedUpdate(func() {
			e.moveTo(2, 0, 0)
			c.SetNeedPointsUpdate()
		})
		if s.Stats().Pending != 0 || c.Dirty() {
			t.Fatal("inner scope exit must not commit while the outer scope is open")
		}
	})
	if s.Stats().Pending != 1 || !c.Dirty() {
		t.Fatal("outermost scope exit should queue exactly one update")
	}
	s.Loop()
	if v, ok := s.Voxel(At(Coordinate{X: 2})); !ok || !v.Contains(e) {
		t.Fatal("expected final position to be bucketed")
	}
}

func TestForEachVoxelsNeighbourhood(t *testing.T) {
	s := NewSystemController()
	near := newTestElement("near", 2, 0, 0)
	far := newTestElement("far", 3, 0, 0)
	global := newTestElement("global", 100, 0, 0)
	for _, e := range []*testElement{near, far} {
		c := NewElementController(e)
		c.SetPoints(At(Coordinate{}))
		s.AddController(c)
	}
	gc := NewElementController(global)
	gc.SetPoints(Unbounded)
	s.AddController(gc)

	tests := []struct {
		radius float32
		want   map[string]bool
	}{
		{0.4, map[string]bool{"global": true}},
		{1, map[string]bool{"near": true, "global": true}},
		{1.6, map[string]bool{"near": true, "far": true, "global": true}},
	}
	for _, tt := range tests {
		got := map[string]bool{}
		s.ForEachVoxels(Coordinate{}, tt.radius, func(v *Voxel) bool {
			for _, e := range v.Elements() {
				got[e.(*testElement).name] = true
			}
			return true
		})
		if len(got) != len(tt.want) {
			t.Fatalf("radius %v: got %v, want %v", tt.radius, got, tt.want)
		}
		for name := range tt.want {
			if !got[name] {
				t.Fatalf("radius %v: missing %s", tt.radius, name)
			}
		}
	}

	visited := 0
	s.ForEachVoxels(Coordinate{}, 2, func(v *Voxel) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Fatalf("visited %d cells after early stop, want 1", visited)
	}
}

func TestRemoveControllerNotFound(t *testing.T) {
	s := NewSystemController()
	c := NewElementController(newTestElement("a", 0, 0, 0))
	if err := s.RemoveController(c); !errors.Is(err, ErrControllerNotFound) {
		t.Fatalf("got %v, want ErrControllerNotFound", err)
	}
	s.AddController(c)
	if err := s.RemoveController(c); err != nil {
		t.Fatal(err)
	}
	if err := s.RemoveController(c); !errors.Is(err, ErrControllerNotFound) {
		t.Fatalf("got %v, want ErrControllerNotFound", err)
	}
}

func TestElementsWithDirection(t *testing.T) {
	s := NewSystemController()
	elements := []*testElement{
		newTestElement("ahead-far", 0, 0, -1.2),
		newTestElement("ahead-near", 0, 0, -0.6),
		newTestElement("behind", 0, 0, 1),
		newTestElement("too-far", 0, 0, -3),
		newTestElement("self", 0, 0, 0),
	}
	for _, e := range elements {
		c := NewElementController(e)
		c.SetPoints(At(Coordinate{}))
		s.AddController(c)
	}

	got := s.ElementsWithDirection(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, 1.5, math.Pi/2)
	if len(got) != 2 {
		t.Fatalf("got %d elements, want 2", len(got))
	}
	if got[0].(*testElement).name != "ahead-near" || got[1].(*testElement).name != "ahead-far" {
		t.Fatalf("unexpected order: %s, %s", got[0].(*testElement).name, got[1].(*testElement).name)
	}
}

func TestRemovedControllerLeavesWorklist(t *testing.T) {
	s := NewSystemController()
	e := newTestElement("a", 0, 0, 0)
	c := NewElementController(e)
	c.SetPoints(At(Coordinate{}))
	s.AddController(c)

	e.moveTo(1, 0, 0)
	c.SetNeedPointsUpdate()
	if err := s.RemoveController(c); err != nil {
		t.Fatal(err)
	}
	if s.Stats().Pending != 0 {
		t.Fatal("removed controller should leave the worklist")
	}
	s.AddController(c)
	e.moveTo(2, 0, 0)
	c.SetNeedPointsUpdate()
	if got := s.Loop(); got != 1 {
		t.Fatalf("Loop committed %d controllers, want 1", got)
	}
	if v, ok := s.Voxel(At(Coordinate{X: 2})); !ok || !v.Contains(e) {
		t.Fatal("re-added controller should be bucketed at its new cell")
	}
}
