package collision

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
	"github.com/Carmen-Shannon/oxy-scene/engine/voxel"
	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func newScene(t *testing.T) (*node.Arena, node.Node) {
	t.Helper()
	a := node.NewArena()
	return a, a.NewScene(node.WithName("scene"))
}

func floor(a *node.Arena, y float32) node.Node {
	return a.New(
		node.WithName("floor"),
		node.WithVoxelPoints(voxel.Unbounded),
		node.WithStaticPlanes(node.NewPlane(mgl32.Translate3D(0, y, 0), 1000, 1000)),
	)
}

func TestDynamicSymmetry(t *testing.T) {
	tests := []struct {
		name     string
		radius   float32
		a, b     mgl32.Vec3
		wantDist float32
	}{
		{"unit spheres", 1, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, 2},
		{"half spheres", 0.5, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 0.5}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, scene := newScene(t)
			na := a.New(node.WithPosition(tt.a), node.WithDynamicRadius(tt.radius))
			nb := a.New(node.WithPosition(tt.b), node.WithDynamicRadius(tt.radius))
			scene.AddSubnode(na)
			scene.AddSubnode(nb)
			scene.VoxelSystem().Loop()

			stats := NewController().Loop(scene)
			if stats.Dynamic != 2 || stats.Pairs != 1 {
				t.Fatalf("stats %+v, want 2 dynamic and 1 pair", stats)
			}
			if d := na.Position().Sub(nb.Position()).Len(); mgl32.Abs(d-tt.wantDist) > eps {
				t.Fatalf("distance %v, want %v", d, tt.wantDist)
			}
			moveA := na.Position().Sub(tt.a)
			moveB := nb.Position().Sub(tt.b)
			if moveA.Add(moveB).Len() > eps {
				t.Fatalf("displacements %v and %v are not opposite", moveA, moveB)
			}
		})
	}
}

func TestDynamicSeparatedSpheresUntouched(t *testing.T) {
	a, scene := newScene(t)
	na := a.New(node.WithDynamicRadius(0.5))
	nb := a.New(node.WithPosition(mgl32.Vec3{2, 0, 0}), node.WithDynamicRadius(0.5))
	inactive := a.New(node.WithPosition(mgl32.Vec3{0.1, 0, 0}))
	for _, n := range []node.Node{na, nb, inactive} {
		scene.AddSubnode(n)
	}
	scene.VoxelSystem().Loop()

	if stats := NewController().Loop(scene); stats.Pairs != 0 {
		t.Fatalf("stats %+v, want no pairs", stats)
	}
	if na.Position().Len() > eps || inactive.Position().Sub(mgl32.Vec3{0.1, 0, 0}).Len() > eps {
		t.Fatal("separated or inactive nodes must not move")
	}
}

func TestStaticPlaneOneSided(t *testing.T) {
	tests := []struct {
		name  string
		y     float32
		wantY float32
	}{
		{"below", -0.2, -0.2},
		{"inside band", 0.3, 0.5},
		{"above band", 0.7, 0.7},
		{"on plane", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, scene := newScene(t)
			scene.AddSubnode(floor(a, 0))
			holder := a.New(node.WithPosition(mgl32.Vec3{5, 0, 0}))
			scene.AddSubnode(holder)
			player := a.New(node.WithPosition(mgl32.Vec3{0, tt.y, 0}), node.WithDynamicRadius(0.5))
			holder.AddSubnode(player)
			scene.VoxelSystem().Loop()

			NewController().Loop(scene)
			got := player.Position()
			if mgl32.Abs(got.Y()-tt.wantY) > eps || mgl32.Abs(got.X()-5) > eps {
				t.Fatalf("position %v, want y %v", got, tt.wantY)
			}
		})
	}
}

func TestStaticPlaneRectangleBounds(t *testing.T) {
	a, scene := newScene(t)
	tile := a.New(
		node.WithVoxelPoints(voxel.At(voxel.Coordinate{})),
		node.WithStaticPlanes(node.NewPlane(mgl32.Ident4(), 1, 1)),
	)
	scene.AddSubnode(tile)
	inside := a.New(node.WithPosition(mgl32.Vec3{0.4, 0.1, -0.4}), node.WithDynamicRadius(0.5))
	outside := a.New(node.WithPosition(mgl32.Vec3{0.6, 0.1, 0.6}), node.WithDynamicRadius(0.5))
	scene.AddSubnode(inside)
	scene.AddSubnode(outside)
	scene.VoxelSystem().Loop()

	stats := NewController().Loop(scene)
	if stats.Corrections != 1 {
		t.Fatalf("stats %+v, want 1 correction", stats)
	}
	if mgl32.Abs(inside.Position().Y()-0.5) > eps {
		t.Fatal("sphere over the rectangle should be lifted")
	}
	if mgl32.Abs(outside.Position().Y()-0.1) > eps {
		t.Fatal("sphere beside the rectangle must not move")
	}
}

func TestStaticCandidatesOutsideQueryIgnored(t *testing.T) {
	a, scene := newScene(t)
	far := a.New(
		node.WithPosition(mgl32.Vec3{10, 0, 0}),
		node.WithVoxelPoints(voxel.At(voxel.Coordinate{})),
		node.WithStaticPlanes(node.NewPlane(mgl32.Translate3D(-10, 0, 0), 100, 100)),
	)
	scene.AddSubnode(far)
	player := a.New(node.WithPosition(mgl32.Vec3{0, 0.2, 0}), node.WithDynamicRadius(0.5))
	scene.AddSubnode(player)
	scene.VoxelSystem().Loop()

	stats := NewController().Loop(scene)
	if stats.Candidates != 0 || mgl32.Abs(player.Position().Y()-0.2) > eps {
		t.Fatalf("stats %+v, position %v: far plane must not be considered", stats, player.Position())
	}

	stats = NewController(WithStaticQueryPadding(10)).Loop(scene)
	if stats.Candidates != 1 || mgl32.Abs(player.Position().Y()-0.5) > eps {
		t.Fatalf("stats %+v, position %v: padded query should reach the far plane", stats, player.Position())
	}
}

func TestFloorWithGravity(t *testing.T) {
	a, scene := newScene(t)
	scene.AddSubnode(floor(a, -0.5))
	player := a.New(
		node.WithName("player"),
		node.WithPosition(mgl32.Vec3{0, 0.2, 0}),
		node.WithDynamicRadius(0.5),
		node.WithBehaviors(NewGravitation()),
	)
	scene.AddSubnode(player)
	sys := scene.VoxelSystem()
	ctrl := NewController()

	for frame := 0; frame < 600; frame++ {
		sys.Loop()
		if err := node.UpdateLoop(scene, 1.0/60, common.Size{}); err != nil {
			t.Fatal(err)
		}
		sys.Loop()
		ctrl.Loop(scene)
		if y := player.Position().Y(); y < -eps {
			t.Fatalf("frame %d: player fell through the floor to %v", frame, y)
		}
	}
	if y := player.Position().Y(); mgl32.Abs(y) > eps {
		t.Fatalf("player rests at %v, want 0", y)
	}
}

func TestGravitationStepIsCapped(t *testing.T) {
	a := node.NewArena()
	n := a.New(node.WithDynamicRadius(0.3))
	g := NewGravitation(WithAcceleration(1000))

	_ = g.Loop(n, 1, common.Size{})
	if n.Position().Y() != 0 {
		t.Fatal("first frame must only record the position")
	}
	_ = g.Loop(n, 1, common.Size{})
	if y := n.Position().Y(); mgl32.Abs(y+0.2) > eps {
		t.Fatalf("fell to %v, want the 2/3 radius cap of -0.2", y)
	}

	before := n.Position()
	_ = g.Loop(n, 0, common.Size{})
	if n.Position() != before {
		t.Fatal("zero delta must not move the node")
	}
}
