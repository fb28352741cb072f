package level

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
	"github.com/Carmen-Shannon/oxy-scene/engine/voxel"
	"github.com/go-gl/mathgl/mgl32"
)

// FloorSize is the extent of the level's floor plane along X and Z.
const FloorSize float32 = 1000

var yAxis = mgl32.Vec3{0, 1, 0}

// Level is a built layout. Root is detached until the caller adds it to a scene.
type Level struct {
	Root   node.Node
	Layout Layout
	Walls  []node.Node
	Doors  []*Door
	Lifts  []*Lift
	// Meshes holds the static geometry by MeshWalls, MeshFloors and MeshCeilings, in Root's space.
	Meshes map[string]*common.Geometry
}

// Build creates the level subtree in arena.
//
// Parameters:
//   - a: the arena of the destination scene
//   - layout: the parsed map
//   - options: functional options for mechanism speeds
//
// Returns:
//   - *Level: the level and handles to its mechanisms
func Build(a *node.Arena, layout Layout, options ...LevelBuilderOption) *Level {
	b := &builder{doorSpeed: 1, liftSpeed: 1, liftHeight: 1}
	for _, option := range options {
		option(b)
	}

	lvl := &Level{
		Layout: layout,
		Root: a.New(
			node.WithName("level"),
			node.WithVoxelPoints(voxel.Unbounded),
			node.WithStaticPlanes(node.NewPlane(common.TranslationMatrix(mgl32.Vec3{0, -0.5, 0}), FloorSize, FloorSize)),
		),
	}

	for z := 0; z < layout.Height(); z++ {
		for x := 0; x < layout.Width(z); x++ {
			t, _ := layout.At(x, z)
			switch t {
			case TileWall:
				if w := b.wall(a, layout, x, z); w != nil {
					lvl.Root.AddSubnode(w)
					lvl.Walls = append(lvl.Walls, w)
				}
			case TileDoor:
				container, door := b.door(a, layout, x, z)
				lvl.Root.AddSubnode(container)
				lvl.Doors = append(lvl.Doors, door)
			case TileLift:
				container, lift := b.lift(a, x, z)
				lvl.Root.AddSubnode(container)
				lvl.Lifts = append(lvl.Lifts, lift)
			}
		}
	}
	lvl.Meshes = buildMeshes(layout, lvl.Walls)
	return lvl
}

type builder struct {
	doorSpeed  float32
	liftSpeed  float32
	liftHeight float32
}

// wall creates one node per wall cell carrying a face for every side that borders a walkable cell.
// Cells enclosed on all sides get no node.
func (b *builder) wall(a *node.Arena, layout Layout, x, z int) node.Node {
	var planes []node.Plane
	face := func(dx, dz, angle float32) {
		planes = append(planes, verticalPlane(dx, dz, angle))
	}
	if x > 0 && !layout.isWall(x-1, z) {
		face(-0.5, 0, -math.Pi/2)
	}
	if x+1 < layout.Width(z) && !layout.isWall(x+1, z) {
		face(0.5, 0, math.Pi/2)
	}
	if z > 0 && !layout.isWall(x, z-1) {
		face(0, -0.5, -math.Pi)
	}
	if z+1 < layout.Height() && !layout.isWall(x, z+1) {
		face(0, 0.5, 0)
	}
	if len(planes) == 0 {
		return nil
	}
	return a.New(
		node.WithName(fmt.Sprintf("wall %d,%d", x, z)),
		node.WithPosition(cell(x, z)),
		node.WithVoxelPoints(voxel.At(voxel.Coordinate{})),
		node.WithStaticPlanes(planes...),
	)
}

// door creates a usable container holding a sliding panel. A door between walls above and below
// is turned to block the X axis.
func (b *builder) door(a *node.Arena, layout Layout, x, z int) (node.Node, *Door) {
	door := NewDoor(b.doorSpeed)
	panel := a.New(
		node.WithName(fmt.Sprintf("door %d,%d", x, z)),
		node.WithVoxelPoints(voxel.At(voxel.Coordinate{})),
		node.WithStaticPlanes(verticalPlane(0, 0.1, 0), verticalPlane(0, -0.1, -math.Pi)),
		node.WithBehaviors(door),
	)
	opts := []node.NodeBuilderOption{
		node.WithName(fmt.Sprintf("door container %d,%d", x, z)),
		node.WithPosition(cell(x, z)),
		node.WithVoxelPoints(voxel.At(voxel.Coordinate{})),
		node.WithBehaviors(NewActivator(door)),
	}
	if layout.isWall(x, z-1) && layout.isWall(x, z+1) {
		opts = append(opts, node.WithRotation(math.Pi/2, yAxis))
	}
	container := a.New(opts...)
	container.AddSubnode(panel)
	return container, door
}

// lift creates a usable container holding a platform whose top face starts flush with the floor.
func (b *builder) lift(a *node.Arena, x, z int) (node.Node, *Lift) {
	lift := NewLift(b.liftSpeed, b.liftHeight)
	platform := a.New(
		node.WithName(fmt.Sprintf("lift platform %d,%d", x, z)),
		node.WithVoxelPoints(voxel.At(voxel.Coordinate{})),
		node.WithStaticPlanes(node.NewPlane(common.TranslationMatrix(mgl32.Vec3{0, -0.5, 0}), 1, 1)),
		node.WithBehaviors(lift),
	)
	container := a.New(
		node.WithName(fmt.Sprintf("lift %d,%d", x, z)),
		node.WithPosition(cell(x, z)),
		node.WithVoxelPoints(voxel.At(voxel.Coordinate{})),
		node.WithBehaviors(NewActivator(lift)),
	)
	container.AddSubnode(platform)
	return container, lift
}

// verticalPlane builds a unit wall face offset by (dx, 0, dz) whose solid side faces the direction
// angle radians around +Y from +Z.
func verticalPlane(dx, dz, angle float32) node.Plane {
	stand := common.RotationMatrix(math.Pi/2, mgl32.Vec3{1, 0, 0})
	turn := common.RotationMatrix(angle, yAxis)
	place := common.TranslationMatrix(mgl32.Vec3{dx, 0, dz})
	return node.NewPlane(place.Mul4(turn).Mul4(stand), 1, 1)
}

func cell(x, z int) mgl32.Vec3 {
	return mgl32.Vec3{float32(x), 0, float32(z)}
}
