package level

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh names in Level.Meshes.
const (
	MeshWalls    = "walls"
	MeshFloors   = "floors"
	MeshCeilings = "ceilings"
)

var quadUV = [4]mgl32.Vec2{{0, 0}, {0, 1}, {1, 1}, {1, 0}}

// appendQuad adds the rectangle a-b-c-d as two triangles.
func appendQuad(g *common.Geometry, a, b, c, d mgl32.Vec3) {
	base := uint32(len(g.Vertices))
	for i, p := range [4]mgl32.Vec3{a, b, c, d} {
		g.Vertices = append(g.Vertices, common.Vertex{Position: p, UV: quadUV[i]})
	}
	g.Indices = append(g.Indices, base, base+1, base+2, base+2, base+3, base)
}

// appendCellQuad adds a horizontal unit quad centred on cell (x, z) at height y.
func appendCellQuad(g *common.Geometry, x, z int, y float32) {
	fx, fz := float32(x), float32(z)
	appendQuad(g,
		mgl32.Vec3{fx - 0.5, y, fz - 0.5},
		mgl32.Vec3{fx - 0.5, y, fz + 0.5},
		mgl32.Vec3{fx + 0.5, y, fz + 0.5},
		mgl32.Vec3{fx + 0.5, y, fz - 0.5},
	)
}

// appendPlaneQuad adds the rectangle a collision plane covers, placed by world.
func appendPlaneQuad(g *common.Geometry, world mgl32.Mat4, size mgl32.Vec2) {
	hx, hz := size.X()/2, size.Y()/2
	corner := func(x, z float32) mgl32.Vec3 {
		return common.TransformPoint(world, mgl32.Vec3{x, 0, z})
	}
	appendQuad(g, corner(-hx, -hz), corner(-hx, hz), corner(hx, hz), corner(hx, -hz))
}

// buildMeshes produces the static level geometry in level space: a floor and ceiling tile for
// every walkable cell and one quad per exposed wall face.
func buildMeshes(layout Layout, walls []node.Node) map[string]*common.Geometry {
	floors, ceilings, faces := &common.Geometry{}, &common.Geometry{}, &common.Geometry{}
	for z := 0; z < layout.Height(); z++ {
		for x := 0; x < layout.Width(z); x++ {
			switch t, _ := layout.At(x, z); t {
			case TileWall:
			case TileLift:
				// The platform is the floor here.
				appendCellQuad(ceilings, x, z, 0.5)
			default:
				appendCellQuad(floors, x, z, -0.5)
				appendCellQuad(ceilings, x, z, 0.5)
			}
		}
	}
	for _, w := range walls {
		model := w.ModelMatrix()
		for _, p := range w.StaticCollision().Planes {
			appendPlaneQuad(faces, model.Mul4(p.Transform), p.Size)
		}
	}
	return map[string]*common.Geometry{
		MeshWalls:    faces,
		MeshFloors:   floors,
		MeshCeilings: ceilings,
	}
}
