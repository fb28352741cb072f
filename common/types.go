// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Size is a viewport or screen resolution in pixels.
type Size struct {
	// Width is the horizontal extent.
	Width float32
	// Height is the vertical extent.
	Height float32
}

// Aspect returns Width / Height, or 1 when Height is zero.
func (s Size) Aspect() float32 {
	if s.Height == 0 {
		return 1
	}
	return s.Width / s.Height
}

// BoneWeights binds a vertex to up to four bones of a skeleton.
type BoneWeights struct {
	// Indices are the bone slots in the owning skeleton.
	Indices [4]uint32
	// Weights are the matching blend weights. They are expected to sum to 1.
	Weights [4]float32
}

// Vertex is a single vertex produced by an asset importer.
type Vertex struct {
	// Position is the model-space vertex position.
	Position mgl32.Vec3
	// UV is the texture coordinate.
	UV mgl32.Vec2
	// Bones is nil for static geometry.
	Bones *BoneWeights
}

// Geometry is the flat vertex/index output the engine consumes from importers.
// Parsing the source format is the importer's job; the engine only validates and forwards it.
type Geometry struct {
	// Vertices is the flat vertex array.
	Vertices []Vertex
	// Indices references Vertices in triangle-list order. Empty means Vertices is already a triangle list.
	Indices []uint32
	// BoneCount is the number of bones the skinned vertices may reference. Zero for static geometry.
	BoneCount int
}

// Skinned reports whether any vertex carries bone weights.
func (g *Geometry) Skinned() bool {
	for i := range g.Vertices {
		if g.Vertices[i].Bones != nil {
			return true
		}
	}
	return false
}

// Validate checks that the index and bone arrays are consistent with the vertex array.
// A mismatched bone array is a programmer error and additionally trips Assert.
//
// Returns:
//   - error: the first inconsistency found, or nil
func (g *Geometry) Validate() error {
	n := uint32(len(g.Vertices))
	for i, idx := range g.Indices {
		if idx >= n {
			return errors.Errorf("index %d references vertex %d of %d", i, idx, n)
		}
	}
	if len(g.Indices)%3 != 0 {
		return errors.Errorf("index count %d is not a multiple of 3", len(g.Indices))
	}
	for i := range g.Vertices {
		b := g.Vertices[i].Bones
		if b == nil {
			continue
		}
		for _, bone := range b.Indices {
			if int(bone) >= g.BoneCount {
				Assert(false, "vertex %d references bone %d of %d", i, bone, g.BoneCount)
				return errors.Errorf("vertex %d references bone %d of %d", i, bone, g.BoneCount)
			}
		}
	}
	return nil
}
