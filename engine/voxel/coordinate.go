package voxel

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Coordinate is an integer grid cell. Equality and map hashing are by value.
type Coordinate struct {
	X, Y, Z int
}

// CoordinateOf rounds each axis of v to the nearest integer.
//
// Parameters:
//   - v: a world or local space position
//
// Returns:
//   - Coordinate: the containing cell
func CoordinateOf(v mgl32.Vec3) Coordinate {
	return Coordinate{
		X: common.RoundToInt(v[0]),
		Y: common.RoundToInt(v[1]),
		Z: common.RoundToInt(v[2]),
	}
}

// Vec3 returns the cell centre as a float vector.
func (c Coordinate) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(c.X), float32(c.Y), float32(c.Z)}
}

// Offset returns c shifted by the given per-axis deltas.
func (c Coordinate) Offset(dx, dy, dz int) Coordinate {
	return Coordinate{X: c.X + dx, Y: c.Y + dy, Z: c.Z + dz}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.X, c.Y, c.Z)
}

// Point is an optional Coordinate. The zero Point is Unbounded: an element registered with it
// lands in the reserved global cell that every spatial query visits.
type Point struct {
	Coordinate Coordinate
	Bounded    bool
}

// Unbounded is the global placement point.
var Unbounded = Point{}

// At wraps c as a bounded Point.
func At(c Coordinate) Point {
	return Point{Coordinate: c, Bounded: true}
}

// AtVec rounds v into a bounded Point.
func AtVec(v mgl32.Vec3) Point {
	return At(CoordinateOf(v))
}

func (p Point) String() string {
	if !p.Bounded {
		return "unbounded"
	}
	return p.Coordinate.String()
}
