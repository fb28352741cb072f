package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the default tolerance used when comparing matrices and vectors produced by the engine.
const Epsilon float32 = 1e-5

// TranslationMatrix builds a column-major translation matrix.
//
// Parameters:
//   - v: translation in the parent's space
//
// Returns:
//   - mgl32.Mat4: the translation matrix
func TranslationMatrix(v mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(v[0], v[1], v[2])
}

// RotationMatrix builds a rotation of angle radians around axis. A zero-length axis yields identity.
//
// Parameters:
//   - angle: rotation angle in radians
//   - axis: rotation axis, normalized internally
//
// Returns:
//   - mgl32.Mat4: the rotation matrix
func RotationMatrix(angle float32, axis mgl32.Vec3) mgl32.Mat4 {
	n, ok := SafeNormalize(axis)
	if !ok {
		return mgl32.Ident4()
	}
	return mgl32.HomogRotate3D(angle, n)
}

// ScaleMatrix builds a non-uniform scale matrix.
//
// Parameters:
//   - s: scale factor per axis
//
// Returns:
//   - mgl32.Mat4: the scale matrix
func ScaleMatrix(s mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Scale3D(s[0], s[1], s[2])
}

// TransformPoint applies m to the point p (w = 1) and drops the w component.
//
// Parameters:
//   - m: affine transform
//   - p: point to transform
//
// Returns:
//   - mgl32.Vec3: the transformed point
func TransformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// TransformDirection applies m to the direction d (w = 0), ignoring translation.
//
// Parameters:
//   - m: affine transform
//   - d: direction to transform
//
// Returns:
//   - mgl32.Vec3: the transformed direction
func TransformDirection(m mgl32.Mat4, d mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(d.Vec4(0)).Vec3()
}

// MatrixTranslation extracts the translation column of an affine matrix.
func MatrixTranslation(m mgl32.Mat4) mgl32.Vec3 {
	return mgl32.Vec3{m[12], m[13], m[14]}
}

// SafeNormalize normalizes v, reporting false instead of producing NaNs for a zero-length vector.
//
// Parameters:
//   - v: vector to normalize
//
// Returns:
//   - mgl32.Vec3: unit vector, or the zero vector when v has no length
//   - bool: false if v had zero length
func SafeNormalize(v mgl32.Vec3) (mgl32.Vec3, bool) {
	l := v.Len()
	if l == 0 || math.IsNaN(float64(l)) {
		return mgl32.Vec3{}, false
	}
	return v.Mul(1 / l), true
}

// RoundToInt rounds half away from zero, matching the rounding used for voxel placement.
func RoundToInt(v float32) int {
	return int(math.Round(float64(v)))
}

// Acos is a float32 arccosine that clamps its input to [-1, 1] so rounding noise never yields NaN.
func Acos(v float32) float32 {
	return float32(math.Acos(float64(mgl32.Clamp(v, -1, 1))))
}
