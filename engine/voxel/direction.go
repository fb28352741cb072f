package voxel

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ElementsWithDirection returns the elements closer than radius to position whose bearing lies
// within angle of direction, nearest first. The bearing test is
// acos(dot(normalize(direction), normalize(-delta))) < angle with delta = element - position,
// so direction is the reverse of the facing axis. Elements exactly at position are skipped.
//
// Parameters:
//   - position: query origin in world space
//   - direction: reference axis in world space
//   - radius: maximum distance, also used as the cell query radius
//   - angle: maximum bearing in radians
//
// Returns:
//   - []Element: matching elements sorted by ascending distance
func (s *SystemController) ElementsWithDirection(position, direction mgl32.Vec3, radius, angle float32) []Element {
	dir, ok := common.SafeNormalize(direction)
	if !ok {
		return nil
	}
	distances := make(map[Element]float32)
	out := s.Filter(CoordinateOf(position), radius, func(e Element) bool {
		delta := Position(e).Sub(position)
		dist := delta.Len()
		if dist == 0 || dist >= radius {
			return false
		}
		if common.Acos(dir.Dot(delta.Mul(-1/dist))) >= angle {
			return false
		}
		distances[e] = dist
		return true
	})
	sort.SliceStable(out, func(i, j int) bool {
		return distances[out[i]] < distances[out[j]]
	})
	return out
}
