package node

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/go-gl/mathgl/mgl32"
)

func (n *node) NodesWithDirection(angle float32) []Node {
	sys := n.VoxelSystem()
	if sys == nil {
		return nil
	}
	abs := n.AbsoluteTransform()
	position := common.MatrixTranslation(abs)
	direction := common.TransformPoint(abs, mgl32.Vec3{0, 0, 1}).Sub(position)

	var out []Node
	for _, e := range sys.ElementsWithDirection(position, direction, n.InteractionRadius(), angle) {
		other, ok := e.(*node)
		if !ok || other == n || other.released {
			continue
		}
		out = append(out, other)
	}
	return out
}
