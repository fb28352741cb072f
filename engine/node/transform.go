package node

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/go-gl/mathgl/mgl32"
)

func (n *node) FirstMatrix() mgl32.Mat4    { return n.first }
func (n *node) ScaleMatrix() mgl32.Mat4    { return n.scale }
func (n *node) RotateMatrix() mgl32.Mat4   { return n.rotate }
func (n *node) PositionMatrix() mgl32.Mat4 { return n.position }
func (n *node) LastMatrix() mgl32.Mat4     { return n.last }

func (n *node) SetFirstMatrix(m mgl32.Mat4)    { n.setMatrix(&n.first, m) }
func (n *node) SetScaleMatrix(m mgl32.Mat4)    { n.setMatrix(&n.scale, m) }
func (n *node) SetRotateMatrix(m mgl32.Mat4)   { n.setMatrix(&n.rotate, m) }
func (n *node) SetPositionMatrix(m mgl32.Mat4) { n.setMatrix(&n.position, m) }
func (n *node) SetLastMatrix(m mgl32.Mat4)     { n.setMatrix(&n.last, m) }

// setMatrix stores m in slot. Writing an equal matrix keeps every cache.
func (n *node) setMatrix(slot *mgl32.Mat4, m mgl32.Mat4) {
	if *slot == m {
		return
	}
	*slot = m
	n.modelValid = false
	n.invalidateAbsolute()
}

// invalidateAbsolute drops the cached absolute transform of n and its subtree and marks their
// placements dirty. An already invalid node implies an invalid subtree, so the walk stops there.
func (n *node) invalidateAbsolute() {
	if !n.absoluteValid {
		return
	}
	n.absoluteValid = false
	if n.voxels != nil {
		n.voxels.SetNeedPointsUpdate()
	}
	for _, c := range n.children {
		c.invalidateAbsolute()
	}
}

func (n *node) ModelMatrix() mgl32.Mat4 {
	if !n.modelValid {
		n.model = n.last.Mul4(n.position).Mul4(n.rotate).Mul4(n.scale).Mul4(n.first)
		n.modelValid = true
	}
	return n.model
}

// AbsoluteTransform returns parent.AbsoluteTransform × ModelMatrix, or ModelMatrix for a node
// without a parent.
func (n *node) AbsoluteTransform() mgl32.Mat4 {
	if n.absoluteValid {
		return n.absolute
	}
	m := n.ModelMatrix()
	if p := n.parentNode(); p != nil {
		m = p.AbsoluteTransform().Mul4(m)
	}
	n.absolute = m
	n.absoluteValid = true
	return m
}

// parentFrame is the transform a change of the position matrix is expressed in.
func (n *node) parentFrame() mgl32.Mat4 {
	frame := n.last
	if p := n.parentNode(); p != nil {
		frame = p.AbsoluteTransform().Mul4(frame)
	}
	return frame
}

func (n *node) Position() mgl32.Vec3 {
	return common.MatrixTranslation(n.AbsoluteTransform())
}

func (n *node) SetPosition(p mgl32.Vec3) {
	n.MoveGlobalOn(p.Sub(n.Position()))
}

func (n *node) LocalPosition() mgl32.Vec3 {
	return common.MatrixTranslation(n.position)
}

func (n *node) MoveTo(v mgl32.Vec3) {
	n.SetPositionMatrix(common.TranslationMatrix(v))
}

func (n *node) MoveOn(v mgl32.Vec3) {
	n.SetPositionMatrix(common.TranslationMatrix(v).Mul4(n.position))
}

func (n *node) MoveGlobalOn(delta mgl32.Vec3) {
	if delta.ApproxEqual(mgl32.Vec3{}) {
		return
	}
	n.MoveOn(common.TransformDirection(n.parentFrame().Inv(), delta))
}

func (n *node) RotateTo(angle float32, axis mgl32.Vec3) {
	n.SetRotateMatrix(common.RotationMatrix(angle, axis))
}

func (n *node) RotateOn(angle float32, axis mgl32.Vec3) {
	n.SetRotateMatrix(common.RotationMatrix(angle, axis).Mul4(n.rotate))
}

func (n *node) ScaleTo(s mgl32.Vec3) {
	n.SetScaleMatrix(common.ScaleMatrix(s))
}

func (n *node) ScaleOn(s mgl32.Vec3) {
	n.SetScaleMatrix(common.ScaleMatrix(s).Mul4(n.scale))
}

func (n *node) LocalScale() mgl32.Vec3 {
	return mgl32.Vec3{n.scale.At(0, 0), n.scale.At(1, 1), n.scale.At(2, 2)}
}

func (n *node) Scale() mgl32.Vec3 {
	abs := n.AbsoluteTransform()
	return mgl32.Vec3{abs.Col(0).Vec3().Len(), abs.Col(1).Vec3().Len(), abs.Col(2).Vec3().Len()}
}

func (n *node) Direction() mgl32.Vec3 {
	d, _ := common.SafeNormalize(common.TransformDirection(n.AbsoluteTransform(), mgl32.Vec3{0, 0, 1}))
	return d
}
