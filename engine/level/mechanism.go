package level

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
	"github.com/go-gl/mathgl/mgl32"
)

// Door slides its node along local +X between closed (0) and open (Travel).
type Door struct {
	open   bool
	speed  float32
	travel float32
}

var (
	_ node.Behavior = &Door{}
	_ Toggler       = &Door{}
)

// NewDoor creates a closed door moving at speed units per second.
func NewDoor(speed float32) *Door {
	return &Door{speed: speed, travel: 1}
}

func (d *Door) Toggle() {
	d.open = !d.open
}

// Open reports the target state, not whether the slide has finished.
func (d *Door) Open() bool {
	return d.open
}

func (d *Door) Loop(n node.Node, deltaTime float64, viewport common.Size) error {
	n.LockUpdateCoordinate(func() {
		x := slide(n.LocalPosition().X(), d.open, d.speed*float32(deltaTime), d.travel)
		n.MoveTo(mgl32.Vec3{x, 0, 0})
	})
	return nil
}

// Lift raises its platform node along local +Y between down (0) and up (Height).
type Lift struct {
	up     bool
	speed  float32
	height float32
}

var (
	_ node.Behavior = &Lift{}
	_ Toggler       = &Lift{}
)

// NewLift creates a lowered lift.
func NewLift(speed, height float32) *Lift {
	return &Lift{speed: speed, height: height}
}

func (l *Lift) Toggle() {
	l.up = !l.up
}

func (l *Lift) Up() bool {
	return l.up
}

func (l *Lift) Loop(n node.Node, deltaTime float64, viewport common.Size) error {
	n.LockUpdateCoordinate(func() {
		y := slide(n.LocalPosition().Y(), l.up, l.speed*float32(deltaTime), l.height)
		n.MoveTo(mgl32.Vec3{0, y, 0})
	})
	return nil
}

// slide moves v by step toward limit when forward, otherwise toward 0, clamped to [0, limit].
func slide(v float32, forward bool, step, limit float32) float32 {
	if forward {
		return mgl32.Clamp(v+step, 0, limit)
	}
	return mgl32.Clamp(v-step, 0, limit)
}
