package animation

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func step(t *testing.T, n node.Node, frames int, dt float64) {
	t.Helper()
	for i := 0; i < frames; i++ {
		if err := n.Loop(dt, common.Size{}); err != nil {
			t.Fatal(err)
		}
	}
}

func TestMoveToReachesTargetAndDetaches(t *testing.T) {
	a := node.NewArena()
	n := a.New(node.WithPosition(mgl32.Vec3{1, 0, 0}))
	var finished, called bool
	Run(n, MoveTo(mgl32.Vec3{3, 0, 0}, WithDuration(1)), WithCompletion(func(f bool, action StopAction) {
		called, finished = true, f
	}))

	step(t, n, 1, 0.5)
	if got := n.LocalPosition(); !got.ApproxEqualThreshold(mgl32.Vec3{2, 0, 0}, eps) {
		t.Fatalf("halfway position %v, want (2,0,0)", got)
	}
	step(t, n, 2, 0.5)
	if got := n.LocalPosition(); !got.ApproxEqualThreshold(mgl32.Vec3{3, 0, 0}, eps) {
		t.Fatalf("final position %v, want (3,0,0)", got)
	}
	if !called || !finished {
		t.Fatal("completion should report a finished run")
	}
	if len(n.Animations()) != 0 {
		t.Fatal("finished controller should be detached")
	}
}

func TestMoveToStartsFromPositionAtFirstFrame(t *testing.T) {
	a := node.NewArena()
	n := a.New()
	c := NewController(n, MoveTo(mgl32.Vec3{0, 0, 4}, WithDuration(2)))
	n.AddAnimation(c)
	n.MoveTo(mgl32.Vec3{0, 0, 2})

	step(t, n, 1, 1)
	if !n.LocalPosition().ApproxEqual(mgl32.Vec3{0, 0, 2}) {
		t.Fatal("paused controller must not move the node")
	}
	c.Play()
	step(t, n, 1, 1)
	if got := n.LocalPosition(); !got.ApproxEqualThreshold(mgl32.Vec3{0, 0, 3}, eps) {
		t.Fatalf("position %v, want (0,0,3)", got)
	}
}

func TestRepeatForeverWraps(t *testing.T) {
	a := node.NewArena()
	n := a.New()
	var seen []float32
	c := Run(n, Func(func(n node.Node, p float32) { seen = append(seen, p) }, WithRepeat(0), WithDuration(1)))

	step(t, n, 5, 0.75)
	if c.Stopped() || len(n.Animations()) != 1 {
		t.Fatal("repeat 0 must never finish")
	}
	if p := c.Progress(); mgl32.Abs(p-0.75) > eps {
		t.Fatalf("progress %v after 3.75s, want 0.75", p)
	}
	for _, p := range seen {
		if p < 0 || p > 1 {
			t.Fatalf("progress %v out of range", p)
		}
	}
}

func TestRepeatCountFinishes(t *testing.T) {
	a := node.NewArena()
	n := a.New()
	c := Run(n, Empty(WithRepeat(2), WithDuration(1)))
	step(t, n, 3, 0.6)
	if c.Stopped() {
		t.Fatal("two repetitions should not be over after 1.8s")
	}
	step(t, n, 1, 0.6)
	if !c.Stopped() || len(n.Animations()) != 0 {
		t.Fatal("two repetitions should be over after 2.4s")
	}
}

func TestStopActions(t *testing.T) {
	tests := []struct {
		action StopAction
		want   float32
	}{
		{SaveProgress, 0.5},
		{ToEndProgress, 1},
		{ToStartProgress, 0},
	}
	for _, tt := range tests {
		a := node.NewArena()
		n := a.New()
		c := Run(n, MoveFromTo(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, WithDuration(2)))
		step(t, n, 1, 1)
		c.Stop(tt.action)
		if got := n.LocalPosition().X(); mgl32.Abs(got-tt.want) > eps {
			t.Fatalf("action %d: x %v, want %v", tt.action, got, tt.want)
		}
		step(t, n, 1, 1)
		if len(n.Animations()) != 0 {
			t.Fatalf("action %d: stopped controller should detach", tt.action)
		}
	}
}

func TestSpeedScalesTime(t *testing.T) {
	a := node.NewArena()
	n := a.New()
	c := Run(n, Empty(WithDuration(4)), WithSpeed(2))
	step(t, n, 1, 1)
	if p := c.Progress(); mgl32.Abs(p-0.5) > eps {
		t.Fatalf("progress %v, want 0.5", p)
	}
}

func TestSequenceRunsStepsInOrder(t *testing.T) {
	a := node.NewArena()
	n := a.New()
	seq := Sequence([]Animation{
		MoveFromTo(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, WithDuration(1)),
		MoveFromTo(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{1, 3, 0}, WithDuration(3)),
	})
	if seq.Duration != 4 {
		t.Fatalf("sequence duration %v, want 4", seq.Duration)
	}
	Run(n, seq)

	step(t, n, 1, 0.5)
	if got := n.LocalPosition(); !got.ApproxEqualThreshold(mgl32.Vec3{0.5, 0, 0}, eps) {
		t.Fatalf("first step position %v", got)
	}
	step(t, n, 1, 1.5)
	if got := n.LocalPosition(); !got.ApproxEqualThreshold(mgl32.Vec3{1, 1, 0}, eps) {
		t.Fatalf("second step position %v", got)
	}
	step(t, n, 1, 2)
	if got := n.LocalPosition(); !got.ApproxEqualThreshold(mgl32.Vec3{1, 3, 0}, eps) {
		t.Fatalf("final position %v", got)
	}
}

func TestSequenceFinishesSkippedSteps(t *testing.T) {
	a := node.NewArena()
	n := a.New()
	var last float32 = -1
	Run(n, Sequence([]Animation{
		MoveFromTo(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, WithDuration(1)),
		Func(func(n node.Node, p float32) {
			last = p
			n.ScaleTo(lerp(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{2, 2, 2}, p))
		}, WithDuration(1)),
		MoveFromTo(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{2, 0, 0}, WithDuration(1)),
	}))

	step(t, n, 1, 0.5)
	step(t, n, 1, 2)
	if last != 1 {
		t.Fatalf("jumped step last saw progress %v, want 1", last)
	}
	if got := n.LocalScale(); got.Sub(mgl32.Vec3{2, 2, 2}).Len() > eps {
		t.Fatalf("scale %v, want the jumped step's end value", got)
	}
	if got := n.LocalPosition(); got.Sub(mgl32.Vec3{1.5, 0, 0}).Len() > eps {
		t.Fatalf("position %v, want halfway through the last step", got)
	}
}

func TestEasingFunctions(t *testing.T) {
	tests := []struct {
		name string
		f    Function
		in   float32
		want float32
	}{
		{"linear", Linear, 0.3, 0.3},
		{"ping-pong rising", PingPong, 0.25, 0.5},
		{"ping-pong falling", PingPong, 0.75, 0.5},
		{"ping-pong end", PingPong, 1, 0},
		{"ease mid", EaseInOut, 0.5, 0.5},
		{"ease end", EaseInOut, 1, 1},
	}
	for _, tt := range tests {
		if got := tt.f(tt.in); mgl32.Abs(got-tt.want) > eps {
			t.Errorf("%s(%v) = %v, want %v", tt.name, tt.in, got, tt.want)
		}
	}
}
