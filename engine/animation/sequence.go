package animation

import (
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
)

// Sequence plays animations back to back as one animation lasting their summed duration.
// Each step gets a share of the outer progress proportional to its duration. When the sequence
// moves on, the previous step is driven to its end first, and so is every step a large frame
// jumps over.
//
// Parameters:
//   - steps: the animations in play order
//   - options: functional options applied to the combined animation
//
// Returns:
//   - Animation: the combined animation
func Sequence(steps []Animation, options ...AnimationOption) Animation {
	var total float32
	for _, s := range steps {
		total += s.Duration
	}
	shares := make([]Animation, len(steps))
	for i, s := range steps {
		shares[i] = s
		if total > 0 {
			shares[i].Duration = s.Duration / total
		}
		shares[i].Repeat = 1
	}

	seq := New(func(n node.Node) Handler {
		active := -1
		var current *Controller
		return HandlerFuncs{UpdateFunc: func(n node.Node, progress float32) {
			if len(shares) == 0 {
				return
			}
			idx := len(shares) - 1
			for i, s := range shares {
				if progress > s.Duration && i < len(shares)-1 {
					progress -= s.Duration
					continue
				}
				idx = i
				break
			}
			if idx != active {
				if current != nil {
					current.Stop(ToEndProgress)
				}
				for i := active + 1; i < idx; i++ {
					NewController(n, shares[i]).finish()
				}
				active = idx
				current = NewController(n, shares[idx])
			}
			current.Play()
			current.setCurrentTime(min(progress, shares[idx].Duration))
			current.step()
		}}
	})
	seq.Duration = total
	for _, option := range options {
		option(&seq)
	}
	return seq
}
