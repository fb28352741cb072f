package node

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/voxel"
)

// Handle is a generation-checked reference to a node slot in an Arena. Parent and scene
// back-references are stored as handles, so a released node can never be reached through them.
// The zero Handle refers to nothing.
type Handle struct {
	index      uint32
	generation uint32
}

// Valid reports whether h was ever issued. A valid handle may still be stale.
func (h Handle) Valid() bool {
	return h.generation != 0
}

type arenaSlot struct {
	node       *node
	generation uint32
}

// Arena owns node identity. Every node is created by an arena and can only be attached to
// nodes of the same arena. Released slots are reused with a bumped generation.
type Arena struct {
	slots []arenaSlot
	free  []uint32
	live  int
}

// NewArena creates an empty Arena.
//
// Returns:
//   - *Arena: the new arena
func NewArena() *Arena {
	return &Arena{}
}

// New creates a standalone node: no parent, no scene.
//
// Parameters:
//   - options: functional options applied after construction
//
// Returns:
//   - Node: the new node
func (a *Arena) New(options ...NodeBuilderOption) Node {
	n := a.alloc()
	for _, option := range options {
		option(n)
	}
	return n
}

// NewScene creates a scene root. A scene root owns the spatial index of its hierarchy and is its
// own scene; it can never be attached under another node.
//
// Parameters:
//   - options: functional options applied after construction
//
// Returns:
//   - Node: the new scene root
func (a *Arena) NewScene(options ...NodeBuilderOption) Node {
	n := a.alloc()
	n.system = voxel.NewSystemController()
	n.interactionRadius = DefaultInteractionRadius
	n.scene = n.handle
	for _, option := range options {
		option(n)
	}
	return n
}

// Get resolves h.
//
// Returns:
//   - Node: the node, or nil if h is zero or stale
func (a *Arena) Get(h Handle) Node {
	if n := a.resolve(h); n != nil {
		return n
	}
	return nil
}

// Len returns the number of live nodes.
func (a *Arena) Len() int {
	return a.live
}

// Release detaches n from its parent and destroys n and its whole subtree: every node leaves the
// spatial index, its slot is freed and handles to it go stale. Releasing a scene root also drops
// its index.
//
// Parameters:
//   - n: the subtree root to destroy
func (a *Arena) Release(n Node) {
	impl, ok := n.(*node)
	if !common.Assert(ok && impl.arena == a, "release of a node from another arena") {
		return
	}
	if impl.released {
		return
	}
	impl.RemoveFromParent()
	impl.walk(func(c *node) {
		if c.voxels != nil {
			if sys := c.voxels.System(); sys != nil {
				_ = sys.RemoveController(c.voxels)
			}
		}
		c.released = true
		a.freeSlot(c.handle)
	})
	impl.system = nil
}

func (a *Arena) alloc() *node {
	n := newNode(a)
	if k := len(a.free); k > 0 {
		idx := a.free[k-1]
		a.free = a.free[:k-1]
		a.slots[idx].node = n
		n.handle = Handle{index: idx, generation: a.slots[idx].generation}
	} else {
		a.slots = append(a.slots, arenaSlot{node: n, generation: 1})
		n.handle = Handle{index: uint32(len(a.slots) - 1), generation: 1}
	}
	a.live++
	return n
}

func (a *Arena) freeSlot(h Handle) {
	slot := &a.slots[h.index]
	slot.node = nil
	slot.generation++
	if slot.generation == 0 {
		slot.generation = 1
	}
	a.free = append(a.free, h.index)
	a.live--
}

func (a *Arena) resolve(h Handle) *node {
	if !h.Valid() || int(h.index) >= len(a.slots) {
		return nil
	}
	slot := a.slots[h.index]
	if slot.generation != h.generation || slot.node == nil {
		return nil
	}
	return slot.node
}
