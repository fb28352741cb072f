package node

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
)

// SceneObserver is implemented by behaviors that react to their node joining or leaving a scene.
// DidMoveToScene runs after the node and its subtree have adopted the new scene; either argument
// may be nil.
type SceneObserver interface {
	DidMoveToScene(n Node, previous, next Node)
}

func (n *node) Parent() Node {
	if p := n.parentNode(); p != nil {
		return p
	}
	return nil
}

func (n *node) Scene() Node {
	if s := n.sceneNode(); s != nil {
		return s
	}
	return nil
}

func (n *node) Children() []Node {
	out := make([]Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *node) AddSubnode(child Node) {
	c, ok := child.(*node)
	if !common.Assert(ok && c.arena == n.arena, "node %q: subnode from another arena", n.name) {
		return
	}
	if !common.Assert(!n.released && !c.released, "node %q: released node in AddSubnode", n.name) {
		return
	}
	if !common.Assert(!c.IsSceneRoot(), "node %q: scene root %q cannot be a subnode", n.name, c.name) {
		return
	}
	if !common.Assert(c != n && !c.isAncestorOf(n), "node %q: adding %q would create a cycle", n.name, c.name) {
		return
	}

	c.invalidateAbsolute()
	if old := c.parentNode(); old != nil {
		old.removeChild(c)
	}
	n.children = append(n.children, c)
	c.parent = n.handle
	c.setScene(n.scene)
}

func (n *node) RemoveFromParent() {
	n.invalidateAbsolute()
	if p := n.parentNode(); p != nil {
		p.removeChild(n)
	}
	n.parent = Handle{}
	if !n.IsSceneRoot() {
		n.setScene(Handle{})
	}
}

func (n *node) FindParent(pred func(Node) bool) Node {
	for p := n.parentNode(); p != nil; p = p.parentNode() {
		if pred(p) {
			return p
		}
	}
	return nil
}

func (n *node) isAncestorOf(other *node) bool {
	for p := other.parentNode(); p != nil; p = p.parentNode() {
		if p == n {
			return true
		}
	}
	return false
}

func (n *node) removeChild(c *node) {
	n.children, _ = common.RemoveFirst(n.children, c)
}

// setScene propagates h down the subtree, children first, then moves n's placement between indexes.
func (n *node) setScene(h Handle) {
	if n.scene == h {
		return
	}
	previous := n.sceneNode()
	n.scene = h
	for _, c := range n.children {
		c.setScene(h)
	}
	n.didMoveToScene(previous, n.sceneNode())
}

func (n *node) didMoveToScene(previous, next *node) {
	if n.voxels != nil {
		if sys := n.voxels.System(); sys != nil {
			_ = sys.RemoveController(n.voxels)
		}
		if next != nil && next.system != nil {
			next.system.AddController(n.voxels)
		}
	}
	var prevNode, nextNode Node
	if previous != nil {
		prevNode = previous
	}
	if next != nil {
		nextNode = next
	}
	for _, b := range n.behaviors {
		if o, ok := b.(SceneObserver); ok {
			o.DidMoveToScene(n, prevNode, nextNode)
		}
	}
}

// walk visits n and its subtree depth-first, parents before children.
func (n *node) walk(fn func(*node)) {
	fn(n)
	for _, c := range n.children {
		c.walk(fn)
	}
}

// Walk visits root and its subtree depth-first, parents before children, until fn returns false.
//
// Parameters:
//   - root: the subtree root
//   - fn: visitor; return false to stop
func Walk(root Node, fn func(Node) bool) {
	r, ok := root.(*node)
	if !ok {
		return
	}
	walkUntil(r, fn)
}

func walkUntil(n *node, fn func(Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !walkUntil(c, fn) {
			return false
		}
	}
	return true
}
