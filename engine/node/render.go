package node

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// RenderFrame is what a RenderHandler receives for one node in one frame.
type RenderFrame struct {
	// Label identifies the frame across every handler call.
	Label string
	// Node is the node being rendered.
	Node Node
	// Transform is the node's absolute transform.
	Transform mgl32.Mat4
	// View is the camera view matrix.
	View mgl32.Mat4
	// Projection is the camera projection matrix.
	Projection mgl32.Mat4
	// Viewport is the render target size.
	Viewport common.Size
}

// RenderHandler draws one node. The GPU backend lives behind this interface.
// Implementations must be pointer types.
type RenderHandler interface {
	Render(frame RenderFrame) error
}

func (n *node) AddRenderHandler(h RenderHandler) {
	n.renderHandlers = append(n.renderHandlers, h)
}

func (n *node) RemoveRenderHandler(h RenderHandler) error {
	var ok bool
	if n.renderHandlers, ok = common.RemoveFirst(n.renderHandlers, h); !ok {
		return ErrRenderHandlerNotFound
	}
	return nil
}

func (n *node) RenderHandlers() []RenderHandler {
	return append([]RenderHandler(nil), n.renderHandlers...)
}

// Render calls every render handler of root and its subtree, depth-first with parents before
// children. A hidden node is skipped together with its subtree. frame.Node and frame.Transform are
// filled in per node.
//
// Parameters:
//   - root: the subtree root
//   - frame: the shared frame data
//
// Returns:
//   - error: the first handler error, wrapped with the node name
func Render(root Node, frame RenderFrame) error {
	r, ok := root.(*node)
	if !ok {
		return nil
	}
	return render(r, frame)
}

func render(n *node, frame RenderFrame) error {
	if n.hidden || n.released {
		return nil
	}
	if len(n.renderHandlers) > 0 {
		frame.Node = n
		frame.Transform = n.AbsoluteTransform()
		for _, h := range n.renderHandlers {
			if err := h.Render(frame); err != nil {
				return errors.Wrapf(err, "render node %q", n.name)
			}
		}
	}
	for _, c := range n.children {
		if err := render(c, frame); err != nil {
			return err
		}
	}
	return nil
}
