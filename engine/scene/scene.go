package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/camera"
	"github.com/Carmen-Shannon/oxy-scene/engine/collision"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
	"github.com/Carmen-Shannon/oxy-scene/engine/voxel"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Stats is a snapshot of one scene after its last frame.
type Stats struct {
	// Frames is the number of completed frames.
	Frames uint64
	// Nodes is the number of nodes reachable from the root, root included.
	Nodes int
	// Index is the spatial index size.
	Index voxel.Stats
	// Collision is the last collision pass.
	Collision collision.Stats
	// Flushed is the number of placements committed during the last frame.
	Flushed int
}

// Scene owns one node hierarchy, its spatial index, its camera and its collision pass.
// Frame and Render must be called from one goroutine at a time; the name and active flag may be
// read and written concurrently.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is stepped and rendered by the engine.
	Active() bool

	// SetActive sets whether this scene is stepped and rendered by the engine.
	SetActive(active bool)

	// Arena returns the arena every node of this scene must come from.
	Arena() *node.Arena

	// Root returns the scene root node.
	Root() node.Node

	// Camera returns the main camera. Its node is a child of the root.
	Camera() camera.Camera

	// Collision returns the collision pass run at the end of each frame.
	Collision() collision.Controller

	// Add attaches nodes directly under the root.
	//
	// Parameters:
	//   - nodes: the nodes to attach
	Add(nodes ...node.Node)

	// Frame advances the scene by one frame: index flush, update traversal, index flush,
	// collision pass.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous frame
	//   - viewport: current viewport size
	//
	// Returns:
	//   - error: the first behavior error; the rest of the frame is skipped
	Frame(deltaTime float64, viewport common.Size) error

	// Render hands every visible node with render handlers to its handlers, depth-first.
	//
	// Parameters:
	//   - viewport: the render target size
	//
	// Returns:
	//   - string: the frame label passed to every handler
	//   - error: the first handler error; the traversal stops there
	Render(viewport common.Size) (string, error)

	// Stats returns counters from the last frame.
	Stats() Stats

	// Dump renders the spatial index for debug logging.
	Dump() string
}

type scene struct {
	mu     *sync.RWMutex
	name   string
	active bool

	arena      *node.Arena
	root       node.Node
	cam        camera.Camera
	collision  collision.Controller
	rootOpts   []node.NodeBuilderOption
	cameraOpts []camera.CameraBuilderOption
	pending    []node.Node

	frames        uint64
	lastCollision collision.Stats
	lastFlushed   int
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene with its own root, main camera and collision pass.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:   &sync.RWMutex{},
		name: common.Coalesce(name, "scene"),
	}
	for _, option := range options {
		option(s)
	}
	if s.arena == nil {
		s.arena = node.NewArena()
	}
	if s.collision == nil {
		s.collision = collision.NewController()
	}
	s.root = s.arena.NewScene(append([]node.NodeBuilderOption{node.WithName(s.name)}, s.rootOpts...)...)

	camNode := s.arena.New(node.WithName(s.name + "/camera"))
	s.root.AddSubnode(camNode)
	s.cam = camera.NewCamera(camNode, s.cameraOpts...)

	s.Add(s.pending...)
	s.pending = nil
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Arena() *node.Arena {
	return s.arena
}

func (s *scene) Root() node.Node {
	return s.root
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Collision() collision.Controller {
	return s.collision
}

func (s *scene) Add(nodes ...node.Node) {
	for _, n := range nodes {
		s.root.AddSubnode(n)
	}
}

func (s *scene) Frame(deltaTime float64, viewport common.Size) error {
	sys := s.root.VoxelSystem()
	flushed := sys.Loop()
	if err := node.UpdateLoop(s.root, deltaTime, viewport); err != nil {
		return errors.Wrapf(err, "scene %q update", s.Name())
	}
	flushed += sys.Loop()
	s.lastCollision = s.collision.Loop(s.root)
	s.lastFlushed = flushed
	s.frames++
	return nil
}

func (s *scene) Render(viewport common.Size) (string, error) {
	s.cam.Update(viewport)
	label := uuid.NewString()
	frame := node.RenderFrame{
		Label:      label,
		View:       s.cam.ViewMatrix(),
		Projection: s.cam.ProjectionMatrix(),
		Viewport:   viewport,
	}
	if err := node.Render(s.root, frame); err != nil {
		return label, errors.Wrapf(err, "scene %q frame %s", s.Name(), label)
	}
	return label, nil
}

func (s *scene) Stats() Stats {
	nodes := 0
	node.Walk(s.root, func(node.Node) bool {
		nodes++
		return true
	})
	return Stats{
		Frames:    s.frames,
		Nodes:     nodes,
		Index:     s.root.VoxelSystem().Stats(),
		Collision: s.lastCollision,
		Flushed:   s.lastFlushed,
	}
}

func (s *scene) Dump() string {
	return s.root.VoxelSystem().Dump()
}
