package engine

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/profiler"
	"github.com/Carmen-Shannon/oxy-scene/engine/scene"
	"github.com/pkg/errors"
)

// engine implements the Engine interface.
// Coordinates the tick goroutine, the scene worker pool and quit handling.
type engine struct {
	mu *sync.RWMutex

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)

	viewport common.Size
	scenes   map[int]scene.Scene

	// scenePool steps independent scenes in parallel. Workers persist across frames.
	scenePool    worker.DynamicWorkerPool
	sceneWorkers int
}

// Engine is the main entry point for the engine.
// It steps every active scene once per tick and renders them in ascending key order.
type Engine interface {
	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick before the scenes are stepped.
	// Use this for input processing and game logic outside the scene graph.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// Viewport returns the size passed to scene frames and renders.
	Viewport() common.Size

	// SetViewport sets the size passed to scene frames and renders.
	//
	// Parameters:
	//   - size: the render target size
	SetViewport(size common.Size)

	// AddScene registers a scene at the given z-index key.
	// Scenes are rendered in ascending key order. Scenes step in parallel, so each registered
	// scene must own its node arena; a scene sharing an arena with another key panics.
	//
	// Parameters:
	//   - key: the z-index determining render order (lower renders first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Step runs one frame: every active scene's Frame on the worker pool, then every scene whose
	// frame succeeded is rendered in ascending key order. A failing scene is logged and skipped
	// for the rest of the frame; other scenes are unaffected.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous frame
	//
	// Returns:
	//   - error: the first failure in key order, or nil
	Step(deltaTime float64) error

	// Run starts the tick loop and blocks until Quit is called, ctx is cancelled, or a frame panics.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//
	// Returns:
	//   - error: ctx.Err() if the context ended the loop, otherwise nil
	Run(ctx context.Context) error

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:              &sync.RWMutex{},
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		scenes:          make(map[int]scene.Scene),
		profiler:        profiler.NewProfiler(),
		engineTickRate:  time.Second / 60,
		viewport:        common.Size{Width: 1280, Height: 720},
		sceneWorkers:    max(runtime.NumCPU()-1, 1),
	}

	for _, opt := range options {
		opt(e)
	}

	// Queue size of 256 accommodates typical scene counts with headroom.
	e.scenePool = worker.NewDynamicWorkerPool(e.sceneWorkers, 256, 1*time.Second)
	return e
}

func (e *engine) Run(ctx context.Context) error {
	e.mu.Lock()
	e.running = true
	e.mu.Unlock()

	e.wg.Add(2)
	go e.handleEngine()
	go e.handleQuit(ctx)
	e.wg.Wait()

	e.mu.Lock()
	e.running = false
	e.mu.Unlock()
	return ctx.Err()
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// handleEngine runs the fixed-rate tick loop in its own goroutine.
// Fires the tick callback and steps the scenes at the configured tick rate and listens for dynamic
// rate changes via tickRateChannel. A panic in a frame is logged and stops the engine.
func (e *engine) handleEngine() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("engine goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	ticker := time.NewTicker(e.tickRate())
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := now.Sub(lastTick).Seconds()
			lastTick = now

			if cb := e.callback(); cb != nil {
				cb(float32(dt))
			}
			// Step logs its own failures; a failing scene only loses this frame.
			_ = e.Step(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.mu.Lock()
			e.engineTickRate = newRate
			e.mu.Unlock()
		}
	}
}

// handleQuit blocks until the quit channel is closed or ctx ends, then decrements the WaitGroup.
func (e *engine) handleQuit(ctx context.Context) {
	defer e.wg.Done()
	select {
	case <-ctx.Done():
		e.signalQuit()
	case <-e.quitChannel:
	}
}

func (e *engine) Step(deltaTime float64) error {
	active := e.activeScenes()
	viewport := e.Viewport()

	// Scenes are independent, so their frames run in parallel. The WaitGroup is the frame barrier;
	// pool.Wait() would block until workers idle-exit.
	errs := make([]error, len(active))
	var wg sync.WaitGroup
	for i, s := range active {
		wg.Add(1)
		idx, sc := i, s
		e.scenePool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				errs[idx] = runFrame(sc, deltaTime, viewport)
				return nil, nil
			},
		})
	}
	wg.Wait()

	var first error
	samples := make([]profiler.SceneSample, 0, len(active))
	for i, s := range active {
		if errs[i] == nil {
			if _, err := s.Render(viewport); err != nil {
				errs[i] = errors.Wrap(err, "render")
			}
		}
		if errs[i] != nil {
			log.Printf("engine: frame abandoned for scene %q: %v", s.Name(), errs[i])
			if first == nil {
				first = errs[i]
			}
			continue
		}
		samples = append(samples, sample(s))
	}

	e.mu.RLock()
	profiling := e.profilingEnabled && e.profiler != nil
	e.mu.RUnlock()
	if profiling {
		e.profiler.Tick(samples...)
	}
	return first
}

// runFrame runs one scene frame and turns a panic into an error so one broken scene cannot take
// down the pool worker.
func runFrame(s scene.Scene, deltaTime float64, viewport common.Size) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic in scene %q: %v", s.Name(), r)
		}
	}()
	return s.Frame(deltaTime, viewport)
}

func sample(s scene.Scene) profiler.SceneSample {
	st := s.Stats()
	return profiler.SceneSample{
		Name:        s.Name(),
		Nodes:       st.Nodes,
		Voxels:      st.Index.Voxels,
		Flushed:     st.Flushed,
		Dynamic:     st.Collision.Dynamic,
		Pairs:       st.Collision.Pairs,
		Corrections: st.Collision.Corrections,
	}
}

func (e *engine) activeScenes() []scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	active := make([]scene.Scene, 0, len(keys))
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			active = append(active, s)
		}
	}
	return active
}

func (e *engine) tickRate() time.Duration {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.engineTickRate
}

func (e *engine) callback() func(float32) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tickCallback
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in frames per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	e.mu.Lock()
	running := e.running
	if !running {
		e.engineTickRate = newRate
	}
	e.mu.Unlock()
	if !running {
		return
	}

	// Non-blocking send - if channel is full, replace the pending value
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

func (e *engine) Viewport() common.Size {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.viewport
}

func (e *engine) SetViewport(size common.Size) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.viewport = size
}

func (e *engine) AddScene(key int, s scene.Scene) {
	if s == nil {
		panic(fmt.Sprintf("engine: AddScene(%d) requires a non-nil Scene", key))
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.putScene(key, s)
}

// putScene stores s at key. Callers hold mu or own e exclusively.
func (e *engine) putScene(key int, s scene.Scene) {
	for k, other := range e.scenes {
		if k != key && other.Arena() == s.Arena() {
			panic(fmt.Sprintf("engine: scene %q at %d shares its arena with %q at %d", s.Name(), key, other.Name(), k))
		}
	}
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}
