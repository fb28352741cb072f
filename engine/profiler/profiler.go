package profiler

import (
	"log"
	"runtime"
	"time"
)

// SceneSample is the per-scene part of a profiler line.
type SceneSample struct {
	// Name identifies the scene.
	Name string
	// Nodes is the number of nodes in the scene.
	Nodes int
	// Voxels is the number of occupied index cells.
	Voxels int
	// Flushed is the number of placements committed in the last frame.
	Flushed int
	// Dynamic is the number of active dynamic collision nodes.
	Dynamic int
	// Pairs is the number of dynamic pairs pushed apart in the last frame.
	Pairs int
	// Corrections is the number of static plane corrections in the last frame.
	Corrections int
}

// Profiler tracks frame rate, memory and scene statistics.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	peakPairs      map[string]int
}

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often a line is logged.
//
// Parameters:
//   - d: the logging interval
//
// Returns:
//   - ProfilerOption: option function to apply
func WithInterval(d time.Duration) ProfilerOption {
	return func(p *Profiler) {
		p.updateInterval = d
	}
}

// NewProfiler creates a new Profiler.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
		peakPairs:      make(map[string]int),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Tick should be called once per engine step with a sample for every active scene.
// Collision peaks are tracked between log lines. When the update interval has elapsed it logs
// one runtime line and one line per scene.
//
// Parameters:
//   - samples: the scenes stepped this frame
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(samples ...SceneSample) bool {
	p.frameCount++
	for _, s := range samples {
		if s.Pairs > p.peakPairs[s.Name] {
			p.peakPairs[s.Name] = s.Pairs
		}
	}

	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}
	seconds := max(elapsed.Seconds(), 1e-9)
	fps := float64(p.frameCount) / seconds

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024
	allocRateMB := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / seconds

	gcCount := p.memStats.NumGC
	var lastPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
	}

	log.Printf("[Profiler] FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, +%d) | Sys: %.2f MB",
		fps, allocMB, allocRateMB, gcCount, lastPauseUs, gcCount-p.lastGCCount, sysMB)
	for _, s := range samples {
		log.Printf("[Profiler] scene %q | Nodes: %d | Voxels: %d | Flushed: %d | Dynamic: %d | Pairs: %d (peak %d) | Corrections: %d",
			s.Name, s.Nodes, s.Voxels, s.Flushed, s.Dynamic, s.Pairs, p.peakPairs[s.Name], s.Corrections)
	}

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	clear(p.peakPairs)
	return true
}
