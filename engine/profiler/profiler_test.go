package profiler

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestTickLogsSceneLines(t *testing.T) {
	buf := captureLog(t)
	p := NewProfiler(WithInterval(0))

	if !p.Tick(SceneSample{Name: "level", Nodes: 12, Voxels: 30, Pairs: 2}) {
		t.Fatal("zero interval should log on every tick")
	}
	out := buf.String()
	if !strings.Contains(out, "[Profiler] FPS") || !strings.Contains(out, `scene "level"`) || !strings.Contains(out, "Nodes: 12") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestTickTracksPeakPairsBetweenLines(t *testing.T) {
	buf := captureLog(t)
	p := NewProfiler(WithInterval(time.Hour))

	for _, pairs := range []int{1, 5, 2} {
		if p.Tick(SceneSample{Name: "s", Pairs: pairs}) {
			t.Fatal("interval has not elapsed")
		}
	}
	if buf.Len() != 0 {
		t.Fatal("nothing should be logged before the interval")
	}
	p.updateInterval = 0
	p.Tick(SceneSample{Name: "s", Pairs: 0})
	if !strings.Contains(buf.String(), "peak 5") {
		t.Fatalf("expected peak 5 in:\n%s", buf.String())
	}
}
