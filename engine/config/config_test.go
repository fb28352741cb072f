package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-scene/engine/collision"
)

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
engine:
  tick_rate: 30
  workers: 4
viewport:
  width: 800
  height: 600
gravity:
  acceleration: 9.8
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine.TickRate != 30 || cfg.Engine.Workers != 4 || cfg.Engine.Profiling {
		t.Fatalf("engine section %+v", cfg.Engine)
	}
	if s := cfg.Size(); s.Width != 800 || s.Height != 600 {
		t.Fatalf("size %+v", s)
	}
	if cfg.Gravity.Acceleration != 9.8 {
		t.Fatalf("gravity %v", cfg.Gravity.Acceleration)
	}
	def := Default()
	if cfg.Collision != def.Collision || cfg.Interaction != def.Interaction {
		t.Fatal("sections absent from the document should keep their defaults")
	}
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Fatalf("got %+v, want defaults", cfg)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown field", "engine:\n  tickrate: 30\n", "unmarshal"},
		{"zero tick rate", "engine:\n  tick_rate: -1\n", "tick_rate"},
		{"no workers", "engine:\n  workers: 0\n", "workers"},
		{"negative gravity", "gravity:\n  acceleration: -3\n", "gravity"},
		{"wide angle", "interaction:\n  angle: 4\n", "angle"},
		{"bad yaml", "engine: [", "unmarshal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("got %v, want error mentioning %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	if err := os.WriteFile(path, []byte("collision:\n  static_query_padding: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Collision.StaticQueryPadding != 2 {
		t.Fatalf("padding %v", cfg.Collision.StaticQueryPadding)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil || !strings.Contains(err.Error(), "missing.yaml") {
		t.Fatalf("got %v, want error naming the file", err)
	}
}

func TestBuildersCarryValues(t *testing.T) {
	cfg := Default()
	cfg.Gravity.Acceleration = 0
	g := cfg.NewGravitation()
	if g.FallSpeed() != 0 {
		t.Fatal("new gravitation should not be falling")
	}
	if len(cfg.SceneOptions()) != 2 {
		t.Fatal("scene options should carry interaction radius and collision controller")
	}
	if Default().Gravity.Acceleration != collision.DefaultGravity {
		t.Fatal("default gravity mismatch")
	}
}
