package config

import (
	"bytes"
	"io"
	"math"
	"os"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/collision"
	"github.com/Carmen-Shannon/oxy-scene/engine/node"
	"github.com/Carmen-Shannon/oxy-scene/engine/scene"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the tunables of an engine and the scenes it runs.
// Zero-valued sections in a file keep their defaults.
type Config struct {
	Engine      Engine      `yaml:"engine"`
	Viewport    Viewport    `yaml:"viewport"`
	Gravity     Gravity     `yaml:"gravity"`
	Collision   Collision   `yaml:"collision"`
	Interaction Interaction `yaml:"interaction"`
}

// Engine configures the tick loop.
type Engine struct {
	TickRate  float64 `yaml:"tick_rate"`
	Workers   int     `yaml:"workers"`
	Profiling bool    `yaml:"profiling"`
}

type Viewport struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

type Gravity struct {
	Acceleration float32 `yaml:"acceleration"`
}

type Collision struct {
	StaticQueryPadding float32 `yaml:"static_query_padding"`
}

// Interaction configures NodesWithDirection searches. Angle is in radians.
type Interaction struct {
	Radius float32 `yaml:"radius"`
	Angle  float32 `yaml:"angle"`
}

// Default returns the configuration the engine uses when nothing is loaded.
func Default() Config {
	return Config{
		Engine:      Engine{TickRate: 60, Workers: 1},
		Viewport:    Viewport{Width: 1280, Height: 720},
		Gravity:     Gravity{Acceleration: collision.DefaultGravity},
		Collision:   Collision{StaticQueryPadding: collision.DefaultStaticQueryPadding},
		Interaction: Interaction{Radius: node.DefaultInteractionRadius, Angle: math.Pi / 4},
	}
}

// Parse decodes YAML over the defaults and validates the result.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Config: the decoded configuration
//   - error: a decode or validation failure
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "Failed to unmarshal yaml")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a YAML file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "Failed to open config %q", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %q", path)
	}
	return cfg, nil
}

// Validate reports the first out-of-range value.
func (c Config) Validate() error {
	switch {
	case c.Engine.TickRate <= 0:
		return errors.Errorf("engine.tick_rate must be positive, got %v", c.Engine.TickRate)
	case c.Engine.Workers < 1:
		return errors.Errorf("engine.workers must be at least 1, got %d", c.Engine.Workers)
	case c.Viewport.Width < 0 || c.Viewport.Height < 0:
		return errors.Errorf("viewport must not be negative, got %vx%v", c.Viewport.Width, c.Viewport.Height)
	case c.Gravity.Acceleration < 0:
		return errors.Errorf("gravity.acceleration must not be negative, got %v", c.Gravity.Acceleration)
	case c.Collision.StaticQueryPadding < 0:
		return errors.Errorf("collision.static_query_padding must not be negative, got %v", c.Collision.StaticQueryPadding)
	case c.Interaction.Radius <= 0:
		return errors.Errorf("interaction.radius must be positive, got %v", c.Interaction.Radius)
	case c.Interaction.Angle <= 0 || c.Interaction.Angle > math.Pi:
		return errors.Errorf("interaction.angle must be in (0, pi], got %v", c.Interaction.Angle)
	}
	return nil
}

// Size returns the viewport as a common.Size.
func (c Config) Size() common.Size {
	return common.Size{Width: c.Viewport.Width, Height: c.Viewport.Height}
}

// SceneOptions returns the scene options carrying the collision and interaction values.
//
// Returns:
//   - []scene.SceneBuilderOption: options for scene.NewScene
func (c Config) SceneOptions() []scene.SceneBuilderOption {
	return []scene.SceneBuilderOption{
		scene.WithInteractionRadius(c.Interaction.Radius),
		scene.WithCollisionController(collision.NewController(
			collision.WithStaticQueryPadding(c.Collision.StaticQueryPadding),
		)),
	}
}

// NewGravitation builds a gravitation behavior using the configured acceleration.
// Each falling node needs its own instance.
func (c Config) NewGravitation() *collision.Gravitation {
	return collision.NewGravitation(collision.WithAcceleration(c.Gravity.Acceleration))
}
