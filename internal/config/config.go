package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging LoggingConfig       `yaml:"logging"`
	Keys    map[string][]string `yaml:"keys"`
	Scripts ScriptsConfig       `yaml:"scripts"`
	Camera  CameraConfig        `yaml:"camera"`
	Loop    LoopConfig          `yaml:"loop"`
	Player  PlayerConfig        `yaml:"player"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type ScriptsConfig struct {
	Microbe string `yaml:"microbe"`
}

type CameraConfig struct {
	Position [3]float64 `yaml:"position"`
	LookAt   [3]float64 `yaml:"look_at"`
	Up       [3]float64 `yaml:"up"`
	FOVY     float64    `yaml:"fov_y"`
	Aspect   float64    `yaml:"aspect"`
	// Disabled starts the world without an active camera.
	Disabled bool `yaml:"disabled"`
}

type LoopConfig struct {
	TickInterval Duration `yaml:"tick_interval"`
	MovePulse    Duration `yaml:"move_pulse"`
}

type PlayerConfig struct {
	Name       string   `yaml:"name"`
	Organelles [][2]int `yaml:"organelles"`
	HexRadius  float64  `yaml:"hex_radius"`
}

// Duration accepts time.ParseDuration strings such as "50ms".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("yaml: line %d: invalid duration %q: %w", node.Line, s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func Load(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.File == "" {
		c.Logging.File = "cellstage.log"
	}
	if c.Scripts.Microbe == "" {
		c.Scripts.Microbe = "scripts/microbe_control.lua"
	}
	if c.Camera.Position == [3]float64{} && c.Camera.LookAt == [3]float64{} {
		c.Camera.Position = [3]float64{0, 30, 0}
	}
	if c.Camera.Up == [3]float64{} {
		c.Camera.Up = [3]float64{0, 0, -1}
	}
	if c.Camera.FOVY <= 0 {
		c.Camera.FOVY = 60
	}
	if c.Camera.Aspect <= 0 {
		c.Camera.Aspect = 2
	}
	if c.Loop.TickInterval <= 0 {
		c.Loop.TickInterval = Duration(50 * time.Millisecond)
	}
	if c.Loop.MovePulse <= 0 {
		c.Loop.MovePulse = Duration(180 * time.Millisecond)
	}
	if c.Player.Name == "" {
		c.Player.Name = "player"
	}
	if len(c.Player.Organelles) == 0 {
		c.Player.Organelles = [][2]int{{0, 0}}
	}
	if c.Player.HexRadius <= 0 {
		c.Player.HexRadius = 1
	}
}
