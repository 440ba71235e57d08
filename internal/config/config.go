package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds the board's runtime settings, read from SPIDERWEB_* variables.
type Config struct {
	Port         int     `envconfig:"PORT" default:"8888"`
	Bridge       bool    `envconfig:"BRIDGE" default:"true"`
	Advertise    bool    `envconfig:"ADVERTISE" default:"true"`
	WindowWidth  float32 `envconfig:"WINDOW_WIDTH" default:"1024"`
	WindowHeight float32 `envconfig:"WINDOW_HEIGHT" default:"768"`
	StrokeWidth  float32 `envconfig:"STROKE_WIDTH" default:"5"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("spiderweb", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
