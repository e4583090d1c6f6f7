// Package config loads runtime settings from .vi-gravity.yaml, VIGRAVITY_* env vars and flags
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/lixenwraith/vi-gravity/engine"
	"github.com/lixenwraith/vi-gravity/parameter"
)

// EnvPrefix is prepended to every environment override
const EnvPrefix = "VIGRAVITY"

var validate = validator.New()

// Config holds all runtime configuration for a vi-gravity process
type Config struct {
	TimeScale         float64 `mapstructure:"time_scale" validate:"gt=0"`
	Steps             int     `mapstructure:"steps" validate:"min=1"`
	FPS               int     `mapstructure:"fps" validate:"min=1,max=1000"`
	TrackInterval     int     `mapstructure:"track_interval" validate:"min=1"`
	BodyTrackLength   int     `mapstructure:"body_track_length" validate:"min=0"`
	PhotonTrackLength int     `mapstructure:"photon_track_length" validate:"min=0"`
	MaxVelocity       float64 `mapstructure:"max_velocity" validate:"gt=0,lt=299792458"`
	EventQueueSize    int     `mapstructure:"event_queue_size" validate:"min=1"`

	// Environment selects the logger: "development" is console, anything else JSON
	Environment string `mapstructure:"environment" validate:"oneof=development production"`
	Verbose     bool   `mapstructure:"verbose"`
	ListenAddr  string `mapstructure:"listen_addr" validate:"required"`
	Sound       bool   `mapstructure:"sound"`

	// Scenario is a preset name or a TOML path
	Scenario  string `mapstructure:"scenario"`
	Randomize bool   `mapstructure:"randomize"`
	Seed      uint64 `mapstructure:"seed"`
	Watch     bool   `mapstructure:"watch"`
}

// SetDefaults registers built-in defaults on viper
func SetDefaults() {
	viper.SetDefault("time_scale", parameter.DefaultTimeScale)
	viper.SetDefault("steps", parameter.DefaultSteps)
	viper.SetDefault("fps", parameter.DefaultFPS)
	viper.SetDefault("track_interval", parameter.TrackInterval)
	viper.SetDefault("body_track_length", parameter.BodyTrackLength)
	viper.SetDefault("photon_track_length", parameter.PhotonTrackLength)
	viper.SetDefault("max_velocity", parameter.MaxVelocity)
	viper.SetDefault("event_queue_size", parameter.EventQueueSize)
	viper.SetDefault("environment", "development")
	viper.SetDefault("verbose", false)
	viper.SetDefault("listen_addr", parameter.DefaultListenAddr)
	viper.SetDefault("sound", false)
	viper.SetDefault("scenario", "")
	viper.SetDefault("randomize", false)
	viper.SetDefault("seed", 0)
	viper.SetDefault("watch", false)
}

// Init points viper at cfgFile, or .vi-gravity.yaml in the working or home directory
// A missing config file is not an error
func Init(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".vi-gravity")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment or flags
func Load() (Config, error) {
	SetDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if math.IsNaN(cfg.TimeScale) || math.IsNaN(cfg.MaxVelocity) {
		return Config{}, fmt.Errorf("invalid config: non-finite value")
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Engine converts the simulation settings into an engine.Config
func (c Config) Engine() engine.Config {
	return engine.Config{
		TimeScale:         c.TimeScale,
		Steps:             c.Steps,
		MaxVelocity:       c.MaxVelocity,
		TrackInterval:     c.TrackInterval,
		BodyTrackLength:   c.BodyTrackLength,
		PhotonTrackLength: c.PhotonTrackLength,
		EventQueueSize:    c.EventQueueSize,
	}
}
