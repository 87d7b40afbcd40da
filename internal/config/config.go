// Package config loads settings from defaults, STREAKS_* environment
// variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/streaks/internal/exercise"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key when reading the environment.
const EnvPrefix = "STREAKS"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	// DB is the SQLite file path. Empty means the store's default location.
	DB string `mapstructure:"db"`
	// Timezone is an IANA zone name. Empty means the process local zone.
	Timezone string `mapstructure:"tz"`

	PushupGoal int `mapstructure:"pushup_goal"`
	SquatGoal  int `mapstructure:"squat_goal"`

	MQTTBroker   string `mapstructure:"mqtt_broker"`
	MQTTTopic    string `mapstructure:"mqtt_topic"`
	MQTTClientID string `mapstructure:"mqtt_client_id"`
}

// DefaultConfig returns a Config with built-in defaults.
func DefaultConfig() Config {
	return Config{
		PushupGoal:   exercise.DefaultPushupGoal,
		SquatGoal:    exercise.DefaultSquatGoal,
		MQTTBroker:   "tcp://localhost:1883",
		MQTTTopic:    "streaks/accel",
		MQTTClientID: "streaks-cli",
	}
}

// Load reads defaults and the environment.
func Load() (Config, error) {
	return LoadFlags(nil)
}

// LoadFlags reads defaults, the environment and any flags in fs whose names
// match a config key (db, tz, mqtt_broker, ...). Only flags set on the
// command line override the environment.
func LoadFlags(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("db", def.DB)
	v.SetDefault("tz", def.Timezone)
	v.SetDefault("pushup_goal", def.PushupGoal)
	v.SetDefault("squat_goal", def.SquatGoal)
	v.SetDefault("mqtt_broker", def.MQTTBroker)
	v.SetDefault("mqtt_topic", def.MQTTTopic)
	v.SetDefault("mqtt_client_id", def.MQTTClientID)

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects negative goals and unknown time zones.
func (c Config) Validate() error {
	if c.PushupGoal < 0 {
		return fmt.Errorf("%w: pushup goal %d is negative", ErrInvalidConfig, c.PushupGoal)
	}
	if c.SquatGoal < 0 {
		return fmt.Errorf("%w: squat goal %d is negative", ErrInvalidConfig, c.SquatGoal)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone. Empty means time.Local.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: time zone %q: %v", ErrInvalidConfig, c.Timezone, err)
	}
	return loc, nil
}

// ExerciseGoals returns the daily targets. A zero goal is left out, so that
// exercise never blocks the day from counting.
func (c Config) ExerciseGoals() exercise.Goals {
	g := exercise.Goals{}
	if c.PushupGoal > 0 {
		g[exercise.Pushup] = c.PushupGoal
	}
	if c.SquatGoal > 0 {
		g[exercise.Squat] = c.SquatGoal
	}
	return g
}
