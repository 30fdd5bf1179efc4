// Package config loads gobeam settings from flags, GOBEAM_* environment
// variables, an optional .env file and an optional gobeam.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/alexiusacademia/gobeam/internal/design"
	"github.com/alexiusacademia/gobeam/internal/solver"
)

// Setting keys
const (
	LogLevel           = "log.level"
	LogFormat          = "log.format"
	SolverSubdivisions = "solver.subdivisions"
	SolverMaxCondition = "solver.max_condition"
	DesignTolerance    = "design.tolerance"
	DesignWorkers      = "design.workers"
	DesignRules        = "design.rules"
	RulesFile          = "rules.file"
	SectionsFile       = "sections.file"
)

// EnvPrefix prefixes environment variables, e.g. GOBEAM_LOG_LEVEL
const EnvPrefix = "GOBEAM"

// Config holds the resolved settings
type Config struct {
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
	Solver struct {
		Subdivisions int     `mapstructure:"subdivisions"`
		MaxCondition float64 `mapstructure:"max_condition"`
	} `mapstructure:"solver"`
	Design struct {
		Tolerance float64 `mapstructure:"tolerance"`
		Workers   int     `mapstructure:"workers"`
		Rules     string  `mapstructure:"rules"`
	} `mapstructure:"design"`
	Rules struct {
		File string `mapstructure:"file"`
	} `mapstructure:"rules"`
	Sections struct {
		File string `mapstructure:"file"`
	} `mapstructure:"sections"`
}

// New returns a viper instance with defaults and environment binding
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(LogLevel, "warn")
	v.SetDefault(LogFormat, "text")
	v.SetDefault(SolverSubdivisions, solver.DefaultSubdivisions)
	v.SetDefault(SolverMaxCondition, solver.DefaultMaxCondition)
	v.SetDefault(DesignTolerance, design.DefaultTolerance)
	v.SetDefault(DesignWorkers, 0)
	v.SetDefault(DesignRules, "nzs3603")
	v.SetDefault(RulesFile, "")
	v.SetDefault(SectionsFile, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads .env (if present) into the environment, then the config file:
// path when given, otherwise gobeam.yaml in the working directory or
// $HOME/.config/gobeam if one exists
func Load(v *viper.Viper, path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("gobeam")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/gobeam")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the numeric settings
func (c *Config) Validate() error {
	if c.Solver.Subdivisions < 1 {
		return fmt.Errorf("%s must be at least 1, got %d", SolverSubdivisions, c.Solver.Subdivisions)
	}
	if c.Solver.MaxCondition <= 1 {
		return fmt.Errorf("%s must be greater than 1, got %g", SolverMaxCondition, c.Solver.MaxCondition)
	}
	if c.Design.Tolerance < 0 {
		return fmt.Errorf("%s must not be negative, got %g", DesignTolerance, c.Design.Tolerance)
	}
	if c.Design.Workers < 0 {
		return fmt.Errorf("%s must not be negative, got %d", DesignWorkers, c.Design.Workers)
	}
	return nil
}

// NewSolver builds a solver from the settings
func (c *Config) NewSolver() *solver.Solver {
	return &solver.Solver{
		Subdivisions: c.Solver.Subdivisions,
		MaxCondition: c.Solver.MaxCondition,
	}
}
