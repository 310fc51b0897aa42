package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// Database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig selects the allocation store
type DatabaseConfig struct {
	Driver string `yaml:"driver" validate:"required,oneof=postgres sqlite"`
	DSN    string `yaml:"dsn" validate:"required"`
}

// Specialty defines a canonical specialty and the free-text names that resolve to it
type Specialty struct {
	ID      string   `yaml:"id" validate:"required"`
	Name    string   `yaml:"name,omitempty"`
	Aliases []string `yaml:"aliases,omitempty"`
}

// MappingRule adds role quantities to sessions of a specialty
type MappingRule struct {
	Specialty  string         `yaml:"specialty" validate:"required"`
	Keyword    string         `yaml:"keyword,omitempty"`
	Keywords   []string       `yaml:"keywords,omitempty"`
	ApplyToAll bool           `yaml:"applyToAll,omitempty"`
	Roles      map[string]int `yaml:"roles" validate:"required,min=1,dive,keys,required,endkeys,min=0"`
}

// RoleQuantity is a single role requirement
type RoleQuantity struct {
	Role     string `yaml:"role" validate:"required"`
	Quantity int    `yaml:"quantity" validate:"min=0"`
}

// RequirementOverride replaces calculated requirements for a theatre.
// RRule is optional; without it the override applies to every date.
type RequirementOverride struct {
	TheatreID string         `yaml:"theatreID" validate:"required"`
	RRule     string         `yaml:"rrule,omitempty"`
	Roles     []RoleQuantity `yaml:"roles" validate:"required,min=1,dive"`
}

// RoleSynonyms registers extra free-text names for a canonical role
type RoleSynonyms struct {
	Role    string   `yaml:"role" validate:"required"`
	Aliases []string `yaml:"aliases" validate:"required,min=1,dive,required"`
}

// ScoringConfig tunes candidate scoring. Unset weights use the built-in defaults.
type ScoringConfig struct {
	SpecialtyWeight *float64 `yaml:"specialtyWeight,omitempty" validate:"omitempty,min=0"`
	BandWeight      *float64 `yaml:"bandWeight,omitempty" validate:"omitempty,min=0"`
	WorkloadWeight  *float64 `yaml:"workloadWeight,omitempty" validate:"omitempty,min=0"`
	CostWeight      *float64 `yaml:"costWeight,omitempty" validate:"omitempty,min=0"`
	DistanceWeight  *float64 `yaml:"distanceWeight,omitempty" validate:"omitempty,min=0"`

	ExpectedBands    map[string]int `yaml:"expectedBands,omitempty" validate:"omitempty,dive,keys,required,endkeys,min=1,max=9"`
	BandSpan         int            `yaml:"bandSpan,omitempty" validate:"min=0"`
	MaxBandDeviation int            `yaml:"maxBandDeviation,omitempty" validate:"min=0"`
	MaxShiftsPerRun  int            `yaml:"maxShiftsPerRun,omitempty" validate:"min=0"`
	CostScale        float64        `yaml:"costScale,omitempty" validate:"min=0"`
	DistanceScale    float64        `yaml:"distanceScale,omitempty" validate:"min=0"`
}

// Config represents the application configuration
type Config struct {
	HospitalID string         `yaml:"hospitalID" validate:"required"`
	Database   DatabaseConfig `yaml:"database"`

	// DefaultRoles may be empty; allocation then fails with a configuration-missing error
	DefaultRoles         map[string]int        `yaml:"defaultRoles,omitempty" validate:"omitempty,dive,keys,required,endkeys,min=0"`
	EmergencyScrubUplift *int                  `yaml:"emergencyScrubUplift,omitempty" validate:"omitempty,min=0"`
	Specialties          []Specialty           `yaml:"specialties,omitempty" validate:"dive"`
	MappingRules         []MappingRule         `yaml:"mappingRules,omitempty" validate:"dive"`
	RequirementOverrides []RequirementOverride `yaml:"requirementOverrides,omitempty" validate:"dive"`
	RoleSynonyms         []RoleSynonyms        `yaml:"roleSynonyms,omitempty" validate:"dive"`
	Scoring              ScoringConfig         `yaml:"scoring,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// DatabaseDSNEnv overrides database.dsn so credentials can stay out of the config file
const DatabaseDSNEnv = "THEATRE_ROSTER_DATABASE_DSN"

// Load loads and validates the configuration from theatre_roster.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration with an environment suffix
// For example, env="test" will look for "theatre_roster.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if dsn := os.Getenv(DatabaseDSNEnv); dsn != "" {
		cfg.Database.DSN = dsn
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, override := range cfg.RequirementOverrides {
		if override.RRule == "" {
			continue
		}
		if _, err := rrule.StrToRRule(override.RRule); err != nil {
			return fmt.Errorf("invalid rrule in requirementOverrides[%d]: %w", i, err)
		}
	}

	return nil
}

// findConfigFile searches for theatre_roster.yaml in current directory and home directory
// If env is provided, it adds it as an extension (e.g., "theatre_roster.test.yaml")
func findConfigFile(env string) (string, error) {
	configFileName := "theatre_roster.yaml"
	if env != "" {
		configFileName = "theatre_roster." + env + ".yaml"
	}

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", configFileName)
}
