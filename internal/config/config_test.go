package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimalConfig() *Config {
	return &Config{
		HospitalID: "royal-london",
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			DSN:    "roster.db",
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	uplift := 2
	weight := 2.5
	cfg := minimalConfig()
	cfg.DefaultRoles = map[string]int{"Anaes N/P": 1, "Scrub N/P": 2, "HCA": 1}
	cfg.EmergencyScrubUplift = &uplift
	cfg.Specialties = []Specialty{{ID: "orthopaedics", Name: "Orthopaedics", Aliases: []string{"T&O"}}}
	cfg.MappingRules = []MappingRule{
		{Specialty: "orthopaedics", Keyword: "hip", Roles: map[string]int{"Scrub N/P": 1}},
	}
	cfg.RequirementOverrides = []RequirementOverride{
		{
			TheatreID: "main-4",
			RRule:     "FREQ=WEEKLY;BYDAY=SA,SU",
			Roles:     []RoleQuantity{{Role: "Scrub N/P", Quantity: 2}},
		},
	}
	cfg.RoleSynonyms = []RoleSynonyms{{Role: "Scrub N/P", Aliases: []string{"Instrument Nurse"}}}
	cfg.Scoring = ScoringConfig{
		SpecialtyWeight: &weight,
		ExpectedBands:   map[string]int{"Scrub N/P": 5},
		MaxShiftsPerRun: 5,
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MinimalConfig(t *testing.T) {
	err := Validate(minimalConfig())
	assert.NoError(t, err, "a missing default role table is reported at allocation time, not load time")
}

func TestValidate_MissingRequiredField(t *testing.T) {
	cfg := minimalConfig()
	cfg.HospitalID = ""

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := minimalConfig()
	cfg.Database.Driver = "mysql"

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_NegativeQuantity(t *testing.T) {
	cfg := minimalConfig()
	cfg.DefaultRoles = map[string]int{"HCA": -1}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_MappingRuleWithoutRoles(t *testing.T) {
	cfg := minimalConfig()
	cfg.MappingRules = []MappingRule{{Specialty: "orthopaedics", Keyword: "hip"}}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_InvalidRRule(t *testing.T) {
	cfg := minimalConfig()
	cfg.RequirementOverrides = []RequirementOverride{
		{
			TheatreID: "main-4",
			RRule:     "INVALID_RRULE_SYNTAX",
			Roles:     []RoleQuantity{{Role: "HCA", Quantity: 1}},
		},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule in requirementOverrides[0]")
}

func TestValidate_OverrideWithoutRRule(t *testing.T) {
	cfg := minimalConfig()
	cfg.RequirementOverrides = []RequirementOverride{
		{
			TheatreID: "main-4",
			Roles:     []RoleQuantity{{Role: "HCA", Quantity: 1}},
		},
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_ComplexValidRRule(t *testing.T) {
	cfg := minimalConfig()
	cfg.RequirementOverrides = []RequirementOverride{
		{
			TheatreID: "main-4",
			RRule:     "FREQ=MONTHLY;BYDAY=1SA;BYMONTH=1,4,7,10",
			Roles:     []RoleQuantity{{Role: "HCA", Quantity: 1}},
		},
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_ExpectedBandOutOfRange(t *testing.T) {
	cfg := minimalConfig()
	cfg.Scoring.ExpectedBands = map[string]int{"Scrub N/P": 12}

	err := Validate(cfg)
	assert.Error(t, err)
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "theatre_roster.yaml")

	validConfig := `
hospitalID: "royal-london"
database:
  driver: "postgres"
  dsn: "postgres://roster@localhost:5432/roster"
defaultRoles:
  "Anaes N/P": 1
  "Scrub N/P": 2
  "HCA": 1
emergencyScrubUplift: 1
specialties:
  - id: "orthopaedics"
    name: "Orthopaedics"
    aliases: ["T&O", "Trauma & Orthopaedics"]
mappingRules:
  - specialty: "orthopaedics"
    keywords: ["hip", "knee"]
    roles:
      "Scrub N/P": 1
  - specialty: "emergency"
    applyToAll: true
    roles:
      "Floater": 1
requirementOverrides:
  - theatreID: "main-4"
    rrule: "FREQ=WEEKLY;BYDAY=SA,SU"
    roles:
      - role: "Anaes N/P"
        quantity: 1
      - role: "Scrub N/P"
        quantity: 1
roleSynonyms:
  - role: "Scrub N/P"
    aliases: ["Instrument Nurse"]
scoring:
  specialtyWeight: 4
  expectedBands:
    "Scrub N/P": 5
  maxShiftsPerRun: 5
`

	err := os.WriteFile(configPath, []byte(validConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "royal-london", cfg.HospitalID)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 2, cfg.DefaultRoles["Scrub N/P"])
	require.NotNil(t, cfg.EmergencyScrubUplift)
	assert.Equal(t, 1, *cfg.EmergencyScrubUplift)

	require.Len(t, cfg.Specialties, 1)
	assert.Contains(t, cfg.Specialties[0].Aliases, "T&O")

	require.Len(t, cfg.MappingRules, 2)
	assert.Equal(t, []string{"hip", "knee"}, cfg.MappingRules[0].Keywords)
	assert.True(t, cfg.MappingRules[1].ApplyToAll)

	require.Len(t, cfg.RequirementOverrides, 1)
	override := cfg.RequirementOverrides[0]
	assert.Equal(t, "main-4", override.TheatreID)
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=SA,SU", override.RRule)
	assert.Equal(t, []RoleQuantity{{Role: "Anaes N/P", Quantity: 1}, {Role: "Scrub N/P", Quantity: 1}}, override.Roles)

	require.Len(t, cfg.RoleSynonyms, 1)
	assert.Equal(t, "Scrub N/P", cfg.RoleSynonyms[0].Role)

	require.NotNil(t, cfg.Scoring.SpecialtyWeight)
	assert.Equal(t, 4.0, *cfg.Scoring.SpecialtyWeight)
	assert.Nil(t, cfg.Scoring.CostWeight)
	assert.Equal(t, 5, cfg.Scoring.ExpectedBands["Scrub N/P"])
	assert.Equal(t, 5, cfg.Scoring.MaxShiftsPerRun)
}

func TestLoadFromPath_InvalidRRule(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_rrule.yaml")

	invalidConfig := `
hospitalID: "royal-london"
database:
  driver: "sqlite"
  dsn: "roster.db"
requirementOverrides:
  - theatreID: "main-4"
    rrule: "INVALID_RRULE_SYNTAX"
    roles:
      - role: "HCA"
        quantity: 1
`

	err := os.WriteFile(configPath, []byte(invalidConfig), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestLoadFromPath_MinimalConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "minimal_config.yaml")

	minimal := `
hospitalID: "royal-london"
database:
  driver: "sqlite"
  dsn: "roster.db"
`

	err := os.WriteFile(configPath, []byte(minimal), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "royal-london", cfg.HospitalID)
	assert.Empty(t, cfg.DefaultRoles)
	assert.Nil(t, cfg.EmergencyScrubUplift)
	assert.Empty(t, cfg.RequirementOverrides)
}

func TestLoadFromPath_DSNFromEnvironment(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
hospitalID: "royal-london"
database:
  driver: "postgres"
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	_, err := LoadFromPath(configPath)
	assert.Error(t, err, "dsn is required when not set in the environment")

	t.Setenv(DatabaseDSNEnv, "postgres://roster@localhost/roster")
	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)
	assert.Equal(t, "postgres://roster@localhost/roster", cfg.Database.DSN)
}

func TestLoadFromPath_MissingRequiredField(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_config.yaml")

	invalidConfig := `
hospitalID: "royal-london"
database:
  driver: "sqlite"
  # Missing dsn
`

	err := os.WriteFile(configPath, []byte(invalidConfig), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_yaml.yaml")

	invalidYAML := `
hospitalID: "royal-london"
  invalid indentation
database: "sqlite"
`

	err := os.WriteFile(configPath, []byte(invalidYAML), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_FileNotFound(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/path/theatre_roster.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadWithEnv_FindsEnvFileInWorkingDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	chdir(t, tmpDir)

	envConfig := `
hospitalID: "whipps-cross"
database:
  driver: "sqlite"
  dsn: "test.db"
`
	err := os.WriteFile(filepath.Join(tmpDir, "theatre_roster.test.yaml"), []byte(envConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadWithEnv("test")
	require.NoError(t, err)
	assert.Equal(t, "whipps-cross", cfg.HospitalID)
}

func TestLoadWithEnv_NotFound(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	_, err := LoadWithEnv("nowhere")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "theatre_roster.nowhere.yaml not found")
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
