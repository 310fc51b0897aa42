package db

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedData is a fixture of reference data for a local database
type SeedData struct {
	Theatres          []Theatre          `yaml:"theatres"`
	DayConfigurations []DayConfiguration `yaml:"dayConfigurations"`
	TheatreLists      []TheatreList      `yaml:"theatreLists"`
	Staff             []Staff            `yaml:"staff"`
	StaffingRecords   []StaffingRecord   `yaml:"staffingRecords"`
}

// LoadSeedData reads a YAML fixture. Unknown keys are rejected.
func LoadSeedData(path string) (*SeedData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var seed SeedData
	if err := decoder.Decode(&seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &seed, nil
}

// Apply inserts every fixture table through the seeder
func (s *SeedData) Apply(ctx context.Context, seeder Seeder) error {
	if err := seeder.InsertTheatres(ctx, s.Theatres); err != nil {
		return err
	}
	if err := seeder.InsertDayConfigurations(ctx, s.DayConfigurations); err != nil {
		return err
	}
	if err := seeder.InsertTheatreLists(ctx, s.TheatreLists); err != nil {
		return err
	}
	if err := seeder.InsertStaff(ctx, s.Staff); err != nil {
		return err
	}
	if err := seeder.InsertStaffingRecords(ctx, s.StaffingRecords); err != nil {
		return err
	}
	return nil
}
