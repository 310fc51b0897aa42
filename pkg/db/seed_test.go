package db

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSeeder records the order and content of inserts
type mockSeeder struct {
	calls    []string
	theatres []Theatre
	staff    []Staff
	lists    []TheatreList
	staffErr error
}

func (m *mockSeeder) InsertTheatres(ctx context.Context, theatres []Theatre) error {
	m.calls = append(m.calls, "theatres")
	m.theatres = theatres
	return nil
}

func (m *mockSeeder) InsertDayConfigurations(ctx context.Context, configurations []DayConfiguration) error {
	m.calls = append(m.calls, "dayConfigurations")
	return nil
}

func (m *mockSeeder) InsertTheatreLists(ctx context.Context, lists []TheatreList) error {
	m.calls = append(m.calls, "theatreLists")
	m.lists = lists
	return nil
}

func (m *mockSeeder) InsertStaff(ctx context.Context, staff []Staff) error {
	m.calls = append(m.calls, "staff")
	if m.staffErr != nil {
		return m.staffErr
	}
	m.staff = staff
	return nil
}

func (m *mockSeeder) InsertStaffingRecords(ctx context.Context, records []StaffingRecord) error {
	m.calls = append(m.calls, "staffingRecords")
	return nil
}

const seedYAML = `
theatres:
  - id: main-1
    hospitalId: rlh
    name: Main 1
    type: elective
    sortOrder: 1
    lat: 51.5186
    lng: -0.0590
  - id: emerg
    hospitalId: rlh
    name: Emergency
    type: emergency
    alwaysOn: true
    sortOrder: 2
dayConfigurations:
  - date: "2025-10-06"
    theatreId: main-1
    sessionType: long-day
theatreLists:
  - theatreName: Main 1
    date: "2025-10-06"
    specialty: Orthopaedics
    cases:
      - procedureName: Total Hip Replacement
        surgeon: Mr Jones
staff:
  - id: s1
    hospitalId: rlh
    displayName: Cat
    role: Scrub Nurse
    band: Band 5
    competencies: [orthopaedics]
    unavailableDates: ["2025-10-07"]
staffingRecords:
  - date: "2025-10-06"
    unit: Main
    category: night
    role: Night Scrub N/P
    count: 6
`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSeedData(t *testing.T) {
	seed, err := LoadSeedData(writeSeed(t, seedYAML))
	require.NoError(t, err)

	require.Len(t, seed.Theatres, 2)
	require.NotNil(t, seed.Theatres[0].Lat)
	assert.Equal(t, 51.5186, *seed.Theatres[0].Lat)
	assert.True(t, seed.Theatres[1].AlwaysOn)

	assert.Equal(t, []DayConfiguration{{Date: "2025-10-06", TheatreID: "main-1", SessionType: "long-day"}}, seed.DayConfigurations)

	require.Len(t, seed.TheatreLists, 1)
	assert.Equal(t, []Case{{ProcedureName: "Total Hip Replacement", Surgeon: "Mr Jones"}}, seed.TheatreLists[0].Cases)

	require.Len(t, seed.Staff, 1)
	assert.Equal(t, []string{"orthopaedics"}, seed.Staff[0].Competencies)
	assert.Equal(t, []string{"2025-10-07"}, seed.Staff[0].UnavailableDates)

	require.Len(t, seed.StaffingRecords, 1)
	assert.Equal(t, 6, seed.StaffingRecords[0].Count)
}

func TestLoadSeedData_Errors(t *testing.T) {
	_, err := LoadSeedData(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read seed file")

	_, err = LoadSeedData(writeSeed(t, "theatres:\n  - id: main-1\n    colour: blue\n"))
	assert.ErrorContains(t, err, "failed to parse seed file")
}

func TestSeedData_Apply(t *testing.T) {
	seed, err := LoadSeedData(writeSeed(t, seedYAML))
	require.NoError(t, err)

	seeder := &mockSeeder{}
	require.NoError(t, seed.Apply(context.Background(), seeder))

	assert.Equal(t, []string{"theatres", "dayConfigurations", "theatreLists", "staff", "staffingRecords"}, seeder.calls)
	assert.Len(t, seeder.theatres, 2)
	assert.Len(t, seeder.staff, 1)
}

func TestSeedData_ApplyStopsOnError(t *testing.T) {
	seed, err := LoadSeedData(writeSeed(t, seedYAML))
	require.NoError(t, err)

	insertErr := errors.New("constraint failed")
	seeder := &mockSeeder{staffErr: insertErr}

	err = seed.Apply(context.Background(), seeder)
	assert.ErrorIs(t, err, insertErr)
	assert.Equal(t, []string{"theatres", "dayConfigurations", "theatreLists", "staff"}, seeder.calls)
}
