package requirements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/theatre-roster/pkg/core/model"
)

func testTheatres() []model.Theatre {
	return []model.Theatre{
		{ID: "main-1", Name: "Main 1", Type: model.TheatreTypeElective},
		{ID: "main-2", Name: "Main 2", Type: model.TheatreTypeElective},
		{ID: "emerg", Name: "Emergency Theatre", Type: model.TheatreTypeEmergency, AlwaysOn: true},
		{ID: "nights", Name: "Night Shift", AlwaysOn: true, DefaultSessionType: model.SessionNight},
		{ID: "mile-end", Name: "Mile End", AlwaysOn: true},
	}
}

func TestBuildLocations_ListsAndAlwaysOn(t *testing.T) {
	calc := NewCalculator(orthoConfig())

	lists := []TheatreList{
		{TheatreName: "main 1", Date: "2025-10-06", Specialty: "Orthopaedics", SessionType: model.SessionDay, Procedures: []string{"Total Hip Replacement"}},
		{TheatreName: "Main 2", Date: "2025-10-07", Specialty: "Orthopaedics", SessionType: model.SessionDay},
	}

	locations, err := calc.BuildLocations("2025-10-06", testTheatres(), nil, lists)
	require.NoError(t, err)

	require.Len(t, locations, 4, "main-2 has no list on this date and is not always-on")
	assert.Equal(t, "main-1-2025-10-06", locations[0].Session.ID)
	assert.False(t, locations[0].Synthetic)
	assert.Equal(t, 3, locations[0].Roles[1].Quantity)

	assert.Equal(t, "emerg", locations[1].Theatre.ID)
	assert.True(t, locations[1].Synthetic)
	assert.Equal(t, EmergencySpecialtyID, locations[1].Session.Specialty)
	assert.Equal(t, 3, locations[1].Roles[1].Quantity, "emergency theatre gets the scrub uplift")

	assert.Equal(t, "nights", locations[2].Theatre.ID)
	assert.Equal(t, model.SessionNight, locations[2].Session.SessionType)
	assert.Equal(t, 2, locations[2].Roles[1].Quantity)

	assert.Equal(t, "mile-end", locations[3].Theatre.ID)
	assert.Equal(t, 4, TotalRequested(locations[3:]))
}

func TestBuildLocations_CalendarClosesTheatre(t *testing.T) {
	calc := NewCalculator(orthoConfig())

	calendar := []CalendarEntry{
		{Date: "2025-10-06", TheatreID: "emerg", SessionType: model.SessionClosed},
		{Date: "2025-10-06", TheatreID: "main-2", SessionType: model.SessionLongDay},
	}

	locations, err := calc.BuildLocations("2025-10-06", testTheatres()[:3], calendar, nil)
	require.NoError(t, err)

	require.Len(t, locations, 2)
	assert.Equal(t, "main-2", locations[0].Theatre.ID)
	assert.Equal(t, model.SessionLongDay, locations[0].Session.SessionType)
	assert.Len(t, locations[0].Roles, 3)

	assert.Equal(t, "emerg", locations[1].Theatre.ID)
	assert.True(t, locations[1].Session.IsClosed())
	assert.False(t, locations[1].Synthetic)
	assert.Empty(t, locations[1].Roles)
}

func TestBuildLocations_MergesListsForTheatre(t *testing.T) {
	calc := NewCalculator(orthoConfig())

	lists := []TheatreList{
		{TheatreName: "Main 1", Date: "2025-10-06", Specialty: "Orthopaedics", SessionType: model.SessionAM, Procedures: []string{"Carpal Tunnel Release"}},
		{TheatreName: "Main 1", Date: "2025-10-06", Specialty: "Orthopaedics", SessionType: model.SessionPM, Procedures: []string{"Revision Hip"}},
	}

	locations, err := calc.BuildLocations("2025-10-06", testTheatres()[:1], nil, lists)
	require.NoError(t, err)

	require.Len(t, locations, 1)
	assert.Equal(t, model.SessionAM, locations[0].Session.SessionType)
	assert.Equal(t, []string{"Carpal Tunnel Release", "Revision Hip"}, locations[0].Procedures)
	assert.Equal(t, 3, locations[0].Roles[1].Quantity)
}

func TestBuildLocations_AmbiguousTheatreName(t *testing.T) {
	calc := NewCalculator(orthoConfig())

	theatres := append(testTheatres(), model.Theatre{ID: "main-1b", Name: "MAIN 1", Type: model.TheatreTypeElective})
	lists := []TheatreList{
		{TheatreName: "Main 1", Date: "2025-10-06", Specialty: "Orthopaedics", SessionType: model.SessionDay},
	}

	_, err := calc.BuildLocations("2025-10-06", theatres, nil, lists)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "main-1, main-1b")

	locations, err := calc.BuildLocations("2025-10-07", theatres, nil, lists)
	require.NoError(t, err, "shared names only matter when a list targets them")
	assert.Len(t, locations, 3)
}

func TestBuildLocations_InvalidDate(t *testing.T) {
	calc := NewCalculator(orthoConfig())

	_, err := calc.BuildLocations("06/10/2025", testTheatres(), nil, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")
}

func TestBuildLocations_ConfigurationMissing(t *testing.T) {
	calc := NewCalculator(Config{})

	_, err := calc.BuildLocations("2025-10-06", testTheatres(), nil, nil)
	assert.ErrorIs(t, err, ErrConfigurationMissing)
}
