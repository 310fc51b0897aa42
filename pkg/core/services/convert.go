package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/jakechorley/theatre-roster/internal/config"
	"github.com/jakechorley/theatre-roster/pkg/core/allocator/criteria"
	"github.com/jakechorley/theatre-roster/pkg/core/model"
	"github.com/jakechorley/theatre-roster/pkg/core/requirements"
	"github.com/jakechorley/theatre-roster/pkg/db"
)

// overrideSearchBuffer widens the rrule search window around the requested dates
const overrideSearchBuffer = 7 * 24 * time.Hour

// ApplyRoleSynonyms registers the configured role synonyms. Call once at startup,
// before any staff or configuration roles are parsed.
func ApplyRoleSynonyms(cfg *config.Config) error {
	for i, synonyms := range cfg.RoleSynonyms {
		role, err := model.ParseRole(synonyms.Role)
		if err != nil {
			return fmt.Errorf("invalid role in roleSynonyms[%d]: %w", i, err)
		}
		model.RegisterRoleSynonyms(role, synonyms.Aliases)
	}
	return nil
}

// buildCalculator converts the requirement configuration for dates within [start, end]
func buildCalculator(cfg *config.Config, start, end time.Time, logger *zap.Logger) (*requirements.Calculator, error) {
	defaultRoles, err := parseRoleQuantities(cfg.DefaultRoles)
	if err != nil {
		return nil, fmt.Errorf("invalid defaultRoles: %w", err)
	}

	uplift := requirements.DefaultEmergencyScrubUplift
	if cfg.EmergencyScrubUplift != nil {
		uplift = *cfg.EmergencyScrubUplift
	}

	specialties := make([]requirements.Specialty, len(cfg.Specialties))
	for i, s := range cfg.Specialties {
		specialties[i] = requirements.Specialty{ID: s.ID, Name: s.Name, Aliases: s.Aliases}
	}

	rules := make([]requirements.MappingRule, 0, len(cfg.MappingRules))
	for i, r := range cfg.MappingRules {
		roles, err := parseRoleQuantities(r.Roles)
		if err != nil {
			return nil, fmt.Errorf("invalid roles in mappingRules[%d]: %w", i, err)
		}
		rules = append(rules, requirements.MappingRule{
			SpecialtyID: r.Specialty,
			Keyword:     r.Keyword,
			Keywords:    r.Keywords,
			ApplyToAll:  r.ApplyToAll,
			Roles:       roles,
		})
	}

	overrides, err := convertRequirementOverrides(cfg.RequirementOverrides, start, end, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to convert requirement overrides: %w", err)
	}

	logger.Debug("Built requirement calculator",
		zap.Int("default_roles", len(defaultRoles)),
		zap.Int("specialties", len(specialties)),
		zap.Int("mapping_rules", len(rules)),
		zap.Int("overrides", len(overrides)))

	return requirements.NewCalculator(requirements.Config{
		DefaultRoles:         defaultRoles,
		EmergencyScrubUplift: uplift,
		Specialties:          specialties,
		MappingRules:         rules,
		Overrides:            overrides,
	}), nil
}

// convertRequirementOverrides converts config overrides to calculator overrides.
// RRule strings become date predicates over the window [start, end], padded by a week.
func convertRequirementOverrides(configOverrides []config.RequirementOverride, start, end time.Time, logger *zap.Logger) ([]requirements.Override, error) {
	result := make([]requirements.Override, 0, len(configOverrides))

	searchStart := start.Add(-overrideSearchBuffer)
	searchEnd := end.Add(overrideSearchBuffer)

	for i, override := range configOverrides {
		roles := make([]model.RoleRequirement, 0, len(override.Roles))
		for _, rq := range override.Roles {
			role, err := model.ParseRole(rq.Role)
			if err != nil {
				return nil, fmt.Errorf("invalid role in override %d: %w", i, err)
			}
			roles = append(roles, model.RoleRequirement{Role: role, Quantity: rq.Quantity})
		}

		var appliesTo func(string) bool
		if override.RRule != "" {
			rule, err := rrule.StrToRRule(override.RRule)
			if err != nil {
				return nil, fmt.Errorf("failed to parse rrule for override %d: %w", i, err)
			}
			if !strings.Contains(strings.ToUpper(override.RRule), "DTSTART") {
				rule.DTStart(searchStart)
			}

			matching := make(map[string]bool)
			for _, occurrence := range rule.Between(searchStart, searchEnd, true) {
				matching[occurrence.Format(model.DateLayout)] = true
			}
			appliesTo = func(date string) bool {
				return matching[date]
			}
		}

		result = append(result, requirements.Override{
			TheatreID: override.TheatreID,
			AppliesTo: appliesTo,
			Roles:     roles,
		})

		logger.Debug("Converted override",
			zap.Int("index", i),
			zap.String("theatre_id", override.TheatreID),
			zap.String("rrule", override.RRule),
			zap.Int("roles", len(roles)))
	}

	return result, nil
}

// scoringSettings applies configured weights over the defaults
func scoringSettings(cfg *config.Config) (criteria.Settings, error) {
	settings := criteria.DefaultSettings()
	scoring := cfg.Scoring

	if scoring.SpecialtyWeight != nil {
		settings.SpecialtyWeight = *scoring.SpecialtyWeight
	}
	if scoring.BandWeight != nil {
		settings.BandWeight = *scoring.BandWeight
	}
	if scoring.WorkloadWeight != nil {
		settings.WorkloadWeight = *scoring.WorkloadWeight
	}
	if scoring.CostWeight != nil {
		settings.CostWeight = *scoring.CostWeight
	}
	if scoring.DistanceWeight != nil {
		settings.DistanceWeight = *scoring.DistanceWeight
	}

	expectedBands, err := parseRoleQuantities(scoring.ExpectedBands)
	if err != nil {
		return criteria.Settings{}, fmt.Errorf("invalid scoring.expectedBands: %w", err)
	}
	settings.ExpectedBands = expectedBands
	settings.BandSpan = scoring.BandSpan
	settings.MaxBandDeviation = scoring.MaxBandDeviation
	settings.MaxShiftsPerRun = scoring.MaxShiftsPerRun
	settings.CostScale = scoring.CostScale
	settings.DistanceScale = scoring.DistanceScale

	return settings, nil
}

// parseRoleQuantities canonicalises role keys, summing quantities of synonymous keys
func parseRoleQuantities(raw map[string]int) (map[model.Role]int, error) {
	result := make(map[model.Role]int, len(raw))
	for name, quantity := range raw {
		role, err := model.ParseRole(name)
		if err != nil {
			return nil, err
		}
		result[role] += quantity
	}
	return result, nil
}

// convertTheatres converts database theatres to model theatres, keeping order
func convertTheatres(records []db.Theatre) []model.Theatre {
	theatres := make([]model.Theatre, len(records))
	for i, r := range records {
		theatres[i] = model.Theatre{
			ID:                 r.ID,
			Name:               r.Name,
			HospitalID:         r.HospitalID,
			Type:               strings.ToLower(r.Type),
			AlwaysOn:           r.AlwaysOn,
			DefaultSessionType: r.DefaultSessionType,
		}
		if r.Lat != nil && r.Lng != nil {
			theatres[i].Site = &model.Coordinates{Lat: *r.Lat, Lng: *r.Lng}
		}
	}
	return theatres
}

func convertCalendar(records []db.DayConfiguration) []requirements.CalendarEntry {
	entries := make([]requirements.CalendarEntry, len(records))
	for i, r := range records {
		entries[i] = requirements.CalendarEntry{Date: r.Date, TheatreID: r.TheatreID, SessionType: r.SessionType}
	}
	return entries
}

// convertTheatreLists flattens cases into procedure names and surgeons
func convertTheatreLists(records []db.TheatreList) []requirements.TheatreList {
	lists := make([]requirements.TheatreList, len(records))
	for i, r := range records {
		list := requirements.TheatreList{
			TheatreName: r.TheatreName,
			Date:        r.Date,
			Specialty:   r.Specialty,
			SessionType: r.SessionType,
			Surgeons:    append([]string{}, r.Surgeons...),
		}
		for _, c := range r.Cases {
			if name := strings.TrimSpace(c.ProcedureName); name != "" {
				list.Procedures = append(list.Procedures, name)
			}
			if c.Surgeon != "" {
				list.Surgeons = append(list.Surgeons, c.Surgeon)
			}
		}
		lists[i] = list
	}
	return lists
}

// filterActiveStaff returns staff whose status is active. An empty status counts as active.
func filterActiveStaff(staff []db.Staff) []db.Staff {
	active := make([]db.Staff, 0, len(staff))
	for _, s := range staff {
		if s.Status == "" || strings.EqualFold(s.Status, db.StaffStatusActive) {
			active = append(active, s)
		}
	}
	return active
}

// convertStaff builds scoring candidates from staff records.
// Records without an id or role are skipped and their ids (or names) returned.
// Competency tags naming a specialty also carry its canonical id.
func convertStaff(records []db.Staff, resolveSpecialty func(string) string) ([]model.StaffCandidate, []string) {
	candidates := make([]model.StaffCandidate, 0, len(records))
	var skipped []string

	for _, r := range records {
		role, err := model.ParseRole(r.Role)
		if err != nil || r.ID == "" {
			label := r.ID
			if label == "" {
				label = r.DisplayName
			}
			skipped = append(skipped, label)
			continue
		}

		candidate := model.StaffCandidate{
			ID:               r.ID,
			DisplayName:      r.DisplayName,
			Role:             role,
			Band:             parseBand(r.Band),
			HourlyRate:       r.HourlyRate,
			Competencies:     make([]string, 0, len(r.Competencies)),
			UnavailableDates: dateSet(r.UnavailableDates),
			AllocatedDates:   dateSet(r.AllocatedDates),
		}
		for _, competency := range r.Competencies {
			tag := strings.ToLower(strings.TrimSpace(competency))
			if tag == "" {
				continue
			}
			candidate.Competencies = appendCompetency(candidate.Competencies, tag)
			if resolveSpecialty != nil {
				candidate.Competencies = appendCompetency(candidate.Competencies, strings.ToLower(resolveSpecialty(tag)))
			}
		}
		if r.HomeLat != nil && r.HomeLng != nil {
			candidate.Home = &model.Coordinates{Lat: *r.HomeLat, Lng: *r.HomeLng}
		}

		candidates = append(candidates, candidate)
	}

	return candidates, skipped
}

func appendCompetency(competencies []string, tag string) []string {
	for _, existing := range competencies {
		if existing == tag {
			return competencies
		}
	}
	return append(competencies, tag)
}

// parseBand reads an Agenda for Change band such as "Band 5", "5" or "8a".
// Sub-bands count as their numeric band. Unknown values return 0.
func parseBand(raw string) int {
	s := strings.TrimSpace(strings.ToLower(raw))
	s = strings.TrimSpace(strings.TrimPrefix(s, "band"))

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}

	band, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return band
}

func dateSet(dates []string) map[string]bool {
	if len(dates) == 0 {
		return nil
	}
	set := make(map[string]bool, len(dates))
	for _, date := range dates {
		set[date] = true
	}
	return set
}
