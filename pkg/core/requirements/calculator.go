package requirements

import (
	"errors"
	"sort"
	"strings"

	"github.com/jakechorley/theatre-roster/pkg/core/model"
)

// ErrConfigurationMissing is returned when no default role table is configured.
// It is distinct from a configured table that needs zero staff.
var ErrConfigurationMissing = errors.New("default role table is not configured")

// EmergencySpecialtyID is the synthetic specialty emergency and trauma theatres resolve to
const EmergencySpecialtyID = "emergency"

// DefaultEmergencyScrubUplift is added to scrub roles on emergency and trauma theatres
const DefaultEmergencyScrubUplift = 1

// Specialty is a canonical specialty record
type Specialty struct {
	ID      string
	Name    string
	Aliases []string
}

// MappingRule adds role quantities to sessions of a specialty.
// A rule with ApplyToAll set, or with no keywords at all, applies unconditionally.
// Otherwise it applies when any procedure name contains any keyword (case-insensitive).
type MappingRule struct {
	SpecialtyID string

	// Keyword is the legacy single-keyword form and is treated as part of Keywords
	Keyword  string
	Keywords []string

	ApplyToAll bool
	Roles      map[model.Role]int
}

// Override replaces calculated requirements for a theatre on matching dates
type Override struct {
	TheatreID string

	// AppliesTo restricts the override to some dates. Nil applies to every date.
	AppliesTo func(date string) bool

	Roles []model.RoleRequirement
}

// Config holds the read-only inputs to requirement calculation
type Config struct {
	DefaultRoles         map[model.Role]int
	EmergencyScrubUplift int
	Specialties          []Specialty
	MappingRules         []MappingRule
	Overrides            []Override
}

// Calculator derives role requirements for theatre sessions
type Calculator struct {
	cfg Config
}

// NewCalculator creates a Calculator for the given configuration
func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// CheckConfigured returns ErrConfigurationMissing when there is no default role table
func (c *Calculator) CheckConfigured() error {
	if len(c.cfg.DefaultRoles) == 0 {
		return ErrConfigurationMissing
	}
	return nil
}

// CalculateRequirements returns the role requirements for a session, sorted
// anaesthetic roles first, then scrub roles, then the rest alphabetically.
// A per-theatre override is returned verbatim and skips all other logic.
func (c *Calculator) CalculateRequirements(session model.TheatreSession, theatre model.Theatre, procedureNames []string) ([]model.RoleRequirement, error) {
	if session.IsClosed() {
		return []model.RoleRequirement{}, nil
	}

	if override := c.findOverride(theatre.ID, session.Date); override != nil {
		result := make([]model.RoleRequirement, len(override.Roles))
		for i, req := range override.Roles {
			result[i] = model.RoleRequirement{SessionID: session.ID, Role: req.Role, Quantity: req.Quantity}
		}
		return result, nil
	}

	if err := c.CheckConfigured(); err != nil {
		return []model.RoleRequirement{}, err
	}

	totals := make(map[model.Role]int, len(c.cfg.DefaultRoles))
	for role, quantity := range c.cfg.DefaultRoles {
		totals[role] = quantity
	}

	if theatre.IsEmergency() {
		for role := range totals {
			if role.Family() == model.FamilyScrub {
				totals[role] += c.cfg.EmergencyScrubUplift
			}
		}
	}

	specialtyID := c.SpecialtyFor(session, theatre)

	lowerProcedures := make([]string, len(procedureNames))
	for i, name := range procedureNames {
		lowerProcedures[i] = strings.ToLower(name)
	}

	for _, rule := range c.cfg.MappingRules {
		if !strings.EqualFold(rule.SpecialtyID, specialtyID) {
			continue
		}
		if !ruleMatches(rule, lowerProcedures) {
			continue
		}
		for role, quantity := range rule.Roles {
			totals[role] += quantity
		}
	}

	return sortedRequirements(session.ID, totals), nil
}

// SpecialtyFor returns the canonical specialty a session is calculated under.
// Emergency and trauma theatres always resolve to the emergency specialty.
func (c *Calculator) SpecialtyFor(session model.TheatreSession, theatre model.Theatre) string {
	if theatre.IsEmergency() {
		return EmergencySpecialtyID
	}
	return c.ResolveSpecialty(session.Specialty)
}

// ResolveSpecialty maps a free-text specialty onto a canonical specialty id.
// Unknown specialties resolve to their lower-cased name.
func (c *Calculator) ResolveSpecialty(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}

	for _, specialty := range c.cfg.Specialties {
		if strings.EqualFold(specialty.ID, trimmed) || strings.EqualFold(specialty.Name, trimmed) {
			return specialty.ID
		}
		for _, alias := range specialty.Aliases {
			if strings.EqualFold(alias, trimmed) {
				return specialty.ID
			}
		}
	}

	return strings.ToLower(trimmed)
}

func (c *Calculator) findOverride(theatreID, date string) *Override {
	for i := range c.cfg.Overrides {
		override := &c.cfg.Overrides[i]
		if override.TheatreID != theatreID {
			continue
		}
		if override.AppliesTo != nil && !override.AppliesTo(date) {
			continue
		}
		return override
	}
	return nil
}

// ruleMatches reports whether a mapping rule applies to the (lower-cased) procedures
func ruleMatches(rule MappingRule, lowerProcedures []string) bool {
	keywords := ruleKeywords(rule)
	if rule.ApplyToAll || len(keywords) == 0 {
		return true
	}

	for _, procedure := range lowerProcedures {
		for _, keyword := range keywords {
			if strings.Contains(procedure, keyword) {
				return true
			}
		}
	}
	return false
}

func ruleKeywords(rule MappingRule) []string {
	keywords := make([]string, 0, len(rule.Keywords)+1)
	for _, keyword := range append([]string{rule.Keyword}, rule.Keywords...) {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword != "" {
			keywords = append(keywords, keyword)
		}
	}
	return keywords
}

// sortedRequirements drops zero quantities and applies the role priority order
func sortedRequirements(sessionID string, totals map[model.Role]int) []model.RoleRequirement {
	result := make([]model.RoleRequirement, 0, len(totals))
	for role, quantity := range totals {
		if quantity <= 0 {
			continue
		}
		result = append(result, model.RoleRequirement{SessionID: sessionID, Role: role, Quantity: quantity})
	}

	sort.Slice(result, func(i, j int) bool {
		return model.RoleLess(result[i].Role, result[j].Role)
	})

	return result
}
