package model

import (
	"fmt"
	"sort"
	"strings"
)

// Role is a canonical staff role name. Construct with ParseRole so that synonyms
// are resolved once, at ingestion.
type Role string

// Canonical roles used by the default tables
const (
	RoleAnaesNP            Role = "Anaes N/P"
	RoleScrubNP            Role = "Scrub N/P"
	RoleHCA                Role = "HCA"
	RoleRecoveryNP         Role = "Recovery N/P"
	RoleTheatreCoordinator Role = "Theatre Coordinator"
	RoleFloorCoordinator   Role = "Floor Coordinator"
	RoleFloater            Role = "Floater"
)

// RoleFamily groups roles for display ordering and reporting
type RoleFamily int

const (
	FamilyAnaesthetic RoleFamily = iota
	FamilyScrub
	FamilyOther
)

func (f RoleFamily) String() string {
	switch f {
	case FamilyAnaesthetic:
		return "anaesthetic"
	case FamilyScrub:
		return "scrub"
	default:
		return "other"
	}
}

// roleFamilies is the single source of truth for role families.
// Roles not listed here belong to FamilyOther.
var roleFamilies = map[Role]RoleFamily{
	RoleAnaesNP: FamilyAnaesthetic,
	RoleScrubNP: FamilyScrub,
}

// roleSynonyms maps lower-cased aliases to canonical roles
var roleSynonyms = map[string]Role{
	"anaes n/p":                RoleAnaesNP,
	"anaesthetic nurse":        RoleAnaesNP,
	"anaesthetic practitioner": RoleAnaesNP,
	"anaesthetic-practitioner": RoleAnaesNP,
	"anaes np":                 RoleAnaesNP,
	"odp":                      RoleAnaesNP,
	"scrub n/p":                RoleScrubNP,
	"scrub nurse":              RoleScrubNP,
	"scrub practitioner":       RoleScrubNP,
	"scrub-practitioner":       RoleScrubNP,
	"scrubn/p":                 RoleScrubNP,
	"hca":                      RoleHCA,
	"health care assistant":    RoleHCA,
	"healthcare assistant":     RoleHCA,
	"recovery n/p":             RoleRecoveryNP,
	"recovery nurse":           RoleRecoveryNP,
	"theatre coordinator":      RoleTheatreCoordinator,
	"floor coordinator":        RoleFloorCoordinator,
	"floater":                  RoleFloater,
}

// nightRoles maps night on-call role names to their day-equivalent bucket.
// Names not listed fall back to stripping the NightPrefix.
var nightRoles = map[string]Role{
	"night anaes n/p": RoleAnaesNP,
	"night scrub n/p": RoleScrubNP,
	"night hca":       RoleHCA,
}

// NightPrefix is stripped from night staffing roles when folding into day buckets
const NightPrefix = "Night "

// ParseRole validates and canonicalises a free-text role name
func ParseRole(name string) (Role, error) {
	trimmed := strings.Join(strings.Fields(name), " ")
	if trimmed == "" {
		return "", fmt.Errorf("role name must not be empty")
	}
	if canonical, ok := roleSynonyms[strings.ToLower(trimmed)]; ok {
		return canonical, nil
	}
	return Role(trimmed), nil
}

// MustParseRole is ParseRole for compile-time constants and tests
func MustParseRole(name string) Role {
	role, err := ParseRole(name)
	if err != nil {
		panic(err)
	}
	return role
}

// RegisterRoleSynonyms adds aliases for a canonical role. It is intended to be
// called once at startup from configuration, before any roles are parsed.
func RegisterRoleSynonyms(canonical Role, aliases []string) {
	for _, alias := range aliases {
		key := strings.ToLower(strings.Join(strings.Fields(alias), " "))
		if key == "" {
			continue
		}
		roleSynonyms[key] = canonical
	}
}

// Family returns the role's family from the lookup table
func (r Role) Family() RoleFamily {
	if family, ok := roleFamilies[r]; ok {
		return family
	}
	return FamilyOther
}

func (r Role) String() string {
	return string(r)
}

// DayEquivalent folds a night staffing role into the role bucket it is reported under
func DayEquivalent(name string) (Role, error) {
	trimmed := strings.Join(strings.Fields(name), " ")
	if role, ok := nightRoles[strings.ToLower(trimmed)]; ok {
		return role, nil
	}
	if len(trimmed) > len(NightPrefix) && strings.EqualFold(trimmed[:len(NightPrefix)], NightPrefix) {
		trimmed = trimmed[len(NightPrefix):]
	}
	return ParseRole(trimmed)
}

// RoleLess reports whether a sorts before b: anaesthetic roles first, then scrub,
// then everything else alphabetically by name
func RoleLess(a, b Role) bool {
	fa, fb := a.Family(), b.Family()
	if fa != fb {
		return fa < fb
	}
	return a < b
}

// SortRoles sorts roles in place using RoleLess
func SortRoles(roles []Role) {
	sort.Slice(roles, func(i, j int) bool {
		return RoleLess(roles[i], roles[j])
	})
}
