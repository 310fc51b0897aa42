package allocator

import (
	"fmt"
	"sort"

	"github.com/jakechorley/theatre-roster/pkg/core/model"
)

// CandidatePool is the read interface the scorer uses to find staff
type CandidatePool interface {
	// CandidatesForRole returns candidates holding the role, ordered by id
	CandidatesForRole(role model.Role) []*model.StaffCandidate

	// Candidate looks up a candidate by id
	Candidate(id string) (*model.StaffCandidate, bool)
}

// StaffPool is an in-memory CandidatePool indexed by canonical role
type StaffPool struct {
	byRole map[model.Role][]*model.StaffCandidate
	byID   map[string]*model.StaffCandidate
}

// NewStaffPool indexes candidates. Duplicate or empty ids are rejected.
func NewStaffPool(candidates []model.StaffCandidate) (*StaffPool, error) {
	pool := &StaffPool{
		byRole: make(map[model.Role][]*model.StaffCandidate),
		byID:   make(map[string]*model.StaffCandidate, len(candidates)),
	}

	for i := range candidates {
		candidate := candidates[i]
		if candidate.ID == "" {
			return nil, fmt.Errorf("candidate %q has no id", candidate.DisplayName)
		}
		if _, exists := pool.byID[candidate.ID]; exists {
			return nil, fmt.Errorf("duplicate candidate id %q", candidate.ID)
		}
		pool.byID[candidate.ID] = &candidate
		pool.byRole[candidate.Role] = append(pool.byRole[candidate.Role], &candidate)
	}

	for _, group := range pool.byRole {
		sort.Slice(group, func(i, j int) bool {
			return group[i].ID < group[j].ID
		})
	}

	return pool, nil
}

func (p *StaffPool) CandidatesForRole(role model.Role) []*model.StaffCandidate {
	return p.byRole[role]
}

func (p *StaffPool) Candidate(id string) (*model.StaffCandidate, bool) {
	candidate, ok := p.byID[id]
	return candidate, ok
}

// Len returns the number of candidates in the pool
func (p *StaffPool) Len() int {
	return len(p.byID)
}
