package storage

import (
	"context"
	"sync"

	"stablehand/internal/domain"
	id "stablehand/pkg/domain"
	"stablehand/pkg/platform/sentinel"
)

// InMemory is the canonical in-process store. One mutex guards every
// collection because the referential invariants (memberships, selection,
// paddock/assignment ownership) span entities; a write either observes and
// commits a fully consistent view or is rejected.
//
// All returned entities are deep copies.
type InMemory struct {
	mu sync.RWMutex

	users     map[id.UserID]*domain.User
	userOrder []id.UserID

	stables     map[id.StableID]*domain.Stable
	stableOrder []id.StableID

	paddocks     map[id.PaddockID]*domain.Paddock
	paddockOrder []id.PaddockID

	assignments     map[id.AssignmentID]*domain.Assignment
	assignmentOrder []id.AssignmentID

	selection domain.Selection
}

// NewInMemory returns an empty store.
func NewInMemory() *InMemory {
	return &InMemory{
		users:       make(map[id.UserID]*domain.User),
		stables:     make(map[id.StableID]*domain.Stable),
		paddocks:    make(map[id.PaddockID]*domain.Paddock),
		assignments: make(map[id.AssignmentID]*domain.Assignment),
	}
}

// --- UserStore ---

func (s *InMemory) CreateUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; ok {
		return sentinel.ErrConflict
	}
	s.users[user.ID] = user.Clone()
	s.userOrder = append(s.userOrder, user.ID)
	return nil
}

func (s *InMemory) FindUser(_ context.Context, userID id.UserID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if user, ok := s.users[userID]; ok {
		return user.Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) ListUsers(_ context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.User, 0, len(s.userOrder))
	for _, uid := range s.userOrder {
		out = append(out, s.users[uid].Clone())
	}
	return out, nil
}

func (s *InMemory) ExecuteUser(_ context.Context, userID id.UserID, validate func(*domain.User) error, mutate func(*domain.User)) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := validate(user.Clone()); err != nil {
		return nil, err
	}
	mutate(user)
	return user.Clone(), nil
}

// --- StableStore ---

func (s *InMemory) CreateStable(_ context.Context, stable *domain.Stable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stables[stable.ID]; ok {
		return sentinel.ErrConflict
	}
	s.stables[stable.ID] = stable.Clone()
	s.stableOrder = append(s.stableOrder, stable.ID)
	return nil
}

func (s *InMemory) FindStable(_ context.Context, stableID id.StableID) (*domain.Stable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if stable, ok := s.stables[stableID]; ok {
		return stable.Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) ListStables(_ context.Context) ([]*domain.Stable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Stable, 0, len(s.stableOrder))
	for _, sid := range s.stableOrder {
		out = append(out, s.stables[sid].Clone())
	}
	return out, nil
}

func (s *InMemory) ExecuteStable(_ context.Context, stableID id.StableID, validate func(*domain.Stable) error, mutate func(*domain.Stable)) (*domain.Stable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stable, ok := s.stables[stableID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := validate(stable.Clone()); err != nil {
		return nil, err
	}
	mutate(stable)
	return stable.Clone(), nil
}

// --- MembershipStore ---

// PutMembership upserts the membership for (m.UserID, m.StableID). Both ends
// must exist; the one-per-pair invariant holds because an existing entry is
// replaced in place.
func (s *InMemory) PutMembership(_ context.Context, m domain.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[m.UserID]
	if !ok {
		return sentinel.ErrOrphaned
	}
	if _, ok := s.stables[m.StableID]; !ok {
		return sentinel.ErrOrphaned
	}
	for i := range user.Memberships {
		if user.Memberships[i].StableID == m.StableID {
			user.Memberships[i] = m
			return nil
		}
	}
	user.Memberships = append(user.Memberships, m)
	return nil
}

func (s *InMemory) RemoveMembership(_ context.Context, userID id.UserID, stableID id.StableID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return sentinel.ErrNotFound
	}
	for i := range user.Memberships {
		if user.Memberships[i].StableID == stableID {
			user.Memberships = append(user.Memberships[:i], user.Memberships[i+1:]...)
			return nil
		}
	}
	return sentinel.ErrNotFound
}

func (s *InMemory) ListMemberships(_ context.Context, userID id.UserID) ([]domain.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return append([]domain.Membership(nil), user.Memberships...), nil
}

func (s *InMemory) ListMembers(_ context.Context, stableID id.StableID) ([]domain.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.stables[stableID]; !ok {
		return nil, sentinel.ErrNotFound
	}
	var out []domain.Membership
	for _, uid := range s.userOrder {
		if m, ok := s.users[uid].MembershipFor(stableID); ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// --- PaddockStore ---

func (s *InMemory) CreatePaddock(_ context.Context, p *domain.Paddock) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stables[p.StableID]; !ok {
		return sentinel.ErrOrphaned
	}
	if _, ok := s.paddocks[p.ID]; ok {
		return sentinel.ErrConflict
	}
	s.paddocks[p.ID] = p.Clone()
	s.paddockOrder = append(s.paddockOrder, p.ID)
	return nil
}

func (s *InMemory) FindPaddock(_ context.Context, paddockID id.PaddockID) (*domain.Paddock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.paddocks[paddockID]; ok {
		return p.Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) ListPaddocks(_ context.Context, stableID id.StableID) ([]*domain.Paddock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*domain.Paddock
	for _, pid := range s.paddockOrder {
		if p := s.paddocks[pid]; p.StableID == stableID {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

func (s *InMemory) ExecutePaddock(_ context.Context, paddockID id.PaddockID, validate func(*domain.Paddock) error, mutate func(*domain.Paddock)) (*domain.Paddock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.paddocks[paddockID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := validate(p.Clone()); err != nil {
		return nil, err
	}
	mutate(p)
	return p.Clone(), nil
}

func (s *InMemory) DeletePaddock(_ context.Context, paddockID id.PaddockID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.paddocks[paddockID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.paddocks, paddockID)
	for i, pid := range s.paddockOrder {
		if pid == paddockID {
			s.paddockOrder = append(s.paddockOrder[:i], s.paddockOrder[i+1:]...)
			break
		}
	}
	return nil
}

// --- AssignmentStore ---

func (s *InMemory) CreateAssignment(_ context.Context, a *domain.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stables[a.StableID]; !ok {
		return sentinel.ErrOrphaned
	}
	if _, ok := s.assignments[a.ID]; ok {
		return sentinel.ErrConflict
	}
	s.assignments[a.ID] = a.Clone()
	s.assignmentOrder = append(s.assignmentOrder, a.ID)
	return nil
}

func (s *InMemory) FindAssignment(_ context.Context, assignmentID id.AssignmentID) (*domain.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.assignments[assignmentID]; ok {
		return a.Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

// ListAssignments returns the stable's assignments in insertion order, which
// is what the schedule aggregator relies on for within-day ordering.
func (s *InMemory) ListAssignments(_ context.Context, stableID id.StableID) ([]*domain.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*domain.Assignment
	for _, aid := range s.assignmentOrder {
		if a := s.assignments[aid]; a.StableID == stableID {
			out = append(out, a.Clone())
		}
	}
	return out, nil
}

func (s *InMemory) ListAssignmentsInRange(_ context.Context, stableID id.StableID, from, to domain.Date) ([]*domain.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*domain.Assignment
	for _, aid := range s.assignmentOrder {
		a := s.assignments[aid]
		if a.StableID != stableID {
			continue
		}
		// ISO dates compare correctly as strings.
		if (from == "" || a.Date >= from) && (to == "" || a.Date <= to) {
			out = append(out, a.Clone())
		}
	}
	return out, nil
}

func (s *InMemory) ExecuteAssignment(_ context.Context, assignmentID id.AssignmentID, validate func(*domain.Assignment) error, mutate func(*domain.Assignment)) (*domain.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assignments[assignmentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := validate(a.Clone()); err != nil {
		return nil, err
	}
	mutate(a)
	return a.Clone(), nil
}

func (s *InMemory) DeleteAssignment(_ context.Context, assignmentID id.AssignmentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assignments[assignmentID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.assignments, assignmentID)
	for i, aid := range s.assignmentOrder {
		if aid == assignmentID {
			s.assignmentOrder = append(s.assignmentOrder[:i], s.assignmentOrder[i+1:]...)
			break
		}
	}
	return nil
}

// --- SelectionStore ---

func (s *InMemory) Selection(_ context.Context) (domain.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection, nil
}

func (s *InMemory) SetCurrentUser(_ context.Context, userID id.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return sentinel.ErrNotFound
	}
	s.selection.CurrentUserID = userID
	return nil
}

func (s *InMemory) SetCurrentStable(_ context.Context, stableID id.StableID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stables[stableID]; !ok {
		return sentinel.ErrNotFound
	}
	s.selection.CurrentStableID = stableID
	return nil
}
