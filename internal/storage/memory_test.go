package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"stablehand/internal/domain"
	id "stablehand/pkg/domain"
	"stablehand/pkg/platform/sentinel"
)

type InMemorySuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	now   time.Time
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemorySuite))
}

func (s *InMemorySuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.now = time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC)
}

func (s *InMemorySuite) newUser(name string) *domain.User {
	user, err := domain.NewUser(id.NewUserID(), name, s.now)
	s.Require().NoError(err)
	return user
}

func (s *InMemorySuite) newStable(name string) *domain.Stable {
	stable, err := domain.NewStable(id.NewStableID(), name, "", s.now)
	s.Require().NoError(err)
	return stable
}

func (s *InMemorySuite) seedUserAndStable() (*domain.User, *domain.Stable) {
	user := s.newUser("Astrid")
	stable := s.newStable("Hilltop")
	s.Require().NoError(s.store.CreateUser(s.ctx, user))
	s.Require().NoError(s.store.CreateStable(s.ctx, stable))
	return user, stable
}

func (s *InMemorySuite) TestUserLifecycle() {
	s.Run("creates and finds user", func() {
		user := s.newUser("Astrid")
		s.Require().NoError(s.store.CreateUser(s.ctx, user))

		found, err := s.store.FindUser(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Equal("Astrid", found.DisplayName)
	})

	s.Run("rejects duplicate id", func() {
		user := s.newUser("Bo")
		s.Require().NoError(s.store.CreateUser(s.ctx, user))
		s.ErrorIs(s.store.CreateUser(s.ctx, user), sentinel.ErrConflict)
	})

	s.Run("returns ErrNotFound for unknown id", func() {
		_, err := s.store.FindUser(s.ctx, id.NewUserID())
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("lists users in creation order", func() {
		store := NewInMemory()
		first := s.newUser("First")
		second := s.newUser("Second")
		s.Require().NoError(store.CreateUser(s.ctx, first))
		s.Require().NoError(store.CreateUser(s.ctx, second))

		users, err := store.ListUsers(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(users, 2)
		s.Equal(first.ID, users[0].ID)
		s.Equal(second.ID, users[1].ID)
	})
}

func (s *InMemorySuite) TestDefensiveCopies() {
	s.Run("mutating a found user does not touch the store", func() {
		user, _ := s.seedUserAndStable()

		found, err := s.store.FindUser(s.ctx, user.ID)
		s.Require().NoError(err)
		found.DisplayName = "Mangled"

		again, err := s.store.FindUser(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Equal("Astrid", again.DisplayName)
	})

	s.Run("mutating listed memberships does not touch the store", func() {
		user, stable := s.seedUserAndStable()
		m, err := domain.NewMembership(user.ID, stable.ID, domain.RoleStaff, domain.AccessView, s.now)
		s.Require().NoError(err)
		s.Require().NoError(s.store.PutMembership(s.ctx, m))

		listed, err := s.store.ListMemberships(s.ctx, user.ID)
		s.Require().NoError(err)
		listed[0].Access = domain.AccessOwner

		again, err := s.store.ListMemberships(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Equal(domain.AccessView, again[0].Access)
	})
}

func (s *InMemorySuite) TestMemberships() {
	s.Run("rejects orphan membership when user missing", func() {
		_, stable := s.seedUserAndStable()
		m, err := domain.NewMembership(id.NewUserID(), stable.ID, domain.RoleStaff, domain.AccessView, s.now)
		s.Require().NoError(err)
		s.ErrorIs(s.store.PutMembership(s.ctx, m), sentinel.ErrOrphaned)
	})

	s.Run("rejects orphan membership when stable missing", func() {
		user, _ := s.seedUserAndStable()
		m, err := domain.NewMembership(user.ID, id.NewStableID(), domain.RoleStaff, domain.AccessView, s.now)
		s.Require().NoError(err)
		s.ErrorIs(s.store.PutMembership(s.ctx, m), sentinel.ErrOrphaned)
	})

	s.Run("upserts in place, one membership per pair", func() {
		user, stable := s.seedUserAndStable()
		first, err := domain.NewMembership(user.ID, stable.ID, domain.RoleStaff, domain.AccessView, s.now)
		s.Require().NoError(err)
		s.Require().NoError(s.store.PutMembership(s.ctx, first))

		second, err := domain.NewMembership(user.ID, stable.ID, domain.RoleTrainer, domain.AccessEdit, s.now)
		s.Require().NoError(err)
		s.Require().NoError(s.store.PutMembership(s.ctx, second))

		memberships, err := s.store.ListMemberships(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Require().Len(memberships, 1)
		s.Equal(domain.RoleTrainer, memberships[0].Role)
		s.Equal(domain.AccessEdit, memberships[0].Access)
	})

	s.Run("removes a membership", func() {
		user, stable := s.seedUserAndStable()
		m, err := domain.NewMembership(user.ID, stable.ID, domain.RoleStaff, domain.AccessView, s.now)
		s.Require().NoError(err)
		s.Require().NoError(s.store.PutMembership(s.ctx, m))

		s.Require().NoError(s.store.RemoveMembership(s.ctx, user.ID, stable.ID))
		memberships, err := s.store.ListMemberships(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Empty(memberships)
	})

	s.Run("lists a stable's members across users", func() {
		user, stable := s.seedUserAndStable()
		other := s.newUser("Bodil")
		s.Require().NoError(s.store.CreateUser(s.ctx, other))

		for _, uid := range []id.UserID{user.ID, other.ID} {
			m, err := domain.NewMembership(uid, stable.ID, domain.RoleRider, domain.AccessView, s.now)
			s.Require().NoError(err)
			s.Require().NoError(s.store.PutMembership(s.ctx, m))
		}

		members, err := s.store.ListMembers(s.ctx, stable.ID)
		s.Require().NoError(err)
		s.Len(members, 2)
	})
}

func (s *InMemorySuite) TestExecuteValidateThenMutate() {
	s.Run("rejected validation leaves the stable untouched", func() {
		_, stable := s.seedUserAndStable()

		_, err := s.store.ExecuteStable(s.ctx, stable.ID,
			func(*domain.Stable) error { return sentinel.ErrInvalidState },
			func(st *domain.Stable) { st.Name = "Should Not Apply" },
		)
		s.ErrorIs(err, sentinel.ErrInvalidState)

		found, err := s.store.FindStable(s.ctx, stable.ID)
		s.Require().NoError(err)
		s.Equal("Hilltop", found.Name)
	})

	s.Run("successful execute commits and returns a copy", func() {
		_, stable := s.seedUserAndStable()

		updated, err := s.store.ExecuteStable(s.ctx, stable.ID,
			func(*domain.Stable) error { return nil },
			func(st *domain.Stable) { st.Name = "Renamed" },
		)
		s.Require().NoError(err)
		s.Equal("Renamed", updated.Name)

		updated.Name = "Mangled"
		found, err := s.store.FindStable(s.ctx, stable.ID)
		s.Require().NoError(err)
		s.Equal("Renamed", found.Name)
	})
}

func (s *InMemorySuite) TestAssignments() {
	s.Run("create rejects unknown stable", func() {
		a, err := domain.NewAssignment(id.NewAssignmentID(), id.NewStableID(), "2024-03-09", domain.SlotMorning, domain.TaskFeeding, "", s.now)
		s.Require().NoError(err)
		s.ErrorIs(s.store.CreateAssignment(s.ctx, a), sentinel.ErrOrphaned)
	})

	s.Run("range query uses inclusive date bounds", func() {
		_, stable := s.seedUserAndStable()
		for _, date := range []domain.Date{"2024-03-08", "2024-03-09", "2024-03-10", "2024-03-11"} {
			a, err := domain.NewAssignment(id.NewAssignmentID(), stable.ID, date, domain.SlotMorning, domain.TaskFeeding, "", s.now)
			s.Require().NoError(err)
			s.Require().NoError(s.store.CreateAssignment(s.ctx, a))
		}

		got, err := s.store.ListAssignmentsInRange(s.ctx, stable.ID, "2024-03-09", "2024-03-10")
		s.Require().NoError(err)
		s.Require().Len(got, 2)
		s.Equal(domain.Date("2024-03-09"), got[0].Date)
		s.Equal(domain.Date("2024-03-10"), got[1].Date)
	})

	s.Run("delete removes from listing order", func() {
		_, stable := s.seedUserAndStable()
		a, err := domain.NewAssignment(id.NewAssignmentID(), stable.ID, "2024-03-09", domain.SlotMorning, domain.TaskFeeding, "", s.now)
		s.Require().NoError(err)
		s.Require().NoError(s.store.CreateAssignment(s.ctx, a))

		s.Require().NoError(s.store.DeleteAssignment(s.ctx, a.ID))
		s.ErrorIs(s.store.DeleteAssignment(s.ctx, a.ID), sentinel.ErrNotFound)

		listed, err := s.store.ListAssignments(s.ctx, stable.ID)
		s.Require().NoError(err)
		s.Empty(listed)
	})
}

func (s *InMemorySuite) TestSelection() {
	s.Run("switch to unknown user fails without moving the pointer", func() {
		user, _ := s.seedUserAndStable()
		s.Require().NoError(s.store.SetCurrentUser(s.ctx, user.ID))

		s.ErrorIs(s.store.SetCurrentUser(s.ctx, id.NewUserID()), sentinel.ErrNotFound)

		sel, err := s.store.Selection(s.ctx)
		s.Require().NoError(err)
		s.Equal(user.ID, sel.CurrentUserID)
	})

	s.Run("switch to unknown stable fails without moving the pointer", func() {
		_, stable := s.seedUserAndStable()
		s.Require().NoError(s.store.SetCurrentStable(s.ctx, stable.ID))

		s.ErrorIs(s.store.SetCurrentStable(s.ctx, id.NewStableID()), sentinel.ErrNotFound)

		sel, err := s.store.Selection(s.ctx)
		s.Require().NoError(err)
		s.Equal(stable.ID, sel.CurrentStableID)
	})
}
