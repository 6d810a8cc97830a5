package storage

import (
	"context"
	"time"

	"stablehand/internal/domain"
	id "stablehand/pkg/domain"
)

// SeedBootstrap creates a default stable with one owner so a fresh process
// has something to render before real onboarding runs.
func SeedBootstrap(s *InMemory) (*domain.User, *domain.Stable) {
	ctx := context.Background()
	now := time.Now()

	stable, _ := domain.NewStable(id.NewStableID(), "Demo Stable", "Local", now)
	_ = s.CreateStable(ctx, stable)

	owner, _ := domain.NewUser(id.NewUserID(), "Demo Owner", now)
	_ = s.CreateUser(ctx, owner)

	m, _ := domain.NewMembership(owner.ID, stable.ID, domain.RoleAdmin, domain.AccessOwner, now)
	_ = s.PutMembership(ctx, m)

	_ = s.SetCurrentUser(ctx, owner.ID)
	_ = s.SetCurrentStable(ctx, stable.ID)

	return owner, stable
}
