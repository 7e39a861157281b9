package memberships

import (
	"context"

	"github.com/crewbase/crewbase/internal/server/models"
)

// Repository is a plain relation DAO: member rows carry no uniqueness or
// atomicity coupling to provisioning.
type Repository interface {
	Add(ctx context.Context, m *models.Membership) error
	Remove(ctx context.Context, teamID, accountID string) error
	ListByTeam(ctx context.Context, teamID string) ([]*models.Membership, error)
}
