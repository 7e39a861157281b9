package preferences

import (
	"context"

	"github.com/crewbase/crewbase/internal/server/models"
)

// Repository is a single-row preferences DAO, written as best-effort
// follow-on provisioning after signup.
type Repository interface {
	Upsert(ctx context.Context, p *models.Preferences) error
	Get(ctx context.Context, accountID string) (*models.Preferences, error)
}
