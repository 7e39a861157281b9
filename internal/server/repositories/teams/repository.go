package teams

import (
	"context"

	"github.com/crewbase/crewbase/internal/server/models"
	"github.com/crewbase/crewbase/internal/storex"
)

// Repository reads team rows and builds provisioning statements.
type Repository interface {
	Get(ctx context.Context, id string) (*models.Team, error)
	// GetByName is a filtered secondary read over the teams table. O(n)
	// without a native index; the name index table exists for reservations,
	// this read mirrors the uniqueness check's observed shape.
	GetByName(ctx context.Context, name string) (*models.Team, error)
	Insert(ctx context.Context, team *models.Team) error
	Update(ctx context.Context, team *models.Team) error

	DeleteStmt(id string) storex.Statement
	NameIndexDeleteStmt(name string) storex.Statement
}
