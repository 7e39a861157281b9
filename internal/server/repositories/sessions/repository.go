package sessions

import (
	"context"

	"github.com/crewbase/crewbase/internal/server/models"
)

// Repository is a single-row session DAO. Sessions are best-effort rows;
// account deletion leaves them behind (see DESIGN.md).
type Repository interface {
	Insert(ctx context.Context, s *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}
