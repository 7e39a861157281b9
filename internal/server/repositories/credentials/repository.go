package credentials

import (
	"context"

	"github.com/crewbase/crewbase/internal/server/models"
	"github.com/crewbase/crewbase/internal/storex"
)

// Repository reads credentials rows and builds the statements the
// provisioning service pairs with account writes.
type Repository interface {
	Get(ctx context.Context, accountID string) (*models.Credentials, error)
	// UpdateDigest rotates the stored password digest.
	UpdateDigest(ctx context.Context, accountID, digest string) error

	InsertStmt(creds *models.Credentials) storex.Statement
	DeleteStmt(accountID string) storex.Statement
}
