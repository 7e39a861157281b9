package accounts

import (
	"context"

	"github.com/crewbase/crewbase/internal/server/models"
	"github.com/crewbase/crewbase/internal/storex"
)

// Repository reads account rows and builds the statements the provisioning
// service groups into batches. Statement builders do not touch the store.
type Repository interface {
	Get(ctx context.Context, id string) (*models.Account, error)
	// GetByEmail reads the accounts_by_email index table, then resolves the
	// owning account row.
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	// EmailIndexOwner reads only the index row and returns the owning
	// account id, or common.ErrNotFound.
	EmailIndexOwner(ctx context.Context, email string) (string, error)
	Update(ctx context.Context, account *models.Account) error

	InsertStmt(account *models.Account) storex.Statement
	DeleteStmt(id string) storex.Statement
	EmailIndexDeleteStmt(email string) storex.Statement
}
