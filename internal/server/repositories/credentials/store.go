package credentials

import (
	"context"
	"fmt"

	"github.com/crewbase/crewbase/internal/server/models"
	"github.com/crewbase/crewbase/internal/storex"
)

type StoreRepository struct {
	db storex.DB
}

func NewStoreRepository(db storex.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

func credentialsFromRow(row storex.Row) *models.Credentials {
	c := &models.Credentials{}
	c.AccountID, _ = row["account_id"].(string)
	c.PasswordDigest, _ = row["password_digest"].(string)
	c.Roles, _ = row["roles"].([]string)
	return c
}

func (r *StoreRepository) Get(ctx context.Context, accountID string) (*models.Credentials, error) {
	row, err := r.db.Get(ctx, models.TableCredentials, storex.Row{"account_id": accountID}, storex.LocalQuorum)
	if err != nil {
		return nil, err
	}
	return credentialsFromRow(row), nil
}

func (r *StoreRepository) UpdateDigest(ctx context.Context, accountID, digest string) error {
	creds, err := r.Get(ctx, accountID)
	if err != nil {
		return err
	}
	creds.PasswordDigest = digest
	if err := r.db.Write(ctx, r.InsertStmt(creds), storex.LocalQuorum); err != nil {
		return fmt.Errorf("rotate credentials: %w", err)
	}
	return nil
}

func (r *StoreRepository) InsertStmt(creds *models.Credentials) storex.Statement {
	return storex.Statement{
		Table: models.TableCredentials,
		Row: storex.Row{
			"account_id":      creds.AccountID,
			"password_digest": creds.PasswordDigest,
			"roles":           creds.Roles,
		},
	}
}

func (r *StoreRepository) DeleteStmt(accountID string) storex.Statement {
	return storex.Statement{
		Table:  models.TableCredentials,
		Row:    storex.Row{"account_id": accountID},
		Delete: true,
	}
}
