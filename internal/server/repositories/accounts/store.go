package accounts

import (
	"context"
	"fmt"
	"time"

	"github.com/crewbase/crewbase/internal/server/models"
	"github.com/crewbase/crewbase/internal/storex"
)

type StoreRepository struct {
	db storex.DB
}

func NewStoreRepository(db storex.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

func accountFromRow(row storex.Row) *models.Account {
	a := &models.Account{}
	a.ID, _ = row["id"].(string)
	a.Email, _ = row["email"].(string)
	a.FirstName, _ = row["first_name"].(string)
	a.LastName, _ = row["last_name"].(string)
	a.EmailVerified, _ = row["email_verified"].(bool)
	a.UpdatedAt, _ = row["updated_at"].(time.Time)
	return a
}

func (r *StoreRepository) Get(ctx context.Context, id string) (*models.Account, error) {
	row, err := r.db.Get(ctx, models.TableAccounts, storex.Row{"id": id}, storex.LocalQuorum)
	if err != nil {
		return nil, err
	}
	return accountFromRow(row), nil
}

func (r *StoreRepository) EmailIndexOwner(ctx context.Context, email string) (string, error) {
	row, err := r.db.Get(ctx, models.TableAccountsByEmail, storex.Row{"email": email}, storex.LocalQuorum)
	if err != nil {
		return "", err
	}
	owner, _ := row["account_id"].(string)
	return owner, nil
}

func (r *StoreRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	owner, err := r.EmailIndexOwner(ctx, email)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, owner)
}

func (r *StoreRepository) Update(ctx context.Context, account *models.Account) error {
	account.UpdatedAt = time.Now().UTC()
	if err := r.db.Write(ctx, r.InsertStmt(account), storex.LocalQuorum); err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

func (r *StoreRepository) InsertStmt(account *models.Account) storex.Statement {
	return storex.Statement{
		Table: models.TableAccounts,
		Row: storex.Row{
			"id":             account.ID,
			"email":          account.Email,
			"first_name":     account.FirstName,
			"last_name":      account.LastName,
			"email_verified": account.EmailVerified,
			"updated_at":     account.UpdatedAt,
		},
	}
}

func (r *StoreRepository) DeleteStmt(id string) storex.Statement {
	return storex.Statement{
		Table:  models.TableAccounts,
		Row:    storex.Row{"id": id},
		Delete: true,
	}
}

func (r *StoreRepository) EmailIndexDeleteStmt(email string) storex.Statement {
	return storex.Statement{
		Table:  models.TableAccountsByEmail,
		Row:    storex.Row{"email": email},
		Delete: true,
	}
}
