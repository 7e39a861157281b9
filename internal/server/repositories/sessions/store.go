package sessions

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

func sessionFromRow(row storex.Row) *models.Session {
	s := &models.Session{}
	s.ID, _ = row["id"].(string)
	s.AccountID, _ = row["account_id"].(string)
	s.Token, _ = row["token"].(string)
	s.CreatedAt, _ = row["created_at"].(time.Time)
	s.ExpiresAt, _ = row["expires_at"].(time.Time)
	return s
}

func (r *StoreRepository) Insert(ctx context.Context, s *models.Session) error {
	stmt := storex.Statement{
		Table: models.TableSessions,
		Row: storex.Row{
			"id":         s.ID,
			"account_id": s.AccountID,
			"token":      s.Token,
			"created_at": s.CreatedAt,
			"expires_at": s.ExpiresAt,
		},
	}
	if err := r.db.Write(ctx, stmt, storex.LocalQuorum); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *StoreRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	row, err := r.db.Get(ctx, models.TableSessions, storex.Row{"id": id}, storex.LocalQuorum)
	if err != nil {
		return nil, err
	}
	return sessionFromRow(row), nil
}

func (r *StoreRepository) Delete(ctx context.Context, id string) error {
	stmt := storex.Statement{
		Table:  models.TableSessions,
		Row:    storex.Row{"id": id},
		Delete: true,
	}
	if err := r.db.Write(ctx, stmt, storex.LocalQuorum); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
