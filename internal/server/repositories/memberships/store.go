package memberships

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

func membershipFromRow(row storex.Row) *models.Membership {
	m := &models.Membership{}
	m.TeamID, _ = row["team_id"].(string)
	m.AccountID, _ = row["account_id"].(string)
	m.Role, _ = row["role"].(string)
	m.AddedAt, _ = row["added_at"].(time.Time)
	return m
}

func (r *StoreRepository) Add(ctx context.Context, m *models.Membership) error {
	stmt := storex.Statement{
		Table: models.TableMemberships,
		Row: storex.Row{
			"team_id":    m.TeamID,
			"account_id": m.AccountID,
			"role":       m.Role,
			"added_at":   m.AddedAt,
		},
	}
	if err := r.db.Write(ctx, stmt, storex.LocalQuorum); err != nil {
		return fmt.Errorf("add membership: %w", err)
	}
	return nil
}

func (r *StoreRepository) Remove(ctx context.Context, teamID, accountID string) error {
	stmt := storex.Statement{
		Table:  models.TableMemberships,
		Row:    storex.Row{"team_id": teamID, "account_id": accountID},
		Delete: true,
	}
	if err := r.db.Write(ctx, stmt, storex.LocalQuorum); err != nil {
		return fmt.Errorf("remove membership: %w", err)
	}
	return nil
}

func (r *StoreRepository) ListByTeam(ctx context.Context, teamID string) ([]*models.Membership, error) {
	rows, err := r.db.List(ctx, models.TableMemberships, "team_id", teamID, storex.LocalQuorum)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	out := make([]*models.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, membershipFromRow(row))
	}
	return out, nil
}
