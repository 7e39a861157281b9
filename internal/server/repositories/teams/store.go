package teams

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

func teamFromRow(row storex.Row) *models.Team {
	t := &models.Team{}
	t.ID, _ = row["id"].(string)
	t.Name, _ = row["name"].(string)
	t.Description, _ = row["description"].(string)
	t.CreatorID, _ = row["creator_id"].(string)
	t.CreatedAt, _ = row["created_at"].(time.Time)
	t.UpdatedAt, _ = row["updated_at"].(time.Time)
	return t
}

func (r *StoreRepository) Get(ctx context.Context, id string) (*models.Team, error) {
	row, err := r.db.Get(ctx, models.TableTeams, storex.Row{"id": id}, storex.LocalQuorum)
	if err != nil {
		return nil, err
	}
	return teamFromRow(row), nil
}

func (r *StoreRepository) GetByName(ctx context.Context, name string) (*models.Team, error) {
	row, err := r.db.GetByIndex(ctx, models.TableTeams, "name", name, storex.LocalQuorum)
	if err != nil {
		return nil, err
	}
	return teamFromRow(row), nil
}

func (r *StoreRepository) Insert(ctx context.Context, team *models.Team) error {
	if err := r.db.Write(ctx, r.insertStmt(team), storex.LocalQuorum); err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

func (r *StoreRepository) Update(ctx context.Context, team *models.Team) error {
	team.UpdatedAt = time.Now().UTC()
	if err := r.db.Write(ctx, r.insertStmt(team), storex.LocalQuorum); err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	return nil
}

func (r *StoreRepository) insertStmt(team *models.Team) storex.Statement {
	return storex.Statement{
		Table: models.TableTeams,
		Row: storex.Row{
			"id":          team.ID,
			"name":        team.Name,
			"description": team.Description,
			"creator_id":  team.CreatorID,
			"created_at":  team.CreatedAt,
			"updated_at":  team.UpdatedAt,
		},
	}
}

func (r *StoreRepository) DeleteStmt(id string) storex.Statement {
	return storex.Statement{
		Table:  models.TableTeams,
		Row:    storex.Row{"id": id},
		Delete: true,
	}
}

func (r *StoreRepository) NameIndexDeleteStmt(name string) storex.Statement {
	return storex.Statement{
		Table:  models.TableTeamsByName,
		Row:    storex.Row{"name": name},
		Delete: true,
	}
}
