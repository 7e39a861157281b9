package preferences

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

func (r *StoreRepository) Upsert(ctx context.Context, p *models.Preferences) error {
	stmt := storex.Statement{
		Table: models.TablePreferences,
		Row: storex.Row{
			"account_id": p.AccountID,
			"locale":     p.Locale,
			"time_zone":  p.TimeZone,
		},
	}
	if err := r.db.Write(ctx, stmt, storex.LocalQuorum); err != nil {
		return fmt.Errorf("upsert preferences: %w", err)
	}
	return nil
}

func (r *StoreRepository) Get(ctx context.Context, accountID string) (*models.Preferences, error) {
	row, err := r.db.Get(ctx, models.TablePreferences, storex.Row{"account_id": accountID}, storex.LocalQuorum)
	if err != nil {
		return nil, err
	}
	p := &models.Preferences{}
	p.AccountID, _ = row["account_id"].(string)
	p.Locale, _ = row["locale"].(string)
	p.TimeZone, _ = row["time_zone"].(string)
	return p, nil
}
