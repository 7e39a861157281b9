package services

import (
	"context"
	"fmt"

	"github.com/crewbase/crewbase/internal/logging"
	"github.com/crewbase/crewbase/internal/storex"
)

// UniquenessGuard reserves globally-unique attribute values (email, team
// name) in a hand-maintained index table. The store enforces uniqueness only
// within a partition, so the reservation is a conditional insert: the store
// linearizes it, and of two racing writers exactly one wins the index row.
//
// The provisioning service still performs its read-based existence checks
// first; those give the user-facing error before any write happens. The
// guard closes the remaining check-to-write window.
type UniquenessGuard struct {
	db     storex.DB
	logger logging.Logger
}

func NewUniquenessGuard(db storex.DB, logger logging.Logger) *UniquenessGuard {
	return &UniquenessGuard{db: db, logger: logger.With("module", "uniqueness_guard")}
}

// Reserve claims key in the index table on behalf of owner. When the value
// is already taken it returns ok=false and the conflicting owner id.
func (g *UniquenessGuard) Reserve(ctx context.Context, table, keyCol, key, ownerCol, owner string) (bool, string, error) {
	stmt := storex.Statement{
		Table: table,
		Row:   storex.Row{keyCol: key, ownerCol: owner},
	}
	applied, existing, err := g.db.WriteIfAbsent(ctx, stmt, storex.LocalQuorum)
	if err != nil {
		return false, "", fmt.Errorf("reserve %s=%q: %w", keyCol, key, err)
	}
	if !applied {
		conflicting, _ := existing[ownerCol].(string)
		return false, conflicting, nil
	}
	return true, "", nil
}

// Release frees a reservation, on entity deletion or as compensation when
// the write that followed a reservation did not apply. Best-effort: a
// failure leaves a dangling index row, reported to the caller.
func (g *UniquenessGuard) Release(ctx context.Context, table, keyCol, key string) error {
	stmt := storex.Statement{
		Table:  table,
		Row:    storex.Row{keyCol: key},
		Delete: true,
	}
	if err := g.db.Write(ctx, stmt, storex.LocalQuorum); err != nil {
		return fmt.Errorf("release %s=%q: %w", keyCol, key, err)
	}
	return nil
}
