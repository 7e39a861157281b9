// Package storex is the client for the wide-column store. Reads and writes
// name a partition and a consistency level; multiple statements can be
// grouped into one batch, which is a single network round trip but is NOT
// atomic across partitions. Callers must treat partial application as a
// possible outcome.
//
// Retry policy for transient transport failures lives here, not in the
// services above.
package storex

import "context"

// Consistency selects how many replicas must acknowledge an operation.
type Consistency int

const (
	// LocalQuorum is a majority of replicas within the local replica group.
	// Every read and write issued by the provisioning core uses it.
	LocalQuorum Consistency = iota
	// Quorum is a majority across all replica groups.
	Quorum
	// One is a single replica acknowledgement. Not used by the core.
	One
)

func (c Consistency) String() string {
	switch c {
	case LocalQuorum:
		return "LOCAL_QUORUM"
	case Quorum:
		return "QUORUM"
	case One:
		return "ONE"
	}
	return "UNKNOWN"
}

// Row is one stored row, column name to value.
type Row map[string]any

// Schema maps each table to its primary key columns, in clustering order.
// Both the Cassandra client and the in-memory store need it to address rows.
type Schema map[string][]string

// Statement is one write: a full-row upsert or a delete by primary key.
type Statement struct {
	Table string
	// Row carries every column for an insert, or just the primary key
	// columns for a delete.
	Row Row
	// Delete selects DELETE instead of INSERT.
	Delete bool
	// IfNotExists makes an insert conditional (linearized by the store).
	// Ignored for deletes.
	IfNotExists bool
}

// Outcome reports whether one statement of a batch applied.
type Outcome struct {
	Table   string
	Applied bool
}

// MultiWrite is the result of a batch. Applied is true only when every
// statement applied; Outcomes lets callers see partial application instead
// of assuming all-or-nothing.
type MultiWrite struct {
	Applied  bool
	Outcomes []Outcome
}

// DB is the storage client consumed by repositories and services.
type DB interface {
	// Get reads one row by its primary key. Returns common.ErrNotFound when
	// the row is absent.
	Get(ctx context.Context, table string, key Row, cons Consistency) (Row, error)

	// GetByIndex reads the first row matching column = value. Without a
	// maintained index table this is a filtering scan, O(n) over the
	// partition set; unsuitable at scale and flagged as such where used.
	GetByIndex(ctx context.Context, table, column string, value any, cons Consistency) (Row, error)

	// List returns every row matching column = value.
	List(ctx context.Context, table, column string, value any, cons Consistency) ([]Row, error)

	// Write executes a single statement.
	Write(ctx context.Context, stmt Statement, cons Consistency) error

	// WriteIfAbsent executes a conditional insert. When the row already
	// exists it returns applied=false and the existing row.
	WriteIfAbsent(ctx context.Context, stmt Statement, cons Consistency) (bool, Row, error)

	// WriteBatch groups statements into one round trip.
	WriteBatch(ctx context.Context, stmts []Statement, cons Consistency) (*MultiWrite, error)

	// Close releases the underlying connections.
	Close()
}
