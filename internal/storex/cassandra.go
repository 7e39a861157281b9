package storex

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gocql/gocql"
	"github.com/sethvargo/go-retry"

	"github.com/crewbase/crewbase/internal/common"
)

// CassandraDB implements DB on top of a gocql session.
type CassandraDB struct {
	session *gocql.Session
	schema  Schema
}

// NewCassandraDB connects to the cluster and returns a client scoped to the
// given keyspace. Table provisioning is not done here; the keyspace is
// expected to exist (see schema/keyspace.cql).
func NewCassandraDB(hosts []string, keyspace string, schema Schema) (*CassandraDB, error) {
	cluster := gocql.NewCluster(hosts...)
	cluster.Keyspace = keyspace
	cluster.Consistency = gocql.LocalQuorum
	cluster.Timeout = 5 * time.Second

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("cassandra session: %w", err)
	}
	return &CassandraDB{session: session, schema: schema}, nil
}

func (db *CassandraDB) Close() { db.session.Close() }

func toGocqlConsistency(c Consistency) gocql.Consistency {
	switch c {
	case LocalQuorum:
		return gocql.LocalQuorum
	case Quorum:
		return gocql.Quorum
	case One:
		return gocql.One
	}
	return gocql.LocalQuorum
}

// isTransientRead reports errors worth retrying for reads: timeouts,
// unavailable replicas, lost connections.
func isTransientRead(err error) bool {
	if errors.Is(err, gocql.ErrTimeoutNoResponse) ||
		errors.Is(err, gocql.ErrNoConnections) ||
		errors.Is(err, gocql.ErrConnectionClosed) {
		return true
	}
	var unavailable *gocql.RequestErrUnavailable
	var readTimeout *gocql.RequestErrReadTimeout
	return errors.As(err, &unavailable) || errors.As(err, &readTimeout)
}

// isTransientWrite is narrower: a write that timed out may still have been
// applied, so only connection-level failures (where the request never left)
// are retried.
func isTransientWrite(err error) bool {
	return errors.Is(err, gocql.ErrNoConnections) ||
		errors.Is(err, gocql.ErrConnectionClosed)
}

func backoff() retry.Backoff {
	return retry.WithMaxRetries(3, retry.NewExponential(50*time.Millisecond))
}

func (db *CassandraDB) keyColumns(table string) ([]string, error) {
	cols, ok := db.schema[table]
	if !ok {
		return nil, fmt.Errorf("unknown table %q", table)
	}
	return cols, nil
}

func (db *CassandraDB) Get(ctx context.Context, table string, key Row, cons Consistency) (Row, error) {
	cols := make([]string, 0, len(key))
	for c := range key {
		cols = append(cols, c)
	}
	sort.Strings(cols)

	where := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		where[i] = c + " = ?"
		args[i] = key[c]
	}
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s", table, strings.Join(where, " AND "))
	return db.selectOne(ctx, query, args, cons, false)
}

func (db *CassandraDB) GetByIndex(ctx context.Context, table, column string, value any, cons Consistency) (Row, error) {
	// ALLOW FILTERING is a full scan when no secondary index backs the
	// column. The provisioning core avoids it by maintaining its own index
	// tables; this path exists for the columns that still need it.
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = ? LIMIT 1 ALLOW FILTERING", table, column)
	return db.selectOne(ctx, query, []any{value}, cons, true)
}

func (db *CassandraDB) selectOne(ctx context.Context, query string, args []any, cons Consistency, filtering bool) (Row, error) {
	var row Row
	err := retry.Do(ctx, backoff(), func(ctx context.Context) error {
		m := map[string]any{}
		q := db.session.Query(query, args...).WithContext(ctx).Consistency(toGocqlConsistency(cons))
		iter := q.Iter()
		found := iter.MapScan(m)
		if err := iter.Close(); err != nil {
			if isTransientRead(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		if !found {
			return common.ErrNotFound
		}
		row = m
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("storage read: %w", err)
	}
	return row, nil
}

func (db *CassandraDB) List(ctx context.Context, table, column string, value any, cons Consistency) ([]Row, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = ?", table, column)

	var rows []Row
	err := retry.Do(ctx, backoff(), func(ctx context.Context) error {
		rows = rows[:0]
		q := db.session.Query(query, value).WithContext(ctx).Consistency(toGocqlConsistency(cons))
		iter := q.Iter()
		for {
			m := map[string]any{}
			if !iter.MapScan(m) {
				break
			}
			rows = append(rows, m)
		}
		if err := iter.Close(); err != nil {
			if isTransientRead(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage read: %w", err)
	}
	return rows, nil
}

// buildCQL renders a statement into CQL and its bind arguments. Insert
// columns are sorted so generated queries are stable.
func (db *CassandraDB) buildCQL(stmt Statement) (string, []any, error) {
	if stmt.Delete {
		keyCols, err := db.keyColumns(stmt.Table)
		if err != nil {
			return "", nil, err
		}
		where := make([]string, len(keyCols))
		args := make([]any, len(keyCols))
		for i, c := range keyCols {
			v, ok := stmt.Row[c]
			if !ok {
				return "", nil, fmt.Errorf("delete from %s: missing key column %q", stmt.Table, c)
			}
			where[i] = c + " = ?"
			args[i] = v
		}
		return fmt.Sprintf("DELETE FROM %s WHERE %s", stmt.Table, strings.Join(where, " AND ")), args, nil
	}

	cols := make([]string, 0, len(stmt.Row))
	for c := range stmt.Row {
		cols = append(cols, c)
	}
	sort.Strings(cols)

	marks := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		marks[i] = "?"
		args[i] = stmt.Row[c]
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		stmt.Table, strings.Join(cols, ", "), strings.Join(marks, ", "))
	if stmt.IfNotExists {
		query += " IF NOT EXISTS"
	}
	return query, args, nil
}

func (db *CassandraDB) Write(ctx context.Context, stmt Statement, cons Consistency) error {
	query, args, err := db.buildCQL(stmt)
	if err != nil {
		return err
	}
	err = retry.Do(ctx, backoff(), func(ctx context.Context) error {
		q := db.session.Query(query, args...).WithContext(ctx).Consistency(toGocqlConsistency(cons))
		if err := q.Exec(); err != nil {
			if isTransientWrite(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("storage write: %w", err)
	}
	return nil
}

func (db *CassandraDB) WriteIfAbsent(ctx context.Context, stmt Statement, cons Consistency) (bool, Row, error) {
	stmt.IfNotExists = true
	query, args, err := db.buildCQL(stmt)
	if err != nil {
		return false, nil, err
	}

	var applied bool
	var existing Row
	err = retry.Do(ctx, backoff(), func(ctx context.Context) error {
		m := map[string]any{}
		q := db.session.Query(query, args...).WithContext(ctx).Consistency(toGocqlConsistency(cons))
		ok, err := q.MapScanCAS(m)
		if err != nil {
			if isTransientWrite(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		applied = ok
		if !ok {
			existing = m
		}
		return nil
	})
	if err != nil {
		return false, nil, fmt.Errorf("storage conditional write: %w", err)
	}
	return applied, existing, nil
}

func (db *CassandraDB) WriteBatch(ctx context.Context, stmts []Statement, cons Consistency) (*MultiWrite, error) {
	if len(stmts) == 0 {
		return &MultiWrite{Applied: true}, nil
	}

	conditional := false
	batch := db.session.NewBatch(gocql.UnloggedBatch).WithContext(ctx)
	batch.Cons = toGocqlConsistency(cons)
	for _, stmt := range stmts {
		query, args, err := db.buildCQL(stmt)
		if err != nil {
			return nil, err
		}
		if stmt.IfNotExists {
			conditional = true
		}
		batch.Query(query, args...)
	}

	outcomes := make([]Outcome, len(stmts))
	for i, stmt := range stmts {
		outcomes[i] = Outcome{Table: stmt.Table, Applied: true}
	}

	var applied bool
	err := retry.Do(ctx, backoff(), func(ctx context.Context) error {
		if conditional {
			m := map[string]any{}
			ok, iter, err := db.session.MapExecuteBatchCAS(batch, m)
			if err != nil {
				if isTransientWrite(err) {
					return retry.RetryableError(err)
				}
				return err
			}
			_ = iter.Close()
			applied = ok
			return nil
		}
		if err := db.session.ExecuteBatch(batch); err != nil {
			if isTransientWrite(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage batch: %w", err)
	}

	if !applied {
		// The store does not say which statements lost; report all of them
		// as not applied rather than pretend to know.
		for i := range outcomes {
			outcomes[i].Applied = false
		}
	}
	return &MultiWrite{Applied: applied, Outcomes: outcomes}, nil
}
