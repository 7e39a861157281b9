package storex

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/crewbase/crewbase/internal/common"
)

// MemStore is an in-memory DB used by tests. It mimics the store's
// addressing (primary key per table, hand-maintained index tables) without
// consistency levels meaning anything.
type MemStore struct {
	mu     sync.Mutex
	schema Schema
	tables map[string]map[string]Row

	// RejectBatches makes every WriteBatch report applied=false without
	// mutating anything, to exercise the not-applied path.
	RejectBatches bool
}

func NewMemStore(schema Schema) *MemStore {
	return &MemStore{
		schema: schema,
		tables: make(map[string]map[string]Row),
	}
}

func (m *MemStore) Close() {}

func (m *MemStore) rowKey(table string, row Row) (string, error) {
	cols, ok := m.schema[table]
	if !ok {
		return "", fmt.Errorf("unknown table %q", table)
	}
	parts := make([]string, len(cols))
	for i, c := range cols {
		v, ok := row[c]
		if !ok {
			return "", fmt.Errorf("table %s: missing key column %q", table, c)
		}
		parts[i] = fmt.Sprintf("%v", v)
	}
	return strings.Join(parts, "\x00"), nil
}

func cloneRow(row Row) Row {
	out := make(Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

func (m *MemStore) Get(ctx context.Context, table string, key Row, cons Consistency) (Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k, err := m.rowKey(table, key)
	if err != nil {
		return nil, err
	}
	row, ok := m.tables[table][k]
	if !ok {
		return nil, common.ErrNotFound
	}
	return cloneRow(row), nil
}

func (m *MemStore) GetByIndex(ctx context.Context, table, column string, value any, cons Consistency) (Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, row := range m.tables[table] {
		if fmt.Sprintf("%v", row[column]) == fmt.Sprintf("%v", value) {
			return cloneRow(row), nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *MemStore) List(ctx context.Context, table, column string, value any, cons Consistency) ([]Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var rows []Row
	for _, row := range m.tables[table] {
		if fmt.Sprintf("%v", row[column]) == fmt.Sprintf("%v", value) {
			rows = append(rows, cloneRow(row))
		}
	}
	return rows, nil
}

// apply executes one statement under the lock.
func (m *MemStore) apply(stmt Statement) (bool, Row, error) {
	k, err := m.rowKey(stmt.Table, stmt.Row)
	if err != nil {
		return false, nil, err
	}

	if stmt.Delete {
		delete(m.tables[stmt.Table], k)
		return true, nil, nil
	}

	if m.tables[stmt.Table] == nil {
		m.tables[stmt.Table] = make(map[string]Row)
	}
	if stmt.IfNotExists {
		if existing, ok := m.tables[stmt.Table][k]; ok {
			return false, cloneRow(existing), nil
		}
	}
	m.tables[stmt.Table][k] = cloneRow(stmt.Row)
	return true, nil, nil
}

func (m *MemStore) Write(ctx context.Context, stmt Statement, cons Consistency) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, _, err := m.apply(stmt)
	return err
}

func (m *MemStore) WriteIfAbsent(ctx context.Context, stmt Statement, cons Consistency) (bool, Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stmt.IfNotExists = true
	return m.apply(stmt)
}

func (m *MemStore) WriteBatch(ctx context.Context, stmts []Statement, cons Consistency) (*MultiWrite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	outcomes := make([]Outcome, len(stmts))
	if m.RejectBatches {
		for i, stmt := range stmts {
			outcomes[i] = Outcome{Table: stmt.Table, Applied: false}
		}
		return &MultiWrite{Applied: false, Outcomes: outcomes}, nil
	}

	all := true
	for i, stmt := range stmts {
		applied, _, err := m.apply(stmt)
		if err != nil {
			return nil, err
		}
		outcomes[i] = Outcome{Table: stmt.Table, Applied: applied}
		if !applied {
			all = false
		}
	}
	return &MultiWrite{Applied: all, Outcomes: outcomes}, nil
}
