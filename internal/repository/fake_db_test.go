package repository

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"ayunova/internal/database"

	"github.com/jackc/pgx/v5"
)

// fakeRow copies vals into the scan destinations by reflection. A nil val
// leaves a pointer destination nil.
type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.vals) {
		return fmt.Errorf("scan dest mismatch: %d != %d", len(dest), len(r.vals))
	}
	for i := range dest {
		dv := reflect.ValueOf(dest[i])
		if dv.Kind() != reflect.Pointer || dv.IsNil() {
			return fmt.Errorf("scan dest %d not a pointer", i)
		}
		target := dv.Elem()
		if r.vals[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		v := reflect.ValueOf(r.vals[i])
		switch {
		case v.Type().AssignableTo(target.Type()):
			target.Set(v)
		case target.Kind() == reflect.Pointer && v.Type().AssignableTo(target.Type().Elem()):
			p := reflect.New(target.Type().Elem())
			p.Elem().Set(v)
			target.Set(p)
		default:
			return fmt.Errorf("scan type mismatch at %d: %s into %s", i, v.Type(), target.Type())
		}
	}
	return nil
}

type fakeRows struct {
	rows []fakeRow
	idx  int
	err  error
}

func (r *fakeRows) Close() {}

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	return r.rows[r.idx-1].Scan(dest...)
}

func (r *fakeRows) Err() error { return r.err }

type execCall struct {
	query string
	args  []any
}

// fakeDB answers queries by matching a substring of the SQL text.
type fakeDB struct {
	mu sync.Mutex

	rowByQuery  map[string]fakeRow
	rowsByQuery map[string][]fakeRow
	queryErr    error
	execErr     map[string]error

	execs      []execCall
	args       map[string][]any
	committed  bool
	rolledBack bool
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		rowByQuery:  map[string]fakeRow{},
		rowsByQuery: map[string][]fakeRow{},
		execErr:     map[string]error{},
		args:        map[string][]any{},
	}
}

func (f *fakeDB) match(query string, keys []string) (string, bool) {
	for _, k := range keys {
		if strings.Contains(query, k) {
			return k, true
		}
	}
	return "", false
}

func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) Close() error               { return nil }
func (f *fakeDB) SQLDB() *sql.DB             { return nil }

func (f *fakeDB) Exec(_ context.Context, query string, args ...any) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.execs = append(f.execs, execCall{query: query, args: args})
	for k, err := range f.execErr {
		if strings.Contains(query, k) {
			return 0, err
		}
	}
	return 1, nil
}

func (f *fakeDB) Query(_ context.Context, query string, args ...any) (database.Rows, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	keys := make([]string, 0, len(f.rowsByQuery))
	for k := range f.rowsByQuery {
		keys = append(keys, k)
	}
	k, ok := f.match(query, keys)
	if !ok {
		return &fakeRows{}, nil
	}
	f.args[k] = args
	return &fakeRows{rows: f.rowsByQuery[k]}, nil
}

func (f *fakeDB) QueryRow(_ context.Context, query string, args ...any) database.Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.rowByQuery))
	for k := range f.rowByQuery {
		keys = append(keys, k)
	}
	k, ok := f.match(query, keys)
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	f.args[k] = args
	return f.rowByQuery[k]
}

func (f *fakeDB) Begin(context.Context) (database.Tx, error) {
	return &fakeTx{db: f}, nil
}

type fakeTx struct {
	db *fakeDB
}

func (t *fakeTx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return t.db.Exec(ctx, query, args...)
}

func (t *fakeTx) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	return t.db.Query(ctx, query, args...)
}

func (t *fakeTx) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return t.db.QueryRow(ctx, query, args...)
}

func (t *fakeTx) Commit(context.Context) error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	t.db.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	if !t.db.committed {
		t.db.rolledBack = true
	}
	return nil
}
