package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"spacecore/internal/infra/persistence/memory"
	"spacecore/pkg/domain"
)

func TestNewStoreLoadsPersistedSnapshot(t *testing.T) {
	db, conn := newStubDB()
	payloads, err := memory.DefaultSnapshot().MarshalBuckets()
	if err != nil {
		t.Fatalf("marshal seed: %v", err)
	}
	conn.buckets = payloads

	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	store, err := NewStore("", nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if len(store.ListMembers()) != 2 {
		t.Fatalf("expected members loaded from snapshot, got %d", len(store.ListMembers()))
	}
	jonas, ok := store.FindMember("member-jonas")
	if !ok || jonas.PaymentStatus != domain.AccountStatusUnpaid {
		t.Fatalf("derived statuses must be rebuilt on load")
	}
	var sawDDL bool
	for _, stmt := range conn.execs {
		if strings.Contains(strings.ToUpper(stmt), "CREATE TABLE") {
			sawDDL = true
			break
		}
	}
	if !sawDDL {
		t.Fatalf("expected state table DDL, got execs: %v", conn.execs)
	}
}

func TestRunInTransactionPersistsState(t *testing.T) {
	db, conn := newStubDB()
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	store, err := NewStore("ignored", nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	var member domain.Member
	_, err = store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		var err error
		member, err = tx.CreateMember(domain.Member{Name: "Aisha"})
		return err
	})
	if err != nil {
		t.Fatalf("RunInTransaction: %v", err)
	}

	payload, ok := conn.buckets[memory.BucketMembers]
	if !ok {
		t.Fatalf("members bucket was not persisted")
	}
	var persisted []domain.Member
	if err := json.Unmarshal(payload, &persisted); err != nil {
		t.Fatalf("unmarshal persisted bucket: %v", err)
	}
	if len(persisted) != 1 || persisted[0].ID != member.ID {
		t.Fatalf("unexpected persisted members: %+v", persisted)
	}
	for _, bucket := range memory.BucketOrder() {
		if _, ok := conn.buckets[bucket]; !ok {
			t.Fatalf("bucket %s missing from persisted state", bucket)
		}
	}
}

func TestSeedWritesThrough(t *testing.T) {
	db, conn := newStubDB()
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	store, err := NewStore("", nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if !store.ExportState().Empty() {
		t.Fatalf("fresh store must start empty")
	}
	if err := store.Seed(context.Background(), memory.DefaultSnapshot()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	var tenants []domain.Tenant
	if err := json.Unmarshal(conn.buckets[memory.BucketTenants], &tenants); err != nil {
		t.Fatalf("unmarshal tenants: %v", err)
	}
	if len(tenants) != 2 {
		t.Fatalf("expected seeded tenants persisted, got %d", len(tenants))
	}
}

func TestPersistenceWarningAfterCommit(t *testing.T) {
	db, conn := newStubDB()
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	store, err := NewStore("", nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	conn.failBegin = true
	_, err = store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateMember(domain.Member{Name: "Aisha"})
		return err
	})
	var warn domain.PersistenceWarning
	if !errors.As(err, &warn) {
		t.Fatalf("expected persistence warning, got %v", err)
	}
	if warn.Collection != "state" {
		t.Fatalf("unexpected collection %q", warn.Collection)
	}
	if got := store.ListMembers(); len(got) != 1 {
		t.Fatalf("commit must stand despite snapshot failure, got %d members", len(got))
	}

	conn.failBegin = false
	conn.failCommit = true
	_, err = store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateMember(domain.Member{Name: "Jonas"})
		return err
	})
	if !errors.As(err, &warn) {
		t.Fatalf("commit failure must surface as a warning, got %v", err)
	}
	if got := store.ListMembers(); len(got) != 2 {
		t.Fatalf("second commit must stand, got %d members", len(got))
	}
}

// --- stub driver helpers ---

type stubDriver struct {
	conn *stubConn
}

func (d *stubDriver) Open(string) (driver.Conn, error) {
	return d.conn, nil
}

type stubConn struct {
	execs      []string
	buckets    map[string][]byte
	failBegin  bool
	failExec   bool
	failCommit bool
}

func newStubDB() (*sql.DB, *stubConn) {
	conn := &stubConn{buckets: make(map[string][]byte)}
	name := fmt.Sprintf("stubpg%d", time.Now().UnixNano())
	sql.Register(name, &stubDriver{conn: conn})
	db, err := sql.Open(name, "stub")
	if err != nil {
		panic(err)
	}
	return db, conn
}

func (c *stubConn) Prepare(string) (driver.Stmt, error) { return nil, fmt.Errorf("not implemented") }
func (c *stubConn) Close() error                        { return nil }
func (c *stubConn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

func (c *stubConn) Ping(_ context.Context) error { return nil }

func (c *stubConn) BeginTx(_ context.Context, _ driver.TxOptions) (driver.Tx, error) {
	if c.failBegin {
		return nil, fmt.Errorf("begin fail")
	}
	return &stubTx{conn: c}, nil
}

func (c *stubConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.execs = append(c.execs, query)
	if c.failExec {
		return nil, fmt.Errorf("exec fail")
	}
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "INSERT INTO STATE") {
		if len(args) != 2 {
			return nil, fmt.Errorf("expected bucket and payload args, got %d", len(args))
		}
		bucket, ok := args[0].Value.(string)
		if !ok {
			return nil, fmt.Errorf("bucket arg must be a string, got %T", args[0].Value)
		}
		payload, ok := args[1].Value.([]byte)
		if !ok {
			return nil, fmt.Errorf("payload arg must be bytes, got %T", args[1].Value)
		}
		cp := make([]byte, len(payload))
		copy(cp, payload)
		c.buckets[bucket] = cp
		return driver.RowsAffected(1), nil
	}
	return driver.RowsAffected(0), nil
}

func (c *stubConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	if !strings.Contains(strings.ToUpper(query), "FROM STATE") {
		return nil, fmt.Errorf("unexpected query: %s", query)
	}
	rows := make([][]driver.Value, 0, len(c.buckets))
	for _, bucket := range memory.BucketOrder() {
		payload, ok := c.buckets[bucket]
		if !ok {
			continue
		}
		rows = append(rows, []driver.Value{bucket, payload})
	}
	return &stubRows{cols: []string{"bucket", "payload"}, rows: rows}, nil
}

type stubTx struct {
	conn *stubConn
}

func (t *stubTx) Commit() error {
	if t.conn.failCommit {
		return fmt.Errorf("commit fail")
	}
	return nil
}
func (t *stubTx) Rollback() error { return nil }

type stubRows struct {
	cols []string
	rows [][]driver.Value
	idx  int
}

func (r *stubRows) Columns() []string { return r.cols }
func (r *stubRows) Close() error      { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.idx])
	r.idx++
	return nil
}
